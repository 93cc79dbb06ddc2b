package internal

import (
	"bufio"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
)

const readBufSize = 64 * 1024

// matchReader streams lines from reader and records every matching line.
// Lines longer than the buffer are assembled in full, so numbering never drifts.
// A read error or an undecodable line is recorded and ends the file.
func matchReader(reader io.Reader, pattern Pattern, showLines bool, filePath string, state *ScanState) {
	br := bufio.NewReaderSize(reader, readBufSize)
	lineNum := 0

	for {
		raw, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			state.addError(&FileError{Path: filePath, Line: lineNum + 1, Err: err})
			return
		}
		if len(raw) > 0 {
			lineNum++
			line := trimEOL(raw)
			if !utf8.ValidString(line) {
				state.addError(&FileError{Path: filePath, Line: lineNum, Err: errInvalidUTF8})
				return
			}
			if pattern.Match(line) {
				m := Match{Path: filePath, LineNumber: lineNum}
				if showLines {
					m.Content = line
					m.HasContent = true
				}
				state.addMatch(m)
				logrus.WithFields(logrus.Fields{"file": filePath, "line": lineNum}).Debug("Match found")
			}
		}
		if err == io.EOF {
			return
		}
	}
}

// trimEOL removes a trailing "\n" or "\r\n". A lone "\r" is kept.
func trimEOL(s string) string {
	if !strings.HasSuffix(s, "\n") {
		return s
	}
	s = s[:len(s)-1]
	return strings.TrimSuffix(s, "\r")
}
