package internal

import (
	"time"
)

// Match is one matching line. Content is set only when line content was requested.
type Match struct {
	Path       string
	LineNumber int
	Content    string
	HasContent bool
}

// ScanState accumulates the results of one run, in traversal order.
type ScanState struct {
	start         time.Time
	elapsed       time.Duration
	Matches       []Match
	FilesSearched int
	Errors        []error
}

func newScanState() *ScanState {
	return &ScanState{start: time.Now()}
}

func (s *ScanState) addMatch(m Match) { s.Matches = append(s.Matches, m) }

func (s *ScanState) addError(err error) { s.Errors = append(s.Errors, err) }

func (s *ScanState) fileOpened() { s.FilesSearched++ }

func (s *ScanState) finish() { s.elapsed = time.Since(s.start) }

// Elapsed is the wall time of the scan; zero until the scan finishes.
func (s *ScanState) Elapsed() time.Duration { return s.elapsed }
