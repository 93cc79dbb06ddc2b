package internal

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Reporter writes the human-readable report to stdout or to a file.
type Reporter struct {
	out      *bufio.Writer
	file     *os.File // nil for stdout
	path     string
	stdout   io.Writer
	pathCol  *color.Color
	errorCol *color.Color
}

// NewReporter opens the sink chosen by cfg. An output file is created or
// truncated; failing to do so returns a *SinkError.
func NewReporter(cfg Config, stdout io.Writer) (*Reporter, error) {
	r := &Reporter{stdout: stdout, path: cfg.OutputFile}
	if cfg.ToStdout() {
		r.out = bufio.NewWriter(stdout)
		r.setColor(!cfg.NoColor && isTerminal(stdout))
		return r, nil
	}
	f, err := os.Create(cfg.OutputFile)
	if err != nil {
		return nil, &SinkError{Path: cfg.OutputFile, Err: err}
	}
	r.file = f
	r.out = bufio.NewWriter(f)
	r.setColor(false)
	return r, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

func (r *Reporter) setColor(on bool) {
	r.pathCol = color.New(color.FgCyan)
	r.errorCol = color.New(color.FgRed, color.Bold)
	if on {
		r.pathCol.EnableColor()
		r.errorCol.EnableColor()
	} else {
		r.pathCol.DisableColor()
		r.errorCol.DisableColor()
	}
}

// Report writes the whole report for a finished scan.
func (r *Reporter) Report(cfg Config, state *ScanState) error {
	r.line(fmt.Sprintf("Searching for \"%s\" in %s and all subfolders...", cfg.Needle, cfg.Root))
	if cfg.CaseSensitive {
		r.line("Case-sensitive search enabled")
	} else if cfg.UnicodeFold {
		r.line("Unicode case folding enabled")
	}
	r.line("Extensions: " + strings.Join(cfg.Extensions, ", "))
	r.line("")

	if len(state.Matches) == 0 {
		r.line("No matches found.")
	} else {
		r.line(fmt.Sprintf("Found %d matches in %d files:", len(state.Matches), state.FilesSearched))
		r.line("")
		for _, m := range state.Matches {
			r.line(r.formatMatch(m, cfg.ShowLineContent))
		}
	}

	r.line("")
	r.line(fmt.Sprintf("Summary: %d files searched, %d matches found", state.FilesSearched, len(state.Matches)))

	if len(state.Errors) > 0 {
		r.line("")
		r.line(r.errorCol.Sprint("Errors encountered:"))
		for _, err := range state.Errors {
			r.line("  " + err.Error())
		}
	}
	return r.out.Flush()
}

func (r *Reporter) formatMatch(m Match, showLines bool) string {
	head := fmt.Sprintf("%s (Line %d)", r.pathCol.Sprint(m.Path), m.LineNumber)
	if showLines && m.HasContent {
		return head + ": " + strings.TrimSpace(m.Content)
	}
	return head
}

// line appends s and a newline. bufio keeps the first write error and returns it from Flush.
func (r *Reporter) line(s string) {
	_, _ = r.out.WriteString(s)
	_ = r.out.WriteByte('\n')
}

// Close flushes and releases the sink. For a file sink the user is told where
// the results went.
func (r *Reporter) Close() error {
	if err := r.out.Flush(); err != nil {
		if r.file != nil {
			_ = r.file.Close()
		}
		return err
	}
	if r.file == nil {
		return nil
	}
	if err := r.file.Close(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(r.stdout, "Results have been written to: %s\n", r.path)
	return err
}
