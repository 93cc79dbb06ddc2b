package internal

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reportConfig(t *testing.T, mut func(*Config)) Config {
	t.Helper()
	cfg := Config{Root: "/data", Needle: "hello", Extensions: []string{".txt", ".rs"}}
	if mut != nil {
		mut(&cfg)
	}
	cfg.Prepare()
	return cfg
}

func render(t *testing.T, cfg Config, st *ScanState) string {
	t.Helper()
	var buf bytes.Buffer
	r, err := NewReporter(cfg, &buf)
	require.NoError(t, err)
	require.NoError(t, r.Report(cfg, st))
	require.NoError(t, r.Close())
	return buf.String()
}

func TestReporter_NoMatches(t *testing.T) {
	cfg := reportConfig(t, func(c *Config) { c.CaseSensitive = true })
	got := render(t, cfg, &ScanState{FilesSearched: 3})

	want := strings.Join([]string{
		`Searching for "hello" in /data and all subfolders...`,
		"Case-sensitive search enabled",
		"Extensions: .txt, .rs",
		"",
		"No matches found.",
		"",
		"Summary: 3 files searched, 0 matches found",
		"",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestReporter_MatchesAndErrors(t *testing.T) {
	cfg := reportConfig(t, func(c *Config) { c.ShowLineContent = true })
	st := &ScanState{
		FilesSearched: 2,
		Matches: []Match{
			{Path: "/data/a.txt", LineNumber: 1, Content: "  \thello world  ", HasContent: true},
			{Path: "/data/b.rs", LineNumber: 7},
		},
		Errors: []error{
			&FileError{Path: "/data/c.txt", Err: os.ErrPermission},
			&TraversalError{Dir: "/data/x", Err: os.ErrNotExist},
		},
	}
	got := render(t, cfg, st)

	want := strings.Join([]string{
		`Searching for "hello" in /data and all subfolders...`,
		"Extensions: .txt, .rs",
		"",
		"Found 2 matches in 2 files:",
		"",
		"/data/a.txt (Line 1): hello world",
		"/data/b.rs (Line 7)",
		"",
		"Summary: 2 files searched, 2 matches found",
		"",
		"Errors encountered:",
		"  Could not open file /data/c.txt: permission denied",
		"  Could not read directory /data/x: file does not exist",
		"",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestReporter_ContentHiddenWithoutFlag(t *testing.T) {
	cfg := reportConfig(t, nil)
	st := &ScanState{FilesSearched: 1, Matches: []Match{{Path: "p", LineNumber: 2, Content: "hello", HasContent: true}}}
	assert.Contains(t, render(t, cfg, st), "\np (Line 2)\n")
}

func TestReporter_UnicodeFoldHeader(t *testing.T) {
	cfg := reportConfig(t, func(c *Config) { c.UnicodeFold = true })
	assert.Contains(t, render(t, cfg, &ScanState{}), "\nUnicode case folding enabled\n")

	cfg = reportConfig(t, func(c *Config) { c.UnicodeFold = true; c.CaseSensitive = true })
	assert.NotContains(t, render(t, cfg, &ScanState{}), "Unicode")
}

func TestReporter_FileSink(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.txt")
	require.NoError(t, os.WriteFile(out, []byte("stale content that must go away\n"), 0644))

	cfg := reportConfig(t, func(c *Config) { c.OutputFile = out })
	var stdout bytes.Buffer
	r, err := NewReporter(cfg, &stdout)
	require.NoError(t, err)
	require.NoError(t, r.Report(cfg, &ScanState{}))
	require.NoError(t, r.Close())

	assert.Equal(t, "Results have been written to: "+out+"\n", stdout.String())
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), `Searching for "hello"`))
	assert.NotContains(t, string(data), "stale")
	assert.Contains(t, string(data), "No matches found.")
}

func TestReporter_SinkError(t *testing.T) {
	out := filepath.Join(t.TempDir(), "missing", "out.txt")
	cfg := reportConfig(t, func(c *Config) { c.OutputFile = out })

	_, err := NewReporter(cfg, &bytes.Buffer{})
	var se *SinkError
	require.True(t, errors.As(err, &se))
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Equal(t, "Search failed: could not create output file "+out+": no such file or directory", err.Error())
}

func TestReporter_Color(t *testing.T) {
	cfg := reportConfig(t, nil)
	var buf bytes.Buffer
	r, err := NewReporter(cfg, &buf)
	require.NoError(t, err)
	r.setColor(true)

	st := &ScanState{FilesSearched: 1, Matches: []Match{{Path: "/data/a.txt", LineNumber: 1}}, Errors: []error{errors.New("boom")}}
	require.NoError(t, r.Report(cfg, st))
	got := buf.String()
	assert.Contains(t, got, "\x1b[36m/data/a.txt\x1b[")
	assert.Contains(t, got, "m (Line 1)\n")
	assert.Contains(t, got, "\n  boom\n")

	// a plain buffer is not a terminal
	assert.NotContains(t, render(t, cfg, st), "\x1b[")
}
