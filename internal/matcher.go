package internal

import (
	"strings"

	"golang.org/x/text/cases"
)

// Pattern tests a single line for a match.
type Pattern interface {
	Match(string) bool
	Desc() string // for logs
}

// FoldMode selects how case-insensitive comparison normalizes text.
type FoldMode int

const (
	// FoldNone compares bytes as they are.
	FoldNone FoldMode = iota
	// FoldLower applies strings.ToLower to needle and line.
	FoldLower
	// FoldUnicode applies full Unicode case folding.
	FoldUnicode
)

func (m FoldMode) String() string {
	switch m {
	case FoldLower:
		return "lower"
	case FoldUnicode:
		return "unicode"
	default:
		return "none"
	}
}

// PlainPattern is a literal substring test. One line yields at most one match
// no matter how many times the needle occurs in it.
type PlainPattern struct {
	s    string // already normalized
	mode FoldMode
	fold cases.Caser
}

// NewPlainPattern normalizes needle once for the given mode.
func NewPlainPattern(needle string, mode FoldMode) *PlainPattern {
	p := &PlainPattern{mode: mode}
	if mode == FoldUnicode {
		p.fold = cases.Fold()
	}
	p.s = p.normalize(needle)
	return p
}

// PatternFor picks the fold mode from the scan configuration.
func PatternFor(cfg Config) *PlainPattern {
	mode := FoldLower
	switch {
	case cfg.CaseSensitive:
		mode = FoldNone
	case cfg.UnicodeFold:
		mode = FoldUnicode
	}
	return NewPlainPattern(cfg.Needle, mode)
}

func (p *PlainPattern) normalize(s string) string {
	switch p.mode {
	case FoldLower:
		return strings.ToLower(s)
	case FoldUnicode:
		return p.fold.String(s)
	default:
		return s
	}
}

func (p *PlainPattern) Match(line string) bool {
	return strings.Contains(p.normalize(line), p.s)
}

func (p *PlainPattern) Desc() string {
	if p.mode == FoldNone {
		return p.s
	}
	return p.mode.String() + ":" + p.s
}
