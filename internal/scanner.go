package internal

import (
	"context"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// FileScanner walks a tree and collects matching lines.
type FileScanner struct{}

func NewFileScanner() *FileScanner { return &FileScanner{} }

// Scan is the main pipeline. Recoverable failures are collected in the
// returned state; the only error returned is ctx cancellation.
func (fs *FileScanner) Scan(ctx context.Context, cfg Config) (*ScanState, error) {
	state := newScanState()
	pattern := PatternFor(cfg)
	logrus.WithFields(logrus.Fields{"root": cfg.Root, "pattern": pattern.Desc()}).Info("Scan started")

	err := WalkFiles(ctx, cfg.Root, func(path string) error {
		if !cfg.allowedExt(fileExt(filepath.Base(path))) {
			return nil
		}
		fs.scanRegularFile(path, pattern, cfg.ShowLineContent, state)
		return nil
	}, func(err error) {
		logrus.WithError(err).Debug("Traversal error")
		state.addError(err)
	})
	state.finish()

	logrus.Infof("Scan finished in %s: files=%d matches=%d errors=%d",
		state.Elapsed(), state.FilesSearched, len(state.Matches), len(state.Errors))
	return state, err
}

func (fs *FileScanner) scanRegularFile(path string, pattern Pattern, showLines bool, state *ScanState) {
	f, err := os.Open(path)
	if err != nil {
		logrus.WithFields(logrus.Fields{"file": path, "err": err}).Debug("Error opening file")
		state.addError(&FileError{Path: path, Err: err})
		return
	}
	defer f.Close()

	state.fileOpened()
	matchReader(f, pattern, showLines, path, state)
}
