package internal

import (
	"context"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

const dirBatch = 256

// WalkFiles visits regular files below root depth-first, in the order the
// host lists directory entries. Sub-directories are descended into at the
// point they are listed. visit receives every regular file; onErr receives
// each *TraversalError and the walk carries on.
//
// A symlink to a regular file is visited. Symlinks to directories are not
// followed, and dangling links are skipped.
func WalkFiles(ctx context.Context, root string, visit func(path string) error, onErr func(error)) error {
	return walkDir(ctx, root, visit, onErr)
}

func walkDir(ctx context.Context, dir string, visit func(string) error, onErr func(error)) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	entries, ok := readEntries(dir, onErr)
	if !ok {
		return nil
	}

	for _, d := range entries {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		path := filepath.Join(dir, d.Name())
		switch entryKind(path, d) {
		case kindDir:
			if err := walkDir(ctx, path, visit, onErr); err != nil {
				return err
			}
		case kindFile:
			if err := visit(path); err != nil {
				return err
			}
		}
	}
	return nil
}

// readEntries lists dir in full and closes it before any child is visited,
// so at most one directory handle is open at a time.
func readEntries(dir string, onErr func(error)) ([]os.DirEntry, bool) {
	f, err := os.Open(dir)
	if err != nil {
		onErr(&TraversalError{Dir: dir, Err: err})
		return nil, false
	}
	defer f.Close()

	var entries []os.DirEntry
	for {
		batch, err := f.ReadDir(dirBatch)
		entries = append(entries, batch...)
		if err == io.EOF {
			break
		}
		if err != nil {
			onErr(&TraversalError{Dir: dir, Entry: true, Err: err})
			break
		}
	}
	return entries, true
}

type fileKind int

const (
	kindOther fileKind = iota
	kindDir
	kindFile
)

func entryKind(path string, d os.DirEntry) fileKind {
	t := d.Type()
	switch {
	case t.IsDir():
		return kindDir
	case t.IsRegular():
		return kindFile
	case t&iofs.ModeSymlink != 0:
		st, err := os.Stat(path)
		if err != nil {
			logrus.WithFields(logrus.Fields{"file": path, "err": err}).Debug("Skip dangling symlink")
			return kindOther
		}
		if st.Mode().IsRegular() {
			return kindFile
		}
		logrus.WithField("file", path).Debug("Skip symlink to non-regular file")
	}
	return kindOther
}

// fileExt returns the dotted final extension of a file name, or "" when there
// is none. A leading dot alone (".bashrc") is not an extension.
func fileExt(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 {
		return ""
	}
	return name[i:]
}
