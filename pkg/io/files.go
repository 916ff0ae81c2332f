package io

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/matzehuels/archdiagram/pkg/errors"
)

// DefaultExcludes lists directory names that never contain source worth
// describing.
var DefaultExcludes = []string{
	"node_modules",
	"vendor",
	"dist",
	"build",
	"out",
	"target",
	"__pycache__",
}

// ListOptions controls [ListFiles].
type ListOptions struct {
	// Exclude lists directory or file names to skip. Nil uses DefaultExcludes.
	Exclude []string
	// IncludeHidden keeps entries whose name starts with a dot.
	IncludeHidden bool
	// MaxFiles stops the walk after this many files. Zero means unlimited.
	MaxFiles int
}

// ListFiles walks root and returns the regular files below it as
// slash-separated paths relative to root, in lexical order.
func ListFiles(root string, opts ListOptions) ([]string, error) {
	if err := errors.ValidatePath(root); err != nil {
		return nil, err
	}
	info, err := os.Stat(root)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "folder not found: %s", root)
	}
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, errors.New(errors.ErrCodeInvalidPath, "not a directory: %s", root)
	}

	exclude := opts.Exclude
	if exclude == nil {
		exclude = DefaultExcludes
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}

		name := d.Name()
		skip := (!opts.IncludeHidden && strings.HasPrefix(name, ".")) || slices.Contains(exclude, name)
		if d.IsDir() {
			if skip {
				return filepath.SkipDir
			}
			return nil
		}
		if skip || !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		if opts.MaxFiles > 0 && len(files) >= opts.MaxFiles {
			return filepath.SkipAll
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", root, err)
	}
	return files, nil
}
