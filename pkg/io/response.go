package io

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/matzehuels/archdiagram/pkg/errors"
)

// Stdin is the path that selects standard input in [ReadResponse].
const Stdin = "-"

// MaxResponseSize bounds how much of a response is read.
const MaxResponseSize = 16 << 20

// stdin is replaced in tests.
var stdin io.Reader = os.Stdin

// ReadResponse reads a model response from path, or from standard input when
// path is [Stdin].
func ReadResponse(path string) (string, error) {
	if path == Stdin {
		return readAll(stdin)
	}
	if err := errors.ValidatePath(path); err != nil {
		return "", err
	}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return "", errors.Wrap(errors.ErrCodeFileNotFound, err, "response file not found: %s", path)
	}
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	s, err := readAll(f)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return s, nil
}

// ReadResponseFrom reads a model response from r.
func ReadResponseFrom(r io.Reader) (string, error) {
	return readAll(r)
}

func readAll(r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxResponseSize+1))
	if err != nil {
		return "", err
	}
	if len(data) > MaxResponseSize {
		return "", errors.New(errors.ErrCodeInvalidInput, "response exceeds %d bytes", MaxResponseSize)
	}
	return string(data), nil
}

// WriteDocument writes content to path, creating parent directories as needed.
// The path "-" writes to w instead.
func WriteDocument(path, content string, w io.Writer) error {
	if path == Stdin {
		_, err := io.WriteString(w, content)
		return err
	}
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
