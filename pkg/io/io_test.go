package io

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/archdiagram/pkg/errors"
)

func TestReadResponse(t *testing.T) {
	path := filepath.Join(t.TempDir(), "response.md")
	want := "Here you go:\n```mermaid\ngraph TD\nA-->B\n```\n"
	if err := os.WriteFile(path, []byte(want), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := ReadResponse(path)
	if err != nil {
		t.Fatalf("ReadResponse() error: %v", err)
	}
	if got != want {
		t.Errorf("ReadResponse() = %q, want %q", got, want)
	}
}

func TestReadResponseStdin(t *testing.T) {
	old := stdin
	stdin = strings.NewReader("from stdin")
	defer func() { stdin = old }()

	got, err := ReadResponse(Stdin)
	if err != nil {
		t.Fatalf("ReadResponse(-) error: %v", err)
	}
	if got != "from stdin" {
		t.Errorf("ReadResponse(-) = %q", got)
	}
}

func TestReadResponseErrors(t *testing.T) {
	tests := []struct {
		name string
		path string
		code errors.Code
	}{
		{"missing", filepath.Join(t.TempDir(), "nope.md"), errors.ErrCodeFileNotFound},
		{"empty path", "", errors.ErrCodeInvalidPath},
		{"control char", "a\x00b", errors.ErrCodeInvalidPath},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadResponse(tt.path)
			if !errors.Is(err, tt.code) {
				t.Errorf("ReadResponse(%q) = %v, want %s", tt.path, err, tt.code)
			}
		})
	}
}

func TestReadResponseTooLarge(t *testing.T) {
	r := bytes.NewReader(make([]byte, MaxResponseSize+1))
	if _, err := ReadResponseFrom(r); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("oversized response: got %v, want INVALID_INPUT", err)
	}
}

func TestWriteDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docs", "nested", "architecture.md")
	if err := WriteDocument(path, "# Doc", nil); err != nil {
		t.Fatalf("WriteDocument() error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "# Doc" {
		t.Errorf("file content = %q", data)
	}
}

func TestWriteDocumentStdout(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteDocument(Stdin, "# Doc", &buf); err != nil {
		t.Fatalf("WriteDocument(-) error: %v", err)
	}
	if buf.String() != "# Doc" {
		t.Errorf("writer got %q", buf.String())
	}
}

func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		p := filepath.Join(root, filepath.FromSlash(f))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(f), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestListFiles(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"main.go",
		"pkg/api/server.go",
		"pkg/api/server_test.go",
		".git/config",
		".env",
		"node_modules/left-pad/index.js",
		"web/dist/bundle.js",
		"web/src/app.ts",
	)

	tests := []struct {
		name string
		opts ListOptions
		want []string
	}{
		{
			name: "defaults",
			want: []string{"main.go", "pkg/api/server.go", "pkg/api/server_test.go", "web/src/app.ts"},
		},
		{
			name: "hidden",
			opts: ListOptions{IncludeHidden: true},
			want: []string{".env", ".git/config", "main.go", "pkg/api/server.go", "pkg/api/server_test.go", "web/src/app.ts"},
		},
		{
			name: "custom excludes",
			opts: ListOptions{Exclude: []string{"pkg"}},
			want: []string{"main.go", "node_modules/left-pad/index.js", "web/dist/bundle.js", "web/src/app.ts"},
		},
		{
			name: "max files",
			opts: ListOptions{MaxFiles: 2},
			want: []string{"main.go", "pkg/api/server.go"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ListFiles(root, tt.opts)
			if err != nil {
				t.Fatalf("ListFiles() error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ListFiles() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestListFilesErrors(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "file.txt")

	if _, err := ListFiles(filepath.Join(root, "missing"), ListOptions{}); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing folder: got %v, want FILE_NOT_FOUND", err)
	}
	if _, err := ListFiles(filepath.Join(root, "file.txt"), ListOptions{}); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("file as folder: got %v, want INVALID_PATH", err)
	}
}
