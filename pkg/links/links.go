// Package links builds Mermaid Live Editor URLs for a diagram.
//
// The editor reads its state from the URL fragment. The state is a small JSON
// document holding the diagram source and editor settings; it is zlib
// compressed and base64url encoded behind a "pako:" prefix:
//
//	https://mermaid.live/view#pako:eNpVj...
//
// [Generator] produces the view and edit URLs for one diagram body. [Decode]
// reverses a payload, which is handy for debugging links pasted by users.
package links

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zlib"

	"github.com/matzehuels/archdiagram/pkg/errors"
)

const (
	// DefaultBaseURL is the public Mermaid Live Editor.
	DefaultBaseURL = "https://mermaid.live"

	// DefaultTheme is the Mermaid theme written into the editor state.
	DefaultTheme = "default"

	// payloadPrefix marks a zlib-compressed state in the URL fragment.
	payloadPrefix = "pako:"
)

// State is the editor state serialized into a link.
// Field order matches what the editor itself writes.
type State struct {
	Code          string `json:"code"`
	Mermaid       string `json:"mermaid"`
	AutoSync      bool   `json:"autoSync"`
	UpdateDiagram bool   `json:"updateDiagram"`
}

// Options configures link generation.
type Options struct {
	// BaseURL is the editor root. Defaults to DefaultBaseURL.
	BaseURL string
	// Theme is the Mermaid theme. Defaults to DefaultTheme.
	Theme string
}

// Generator creates editor links for a single diagram body.
type Generator struct {
	code string
	opts Options
}

// New creates a generator for code, the diagram body without fences.
func New(code string, opts Options) *Generator {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Theme == "" {
		opts.Theme = DefaultTheme
	}
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	return &Generator{code: code, opts: opts}
}

// ViewLink returns the read-only viewer URL.
func (g *Generator) ViewLink() (string, error) {
	return g.link("view")
}

// EditLink returns the editor URL.
func (g *Generator) EditLink() (string, error) {
	return g.link("edit")
}

// State returns the editor state encoded into the links.
func (g *Generator) State() State {
	return State{
		Code:          g.code,
		Mermaid:       fmt.Sprintf("{\n  \"theme\": %q\n}", g.opts.Theme),
		AutoSync:      true,
		UpdateDiagram: true,
	}
}

func (g *Generator) link(mode string) (string, error) {
	payload, err := Encode(g.State())
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%s#%s%s", g.opts.BaseURL, mode, payloadPrefix, payload), nil
}

// Encode serializes s into a URL-safe payload without the "pako:" prefix.
func Encode(s State) (string, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "encode editor state")
	}

	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "create compressor")
	}
	if _, err := zw.Write(data); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "compress editor state")
	}
	if err := zw.Close(); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "compress editor state")
	}

	return base64.RawURLEncoding.EncodeToString(buf.Bytes()), nil
}

// Decode parses a payload produced by Encode. It accepts a bare payload, a
// "pako:" fragment, or a full editor URL.
func Decode(payload string) (State, error) {
	if i := strings.LastIndex(payload, "#"); i >= 0 {
		payload = payload[i+1:]
	}
	payload = strings.TrimPrefix(payload, payloadPrefix)
	payload = strings.TrimRight(payload, "=")

	raw, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return State{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "payload is not base64url")
	}

	zr, err := zlib.NewReader(bytes.NewReader(raw))
	if err != nil {
		return State{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "payload is not zlib compressed")
	}
	defer zr.Close()

	data, err := io.ReadAll(zr)
	if err != nil {
		return State{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decompress payload")
	}

	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return State{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode editor state")
	}
	return s, nil
}
