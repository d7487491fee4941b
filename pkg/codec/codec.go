// Package codec converts an entry collection to and from the share token
// carried in a link's "data" query parameter.
//
// A token is the JSON array of entries, base64 encoded with the standard
// alphabet and padding, then query escaped. Decoding reverses each stage and
// fails closed: any stage error yields ErrDecode and no entries.
package codec

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"tableflip.dev/zones/pkg/entry"
)

// ErrDecode is wrapped by every decode failure.
var ErrDecode = errors.New("codec: decode failed")

// Stage names the decode step that failed.
type Stage string

const (
	StageEscape    Stage = "escape"
	StageBase64    Stage = "base64"
	StageJSON      Stage = "json"
	StageStructure Stage = "structure"
)

// DecodeError reports which stage rejected the input.
type DecodeError struct {
	Stage Stage
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("codec: %s: %v", e.Stage, e.Err)
}

func (e *DecodeError) Unwrap() []error {
	return []error{ErrDecode, e.Err}
}

func fail(stage Stage, err error) error {
	return &DecodeError{Stage: stage, Err: err}
}

// Marshal renders the canonical text form of a collection.
func Marshal(entries []entry.Entry) ([]byte, error) {
	if entries == nil {
		entries = []entry.Entry{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	// Labels keep <, > and & as written, like JSON.stringify.
	enc.SetEscapeHTML(false)
	if err := enc.Encode(entries); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Encode produces a URL-safe token for the collection.
func Encode(entries []entry.Entry) (string, error) {
	raw, err := Marshal(entries)
	if err != nil {
		return "", fmt.Errorf("codec: marshal: %w", err)
	}
	return url.QueryEscape(base64.StdEncoding.EncodeToString(raw)), nil
}

// Decode parses a token produced by Encode. It never panics on arbitrary input.
func Decode(token string) ([]entry.Entry, error) {
	// PathUnescape keeps '+' literal, as decodeURIComponent does.
	unescaped, err := url.PathUnescape(strings.TrimSpace(token))
	if err != nil {
		return nil, fail(StageEscape, err)
	}
	raw, err := base64.StdEncoding.DecodeString(unescaped)
	if err != nil {
		return nil, fail(StageBase64, err)
	}
	return Unmarshal(raw)
}

// Unmarshal parses the canonical text form, as held by the storage record.
func Unmarshal(raw []byte) ([]entry.Entry, error) {
	trimmed := bytes.TrimSpace(raw)
	if !json.Valid(trimmed) {
		return nil, fail(StageJSON, errors.New("invalid JSON"))
	}
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fail(StageStructure, errors.New("not an ordered sequence of entries"))
	}
	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, fail(StageStructure, err)
	}
	entries := make([]entry.Entry, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for i, item := range items {
		item = bytes.TrimSpace(item)
		if len(item) == 0 || item[0] != '{' {
			return nil, fail(StageStructure, fmt.Errorf("element %d is not an entry", i))
		}
		var e entry.Entry
		if err := json.Unmarshal(item, &e); err != nil {
			return nil, fail(StageStructure, fmt.Errorf("element %d: %w", i, err))
		}
		if strings.TrimSpace(e.ID) == "" {
			return nil, fail(StageStructure, fmt.Errorf("element %d: missing id", i))
		}
		if strings.TrimSpace(e.TZ) == "" {
			return nil, fail(StageStructure, fmt.Errorf("element %d: missing tz", i))
		}
		if _, dup := seen[e.ID]; dup {
			return nil, fail(StageStructure, fmt.Errorf("element %d: duplicate id %q", i, e.ID))
		}
		seen[e.ID] = struct{}{}
		entries = append(entries, e)
	}
	return entries, nil
}
