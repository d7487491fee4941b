// Package share turns a board snapshot into a link and back.
package share

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/atotto/clipboard"

	"tableflip.dev/zones/pkg/codec"
	"tableflip.dev/zones/pkg/entry"
)

const (
	// DefaultBaseURL is where shared links point when none is configured.
	DefaultBaseURL = "https://zones.tableflip.dev/"
	// Param is the query parameter carrying the encoded collection.
	Param = "data"
)

var (
	// ErrNoToken is returned when input carries no shared collection.
	ErrNoToken = errors.New("share: no data in link")
	// ErrClipboard is returned when the system clipboard cannot be used.
	ErrClipboard = errors.New("share: clipboard unavailable")
)

var clipboardWrite = clipboard.WriteAll

// Link is an encoded collection and the URL that carries it.
type Link struct {
	Token string
	URL   string
}

// New encodes entries into a link rooted at base.
func New(base string, entries []entry.Entry) (Link, error) {
	token, err := codec.Encode(entries)
	if err != nil {
		return Link{}, err
	}
	u, err := Build(base, token)
	if err != nil {
		return Link{}, err
	}
	return Link{Token: token, URL: u}, nil
}

// Build appends token to base as the data parameter. Other query parameters
// on base are kept; an existing data parameter is replaced. The token is
// expected to be query-safe already.
func Build(base, token string) (string, error) {
	if strings.TrimSpace(base) == "" {
		base = DefaultBaseURL
	}
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("share: parse base url: %w", err)
	}
	var parts []string
	for _, p := range strings.Split(u.RawQuery, "&") {
		if p == "" || p == Param || strings.HasPrefix(p, Param+"=") {
			continue
		}
		parts = append(parts, p)
	}
	parts = append(parts, Param+"="+token)
	u.RawQuery = strings.Join(parts, "&")
	u.Fragment = ""
	return u.String(), nil
}

// ExtractToken returns the still-escaped token from a pasted link, a bare
// query string, or a bare token.
func ExtractToken(input string) (string, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return "", ErrNoToken
	}
	if !strings.Contains(s, "://") && !strings.HasPrefix(s, "?") && !strings.HasPrefix(s, Param+"=") {
		return s, nil
	}

	raw := s
	if i := strings.IndexByte(raw, '?'); i >= 0 {
		raw = raw[i+1:]
	} else if strings.Contains(raw, "://") {
		return "", ErrNoToken
	}
	if i := strings.IndexByte(raw, '#'); i >= 0 {
		raw = raw[:i]
	}
	for _, p := range strings.Split(raw, "&") {
		if v, ok := strings.CutPrefix(p, Param+"="); ok && v != "" {
			return v, nil
		}
	}
	return "", ErrNoToken
}

// Parse extracts and decodes a shared collection.
func Parse(input string) ([]entry.Entry, error) {
	token, err := ExtractToken(input)
	if err != nil {
		return nil, err
	}
	return codec.Decode(token)
}

// Copy puts link on the system clipboard.
func Copy(link string) error {
	if clipboard.Unsupported {
		return ErrClipboard
	}
	if err := clipboardWrite(link); err != nil {
		return fmt.Errorf("%w: %v", ErrClipboard, err)
	}
	return nil
}
