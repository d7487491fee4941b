package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultSpan is the timeline length used when none is provided.
	DefaultSpan = "2d"
	// MaxHours bounds a span so a typo can not render thousands of blocks.
	MaxHours = 14 * 24
)

var (
	spanPattern = regexp.MustCompile(`^\s*(\d+)\s*([a-z]+)`)
	unitMap     = map[string]time.Duration{
		"h":     time.Hour,
		"hr":    time.Hour,
		"hrs":   time.Hour,
		"hour":  time.Hour,
		"hours": time.Hour,
		"d":     24 * time.Hour,
		"day":   24 * time.Hour,
		"days":  24 * time.Hour,
		"w":     7 * 24 * time.Hour,
		"wk":    7 * 24 * time.Hour,
		"week":  7 * 24 * time.Hour,
		"weeks": 7 * 24 * time.Hour,
	}
)

// ParseSpan parses a timeline length such as "36h", "2d" or "1d12h" into a
// number of hour blocks and a canonical label. Empty input means DefaultSpan.
func ParseSpan(input string) (int, string, error) {
	trimmed := strings.ToLower(strings.TrimSpace(input))
	if trimmed == "" {
		trimmed = DefaultSpan
	}

	remaining := trimmed
	var total time.Duration
	for len(remaining) > 0 {
		m := spanPattern.FindStringSubmatch(remaining)
		if len(m) != 3 {
			return 0, "", fmt.Errorf("timeutil: invalid span segment %q", strings.TrimSpace(remaining))
		}
		value, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return 0, "", fmt.Errorf("timeutil: invalid span value %q: %w", m[1], err)
		}
		unit, ok := unitMap[m[2]]
		if !ok {
			return 0, "", fmt.Errorf("timeutil: unsupported span unit %q", m[2])
		}
		total += time.Duration(value) * unit
		remaining = remaining[len(m[0]):]
	}

	hours := int(total / time.Hour)
	switch {
	case hours <= 0:
		return 0, "", fmt.Errorf("timeutil: span must be at least one hour")
	case hours > MaxHours:
		return 0, "", fmt.Errorf("timeutil: span %q is longer than %s", input, FormatSpan(MaxHours))
	}
	return hours, FormatSpan(hours), nil
}

// FormatSpan renders hours with day and hour tokens, e.g. 36 is "1d12h".
func FormatSpan(hours int) string {
	if hours <= 0 {
		return "0h"
	}
	var b strings.Builder
	if d := hours / 24; d > 0 {
		fmt.Fprintf(&b, "%dd", d)
	}
	if h := hours % 24; h > 0 {
		fmt.Fprintf(&b, "%dh", h)
	}
	return b.String()
}
