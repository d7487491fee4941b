package snake

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/manifoldco/promptui"

	"tableflip.dev/zones/pkg/zoneinfo"
)

// PickZone lets the user search the catalog by city or zone and pick one.
func PickZone(in io.Reader, out io.Writer, c *zoneinfo.Catalog, now time.Time) (zoneinfo.Searchable, error) {
	if c == nil {
		c = zoneinfo.Default()
	}
	items := c.Searchables(now)

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   "➜  {{ .Display | bold }} {{ .Zone | green }}",
		Inactive: "   {{ .Display }} {{ .Zone | cyan }}",
		Selected: "{{ .Display | bold }} ({{ .Zone }})",
	}

	searcher := func(input string, index int) bool {
		s := items[index]
		haystack := strings.ToLower(s.Display + " " + s.Zone)
		input = strings.TrimSpace(strings.ToLower(input))
		return strings.Contains(haystack, input)
	}

	prompt := promptui.Select{
		HideHelp:          true,
		Label:             "Search by city or timezone",
		Items:             items,
		Templates:         templates,
		Size:              10,
		Searcher:          searcher,
		StartInSearchMode: true,
		Stdin:             io.NopCloser(in),
		Stdout:            nopCloser{out},
	}

	i, _, err := prompt.Run()
	if err != nil {
		return zoneinfo.Searchable{}, fmt.Errorf("snake: zone prompt failed: %w", err)
	}
	return items[i], nil
}
