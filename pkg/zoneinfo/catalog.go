// Package zoneinfo is the time-zone catalog: zone lookup, live offsets, local
// zone detection and the city search behind the zone picker.
package zoneinfo

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
	_ "time/tzdata"

	"github.com/sahilm/fuzzy"
	"gopkg.in/yaml.v3"
)

//go:embed zones.yaml
var embeddedZones []byte

// ErrUnknownZone is returned when a zone name is not in the tz database.
var ErrUnknownZone = errors.New("zoneinfo: unknown zone")

// Zone is one row of the catalog table.
type Zone struct {
	Name            string   `yaml:"name"`
	AlternativeName string   `yaml:"alternativeName"`
	Cities          []string `yaml:"cities"`
}

// Searchable is a city-level pick offered by the zone picker.
type Searchable struct {
	Zone            string `json:"zone"`
	City            string `json:"city"`
	Display         string `json:"display"`
	OffsetInMinutes int    `json:"offsetInMinutes"`
}

// Catalog resolves zone names. It is safe for concurrent use.
type Catalog struct {
	zones  []Zone
	byName map[string]Zone

	mu   sync.Mutex
	locs map[string]*time.Location
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the catalog built from the embedded zone table.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Load(embeddedZones)
		if err != nil {
			panic(fmt.Sprintf("zoneinfo: embedded table: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Load parses a YAML zone table.
func Load(data []byte) (*Catalog, error) {
	var zones []Zone
	if err := yaml.Unmarshal(data, &zones); err != nil {
		return nil, fmt.Errorf("zoneinfo: parse table: %w", err)
	}
	c := &Catalog{
		byName: make(map[string]Zone, len(zones)),
		locs:   make(map[string]*time.Location),
	}
	for _, z := range zones {
		z.Name = strings.TrimSpace(z.Name)
		if z.Name == "" {
			continue
		}
		if _, dup := c.byName[z.Name]; dup {
			return nil, fmt.Errorf("zoneinfo: duplicate zone %q", z.Name)
		}
		c.byName[z.Name] = z
		c.zones = append(c.zones, z)
	}
	return c, nil
}

// Zones returns the table rows in declaration order.
func (c *Catalog) Zones() []Zone {
	out := make([]Zone, len(c.zones))
	copy(out, c.zones)
	return out
}

// Zone returns the table row for name, if present.
func (c *Catalog) Zone(name string) (Zone, bool) {
	z, ok := c.byName[name]
	return z, ok
}

// Location loads the location for name. Names outside the table are accepted
// when the tz database knows them.
func (c *Catalog) Location(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" || name == "Local" {
		return nil, fmt.Errorf("%w: %q", ErrUnknownZone, name)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if loc, ok := c.locs[name]; ok {
		return loc, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownZone, name)
	}
	c.locs[name] = loc
	return loc, nil
}

// Known reports whether name resolves to a location.
func (c *Catalog) Known(name string) bool {
	_, err := c.Location(name)
	return err == nil
}

// Offset returns the UTC offset of name at the given instant, in minutes.
func (c *Catalog) Offset(name string, at time.Time) (int, error) {
	loc, err := c.Location(name)
	if err != nil {
		return 0, err
	}
	_, secs := at.In(loc).Zone()
	return secs / 60, nil
}

// Searchables flattens the table into one pick per city.
func (c *Catalog) Searchables(at time.Time) []Searchable {
	out := make([]Searchable, 0, len(c.zones)*3)
	for _, z := range c.zones {
		offset, err := c.Offset(z.Name, at)
		if err != nil {
			continue
		}
		alt := z.AlternativeName
		if alt == "" {
			alt = z.Name
		}
		for _, city := range z.Cities {
			out = append(out, Searchable{
				Zone:            z.Name,
				City:            city,
				Display:         fmt.Sprintf("%s (%s)", city, alt),
				OffsetInMinutes: offset,
			})
		}
	}
	return out
}

// Search filters picks by case-insensitive substring on display, city and
// zone name. When nothing matches as a substring the picks are ranked by fuzzy
// match on the display instead. A limit <= 0 returns every match.
func (c *Catalog) Search(query string, at time.Time, limit int) []Searchable {
	all := c.Searchables(at)
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return clip(all, limit)
	}

	var matches []Searchable
	for _, s := range all {
		if strings.Contains(strings.ToLower(s.Display), q) ||
			strings.Contains(strings.ToLower(s.City), q) ||
			strings.Contains(strings.ToLower(s.Zone), q) {
			matches = append(matches, s)
		}
	}
	if len(matches) > 0 {
		return clip(matches, limit)
	}

	displays := make([]string, len(all))
	for i, s := range all {
		displays[i] = s.Display
	}
	found := fuzzy.Find(q, displays)
	sort.Stable(found)
	for _, m := range found {
		matches = append(matches, all[m.Index])
	}
	return clip(matches, limit)
}

func clip(list []Searchable, limit int) []Searchable {
	if limit > 0 && len(list) > limit {
		return list[:limit]
	}
	return list
}

// LocalZone returns the IANA name of the host zone, falling back to UTC.
func LocalZone() string {
	if tz := strings.TrimPrefix(os.Getenv("TZ"), ":"); tz != "" {
		if _, err := time.LoadLocation(tz); err == nil {
			return tz
		}
	}
	if target, err := filepath.EvalSymlinks("/etc/localtime"); err == nil {
		if i := strings.Index(target, "zoneinfo/"); i >= 0 {
			name := target[i+len("zoneinfo/"):]
			if _, err := time.LoadLocation(name); err == nil {
				return name
			}
		}
	}
	if name := time.Local.String(); name != "" && name != "Local" {
		return name
	}
	return "UTC"
}

// FormatOffset renders minutes as "UTC+09:00".
func FormatOffset(minutes int) string {
	sign := '+'
	if minutes < 0 {
		sign = '-'
		minutes = -minutes
	}
	return fmt.Sprintf("UTC%c%02d:%02d", sign, minutes/60, minutes%60)
}
