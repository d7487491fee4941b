package printers

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/zones/pkg/entry"
	"tableflip.dev/zones/pkg/zoneinfo"
)

// LabelWidth caps label columns.
const LabelWidth = 24

type PrettyPrint struct {
	ShowID  bool
	Out     io.Writer
	Catalog *zoneinfo.Catalog
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) catalog() *zoneinfo.Catalog {
	if pp.Catalog == nil {
		return zoneinfo.Default()
	}
	return pp.Catalog
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " entry")
	default:
		_, _ = c.Fprintln(pp.out(), " entries")
	}
}

// Entries renders the collection as a table with the live time in each zone.
func (pp *PrettyPrint) Entries(now time.Time, entries ...entry.Entry) {
	if len(entries) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " none\n\n")
		return
	}

	bold := color.New(color.Bold)
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	faint := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	header := []interface{}{bold.Sprint("#")}
	if pp.ShowID {
		header = append(header, bold.Sprint("ID"))
	}
	header = append(header, bold.Sprint("Label"), bold.Sprint("Zone"), bold.Sprint("Offset"), bold.Sprint("Now"))
	tbl.AddRow(header...)

	for i, e := range entries {
		row := []interface{}{i + 1}
		if pp.ShowID {
			row = append(row, y.Sprint(e.ID))
		}
		label := Label(e.Label)
		if label == "" {
			label = faint.Sprint("-")
		}
		offset, clock := "?", faint.Sprint("unknown zone")
		if loc, err := pp.catalog().Location(e.TZ); err == nil {
			local := now.In(loc)
			_, secs := local.Zone()
			offset = zoneinfo.FormatOffset(secs / 60)
			clock = local.Format("Mon 15:04")
		}
		row = append(row, label, e.TZ, offset, clock)
		tbl.AddRow(row...)
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(pp.out(), tbl)
	_, _ = fmt.Fprintln(pp.out(), "")
}

// Zones renders catalog search results.
func (pp *PrettyPrint) Zones(results ...zoneinfo.Searchable) {
	if len(results) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " no matching zones\n\n")
		return
	}
	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("City"), bold.Sprint("Zone"), bold.Sprint("Offset"))
	for _, r := range results {
		tbl.AddRow(r.Display, r.Zone, zoneinfo.FormatOffset(r.OffsetInMinutes))
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Label truncates a label to LabelWidth cells.
func Label(label string) string {
	label = strings.TrimSpace(label)
	return truncate.StringWithTail(label, LabelWidth, "…")
}

// JSON writes v as indented JSON.
func (pp *PrettyPrint) JSON(v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(pp.out(), string(b))
	return err
}
