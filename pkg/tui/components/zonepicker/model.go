package zonepicker

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/v2/list"
	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/zones/pkg/tui/events"
	"tableflip.dev/zones/pkg/tui/theme"
	"tableflip.dev/zones/pkg/tui/ui"
	"tableflip.dev/zones/pkg/zoneinfo"
)

const placeholder = "Search by city or timezone..."

// Model is the city search used to change an entry's zone. The text input
// drives the catalog search; the list shows and selects the matches.
type Model struct {
	id      events.ComponentID
	catalog *zoneinfo.Catalog
	now     func() time.Time
	theme   theme.ModalTheme

	input   textinput.Model
	list    list.Model
	results []zoneinfo.Searchable
	width   int
	height  int
}

var _ ui.Component = (*Model)(nil)

// New constructs a picker over catalog. now stamps offsets of the results.
func New(id events.ComponentID, catalog *zoneinfo.Catalog, now func() time.Time, th theme.ModalTheme) *Model {
	if now == nil {
		now = time.Now
	}
	in := textinput.New()
	in.Prompt = "› "
	in.Placeholder = placeholder

	l := list.New(nil, zoneDelegate{theme: th}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	m := &Model{
		id:      id,
		catalog: catalog,
		now:     now,
		theme:   th,
		input:   in,
		list:    l,
	}
	m.SetSize(48, 12)
	m.search()
	return m
}

// Open resets the picker with query and focuses the input.
func (m *Model) Open(query string) tea.Cmd {
	m.input.SetValue(query)
	m.input.CursorEnd()
	m.search()
	return m.input.Focus()
}

// Close blurs the input.
func (m *Model) Close() {
	m.input.Blur()
}

// Query is the current search text.
func (m *Model) Query() string { return m.input.Value() }

// Results are the current matches.
func (m *Model) Results() []zoneinfo.Searchable { return m.results }

// Index is the position of the highlighted match.
func (m *Model) Index() int { return m.list.Index() }

// Selected returns the highlighted match.
func (m *Model) Selected() (zoneinfo.Searchable, bool) {
	it, ok := m.list.SelectedItem().(zoneItem)
	if !ok {
		return zoneinfo.Searchable{}, false
	}
	return it.Searchable, true
}

// SetSize bounds the rendered modal.
func (m *Model) SetSize(width, height int) {
	m.width = max(width, 24)
	m.height = max(height, 6)
	inner := max(m.width-m.theme.Frame.GetHorizontalFrameSize(), 1)
	m.input.SetWidth(max(inner-4, 8))
	m.list.SetSize(inner, m.rows())
}

// Init implements ui.Component.
func (m *Model) Init() tea.Cmd { return nil }

// Update handles navigation and forwards typing to the input.
func (m *Model) Update(msg tea.Msg) (ui.Component, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "up", "ctrl+p":
			m.list.CursorUp()
			return m, nil
		case "down", "ctrl+n":
			m.list.CursorDown()
			return m, nil
		case "pgup":
			m.jump(-m.rows())
			return m, nil
		case "pgdown":
			m.jump(m.rows())
			return m, nil
		case "enter":
			pick, ok := m.Selected()
			if !ok {
				return m, events.Status("No zone matches "+m.input.Value(), true)
			}
			id := m.id
			return m, func() tea.Msg { return events.ZonePickedMsg{Component: id, Zone: pick} }
		case "esc":
			id := m.id
			return m, func() tea.Msg { return events.PickerCancelMsg{Component: id} }
		}
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == before {
		return m, cmd
	}
	m.search()
	id, q, n := m.id, m.input.Value(), len(m.results)
	return m, tea.Batch(cmd, func() tea.Msg {
		return events.PickerQueryMsg{Component: id, Query: q, Results: n}
	})
}

func (m *Model) search() {
	m.results = m.catalog.Search(m.input.Value(), m.now(), 0)
	items := make([]list.Item, 0, len(m.results))
	for _, r := range m.results {
		items = append(items, zoneItem{r})
	}
	m.list.SetItems(items)
	m.list.ResetSelected()
}

func (m *Model) jump(delta int) {
	if len(m.results) == 0 {
		return
	}
	m.list.Select(max(0, min(m.list.Index()+delta, len(m.results)-1)))
}

// rows is the number of results that fit under the input.
func (m *Model) rows() int {
	return max(m.height-m.theme.Frame.GetVerticalFrameSize()-3, 1)
}

// View renders the picker as a framed modal.
func (m *Model) View() string {
	lines := []string{
		m.theme.Title.Render("Change zone"),
		m.input.View(),
		m.theme.Muted.Render(fmt.Sprintf("%d matches", len(m.results))),
	}
	if len(m.results) > 0 {
		lines = append(lines, m.list.View())
	}
	return m.theme.Frame.Width(m.width).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

type zoneItem struct {
	zoneinfo.Searchable
}

func (z zoneItem) FilterValue() string { return z.Display + " " + z.Zone }

// zoneDelegate draws one match per line: the city and its offset.
type zoneDelegate struct {
	theme theme.ModalTheme
}

func (zoneDelegate) Height() int                             { return 1 }
func (zoneDelegate) Spacing() int                            { return 0 }
func (zoneDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d zoneDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	z, ok := item.(zoneItem)
	if !ok {
		return
	}
	name := max(m.Width()-11, 1)
	line := fmt.Sprintf("%-*s %s", name, truncate.StringWithTail(z.Display, uint(name), "…"),
		zoneinfo.FormatOffset(z.OffsetInMinutes))
	if index == m.Index() {
		line = d.theme.Selected.Render(line)
	} else {
		line = d.theme.Body.Render(line)
	}
	_, _ = fmt.Fprint(w, line)
}
