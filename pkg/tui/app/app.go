package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/zones/pkg/app"
	"tableflip.dev/zones/pkg/board"
	"tableflip.dev/zones/pkg/entry"
	"tableflip.dev/zones/pkg/logging"
	"tableflip.dev/zones/pkg/share"
	"tableflip.dev/zones/pkg/tui/components/help"
	"tableflip.dev/zones/pkg/tui/components/strip"
	"tableflip.dev/zones/pkg/tui/components/zonepicker"
	"tableflip.dev/zones/pkg/tui/events"
	"tableflip.dev/zones/pkg/tui/theme"
)

const pickerID events.ComponentID = "zonepicker"

type mode int

const (
	modeNormal mode = iota
	modeLabel
	modePicker
	modeConfirm
	modeHelp
)

// Layout is what the board looks like: editable cards or plain headings.
type Layout int

const (
	LayoutEdit Layout = iota
	LayoutView
)

func (l Layout) String() string {
	if l == LayoutView {
		return "view"
	}
	return "edit"
}

type confirmAction int

const (
	confirmNone confirmAction = iota
	confirmDelete
	confirmReset
)

// Options tunes the root model.
type Options struct {
	Context context.Context
	Theme   *theme.Theme
	Logger  *slog.Logger
	// Copy publishes a share link. nil means the system clipboard.
	Copy func(url string) error
	// Layout is the starting layout.
	Layout Layout
}

// Model is the root Bubble Tea model for a zones session.
type Model struct {
	ctx   context.Context
	sess  *app.Session
	theme theme.Theme
	log   *slog.Logger
	copy  func(url string) error

	snap        *board.Snapshot
	projections []app.Projection
	now         time.Time
	selected    int
	focus       int
	cardOffset  int
	layout      Layout
	mode        mode

	strips map[string]*strip.Model
	picker *zonepicker.Model
	help   *help.Model
	input  textinput.Model

	confirm   confirmAction
	confirmID string
	editID    string

	status     string
	statusErr  bool
	stale      bool
	frameDue   bool
	termWidth  int
	termHeight int
}

// New builds the root model over a started session.
func New(sess *app.Session, opts Options) *Model {
	th := theme.Default()
	if opts.Theme != nil {
		th = *opts.Theme
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	cp := opts.Copy
	if cp == nil {
		cp = share.Copy
	}
	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = "Name"

	m := &Model{
		ctx:    ctx,
		sess:   sess,
		theme:  th,
		log:    logging.OrDiscard(opts.Logger),
		copy:   cp,
		now:    sess.Clock.Now(),
		layout: opts.Layout,
		strips: make(map[string]*strip.Model),
		input:  in,
	}
	m.picker = zonepicker.New(pickerID, sess.Catalog(), func() time.Time { return m.now }, th.Modal)
	m.help = help.New(th.Modal.Frame, 60, 24)
	m.applySnapshot(sess.Board.Snapshot())
	return m
}

// Init starts listening for clock ticks and storage changes.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		events.WaitTick(m.sess.Clock.C()),
		events.WaitStorage(m.sess.Events()),
	)
}

// Update routes messages to the key handlers and components.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.applySizes()
	case events.TickMsg:
		m.now = msg.At
		m.reproject()
		cmds = append(cmds, events.WaitTick(m.sess.Clock.C()))
	case events.StorageChangedMsg:
		m.log.Debug("tui: storage changed", "event", msg.Describe())
		m.stale = true
		m.setStatus("Saved zones changed elsewhere · r to reload")
		cmds = append(cmds, events.WaitStorage(m.sess.Events()))
	case events.ScrollFrameMsg:
		m.sess.Scroll.Flush()
	case events.ZonePickedMsg:
		m.log.Debug("tui: zone picked", "pick", msg.Describe())
		m.applyZone(msg)
	case events.PickerQueryMsg:
		m.log.Debug("tui: picker query", "query", msg.Query, "results", msg.Results)
	case events.PickerCancelMsg:
		m.closePicker()
		m.setStatus("Zone unchanged")
	case events.StatusMsg:
		m.status, m.statusErr = msg.Text, msg.Error
	case tea.KeyPressMsg:
		m.handleKeyPress(msg, &cmds)
	case tea.MouseWheelMsg:
		if s := m.focusedStrip(); s != nil && m.mode == modeNormal {
			s.Update(msg)
		}
	}

	if m.frameDue {
		m.frameDue = false
		cmds = append(cmds, events.ScrollFrame())
	}
	return m, tea.Batch(cmds...)
}

// applySnapshot adopts a new board snapshot. Focus stays on the same entry
// when it still exists.
func (m *Model) applySnapshot(snap *board.Snapshot) {
	focusedID := ""
	if m.snap != nil && m.focus < m.snap.Len() {
		focusedID = m.snap.At(m.focus).ID
	}
	m.snap = snap
	if i := snap.Index(focusedID); i >= 0 {
		m.focus = i
	}
	m.focus = max(0, min(m.focus, snap.Len()-1))
	m.reproject()
	m.syncStrips()
}

func (m *Model) focusOn(snap *board.Snapshot, id string) {
	m.applySnapshot(snap)
	if i := snap.Index(id); i >= 0 {
		m.focus = i
	}
	m.ensureCardVisible()
}

func (m *Model) reproject() {
	m.projections = m.sess.Project(m.now, m.selected)
	for _, p := range m.projections {
		if s, ok := m.strips[p.Entry.ID]; ok {
			s.SetTimeline(p.Timeline)
		}
	}
}

// syncStrips creates a strip for every new entry, lined up with the others,
// and forgets strips of removed entries.
func (m *Model) syncStrips() {
	var ref *strip.Model
	for _, s := range m.strips {
		ref = s
		break
	}
	live := make(map[string]bool, len(m.projections))
	for _, p := range m.projections {
		live[p.Entry.ID] = true
		if _, ok := m.strips[p.Entry.ID]; ok {
			continue
		}
		s := strip.New(m.theme.Block)
		s.SetTimeline(p.Timeline)
		s.SetSize(m.stripWidth(), strip.Height)
		vp := s.Viewport()
		if ref != nil {
			rv := ref.Viewport()
			frac := rv.ScrollOffset() / max(rv.ScrollRange(), 1)
			vp.SetScrollOffset(frac * vp.ScrollRange())
		}
		id := p.Entry.ID
		vp.OnScroll = func() {
			if m.sess.Scroll.Notify(id) {
				m.frameDue = true
			}
		}
		m.sess.Scroll.Register(id, vp)
		m.strips[id] = s
	}
	for id := range m.strips {
		if !live[id] {
			delete(m.strips, id)
		}
	}
}

func (m *Model) applySizes() {
	if m.termWidth == 0 || m.termHeight == 0 {
		return
	}
	for _, s := range m.strips {
		s.SetSize(m.stripWidth(), strip.Height)
	}
	m.input.SetWidth(max(m.stripWidth()-2, 8))
	m.picker.SetSize(min(m.termWidth-4, 64), min(m.termHeight-4, 20))
	m.help.SetSize(min(m.termWidth-4, 64), m.termHeight-4)
	m.ensureCardVisible()
}

func (m *Model) stripWidth() int {
	if m.termWidth == 0 {
		return 0
	}
	return max(m.termWidth-m.theme.Card.Frame.GetHorizontalFrameSize(), 1)
}

// cardsPerPage is how many cards fit between the header and the footer.
func (m *Model) cardsPerPage() int {
	body := m.termHeight - headerHeight - footerHeight
	return max(body/cardHeight(m.theme), 1)
}

func (m *Model) ensureCardVisible() {
	per := m.cardsPerPage()
	if m.focus < m.cardOffset {
		m.cardOffset = m.focus
	}
	if m.focus >= m.cardOffset+per {
		m.cardOffset = m.focus - per + 1
	}
	m.cardOffset = max(0, min(m.cardOffset, m.snap.Len()-1))
}

func (m *Model) focusedEntry() (entry.Entry, bool) {
	if m.snap == nil || m.focus < 0 || m.focus >= m.snap.Len() {
		return entry.Entry{}, false
	}
	return m.snap.At(m.focus), true
}

func (m *Model) focusedStrip() *strip.Model {
	e, ok := m.focusedEntry()
	if !ok {
		return nil
	}
	return m.strips[e.ID]
}

func (m *Model) hours() int {
	if len(m.projections) == 0 {
		return 0
	}
	return len(m.projections[0].Timeline.Blocks)
}

func (m *Model) setStatus(msg string) {
	m.status, m.statusErr = msg, false
}

func (m *Model) setError(msg string) {
	m.status, m.statusErr = msg, true
}

// Run drives the UI until the user quits.
func Run(ctx context.Context, sess *app.Session, opts Options) error {
	opts.Context = ctx
	p := tea.NewProgram(New(sess, opts), tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
