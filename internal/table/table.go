// Package table is the terminal task pane: the editable data grid, the chart
// page and the command line, driven by tcell events.
package table

import (
	"context"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/qchart/internal/chartdata"
	"github.com/kobzarvs/qchart/internal/config"
	"github.com/kobzarvs/qchart/internal/grid"
	"github.com/kobzarvs/qchart/internal/locale"
	"github.com/kobzarvs/qchart/internal/logger"
	"github.com/kobzarvs/qchart/internal/render"
	"github.com/kobzarvs/qchart/internal/selection"
	"github.com/kobzarvs/qchart/internal/settings"
)

type Page int

const (
	PageData Page = iota
	PageChart
)

func (p Page) String() string {
	if p == PageChart {
		return "chart"
	}
	return "data"
}

type Mode int

const (
	ModeView Mode = iota
	ModeEdit
	ModeCommand
)

// EditKind says how an edit started: Append keeps the cell text, Clear
// replaces it with what is typed.
type EditKind int

const (
	EditAppend EditKind = iota
	EditClear
)

// CommitMode says how an edit ends.
type CommitMode int

const (
	CommitOverwrite CommitMode = iota
	CommitEscape
)

// BindingName is the defined name the grid is bound to in the workbook.
const BindingName = "qchartData"

// Host is the document the table reads from and writes back to.
type Host interface {
	ReadSelection(ctx context.Context) ([][]string, error)
	Selection() string
	Select(ref string) error
	Bind(ctx context.Context, name, ref string) error
	ReadBinding(ctx context.Context, name string) ([][]string, error)
	WriteBinding(ctx context.Context, name string, m [][]string) error
	Save() error
}

type Options struct {
	Config    config.Config
	Clipboard Clipboard
	Host      Host
	Settings  *settings.Manager
	Locale    *locale.Provider
	// Post runs fn on the UI goroutine. Async host results go through it.
	Post func(fn func())
	// ExportPath is the default target of :export without an argument.
	ExportPath string
}

type editState struct {
	kind  EditKind
	at    grid.RenderIndex
	text  []rune
	caret int
}

type view struct {
	page Page
	mode Mode
}

type keyHandler func(ev *tcell.EventKey) bool

type keymapSet struct {
	grid  map[string]string
	edit  map[string]string
	chart map[string]string
}

// Table owns the grid, its selection and the chart built from it.
type Table struct {
	cfg      config.Config
	grid     *grid.Grid
	sel      *selection.Selection
	data     *chartdata.Data
	chart    *render.Renderer
	clip     Clipboard
	host     Host
	settings *settings.Manager
	loc      *locale.Provider
	post     func(fn func())
	keymap   keymapSet
	dispatch map[view]keyHandler
	styles   styles

	page Page
	mode Mode
	// returnMode is the mode restored when the command line closes.
	returnMode Mode
	edit       editState

	cmd       []rune
	cmdCursor int

	status    string
	statusErr bool
	dirty     bool
	// quitRequested is set once :wq has saved.
	quitRequested bool

	pasting  bool
	pasteBuf strings.Builder

	deferred []func()

	scrollRow int
	scrollCol int
	width     int
	height    int

	seriesCursor int
	exportPath   string

	dragging  bool
	lastClick time.Time
	lastCell  grid.RenderIndex

	layout layout
	// restore is the cell selected once host data has loaded.
	restore *grid.RenderIndex
}

func New(opts Options) *Table {
	cfg := opts.Config
	t := &Table{
		cfg:        cfg,
		grid:       grid.New(),
		data:       chartdata.New(),
		clip:       opts.Clipboard,
		host:       opts.Host,
		settings:   opts.Settings,
		loc:        opts.Locale,
		post:       opts.Post,
		exportPath: opts.ExportPath,
		styles:     newStyles(cfg.Theme),
		keymap: keymapSet{
			grid:  cloneMap(cfg.Keymap.Grid),
			edit:  cloneMap(cfg.Keymap.Edit),
			chart: cloneMap(cfg.Keymap.Chart),
		},
	}
	if t.clip == nil {
		t.clip = &memoryClipboard{}
	}
	if t.loc == nil {
		t.loc = locale.New(cfg.Editor.Language)
	}
	if t.post == nil {
		t.post = func(fn func()) { fn() }
	}
	if t.exportPath == "" {
		t.exportPath = "chart." + cfg.Chart.ExportFormat
	}
	t.sel = selection.New(t.grid)
	t.sel.OnCollapse = func() { t.setStatus("") }
	_ = t.sel.SetStart(t.firstCell())

	t.chart = render.New(render.Column)
	t.applyChartOptions(cfg.Chart)
	if t.settings != nil {
		t.applySettings(t.settings.Chart(), t.settings.People())
	}

	t.dispatch = map[view]keyHandler{
		{PageData, ModeView}:     t.handleGridKey,
		{PageData, ModeEdit}:     t.handleEditKey,
		{PageData, ModeCommand}:  t.handleCommandKey,
		{PageChart, ModeView}:    t.handleChartKey,
		{PageChart, ModeCommand}: t.handleCommandKey,
	}
	return t
}

func cloneMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// firstCell is the top left cell that accepts input.
func (t *Table) firstCell() grid.RenderIndex {
	at := grid.RenderIndex{Row: 1, Col: 1}
	if !t.grid.Editable(at) {
		at.Col = 2
	}
	return at
}

func (t *Table) Grid() *grid.Grid                { return t.grid }
func (t *Table) Selection() *selection.Selection { return t.sel }
func (t *Table) ChartData() *chartdata.Data      { return t.data }
func (t *Table) Chart() *render.Renderer         { return t.chart }
func (t *Table) Page() Page                      { return t.page }
func (t *Table) Mode() Mode                      { return t.mode }
func (t *Table) Status() string                  { return t.status }
func (t *Table) Dirty() bool                     { return t.dirty }

// SetPage switches between the data and chart pages.
func (t *Table) SetPage(p Page) { t.setPage(p) }

// RestoreCursor selects p after the next host load, if it is inside the
// loaded grid.
func (t *Table) RestoreCursor(p grid.RenderIndex) { t.restore = &p }

// SetMatrix replaces the grid content, as when data arrives from the host.
func (t *Table) SetMatrix(m [][]string) {
	t.grid.Replace(m)
	t.data.SetChartData(t.grid.Matrix())
	_ = t.sel.SetStart(t.firstCell())
	t.scrollRow, t.scrollCol = 0, 0
}

// HandleEvent processes one terminal event and reports whether the
// application should quit.
func (t *Table) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventPaste:
		if ev.Start() {
			t.pasting = true
			t.pasteBuf.Reset()
			return false
		}
		t.pasting = false
		t.paste(t.pasteBuf.String())
		return false
	case *tcell.EventKey:
		if t.pasting {
			t.collectPaste(ev)
			return false
		}
		return t.HandleKey(ev)
	case *tcell.EventMouse:
		t.HandleMouse(ev)
	case *tcell.EventInterrupt:
		if fn, ok := ev.Data().(func()); ok {
			fn()
		}
	}
	return false
}

// HandleKey routes a key through the dispatch table of the active page and
// mode.
func (t *Table) HandleKey(ev *tcell.EventKey) bool {
	if t.mode != ModeCommand && t.status != "" {
		t.setStatus("")
	}
	h, ok := t.dispatch[view{t.page, t.mode}]
	if !ok {
		logger.Warn("no key handler", "page", t.page.String(), "mode", int(t.mode))
		return false
	}
	return h(ev)
}

func (t *Table) collectPaste(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyRune:
		t.pasteBuf.WriteRune(ev.Rune())
	case tcell.KeyEnter:
		t.pasteBuf.WriteByte('\n')
	case tcell.KeyTab:
		t.pasteBuf.WriteByte('\t')
	}
}

// Defer queues fn to run after the current event has been handled and the
// screen drawn.
func (t *Table) Defer(fn func()) {
	t.deferred = append(t.deferred, fn)
}

// RunDeferred runs queued work in order and reports whether anything ran.
// Work queued by deferred functions waits for the next call.
func (t *Table) RunDeferred() bool {
	if len(t.deferred) == 0 {
		return false
	}
	queue := t.deferred
	t.deferred = nil
	for _, fn := range queue {
		fn()
	}
	return true
}

func (t *Table) setStatus(msg string) {
	t.status = msg
	t.statusErr = false
}

func (t *Table) setError(key string, err error) {
	t.status = t.loc.Get(key) + " " + err.Error()
	t.statusErr = true
	logger.Warn(t.loc.Get(key), "error", err)
}

// markChanged records a grid mutation and refreshes the chart snapshot.
func (t *Table) markChanged() {
	t.dirty = true
	t.sel.Clamp()
	t.snapshot()
}

// snapshot hands the current grid to the chart.
func (t *Table) snapshot() {
	t.data.SetChartData(t.grid.Matrix())
}

func (t *Table) setPage(p Page) {
	if t.page == p {
		return
	}
	if t.page == PageData {
		if t.mode == ModeEdit {
			t.commitEdit(CommitOverwrite)
		}
		t.snapshot()
	}
	t.page = p
	t.mode = ModeView
	t.seriesCursor = 0
}
