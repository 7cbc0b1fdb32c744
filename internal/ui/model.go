package ui

import (
	"context"
	"reflect"

	"github.com/atomicstack/window-switcher/internal/activation"
	"github.com/atomicstack/window-switcher/internal/backend"
	"github.com/atomicstack/window-switcher/internal/query"
	"github.com/atomicstack/window-switcher/internal/selection"
	"github.com/atomicstack/window-switcher/internal/switcher"
	"github.com/atomicstack/window-switcher/internal/theme"
	uistate "github.com/atomicstack/window-switcher/internal/ui/state"
	"github.com/atomicstack/window-switcher/internal/window"
	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Previewer loads descriptive text for one window.
type Previewer interface {
	Preview(ctx context.Context, h window.Handle) ([]string, error)
}

// Deps are the collaborators a model talks to. Watcher and Previewer may be
// nil.
type Deps struct {
	Provider  switcher.Provider
	Port      activation.Port
	Previewer Previewer
	Watcher   *backend.Watcher
}

// Options configure layout and filtering.
type Options struct {
	Width       int
	Height      int
	ShowFooter  bool
	ShowPreview bool
	Query       string
	Matcher     query.Matcher
	FieldLimit  int
	BackendName string
}

// Model is the Bubble Tea model of one overlay session. It renders what the
// switcher engine tells it to through the switcher.Sink methods.
type Model struct {
	ctx    context.Context
	engine *switcher.Engine

	prompt      uistate.Prompt
	queryCursor cursor.Model
	cursorDirty bool

	displayed []window.Candidate
	selected  int

	previewer     Previewer
	showPreview   bool
	previewTarget window.Handle
	previewDirty  bool
	preview       *previewData
	previewSeq    int

	watcher *backend.Watcher

	errMsg      string
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	backendName string
	closed      bool

	handlers map[reflect.Type]msgHandler
}

// NewModel builds the model, takes the first snapshot and filters it with
// opts.Query.
func NewModel(ctx context.Context, deps Deps, opts Options) *Model {
	if ctx == nil {
		ctx = context.Background()
	}
	m := &Model{
		ctx:         ctx,
		selected:    selection.None,
		previewer:   deps.Previewer,
		showPreview: opts.ShowPreview && deps.Previewer != nil,
		watcher:     deps.Watcher,
		showFooter:  opts.ShowFooter,
		backendName: opts.BackendName,
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}

	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = *styles.Cursor
	}
	if styles.Query != nil {
		c.TextStyle = *styles.Query
	}
	c.SetChar(" ")
	m.queryCursor = c

	m.engine = switcher.New(ctx, deps.Provider, deps.Port, m, switcher.Options{
		Matcher:    opts.Matcher,
		FieldLimit: opts.FieldLimit,
		PageSize:   m.maxVisibleItems(),
	})
	m.prompt.Set(opts.Query, len([]rune(opts.Query)))
	m.engine.Dispatch(switcher.QueryChanged{Text: m.prompt.Text})
	m.syncViewport()
	m.registerHandlers()
	return m
}

// RenderList records the rows the engine wants on screen.
func (m *Model) RenderList(displayed []window.Candidate, selected int) {
	m.displayed = displayed
	m.selected = selected
}

// RenderPreview records the window whose preview should be shown. The load
// itself is issued at the end of the current update.
func (m *Model) RenderPreview(h window.Handle) {
	if h == m.previewTarget && m.preview != nil {
		return
	}
	m.previewTarget = h
	m.previewDirty = true
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if m.watcher != nil {
		cmds = append(cmds, waitForBackendEvent(m.watcher))
	}
	if cmd := m.queryCursor.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if cmd := m.takePreviewCmd(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.updateQueryCursor(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

// Engine exposes the switcher engine driving this model.
func (m *Model) Engine() *switcher.Engine {
	return m.engine
}

// Query returns the prompt text.
func (m *Model) Query() string {
	return m.prompt.Text
}

// Closed reports whether the session has been committed or dismissed.
func (m *Model) Closed() bool {
	return m.closed
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):      m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(previewLoadedMsg{}):  m.handlePreviewLoadedMsg,
		reflect.TypeOf(backendEventMsg{}):   m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):    m.handleBackendDoneMsg,
		reflect.TypeOf(teardownMsg{}):       m.handleTeardownMsg,
		reflect.TypeOf(tea.BlurMsg{}):       m.handleBlurMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

// dispatch forwards ev to the engine. A closed engine ends the program.
func (m *Model) dispatch(ev switcher.Event) tea.Cmd {
	res := m.engine.Dispatch(ev)
	if res.Closed {
		return m.close()
	}
	if res.Changed {
		m.syncViewport()
	}
	return nil
}

func (m *Model) close() tea.Cmd {
	if !m.closed {
		m.closed = true
		if m.watcher != nil {
			m.watcher.Stop()
		}
	}
	return tea.Quit
}

func (m *Model) syncViewport() {
	m.engine.Selection().EnsureVisible(m.maxVisibleItems())
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if !m.closed {
		if cmd := m.takePreviewCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if m.cursorDirty {
		m.cursorDirty = false
		m.queryCursor.Blink = false
		if cmd := m.queryCursor.BlinkCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	if len(cmds) == 1 {
		return cmds[0]
	}
	return tea.Batch(cmds...)
}
