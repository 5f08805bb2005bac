package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/clive/scribe/internal/buffer"
	"github.com/clive/scribe/internal/config"
	"github.com/clive/scribe/internal/dialog"
	"github.com/clive/scribe/internal/highlight"
	"github.com/clive/scribe/internal/recent"
	"github.com/clive/scribe/internal/session"
	"github.com/clive/scribe/internal/storage"
	"github.com/mattn/go-runewidth"
)

// EffectRunner performs the file work a session effect describes
type EffectRunner interface {
	Run(ctx context.Context, eff session.Effect) session.Message
}

// RecentFiles is the history shown in the recent files overlay
type RecentFiles interface {
	Touch(path string, at time.Time) error
	Remove(path string) error
	List(n int) ([]recent.Entry, error)
}

// ConfigSaver applies edit to the stored config file
type ConfigSaver func(edit func(*config.Config)) error

// Deps are the services the model talks to
type Deps struct {
	Runner     EffectRunner
	Requests   <-chan *dialog.Request // Terminal picker requests; nil with native dialogs
	Recent     RecentFiles            // Optional
	SaveConfig ConfigSaver
	Logger     *slog.Logger
}

// Model is the root Bubble Tea model
type Model struct {
	// Terminal dimensions
	width  int
	height int
	ready  bool

	cfg        *config.Config
	runner     EffectRunner
	requests   <-chan *dialog.Request
	recent     RecentFiles
	saveConfig ConfigSaver
	logger     *slog.Logger

	// Cancelled on quit so blocked pickers give up
	ctx    context.Context
	cancel context.CancelFunc

	// Editing session
	state      session.State
	startup    session.Effect
	activity   string // What the busy spinner says
	savedText  string // Text last read from or written to disk
	savingText string // Snapshot of the save in flight

	// Viewport
	top            int // First buffer line on screen
	left           int // First screen column when not wrapping
	highlighter    *highlight.Highlighter
	highlightedExt string // Extension the highlighter was chosen for
	title          string

	// Overlays
	overlay       overlay
	pickReq       *dialog.Request
	filepicker    filepicker.Model
	saveInput     textinput.Model
	recentEntries []recent.Entry
	recentIdx     int

	// Status line
	status    string
	statusErr bool

	spinner spinner.Model
	help    help.Model
	keys    KeyMap
	debug   DebugPanel

	quitting bool
}

// NewRootModel creates the editor. With a path the file is opened on start.
func NewRootModel(cfg *config.Config, path string, deps Deps) Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	ctx, cancel := context.WithCancel(context.Background())
	state, eff := session.New(path)

	m := Model{
		cfg:            cfg,
		runner:         deps.Runner,
		requests:       deps.Requests,
		recent:         deps.Recent,
		saveConfig:     deps.SaveConfig,
		logger:         logger,
		ctx:            ctx,
		cancel:         cancel,
		state:          state,
		startup:        eff,
		activity:       activityFor(eff),
		highlighter:    highlight.New(path, "", cfg.Theme),
		highlightedExt: filepath.Ext(path),
		saveInput:      newSaveInput(),
		spinner:        spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(StatusBusyStyle)),
		help:           help.New(),
		keys:           DefaultKeyMap(),
		debug:          NewDebugPanel(cfg.Debug),
	}
	if eff != nil {
		m.debug.AddEvent("effect", describeEffect(eff))
	}
	m.title = m.windowTitle()
	return m
}

// Init starts the startup effect and the picker poll
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.SetWindowTitle(m.title)}
	if m.startup != nil {
		cmds = append(cmds, runEffectCmd(m.ctx, m.runner, m.startup), m.spinner.Tick)
	}
	if m.requests != nil {
		cmds = append(cmds, waitForPickRequest(m.requests))
	}
	return tea.Batch(cmds...)
}

// State returns the editing session
func (m Model) State() session.State {
	return m.state
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		inputWidth := m.width - 16
		if inputWidth < 10 {
			inputWidth = 10
		}
		m.saveInput.Width = inputWidth
		m.filepicker.Height = m.overlayListHeight()
		m.scrollToCursor()
		return m, nil

	case session.Message:
		return m, m.dispatch(msg)

	case pickRequestMsg:
		m.debug.AddEvent("picker", msg.req.Mode.String())
		cmd := m.showPickRequest(msg.req)
		return m, tea.Batch(cmd, waitForPickRequest(m.requests))

	case pickerStoppedMsg:
		return m, nil

	case spinner.TickMsg:
		if !m.state.Busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case configSavedMsg:
		if msg.err != nil {
			m.logger.Warn("config save failed", "error", msg.err)
			m.setError("Failed to save config: " + msg.err.Error())
		}
		return m, nil

	case recentLoadedMsg:
		if msg.err != nil {
			m.logger.Warn("recent files unavailable", "error", msg.err)
			m.setError("Recent files unavailable: " + msg.err.Error())
			return m, nil
		}
		if m.overlay == overlayNone {
			m.recentEntries = msg.entries
			m.recentIdx = 0
			m.overlay = overlayRecent
		}
		return m, nil

	case recentTouchedMsg:
		if msg.err != nil {
			m.logger.Warn("recent files update failed", "path", msg.path, "error", msg.err)
		}
		return m, nil

	case clipboardReadMsg:
		if msg.err != nil {
			m.setError("Clipboard unavailable: " + msg.err.Error())
			return m, nil
		}
		if msg.text == "" || m.overlay != overlayNone {
			return m, nil
		}
		return m, m.dispatch(session.EditPerformed{Action: buffer.Paste{Text: msg.text}})

	case clipboardWrittenMsg:
		if msg.err != nil {
			m.setError("Clipboard unavailable: " + msg.err.Error())
			return m, nil
		}
		m.setStatus(fmt.Sprintf("Copied %d lines", msg.lines))
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// The file picker reads directories through its own messages
	if m.overlay == overlayOpen {
		return m.updateOverlay(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m.requestQuit()
	}
	if m.overlay != overlayNone {
		return m.updateOverlay(msg)
	}

	switch {
	case key.Matches(msg, m.keys.New):
		return m, m.dispatch(session.NewFileRequested{})
	case key.Matches(msg, m.keys.Open):
		return m, m.dispatch(session.OpenFileRequested{})
	case key.Matches(msg, m.keys.Save):
		return m, m.dispatch(session.SaveFileRequested{})
	case key.Matches(msg, m.keys.SaveAs):
		return m, m.dispatch(session.SaveAsRequested{})
	case key.Matches(msg, m.keys.Recent):
		if m.recent == nil {
			m.setError("Recent files are unavailable")
			return m, nil
		}
		return m, loadRecentCmd(m.recent, m.cfg.RecentLimit)
	case key.Matches(msg, m.keys.Theme):
		return m, m.nextTheme()
	case key.Matches(msg, m.keys.Wrap):
		return m, m.toggleWrap()
	case key.Matches(msg, m.keys.Paste):
		return m, readClipboardCmd()
	case key.Matches(msg, m.keys.Copy):
		return m, writeClipboardCmd(m.state.Buffer.String(), m.state.Buffer.LineCount())
	case key.Matches(msg, m.keys.Help):
		m.overlay = overlayHelp
		return m, nil
	}

	if action := m.actionFor(msg); action != nil {
		return m, m.dispatch(session.EditPerformed{Action: action})
	}
	return m, nil
}

// actionFor maps a key to a buffer action, or nil for unbound keys
func (m Model) actionFor(msg tea.KeyMsg) buffer.Action {
	motions := []struct {
		binding key.Binding
		motion  buffer.Motion
		count   int
	}{
		{m.keys.WordLeft, buffer.MotionWordLeft, 1},
		{m.keys.WordRight, buffer.MotionWordRight, 1},
		{m.keys.Left, buffer.MotionLeft, 1},
		{m.keys.Right, buffer.MotionRight, 1},
		{m.keys.Up, buffer.MotionUp, 1},
		{m.keys.Down, buffer.MotionDown, 1},
		{m.keys.Top, buffer.MotionDocumentStart, 1},
		{m.keys.Bottom, buffer.MotionDocumentEnd, 1},
		{m.keys.Home, buffer.MotionHome, 1},
		{m.keys.End, buffer.MotionEnd, 1},
		{m.keys.PageUp, buffer.MotionUp, m.pageSize()},
		{m.keys.PageDown, buffer.MotionDown, m.pageSize()},
	}
	for _, mv := range motions {
		if key.Matches(msg, mv.binding) {
			return buffer.Move{Motion: mv.motion, Count: mv.count}
		}
	}

	switch msg.Type {
	case tea.KeyRunes:
		if msg.Paste {
			return buffer.Paste{Text: string(msg.Runes)}
		}
		if msg.Alt {
			return nil
		}
		if len(msg.Runes) == 1 {
			return buffer.Insert{Rune: msg.Runes[0]}
		}
		return buffer.Paste{Text: string(msg.Runes)}
	case tea.KeySpace:
		return buffer.Insert{Rune: ' '}
	case tea.KeyTab:
		return buffer.Insert{Rune: '\t'}
	case tea.KeyEnter:
		return buffer.Enter{}
	case tea.KeyBackspace:
		return buffer.Backspace{}
	case tea.KeyDelete:
		return buffer.Delete{}
	}
	return nil
}

// dispatch feeds msg through the session reducer and turns the resulting
// effect into a command
func (m *Model) dispatch(msg session.Message) tea.Cmd {
	wasBusy := m.state.Busy
	next, eff := session.Update(m.state, msg)
	m.state = next
	m.debug.AddEvent("msg", describeMessage(msg))

	var cmds []tea.Cmd
	if eff != nil {
		m.debug.AddEvent("effect", describeEffect(eff))
		m.activity = activityFor(eff)
		if save, ok := eff.(session.SaveFile); ok {
			m.savingText = save.Contents
		}
		cmds = append(cmds, runEffectCmd(m.ctx, m.runner, eff), m.spinner.Tick)
	}

	switch msg := msg.(type) {
	case session.EditPerformed:
		m.scrollToCursor()

	case session.NewFileRequested:
		if wasBusy {
			m.setError("Busy: wait for the current file operation")
			break
		}
		m.resetView("", "")
		m.savedText = ""
		m.setStatus("New file")

	case session.OpenFileRequested, session.SaveFileRequested, session.SaveAsRequested:
		if wasBusy {
			m.setError("Busy: wait for the current file operation")
		}

	case session.OpenFileCompleted:
		if msg.Err != nil {
			cmds = append(cmds, m.reportError("Open", msg.Err))
			break
		}
		m.resetView(msg.Path, msg.Contents)
		m.savedText = m.state.Buffer.String()
		m.setStatus("Opened " + msg.Path)
		cmds = append(cmds, touchRecentCmd(m.recent, msg.Path))

	case session.SaveFileCompleted:
		if msg.Err != nil {
			cmds = append(cmds, m.reportError("Save", msg.Err))
			break
		}
		// Save As may change the language
		if m.highlighter == nil || filepath.Ext(msg.Path) != m.highlightedExt {
			m.highlighter = highlight.New(msg.Path, m.state.Buffer.String(), m.cfg.Theme)
			m.highlightedExt = filepath.Ext(msg.Path)
		}
		m.savedText = m.savingText
		m.setStatus("Saved " + msg.Path)
		cmds = append(cmds, touchRecentCmd(m.recent, msg.Path))
	}

	if !m.state.Busy {
		m.activity = ""
	}
	if title := m.windowTitle(); title != m.title {
		m.title = title
		cmds = append(cmds, tea.SetWindowTitle(title))
	}
	return tea.Batch(cmds...)
}

// reportError shows a failed open or save. A dismissed dialog is not an error.
func (m *Model) reportError(op string, err error) tea.Cmd {
	if errors.Is(err, dialog.ErrClosed) {
		m.logger.Debug("dialog closed", "op", strings.ToLower(op))
		return nil
	}

	m.logger.Warn("file operation failed", "op", strings.ToLower(op), "error", err)

	var ioErr *storage.IOError
	if !errors.As(err, &ioErr) {
		m.setError(op + " failed: " + err.Error())
		return nil
	}
	detail := ioErr.Path
	if detail == "" && ioErr.Err != nil {
		// The dialog itself failed
		detail = ioErr.Err.Error()
	}
	m.setError(fmt.Sprintf("%s failed: %s: %s", op, ioErr.Kind, detail))

	// Forget history entries that no longer exist
	if ioErr.Kind == storage.KindNotFound && m.recent != nil {
		store, path := m.recent, ioErr.Path
		return func() tea.Msg {
			return recentTouchedMsg{path: path, err: store.Remove(path)}
		}
	}
	return nil
}

// resetView starts the viewport over for a different document
func (m *Model) resetView(path, contents string) {
	m.top, m.left = 0, 0
	m.highlighter = highlight.New(path, contents, m.cfg.Theme)
	m.highlightedExt = filepath.Ext(path)
}

func (m *Model) nextTheme() tea.Cmd {
	m.cfg.Theme = m.cfg.NextTheme(m.cfg.Theme)
	m.highlighter.SetTheme(m.cfg.Theme)
	m.setStatus("Theme: " + m.highlighter.Theme())
	m.debug.AddEvent("theme", m.cfg.Theme)
	theme := m.cfg.Theme
	return saveConfigCmd(func(c *config.Config) { c.Theme = theme }, m.saveConfig)
}

func (m *Model) toggleWrap() tea.Cmd {
	m.cfg.WordWrap = !m.cfg.WordWrap
	m.scrollToCursor()
	if m.cfg.WordWrap {
		m.setStatus("Word wrap on")
	} else {
		m.setStatus("Word wrap off")
	}
	wrap := m.cfg.WordWrap
	return saveConfigCmd(func(c *config.Config) { c.WordWrap = wrap }, m.saveConfig)
}

// requestQuit quits, asking first when work would be lost
func (m Model) requestQuit() (tea.Model, tea.Cmd) {
	if m.overlay == overlayQuit {
		return m, m.quit()
	}
	if m.pickReq != nil {
		m.answerPick("")
	}
	if m.state.Dirty || m.state.Busy {
		m.overlay = overlayQuit
		return m, nil
	}
	return m, m.quit()
}

func (m *Model) quit() tea.Cmd {
	if m.pickReq != nil {
		m.pickReq.Cancel()
		m.pickReq = nil
	}
	m.cancel()
	m.quitting = true
	return tea.Quit
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(s string) {
	m.status = s
	m.statusErr = true
}

func activityFor(eff session.Effect) string {
	switch eff.(type) {
	case session.OpenFile:
		return "Opening…"
	case session.SaveFile:
		return "Saving…"
	}
	return ""
}

func (m Model) fileName() string {
	if m.state.Path == "" {
		return "New file"
	}
	return filepath.Base(m.state.Path)
}

func (m Model) windowTitle() string {
	name := m.fileName()
	if m.state.Dirty {
		name += " *"
	}
	return name + " - scribe"
}

// View renders the UI
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	body := m.renderEditor()
	if m.overlay != overlayNone {
		body = m.renderOverlay()
	}

	parts := []string{body}
	if h := m.debugHeight(); h > 0 {
		parts = append(parts, m.debug.Render(m.width, h))
	}
	parts = append(parts, m.renderStatusBar())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderStatusBar renders the bottom status bar
func (m Model) renderStatusBar() string {
	sep := StatusInfoStyle.Render(" │ ")

	var left string
	if m.state.Busy {
		left = m.spinner.View() + StatusBusyStyle.Render(" "+m.activity) + sep
	}
	left += StatusFileStyle.Render(m.fileName())
	if m.state.Dirty {
		left += StatusDirtyStyle.Render(" ●")
	}

	cursor := m.state.Buffer.Cursor()
	wrap := "nowrap"
	if m.cfg.WordWrap {
		wrap = "wrap"
	}
	right := StatusInfoStyle.Render(fmt.Sprintf("Ln %d, Col %d", cursor.Line+1, cursor.Column+1)) +
		sep + StatusInfoStyle.Render(m.highlighter.Language()) +
		sep + StatusInfoStyle.Render(m.highlighter.Theme()) +
		sep + StatusInfoStyle.Render(wrap) +
		sep + StatusInfoStyle.Render("f1 help")

	// Padding on both sides
	gap := m.width - 2 - lipgloss.Width(left) - lipgloss.Width(right)
	var middle string
	if m.status != "" && gap > 6 {
		style := StatusInfoStyle
		if m.statusErr {
			style = ErrorStyle
		}
		middle = sep + style.Render(truncate(m.status, gap-4))
	}
	if fill := gap - lipgloss.Width(middle); fill > 0 {
		middle += StatusInfoStyle.Render(strings.Repeat(" ", fill))
	}

	return StatusBarStyle.Render(left + middle + right)
}

// truncate shortens s to max cells
func truncate(s string, max int) string {
	if max < 1 {
		return ""
	}
	return runewidth.Truncate(s, max, "…")
}
