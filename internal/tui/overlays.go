package tui

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/clive/scribe/internal/changes"
	"github.com/clive/scribe/internal/dialog"
	"github.com/clive/scribe/internal/session"
)

// overlay is the modal drawn over the editor. Only one is open at a time.
type overlay int

const (
	overlayNone overlay = iota
	overlayHelp
	overlayOpen
	overlaySave
	overlayRecent
	overlayQuit
)

func (o overlay) String() string {
	switch o {
	case overlayHelp:
		return "help"
	case overlayOpen:
		return "open"
	case overlaySave:
		return "save"
	case overlayRecent:
		return "recent"
	case overlayQuit:
		return "quit"
	}
	return "none"
}

// showPickRequest opens the overlay that answers a terminal picker request
func (m *Model) showPickRequest(req *dialog.Request) tea.Cmd {
	if m.pickReq != nil {
		m.pickReq.Cancel()
	}
	m.pickReq = req

	dir := req.Dir
	if dir == "" {
		dir, _ = os.Getwd()
	}

	if req.Mode == dialog.ModeSave {
		m.overlay = overlaySave
		m.saveInput.SetValue(dir + string(filepath.Separator))
		m.saveInput.CursorEnd()
		return m.saveInput.Focus()
	}

	fp := filepicker.New()
	fp.CurrentDirectory = dir
	fp.FileAllowed = true
	fp.DirAllowed = false
	fp.ShowHidden = false
	fp.AutoHeight = false
	fp.Height = m.overlayListHeight()
	m.filepicker = fp
	m.overlay = overlayOpen
	return m.filepicker.Init()
}

// answerPick resolves the pending request and closes its overlay.
// An empty path cancels.
func (m *Model) answerPick(path string) {
	if m.pickReq != nil {
		m.pickReq.Resolve(path)
		m.pickReq = nil
	}
	m.saveInput.Blur()
	m.overlay = overlayNone
}

func (m Model) overlayListHeight() int {
	h := m.height - 10
	if h < 5 {
		return 5
	}
	if h > 20 {
		return 20
	}
	return h
}

// updateOverlay routes a message to the open overlay
func (m Model) updateOverlay(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.overlay {
	case overlayOpen:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, m.keys.Escape) {
			m.answerPick("")
			return m, nil
		}
		var cmd tea.Cmd
		m.filepicker, cmd = m.filepicker.Update(msg)
		if selected, path := m.filepicker.DidSelectFile(msg); selected {
			m.answerPick(path)
		}
		return m, cmd

	case overlaySave:
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch {
			case key.Matches(keyMsg, m.keys.Escape):
				m.answerPick("")
				return m, nil
			case key.Matches(keyMsg, m.keys.Enter):
				path := strings.TrimSpace(m.saveInput.Value())
				if path == "" || strings.HasSuffix(path, string(filepath.Separator)) {
					m.setError("Enter a file name")
					return m, nil
				}
				m.answerPick(expandHome(path))
				return m, nil
			}
		}
		var cmd tea.Cmd
		m.saveInput, cmd = m.saveInput.Update(msg)
		return m, cmd
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch m.overlay {
	case overlayHelp:
		if key.Matches(keyMsg, m.keys.Help, m.keys.Escape) {
			m.overlay = overlayNone
		}

	case overlayRecent:
		switch {
		case key.Matches(keyMsg, m.keys.Escape, m.keys.Recent):
			m.overlay = overlayNone
		case key.Matches(keyMsg, m.keys.Up):
			if m.recentIdx > 0 {
				m.recentIdx--
			}
		case key.Matches(keyMsg, m.keys.Down):
			if m.recentIdx < len(m.recentEntries)-1 {
				m.recentIdx++
			}
		case key.Matches(keyMsg, m.keys.Enter):
			m.overlay = overlayNone
			if m.recentIdx < len(m.recentEntries) {
				return m, m.dispatch(session.OpenFileRequested{Path: m.recentEntries[m.recentIdx].Path})
			}
		}

	case overlayQuit:
		switch keyMsg.String() {
		case "y", "Y":
			return m, m.quit()
		case "n", "N", "esc":
			m.overlay = overlayNone
		}
	}
	return m, nil
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~"+string(filepath.Separator)) {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// renderOverlay draws the open overlay centred on screen
func (m Model) renderOverlay() string {
	var content string
	switch m.overlay {
	case overlayHelp:
		content = m.helpView()
	case overlayOpen:
		content = OverlayTitleStyle.Render("Open File") + "\n" +
			DimStyle.Render(m.filepicker.CurrentDirectory) + "\n\n" +
			m.filepicker.View() + "\n" +
			DimStyle.Render("enter open • ← back • esc cancel")
	case overlaySave:
		content = OverlayTitleStyle.Render("Save As") + "\n\n" +
			m.saveInput.View() + "\n\n" +
			DimStyle.Render("enter save • esc cancel")
	case overlayRecent:
		content = m.recentView()
	case overlayQuit:
		content = WarningStyle.Bold(true).Render("Quit?") + "\n\n" +
			m.quitReason() + "\n\n" +
			HelpKeyStyle.Render("y") + HelpDescStyle.Render(" quit   ") +
			HelpKeyStyle.Render("n") + HelpDescStyle.Render(" keep editing")
	}

	return lipgloss.Place(
		m.width,
		m.editorHeight(),
		lipgloss.Center,
		lipgloss.Center,
		OverlayStyle.Render(content),
	)
}

// quitReason explains what quitting now would lose
func (m Model) quitReason() string {
	if m.state.Busy {
		return HelpDescStyle.Render("A file operation is still running.")
	}

	summary := changes.Compare(m.savedText, m.state.Buffer.String())
	lines := []string{HelpDescStyle.Render("Unsaved changes: " + summary.Stat())}
	maxWidth := m.width - 12
	for _, l := range summary.Preview(5) {
		style := DimStyle
		switch {
		case strings.HasPrefix(l, "+"):
			style = SuccessStyle.UnsetBackground()
		case strings.HasPrefix(l, "-"):
			style = ErrorStyle.UnsetBackground()
		}
		lines = append(lines, style.Render(truncate(l, maxWidth)))
	}
	return strings.Join(lines, "\n")
}

// helpView renders the key binding reference
func (m Model) helpView() string {
	m.help.ShowAll = true
	m.help.Styles.FullKey = HelpKeyStyle
	m.help.Styles.FullDesc = HelpDescStyle
	return OverlayTitleStyle.Render("Keyboard Shortcuts") + "\n\n" +
		m.help.View(m.keys) + "\n\n" +
		DimStyle.Render("Press f1 or esc to close")
}

func (m Model) recentView() string {
	var b strings.Builder
	b.WriteString(OverlayTitleStyle.Render("Recent Files"))
	b.WriteString("\n\n")

	if len(m.recentEntries) == 0 {
		b.WriteString(DimStyle.Render("No recent files"))
	}

	maxWidth := m.width - 12
	if maxWidth < 20 {
		maxWidth = 20
	}

	// Keep the selection inside the visible window
	height := m.overlayListHeight()
	start := 0
	if m.recentIdx >= height {
		start = m.recentIdx - height + 1
	}
	for i := start; i < len(m.recentEntries) && i < start+height; i++ {
		e := m.recentEntries[i]
		path := truncate(e.Path, maxWidth-20)
		used := DimStyle.Render(e.Used.Format("Jan 02 15:04"))
		if i == m.recentIdx {
			b.WriteString(ListSelectedStyle.Render("❯ "+path) + "  " + used)
		} else {
			b.WriteString("  " + ListItemStyle.Render(path) + "  " + used)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n" + DimStyle.Render("↑/↓ select • enter open • esc close"))
	return b.String()
}

func newSaveInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "path/to/file.txt"
	ti.Prompt = "❯ "
	ti.PromptStyle = InputPromptStyle
	ti.CharLimit = 0
	ti.Width = 60
	return ti
}
