package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/clive/scribe/internal/buffer"
	"github.com/clive/scribe/internal/session"
	"github.com/mattn/go-runewidth"
)

// DebugPanel shows a trace of dispatched session messages and effects
type DebugPanel struct {
	enabled bool     // Whether debug panel is enabled
	lines   []string // Recent trace lines
	buffer  int      // Max lines to keep in buffer
}

// NewDebugPanel creates a new debug panel
func NewDebugPanel(enabled bool) DebugPanel {
	return DebugPanel{
		enabled: enabled,
		buffer:  100,
	}
}

// IsEnabled returns whether debug mode is enabled
func (d *DebugPanel) IsEnabled() bool {
	return d.enabled
}

// AddLine adds a new debug line with timestamp
func (d *DebugPanel) AddLine(line string) {
	if !d.enabled {
		return
	}
	timestamp := time.Now().Format("15:04:05.000")
	d.lines = append(d.lines, timestamp+" "+line)
	if len(d.lines) > d.buffer {
		d.lines = d.lines[len(d.lines)-d.buffer:]
	}
}

// AddEvent adds a trace event (formats event type prominently)
func (d *DebugPanel) AddEvent(eventType string, details string) {
	if !d.enabled {
		return
	}
	line := "[" + eventType + "]"
	if details != "" {
		line += " " + details
	}
	d.AddLine(line)
}

// Lines returns the current debug lines
func (d *DebugPanel) Lines() []string {
	return d.lines
}

// Render renders the debug panel
func (d *DebugPanel) Render(width, height int) string {
	if !d.enabled {
		return ""
	}

	title := lipgloss.NewStyle().
		Foreground(ColorYellow).
		Bold(true).
		Render("TRACE")

	// Title and borders
	contentHeight := height - 3
	if contentHeight < 1 {
		contentHeight = 1
	}
	maxWidth := width - 4
	if maxWidth < 10 {
		maxWidth = 10
	}

	var lines []string
	startIdx := 0
	if len(d.lines) > contentHeight {
		startIdx = len(d.lines) - contentHeight
	}
	for _, line := range d.lines[startIdx:] {
		lines = append(lines, runewidth.Truncate(line, maxWidth, "..."))
	}
	for len(lines) < contentHeight {
		lines = append(lines, "")
	}

	return lipgloss.NewStyle().
		Width(width - 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorYellow).
		Padding(0, 1).
		Render(title + "\n" + strings.Join(lines, "\n"))
}

// describeMessage renders a session message for the trace
func describeMessage(msg session.Message) string {
	switch msg := msg.(type) {
	case session.EditPerformed:
		return "edit " + describeAction(msg.Action)
	case session.NewFileRequested:
		return "new file"
	case session.OpenFileRequested:
		if msg.Path == "" {
			return "open requested"
		}
		return "open requested " + msg.Path
	case session.OpenFileCompleted:
		if msg.Err != nil {
			return "open failed: " + msg.Err.Error()
		}
		return fmt.Sprintf("open completed %s (%d bytes)", msg.Path, len(msg.Contents))
	case session.SaveFileRequested:
		return "save requested"
	case session.SaveAsRequested:
		return "save as requested"
	case session.SaveFileCompleted:
		if msg.Err != nil {
			return "save failed: " + msg.Err.Error()
		}
		return "save completed " + msg.Path
	}
	return fmt.Sprintf("%T", msg)
}

func describeAction(a buffer.Action) string {
	switch a := a.(type) {
	case buffer.Move:
		if a.Count > 1 {
			return fmt.Sprintf("move %s x%d", a.Motion, a.Count)
		}
		return "move " + a.Motion.String()
	case buffer.Insert:
		return fmt.Sprintf("insert %q", a.Rune)
	case buffer.Paste:
		return fmt.Sprintf("paste %d bytes", len(a.Text))
	case buffer.Enter:
		return "enter"
	case buffer.Backspace:
		return "backspace"
	case buffer.Delete:
		return "delete"
	case nil:
		return "none"
	}
	return fmt.Sprintf("%T", a)
}

func describeEffect(eff session.Effect) string {
	switch eff := eff.(type) {
	case session.OpenFile:
		if eff.Path == "" {
			return "open (ask for path)"
		}
		return "open " + eff.Path
	case session.SaveFile:
		if eff.Path == "" {
			return fmt.Sprintf("save %d bytes (ask for path)", len(eff.Contents))
		}
		return fmt.Sprintf("save %d bytes to %s", len(eff.Contents), eff.Path)
	}
	return fmt.Sprintf("%T", eff)
}
