package tui

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/clive/scribe/internal/config"
	"github.com/clive/scribe/internal/dialog"
	"github.com/clive/scribe/internal/recent"
	"github.com/clive/scribe/internal/session"
)

// pickRequestMsg carries a file dialog request from the terminal picker
type pickRequestMsg struct {
	req *dialog.Request
}

// pickerStoppedMsg is sent when the request channel is closed
type pickerStoppedMsg struct{}

// configSavedMsg is sent when config has been saved
type configSavedMsg struct {
	err error
}

// recentLoadedMsg is sent when the recent files list has been read
type recentLoadedMsg struct {
	entries []recent.Entry
	err     error
}

// recentTouchedMsg is sent after a path was recorded in the history
type recentTouchedMsg struct {
	path string
	err  error
}

// clipboardReadMsg carries clipboard text to paste
type clipboardReadMsg struct {
	text string
	err  error
}

// clipboardWrittenMsg is sent after the buffer was copied
type clipboardWrittenMsg struct {
	lines int
	err   error
}

// runEffectCmd performs a session effect off the UI goroutine. The
// completion message goes back through Update.
func runEffectCmd(ctx context.Context, runner EffectRunner, eff session.Effect) tea.Cmd {
	if eff == nil || runner == nil {
		return nil
	}
	return func() tea.Msg {
		return runner.Run(ctx, eff)
	}
}

// waitForPickRequest blocks until the terminal picker needs the UI.
// Like any poll command it must be re-issued after each request.
func waitForPickRequest(requests <-chan *dialog.Request) tea.Cmd {
	return func() tea.Msg {
		if requests == nil {
			return nil
		}
		req, ok := <-requests
		if !ok {
			return pickerStoppedMsg{}
		}
		return pickRequestMsg{req: req}
	}
}

// saveConfigCmd persists a preference change. edit must only set the
// changed fields so run-only overrides stay out of the file.
func saveConfigCmd(edit func(*config.Config), save ConfigSaver) tea.Cmd {
	return func() tea.Msg {
		if save == nil {
			return configSavedMsg{}
		}
		return configSavedMsg{err: save(edit)}
	}
}

func loadRecentCmd(store RecentFiles, limit int) tea.Cmd {
	return func() tea.Msg {
		entries, err := store.List(limit)
		return recentLoadedMsg{entries: entries, err: err}
	}
}

func touchRecentCmd(store RecentFiles, path string) tea.Cmd {
	if store == nil || path == "" {
		return nil
	}
	return func() tea.Msg {
		return recentTouchedMsg{path: path, err: store.Touch(path, time.Now())}
	}
}

func readClipboardCmd() tea.Cmd {
	return func() tea.Msg {
		text, err := clipboard.ReadAll()
		return clipboardReadMsg{text: text, err: err}
	}
}

func writeClipboardCmd(text string, lines int) tea.Cmd {
	return func() tea.Msg {
		return clipboardWrittenMsg{lines: lines, err: clipboard.WriteAll(text)}
	}
}
