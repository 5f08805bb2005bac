// Package dialog picks file paths for opening and saving, either through the
// operating system's native file dialogs or through a picker drawn inside the
// terminal UI.
package dialog

import (
	"context"
	"errors"
)

// ErrClosed is returned when the user dismisses a dialog without choosing a
// path. It is a benign abort, not a failure.
var ErrClosed = errors.New("dialog closed")

// Picker asks the user for a path.
type Picker interface {
	PickOpenPath(ctx context.Context) (string, error)
	PickSavePath(ctx context.Context) (string, error)
}
