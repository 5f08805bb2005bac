package dialog

import (
	"context"
	"errors"
	"fmt"

	sqdialog "github.com/sqweek/dialog"
)

// Native shows the operating system's file dialogs.
type Native struct {
	// StartDir is where the dialogs open. Empty means the OS default.
	StartDir string
}

// PickOpenPath shows an open dialog.
func (n Native) PickOpenPath(ctx context.Context) (string, error) {
	return n.run(ctx, func(b *sqdialog.FileBuilder) (string, error) {
		return b.Title("Open File").Load()
	})
}

// PickSavePath shows a save dialog.
func (n Native) PickSavePath(ctx context.Context) (string, error) {
	return n.run(ctx, func(b *sqdialog.FileBuilder) (string, error) {
		return b.Title("Save File").Save()
	})
}

func (n Native) run(ctx context.Context, show func(*sqdialog.FileBuilder) (string, error)) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", ErrClosed
	}

	b := sqdialog.File()
	if n.StartDir != "" {
		b = b.SetStartDir(n.StartDir)
	}

	path, err := show(b)
	if errors.Is(err, sqdialog.ErrCancelled) {
		return "", ErrClosed
	}
	if err != nil {
		return "", fmt.Errorf("native dialog: %w", err)
	}
	if path == "" {
		return "", ErrClosed
	}
	return path, nil
}
