// Package effects performs the file work the session asks for: it talks to
// the dialog and storage services and reports the outcome as the session's
// completion messages.
package effects

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/clive/scribe/internal/dialog"
	"github.com/clive/scribe/internal/session"
	"github.com/clive/scribe/internal/storage"
	"github.com/google/uuid"
)

// Runner executes session effects.
type Runner struct {
	picker dialog.Picker
	store  storage.Storage
	logger *slog.Logger
}

// NewRunner creates a Runner. A nil logger discards output.
func NewRunner(picker dialog.Picker, store storage.Storage, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Runner{picker: picker, store: store, logger: logger}
}

// Run performs eff and returns its completion message. It returns nil only
// for a nil or unknown effect.
func (r *Runner) Run(ctx context.Context, eff session.Effect) session.Message {
	switch eff := eff.(type) {
	case session.OpenFile:
		return r.Open(ctx, eff.Path)
	case session.SaveFile:
		return r.Save(ctx, eff.Path, eff.Contents)
	}
	return nil
}

// Open reads path, asking the picker for one when path is empty.
func (r *Runner) Open(ctx context.Context, path string) session.OpenFileCompleted {
	log := r.logger.With("op", "open", "op_id", uuid.NewString())
	start := time.Now()
	log.Debug("effect started", "path", path)

	path, err := r.resolve(ctx, path, false)
	if err != nil {
		r.logResult(log, start, path, err)
		return session.OpenFileCompleted{Err: err}
	}

	contents, err := r.store.ReadText(ctx, path)
	r.logResult(log, start, path, err)
	if err != nil {
		return session.OpenFileCompleted{Err: ioFailure("read", path, err)}
	}
	return session.OpenFileCompleted{Path: path, Contents: contents}
}

// Save writes contents to path, asking the picker for one when path is empty.
func (r *Runner) Save(ctx context.Context, path, contents string) session.SaveFileCompleted {
	log := r.logger.With("op", "save", "op_id", uuid.NewString())
	start := time.Now()
	log.Debug("effect started", "path", path, "bytes", len(contents))

	path, err := r.resolve(ctx, path, true)
	if err != nil {
		r.logResult(log, start, path, err)
		return session.SaveFileCompleted{Err: err}
	}

	err = r.store.WriteText(ctx, path, contents)
	r.logResult(log, start, path, err)
	if err != nil {
		return session.SaveFileCompleted{Err: ioFailure("write", path, err)}
	}
	return session.SaveFileCompleted{Path: path}
}

func (r *Runner) resolve(ctx context.Context, path string, save bool) (string, error) {
	if path == "" {
		if r.picker == nil {
			return "", dialog.ErrClosed
		}
		var err error
		if save {
			path, err = r.picker.PickSavePath(ctx)
		} else {
			path, err = r.picker.PickOpenPath(ctx)
		}
		if err != nil {
			return "", ioFailure("pick", "", err)
		}
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", ioFailure("resolve", path, err)
	}
	return abs, nil
}

// ioFailure keeps a dismissed dialog and storage errors as they are and
// reports anything else as an *storage.IOError.
func ioFailure(op, path string, err error) error {
	var ioErr *storage.IOError
	if errors.Is(err, dialog.ErrClosed) || errors.As(err, &ioErr) {
		return err
	}
	return &storage.IOError{Op: op, Path: path, Kind: storage.KindOf(err), Err: err}
}

func (r *Runner) logResult(log *slog.Logger, start time.Time, path string, err error) {
	elapsed := time.Since(start)
	switch {
	case err == nil:
		log.Info("effect completed", "path", path, "elapsed", elapsed)
	case errors.Is(err, dialog.ErrClosed):
		log.Debug("dialog closed", "elapsed", elapsed)
	default:
		log.Warn("effect failed", "path", path, "kind", storage.KindOf(err).String(), "error", err, "elapsed", elapsed)
	}
}
