package storage

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"
	"unicode/utf8"
)

// Storage reads and writes whole text files.
type Storage interface {
	ReadText(ctx context.Context, path string) (string, error)
	WriteText(ctx context.Context, path, text string) error
}

// Disk is Storage backed by the local file system. Writes go to a temporary
// file in the target directory which is then renamed over the target.
type Disk struct {
	logger *slog.Logger
}

// NewDisk creates a Disk storage. A nil logger discards output.
func NewDisk(logger *slog.Logger) *Disk {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Disk{logger: logger}
}

// ReadText returns the contents of path. Failures are *IOError.
func (d *Disk) ReadText(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", newIOError("read", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", newIOError("read", path, err)
	}
	if !utf8.Valid(data) {
		return "", newIOError("read", path, ErrInvalidUTF8)
	}

	d.logger.Debug("file read", "path", path, "bytes", len(data))
	return string(data), nil
}

// WriteText replaces the contents of path with text, keeping the mode of an
// existing file. Failures are *IOError.
func (d *Disk) WriteText(ctx context.Context, path, text string) error {
	if err := ctx.Err(); err != nil {
		return newIOError("write", path, err)
	}
	if err := writeAtomic(path, []byte(text)); err != nil {
		return newIOError("write", path, err)
	}

	d.logger.Debug("file written", "path", path, "bytes", len(text))
	return nil
}

func writeAtomic(path string, data []byte) (err error) {
	mode := fs.FileMode(0644)
	if info, statErr := os.Stat(path); statErr == nil {
		if info.IsDir() {
			return &fs.PathError{Op: "write", Path: path, Err: syscall.EISDIR}
		}
		mode = info.Mode().Perm()
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err = os.Chmod(tmp.Name(), mode); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
