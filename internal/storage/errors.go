package storage

import (
	"errors"
	"io/fs"
	"syscall"
)

// Kind is the OS-level category of a failed read or write.
type Kind int

const (
	KindOther Kind = iota
	KindNotFound
	KindPermissionDenied
	KindIsDirectory
	KindInvalidData
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindPermissionDenied:
		return "permission denied"
	case KindIsDirectory:
		return "is a directory"
	case KindInvalidData:
		return "invalid data"
	default:
		return "i/o error"
	}
}

// ErrInvalidUTF8 is wrapped by reads of files that are not valid UTF-8 text.
var ErrInvalidUTF8 = errors.New("file is not valid UTF-8")

// IOError is a failed read or write of a file.
type IOError struct {
	Op   string // "read" or "write"
	Path string
	Kind Kind
	Err  error
}

func (e *IOError) Error() string {
	return e.Op + " " + e.Path + ": " + e.Kind.String()
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// KindOf classifies err. An *IOError in the chain reports its own Kind.
func KindOf(err error) Kind {
	var ioErr *IOError
	if errors.As(err, &ioErr) {
		return ioErr.Kind
	}
	switch {
	case err == nil:
		return KindOther
	case errors.Is(err, fs.ErrNotExist):
		return KindNotFound
	case errors.Is(err, fs.ErrPermission):
		return KindPermissionDenied
	case errors.Is(err, syscall.EISDIR):
		return KindIsDirectory
	case errors.Is(err, ErrInvalidUTF8):
		return KindInvalidData
	default:
		return KindOther
	}
}

func newIOError(op, path string, err error) *IOError {
	return &IOError{Op: op, Path: path, Kind: KindOf(err), Err: err}
}
