package dialog

import (
	"context"
	"sync"
)

// Mode says what a Request asks for.
type Mode int

const (
	ModeOpen Mode = iota
	ModeSave
)

func (m Mode) String() string {
	if m == ModeSave {
		return "save"
	}
	return "open"
}

// Request is a pending question to the UI. The UI answers it exactly once
// with Resolve or Cancel; later answers are ignored.
type Request struct {
	Mode Mode
	Dir  string // directory to start browsing in

	reply chan reply
	once  sync.Once
}

type reply struct {
	path   string
	closed bool
}

// Resolve answers the request with path. An empty path counts as Cancel.
func (r *Request) Resolve(path string) {
	r.answer(reply{path: path, closed: path == ""})
}

// Cancel answers the request as dismissed.
func (r *Request) Cancel() {
	r.answer(reply{closed: true})
}

func (r *Request) answer(rep reply) {
	r.once.Do(func() {
		r.reply <- rep
	})
}

// Terminal is a Picker whose dialogs are drawn by the terminal UI. Each pick
// publishes a Request on Requests and blocks until the UI answers it or ctx
// is done.
type Terminal struct {
	StartDir string

	requests chan *Request
}

// NewTerminal creates a Terminal picker starting in dir.
func NewTerminal(dir string) *Terminal {
	return &Terminal{
		StartDir: dir,
		requests: make(chan *Request),
	}
}

// Requests is the stream of pending requests for the UI to render.
func (t *Terminal) Requests() <-chan *Request {
	return t.requests
}

// PickOpenPath asks the UI for a file to open.
func (t *Terminal) PickOpenPath(ctx context.Context) (string, error) {
	return t.pick(ctx, ModeOpen)
}

// PickSavePath asks the UI for a path to save to.
func (t *Terminal) PickSavePath(ctx context.Context) (string, error) {
	return t.pick(ctx, ModeSave)
}

func (t *Terminal) pick(ctx context.Context, mode Mode) (string, error) {
	req := &Request{
		Mode:  mode,
		Dir:   t.StartDir,
		reply: make(chan reply, 1),
	}

	select {
	case t.requests <- req:
	case <-ctx.Done():
		return "", ErrClosed
	}

	select {
	case rep := <-req.reply:
		if rep.closed {
			return "", ErrClosed
		}
		return rep.path, nil
	case <-ctx.Done():
		return "", ErrClosed
	}
}
