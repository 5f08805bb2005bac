package effects

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/clive/scribe/internal/dialog"
	"github.com/clive/scribe/internal/session"
	"github.com/clive/scribe/internal/storage"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var errNoDisplay = errors.New("no display available")

// fakePicker returns a fixed answer and counts how often it was asked.
type fakePicker struct {
	path  string
	err   error
	opens int
	saves int
}

func (p *fakePicker) PickOpenPath(ctx context.Context) (string, error) {
	p.opens++
	return p.path, p.err
}

func (p *fakePicker) PickSavePath(ctx context.Context) (string, error) {
	p.saves++
	return p.path, p.err
}

// memStorage keeps files in a map.
type memStorage struct {
	files    map[string]string
	writeErr error
}

func (m *memStorage) ReadText(ctx context.Context, path string) (string, error) {
	text, ok := m.files[path]
	if !ok {
		return "", &storage.IOError{Op: "read", Path: path, Kind: storage.KindNotFound, Err: os.ErrNotExist}
	}
	return text, nil
}

func (m *memStorage) WriteText(ctx context.Context, path, text string) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.files[path] = text
	return nil
}

func TestRunnerOpen(t *testing.T) {
	store := &memStorage{files: map[string]string{"/docs/a.txt": "alpha"}}

	tests := []struct {
		name   string
		path   string
		picker *fakePicker
		want   session.OpenFileCompleted
		asked  int
	}{
		{
			name:   "known path skips dialog",
			path:   "/docs/a.txt",
			picker: &fakePicker{},
			want:   session.OpenFileCompleted{Path: "/docs/a.txt", Contents: "alpha"},
		},
		{
			name:   "dialog picks path",
			picker: &fakePicker{path: "/docs/a.txt"},
			want:   session.OpenFileCompleted{Path: "/docs/a.txt", Contents: "alpha"},
			asked:  1,
		},
		{
			name:   "dialog closed",
			picker: &fakePicker{err: dialog.ErrClosed},
			want:   session.OpenFileCompleted{Err: dialog.ErrClosed},
			asked:  1,
		},
		{
			name:   "dialog failure",
			picker: &fakePicker{err: errNoDisplay},
			want:   session.OpenFileCompleted{Err: &storage.IOError{Op: "pick", Kind: storage.KindOther}},
			asked:  1,
		},
		{
			name:   "read failure",
			path:   "/docs/missing.txt",
			picker: &fakePicker{},
			want: session.OpenFileCompleted{Err: &storage.IOError{
				Op: "read", Path: "/docs/missing.txt", Kind: storage.KindNotFound, Err: os.ErrNotExist,
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRunner(tt.picker, store, nil)
			got := r.Open(context.Background(), tt.path)
			if diff := cmp.Diff(tt.want, got, cmpopts.IgnoreFields(session.OpenFileCompleted{}, "Err")); diff != "" {
				t.Errorf("result mismatch (-want +got):\n%s", diff)
			}
			if !sameError(tt.want.Err, got.Err) {
				t.Errorf("Err = %v, want %v", got.Err, tt.want.Err)
			}
			if tt.picker.opens != tt.asked {
				t.Errorf("picker asked %d times, want %d", tt.picker.opens, tt.asked)
			}
		})
	}
}

func sameError(want, got error) bool {
	if want == nil || got == nil {
		return want == got
	}
	var w, g *storage.IOError
	if errors.As(want, &w) && errors.As(got, &g) {
		return w.Op == g.Op && w.Path == g.Path && w.Kind == g.Kind
	}
	return errors.Is(got, want)
}

func TestRunnerSave(t *testing.T) {
	t.Run("existing path", func(t *testing.T) {
		store := &memStorage{files: map[string]string{}}
		picker := &fakePicker{}
		got := NewRunner(picker, store, nil).Save(context.Background(), "/docs/a.txt", "v2")

		if got.Err != nil || got.Path != "/docs/a.txt" {
			t.Errorf("got %+v", got)
		}
		if store.files["/docs/a.txt"] != "v2" {
			t.Errorf("stored %q, want v2", store.files["/docs/a.txt"])
		}
		if picker.saves != 0 {
			t.Errorf("picker asked %d times for a known path", picker.saves)
		}
	})

	t.Run("new buffer asks for path", func(t *testing.T) {
		store := &memStorage{files: map[string]string{}}
		picker := &fakePicker{path: "/docs/new.txt"}
		got := NewRunner(picker, store, nil).Save(context.Background(), "", "fresh")

		if got.Err != nil || got.Path != "/docs/new.txt" {
			t.Errorf("got %+v", got)
		}
		if picker.saves != 1 {
			t.Errorf("picker asked %d times, want 1", picker.saves)
		}
	})

	t.Run("dialog closed writes nothing", func(t *testing.T) {
		store := &memStorage{files: map[string]string{}}
		got := NewRunner(&fakePicker{err: dialog.ErrClosed}, store, nil).Save(context.Background(), "", "fresh")

		if !errors.Is(got.Err, dialog.ErrClosed) {
			t.Errorf("Err = %v, want ErrClosed", got.Err)
		}
		if len(store.files) != 0 {
			t.Errorf("wrote %d files", len(store.files))
		}
	})

	t.Run("write failure", func(t *testing.T) {
		writeErr := &storage.IOError{Op: "write", Path: "/ro/a.txt", Kind: storage.KindPermissionDenied}
		store := &memStorage{files: map[string]string{}, writeErr: writeErr}
		got := NewRunner(&fakePicker{}, store, nil).Save(context.Background(), "/ro/a.txt", "x")

		if storage.KindOf(got.Err) != storage.KindPermissionDenied {
			t.Errorf("Err = %v, want permission denied", got.Err)
		}
		if got.Path != "" {
			t.Errorf("Path = %q, want empty on failure", got.Path)
		}
	})
}

func TestRunnerNilPickerCountsAsClosed(t *testing.T) {
	r := NewRunner(nil, &memStorage{files: map[string]string{}}, nil)
	if got := r.Open(context.Background(), ""); !errors.Is(got.Err, dialog.ErrClosed) {
		t.Errorf("Err = %v, want ErrClosed", got.Err)
	}
}

func TestRunnerRelativePathsBecomeAbsolute(t *testing.T) {
	dir := t.TempDir()
	wd, _ := os.Getwd()
	defer os.Chdir(wd)
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}

	r := NewRunner(&fakePicker{path: "rel.txt"}, storage.NewDisk(nil), nil)
	got := r.Save(context.Background(), "", "body")
	if got.Err != nil {
		t.Fatalf("Save: %v", got.Err)
	}
	if !filepath.IsAbs(got.Path) || filepath.Base(got.Path) != "rel.txt" {
		t.Errorf("Path = %q, want absolute path ending in rel.txt", got.Path)
	}
}

func TestRunDispatchesByEffect(t *testing.T) {
	store := &memStorage{files: map[string]string{"/a": "A"}}
	r := NewRunner(&fakePicker{}, store, nil)
	ctx := context.Background()

	if msg, ok := r.Run(ctx, session.OpenFile{Path: "/a"}).(session.OpenFileCompleted); !ok || msg.Contents != "A" {
		t.Errorf("OpenFile produced %#v", msg)
	}
	if msg, ok := r.Run(ctx, session.SaveFile{Path: "/b", Contents: "B"}).(session.SaveFileCompleted); !ok || msg.Path != "/b" {
		t.Errorf("SaveFile produced %#v", msg)
	}
	if msg := r.Run(ctx, nil); msg != nil {
		t.Errorf("nil effect produced %#v", msg)
	}
}

func TestRunnerFailuresAreClosedOrIOError(t *testing.T) {
	ctx := context.Background()
	diskErr := errors.New("device unplugged")

	tests := []struct {
		name string
		run  func() error
		op   string
		path string
		err  error
	}{
		{
			name: "open dialog failure",
			run: func() error {
				return NewRunner(&fakePicker{err: errNoDisplay}, &memStorage{}, nil).Open(ctx, "").Err
			},
			op:  "pick",
			err: errNoDisplay,
		},
		{
			name: "save dialog failure",
			run: func() error {
				return NewRunner(&fakePicker{err: errNoDisplay}, &memStorage{}, nil).Save(ctx, "", "x").Err
			},
			op:  "pick",
			err: errNoDisplay,
		},
		{
			name: "untyped storage failure",
			run: func() error {
				store := &memStorage{files: map[string]string{}, writeErr: diskErr}
				return NewRunner(&fakePicker{}, store, nil).Save(ctx, "/docs/a.txt", "x").Err
			},
			op:   "write",
			path: "/docs/a.txt",
			err:  diskErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run()
			var ioErr *storage.IOError
			if !errors.As(err, &ioErr) {
				t.Fatalf("Err = %#v, want *storage.IOError", err)
			}
			if ioErr.Op != tt.op || ioErr.Path != tt.path || ioErr.Kind != storage.KindOther {
				t.Errorf("IOError = %+v, want op %q path %q kind other", ioErr, tt.op, tt.path)
			}
			if !errors.Is(err, tt.err) {
				t.Errorf("Err = %v does not wrap %v", err, tt.err)
			}
		})
	}
}
