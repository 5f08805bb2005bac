package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestDiskReadWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "note.txt")
	d := NewDisk(nil)
	ctx := context.Background()

	if err := d.WriteText(ctx, path, "hello\nworld\n"); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	got, err := d.ReadText(ctx, path)
	if err != nil {
		t.Fatalf("ReadText: %v", err)
	}
	if got != "hello\nworld\n" {
		t.Errorf("ReadText = %q, want %q", got, "hello\nworld\n")
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0644 {
		t.Errorf("new file mode = %v, want 0644", info.Mode().Perm())
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the target file in %s, found %d entries", dir, len(entries))
	}
}

func TestDiskWriteKeepsMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.sh")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatalf("setup: %v", err)
	}

	if err := NewDisk(nil).WriteText(context.Background(), path, "#!/bin/sh\necho hi\n"); err != nil {
		t.Fatalf("WriteText: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0755 {
		t.Errorf("mode = %v, want 0755", info.Mode().Perm())
	}
}

func TestDiskErrors(t *testing.T) {
	dir := t.TempDir()
	binary := filepath.Join(dir, "blob.bin")
	if err := os.WriteFile(binary, []byte{0xff, 0xfe, 0x00}, 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	d := NewDisk(nil)
	ctx := context.Background()

	tests := []struct {
		name string
		run  func() error
		op   string
		want Kind
	}{
		{
			name: "read missing file",
			run: func() error {
				_, err := d.ReadText(ctx, filepath.Join(dir, "missing.txt"))
				return err
			},
			op:   "read",
			want: KindNotFound,
		},
		{
			name: "read directory",
			run: func() error {
				_, err := d.ReadText(ctx, dir)
				return err
			},
			op:   "read",
			want: KindIsDirectory,
		},
		{
			name: "read invalid utf-8",
			run: func() error {
				_, err := d.ReadText(ctx, binary)
				return err
			},
			op:   "read",
			want: KindInvalidData,
		},
		{
			name: "write into missing directory",
			run: func() error {
				return d.WriteText(ctx, filepath.Join(dir, "nope", "a.txt"), "x")
			},
			op:   "write",
			want: KindNotFound,
		},
		{
			name: "write over directory",
			run: func() error {
				return d.WriteText(ctx, dir, "x")
			},
			op:   "write",
			want: KindIsDirectory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run()
			var ioErr *IOError
			if !errors.As(err, &ioErr) {
				t.Fatalf("error = %v, want *IOError", err)
			}
			if ioErr.Op != tt.op {
				t.Errorf("Op = %q, want %q", ioErr.Op, tt.op)
			}
			if ioErr.Kind != tt.want {
				t.Errorf("Kind = %v, want %v", ioErr.Kind, tt.want)
			}
		})
	}
}

func TestDiskPermissionDenied(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}
	path := filepath.Join(t.TempDir(), "secret.txt")
	if err := os.WriteFile(path, []byte("x"), 0000); err != nil {
		t.Fatalf("setup: %v", err)
	}

	_, err := NewDisk(nil).ReadText(context.Background(), path)
	if KindOf(err) != KindPermissionDenied {
		t.Errorf("KindOf(%v) = %v, want %v", err, KindOf(err), KindPermissionDenied)
	}
}

func TestDiskCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewDisk(nil).ReadText(ctx, "whatever.txt")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled in chain", err)
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		err  error
		want Kind
	}{
		{nil, KindOther},
		{fs.ErrNotExist, KindNotFound},
		{fmt.Errorf("open: %w", fs.ErrPermission), KindPermissionDenied},
		{ErrInvalidUTF8, KindInvalidData},
		{&IOError{Kind: KindIsDirectory}, KindIsDirectory},
		{errors.New("disk on fire"), KindOther},
	}
	for _, tt := range tests {
		if got := KindOf(tt.err); got != tt.want {
			t.Errorf("KindOf(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
