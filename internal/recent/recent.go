// Package recent keeps the history of files opened or saved in the editor.
package recent

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	bolt "go.etcd.io/bbolt"
)

const bucketFiles = "files"

// Entry is a file in the history.
type Entry struct {
	Path string
	Used time.Time
}

// Store is a recent files history backed by a bbolt database.
type Store struct {
	db    *bolt.DB
	limit int
}

// Open opens or creates the database at path. The history keeps at most
// limit entries; limit < 1 means no pruning.
func Open(path string, limit int) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create recent files dir: %w", err)
	}

	db, err := bolt.Open(path, 0644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open recent files db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketFiles))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize recent files db: %w", err)
	}

	return &Store{db: db, limit: limit}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func marshalTime(t time.Time) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(t.UnixNano()))
	return b[:]
}

func unmarshalTime(data []byte) time.Time {
	if len(data) != 8 {
		return time.Time{}
	}
	return time.Unix(0, int64(binary.BigEndian.Uint64(data)))
}

// Touch records that path was used at the given time, then prunes the
// oldest entries beyond the limit.
func (s *Store) Touch(path string, at time.Time) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketFiles))
		if err := b.Put([]byte(path), marshalTime(at)); err != nil {
			return err
		}
		if s.limit < 1 {
			return nil
		}

		entries := readEntries(b)
		if len(entries) <= s.limit {
			return nil
		}
		for _, e := range entries[s.limit:] {
			if err := b.Delete([]byte(e.Path)); err != nil {
				return err
			}
		}
		return nil
	})
}

// Remove deletes path from the history.
func (s *Store) Remove(path string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketFiles)).Delete([]byte(path))
	})
}

// List returns up to n entries, most recently used first. n < 1 lists all.
func (s *Store) List(n int) ([]Entry, error) {
	var entries []Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		entries = readEntries(tx.Bucket([]byte(bucketFiles)))
		return nil
	})
	if err != nil {
		return nil, err
	}
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries, nil
}

// readEntries returns all entries sorted newest first, ties by path.
func readEntries(b *bolt.Bucket) []Entry {
	var entries []Entry
	c := b.Cursor()
	for k, v := c.First(); k != nil; k, v = c.Next() {
		entries = append(entries, Entry{Path: string(k), Used: unmarshalTime(v)})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Used.Equal(entries[j].Used) {
			return entries[i].Path < entries[j].Path
		}
		return entries[i].Used.After(entries[j].Used)
	})
	return entries
}
