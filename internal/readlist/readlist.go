// Package readlist keeps the user's marked-read books: a deduplicated
// collection persisted wholesale as one YAML blob behind a small Blob
// interface. The store owns the in-memory shape and the merge/sort rules,
// not the storage medium.
package readlist

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

// Entry is one marked-read record. ReadAt is assigned the moment the book
// is marked and never changes afterwards.
type Entry struct {
	ID       string    `yaml:"id"`
	Title    string    `yaml:"title"`
	Author   string    `yaml:"author,omitempty"`
	CoverURL string    `yaml:"cover_url,omitempty"`
	ReadAt   time.Time `yaml:"read_at"`
}

// AddStatus reports the outcome of Store.Add.
type AddStatus int

const (
	// Added means the entry was appended and persisted.
	Added AddStatus = iota
	// AlreadyPresent means an entry with the same ID exists; nothing was
	// written and the original ReadAt survives.
	AlreadyPresent
)

// Blob is the persistence surface: one serialized collection under one
// logical key, read and written wholesale. Read returns nil bytes when
// nothing has been stored yet.
type Blob interface {
	Read() ([]byte, error)
	Write([]byte) error
}

// Store is the read list. Mutations are a read-modify-write of the whole
// blob and the in-memory state only advances after the write succeeds, so a
// failed persist never leaves memory and disk disagreeing. Callers
// serialize access; the store does not lock.
type Store struct {
	blob    Blob
	entries []Entry
	loaded  bool
}

// New creates a Store over the given persistence surface.
func New(blob Blob) *Store {
	return &Store{blob: blob}
}

// List returns the entries ordered most recently read first. The order is
// recomputed on every call, never cached.
func (s *Store) List() ([]Entry, error) {
	if err := s.load(); err != nil {
		return nil, err
	}
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ReadAt.After(out[j].ReadAt)
	})
	return out, nil
}

// Add appends an entry unless its ID is already present. Duplicates are a
// reported no-op, never an overwrite.
func (s *Store) Add(e Entry) (AddStatus, error) {
	if err := s.load(); err != nil {
		return 0, err
	}
	for _, cur := range s.entries {
		if cur.ID == e.ID {
			return AlreadyPresent, nil
		}
	}
	next := append(append([]Entry(nil), s.entries...), e)
	if err := s.persist(next); err != nil {
		return 0, err
	}
	s.entries = next
	return Added, nil
}

// Remove deletes the entry with the given ID. Removing an absent ID is a
// no-op, not an error.
func (s *Store) Remove(id string) error {
	if err := s.load(); err != nil {
		return err
	}
	next := make([]Entry, 0, len(s.entries))
	for _, cur := range s.entries {
		if cur.ID != id {
			next = append(next, cur)
		}
	}
	if len(next) == len(s.entries) {
		return nil
	}
	if err := s.persist(next); err != nil {
		return err
	}
	s.entries = next
	return nil
}

// Clear drops every entry.
func (s *Store) Clear() error {
	if err := s.load(); err != nil {
		return err
	}
	if err := s.persist([]Entry{}); err != nil {
		return err
	}
	s.entries = nil
	return nil
}

// Len returns the current entry count.
func (s *Store) Len() (int, error) {
	if err := s.load(); err != nil {
		return 0, err
	}
	return len(s.entries), nil
}

func (s *Store) load() error {
	if s.loaded {
		return nil
	}
	data, err := s.blob.Read()
	if err != nil {
		return fmt.Errorf("reading read list: %w", err)
	}
	var entries []Entry
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &entries); err != nil {
			return fmt.Errorf("parsing read list: %w", err)
		}
	}
	s.entries = entries
	s.loaded = true
	return nil
}

func (s *Store) persist(entries []Entry) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("encoding read list: %w", err)
	}
	if err := s.blob.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("writing read list: %w", err)
	}
	return nil
}
