package source

import (
	"sync/atomic"
)

// Store holds the current Source and lets it be swapped after a reload.
// Readers always see a complete snapshot.
type Store struct {
	root       string
	extensions []string
	current    atomic.Pointer[Source]
}

// NewStore wraps an already loaded source.
func NewStore(src *Source, extensions ...string) *Store {
	s := &Store{root: src.Root(), extensions: extensions}
	s.current.Store(src)
	return s
}

// Current returns the active snapshot.
func (s *Store) Current() *Source { return s.current.Load() }

// GetPage resolves slug against the active snapshot.
func (s *Store) GetPage(slug []string) (*Page, bool) { return s.Current().GetPage(slug) }

// Reload loads the content tree again and swaps it in. On error the previous
// snapshot stays active.
func (s *Store) Reload() (*Source, error) {
	src, err := Load(s.root, s.extensions...)
	if err != nil {
		return nil, err
	}
	s.current.Store(src)
	return src, nil
}
