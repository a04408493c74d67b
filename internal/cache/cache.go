package cache

import "sync"

// Store holds the most recently published batch of articles. A batch is
// replaced wholesale; there is no per-article mutation or append. Reads
// return copies, never the live slice.
type Store struct {
	mu       sync.RWMutex
	articles []Article
}

func NewStore() *Store {
	return &Store{}
}

// Replace swaps the entire cached batch and returns the new count.
// An empty or nil batch clears the store.
func (s *Store) Replace(batch []Article) int {
	cp := make([]Article, len(batch))
	copy(cp, batch)

	s.mu.Lock()
	s.articles = cp
	s.mu.Unlock()

	return len(cp)
}

// ReadAll returns a copy of the current batch in the order it was stored.
// The result is never nil.
func (s *Store) ReadAll() []Article {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cp := make([]Article, len(s.articles))
	copy(cp, s.articles)
	return cp
}
