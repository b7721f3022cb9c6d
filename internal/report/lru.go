package report

import "sync"

// LRUStore is an in-memory LRU cache that delegates to a backing Store on
// miss. A nil backing store keeps history in memory only.
type LRUStore struct {
	mu   sync.Mutex
	cap  int
	back Store

	// Doubly-linked list for LRU ordering (most recent at head).
	head, tail *lruEntry
	items      map[string]*lruEntry
}

type lruEntry struct {
	key     string
	outcome *Outcome
	prev    *lruEntry
	next    *lruEntry
}

// NewLRUStore creates an LRU cache with the given capacity that delegates
// to back. Capacity must be >= 1; back may be nil.
func NewLRUStore(cap int, back Store) *LRUStore {
	if cap < 1 {
		cap = 1
	}
	return &LRUStore{
		cap:   cap,
		back:  back,
		items: make(map[string]*lruEntry, cap),
	}
}

// Save writes the outcome to the LRU cache and delegates to the backing store.
func (s *LRUStore) Save(outcome *Outcome) error {
	s.mu.Lock()
	s.put(outcome.ID, outcome)
	s.mu.Unlock()

	if s.back == nil {
		return nil
	}
	return s.back.Save(outcome)
}

// Load checks the LRU cache first. On miss, loads from the backing store
// and promotes the outcome into the cache.
func (s *LRUStore) Load(runID string) (*Outcome, error) {
	s.mu.Lock()
	if e, ok := s.items[runID]; ok {
		s.moveToFront(e)
		o := e.outcome
		s.mu.Unlock()
		return o, nil
	}
	s.mu.Unlock()

	if s.back == nil {
		return nil, ErrNotFound
	}
	outcome, err := s.back.Load(runID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.put(runID, outcome)
	s.mu.Unlock()

	return outcome, nil
}

// List delegates to the backing store when it can enumerate runs;
// otherwise it returns the cached runs, most recently used first.
func (s *LRUStore) List(limit int) ([]*Outcome, error) {
	if l, ok := s.back.(Lister); ok {
		return l.List(limit)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*Outcome
	for e := s.head; e != nil; e = e.next {
		if limit > 0 && len(out) >= limit {
			break
		}
		out = append(out, e.outcome)
	}
	return out, nil
}

// put inserts or refreshes key. Callers hold s.mu.
func (s *LRUStore) put(key string, outcome *Outcome) {
	if e, ok := s.items[key]; ok {
		e.outcome = outcome
		s.moveToFront(e)
		return
	}
	e := &lruEntry{key: key, outcome: outcome}
	s.items[key] = e
	s.pushFront(e)
	if len(s.items) > s.cap {
		s.evict()
	}
}

func (s *LRUStore) pushFront(e *lruEntry) {
	e.prev = nil
	e.next = s.head
	if s.head != nil {
		s.head.prev = e
	}
	s.head = e
	if s.tail == nil {
		s.tail = e
	}
}

func (s *LRUStore) moveToFront(e *lruEntry) {
	if s.head == e {
		return
	}
	s.remove(e)
	s.pushFront(e)
}

func (s *LRUStore) remove(e *lruEntry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		s.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		s.tail = e.prev
	}
	e.prev = nil
	e.next = nil
}

func (s *LRUStore) evict() {
	if s.tail == nil {
		return
	}
	e := s.tail
	s.remove(e)
	delete(s.items, e.key)
}
