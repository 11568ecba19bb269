package widget

import "sync"

var _ GeometryStore = (*MemoryStore)(nil)

// MemoryStore is a process-local GeometryStore, standing in for the
// browser local storage of the real client.
type MemoryStore struct {
	mu   sync.Mutex
	rect Rect
	set  bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load() (Rect, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rect, s.set
}

func (s *MemoryStore) Save(r Rect) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rect = r
	s.set = true
}

func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rect = Rect{}
	s.set = false
}
