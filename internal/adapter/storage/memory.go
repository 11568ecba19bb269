package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/niksmo/shop-assistant/internal/core/domain"
	"github.com/niksmo/shop-assistant/internal/core/port"
)

var _ port.ProfileStorage = (*MemoryProfiles)(nil)

// MemoryProfiles keeps session profiles in process memory. Unlike the
// single unsynchronized profile this replaces, access is mutex-guarded
// and keyed by session id.
type MemoryProfiles struct {
	mu sync.Mutex
	m  map[string]domain.Profile
}

func NewMemoryProfiles() *MemoryProfiles {
	return &MemoryProfiles{m: make(map[string]domain.Profile)}
}

func (s *MemoryProfiles) Profile(
	ctx context.Context, session string,
) (domain.Profile, error) {
	const op = "MemoryProfiles.Profile"

	if err := ctx.Err(); err != nil {
		return domain.Profile{}, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.m[session]
	if !ok {
		return domain.NewProfile(), nil
	}
	return p, nil
}

func (s *MemoryProfiles) SaveProfile(
	ctx context.Context, session string, p domain.Profile,
) error {
	const op = "MemoryProfiles.SaveProfile"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[session] = p
	return nil
}

func (s *MemoryProfiles) ResetProfile(
	ctx context.Context, session string,
) error {
	const op = "MemoryProfiles.ResetProfile"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, session)
	return nil
}
