package tx

import (
	"context"
	"sync"
)

// Manager wraps read-modify-write boundaries over the wholesale-rewritten stores.
// The store itself assumes a single writer per user; a Manager lets callers plug
// in serialization (for example a file lock) without touching services.
type Manager interface {
	Within(ctx context.Context, fn func(context.Context) error) error
}

type NoopManager struct{}

func (NoopManager) Within(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

// MutexManager serializes boundaries inside one process. The TUI runs commands
// on background goroutines, so concurrent goal checks must not interleave.
type MutexManager struct {
	mu sync.Mutex
}

func (m *MutexManager) Within(ctx context.Context, fn func(context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}
