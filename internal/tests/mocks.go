package tests

import (
	"sync"
	"sync/atomic"

	"tripmock/internal/domain"
	"tripmock/internal/handler"
)

// ──────────────────────────────────────────────
// MOCK TRANSFORMER
// ──────────────────────────────────────────────

// MockTransformer wraps a real transformer, counting calls and allowing
// error injection.
type MockTransformer struct {
	next handler.Transformer

	mu  sync.RWMutex
	err error

	TransformCallCount int32
}

// NewMockTransformer creates a MockTransformer delegating to next.
func NewMockTransformer(next handler.Transformer) *MockTransformer {
	return &MockTransformer{next: next}
}

// SetError makes subsequent calls fail with err. nil restores delegation.
func (m *MockTransformer) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *MockTransformer) Transform(fixture *domain.Fixture) (domain.Document, error) {
	atomic.AddInt32(&m.TransformCallCount, 1)

	m.mu.RLock()
	err := m.err
	m.mu.RUnlock()
	if err != nil {
		return nil, err
	}
	return m.next.Transform(fixture)
}

// Calls returns the number of Transform calls.
func (m *MockTransformer) Calls() int {
	return int(atomic.LoadInt32(&m.TransformCallCount))
}

var _ handler.Transformer = (*MockTransformer)(nil)
