package memory

import "sync"

// Memory is a bounded history. Once capacity is exceeded the oldest entry is
// dropped.
type Memory[T any] struct {
	stream   []T
	capacity int
	mu       sync.RWMutex
}

func NewMemory[T any](capacity int) *Memory[T] {
	if capacity <= 0 {
		capacity = 1
	}
	return &Memory[T]{
		stream:   make([]T, 0, capacity),
		capacity: capacity,
	}
}

// GetAll returns a copy of every entry, oldest first
func (m *Memory[T]) GetAll() []T {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entries := make([]T, len(m.stream))
	copy(entries, m.stream)
	return entries
}

func (m *Memory[T]) Store(entry T) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stream = append(m.stream, entry)
	if len(m.stream) > m.capacity {
		m.stream = m.stream[1:]
	}
}

// Latest returns the newest entry, if any.
func (m *Memory[T]) Latest() (T, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var zero T
	if len(m.stream) == 0 {
		return zero, false
	}
	return m.stream[len(m.stream)-1], true
}

func (m *Memory[T]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.stream)
}

func (m *Memory[T]) Capacity() int {
	return m.capacity
}

func (m *Memory[T]) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stream = make([]T, 0, m.capacity)
}
