// Package killring keeps text removed by kill commands so that it can be
// yanked back.
package killring

import "errors"

// ErrEmpty is returned by Ring.Top when nothing has been killed.
var ErrEmpty = errors.New("kill ring is empty")

// Ring is a bounded store of killed text. When full, pushing drops the
// oldest entry.
type Ring interface {
	// Push adds text as the newest entry. Empty text is ignored.
	Push(text string) error
	// Top returns the newest entry.
	Top() (string, error)
	// Entries returns all entries, oldest first.
	Entries() ([]string, error)
	// Close releases resources held by the ring.
	Close() error
}

// Memory is a Ring kept in memory.
type Memory struct {
	size    int
	entries []string
}

// NewMemory returns an in-memory Ring holding up to size entries.
func NewMemory(size int) *Memory {
	return &Memory{size: size}
}

func (m *Memory) Push(text string) error {
	if text == "" {
		return nil
	}
	m.entries = append(m.entries, text)
	if len(m.entries) > m.size {
		m.entries = m.entries[len(m.entries)-m.size:]
	}
	return nil
}

func (m *Memory) Top() (string, error) {
	if len(m.entries) == 0 {
		return "", ErrEmpty
	}
	return m.entries[len(m.entries)-1], nil
}

func (m *Memory) Entries() ([]string, error) {
	return append([]string(nil), m.entries...), nil
}

func (m *Memory) Close() error { return nil }
