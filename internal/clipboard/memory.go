package clipboard

import (
	"fmt"
	"sync"

	"clipbridge/pkg/cliptypes"
)

// Memory is an in-process Native. It holds raw format bytes and enforces
// the open/close bracket the way the OS does: transfers outside the
// bracket fail and a second Open fails while the first is held.
type Memory struct {
	mu      sync.Mutex
	open    bool
	opens   int
	openErr error
	data    map[cliptypes.Format][]byte
	only    map[cliptypes.Format]bool
}

// NewMemory returns an empty in-memory clipboard that accepts every format.
func NewMemory() *Memory {
	return &Memory{data: make(map[cliptypes.Format][]byte)}
}

// NewMemoryWithFormats returns an in-memory clipboard that rejects formats
// outside the given set with ErrUnsupportedFormat.
func NewMemoryWithFormats(formats ...cliptypes.Format) *Memory {
	m := NewMemory()
	m.only = make(map[cliptypes.Format]bool, len(formats))
	for _, f := range formats {
		m.only[f] = true
	}
	return m
}

// Open acquires the clipboard.
func (m *Memory) Open() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.openErr != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, m.openErr)
	}
	if m.open {
		return fmt.Errorf("%w: already open", ErrUnavailable)
	}
	m.open = true
	m.opens++
	return nil
}

// Close releases the clipboard.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.open {
		return ErrNotOpen
	}
	m.open = false
	return nil
}

// Empty removes every format.
func (m *Memory) Empty() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.open {
		return ErrNotOpen
	}
	clear(m.data)
	return nil
}

// SetData stores a copy of data under format.
func (m *Memory) SetData(format cliptypes.Format, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.open {
		return ErrNotOpen
	}
	if m.only != nil && !m.only[format] {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	m.data[format] = append([]byte(nil), data...)
	return nil
}

// Data returns a copy of the bytes stored under format.
func (m *Memory) Data(format cliptypes.Format) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.open {
		return nil, ErrNotOpen
	}
	data, ok := m.data[format]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrFormatAbsent, format)
	}
	return append([]byte(nil), data...), nil
}

// IsAvailable reports whether format is stored. It is false while closed.
func (m *Memory) IsAvailable(format cliptypes.Format) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.open {
		return false
	}
	_, ok := m.data[format]
	return ok
}

// SetOpenError makes subsequent Opens fail with err, simulating another
// process holding the clipboard. Pass nil to clear.
func (m *Memory) SetOpenError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.openErr = err
}

// Opens returns how many times the clipboard was successfully opened.
func (m *Memory) Opens() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.opens
}

// IsOpen reports whether the bracket is currently held.
func (m *Memory) IsOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open
}
