package resource

import (
	"errors"
	"slices"
	"sync"

	"go.uber.org/zap"
)

var ErrClosed = errors.New("resource backend closed")

var _ Backend = (*LocalBackend)(nil)

// LocalBackend is an in-memory arena of resource records with owner tracking.
type LocalBackend struct {
	entries  []entry
	freeList []Handle
	seq      uint64
	mu       sync.RWMutex
	closed   bool
}

type entry struct {
	value  any
	owner  Owner
	seq    uint64
	typeID uint32
	valid  bool
}

// NewLocalBackend creates a new in-memory backend.
func NewLocalBackend() *LocalBackend {
	return &LocalBackend{
		entries:  make([]entry, 0, 16),
		freeList: make([]Handle, 0, 8),
	}
}

// Create stores a value and returns a handle.
func (b *LocalBackend) Create(typeID uint32, owner Owner, value any) (Handle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return 0, ErrClosed
	}

	b.seq++
	e := entry{
		typeID: typeID,
		owner:  owner,
		value:  value,
		seq:    b.seq,
		valid:  true,
	}

	if len(b.freeList) > 0 {
		handle := b.freeList[len(b.freeList)-1]
		b.freeList = b.freeList[:len(b.freeList)-1]
		b.entries[handle-1] = e
		return handle, nil
	}

	b.entries = append(b.entries, e)
	return Handle(len(b.entries)), nil
}

// lookup returns the live entry for handle. Callers hold b.mu.
func (b *LocalBackend) lookup(handle Handle) (*entry, bool) {
	if handle == 0 {
		return nil, false
	}
	idx := handle - 1
	if int(idx) >= len(b.entries) {
		return nil, false
	}
	e := &b.entries[idx]
	if !e.valid {
		return nil, false
	}
	return e, true
}

// Get retrieves a value by handle.
func (b *LocalBackend) Get(handle Handle) (any, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	e, ok := b.lookup(handle)
	if !ok {
		return nil, false
	}
	return e.value, true
}

// Owner returns the current owner of a handle.
func (b *LocalBackend) Owner(handle Handle) (Owner, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	e, ok := b.lookup(handle)
	if !ok {
		return Owner{}, false
	}
	return e.owner, true
}

// Transfer reassigns ownership of a handle.
func (b *LocalBackend) Transfer(handle Handle, to Owner) (Owner, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	e, ok := b.lookup(handle)
	if !ok {
		return Owner{}, false
	}
	from := e.owner
	e.owner = to
	return from, true
}

// TypeID returns the type ID for a handle.
func (b *LocalBackend) TypeID(handle Handle) (uint32, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	e, ok := b.lookup(handle)
	if !ok {
		return 0, false
	}
	return e.typeID, true
}

// Drop removes a resource and returns (value, true) if destructor should be called.
func (b *LocalBackend) Drop(handle Handle) (any, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	e, ok := b.lookup(handle)
	if !ok {
		return nil, false
	}

	value := e.value
	e.valid = false
	e.value = nil
	e.owner = Owner{}
	b.freeList = append(b.freeList, handle)

	return value, true
}

// Close releases all resources, newest first.
func (b *LocalBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	live := b.liveLocked()
	for _, h := range live {
		e := &b.entries[h-1]
		Logger().Debug("backend close releasing live resource",
			zap.Uint32("handle", uint32(h)),
			zap.String("owner", e.owner.Name))
		if d, ok := e.value.(Dropper); ok {
			d.Drop()
		}
		e.valid = false
		e.value = nil
	}

	b.entries = nil
	b.freeList = nil
	return nil
}

// Live returns the handles of all active resources, most recently created
// first.
func (b *LocalBackend) Live() []Handle {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.liveLocked()
}

func (b *LocalBackend) liveLocked() []Handle {
	var handles []Handle
	for i, e := range b.entries {
		if e.valid {
			handles = append(handles, Handle(i+1))
		}
	}
	slices.SortFunc(handles, func(x, y Handle) int {
		sx, sy := b.entries[x-1].seq, b.entries[y-1].seq
		switch {
		case sx > sy:
			return -1
		case sx < sy:
			return 1
		}
		return 0
	})
	return handles
}

// Len returns the number of active resources.
func (b *LocalBackend) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	count := 0
	for _, e := range b.entries {
		if e.valid {
			count++
		}
	}
	return count
}

// Each iterates over all active resources in slot order.
func (b *LocalBackend) Each(fn func(Handle, Owner, any) bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for i, e := range b.entries {
		if e.valid {
			if !fn(Handle(i+1), e.owner, e.value) {
				break
			}
		}
	}
}
