package resource

import (
	"sync"

	"go.uber.org/zap"
)

// Table tracks owned resources, runs their destructors and reports
// lifecycle events to observers.
type Table struct {
	backend   *LocalBackend
	observers []Observer
	obsMu     sync.RWMutex
	closed    bool
	closeMu   sync.RWMutex
}

// NewTable creates a new table with a LocalBackend.
func NewTable() *Table {
	return &Table{
		backend: NewLocalBackend(),
	}
}

// Insert adds a value owned by owner and returns its handle.
// Returns 0 once the table is closed.
func (t *Table) Insert(typeID uint32, owner Owner, value any) Handle {
	t.closeMu.RLock()
	if t.closed {
		t.closeMu.RUnlock()
		return 0
	}
	t.closeMu.RUnlock()

	handle, err := t.backend.Create(typeID, owner, value)
	if err != nil {
		return 0
	}

	Logger().Debug("resource created",
		zap.Uint32("handle", uint32(handle)),
		zap.String("owner", owner.Name))

	t.notify(Event{
		Type:   EventCreated,
		Handle: handle,
		TypeID: typeID,
		Owner:  owner,
		Value:  value,
	})

	return handle
}

// Get retrieves a value by handle.
func (t *Table) Get(handle Handle) (any, bool) {
	return t.backend.Get(handle)
}

// GetTyped retrieves a value only if it matches the expected type.
func (t *Table) GetTyped(handle Handle, typeID uint32) (any, bool) {
	actualTypeID, ok := t.backend.TypeID(handle)
	if !ok || actualTypeID != typeID {
		return nil, false
	}
	return t.backend.Get(handle)
}

// Owner returns the owner currently responsible for handle.
func (t *Table) Owner(handle Handle) (Owner, bool) {
	return t.backend.Owner(handle)
}

// Transfer moves responsibility for handle to a new owner.
func (t *Table) Transfer(handle Handle, to Owner) bool {
	from, ok := t.backend.Transfer(handle, to)
	if !ok {
		return false
	}

	Logger().Debug("resource moved",
		zap.Uint32("handle", uint32(handle)),
		zap.String("from", from.Name),
		zap.String("to", to.Name))

	typeID, _ := t.backend.TypeID(handle)
	value, _ := t.backend.Get(handle)
	t.notify(Event{
		Type:   EventMoved,
		Handle: handle,
		TypeID: typeID,
		Owner:  to,
		From:   from,
		Value:  value,
	})
	return true
}

// Remove drops a resource, runs its destructor and returns (value, true)
// if the handle was live.
func (t *Table) Remove(handle Handle) (any, bool) {
	typeID, _ := t.backend.TypeID(handle)
	owner, _ := t.backend.Owner(handle)
	value, ok := t.backend.Drop(handle)
	if !ok {
		return nil, false
	}

	if d, ok := value.(Dropper); ok {
		d.Drop()
	}

	t.notify(Event{
		Type:   EventDropped,
		Handle: handle,
		TypeID: typeID,
		Owner:  owner,
		Value:  value,
	})

	return value, true
}

// Subscribe adds an observer for lifecycle events.
func (t *Table) Subscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	t.observers = append(t.observers, o)
}

// Unsubscribe removes an observer. Observers must be comparable.
func (t *Table) Unsubscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	for i, obs := range t.observers {
		if obs == o {
			t.observers = append(t.observers[:i], t.observers[i+1:]...)
			return
		}
	}
}

// Len returns the number of active resources.
func (t *Table) Len() int {
	return t.backend.Len()
}

// Live returns the handles of all active resources, newest first.
func (t *Table) Live() []Handle {
	return t.backend.Live()
}

// Clear drops all resources, newest first.
func (t *Table) Clear() {
	for _, h := range t.backend.Live() {
		t.Remove(h)
	}
}

// Close drops every remaining resource with notification and stops
// accepting inserts.
func (t *Table) Close() error {
	t.closeMu.Lock()
	if t.closed {
		t.closeMu.Unlock()
		return nil
	}
	t.closed = true
	t.closeMu.Unlock()

	t.Clear()
	return t.backend.Close()
}

func (t *Table) notify(e Event) {
	t.obsMu.RLock()
	defer t.obsMu.RUnlock()
	for _, o := range t.observers {
		o.OnResourceEvent(e)
	}
}
