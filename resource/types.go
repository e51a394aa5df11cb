package resource

// Handle is an opaque reference to a resource in a table.
// Handle 0 is reserved and always invalid; bindings use it as the
// moved-out marker.
type Handle uint32

// Owner identifies the scope or container currently responsible for
// releasing a resource.
type Owner struct {
	Name string
	ID   uint32
}

// Event types for resource lifecycle notifications.
type EventType uint8

const (
	EventCreated EventType = iota
	EventMoved
	EventDropped
)

func (t EventType) String() string {
	switch t {
	case EventCreated:
		return "created"
	case EventMoved:
		return "moved"
	case EventDropped:
		return "dropped"
	default:
		return "unknown"
	}
}

// Event represents a resource lifecycle event.
// For EventMoved, From is the previous owner and Owner the new one.
type Event struct {
	Value  any
	Owner  Owner
	From   Owner
	Handle Handle
	TypeID uint32
	Type   EventType
}

// Observer receives notifications about resource lifecycle events.
type Observer interface {
	OnResourceEvent(Event)
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(Event)

// OnResourceEvent calls f(e).
func (f ObserverFunc) OnResourceEvent(e Event) {
	f(e)
}

// Backend provides the underlying storage mechanism for resources.
type Backend interface {
	// Create stores a value owned by owner and returns a handle.
	Create(typeID uint32, owner Owner, value any) (Handle, error)

	// Get retrieves a value by handle.
	Get(handle Handle) (any, bool)

	// Owner returns the current owner of a handle.
	Owner(handle Handle) (Owner, bool)

	// Transfer reassigns the owner of a handle and returns the previous one.
	Transfer(handle Handle, to Owner) (Owner, bool)

	// Drop removes a resource and returns (value, true) if its destructor
	// should be called. Returns (nil, false) if the handle is invalid.
	Drop(handle Handle) (any, bool)

	// Close releases all resources held by the backend.
	Close() error
}

// Dropper is optionally implemented by resource values that need cleanup.
type Dropper interface {
	Drop()
}
