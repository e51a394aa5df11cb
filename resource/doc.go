// Package resource provides the handle arena that backs guard lifetimes.
//
// Every guard lives in a Table slot addressed by a Handle. A slot records
// the value, its type ID and the Owner (scope or container) currently
// responsible for releasing it. Bindings never hold the value directly;
// they hold a handle, and a zero handle marks a binding that was moved out.
//
// # Resource Lifecycle
//
//	Insert   - allocate a slot owned by a scope or container
//	Transfer - hand the slot to a new owner (ownership move)
//	Remove   - release the slot and run its destructor
//
// # Handle Table
//
//	table := resource.NewTable()
//
//	h := table.Insert(typeID, owner, value)
//	table.Transfer(h, otherOwner)
//	value, ok := table.Remove(h) // runs value.Drop() if it is a Dropper
//
// Remove reports ok=false for a handle that is not live, so a second
// release of the same slot is detectable by the caller.
//
// # Observers
//
// Register observers to track resource lifecycle events:
//
//	table.Subscribe(resource.ObserverFunc(func(e resource.Event) {
//	    if e.Type == resource.EventDropped {
//	        fmt.Printf("dropped %d (owner %s)\n", e.Handle, e.Owner.Name)
//	    }
//	}))
//
// Observers run synchronously inside Insert, Transfer and Remove, so an
// event is delivered at the exact moment the lifetime change happens.
//
// # Memory Management
//
// Slots are not garbage collected. Close releases every slot still live,
// newest first, with notification, so nothing escapes without an event.
package resource
