package lifetime

import (
	"github.com/wippyai/droptrace/resource"
)

// Runtime owns the guard arena and hands out root scopes. A Runtime is not
// safe for concurrent use.
type Runtime struct {
	table  *resource.Table
	roots  []*Scope
	nextID uint32
}

// NewRuntime creates a runtime with an empty arena.
func NewRuntime() *Runtime {
	return &Runtime{table: resource.NewTable()}
}

// Subscribe registers an observer for guard lifecycle events.
func (rt *Runtime) Subscribe(o resource.Observer) {
	rt.table.Subscribe(o)
}

// Table exposes the underlying arena.
func (rt *Runtime) Table() *resource.Table {
	return rt.table
}

// Live reports how many guards have been constructed and not yet released.
func (rt *Runtime) Live() int {
	return rt.table.Len()
}

// Open starts a root scope. Callers defer its Close.
func (rt *Runtime) Open(name string) *Scope {
	s := rt.newScope(nil, name)
	rt.roots = append(rt.roots, s)
	return s
}

// Close ends every root scope still open, newest first, then releases any
// guard the scopes did not account for.
func (rt *Runtime) Close() error {
	for i := len(rt.roots) - 1; i >= 0; i-- {
		rt.roots[i].Close()
	}
	rt.roots = nil
	return rt.table.Close()
}

func (rt *Runtime) newScope(parent *Scope, name string) *Scope {
	return &Scope{
		rt:     rt,
		parent: parent,
		owner:  rt.owner(name),
	}
}

func (rt *Runtime) owner(name string) resource.Owner {
	rt.nextID++
	return resource.Owner{ID: rt.nextID, Name: name}
}

// guardLabel reads the label stored behind a live handle.
func (rt *Runtime) guardLabel(h resource.Handle) string {
	v, ok := rt.table.GetTyped(h, GuardType)
	if !ok {
		return ""
	}
	return v.(*Guard).Label()
}
