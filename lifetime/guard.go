package lifetime

import (
	"github.com/wippyai/droptrace/errors"
)

// GuardType is the resource type ID of every guard in the arena.
const GuardType uint32 = 1

// Guard is the observable resource: it owns one label and may be released
// exactly once.
type Guard struct {
	label    string
	released bool
}

// NewGuard allocates a guard. It has no side effect and emits no event;
// use Scope.Guard or Vec.Push to give it an owner.
func NewGuard(label string) *Guard {
	return &Guard{label: label}
}

// Label returns the guard's label.
func (g *Guard) Label() string {
	return g.label
}

// Drop marks the guard released. It is called by the owning table when the
// guard's slot is removed; a second call panics.
func (g *Guard) Drop() {
	if g.released {
		panic(errors.DoubleRelease(errors.PhaseRelease, nil, g.label))
	}
	g.released = true
}
