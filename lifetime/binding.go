package lifetime

import (
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/droptrace/errors"
	"github.com/wippyai/droptrace/resource"
)

type bindingState uint8

const (
	bindingLive bindingState = iota
	bindingMoved
	bindingReleased
)

// Binding is a name bound to a guard inside one scope. It holds a handle
// into the arena; once the guard is moved out or released the handle is
// zeroed and every further use panics.
type Binding struct {
	scope  *Scope
	label  string
	handle resource.Handle
	state  bindingState
}

// Label returns the bound guard's label.
func (b *Binding) Label() string {
	b.mustBeLive(errors.PhaseScope)
	return b.label
}

// Live reports whether the binding still owns its guard.
func (b *Binding) Live() bool {
	return b.state == bindingLive
}

// Scope returns the scope the binding was declared in.
func (b *Binding) Scope() *Scope {
	return b.scope
}

// Drop releases the guard now. The scope's end-of-life release for this
// binding is suppressed afterwards.
func (b *Binding) Drop() {
	b.mustBeLive(errors.PhaseRelease)
	b.releaseNow()
}

// Move transfers the guard to a new binding in the same scope.
func (b *Binding) Move() *Binding {
	return b.MoveTo(b.scope)
}

// MoveTo transfers the guard to a new binding in dst. b becomes inert and
// the guard is released when dst ends.
func (b *Binding) MoveTo(dst *Scope) *Binding {
	b.mustBeLive(errors.PhaseMove)
	dst.mustBeOpen(errors.PhaseMove)
	if dst.rt != b.scope.rt {
		panic(errors.New(errors.PhaseMove, errors.KindInvalidInput).
			Path(dst.Path()...).
			Label(b.label).
			Detail("destination scope belongs to another runtime").
			Build())
	}

	h := b.take(dst.owner, errors.PhaseMove)
	Logger().Debug("binding moved",
		zap.String("label", b.label),
		zap.String("from", strings.Join(b.scope.Path(), ".")),
		zap.String("to", strings.Join(dst.Path(), ".")))
	return dst.bind(h, b.label)
}

// take transfers the guard to owner and leaves b inert.
func (b *Binding) take(owner resource.Owner, phase errors.Phase) resource.Handle {
	h := b.handle
	if !b.scope.rt.table.Transfer(h, owner) {
		panic(errors.New(phase, errors.KindNotFound).
			Path(b.scope.Path()...).
			Label(b.label).
			Detail("handle %d is not live", h).
			Build())
	}
	b.handle = 0
	b.state = bindingMoved
	return h
}

// release is the scope-end path: inert bindings are skipped.
func (b *Binding) release() {
	if b.state != bindingLive {
		return
	}
	b.releaseNow()
}

func (b *Binding) releaseNow() {
	h := b.handle
	b.handle = 0
	b.state = bindingReleased
	if _, ok := b.scope.rt.table.Remove(h); !ok {
		panic(errors.DoubleRelease(errors.PhaseRelease, b.scope.Path(), b.label))
	}
}

func (b *Binding) mustBeLive(phase errors.Phase) {
	switch b.state {
	case bindingMoved:
		panic(errors.UseAfterMove(phase, b.scope.Path(), b.label))
	case bindingReleased:
		if phase == errors.PhaseRelease {
			panic(errors.DoubleRelease(phase, b.scope.Path(), b.label))
		}
		panic(errors.UseAfterDrop(phase, b.scope.Path(), b.label))
	}
}
