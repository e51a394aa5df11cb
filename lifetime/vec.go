package lifetime

import (
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/droptrace/errors"
	"github.com/wippyai/droptrace/resource"
)

// Vec is an ordered container that owns its guards. Elements are released
// in reverse insertion order on Clear and when the owning scope ends.
type Vec struct {
	scope  *Scope
	elems  []resource.Handle
	owner  resource.Owner
	closed bool
}

// Name returns the container's name.
func (v *Vec) Name() string {
	return v.owner.Name
}

// ID returns the owner ID under which the container's guards are recorded.
func (v *Vec) ID() uint32 {
	return v.owner.ID
}

// Len returns the number of held guards.
func (v *Vec) Len() int {
	return len(v.elems)
}

// Labels returns the held guards' labels in insertion order.
func (v *Vec) Labels() []string {
	labels := make([]string, 0, len(v.elems))
	for _, h := range v.elems {
		labels = append(labels, v.scope.rt.guardLabel(h))
	}
	return labels
}

// Push constructs a guard and appends it.
func (v *Vec) Push(label string) {
	v.mustBeOpen()
	h := v.scope.rt.table.Insert(GuardType, v.owner, NewGuard(label))
	if h == 0 {
		panic(errors.New(errors.PhaseContainer, errors.KindScopeClosed).
			Path(v.path()...).
			Label(label).
			Detail("runtime closed").
			Build())
	}
	v.elems = append(v.elems, h)
}

// Adopt moves the guard held by b into the container; b becomes inert.
func (v *Vec) Adopt(b *Binding) {
	v.mustBeOpen()
	b.mustBeLive(errors.PhaseMove)
	v.elems = append(v.elems, b.take(v.owner, errors.PhaseMove))
}

// PopTo removes the last element and binds it in dst, transferring
// ownership. It returns nil when the container is empty.
func (v *Vec) PopTo(dst *Scope) *Binding {
	v.mustBeOpen()
	dst.mustBeOpen(errors.PhaseMove)
	if len(v.elems) == 0 {
		return nil
	}
	h := v.elems[len(v.elems)-1]
	v.elems = v.elems[:len(v.elems)-1]
	label := v.scope.rt.guardLabel(h)
	v.scope.rt.table.Transfer(h, dst.owner)
	return dst.bind(h, label)
}

// Clear releases every held guard, last inserted first. The container stays
// usable.
func (v *Vec) Clear() {
	v.mustBeOpen()
	v.dropElems()
}

func (v *Vec) dropElems() {
	for i := len(v.elems) - 1; i >= 0; i-- {
		h := v.elems[i]
		// shrink first so a panicking destructor cannot release h twice
		v.elems = v.elems[:i]
		if _, ok := v.scope.rt.table.Remove(h); !ok {
			panic(errors.DoubleRelease(errors.PhaseContainer, v.path(), ""))
		}
	}
}

// release destroys the container: remaining elements first, then the
// backing storage, which has no observable event of its own.
func (v *Vec) release() {
	if v.closed {
		return
	}
	v.dropElems()
	v.closed = true
	capacity := cap(v.elems)
	v.elems = nil
	Logger().Debug("vec storage released",
		zap.String("vec", strings.Join(v.path(), ".")),
		zap.Int("capacity", capacity))
}

func (v *Vec) path() []string {
	return append(v.scope.Path(), v.owner.Name)
}

func (v *Vec) mustBeOpen() {
	if v.closed {
		panic(errors.ScopeClosed(errors.PhaseContainer, v.path()))
	}
}
