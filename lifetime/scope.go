package lifetime

import (
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/droptrace/errors"
	"github.com/wippyai/droptrace/resource"
)

// member is anything a scope releases when it ends: bindings, vectors and
// nested scopes.
type member interface {
	release()
}

// Scope is a lexical region. Everything created in it is pushed on a stack
// and released in reverse order when the scope closes.
type Scope struct {
	rt      *Runtime
	parent  *Scope
	members []member
	owner   resource.Owner
	closed  bool
}

// Name returns the scope's name.
func (s *Scope) Name() string {
	return s.owner.Name
}

// ID returns the owner ID under which the scope's guards are recorded.
func (s *Scope) ID() uint32 {
	return s.owner.ID
}

// Path returns the names from the root scope down to s.
func (s *Scope) Path() []string {
	var path []string
	for cur := s; cur != nil; cur = cur.parent {
		path = append(path, cur.owner.Name)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// Closed reports whether the scope has ended.
func (s *Scope) Closed() bool {
	return s.closed
}

// Guard constructs a guard labelled label and binds it in s.
func (s *Scope) Guard(label string) *Binding {
	s.mustBeOpen(errors.PhaseConstruct)
	h := s.rt.table.Insert(GuardType, s.owner, NewGuard(label))
	if h == 0 {
		panic(errors.New(errors.PhaseConstruct, errors.KindScopeClosed).
			Path(s.Path()...).
			Label(label).
			Detail("runtime closed").
			Build())
	}
	return s.bind(h, label)
}

// Open starts a child scope. The child is released with s if the caller has
// not closed it by then.
func (s *Scope) Open(name string) *Scope {
	s.mustBeOpen(errors.PhaseScope)
	child := s.rt.newScope(s, name)
	s.members = append(s.members, child)
	Logger().Debug("scope opened", zap.String("scope", strings.Join(child.Path(), ".")))
	return child
}

// Nested runs fn in a child scope and closes it when fn returns or panics.
func (s *Scope) Nested(name string, fn func(*Scope)) {
	child := s.Open(name)
	defer child.Close()
	fn(child)
}

// Vec creates an empty container owned by s.
func (s *Scope) Vec(name string) *Vec {
	s.mustBeOpen(errors.PhaseContainer)
	v := &Vec{
		scope: s,
		owner: s.rt.owner(name),
	}
	s.members = append(s.members, v)
	return v
}

// Close ends the scope: every member still live is released, last created
// first. Inert bindings are skipped. Closing twice is a no-op.
func (s *Scope) Close() {
	if s.closed {
		return
	}
	s.closed = true
	for i := len(s.members) - 1; i >= 0; i-- {
		s.members[i].release()
	}
	s.members = nil
	Logger().Debug("scope closed", zap.String("scope", strings.Join(s.Path(), ".")))
}

func (s *Scope) release() {
	s.Close()
}

func (s *Scope) bind(h resource.Handle, label string) *Binding {
	b := &Binding{scope: s, handle: h, label: label}
	s.members = append(s.members, b)
	return b
}

func (s *Scope) mustBeOpen(phase errors.Phase) {
	if s.closed {
		panic(errors.ScopeClosed(phase, s.Path()))
	}
}
