package scenario

import (
	"github.com/wippyai/droptrace/lifetime"
)

// LIFOOrder binds A, B and C in one scope and does nothing else.
// They drop C, B, A at scope end.
func LIFOOrder(env *Env) {
	s := env.Runtime.Open("lifo_order")
	defer s.Close()

	s.Guard("A")
	s.Guard("B")
	s.Guard("C")
}

// NestedAndExplicitDrop shows that an explicit drop fires on the spot and
// that inner scopes end before the outer one.
func NestedAndExplicitDrop(env *Env) {
	s := env.Runtime.Open("nested_and_explicit_drop")
	defer s.Close()

	outer := s.Guard("outer")
	s.Nested("inner", func(in *lifetime.Scope) {
		in.Guard("inner1")
		inner2 := in.Guard("inner2")
		inner2.Drop()
		env.Note("right after inner2.Drop()")
	})
	env.Note("right after leaving the nested scope")
	outer.Drop()
}

// MoveAndHandOff moves a guard to a second binding and hands that binding
// to a function, which releases it at its own end.
func MoveAndHandOff(env *Env) {
	s := env.Runtime.Open("move_and_hand_off")
	defer s.Close()

	a := s.Guard("move_src")
	b := a.Move()
	// a.Label() would panic here: a is inert
	takesOwnership(s, b)
	env.Note("back in the caller; move_src is already gone")
}

func takesOwnership(caller *lifetime.Scope, arg *lifetime.Binding) {
	s := caller.Open("takes_ownership")
	defer s.Close()

	arg.MoveTo(s)
}

// VecClearAndScopeEnd fills a container, clears it, refills it and lets the
// scope end release the rest.
func VecClearAndScopeEnd(env *Env) {
	s := env.Runtime.Open("vec_clear_and_scope_end")
	defer s.Close()

	v := s.Vec("v")
	v.Push("v[0]")
	v.Push("v[1]")
	v.Push("v[2]")

	env.Note("→ v.Clear() drops the elements right here")
	v.Clear()

	env.Note("→ push again; these drop at scope end")
	v.Push("v2[0]")
	v.Push("v2[1]")
}
