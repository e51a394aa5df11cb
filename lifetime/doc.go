// Package lifetime makes scope-based release explicit.
//
// Go runs no destructor when a variable goes out of scope, so ownership is
// modelled directly:
//
//   - A Scope is a stack. Every Guard, Vec and child Scope created in it is
//     pushed, and Close pops and releases them, last created first.
//   - A Binding owns one guard through a handle into the resource arena.
//     Move and MoveTo hand the guard to a new binding and leave the old one
//     inert; Drop releases early and suppresses the scope-end release.
//   - A Vec owns its guards. Clear and scope end release them in reverse
//     insertion order, then the container's storage goes away silently.
//
// Typical use:
//
//	rt := lifetime.NewRuntime()
//	rt.Subscribe(recorder)
//
//	s := rt.Open("main")
//	defer s.Close()
//
//	a := s.Guard("A")
//	b := a.Move()          // a is inert from here on
//	s.Nested("inner", func(in *lifetime.Scope) {
//	    b.MoveTo(in)       // released when "inner" ends
//	})
//
// Every release removes the guard's arena slot, which notifies the
// runtime's observers synchronously. Touching an inert binding, releasing
// twice or using a closed scope panics with an *errors.Error; these are
// programming errors, not conditions to recover from.
//
// Runtimes, scopes, bindings and vectors are not safe for concurrent use.
package lifetime
