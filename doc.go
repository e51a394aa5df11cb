// Package droptrace makes the moment and order of scoped resource release
// visible.
//
// Go has garbage collection and defer, not destructors. This module builds
// a deterministic-destruction model on top of them and prints a trace line
// each time a guarded value's lifetime ends.
//
// # Architecture Overview
//
//	droptrace/          Root package with the Run entry point
//	├── lifetime/       Scopes, bindings, moves and the Vec container
//	├── resource/       Handle arena recording each guard's current owner
//	├── trace/          Recorder plus text and YAML encoders
//	├── scenario/       The four demonstrations and their runner
//	├── errors/         Structured error types for ownership violations
//	└── cmd/droptrace/  Command line front end and interactive viewer
//
// # Quick Start
//
//	if err := droptrace.Run(os.Stdout); err != nil {
//	    log.Fatal(err)
//	}
//
// prints, among the other scenarios:
//
//	=== A: LIFO within one scope ===
//	Drop: C
//	Drop: B
//	Drop: A
//
// # Release Rules
//
//   - Siblings in one scope release in reverse construction order.
//   - An explicit Drop releases on the spot; the scope end skips it.
//   - A moved guard releases when its current owner ends, wherever that is.
//   - A Vec releases its elements last-inserted first on Clear and at the
//     end of its scope.
//
// Breaking a rule (touching a moved binding, dropping twice) panics with an
// *errors.Error.
//
// # Thread Safety
//
// Nothing here is safe for concurrent use. Every scenario runs on one
// goroutine, start to finish.
package droptrace
