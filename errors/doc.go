// Package errors provides structured error types for droptrace.
//
// Errors are categorized by Phase (which lifetime operation was running) and
// Kind (error category). The Error type carries the scope path, the guard
// label and an optional cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseRelease, errors.KindDoubleRelease).
//		Path("scenario_b", "inner").
//		Label("inner2").
//		Detail("released twice").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.UseAfterMove(errors.PhaseMove, path, "move_src")
//	err := errors.DoubleRelease(errors.PhaseRelease, path, "inner2")
//
// Ownership violations are programming errors, so the lifetime package
// panics with an *Error instead of returning it. All errors implement the
// standard error interface and support errors.Is/As.
package errors
