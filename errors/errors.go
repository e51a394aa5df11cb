package errors

import (
	"fmt"
	"strings"
)

// Phase indicates which lifetime operation raised the error
type Phase string

const (
	PhaseConstruct Phase = "construct" // guard allocation
	PhaseMove      Phase = "move"      // ownership transfer
	PhaseRelease   Phase = "release"   // explicit or implicit drop
	PhaseScope     Phase = "scope"     // scope enter/exit
	PhaseContainer Phase = "container" // vec push/clear/destroy
	PhaseTrace     Phase = "trace"     // trace encoding
	PhaseCLI       Phase = "cli"       // command line handling
)

// Kind categorizes the error
type Kind string

const (
	KindUseAfterMove  Kind = "use_after_move"
	KindDoubleRelease Kind = "double_release"
	KindUseAfterDrop  Kind = "use_after_drop"
	KindScopeClosed   Kind = "scope_closed"
	KindNotFound      Kind = "not_found"
	KindInvalidInput  Kind = "invalid_input"
	KindUnsupported   Kind = "unsupported"
	KindLeak          Kind = "leak"
)

// Error is the structured error type used throughout droptrace.
// Ownership violations are raised as panics carrying an *Error.
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Label  string
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Label != "" {
		b.WriteString(": guard ")
		b.WriteString(fmt.Sprintf("%q", e.Label))
	}

	if e.Detail != "" {
		if e.Label != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the scope path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Label sets the guard label
func (b *Builder) Label(label string) *Builder {
	b.err.Label = label
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// UseAfterMove creates an error for an operation on a moved-out binding
func UseAfterMove(phase Phase, path []string, label string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUseAfterMove,
		Path:   path,
		Label:  label,
		Detail: "binding was moved out and is inert",
	}
}

// DoubleRelease creates an error for releasing an already released guard
func DoubleRelease(phase Phase, path []string, label string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindDoubleRelease,
		Path:   path,
		Label:  label,
		Detail: "guard was already released",
	}
}

// UseAfterDrop creates an error for reading a binding whose guard was released
func UseAfterDrop(phase Phase, path []string, label string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUseAfterDrop,
		Path:   path,
		Label:  label,
		Detail: "guard was released and the binding is inert",
	}
}

// ScopeClosed creates an error for using a scope or container after it ended
func ScopeClosed(phase Phase, path []string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindScopeClosed,
		Path:   path,
		Detail: "owner already ended its lifetime",
	}
}

// NotFound creates a lookup failure error
func NotFound(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: what,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// Leak creates an error for guards still live after their owner ended
func Leak(path []string, live int) *Error {
	return &Error{
		Phase:  PhaseScope,
		Kind:   KindLeak,
		Path:   path,
		Detail: fmt.Sprintf("%d guard(s) never released", live),
		Value:  live,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
