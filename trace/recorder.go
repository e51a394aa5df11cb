package trace

import (
	"fmt"
	"io"

	"github.com/wippyai/droptrace/resource"
)

// Kind classifies a trace entry.
type Kind uint8

const (
	KindHeader Kind = iota
	KindDrop
	KindNote
)

func (k Kind) String() string {
	switch k {
	case KindHeader:
		return "header"
	case KindDrop:
		return "drop"
	case KindNote:
		return "note"
	default:
		return "unknown"
	}
}

// Entry is one line of the trace. Text holds the header title, the dropped
// guard's label or the note. Owner is set for drops only and names the scope
// or container that released the guard.
type Entry struct {
	Scenario string
	Text     string
	Owner    string
	Kind     Kind
}

// Labeler is implemented by values whose release is traced.
type Labeler interface {
	Label() string
}

// Renderer turns an entry into the text written for it.
type Renderer func(Entry) string

// PlainText renders entries in the canonical trace format.
func PlainText(e Entry) string {
	switch e.Kind {
	case KindHeader:
		return "\n=== " + e.Text + " ==="
	case KindDrop:
		return "Drop: " + e.Text
	default:
		return e.Text
	}
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithWriter streams each entry to w as it is recorded.
func WithWriter(w io.Writer) Option {
	return func(r *Recorder) {
		r.w = w
	}
}

// WithRenderer replaces PlainText for streamed output.
func WithRenderer(render Renderer) Option {
	return func(r *Recorder) {
		r.render = render
	}
}

// Recorder collects the trace. It observes resource drops, so it is
// subscribed to a runtime's arena; headers and notes are added by the
// scenario runner.
type Recorder struct {
	w        io.Writer
	err      error
	render   Renderer
	scenario string
	entries  []Entry
}

// NewRecorder creates an empty recorder.
func NewRecorder(opts ...Option) *Recorder {
	r := &Recorder{render: PlainText}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Header starts a new scenario section.
func (r *Recorder) Header(title string) {
	r.scenario = title
	r.add(Entry{Kind: KindHeader, Scenario: title, Text: title})
}

// Note records an informational line.
func (r *Recorder) Note(text string) {
	r.add(Entry{Kind: KindNote, Scenario: r.scenario, Text: text})
}

// OnResourceEvent records a drop line for every released labelled value.
func (r *Recorder) OnResourceEvent(e resource.Event) {
	if e.Type != resource.EventDropped {
		return
	}
	l, ok := e.Value.(Labeler)
	if !ok {
		return
	}
	r.add(Entry{
		Kind:     KindDrop,
		Scenario: r.scenario,
		Text:     l.Label(),
		Owner:    e.Owner.Name,
	})
}

// Entries returns a copy of everything recorded so far.
func (r *Recorder) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Drops returns the labels of released guards in release order.
func (r *Recorder) Drops() []string {
	var labels []string
	for _, e := range r.entries {
		if e.Kind == KindDrop {
			labels = append(labels, e.Text)
		}
	}
	return labels
}

// Err returns the first error hit while streaming.
func (r *Recorder) Err() error {
	return r.err
}

func (r *Recorder) add(e Entry) {
	r.entries = append(r.entries, e)
	if r.w == nil || r.err != nil {
		return
	}
	if _, err := fmt.Fprintln(r.w, r.render(e)); err != nil {
		r.err = fmt.Errorf("write trace: %w", err)
	}
}
