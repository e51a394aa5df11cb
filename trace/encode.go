package trace

import (
	"bufio"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/wippyai/droptrace/errors"
)

// Document is the YAML form of a trace, grouped by scenario.
type Document struct {
	Scenarios []ScenarioDoc `yaml:"scenarios"`
}

// ScenarioDoc holds one scenario's events in order.
type ScenarioDoc struct {
	Title  string     `yaml:"title"`
	Events []EventDoc `yaml:"events"`
}

// EventDoc is a drop or a note.
type EventDoc struct {
	Drop  string `yaml:"drop,omitempty"`
	Owner string `yaml:"owner,omitempty"`
	Note  string `yaml:"note,omitempty"`
}

// Group folds entries into a Document. Entries recorded before the first
// header land in an untitled scenario.
func Group(entries []Entry) Document {
	var doc Document
	current := -1
	for _, e := range entries {
		if e.Kind == KindHeader || current < 0 {
			doc.Scenarios = append(doc.Scenarios, ScenarioDoc{Events: []EventDoc{}})
			current = len(doc.Scenarios) - 1
		}
		sc := &doc.Scenarios[current]
		switch e.Kind {
		case KindHeader:
			sc.Title = e.Text
		case KindDrop:
			sc.Events = append(sc.Events, EventDoc{Drop: e.Text, Owner: e.Owner})
		case KindNote:
			sc.Events = append(sc.Events, EventDoc{Note: e.Text})
		}
	}
	return doc
}

// EncodeText writes entries one per line using render, or PlainText when
// render is nil.
func EncodeText(w io.Writer, entries []Entry, render Renderer) error {
	if render == nil {
		render = PlainText
	}
	bw := bufio.NewWriter(w)
	for _, e := range entries {
		bw.WriteString(render(e))
		bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		return errors.Wrap(errors.PhaseTrace, errors.KindInvalidInput, err, "write text trace")
	}
	return nil
}

// EncodeYAML writes entries as a YAML Document.
func EncodeYAML(w io.Writer, entries []Entry) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(Group(entries)); err != nil {
		return errors.Wrap(errors.PhaseTrace, errors.KindInvalidInput, err, "encode yaml trace")
	}
	if err := enc.Close(); err != nil {
		return errors.Wrap(errors.PhaseTrace, errors.KindInvalidInput, err, "flush yaml trace")
	}
	return nil
}
