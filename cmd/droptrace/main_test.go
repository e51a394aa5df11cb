package main

import (
	"bytes"
	stderrors "errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wippyai/droptrace/errors"
	"github.com/wippyai/droptrace/lifetime"
	"github.com/wippyai/droptrace/resource"
	"github.com/wippyai/droptrace/trace"
)

func TestRun_TextDefault(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if err := run(options{format: "text"}, &stdout, &stderr); err != nil {
		t.Fatalf("run: %v", err)
	}

	out := stdout.String()
	if !strings.Contains(out, "Drop: C\nDrop: B\nDrop: A\n") {
		t.Fatalf("missing scenario A trace:\n%s", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatal("non-terminal output must not be styled")
	}
	if stderr.Len() != 0 {
		t.Fatalf("unexpected stderr output: %s", stderr.String())
	}
}

func TestRun_SelectAndYAML(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if err := run(options{run: "d", format: "yaml"}, &stdout, &stderr); err != nil {
		t.Fatalf("run: %v", err)
	}

	out := stdout.String()
	if !strings.Contains(out, "title: 'D: Vec clear and scope end'") && !strings.Contains(out, `title: "D: Vec clear and scope end"`) {
		t.Fatalf("missing D title:\n%s", out)
	}
	if strings.Contains(out, "LIFO") {
		t.Fatalf("only D should run:\n%s", out)
	}
	if !strings.Contains(out, "owner: v") {
		t.Fatalf("drops should be attributed to the vec:\n%s", out)
	}
}

func TestRun_List(t *testing.T) {
	var stdout bytes.Buffer
	if err := run(options{list: true, format: "text"}, &stdout, &bytes.Buffer{}); err != nil {
		t.Fatalf("run: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	if len(lines) != 4 || !strings.HasPrefix(lines[0], "A  ") {
		t.Fatalf("unexpected listing:\n%s", stdout.String())
	}
}

func TestRun_BadInput(t *testing.T) {
	tests := []struct {
		name string
		opts options
		kind errors.Kind
	}{
		{name: "unknown scenario", opts: options{run: "Q", format: "text"}, kind: errors.KindNotFound},
		{name: "unknown format", opts: options{format: "json"}, kind: errors.KindInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := run(tt.opts, &bytes.Buffer{}, &bytes.Buffer{})
			var e *errors.Error
			if !stderrors.As(err, &e) || e.Kind != tt.kind {
				t.Fatalf("err = %v, want kind %v", err, tt.kind)
			}
		})
	}
}

func TestRun_VerboseLogsToStderr(t *testing.T) {
	prevLifetime, prevResource := lifetime.Logger(), resource.Logger()
	defer func() {
		lifetime.SetLogger(prevLifetime)
		resource.SetLogger(prevResource)
	}()

	var stdout, stderr bytes.Buffer
	if err := run(options{run: "D", format: "text", verbose: true}, &stdout, &stderr); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(stderr.String(), "vec storage released") {
		t.Fatalf("expected debug log on stderr, got:\n%s", stderr.String())
	}
	if strings.Contains(stdout.String(), "storage") {
		t.Fatal("log output leaked into the trace")
	}
}

func TestInteractiveModel_Stepping(t *testing.T) {
	entries := []trace.Entry{
		{Kind: trace.KindHeader, Text: "A"},
		{Kind: trace.KindDrop, Text: "C", Owner: "lifo_order"},
		{Kind: trace.KindDrop, Text: "B", Owner: "lifo_order"},
	}
	m := newInteractiveModel(entries)

	if m.View() != "Loading trace..." {
		t.Fatal("view before sizing should show loading")
	}

	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if m.shown != 2 {
		t.Fatalf("shown = %d, want 2", m.shown)
	}
	if !strings.Contains(m.content(), "C") || strings.Contains(m.content(), "Drop: B") {
		t.Fatalf("content = %q", m.content())
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")})
	if m.shown != 1 {
		t.Fatalf("shown = %d after back, want 1", m.shown)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	if m.shown != len(entries) {
		t.Fatalf("shown = %d after reveal all", m.shown)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.shown != len(entries) {
		t.Fatal("next past the end should stay at the end")
	}

	if !strings.Contains(m.View(), "event 3/3") {
		t.Fatalf("view should show progress:\n%s", m.View())
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q should quit")
	}
}
