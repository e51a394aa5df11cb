package scenario

import (
	"strings"

	"github.com/wippyai/droptrace/errors"
	"github.com/wippyai/droptrace/lifetime"
	"github.com/wippyai/droptrace/trace"
)

// Env is what a scenario gets to work with: a fresh runtime and the trace
// it reports into.
type Env struct {
	Runtime *lifetime.Runtime
	Trace   *trace.Recorder
}

// Note adds an informational line to the trace.
func (e *Env) Note(text string) {
	e.Trace.Note(text)
}

// Scenario is one self-contained demonstration.
type Scenario struct {
	Run   func(*Env)
	Name  string
	Title string
}

// All returns the scenarios in their fixed order: A, B, C, D.
func All() []Scenario {
	return []Scenario{
		{Name: "A", Title: "A: LIFO within one scope", Run: LIFOOrder},
		{Name: "B", Title: "B: nested scopes + explicit drop", Run: NestedAndExplicitDrop},
		{Name: "C", Title: "C: move and hand-off to a function", Run: MoveAndHandOff},
		{Name: "D", Title: "D: Vec clear and scope end", Run: VecClearAndScopeEnd},
	}
}

// Lookup selects scenarios by name, case-insensitively. The result keeps
// the fixed A-D order regardless of the order of names; an empty name list
// selects everything.
func Lookup(names ...string) ([]Scenario, error) {
	all := All()
	if len(names) == 0 {
		return all, nil
	}

	want := make(map[string]bool, len(names))
	for _, n := range names {
		n = strings.ToUpper(strings.TrimSpace(n))
		if n == "" {
			continue
		}
		found := false
		for _, sc := range all {
			if sc.Name == n {
				found = true
				break
			}
		}
		if !found {
			return nil, errors.NotFound(errors.PhaseCLI, "unknown scenario "+n)
		}
		want[n] = true
	}
	if len(want) == 0 {
		return all, nil
	}

	var out []Scenario
	for _, sc := range all {
		if want[sc.Name] {
			out = append(out, sc)
		}
	}
	return out, nil
}
