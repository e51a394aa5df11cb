package droptrace

import (
	"io"

	"github.com/wippyai/droptrace/scenario"
	"github.com/wippyai/droptrace/trace"
)

// Run executes scenarios A through D in order and writes the plain text
// trace to w.
func Run(w io.Writer) error {
	rec := trace.NewRecorder(trace.WithWriter(w))
	return scenario.NewRunner(rec, nil).Run(scenario.All())
}
