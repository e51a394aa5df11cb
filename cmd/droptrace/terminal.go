package main

import (
	"io"
	"os"
	"sync/atomic"

	"golang.org/x/term"

	"github.com/wippyai/droptrace/trace"
)

var stdoutIsTerminal int32 = -1 // -1 = unchecked, 0 = no, 1 = yes

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	if f != os.Stdout {
		return term.IsTerminal(int(f.Fd()))
	}
	if v := atomic.LoadInt32(&stdoutIsTerminal); v >= 0 {
		return v == 1
	}
	result := term.IsTerminal(int(f.Fd()))
	if result {
		atomic.StoreInt32(&stdoutIsTerminal, 1)
	} else {
		atomic.StoreInt32(&stdoutIsTerminal, 0)
	}
	return result
}

// rendererFor styles the trace only when w is a terminal; pipes and files
// get the canonical plain text.
func rendererFor(w io.Writer) trace.Renderer {
	if isTerminal(w) {
		return styledEntry
	}
	return trace.PlainText
}
