// Package tracelog provides opt-in, terminal-aware colorized output for the
// rewrite tracer and firing logger, grounded on the teacher's startup
// sequence in cmd/graft/main.go (isatty.IsTerminal feeding ansi.Color).
package tracelog

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/starkandwayne/goutils/ansi"

	"github.com/gopetri/apn/adt"
)

// EnableAutoColor turns ansi color tags on or off process-wide based on
// whether w is a terminal. Call it once at startup; it is a no-op for tests,
// which set ansi.Color(false) directly the way the teacher's tests do.
func EnableAutoColor(w *os.File) {
	ansi.Color(isatty.IsTerminal(w.Fd()))
}

// ColorTracer implements adt.Tracer, writing one colorized line per rule
// application to Out. A nil Out defaults to os.Stderr.
type ColorTracer struct {
	Out io.Writer
}

// Applied implements adt.Tracer.
func (t *ColorTracer) Applied(rule *adt.RewriteRule, before, after *adt.Term) {
	out := t.Out
	if out == nil {
		out = os.Stderr
	}
	fmt.Fprint(out, ansi.Sprintf("@G{applied} %s: @Y{%s} -> @C{%s}\n", rule, before, after))
}

// Firing prints one line describing a successful transition firing, in the
// style of the teacher's log.DEBUG call sites. w defaults to os.Stderr.
func Firing(w io.Writer, netName, transitionName string, consumed, produced int) {
	if w == nil {
		w = os.Stderr
	}
	fmt.Fprint(w, ansi.Sprintf("@G{fired} %s/%s: consumed @Y{%d}, produced @Y{%d}\n", netName, transitionName, consumed, produced))
}
