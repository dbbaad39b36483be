package canvas

import (
	"fmt"
	"os"
)

// Debug gates verbose logging. Off by default; hosts flip it on for
// troubleshooting a session. Grounded on Scene.debug flag.
var Debug = false

// canvasLog prints a diagnostic line to stderr when Debug is enabled.
// Grounded on debug.go's debugLog: a stderr fmt.Fprintf, no logging
// framework.
func canvasLog(format string, args ...any) {
	if !Debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[canvas] "+format+"\n", args...)
}

// canvasWarn always prints to stderr regardless of Debug, for conditions a
// host operator should see even in a release build (bounds exceeded,
// budget exhausted).
func canvasWarn(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, "[canvas] warning: "+format+"\n", args...)
}

// assertInvariant panics with a descriptive message when a programmer-error
// invariant is violated — never for data the host could have supplied
// legitimately. Grounded on debug.go's debugCheckDisposed panic-on-misuse
// pattern.
func assertInvariant(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf("canvas: invariant violated: "+format, args...))
	}
}

const debugMaxItemCount = 20000

// warnIfItemCountExceeds mirrors debug.go's debugCheckChildCount threshold
// warning, applied to the document's flat item list instead of a node's
// children.
func warnIfItemCountExceeds(doc *Document) {
	if n := len(doc.items); n > debugMaxItemCount {
		canvasWarn("document has %d items (threshold %d)", n, debugMaxItemCount)
	}
}
