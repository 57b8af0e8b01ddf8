package delta

import (
	"io"
	"log"
	"os"
)

// PrintDebugInfo toggles debug tracing to stderr: the pages Diff judges
// changed, the chunks Patch applies, and the files LoadDiffFile maps. Off by
// default; it is consulted on every trace line, so tests or debugging
// sessions can flip it on at any time.
var PrintDebugInfo = false

var logger = log.New(debugWriter{}, "delta: ", log.Lshortfile)

// debugWriter sends trace output to os.Stderr while PrintDebugInfo is set
// and to io.Discard otherwise.
type debugWriter struct{}

func (debugWriter) Write(p []byte) (int, error) {
	if PrintDebugInfo {
		return os.Stderr.Write(p)
	}
	return io.Discard.Write(p)
}
