package verify

import (
	"io"
	"log"
	"os"
)

// PrintDebugInfo toggles debug tracing of Verify to stderr (each unknown
// opcode it decodes). It is consulted on every trace line, so it can be
// flipped at any time.
var PrintDebugInfo = false

var logger = log.New(debugWriter{}, "verify: ", log.Lshortfile)

// debugWriter sends trace output to os.Stderr while PrintDebugInfo is set
// and to io.Discard otherwise.
type debugWriter struct{}

func (debugWriter) Write(p []byte) (int, error) {
	if PrintDebugInfo {
		return os.Stderr.Write(p)
	}
	return io.Discard.Write(p)
}
