package verify

import "fmt"

// sprintfTruncated formats like fmt.Sprintf but clamps the result to
// MaxMessageLength bytes, mirroring the fixed 256-byte message buffer
// (snprintf into a char[256]) of the GDSL reference implementation.
func sprintfTruncated(format string, args ...interface{}) string {
	msg := fmt.Sprintf(format, args...)
	if len(msg) > MaxMessageLength {
		msg = msg[:MaxMessageLength]
	}
	return msg
}
