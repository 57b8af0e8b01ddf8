package verify

// Severity classifies a Diagnostic.
type Severity int

const (
	Info Severity = iota
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// MaxDiagnostics is the fixed capacity of a VerifyReport's diagnostic list.
// Diagnostics beyond this capacity are dropped entirely — not counted, not
// recorded — per spec.md §3.2. This bound, and MaxMessageLength below, are
// deliberate bounded-memory choices carried over unchanged from the GDSL
// reference implementation; tests depend on the exact capacity.
const MaxDiagnostics = 64

// MaxMessageLength is the maximum byte length of a Diagnostic's Message.
const MaxMessageLength = 256

// Diagnostic is a single verifier finding.
type Diagnostic struct {
	InstructionIndex int
	Severity         Severity
	Message          string
}

// VerifyReport is the fully-populated result of a Verify call: whether the
// stream passed, how many instructions were validated, per-severity
// counters, and up to MaxDiagnostics diagnostics.
type VerifyReport struct {
	Success          bool
	InstructionCount int
	ErrorCount       int
	WarningCount     int
	InfoCount        int
	Diagnostics      []Diagnostic
}

// addDiagnostic appends a diagnostic if capacity remains, bumping the
// matching severity counter. Per spec.md §3.2, once MaxDiagnostics is
// reached, additional diagnostics are dropped and do NOT increment their
// severity counter either — the counters and the slice stay in lockstep
// only while capacity holds.
func (r *VerifyReport) addDiagnostic(index int, sev Severity, format string, args ...interface{}) {
	if len(r.Diagnostics) >= MaxDiagnostics {
		return
	}
	msg := sprintfTruncated(format, args...)
	r.Diagnostics = append(r.Diagnostics, Diagnostic{
		InstructionIndex: index,
		Severity:         sev,
		Message:          msg,
	})
	switch sev {
	case Error:
		r.ErrorCount++
	case Warning:
		r.WarningCount++
	default:
		r.InfoCount++
	}
}
