package verify

// Phase is the coarse lifecycle state of a command stream.
type Phase int

const (
	Build Phase = iota
	Record
	Submitted
	Idle
	Finished
)

func (p Phase) String() string {
	switch p {
	case Build:
		return "Build"
	case Record:
		return "Record"
	case Submitted:
		return "Submitted"
	case Idle:
		return "Idle"
	case Finished:
		return "Finished"
	default:
		return "Unknown"
	}
}

// Domain is the execution locus of the most recent effective instruction.
type Domain int

const (
	Host Domain = iota
	Device
)

func (d Domain) String() string {
	if d == Device {
		return "Device"
	}
	return "Host"
}

// Level is a verification strictness level. Levels are monotonic: a higher
// level implies every check a lower level performs (spec.md §4.2.2).
type Level int

const (
	// Syntax performs only opcode recognition and instruction framing.
	Syntax Level = iota
	// Phase adds phase transition legality and pending-work warnings.
	PhaseLevel
	// Domain adds domain constraints and snapshot region checks.
	DomainLevel
)

// state is the verifier's running state machine, initialized to
// (Build, Host, false) per spec.md §3.2.
type state struct {
	phase          Phase
	domain         Domain
	snapshotActive bool
}

func newState() state {
	return state{phase: Build, domain: Host, snapshotActive: false}
}
