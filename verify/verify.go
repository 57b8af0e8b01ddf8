package verify

// Verify decodes stream against the phase/domain state machine at the
// given strictness level and returns a fully-populated VerifyReport. It
// never panics and always returns a non-nil report; per spec.md §4.2.4,
// Success is exactly (ErrorCount == 0).
//
// Verify implements the decode loop of spec.md §4.2.1: unknown opcodes are
// recorded as errors but do not halt decoding; a truncated known opcode
// halts decoding immediately. State transitions (§4.2.3) always occur after
// the phase/domain checks for an instruction, regardless of whether that
// instruction produced a diagnostic, so later diagnostics stay meaningful.
func Verify(stream []byte, level Level) *VerifyReport {
	report := &VerifyReport{}
	st := newState()

	off := 0
	index := 0
	length := len(stream)

	for off < length {
		op := stream[off]
		meta, known := lookup(op)

		if !known {
			report.addDiagnostic(index, Error, "unknown opcode 0x%02x", op)
			logger.Printf("instruction %d: unknown opcode 0x%02x", index, op)
			off++
			index++
			continue
		}

		if meta.size == 0 || off+int(meta.size) > length {
			report.addDiagnostic(index, Error, "truncated instruction for %s", meta.name)
			break
		}

		report.InstructionCount++
		applyTransition(report, &st, index, Opcode(op), level)

		off += int(meta.size)
		index++
	}

	if st.snapshotActive {
		report.addDiagnostic(index, Error, "unterminated snapshot region")
	}
	if st.phase != Finished {
		report.addDiagnostic(index, Error, "stream did not reach END_STREAM/END_PROGRAM")
	}

	report.Success = report.ErrorCount == 0
	return report
}

// transitionError records the canonical "<OP> not allowed in <phase>
// phase" diagnostic of spec.md §4.2.3.
func transitionError(report *VerifyReport, index int, opName, expectedPhase string) {
	report.addDiagnostic(index, Error, "%s not allowed in %s phase", opName, expectedPhase)
}

// applyTransition runs the phase/domain state machine for one recognized,
// fully-framed instruction. Checks are gated by level (Syntax performs
// none of them); the state update itself always happens, per spec.md
// §4.2.3's "State updates always occur after the check, regardless of
// error".
func applyTransition(report *VerifyReport, st *state, index int, op Opcode, level Level) {
	switch op {
	case NOP:
		// No phase/domain effect at any level.

	case BeginStream:
		if level >= PhaseLevel {
			if st.snapshotActive {
				report.addDiagnostic(index, Error, "cannot BEGIN_STREAM while snapshot is active")
			}
			if st.phase != Build && st.phase != Idle {
				expected := "Idle"
				if st.phase == Record {
					expected = "Record"
				}
				transitionError(report, index, "BEGIN_STREAM", expected)
			}
		}
		st.phase = Record

	case Barrier:
		if level >= PhaseLevel && st.phase != Record {
			transitionError(report, index, "BARRIER", "Record")
		}
		if level >= DomainLevel && st.domain != Device {
			report.addDiagnostic(index, Warning, "implicit promotion")
			st.domain = Device
		}

	case Submit:
		if level >= PhaseLevel {
			if st.phase != Record {
				transitionError(report, index, "SUBMIT", "Record")
			}
			if st.snapshotActive {
				report.addDiagnostic(index, Error, "cannot SUBMIT inside a snapshot")
			}
		}
		st.phase = Submitted
		st.domain = Device

	case FenceWait:
		if level >= PhaseLevel && st.phase != Submitted {
			transitionError(report, index, "FENCE_WAIT", "Submitted")
		}
		st.phase = Idle
		st.domain = Host

	case EndStream:
		if level >= PhaseLevel {
			if st.phase != Idle && st.phase != Record {
				transitionError(report, index, "END_STREAM", "Idle")
			}
			if st.phase == Record {
				// Lenient by design (spec.md §9, "Open question — END_STREAM
				// from Record phase"): this is a Warning, not an Error, and
				// the stream still transitions to Finished.
				report.addDiagnostic(index, Warning, "pending work; assuming idle")
			}
		}
		st.phase = Finished

	case EndProgram:
		if level >= PhaseLevel && st.phase != Finished {
			transitionError(report, index, "END_PROGRAM", "Finished")
		}
		// No phase change: END_PROGRAM is a terminal no-op once Finished.

	case SnapshotBegin:
		if level >= DomainLevel {
			if st.snapshotActive {
				report.addDiagnostic(index, Error, "nested SNAPSHOT_BEGIN not allowed")
			}
			if st.phase != Idle {
				transitionError(report, index, "SNAPSHOT_BEGIN", "Idle")
			}
			if st.domain != Host {
				report.addDiagnostic(index, Error, "snapshots require host domain but current domain is device")
			}
		}
		st.snapshotActive = true

	case SnapshotEnd:
		if level >= DomainLevel && !st.snapshotActive {
			report.addDiagnostic(index, Error, "SNAPSHOT_END without SNAPSHOT_BEGIN")
		}
		st.snapshotActive = false

	case Checkpoint:
		if level >= DomainLevel && st.phase != Idle {
			transitionError(report, index, "CHECKPOINT", "Idle")
		}
	}
}
