// Package delta implements a page-granular binary diff/patch engine.
//
// Given a base byte sequence and a target byte sequence, Diff produces a
// DiffResult that records which fixed-size pages changed between the two
// and carries the new contents of those pages. Patch applies a DiffResult
// back to a (possibly absent) base to reconstruct the target.
package delta

// DefaultPageSize is the page size used by Diff when none is configured.
// It matches the GDSL reference implementation's default.
const DefaultPageSize = 4096

// DiffVersion is the current on-wire format version produced by Diff.
const DiffVersion = 1

// DiffHeader describes the shape of a DiffResult: the format version, the
// page size pages were aligned to, reserved flags, the number of chunks,
// and the total length of the target the diff reconstructs.
type DiffHeader struct {
	Version      uint32
	PageSize     uint32
	Flags        uint32
	ChunkCount   uint32
	TargetLength uint64
}

// Chunk is the delta record for one changed page: its page index, the
// number of target bytes the page covers (at most PageSize; the whole page
// is carried, not just the bytes that differ), and the offset of those
// bytes within the owning DiffResult's Payload.
type Chunk struct {
	PageIndex  uint64
	Length     uint64
	DataOffset uint64
}

// DiffResult owns a header, an ordered list of chunks, and the contiguous
// payload bytes referenced by those chunks. A well-formed DiffResult
// satisfies the invariants of spec.md §3.1:
//
//  1. Chunks appear in strictly increasing PageIndex order.
//  2. PageIndex*PageSize + Length <= TargetLength for every chunk.
//  3. DataOffset+Length <= len(Payload) for every chunk.
//  4. Chunk i's DataOffset equals the sum of the lengths of chunks before it.
//  5. Header.ChunkCount equals len(Chunks).
//  6. If there are no changes, Chunks and Payload are both empty.
type DiffResult struct {
	Header  DiffHeader
	Chunks  []Chunk
	Payload []byte
}

// Destroy releases a DiffResult's buffers and zeroes its header, mirroring
// the ownership/lifecycle contract of the GDSL reference implementation
// (gdsl_diff_result_destroy), where a destroyed result is unambiguously
// empty rather than merely unreferenced. Go's garbage collector reclaims
// the backing arrays on its own; Destroy exists for API symmetry and to
// catch accidental reuse of a result a caller has declared done with.
func (d *DiffResult) Destroy() {
	if d == nil {
		return
	}
	d.Chunks = nil
	d.Payload = nil
	d.Header = DiffHeader{}
}
