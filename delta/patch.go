package delta

import "math"

// Patch reconstructs the target buffer a DiffResult describes, optionally
// starting from a base buffer for the untouched pages. It implements
// spec.md §4.1.2: validate the whole diff before writing anything, allocate
// a zero-filled output of TargetLength, copy in base for the pages the diff
// doesn't touch, then overwrite with each chunk's payload bytes in order.
//
// Patch is deterministic and idempotent: applying the same diff to the same
// base always yields byte-identical output.
func Patch(base []byte, diff *DiffResult) ([]byte, error) {
	if diff == nil {
		return nil, newError("patch", CodeInvalidArgument, "nil diff")
	}
	if err := validateDiff(diff); err != nil {
		return nil, err
	}

	targetLen := diff.Header.TargetLength
	out := make([]byte, targetLen)

	if len(base) > 0 && targetLen > 0 {
		n := uint64(len(base))
		if n > targetLen {
			n = targetLen
		}
		copy(out, base[:n])
	}

	pageSize := uint64(diff.Header.PageSize)
	for _, c := range diff.Chunks {
		off := c.PageIndex * pageSize
		copy(out[off:off+c.Length], diff.Payload[c.DataOffset:c.DataOffset+c.Length])
		logger.Printf("applied chunk page=%d len=%d", c.PageIndex, c.Length)
	}

	return out, nil
}

// validateDiff performs the stricter of the two validation variants the
// GDSL reference implementation carried (see spec.md §9, "Duplicate source
// file"): page_size must be nonzero, every chunk's length must not exceed
// the page size, every arithmetic step is overflow-checked before use, and
// an empty target requires an empty chunk list.
func validateDiff(diff *DiffResult) error {
	pageSize := diff.Header.PageSize
	if pageSize == 0 {
		return newError("patch", CodeInvalidArgument, "page size is zero")
	}

	targetLen := diff.Header.TargetLength
	if targetLen == 0 && len(diff.Chunks) != 0 {
		return newError("patch", CodeInvalidArgument, "empty target must have no chunks")
	}

	payloadLen := uint64(len(diff.Payload))
	maxPageIndex := math.MaxUint64 / uint64(pageSize)

	var lastPage uint64
	haveLast := false
	for _, c := range diff.Chunks {
		if haveLast && c.PageIndex <= lastPage {
			return newError("patch", CodeInvalidArgument, "chunks out of order")
		}
		lastPage, haveLast = c.PageIndex, true

		if c.Length > uint64(pageSize) {
			return newError("patch", CodeInvalidArgument, "chunk length exceeds page size")
		}
		if c.DataOffset > payloadLen || payloadLen-c.DataOffset < c.Length {
			return newError("patch", CodeInvalidArgument, "chunk payload range out of bounds")
		}
		if c.PageIndex > maxPageIndex {
			return newError("patch", CodeInvalidArgument, "page index overflows address space")
		}
		off := c.PageIndex * uint64(pageSize)
		if off > targetLen || targetLen-off < c.Length {
			return newError("patch", CodeInvalidArgument, "chunk exceeds target length")
		}
	}

	return nil
}
