package delta

// Diff computes a page-granular delta between base and target using
// DefaultPageSize-byte pages. It implements the two-pass algorithm of
// spec.md §4.1.1: a first pass counts changed pages and sizes the payload
// buffer exactly once, and a second pass emits chunks and copies payload
// bytes. A single-pass dynamic-buffer implementation would also satisfy the
// DiffResult invariants, but the two-pass approach avoids the reallocation
// churn and matches the GDSL reference implementation this package was
// distilled from.
//
// base or target may be nil only if their semantic length is zero; slices
// of length zero are equivalent to nil for this purpose. Diff never
// mutates base or target.
func Diff(base, target []byte) (*DiffResult, error) {
	return DiffPageSize(base, target, DefaultPageSize)
}

// DiffPageSize is Diff with an explicit page size, for callers (such as
// cmd/gdsl, which takes the page size from package config) that override
// the default.
func DiffPageSize(base, target []byte, pageSize uint32) (*DiffResult, error) {
	if pageSize == 0 {
		return nil, newError("diff", CodeInvalidArgument, "page size must be nonzero")
	}

	baseLen := uint64(len(base))
	targetLen := uint64(len(target))

	result := &DiffResult{
		Header: DiffHeader{
			Version:      DiffVersion,
			PageSize:     pageSize,
			Flags:        0,
			TargetLength: targetLen,
		},
	}

	maxLen := baseLen
	if targetLen > maxLen {
		maxLen = targetLen
	}
	totalPages := pageCount(maxLen, uint64(pageSize))

	chunkCount := 0
	payloadSize := uint64(0)
	for p := uint64(0); p < totalPages; p++ {
		span := targetSpan(p, uint64(pageSize), targetLen)
		if span == 0 {
			continue
		}
		if pageChanged(base, target, p*uint64(pageSize), span) {
			chunkCount++
			payloadSize += span
			logger.Printf("page %d changed, span %d", p, span)
		}
	}

	if chunkCount == 0 {
		result.Header.ChunkCount = 0
		return result, nil
	}

	chunks := make([]Chunk, 0, chunkCount)
	payload := make([]byte, 0, payloadSize)

	for p := uint64(0); p < totalPages; p++ {
		off := p * uint64(pageSize)
		span := targetSpan(p, uint64(pageSize), targetLen)
		if span == 0 {
			continue
		}
		if !pageChanged(base, target, off, span) {
			continue
		}
		chunks = append(chunks, Chunk{
			PageIndex:  p,
			Length:     span,
			DataOffset: uint64(len(payload)),
		})
		payload = append(payload, target[off:off+span]...)
	}

	result.Chunks = chunks
	result.Payload = payload
	result.Header.ChunkCount = uint32(len(chunks))
	return result, nil
}

// pageCount returns ceil(length/pageSize), or 0 if length is 0.
func pageCount(length, pageSize uint64) uint64 {
	if length == 0 {
		return 0
	}
	return (length + pageSize - 1) / pageSize
}

// targetSpan returns how many target bytes page p covers, or 0 if the page
// lies entirely beyond target (in which case it is skipped: spec.md §4.1.1
// "pages beyond T are not emitted even if they exist in base").
func targetSpan(p, pageSize, targetLen uint64) uint64 {
	off := p * pageSize
	if off >= targetLen {
		return 0
	}
	remaining := targetLen - off
	if remaining > pageSize {
		return pageSize
	}
	return remaining
}

// pageChanged compares target[off:off+span] against the corresponding base
// bytes, treating base bytes past len(base) as implicit zero. Per spec.md
// §4.1.1, this can make a page "changed" purely because base has no content
// there, even if the target bytes happen to be zero — the delta must carry
// the authoritative target bytes for any page not verifiably identical.
func pageChanged(base, target []byte, off, span uint64) bool {
	baseLen := uint64(len(base))
	for i := uint64(0); i < span; i++ {
		var baseByte byte
		if off+i < baseLen {
			baseByte = base[off+i]
		}
		if baseByte != target[off+i] {
			return true
		}
	}
	return false
}
