package delta

// ChangedSet returns the page indices touched by diff's chunks, in the same
// (strictly increasing) order the chunks appear in. It implements
// spec.md §4.1.3.
//
// If out has insufficient capacity for the result, ChangedSet fails with
// CodeBufferTooSmall and writes nothing to out; the caller can retry with a
// wider slice, sized to the count also returned on failure.
func ChangedSet(diff *DiffResult, out []uint64) (n int, err error) {
	if diff == nil {
		return 0, newError("changed_set", CodeInvalidArgument, "nil diff")
	}

	count := len(diff.Chunks)
	if len(out) < count {
		return count, newError("changed_set", CodeBufferTooSmall, "destination capacity too small")
	}

	for i, c := range diff.Chunks {
		out[i] = c.PageIndex
	}
	return count, nil
}
