package delta

import "testing"

func TestPatchEmptyDiffEqualsTruncatedBase(t *testing.T) {
	base := fillPattern(4096, 3)
	d := &DiffResult{Header: DiffHeader{Version: DiffVersion, PageSize: DefaultPageSize, TargetLength: 100}}

	out, err := Patch(base, d)
	if err != nil {
		t.Fatalf("Patch: %v", err)
	}
	if len(out) != 100 {
		t.Fatalf("len = %d, want 100", len(out))
	}
	if string(out) != string(base[:100]) {
		t.Fatalf("output does not match truncated base")
	}
}

func TestPatchEmptyDiffZeroPadsPastBase(t *testing.T) {
	base := fillPattern(10, 1)
	d := &DiffResult{Header: DiffHeader{Version: DiffVersion, PageSize: DefaultPageSize, TargetLength: 20}}

	out, err := Patch(base, d)
	if err != nil {
		t.Fatalf("Patch: %v", err)
	}
	if len(out) != 20 {
		t.Fatalf("len = %d, want 20", len(out))
	}
	if string(out[:10]) != string(base) {
		t.Fatalf("prefix does not match base")
	}
	for i := 10; i < 20; i++ {
		if out[i] != 0 {
			t.Fatalf("byte %d = %#x, want 0", i, out[i])
		}
	}
}

func TestPatchNilBaseZeroFills(t *testing.T) {
	d := &DiffResult{Header: DiffHeader{Version: DiffVersion, PageSize: DefaultPageSize, TargetLength: 16}}
	out, err := Patch(nil, d)
	if err != nil {
		t.Fatalf("Patch: %v", err)
	}
	for i, b := range out {
		if b != 0 {
			t.Fatalf("byte %d = %#x, want 0", i, b)
		}
	}
}

func TestPatchIsIdempotent(t *testing.T) {
	base := fillPattern(8192, 1)
	target := make([]byte, 8192)
	copy(target, base)
	copy(target[4096:8192], fillPattern(4096, 9))

	d, err := Diff(base, target)
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}

	out1, err := Patch(base, d)
	if err != nil {
		t.Fatalf("Patch 1: %v", err)
	}
	out2, err := Patch(base, d)
	if err != nil {
		t.Fatalf("Patch 2: %v", err)
	}
	if string(out1) != string(out2) {
		t.Fatal("patch is not idempotent")
	}
}

func TestPatchRejectsZeroPageSize(t *testing.T) {
	d := &DiffResult{Header: DiffHeader{TargetLength: 10}}
	if _, err := Patch(nil, d); err == nil {
		t.Fatal("expected error for zero page size")
	}
}

func TestPatchRejectsOversizedChunkLength(t *testing.T) {
	d := &DiffResult{
		Header:  DiffHeader{PageSize: DefaultPageSize, TargetLength: DefaultPageSize},
		Chunks:  []Chunk{{PageIndex: 0, Length: DefaultPageSize + 1, DataOffset: 0}},
		Payload: make([]byte, DefaultPageSize+1),
	}
	if _, err := Patch(nil, d); err == nil {
		t.Fatal("expected error for oversized chunk length")
	}
}

func TestPatchRejectsPayloadUnderrun(t *testing.T) {
	d := &DiffResult{
		Header:  DiffHeader{PageSize: DefaultPageSize, TargetLength: DefaultPageSize},
		Chunks:  []Chunk{{PageIndex: 0, Length: 100, DataOffset: 50}},
		Payload: make([]byte, 100),
	}
	if _, err := Patch(nil, d); err == nil {
		t.Fatal("expected error for payload underrun")
	}
}

func TestPatchRejectsChunkBeyondTarget(t *testing.T) {
	d := &DiffResult{
		Header:  DiffHeader{PageSize: DefaultPageSize, TargetLength: DefaultPageSize},
		Chunks:  []Chunk{{PageIndex: 5, Length: 10, DataOffset: 0}},
		Payload: make([]byte, 10),
	}
	if _, err := Patch(nil, d); err == nil {
		t.Fatal("expected error for chunk beyond target")
	}
}

func TestPatchRejectsInconsistentEmptyTarget(t *testing.T) {
	d := &DiffResult{
		Header:  DiffHeader{PageSize: DefaultPageSize, TargetLength: 0},
		Chunks:  []Chunk{{PageIndex: 0, Length: 10, DataOffset: 0}},
		Payload: make([]byte, 10),
	}
	if _, err := Patch(nil, d); err == nil {
		t.Fatal("expected error for chunks present with zero target length")
	}
}

func TestPatchRejectsOutOfOrderChunks(t *testing.T) {
	d := &DiffResult{
		Header: DiffHeader{PageSize: DefaultPageSize, TargetLength: DefaultPageSize * 3},
		Chunks: []Chunk{
			{PageIndex: 1, Length: 10, DataOffset: 0},
			{PageIndex: 0, Length: 10, DataOffset: 10},
		},
		Payload: make([]byte, 20),
	}
	if _, err := Patch(nil, d); err == nil {
		t.Fatal("expected error for out-of-order chunks")
	}
}
