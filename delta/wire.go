package delta

import (
	"encoding/binary"
	"fmt"
	"os"

	mmap "github.com/edsrzf/mmap-go"
	"golang.org/x/sys/unix"
)

// headerSize is the byte size of the on-wire DiffHeader (spec.md §6.3):
// version u32 | page_size u32 | flags u32 | chunk_count u32 | target_length u64.
const headerSize = 24

// chunkRecordSize is the byte size of one on-wire chunk record:
// page_index u64 | length u64 | data_offset u64.
const chunkRecordSize = 24

// Marshal encodes a DiffResult into the on-wire format of spec.md §6.3: a
// 24-byte little-endian header, followed by one 24-byte record per chunk,
// followed by the payload.
func Marshal(diff *DiffResult) ([]byte, error) {
	if diff == nil {
		return nil, newError("marshal", CodeInvalidArgument, "nil diff")
	}

	total := headerSize + len(diff.Chunks)*chunkRecordSize + len(diff.Payload)
	buf := make([]byte, total)

	binary.LittleEndian.PutUint32(buf[0:4], diff.Header.Version)
	binary.LittleEndian.PutUint32(buf[4:8], diff.Header.PageSize)
	binary.LittleEndian.PutUint32(buf[8:12], diff.Header.Flags)
	binary.LittleEndian.PutUint32(buf[12:16], diff.Header.ChunkCount)
	binary.LittleEndian.PutUint64(buf[16:24], diff.Header.TargetLength)

	off := headerSize
	for _, c := range diff.Chunks {
		binary.LittleEndian.PutUint64(buf[off:off+8], c.PageIndex)
		binary.LittleEndian.PutUint64(buf[off+8:off+16], c.Length)
		binary.LittleEndian.PutUint64(buf[off+16:off+24], c.DataOffset)
		off += chunkRecordSize
	}

	copy(buf[off:], diff.Payload)
	return buf, nil
}

// Unmarshal decodes the on-wire format Marshal produces. It performs the
// same structural validation Patch does before trusting the result, since a
// wire blob is untrusted input from another process.
func Unmarshal(buf []byte) (*DiffResult, error) {
	if len(buf) < headerSize {
		return nil, newError("unmarshal", CodeInvalidArgument, "buffer shorter than header")
	}

	h := DiffHeader{
		Version:      binary.LittleEndian.Uint32(buf[0:4]),
		PageSize:     binary.LittleEndian.Uint32(buf[4:8]),
		Flags:        binary.LittleEndian.Uint32(buf[8:12]),
		ChunkCount:   binary.LittleEndian.Uint32(buf[12:16]),
		TargetLength: binary.LittleEndian.Uint64(buf[16:24]),
	}

	need := headerSize + int(h.ChunkCount)*chunkRecordSize
	if need < 0 || len(buf) < need {
		return nil, newError("unmarshal", CodeInvalidArgument, "buffer shorter than declared chunk table")
	}

	chunks := make([]Chunk, h.ChunkCount)
	off := headerSize
	for i := range chunks {
		chunks[i] = Chunk{
			PageIndex:  binary.LittleEndian.Uint64(buf[off : off+8]),
			Length:     binary.LittleEndian.Uint64(buf[off+8 : off+16]),
			DataOffset: binary.LittleEndian.Uint64(buf[off+16 : off+24]),
		}
		off += chunkRecordSize
	}

	payload := make([]byte, len(buf)-off)
	copy(payload, buf[off:])

	result := &DiffResult{Header: h, Chunks: chunks, Payload: payload}
	if err := validateDiff(result); err != nil {
		return nil, err
	}
	return result, nil
}

// SaveDiffFile writes diff to path in the on-wire format.
func SaveDiffFile(path string, diff *DiffResult) error {
	buf, err := Marshal(diff)
	if err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0o644)
}

// LoadDiffFile memory-maps path read-only and decodes the on-wire format
// from the mapping (spec.md §6.3's "cross-process exchange" use case).
// Unmarshal copies the chunk table and payload onto the heap, so the result
// stays valid after the mapping is released. The host page size from
// unix.Getpagesize is written to the debug log only; it is not compared
// with the diff's page size.
func LoadDiffFile(path string) (*DiffResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, newError("load_diff_file", CodeInvalidArgument, err.Error())
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, newError("load_diff_file", CodeInvalidArgument, err.Error())
	}
	if info.Size() == 0 {
		return nil, newError("load_diff_file", CodeInvalidArgument, "empty diff file")
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, newError("load_diff_file", CodeOutOfMemory, err.Error())
	}
	defer m.Unmap()

	logger.Printf("mapped %s: %d bytes, host page size %d", path, len(m), unix.Getpagesize())

	return Unmarshal([]byte(m))
}

// diffWireFormatVersion returns a short description of the supported wire
// format, useful for diagnostics in cmd/gdsl.
func diffWireFormatVersion() string {
	return fmt.Sprintf("gdsl-diff-wire/v%d", DiffVersion)
}
