package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kestrelgfx/gdsl/delta"
	"github.com/kestrelgfx/gdsl/verify"
)

func TestRunDiffAndPatchRoundTrip(t *testing.T) {
	dir := t.TempDir()

	base := make([]byte, 8192)
	for i := range base {
		base[i] = byte(i)
	}
	target := make([]byte, 8192)
	copy(target, base)
	for i := 4096; i < 4200; i++ {
		target[i] ^= 0xFF
	}

	basePath := filepath.Join(dir, "base.bin")
	targetPath := filepath.Join(dir, "target.bin")
	diffPath := filepath.Join(dir, "out.gdsldiff")
	patchedPath := filepath.Join(dir, "patched.bin")

	require.NoError(t, os.WriteFile(basePath, base, 0o644))
	require.NoError(t, os.WriteFile(targetPath, target, 0o644))

	runDiff([]string{"-base", basePath, "-target", targetPath, "-out", diffPath})
	runPatch([]string{"-base", basePath, "-diff", diffPath, "-out", patchedPath})

	got, err := os.ReadFile(patchedPath)
	require.NoError(t, err)
	require.Equal(t, target, got)
}

func TestPrintReportFormatsDiagnostics(t *testing.T) {
	report := &verify.VerifyReport{
		Success:          false,
		InstructionCount: 2,
		ErrorCount:       1,
		Diagnostics: []verify.Diagnostic{
			{InstructionIndex: 1, Severity: verify.Error, Message: "unknown opcode 0xff"},
		},
	}
	var buf bytes.Buffer
	printReport(&buf, report)

	out := buf.String()
	require.Contains(t, out, "success=false")
	require.Contains(t, out, "unknown opcode 0xff")
}

// runDiff/runPatch call log.Fatal on bad input, which exits the test binary;
// exercising their failure paths would require a subprocess harness. This
// instead sanity-checks the delta call they wrap with a minimal buffer pair.
func TestDiffPageSizeWithTinyBuffers(t *testing.T) {
	d, err := delta.DiffPageSize(nil, []byte("x"), 4096)
	require.NoError(t, err)
	require.Len(t, d.Chunks, 1)
}
