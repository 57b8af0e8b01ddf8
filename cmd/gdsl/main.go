// Command gdsl is a thin demonstration front-end over package delta and
// package verify, in the style of the teacher's cmd/wasm-dump and
// cmd/wasm-run: it feeds byte buffers into the two engines and prints their
// structured results. It is a collaborator, not engineering content —
// spec.md treats any CLI wrapper as out of scope for the core kernels.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/kestrelgfx/gdsl/config"
	"github.com/kestrelgfx/gdsl/delta"
	"github.com/kestrelgfx/gdsl/verify"
)

func main() {
	log.SetPrefix("gdsl: ")
	log.SetFlags(0)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "diff":
		runDiff(args)
	case "patch":
		runPatch(args)
	case "verify":
		runVerify(args)
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: gdsl <command> [options]

Commands:
  diff   [-base FILE] -target FILE -out FILE   compute a page diff
  patch  [-base FILE] -diff FILE -out FILE     apply a diff to a base
  verify -stream FILE [-level N]             verify a command stream

options:
`)
}

func runDiff(args []string) {
	fs := flag.NewFlagSet("diff", flag.ExitOnError)
	basePath := fs.String("base", "", "base file (omit for empty base)")
	targetPath := fs.String("target", "", "target file (required)")
	outPath := fs.String("out", "", "output diff file (required)")
	configPath := fs.String("config", "", "optional YAML config file")
	fs.Parse(args)

	if *targetPath == "" || *outPath == "" {
		log.Fatal("diff requires -target and -out")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	var base []byte
	if *basePath != "" {
		base, err = os.ReadFile(*basePath)
		if err != nil {
			log.Fatalf("read base: %v", err)
		}
	}
	target, err := os.ReadFile(*targetPath)
	if err != nil {
		log.Fatalf("read target: %v", err)
	}

	d, err := delta.DiffPageSize(base, target, uint32(cfg.Diff.PageSize))
	if err != nil {
		log.Fatalf("diff: %v", err)
	}

	if err := delta.SaveDiffFile(*outPath, d); err != nil {
		log.Fatalf("save diff: %v", err)
	}

	fmt.Printf("chunks=%d payload=%d target_length=%d\n", len(d.Chunks), len(d.Payload), d.Header.TargetLength)
}

func runPatch(args []string) {
	fs := flag.NewFlagSet("patch", flag.ExitOnError)
	basePath := fs.String("base", "", "base file (omit for empty base)")
	diffPath := fs.String("diff", "", "diff file (required)")
	outPath := fs.String("out", "", "output file (required)")
	fs.Parse(args)

	if *diffPath == "" || *outPath == "" {
		log.Fatal("patch requires -diff and -out")
	}

	d, err := delta.LoadDiffFile(*diffPath)
	if err != nil {
		log.Fatalf("load diff: %v", err)
	}

	var base []byte
	if *basePath != "" {
		base, err = os.ReadFile(*basePath)
		if err != nil {
			log.Fatalf("read base: %v", err)
		}
	}

	out, err := delta.Patch(base, d)
	if err != nil {
		log.Fatalf("patch: %v", err)
	}

	if err := os.WriteFile(*outPath, out, 0o644); err != nil {
		log.Fatalf("write output: %v", err)
	}

	fmt.Printf("wrote %d bytes to %s\n", len(out), *outPath)
}

func runVerify(args []string) {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	streamPath := fs.String("stream", "", "command stream file (required)")
	level := fs.Int("level", -1, "verification level: 0=Syntax 1=Phase 2=Domain (default from config)")
	configPath := fs.String("config", "", "optional YAML config file")
	asJSON := fs.Bool("json", false, "emit the report as JSON")
	fs.Parse(args)

	if *streamPath == "" {
		log.Fatal("verify requires -stream")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	lvl := verify.Level(cfg.Verify.Level)
	if *level >= 0 {
		lvl = verify.Level(*level)
	}

	stream, err := os.ReadFile(*streamPath)
	if err != nil {
		log.Fatalf("read stream: %v", err)
	}

	report := verify.Verify(stream, lvl)

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			log.Fatalf("encode report: %v", err)
		}
		return
	}

	printReport(os.Stdout, report)
	if !report.Success {
		os.Exit(1)
	}
}

func printReport(w io.Writer, r *verify.VerifyReport) {
	fmt.Fprintf(w, "success=%v instructions=%d errors=%d warnings=%d infos=%d\n",
		r.Success, r.InstructionCount, r.ErrorCount, r.WarningCount, r.InfoCount)
	for _, d := range r.Diagnostics {
		fmt.Fprintf(w, "  [%d] %-7s %s\n", d.InstructionIndex, d.Severity, d.Message)
	}
}
