// Command srcpatch-reconcile recovers text edits from a DOM-exported copy of a
// page and applies them to the page's original source, leaving every other
// byte untouched.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dannyswat/srcpatch"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("srcpatch-reconcile", flag.ContinueOnError)
	fs.SetOutput(stderr)
	originalPath := fs.String("original", "", "Original HTML file (required)")
	editedPath := fs.String("edited", "", "DOM-exported HTML file with edits (required)")
	outputPath := fs.String("output", "", "Where to write the patched original (required)")
	align := fs.String("align", "", "Token pairing: positional or lcs (default from config)")
	configPath := fs.String("config", "", "Optional TOML config file")
	verbose := fs.Bool("v", false, "Debug logging on stderr")
	fs.Usage = func() {
		fmt.Fprintf(stderr, `Usage: srcpatch-reconcile -original <file> -edited <file> -output <file> [options]

Maps text changes found in a DOM-exported page back onto the original source.

Exit codes:
  0  every detected edit applied (or none were detected)
  1  missing or invalid arguments; nothing written
  2  one or more edits could not be mapped; output written, review it
  3  the files have different token counts; output written, review it

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return srcpatch.ExitOK
		}
		return srcpatch.ExitUsage
	}
	if *originalPath == "" || *editedPath == "" || *outputPath == "" {
		fmt.Fprintln(stderr, "error: -original, -edited and -output are required")
		fs.Usage()
		return srcpatch.ExitUsage
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	cfg := srcpatch.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = srcpatch.LoadConfig(*configPath); err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return srcpatch.ExitUsage
		}
	}
	if *align != "" {
		cfg.Align = *align
	}
	cfg.Logger = log
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return srcpatch.ExitUsage
	}

	original, err := os.ReadFile(*originalPath)
	if err != nil {
		fmt.Fprintf(stderr, "error: reading original: %v\n", err)
		return srcpatch.ExitUsage
	}
	edited, err := os.ReadFile(*editedPath)
	if err != nil {
		fmt.Fprintf(stderr, "error: reading edited: %v\n", err)
		return srcpatch.ExitUsage
	}

	report := srcpatch.Reconcile(string(original), string(edited), cfg)
	for _, c := range report.Conflicts {
		log.Warn("ambiguous edit", "type", c.Type, "description", c.Description)
	}

	if err := os.WriteFile(*outputPath, []byte(report.Result.HTML), 0o644); err != nil {
		fmt.Fprintf(stderr, "error: writing output: %v\n", err)
		return srcpatch.ExitUsage
	}

	fmt.Fprintf(stdout, "original tokens: %d\n", report.OriginalTokens)
	fmt.Fprintf(stdout, "edited tokens:   %d\n", report.EditedTokens)
	fmt.Fprintf(stdout, "edits detected:  %d\n", len(report.Edits))
	fmt.Fprintf(stdout, "edits applied:   %d\n", report.Result.Applied)
	fmt.Fprintf(stdout, "base sha256:     %s\n", report.Result.BaseHash)
	fmt.Fprintf(stdout, "wrote %s\n", *outputPath)

	code := report.ExitCode()
	switch code {
	case srcpatch.ExitUnmatched:
		log.Warn("some edits could not be mapped, review the output",
			"unmatched", len(report.Edits)-report.Result.Applied)
	case srcpatch.ExitDrift:
		log.Warn("token counts differ, review the output")
	}
	return code
}
