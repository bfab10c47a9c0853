// Command vhdlfmt is the CLI entry point: read one or more VHDL source
// files, print them in canonical layout, optionally rewriting the file in
// place or showing a colorized diff. Its flag and subcommand shape is
// grounded on MacroPower-x's cmd/magicschema (a cobra.Command with
// SilenceErrors/SilenceUsage set and a cfg.RegisterFlags(rootCmd.Flags())
// call) and on its log.Config for the --log-level/--log-format flags.
package main

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/niekdomi/vhdl-fmt-sub000/internal/config"
	"github.com/niekdomi/vhdl-fmt-sub000/internal/diag"
	"github.com/niekdomi/vhdl-fmt-sub000/internal/lexvhdl"
	"github.com/niekdomi/vhdl-fmt-sub000/internal/logging"
	"github.com/niekdomi/vhdl-fmt-sub000/internal/parsevhdl"
	"github.com/niekdomi/vhdl-fmt-sub000/internal/printer"
	"github.com/niekdomi/vhdl-fmt-sub000/internal/trivia"
)

type options struct {
	write        bool
	diff         bool
	configPath   string
	strictTrivia bool
	log          *logging.Config
}

func main() {
	opts := &options{log: logging.NewConfig()}

	rootCmd := &cobra.Command{
		Use:           "vhdlfmt [flags] <file.vhd...>",
		Short:         "Format VHDL source files",
		Long:          `vhdlfmt rewrites VHDL source into a canonical layout while preserving every comment and blank-line break the original carried.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(_ *cobra.Command, args []string) error {
			return run(opts, args)
		},
	}

	flags := rootCmd.Flags()
	flags.BoolVar(&opts.write, "write", false, "write result to the source file instead of stdout")
	flags.BoolVar(&opts.diff, "diff", false, "print a colorized diff instead of the formatted output")
	flags.StringVar(&opts.configPath, "config", ".vhdlfmt.yaml", "path to a configuration file")
	flags.BoolVar(&opts.strictTrivia, "strict-trivia", false, "panic instead of healing an unclaimed comment")
	opts.log.RegisterFlags(flags)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("vhdlfmt:"), err)
		os.Exit(1)
	}
}

func run(opts *options, paths []string) error {
	diag.Strict = opts.strictTrivia

	handler, err := opts.log.NewHandler(os.Stderr)
	if err != nil {
		return errors.Wrap(err, "configuring logger")
	}
	logger := slog.New(handler)

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return errors.Wrap(err, "loading configuration")
	}

	var failed bool
	for _, path := range paths {
		if err := formatOne(opts, cfg, logger, path); err != nil {
			logger.Error("formatting failed", "file", path, "err", err)
			failed = true
		}
	}
	if failed {
		return errors.New("one or more files failed to format")
	}
	return nil
}

func formatOne(opts *options, cfg config.Config, logger *slog.Logger, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "reading %s", path)
	}

	out, err := format(string(src), cfg, logger)
	if err != nil {
		return err
	}

	switch {
	case opts.diff:
		printDiff(path, string(src), out)
	case opts.write:
		if out == string(src) {
			return nil
		}
		if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
			return errors.Wrapf(err, "writing %s", path)
		}
	default:
		fmt.Print(out)
	}
	return nil
}

// format tokenizes, parses, binds trivia, and prints src, surfacing any
// parse errors while still returning the best-effort formatted output
// (spec.md §7: a malformed input degrades gracefully rather than aborting
// the whole run).
func format(src string, cfg config.Config, logger *slog.Logger) (string, error) {
	stream := lexvhdl.Lex(src)
	file, parseErrs := parsevhdl.Parse(stream)
	for _, e := range parseErrs {
		logger.Warn("parse error", "err", e)
	}

	triviaErrs := trivia.Bind(stream, file)
	for _, e := range triviaErrs {
		logger.Warn("trivia", "err", e)
	}

	return printer.Print(file, cfg), nil
}

// printDiff prints a minimal line-oriented diff colored the way a
// terminal-aware CLI (e.g. go-colorable-backed tools in the corpus)
// conventionally does: removed lines in red, added lines in green.
func printDiff(path, before, after string) {
	if before == after {
		return
	}
	fmt.Printf("--- %s\n+++ %s (formatted)\n", path, path)

	beforeLines := bytes.Split([]byte(before), []byte("\n"))
	afterLines := bytes.Split([]byte(after), []byte("\n"))

	max := len(beforeLines)
	if len(afterLines) > max {
		max = len(afterLines)
	}
	for i := 0; i < max; i++ {
		var b, a []byte
		if i < len(beforeLines) {
			b = beforeLines[i]
		}
		if i < len(afterLines) {
			a = afterLines[i]
		}
		if bytes.Equal(b, a) {
			continue
		}
		if i < len(beforeLines) {
			fmt.Println(color.RedString("-%s", b))
		}
		if i < len(afterLines) {
			fmt.Println(color.GreenString("+%s", a))
		}
	}
}
