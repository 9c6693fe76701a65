package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/skaldra/toon/internal/analyzer"
	"github.com/skaldra/toon/internal/config"
	"github.com/skaldra/toon/internal/converter"
	"github.com/skaldra/toon/internal/errors"
	"github.com/skaldra/toon/internal/formatter"
	"github.com/skaldra/toon/internal/generator"
)

// Version information
const Version = "0.1.0"

// CLI defines the command-line interface
var CLI struct {
	Config string `help:"Path to config file. Defaults to .toon.yaml if present." short:"c" type:"path"`
	Debug  bool   `help:"Enable debug logging." short:"d"`

	Encode  EncodeCmd  `cmd:"" help:"Encode JSON to TOON."`
	Decode  DecodeCmd  `cmd:"" help:"Decode TOON back to pretty-printed JSON."`
	Dict    DictCmd    `cmd:"" help:"Show or export the token dictionary for the given JSON input."`
	Check   CheckCmd   `cmd:"" help:"Decode TOON and report unknown tokens and structure statistics."`
	Version VersionCmd `cmd:"" help:"Show version information."`
}

// Context holds the runtime context passed to every command
type Context struct {
	Config *config.Config
	Logger *slog.Logger
}

func main() {
	kongCtx := kong.Parse(&CLI,
		kong.Name("toon"),
		kong.Description("A bidirectional codec between JSON and TOON (Token Object Notation)."),
		kong.UsageOnError(),
	)

	logLevel := slog.LevelInfo
	if CLI.Debug {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		os.Exit(1)
	}

	if err := kongCtx.Run(&Context{Config: cfg, Logger: logger}); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		fmt.Fprintf(os.Stderr, "\nFor help, run: toon --help\n")
		os.Exit(1)
	}
}

// EncodeCmd encodes a JSON document as TOON text.
type EncodeCmd struct {
	Input    string `help:"Path to input JSON file. If not specified, reads from stdin." short:"i" type:"path"`
	Output   string `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
	ShowDict bool   `help:"Print the key/token dictionary to stderr after encoding."`
}

func (c *EncodeCmd) Run(ctx *Context) error {
	conv, err := converter.New(ctx.Config, ctx.Logger)
	if err != nil {
		return err
	}

	input, err := readInput(c.Input)
	if err != nil {
		return err
	}

	out, err := conv.EncodeJSON(input)
	if err != nil {
		return err
	}

	if err := writeOutput(c.Output, out); err != nil {
		return err
	}

	if c.ShowDict {
		printSnapshot(os.Stderr, conv)
	}
	return nil
}

// DecodeCmd decodes TOON text back into pretty-printed JSON.
type DecodeCmd struct {
	Input  string `help:"Path to input TOON file. If not specified, reads from stdin." short:"i" type:"path"`
	Output string `help:"Path to output JSON file. If not specified, writes to stdout." short:"o" type:"path"`
	Strict bool   `help:"Reject ambiguous input instead of decoding best-effort." short:"s"`
}

func (c *DecodeCmd) Run(ctx *Context) error {
	cfg := *ctx.Config
	if c.Strict {
		cfg.Strict = true
	}
	conv, err := converter.New(&cfg, ctx.Logger)
	if err != nil {
		return err
	}

	input, err := readInput(c.Input)
	if err != nil {
		return err
	}

	out, err := conv.DecodeToJSON(input)
	if err != nil {
		return err
	}
	return writeOutput(c.Output, out)
}

// DictCmd encodes the input to populate the dictionary, then shows the
// resulting snapshot, either as a table or as generated Go source.
type DictCmd struct {
	Input   string `help:"Path to input JSON file. If not specified, reads from stdin." short:"i" type:"path"`
	Output  string `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
	Go      bool   `help:"Export the dictionary as Go source instead of a table." short:"g"`
	Package string `help:"Package name for the generated Go source." short:"p"`
}

func (c *DictCmd) Run(ctx *Context) error {
	cfg := *ctx.Config
	if c.Package != "" {
		cfg.Export.Package = c.Package
	}
	conv, err := converter.New(&cfg, ctx.Logger)
	if err != nil {
		return err
	}

	input, err := readInput(c.Input)
	if err != nil {
		return err
	}
	if _, err := conv.EncodeJSON(input); err != nil {
		return err
	}

	if !c.Go {
		if c.Output != "" {
			file, err := os.Create(c.Output)
			if err != nil {
				return errors.NewOutputError(fmt.Sprintf("failed to create file '%s'", c.Output), err)
			}
			defer file.Close()
			printSnapshot(file, conv)
			return nil
		}
		printSnapshot(os.Stdout, conv)
		return nil
	}

	code, err := generator.NewGenerator().GenerateTokenTable(conv.Snapshot(), &cfg)
	if err != nil {
		return err
	}
	code, err = formatter.NewFormatter().Format(code)
	if err != nil {
		return errors.NewFormatError("failed to format generated token table", err)
	}
	return writeOutput(c.Output, code)
}

// CheckCmd decodes TOON input and reports how healthy the result is.
type CheckCmd struct {
	Input string `help:"Path to input TOON file. If not specified, reads from stdin." short:"i" type:"path"`
}

func (c *CheckCmd) Run(ctx *Context) error {
	conv, err := converter.New(ctx.Config, ctx.Logger)
	if err != nil {
		return err
	}

	input, err := readInput(c.Input)
	if err != nil {
		return err
	}

	value, err := conv.Decode(input)
	if err != nil {
		return err
	}

	report := analyzer.NewAnalyzer().Analyze(value)
	fmt.Println(report.Summary())
	for _, unknown := range report.UnknownKeys {
		fmt.Printf("  unknown token %s at %s\n", unknown.Token, unknown.Path)
	}
	if !report.Clean() {
		return errors.NewDecodeError(
			fmt.Sprintf("%d tokens could not be resolved", len(report.UnknownKeys)),
			nil,
		)
	}
	return nil
}

// VersionCmd prints the version.
type VersionCmd struct{}

func (c *VersionCmd) Run(ctx *Context) error {
	fmt.Printf("toon version %s\n", Version)
	return nil
}

// readInput reads the whole input from a file or stdin.
func readInput(path string) (string, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return "", errors.NewInputError(
					fmt.Sprintf("file '%s' not found", path),
					errors.ErrFileNotFound,
				)
			}
			return "", errors.NewInputError(fmt.Sprintf("failed to read file '%s'", path), err)
		}
		if len(data) == 0 {
			return "", errors.NewInputError(
				fmt.Sprintf("input file '%s' is empty", path),
				errors.ErrFileEmpty,
			)
		}
		return string(data), nil
	}

	stdinInfo, err := os.Stdin.Stat()
	if err != nil {
		return "", errors.NewInputError("failed to access stdin", err)
	}
	if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
		// Terminal is interactive, nothing was piped in.
		return "", errors.NewInputError("no input provided", errors.ErrNoInput)
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", errors.NewInputError("failed to read from stdin", err)
	}
	if len(data) == 0 {
		return "", errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}
	return string(data), nil
}

// writeOutput writes content to a file or stdout.
func writeOutput(path, content string) error {
	if path != "" {
		if err := os.WriteFile(path, []byte(content+"\n"), 0o644); err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", path), err)
		}
		fmt.Fprintf(os.Stderr, "Output written to %s\n", path)
		return nil
	}
	_, err := fmt.Println(strings.TrimRight(content, "\n"))
	if err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// printSnapshot renders the dictionary as an aligned token/key table.
func printSnapshot(w io.Writer, conv *converter.Converter) {
	snap := conv.Snapshot()
	fmt.Fprintf(w, "session: %s\n", snap.SessionID)
	maxTokenWidth := 0
	for _, entry := range snap.Entries {
		if len(entry.Token) > maxTokenWidth {
			maxTokenWidth = len(entry.Token)
		}
	}
	for _, entry := range snap.Entries {
		fmt.Fprintf(w, "%-*s  %s\n", maxTokenWidth, entry.Token, entry.Key)
	}
}
