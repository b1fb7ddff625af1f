// Command bootc-status validates a saved `bootc status` document against
// the host schema and writes it back out in canonical form.
package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	bootc "github.com/Venefilyn/cockpit-bootc"
	"github.com/Venefilyn/cockpit-bootc/bootcapi"
	"github.com/Venefilyn/cockpit-bootc/jsonschema"
)

const (
	exitOK      = 0
	exitInvalid = 1
	exitUsage   = 2
	programName = "bootc-status"
	stdinPath   = "-"
	formatAuto  = "auto"
	formatJSON  = "json"
	formatJSONC = "jsonc"
	formatYAML  = "yaml"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type options struct {
	input       string
	inputFormat string
	output      string
	schema      bool
	maxBytes    int64
	maxDepth    int
	strict      bool
	verbose     bool
}

// usageError marks failures caused by the command line itself.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usagef(format string, args ...any) error {
	return usageError{fmt.Errorf(format, args...)}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var opts options
	flagSet := pflag.NewFlagSet(programName, pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVarP(&opts.input, "input", "i", stdinPath, "status document to read (- for stdin)")
	flagSet.StringVar(&opts.inputFormat, "input-format", formatAuto, "input format: auto, json, jsonc or yaml")
	flagSet.StringVarP(&opts.output, "output", "o", formatJSON, "output format: json or yaml")
	flagSet.BoolVar(&opts.schema, "schema", false, "print the JSON Schema of the host document and exit")
	flagSet.Int64Var(&opts.maxBytes, "max-bytes", 0, "reject documents larger than this many bytes (0 = unlimited)")
	flagSet.IntVar(&opts.maxDepth, "max-depth", 0, "reject documents nested deeper than this (0 = unlimited)")
	flagSet.BoolVar(&opts.strict, "strict", false, "treat duplicate keys as errors instead of warnings")
	flagSet.BoolVarP(&opts.verbose, "verbose", "v", false, "log debug messages")
	flagSet.BoolP("help", "h", false, "show help")
	flagSet.Usage = func() { printHelp(flagSet, stderr) }

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitUsage
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet, stderr)
		return exitOK
	}

	logger := newLogger(stderr, opts.verbose)
	if err := execute(opts, flagSet.Args(), stdin, stdout, logger); err != nil {
		var ue usageError
		if errors.As(err, &ue) {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return exitUsage
		}
		logFailure(logger, err)
		return exitInvalid
	}
	return exitOK
}

// newLogger writes text records to a terminal and JSON records
// everywhere else.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	options := &slog.HandlerOptions{Level: slog.LevelInfo}
	if verbose {
		options.Level = slog.LevelDebug
	}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return slog.New(slog.NewTextHandler(w, options))
	}
	return slog.New(slog.NewJSONHandler(w, options))
}

func execute(opts options, rest []string, stdin io.Reader, stdout io.Writer, logger *slog.Logger) error {
	if len(rest) > 0 {
		return usagef("unexpected argument: %s", rest[0])
	}
	if opts.output != formatJSON && opts.output != formatYAML {
		return usagef("unknown output format %q", opts.output)
	}
	switch opts.inputFormat {
	case formatAuto, formatJSON, formatJSONC, formatYAML:
	default:
		return usagef("unknown input format %q", opts.inputFormat)
	}
	if opts.maxBytes < 0 || opts.maxDepth < 0 {
		return usagef("--max-bytes and --max-depth must not be negative")
	}

	if opts.schema {
		return writeSchema(stdout)
	}

	data, err := readInput(opts.input, stdin)
	if err != nil {
		return err
	}
	format := detectFormat(opts.inputFormat, opts.input, data)
	logger.Debug("read status document", "input", opts.input, "bytes", len(data), "format", format)

	parseOpt := bootc.ParseOpt{
		OnDuplicateKey: bootc.Warn,
		MaxDepth:       opts.maxDepth,
		MaxBytes:       opts.maxBytes,
		Warnings: func(pe *bootc.ParseError) {
			logger.Warn("duplicate key", "path", pe.Path, "offset", pe.Offset)
		},
	}
	if opts.strict {
		parseOpt.OnDuplicateKey = bootc.Error
	}

	var src bootc.Source
	switch format {
	case formatYAML:
		src = bootc.YAMLBytes(data)
	case formatJSONC:
		src = bootc.JSONCBytes(data)
	default:
		src = bootc.JSONBytes(data)
	}
	v, err := bootcapi.Converter().Cast(src, bootcapi.RootType, parseOpt)
	if err != nil {
		return err
	}
	host, ok := v.(*bootc.Object)
	if !ok {
		return fmt.Errorf("unexpected document root %T", v)
	}

	if opts.verbose {
		typed, err := bootcapi.ToHost(host)
		if err != nil {
			return err
		}
		logger.Debug("validated host",
			"booted", typed.BootedImage(),
			"deployments", len(typed.Status.Deployments()))
	}

	var out []byte
	if opts.output == formatYAML {
		out, err = bootcapi.MarshalYAML(host)
	} else {
		out, err = bootcapi.Marshal(host)
	}
	if err != nil {
		return err
	}
	_, err = stdout.Write(out)
	return err
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == stdinPath {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, usageError{err}
	}
	return data, nil
}

// detectFormat resolves "auto" from the file extension, then from the
// first significant byte.
func detectFormat(requested, path string, data []byte) string {
	if requested != formatAuto {
		return requested
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return formatYAML
	case ".jsonc":
		return formatJSONC
	case ".json":
		return formatJSON
	}
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return formatJSON
	}
	return formatYAML
}

func writeSchema(w io.Writer) error {
	sc, err := jsonschema.FromRegistry(bootcapi.Registry, bootcapi.RootType)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(sc, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

func logFailure(logger *slog.Logger, err error) {
	if m, ok := bootc.AsMismatch(err); ok {
		inner := m.Innermost()
		logger.Error("status document does not match the host schema",
			"code", inner.Code,
			"path", inner.Pointer(),
			"type", inner.Type,
			"expected", inner.Expected,
			"got", inner.RenderValue(),
			"error", m.Error())
		return
	}
	if pe, ok := bootc.AsParseError(err); ok {
		logger.Error("cannot parse status document",
			"code", pe.Code,
			"path", pe.Path,
			"offset", pe.Offset,
			"error", pe.Error())
		return
	}
	logger.Error("status document rejected", "error", err.Error())
}

func printHelp(flagSet *pflag.FlagSet, w io.Writer) {
	fmt.Fprintf(w, `%s validates a bootc host status document.

The document is read from --input (stdin by default), checked against the
host schema and written to stdout with keys in schema order. Nothing is
written when the document is rejected.

Usage:
  %s [flags]

Examples:
  # Validate the live status of this host
  bootc status --json --format-version=1 | %s

  # Convert a saved YAML status to JSON
  %s --input status.yaml --output json

Exit status is 0 when the document is valid, 1 when it is rejected and 2
on usage errors.

Flags:
`, programName, programName, programName, programName)
	flagSet.SetOutput(w)
	flagSet.PrintDefaults()
}
