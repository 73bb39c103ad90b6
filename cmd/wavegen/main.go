package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"wavegen/internal/form"
	"wavegen/internal/inputfile"
	"wavegen/internal/logging"
	"wavegen/internal/preset"
	"wavegen/internal/prompt"
	"wavegen/internal/tui"
	"wavegen/internal/validate"
)

// command describes a CLI subcommand.
type command struct {
	name  string
	short string
	usage string
	long  string
	run   func(args []string) error
}

// commands is assigned in init because runDefaults reaches back into it
// through parseFlags, which would otherwise be an initialization cycle.
var commands []command

func init() {
	commands = []command{
		{
			name:  "edit",
			short: "Fill in the form interactively",
			usage: "wavegen edit [-o dir] [-preset file] [-log file]",
			long: `Open the interactive form. Fields appear and disappear as depth type,
wave maker and the other switches change.

Keys: up/down or k/j move, enter edits or toggles, space toggles,
left/right cycles choices, v validates, g writes input.txt, q quits.

Flags:
  -o dir        directory input.txt is written to (default ".")
  -preset file  start from a YAML or TOML preset instead of the defaults
  -log file     append a JSON log to file
`,
			run: runEdit,
		},
		{
			name:  "prompt",
			short: "Answer one question per field, then write input.txt",
			usage: "wavegen prompt [-o dir] [-preset file] [-log file]",
			long: `Walk the form as a sequence of questions. Only questions for fields
that are shown at that point are asked. After the last answer the
validation report is printed and input.txt is written.

Flags:
  -o dir        directory input.txt is written to (default ".")
  -preset file  take default answers from a YAML or TOML preset
  -log file     append a JSON log to file
`,
			run: runPrompt,
		},
		{
			name:  "generate",
			short: "Write input.txt from a preset",
			usage: "wavegen generate [-o dir] [-log file] [-v] <preset>",
			long: `Apply a YAML or TOML preset to the defaults, print the validation
report to stderr and write input.txt. Warnings never stop generation.
When the preset sets OVERWRITE to false an existing input.txt is kept
and the file is written as input(1).txt, input(2).txt, ...

Flags:
  -o dir     directory input.txt is written to (default ".")
  -log file  append a JSON log to file
  -v         log to stderr at debug level
`,
			run: runGenerate,
		},
		{
			name:  "validate",
			short: "Print the validation report for a preset",
			usage: "wavegen validate <preset>",
			long: `Apply a preset to the defaults and print the warnings the validator
finds. Exits 0 whether or not there are warnings.
`,
			run: runValidate,
		},
		{
			name:  "defaults",
			short: "Print a preset holding every default value",
			usage: "wavegen defaults [-format yaml|toml]",
			long: `Print every field at its default value as a preset. Redirect the
output to a file, edit it, and pass it to generate.
`,
			run: runDefaults,
		},
	}
}

// stdout and stderr are swapped out by tests.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

func printUsage(w io.Writer) {
	fmt.Fprintf(w, "wavegen: FUNWAVE-TVD input file generator\n\n")
	fmt.Fprintf(w, "Usage:\n  wavegen <command> [arguments]\n\n")
	fmt.Fprintf(w, "Commands:\n")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-10s %s\n", cmd.name, cmd.short)
	}
	fmt.Fprintf(w, "\nRun 'wavegen help <command>' for details on a specific command.\n")
}

func printCommandHelp(w io.Writer, name string) {
	for _, cmd := range commands {
		if cmd.name == name {
			fmt.Fprintf(w, "Usage: %s\n\n%s", cmd.usage, cmd.long)
			return
		}
	}
	fmt.Fprintf(w, "wavegen: unknown command %q\n\nRun 'wavegen help' for usage.\n", name)
}

func dispatch(args []string) error {
	if len(args) == 0 || args[0] == "--help" || args[0] == "-h" {
		printUsage(stdout)
		return nil
	}
	if args[0] == "help" {
		if len(args) >= 2 {
			printCommandHelp(stdout, args[1])
		} else {
			printUsage(stdout)
		}
		return nil
	}
	for _, cmd := range commands {
		if cmd.name == args[0] {
			return cmd.run(args[1:])
		}
	}
	return fmt.Errorf("unknown command %q\n\nRun 'wavegen help' for usage.", args[0])
}

// newFlagSet returns a flag set that reports errors instead of exiting.
func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		for _, cmd := range commands {
			if cmd.name == fs.Name() {
				return fmt.Errorf("%w\nusage: %s", err, cmd.usage)
			}
		}
		return err
	}
	return nil
}

// setupLogging installs a logger when the user asked for one. Without -log
// or -v nothing is logged.
func setupLogging(path string, verbose bool) error {
	if path == "" && !verbose {
		return nil
	}
	return logging.Init(path, verbose)
}

// loadForm returns a default form with the preset at path applied, if any.
func loadForm(path string) (*form.Form, error) {
	f := form.New()
	if path == "" {
		return f, nil
	}
	p, err := preset.Load(path)
	if err != nil {
		return nil, err
	}
	if err := p.Apply(f); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logging.Debug("preset applied", zap.String("path", path))
	return f, nil
}

// write builds and writes the input file for f and reports the path.
func write(f *form.Form, dir string) error {
	s := f.State()
	path, err := inputfile.Write(inputfile.Build(s), dir, s.Overwrite.Get())
	if err != nil {
		logging.Error("generate failed", zap.Error(err))
		return fmt.Errorf("generate: %w", err)
	}
	logging.Info("generated input file", zap.String("path", path))
	fmt.Fprintf(stdout, "wrote %s\n", path)
	return nil
}

// report prints the validation report to w when there is anything in it.
func report(w io.Writer, s *form.State) {
	r := validate.Run(s)
	logging.Debug("validated", zap.Int("warnings", r.Count()))
	if r.Count() > 0 {
		fmt.Fprint(w, r.String())
	}
}

// ---------------------------------------------------------------------------
// edit
// ---------------------------------------------------------------------------

func runEdit(args []string) error {
	fs := newFlagSet("edit")
	dir := fs.String("o", ".", "output directory")
	presetPath := fs.String("preset", "", "preset file")
	logPath := fs.String("log", "", "log file")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("usage: wavegen edit [-o dir] [-preset file] [-log file]")
	}
	// The form owns the terminal, so only a file log is allowed.
	if err := setupLogging(*logPath, false); err != nil {
		return err
	}
	defer logging.Close()

	f, err := loadForm(*presetPath)
	if err != nil {
		return err
	}
	return tui.Run(f, *dir)
}

// ---------------------------------------------------------------------------
// prompt
// ---------------------------------------------------------------------------

func runPrompt(args []string) error {
	fs := newFlagSet("prompt")
	dir := fs.String("o", ".", "output directory")
	presetPath := fs.String("preset", "", "preset file")
	logPath := fs.String("log", "", "log file")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("usage: wavegen prompt [-o dir] [-preset file] [-log file]")
	}
	if err := setupLogging(*logPath, false); err != nil {
		return err
	}
	defer logging.Close()

	f, err := loadForm(*presetPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := prompt.Run(ctx, prompt.NewSurveyDriver(), f); err != nil {
		if errors.Is(err, prompt.ErrAborted) {
			fmt.Fprintln(stderr, "aborted; nothing written")
			return nil
		}
		return fmt.Errorf("prompt: %w", err)
	}
	report(stdout, f.State())
	return write(f, *dir)
}

// ---------------------------------------------------------------------------
// generate
// ---------------------------------------------------------------------------

func runGenerate(args []string) error {
	fs := newFlagSet("generate")
	dir := fs.String("o", ".", "output directory")
	logPath := fs.String("log", "", "log file")
	verbose := fs.Bool("v", false, "debug logging to stderr")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: wavegen generate [-o dir] [-log file] [-v] <preset>")
	}
	if err := setupLogging(*logPath, *verbose); err != nil {
		return err
	}
	defer logging.Close()

	f, err := loadForm(fs.Arg(0))
	if err != nil {
		return err
	}
	report(stderr, f.State())
	return write(f, *dir)
}

// ---------------------------------------------------------------------------
// validate
// ---------------------------------------------------------------------------

func runValidate(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: wavegen validate <preset>")
	}
	f, err := loadForm(args[0])
	if err != nil {
		return err
	}
	fmt.Fprint(stdout, validate.Run(f.State()).String())
	return nil
}

// ---------------------------------------------------------------------------
// defaults
// ---------------------------------------------------------------------------

func runDefaults(args []string) error {
	fs := newFlagSet("defaults")
	format := fs.String("format", "yaml", "yaml or toml")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	p := preset.FromState(form.NewState())
	var (
		data []byte
		err  error
	)
	switch *format {
	case "yaml":
		data, err = preset.Marshal(p)
	case "toml":
		data, err = preset.MarshalTOML(p)
	default:
		return fmt.Errorf("defaults: unknown format %q (want yaml or toml)", *format)
	}
	if err != nil {
		return err
	}
	_, err = stdout.Write(data)
	return err
}

func main() {
	if err := dispatch(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}
