// ctrf converts test-runner results into a CTRF (Common Test Report Format)
// JSON report.
//
// Usage:
//
//	ctrf [flags] [results.json]        convert results (file or stdin)
//	go test -json ./... | ctrf -app-name api
//	ctrf show [flags] report.json      render an existing CTRF report
//
// Accepts two input formats:
//   - Nightwatch.js results object (JSON)
//   - go test -json (NDJSON)
//
// The report is written to ./ctrf/ctrf-report.json unless configured
// otherwise by flags, CTRF_* environment variables or .ctrf.yaml.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/dkoosis/ctrf/internal/detect"
	"github.com/dkoosis/ctrf/internal/version"
	"github.com/dkoosis/ctrf/pkg/config"
	"github.com/dkoosis/ctrf/pkg/ctrf"
	"github.com/dkoosis/ctrf/pkg/mapper"
	"github.com/dkoosis/ctrf/pkg/nightwatch"
	"github.com/dkoosis/ctrf/pkg/render"
	"github.com/dkoosis/ctrf/pkg/reporter"
	"github.com/dkoosis/ctrf/pkg/testjson"
)

const goTestToolName = "go test"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	// Check for subcommands before flag parsing
	if len(args) > 0 && args[0] == "show" {
		return runShow(args[1:], stdin, stdout, stderr)
	}

	fs := flag.NewFlagSet("ctrf", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "Path to a .ctrf.yaml config file")
	formatFlag := fs.String("format", "auto", "Summary format: auto, terminal, plain, none")
	themeFlag := fs.String("theme", "default", "Theme: default, orca, mono")
	showVersion := fs.Bool("version", false, "Print version and exit")

	var flags config.Config
	fs.StringVar(&flags.OutputFile, "output-file", "", "Report file name (.json is appended if missing)")
	fs.StringVar(&flags.OutputDir, "output-dir", "", "Report directory (created if absent)")
	fs.StringVar(&flags.ToolName, "tool", "", "Runner name written to results.tool.name")
	fs.StringVar(&flags.Environment.AppName, "app-name", "", "environment.appName")
	fs.StringVar(&flags.Environment.AppVersion, "app-version", "", "environment.appVersion")
	fs.StringVar(&flags.Environment.OSPlatform, "os-platform", "", "environment.osPlatform")
	fs.StringVar(&flags.Environment.OSRelease, "os-release", "", "environment.osRelease")
	fs.StringVar(&flags.Environment.OSVersion, "os-version", "", "environment.osVersion")
	fs.StringVar(&flags.Environment.BuildName, "build-name", "", "environment.buildName")
	fs.StringVar(&flags.Environment.BuildNumber, "build-number", "", "environment.buildNumber")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *showVersion {
		fmt.Fprintln(stdout, version.String())
		return 0
	}
	if !validFormat(*formatFlag) {
		fmt.Fprintf(stderr, "ctrf: unknown format %q (expected auto, terminal, plain, none)\n", *formatFlag)
		return 2
	}

	input, code := readInput(fs.Arg(0), stdin, stderr)
	if code >= 0 {
		return code
	}

	format := detect.Sniff(input)
	results, code := parseResults(format, input, stderr)
	if code >= 0 {
		return code
	}

	cfg, err := config.Resolve(config.Options{
		ConfigPath: *configPath,
		Flags:      flags,
		Diag:       stderr,
	})
	if err != nil {
		fmt.Fprintf(stderr, "ctrf: loading config: %v\n", err)
		return 2
	}
	if format == detect.GoTestJSON && cfg.ToolName == config.DefaultToolName {
		cfg.ToolName = goTestToolName
	}

	rep := reporter.New(cfg, reporter.WithOutput(stdout, stderr))
	report, path, err := rep.Generate(results)
	if err != nil {
		fmt.Fprintf(stderr, "ctrf: error writing ctrf json report: %v\n", err)
		return 1
	}
	fmt.Fprintf(stderr, "%s: successfully written ctrf json to %s\n", reporter.Name, path)

	if r := selectRenderer(resolveFormat(*formatFlag, stdout), *themeFlag, stdout); r != nil {
		fmt.Fprint(stdout, r.Render(report))
	}
	return 0
}

// readInput reads the named file, or stdin when name is empty or "-".
// Returns (data, -1) on success; (nil, exitCode) on error.
func readInput(name string, stdin io.Reader, stderr io.Writer) ([]byte, int) {
	var (
		input []byte
		err   error
	)
	if name == "" || name == "-" {
		input, err = io.ReadAll(stdin)
	} else {
		input, err = os.ReadFile(name) // #nosec G304 - path is a CLI argument
	}
	if err != nil {
		fmt.Fprintf(stderr, "ctrf: reading input: %v\n", err)
		return nil, 2
	}
	if len(input) == 0 {
		fmt.Fprintf(stderr, "ctrf: no input\n")
		return nil, 2
	}
	return input, -1
}

// parseResults parses raw bytes according to the detected format.
// Returns (results, -1) on success; (nil, exitCode) on error.
func parseResults(format detect.Format, input []byte, stderr io.Writer) (*nightwatch.Result, int) {
	switch format {
	case detect.Nightwatch:
		res, err := nightwatch.ReadBytes(input)
		if err != nil {
			fmt.Fprintf(stderr, "ctrf: parsing nightwatch results: %v\n", err)
			return nil, 2
		}
		return res, -1
	case detect.GoTestJSON:
		run, malformed, err := testjson.ParseBytes(input)
		if err != nil {
			fmt.Fprintf(stderr, "ctrf: parsing go test -json: %v\n", err)
			return nil, 2
		}
		if malformed > 0 {
			fmt.Fprintf(stderr, "ctrf: warning: %d malformed line(s) skipped\n", malformed)
		}
		return mapper.FromTestJSON(run), -1
	case detect.CTRF:
		fmt.Fprintf(stderr, "ctrf: input is already a CTRF report (use 'ctrf show')\n")
		return nil, 2
	default:
		fmt.Fprintf(stderr, "ctrf: unrecognized input format (expected Nightwatch results or go test -json)\n")
		return nil, 2
	}
}

// --- ctrf show subcommand ---

func runShow(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("ctrf show", flag.ContinueOnError)
	fs.SetOutput(stderr)
	formatFlag := fs.String("format", "auto", "Output format: auto, terminal, plain")
	themeFlag := fs.String("theme", "default", "Theme: default, orca, mono")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if !validFormat(*formatFlag) || *formatFlag == "none" {
		fmt.Fprintf(stderr, "ctrf show: unknown format %q (expected auto, terminal, plain)\n", *formatFlag)
		return 2
	}

	input, code := readInput(fs.Arg(0), stdin, stderr)
	if code >= 0 {
		return code
	}
	report, err := ctrf.ReadBytes(input)
	if err != nil {
		fmt.Fprintf(stderr, "ctrf show: %v\n", err)
		return 2
	}

	fmt.Fprint(stdout, selectRenderer(resolveFormat(*formatFlag, stdout), *themeFlag, stdout).Render(report))
	return exitCode(report)
}

// exitCode returns 1 when the report records failed tests.
func exitCode(r *ctrf.Report) int {
	if r.Results.Summary.Failed > 0 || len(ctrf.FailedTests(r)) > 0 {
		return 1
	}
	return 0
}

func validFormat(f string) bool {
	switch f {
	case "auto", "terminal", "plain", "none":
		return true
	}
	return false
}

// selectRenderer returns nil for "none".
func selectRenderer(mode, themeName string, w io.Writer) render.Renderer {
	switch mode {
	case "none":
		return nil
	case "plain":
		return render.NewPlain()
	default:
		theme := render.ThemeByName(themeName)
		// Honor NO_COLOR
		if os.Getenv("NO_COLOR") != "" {
			theme = render.MonoTheme()
		}
		return render.NewTerminal(theme, termWidth(w))
	}
}

func resolveFormat(format string, w io.Writer) string {
	if format != "auto" {
		return format
	}
	// Auto-detect: TTY = terminal, piped = plain
	if isTTYWriter(w) {
		return "terminal"
	}
	return "plain"
}

// isTTYWriter reports whether w is a terminal.
func isTTYWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// termWidth returns the terminal width of w, defaulting to 80.
func termWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if tw, _, err := term.GetSize(int(f.Fd())); err == nil && tw > 0 {
			return tw
		}
	}
	return 80
}
