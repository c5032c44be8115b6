package config

import (
	"fmt"
	"io"
	"os"

	"github.com/dkoosis/ctrf/pkg/ctrf"
)

// Options controls Resolve.
type Options struct {
	// ConfigPath is an explicit config file. When empty the file is discovered.
	ConfigPath string

	// Flags holds values given on the command line; empty fields are unset.
	Flags Config

	// Getenv looks up environment variables. Defaults to os.Getenv.
	Getenv func(string) string

	// Diag receives warnings and debug traces. Defaults to io.Discard.
	Diag io.Writer
}

// Resolve builds the effective configuration: defaults, then the config file,
// then environment variables, then flags.
//
// A discovered config file that cannot be read is reported to Diag and
// skipped. An explicit ConfigPath that cannot be read is an error.
func Resolve(opts Options) (*Config, error) {
	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	diag := opts.Diag
	if diag == nil {
		diag = io.Discard
	}
	debugOn := getenv("CTRF_DEBUG") != ""
	debug := func(format string, args ...any) {
		if debugOn {
			fmt.Fprintf(diag, format, args...)
		}
	}

	cfg := Default()

	if opts.ConfigPath != "" {
		fileCfg, err := LoadFile(opts.ConfigPath)
		if err != nil {
			return nil, err
		}
		cfg.Merge(*fileCfg)
		debug("[DEBUG Resolve] Loaded config from %s\n", opts.ConfigPath)
	} else if path := findConfigFile(debug); path != "" {
		fileCfg, err := LoadFile(path)
		if err != nil {
			fmt.Fprintf(diag, "ctrf: warning: %v. Using defaults.\n", err)
		} else {
			cfg.Merge(*fileCfg)
			debug("[DEBUG Resolve] Loaded config from %s\n", path)
		}
	}

	cfg.Merge(FromEnv(getenv))
	cfg.Merge(opts.Flags)

	debug("[DEBUG Resolve] Output path: %s, tool: %s\n", cfg.Path(), cfg.Tool())
	return cfg, nil
}

// FromEnv reads CTRF_* environment variables into a Config.
func FromEnv(getenv func(string) string) Config {
	return Config{
		OutputFile: getenv("CTRF_OUTPUT_FILE"),
		OutputDir:  getenv("CTRF_OUTPUT_DIR"),
		ToolName:   getenv("CTRF_TOOL_NAME"),
		Environment: ctrf.Environment{
			AppName:     getenv("CTRF_APP_NAME"),
			AppVersion:  getenv("CTRF_APP_VERSION"),
			OSPlatform:  getenv("CTRF_OS_PLATFORM"),
			OSRelease:   getenv("CTRF_OS_RELEASE"),
			OSVersion:   getenv("CTRF_OS_VERSION"),
			BuildName:   getenv("CTRF_BUILD_NAME"),
			BuildNumber: getenv("CTRF_BUILD_NUMBER"),
		},
	}
}
