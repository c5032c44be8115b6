package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dkoosis/ctrf/pkg/ctrf"
)

// Constants for default values.
const (
	DefaultOutputFile = "ctrf-report.json"
	DefaultOutputDir  = "ctrf"
	DefaultToolName   = "nightwatch.js"

	// FileName is the config file looked up on disk.
	FileName = ".ctrf.yaml"
)

// Config is the reporter configuration, as read from .ctrf.yaml.
type Config struct {
	OutputFile  string           `yaml:"output_file,omitempty"`
	OutputDir   string           `yaml:"output_dir,omitempty"`
	ToolName    string           `yaml:"tool_name,omitempty"`
	Environment ctrf.Environment `yaml:"environment,omitempty"`
}

// Default returns the configuration used when nothing is configured.
func Default() *Config {
	return &Config{
		OutputFile: DefaultOutputFile,
		OutputDir:  DefaultOutputDir,
		ToolName:   DefaultToolName,
	}
}

// NormalizeFilename appends ".json" unless name already ends with it.
func NormalizeFilename(name string) string {
	if strings.HasSuffix(name, ".json") {
		return name
	}
	return name + ".json"
}

// Filename returns the normalized output file name.
func (c *Config) Filename() string {
	name := c.OutputFile
	if name == "" {
		name = DefaultOutputFile
	}
	return NormalizeFilename(name)
}

// Dir returns the output directory.
func (c *Config) Dir() string {
	if c.OutputDir == "" {
		return DefaultOutputDir
	}
	return c.OutputDir
}

// Path returns the report destination.
func (c *Config) Path() string {
	return filepath.Join(c.Dir(), c.Filename())
}

// Tool returns the runner name written into the report.
func (c *Config) Tool() string {
	if c.ToolName == "" {
		return DefaultToolName
	}
	return c.ToolName
}

// Merge copies every non-empty field of src onto c.
func (c *Config) Merge(src Config) {
	setIf(&c.OutputFile, src.OutputFile)
	setIf(&c.OutputDir, src.OutputDir)
	setIf(&c.ToolName, src.ToolName)

	env := &c.Environment
	setIf(&env.AppName, src.Environment.AppName)
	setIf(&env.AppVersion, src.Environment.AppVersion)
	setIf(&env.OSPlatform, src.Environment.OSPlatform)
	setIf(&env.OSRelease, src.Environment.OSRelease)
	setIf(&env.OSVersion, src.Environment.OSVersion)
	setIf(&env.BuildName, src.Environment.BuildName)
	setIf(&env.BuildNumber, src.Environment.BuildNumber)
}

func setIf(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// LoadFile reads a .ctrf.yaml file. Fields absent from the file are empty.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 - config file path is controlled
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return &cfg, nil
}

// findConfigFile looks for .ctrf.yaml in the working directory and its
// parents, then in the user config directory.
func findConfigFile(debug func(format string, args ...any)) string {
	if dir, err := os.Getwd(); err == nil {
		for {
			candidate := filepath.Join(dir, FileName)
			if _, err := os.Stat(candidate); err == nil {
				debug("[DEBUG findConfigFile] Using project config file: %s\n", candidate)
				return candidate
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	configHome, err := os.UserConfigDir()
	// An empty or root config dir is not usable for a per-user path.
	if err != nil || configHome == "" || configHome == "/" {
		debug("[DEBUG findConfigFile] UserConfigDir unusable. Error: %v, Path: '%s'\n", err, configHome)
		return ""
	}
	xdgPath := filepath.Join(configHome, "ctrf", FileName)
	if _, err := os.Stat(xdgPath); err == nil {
		debug("[DEBUG findConfigFile] Using XDG config file: %s\n", xdgPath)
		return xdgPath
	}
	debug("[DEBUG findConfigFile] No config file found. Will use default settings.\n")
	return ""
}
