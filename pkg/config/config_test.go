package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/ctrf/pkg/ctrf"
)

func noEnv(string) string { return "" }

// chdir moves into dir for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func isolate(t *testing.T) string {
	t.Helper()
	tempDir := t.TempDir()
	chdir(t, tempDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tempDir, "xdg"))
	t.Setenv("HOME", filepath.Join(tempDir, "home"))
	return tempDir
}

func TestNormalizeFilename(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"report", "report.json"},
		{"report.json", "report.json"},
		{"report.JSON", "report.JSON.json"},
		{"report.json.bak", "report.json.bak.json"},
		{"a.b", "a.b.json"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeFilename(tt.in))
		})
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, filepath.Join("ctrf", "ctrf-report.json"), cfg.Path())
	assert.Equal(t, "nightwatch.js", cfg.Tool())
	assert.True(t, cfg.Environment.IsEmpty())
}

func TestConfig_EmptyFieldsFallBack(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, DefaultOutputDir, cfg.Dir())
	assert.Equal(t, DefaultOutputFile, cfg.Filename())
	assert.Equal(t, DefaultToolName, cfg.Tool())

	cfg.OutputFile = "custom"
	assert.Equal(t, "custom.json", cfg.Filename())
}

func TestMerge_EmptyNeverOverrides(t *testing.T) {
	cfg := Default()
	cfg.Environment.AppName = "Base"
	cfg.Merge(Config{OutputDir: "out", Environment: ctrf.Environment{BuildNumber: "42"}})

	assert.Equal(t, "out", cfg.OutputDir)
	assert.Equal(t, DefaultOutputFile, cfg.OutputFile)
	assert.Equal(t, "Base", cfg.Environment.AppName)
	assert.Equal(t, "42", cfg.Environment.BuildNumber)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	yml := `output_file: results
output_dir: reports/ctrf
environment:
  app_name: MyApp
  build_number: "17"
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "results", cfg.OutputFile)
	assert.Equal(t, "reports/ctrf", cfg.OutputDir)
	assert.Equal(t, ctrf.Environment{AppName: "MyApp", BuildNumber: "17"}, cfg.Environment)
}

func TestLoadFile_Errors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read config file")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("output_file: [unclosed\n"), 0o600))
	_, err = LoadFile(bad)
	assert.ErrorContains(t, err, "parse config file")
}

func TestResolve_DefaultsWhenNothingConfigured(t *testing.T) {
	isolate(t)

	cfg, err := Resolve(Options{Getenv: noEnv})
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestResolve_DiscoversConfigInParentDir(t *testing.T) {
	root := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, FileName), []byte("output_dir: from-file\n"), 0o600))
	sub := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	chdir(t, sub)

	cfg, err := Resolve(Options{Getenv: noEnv})
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.OutputDir)
}

func TestResolve_UsesXDGPath_When_LocalMissing(t *testing.T) {
	root := isolate(t)
	xdgDir := filepath.Join(root, "xdg", "ctrf")
	require.NoError(t, os.MkdirAll(xdgDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(xdgDir, FileName), []byte("tool_name: xdg-tool\n"), 0o600))

	cfg, err := Resolve(Options{Getenv: noEnv})
	require.NoError(t, err)
	assert.Equal(t, "xdg-tool", cfg.ToolName)
}

func TestResolve_Precedence(t *testing.T) {
	root := isolate(t)
	yml := "output_file: file-name\noutput_dir: file-dir\nenvironment:\n  app_name: FileApp\n  os_platform: linux\n"
	path := filepath.Join(root, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o600))

	env := map[string]string{
		"CTRF_OUTPUT_DIR": "env-dir",
		"CTRF_APP_NAME":   "EnvApp",
	}
	cfg, err := Resolve(Options{
		ConfigPath: path,
		Getenv:     func(k string) string { return env[k] },
		Flags:      Config{Environment: ctrf.Environment{AppName: "FlagApp"}},
	})
	require.NoError(t, err)

	assert.Equal(t, "file-name", cfg.OutputFile)
	assert.Equal(t, "env-dir", cfg.OutputDir)
	assert.Equal(t, "FlagApp", cfg.Environment.AppName)
	assert.Equal(t, "linux", cfg.Environment.OSPlatform)
	assert.Equal(t, filepath.Join("env-dir", "file-name.json"), cfg.Path())
}

func TestResolve_ExplicitConfigMissing(t *testing.T) {
	isolate(t)
	_, err := Resolve(Options{ConfigPath: "nope.yaml", Getenv: noEnv})
	assert.Error(t, err)
}

func TestResolve_BadDiscoveredConfigWarns(t *testing.T) {
	root := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, FileName), []byte(":\n\t- bad"), 0o600))

	var diag bytes.Buffer
	cfg, err := Resolve(Options{Getenv: noEnv, Diag: &diag})
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Contains(t, diag.String(), "ctrf: warning:")
}

func TestResolve_DebugTrace(t *testing.T) {
	isolate(t)
	var diag bytes.Buffer
	_, err := Resolve(Options{
		Getenv: func(k string) string {
			if k == "CTRF_DEBUG" {
				return "1"
			}
			return ""
		},
		Diag: &diag,
	})
	require.NoError(t, err)
	assert.Contains(t, diag.String(), "[DEBUG Resolve]")
}

func TestFromEnv(t *testing.T) {
	env := map[string]string{
		"CTRF_OUTPUT_FILE":  "f",
		"CTRF_TOOL_NAME":    "go test",
		"CTRF_OS_RELEASE":   "6.1",
		"CTRF_OS_VERSION":   "22.04",
		"CTRF_APP_VERSION":  "1.2.3",
		"CTRF_BUILD_NAME":   "nightly",
		"CTRF_BUILD_NUMBER": "9",
	}
	cfg := FromEnv(func(k string) string { return env[k] })

	assert.Equal(t, "f", cfg.OutputFile)
	assert.Equal(t, "go test", cfg.ToolName)
	assert.Equal(t, ctrf.Environment{
		AppVersion: "1.2.3", OSRelease: "6.1", OSVersion: "22.04",
		BuildName: "nightly", BuildNumber: "9",
	}, cfg.Environment)
}
