// Package config resolves the reporter configuration.
//
// # Configuration Precedence
//
// Values are resolved in the following order (highest to lowest priority):
//
//  1. CLI flags (-output-file, -output-dir, -app-name, ...)
//  2. Environment variables (CTRF_OUTPUT_FILE, CTRF_APP_NAME, ...)
//  3. YAML config file (.ctrf.yaml in the working directory or a parent, or
//     ~/.config/ctrf/.ctrf.yaml)
//  4. Hardcoded defaults (ctrf/ctrf-report.json, tool nightwatch.js)
//
// An empty value never overrides: it means "not configured".
//
// # Environment Variables
//
//   - CTRF_OUTPUT_FILE, CTRF_OUTPUT_DIR, CTRF_TOOL_NAME
//   - CTRF_APP_NAME, CTRF_APP_VERSION
//   - CTRF_OS_PLATFORM, CTRF_OS_RELEASE, CTRF_OS_VERSION
//   - CTRF_BUILD_NAME, CTRF_BUILD_NUMBER
//   - CTRF_DEBUG: set to any non-empty value to trace config discovery
package config
