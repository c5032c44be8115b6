//go:build mage

package main

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir  = "bin"
	binName = "ctrf"
	pkgPath = "github.com/dkoosis/ctrf"
)

// Default target - build the binary
var Default = Build

// Build builds the ctrf binary with version metadata.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	commit, err := sh.Output("git", "rev-parse", "--short", "HEAD")
	if err != nil {
		commit = "unknown"
	}
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	ldflags := fmt.Sprintf("-s -w -X %[1]s/internal/version.Version=%[2]s -X %[1]s/internal/version.CommitHash=%[3]s -X %[1]s/internal/version.BuildDate=%[4]s",
		pkgPath, version, commit, time.Now().UTC().Format(time.RFC3339))
	return sh.RunV("go", "build", "-ldflags", ldflags, "-o", binDir+"/"+binName, "./cmd/ctrf")
}

// Test runs the test suite with the race detector.
func Test() error {
	return sh.RunV("go", "test", "-race", "-count=1", "./...")
}

// Report runs the tests and converts the results into a CTRF report.
func Report() error {
	mg.Deps(Build)
	out, _ := sh.Output("go", "test", "-json", "./...") // failures still produce a report
	cmd := exec.Command(binDir+"/"+binName, "-app-name", binName, "-format", "plain")
	cmd.Stdin = strings.NewReader(out)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Lint runs go vet and, when installed, golangci-lint.
func Lint() error {
	if err := sh.RunV("go", "vet", "./..."); err != nil {
		return fmt.Errorf("vet failed: %w", err)
	}
	if _, err := exec.LookPath("golangci-lint"); err != nil {
		fmt.Println("golangci-lint not found (install: go install github.com/golangci/golangci-lint/cmd/golangci-lint@latest)")
		return nil
	}
	return sh.RunV("golangci-lint", "run", "--timeout=5m", "./...")
}

// QA runs lint and tests.
func QA() {
	mg.SerialDeps(Lint, Test)
}

// Clean removes build artifacts and generated reports.
func Clean() error {
	for _, dir := range []string{binDir, "ctrf"} {
		if err := sh.Rm(dir); err != nil {
			return err
		}
	}
	return nil
}
