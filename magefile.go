// SPDX-License-Identifier: MPL-2.0

//go:build mage

package main

import (
	"fmt"
	"time"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const versionPkg = "github.com/lintgate/lintgate/cmd/lintgate"

// BuildLintgate compiles the lintgate binary into ./bin with version
// information baked in.
func BuildLintgate() error {
	cmdline := []string{
		"build",
		"--ldflags", ldflags(),
		"--trimpath", "--mod=readonly",
		"-o", "./bin/lintgate", ".",
	}

	if err := sh.RunV("go", cmdline...); err != nil {
		return fmt.Errorf("compile lintgate: %w", err)
	}

	return nil
}

// Install installs lintgate into GOBIN with version information baked in.
func Install() error {
	if err := sh.RunV("go", "install", "--ldflags", ldflags(), "--trimpath", "."); err != nil {
		return fmt.Errorf("install lintgate: %w", err)
	}

	return nil
}

func Lint() error {
	if err := sh.RunV("golangci-lint", "run", "./..."); err != nil {
		return fmt.Errorf("lint: %w", err)
	}

	return nil
}

func TestUnit() error {
	env := map[string]string{"CGO_ENABLED": "1"}
	cmdline := []string{"test", "-cover", "-race", "./..."}
	if err := sh.RunWithV(env, "go", cmdline...); err != nil {
		return fmt.Errorf("test unit: %w", err)
	}

	return nil
}

func Clean() error {
	return sh.Rm("bin")
}

func Test() { mg.Deps(TestUnit) }
func Build() {
	mg.Deps(BuildLintgate)
}

func ldflags() string {
	version, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil {
		version = "dev"
	}
	commit, err := sh.Output("git", "rev-parse", "--short", "HEAD")
	if err != nil {
		commit = "unknown"
	}

	return fmt.Sprintf("-s -w -X %[1]s.Version=%[2]s -X %[1]s.Commit=%[3]s -X %[1]s.BuildDate=%[4]s",
		versionPkg, version, commit, time.Now().UTC().Format(time.RFC3339))
}
