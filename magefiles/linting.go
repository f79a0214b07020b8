//go:build mage

package main

import (
	"fmt"
	"strings"

	semver "github.com/Masterminds/semver/v3"
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
	"github.com/pkg/errors"
)

// Oldest golangci-lint the tree is linted with.
const golangciLintConstraint = ">= 1.52.0"

// golangciLintCheck fails unless the installed golangci-lint satisfies
// golangciLintConstraint. `golangci-lint --version` prints
// "golangci-lint has version v1.52.2 built ...".
func golangciLintCheck() error {
	output, err := golangciLint("--version")
	if err != nil {
		return errors.Wrap(err, "golangci-lint is not installed")
	}
	fields := strings.Fields(output)
	if len(fields) < 4 {
		return errors.Errorf("unexpected golangci-lint version output: %s", output)
	}
	version, err := semver.NewVersion(fields[3])
	if err != nil {
		return errors.Wrapf(err, "parsing golangci-lint version %q", fields[3])
	}
	constraint, err := semver.NewConstraint(golangciLintConstraint)
	if err != nil {
		return err
	}
	if !constraint.Check(version) {
		return errors.Errorf("golangci-lint %s is too old, need %s", version, golangciLintConstraint)
	}
	return nil
}

// LintFix runs golangci-lint and applies its fixes.
func LintFix() error {
	return lint("--fix")
}

// CheckLint runs golangci-lint without changing any file.
func CheckLint() error {
	return lint()
}

func lint(extraArgs ...string) error {
	mg.Deps(golangciLintCheck)
	args := append([]string{"run", "--timeout", "10m"}, extraArgs...)
	output, err := golangciLint(args...)
	if err != nil {
		fmt.Println(output)
		return errors.Wrap(err, "lint failed")
	}
	return nil
}

func golangciLint(args ...string) (string, error) {
	return sh.Output(binaryWithExt("golangci-lint"), args...)
}
