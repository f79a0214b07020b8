//go:build mage

package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const modulePath = "github.com/jacksonrnewhouse/arroyo"

// Build builds arroyoctl and fakearroyo into ./bin.
func Build() error {
	mg.Deps(makeLocalBin)
	timeTaken := time.Now()
	ldflags, err := versionLdflags()
	if err != nil {
		return err
	}
	for _, name := range []string{"arroyoctl", "fakearroyo"} {
		out := binaryWithExt("bin/" + name)
		if err := sh.RunV("go", "build", "-ldflags", ldflags, "-o", out, "./cmd/"+name); err != nil {
			return err
		}
	}
	fmt.Println("Time to build:", time.Since(timeTaken))
	return nil
}

// FakeApi runs the fake api server for local development.
func FakeApi() error {
	return sh.RunV("go", "run", "./cmd/fakearroyo")
}

// Cleans build and test output.
func Clean() {
	fmt.Println("Cleaning...")
	for _, path := range []string{"bin", "test_reports"} {
		os.RemoveAll(path)
	}
}

// versionLdflags stamps the release information reported by arroyoctl version.
func versionLdflags() (string, error) {
	commit, err := sh.Output("git", "rev-parse", "--short", "HEAD")
	if err != nil {
		commit = "UNKNOWN_GITCOMMIT"
	}
	version := os.Getenv("ARROYO_RELEASE_VERSION")
	if version == "" {
		version = "dev"
	}
	vars := map[string]string{
		"ReleaseVersion": version,
		"GitCommit":      strings.TrimSpace(commit),
		"BuildTime":      time.Now().UTC().Format(time.RFC3339),
	}
	flags := make([]string, 0, len(vars))
	for name, value := range vars {
		flags = append(flags, fmt.Sprintf("-X %s/internal/arroyoctl/build.%s=%s", modulePath, name, value))
	}
	return strings.Join(flags, " "), nil
}
