//go:build mage

package main

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/jstemmer/go-junit-report/v2/junit"
	"github.com/jstemmer/go-junit-report/v2/parser/gotest"
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

var Gotestsum string

var LocalBin = filepath.Join(os.Getenv("PWD"), "/bin")

func makeLocalBin() error {
	if _, err := os.Stat(LocalBin); os.IsNotExist(err) {
		return os.MkdirAll(LocalBin, os.ModePerm)
	}
	return nil
}

// Gotestsum downloads gotestsum locally if necessary
func gotestsum() error {
	mg.Deps(makeLocalBin)
	Gotestsum = filepath.Join(LocalBin, "/gotestsum")

	if _, err := os.Stat(Gotestsum); os.IsNotExist(err) {
		fmt.Println(Gotestsum)
		cmd := exec.Command("go", "install", "gotest.tools/gotestsum@v1.8.2")
		cmd.Env = append(os.Environ(), "GOBIN="+LocalBin)
		return cmd.Run()
	}
	return nil
}

// Tests runs the unit tests with the race detector and writes coverage and
// junit reports. Redis is replaced by miniredis, so no containers are needed.
func Tests() error {
	mg.Deps(gotestsum)
	if err := os.MkdirAll("test_reports", os.ModePerm); err != nil {
		return err
	}

	packages, err := sh.Output("go", "list", "./...")
	if err != nil {
		return err
	}
	testErr := runtest("coverage.xml", "unit.txt", false, filterPackages(strings.Fields(packages), "/magefiles")...)
	if err := junitReport("unit.txt", "junit.xml"); err != nil {
		return err
	}
	return testErr
}

// junitReport converts verbose go test output into a junit report for CI.
func junitReport(outputFileName, reportFileName string) error {
	in, err := os.Open(filepath.Join("test_reports", outputFileName))
	if err != nil {
		return err
	}
	defer in.Close()

	report, err := gotest.NewParser().Parse(in)
	if err != nil {
		return err
	}
	hostname, _ := os.Hostname()
	suites := junit.CreateFromReport(report, hostname)

	out, err := os.Create(filepath.Join("test_reports", reportFileName))
	if err != nil {
		return err
	}
	defer out.Close()
	return suites.WriteXML(out)
}

func runtest(coverageFileName, outputFileName string, appendOutput bool, directories ...string) error {
	args := []string{"--format", "standard-verbose", "--", "-v", "-race"}
	if coverageFileName != "" {
		args = append(args, "-coverprofile", filepath.Join("test_reports", coverageFileName))
	}
	args = append(args, directories...)

	cmd := exec.Command(Gotestsum, args...)

	fileFlags := os.O_WRONLY | os.O_CREATE
	if appendOutput {
		fileFlags |= os.O_APPEND
	} else {
		fileFlags |= os.O_TRUNC
	}

	file, err := os.OpenFile(filepath.Join("test_reports", outputFileName), fileFlags, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	cmd.Stdout = io.MultiWriter(os.Stdout, file)
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func filterPackages(packages []string, filter string) []string {
	var filtered []string
	for _, pkg := range packages {
		if !strings.Contains(pkg, filter) {
			filtered = append(filtered, pkg)
		}
	}
	return filtered
}
