//go:build mage

// Package main contains Mage build targets for paper-engine developer tooling.
package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir  = "bin"
	binName = "paper-engine"
	cmdPkg  = "./cmd/paper-engine"
)

// Default target when mage runs without arguments.
var Default = Build

// Build compiles the CLI binary into bin/, stamping the version from
// $VERSION or "dev".
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	out := filepath.Join(binDir, binName)
	ldflags := "-X main.version=" + version
	if err := sh.RunV("go", "build", "-ldflags", ldflags, "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s (%s)\n", out, version)
	return nil
}

// Vet runs go vet on every package.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Test vets, then runs the test suite with the race detector.
func Test() error {
	mg.Deps(Vet)
	return sh.RunV("go", "test", "-race", "-count=1", "./...")
}

// Serve builds the binary and starts the HTTP API.
func Serve() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, binName), "serve")
}

// Clean removes build output.
func Clean() error {
	return sh.Rm(binDir)
}

// Stats prints Go production and test line counts.
func Stats() error {
	prod, test, err := countGoLines(".")
	if err != nil {
		return err
	}
	fmt.Printf("Lines of code (Go, production): %d\n", prod)
	fmt.Printf("Lines of code (Go, tests):      %d\n", test)
	return nil
}

// countGoLines counts non-blank lines in .go files under root, split into
// production and test totals. Directories starting with "_" or "." are
// skipped, as the go tool does.
func countGoLines(root string) (prod, test int, err error) {
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		n := nonBlankLines(data)
		if strings.HasSuffix(path, "_test.go") {
			test += n
		} else {
			prod += n
		}
		return nil
	})
	return prod, test, err
}

func nonBlankLines(data []byte) int {
	n := 0
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) != "" {
			n++
		}
	}
	return n
}
