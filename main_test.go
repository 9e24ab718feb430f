package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const adderSrc = `module adder {
  input a[4]; input b[4];
  output sum[4];
  sum = a + b;
}
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunSuccess(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "adder.cat", adderSrc)
	out := filepath.Join(dir, "adder.v")

	var stderr bytes.Buffer
	if code := run([]string{in, out}, &stderr); code != 0 {
		t.Fatalf("exit code %d, stderr:\n%s", code, stderr.String())
	}
	if stderr.Len() != 0 {
		t.Errorf("unexpected stderr output:\n%s", stderr.String())
	}
	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(got), "module adder (\n") || !strings.Contains(string(got), "    assign sum = a + b;\n") {
		t.Errorf("unexpected output:\n%s", got)
	}
}

func TestRunFailureWritesNoOutput(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "dup.cat", "module dup {\n  wire x[4];\n  wire x[4];\n}\n")
	out := filepath.Join(dir, "dup.v")

	var stderr bytes.Buffer
	if code := run([]string{in, out}, &stderr); code != 1 {
		t.Fatalf("exit code %d, want 1", code)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("output file exists after failed compilation")
	}
	want := in + `:3:8: SemanticError(DuplicateSignal): signal "x" already declared at 2:8`
	if got := strings.TrimSpace(stderr.String()); got != want {
		t.Errorf("stderr = %q, want %q", got, want)
	}
}

func TestRunMultiplePairs(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.cat", adderSrc)
	bad := writeFile(t, dir, "bad.cat", "module bad {\n  wire a; wire b;\n  a = b;\n  b = a;\n}\n")
	goodOut := filepath.Join(dir, "good.v")
	badOut := filepath.Join(dir, "bad.v")

	var stderr bytes.Buffer
	code := run([]string{bad, badOut, good, goodOut}, &stderr)
	if code != 1 {
		t.Fatalf("exit code %d, want 1", code)
	}
	if _, err := os.Stat(goodOut); err != nil {
		t.Errorf("independent pair was not compiled: %v", err)
	}
	if _, err := os.Stat(badOut); !os.IsNotExist(err) {
		t.Errorf("output written for failing pair")
	}
	if !strings.Contains(stderr.String(), "CombinationalLoop") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestRunWarningsAndStrict(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "w.cat", "module w {\n  input a;\n  output y;\n  output z;\n  y = a;\n}\n")
	out := filepath.Join(dir, "w.v")

	var stderr bytes.Buffer
	if code := run([]string{in, out}, &stderr); code != 0 {
		t.Fatalf("exit code %d, stderr:\n%s", code, stderr.String())
	}
	if !strings.Contains(stderr.String(), `signal \"z\" is never driven`) {
		t.Errorf("missing lint warning in %q", stderr.String())
	}

	os.Remove(out)
	stderr.Reset()
	if code := run([]string{"-strict", in, out}, &stderr); code != 1 {
		t.Fatalf("strict exit code %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "UndrivenSignal") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestRunUsage(t *testing.T) {
	tests := [][]string{
		{},
		{"only-input.cat"},
		{"a.cat", "a.v", "b.cat"},
		{"-log-format", "xml", "a.cat", "a.v"},
		{"-nope"},
	}
	for _, args := range tests {
		var stderr bytes.Buffer
		if code := run(args, &stderr); code != 2 {
			t.Errorf("run(%q) = %d, want 2", args, code)
		}
	}
}

func TestRunMissingInput(t *testing.T) {
	dir := t.TempDir()
	var stderr bytes.Buffer
	code := run([]string{filepath.Join(dir, "missing.cat"), filepath.Join(dir, "out.v")}, &stderr)
	if code != 1 {
		t.Errorf("exit code %d, want 1", code)
	}
}
