package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func runGlox(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = glox(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestGloxEndToEnd(t *testing.T) {
	program := writeFile(t, "prog.yml", `
- var: {name: x, init: {literal: 10}}
- print: {binary: {op: "+", left: {variable: x}, right: {literal: 5}}}
- print: {literal: null}
`)

	code, stdout, stderr := runGlox(t, program)
	if code != exitOK {
		t.Fatalf("exit %d, stderr:\n%s", code, stderr)
	}
	if stdout != "15\nnil\n" {
		t.Fatalf("stdout %q", stdout)
	}
}

const failingProgram = `
- var: {name: total, init: {literal: 1}}
- print: {literal: first}
---
- block:
    - var: {name: total, init: {literal: 99}}
    - print:
        binary:
          op: "/"
          left: {variable: total}
          right: {literal: 0}
- print: {literal: skipped}
---
- print: {variable: total}
`

func TestGloxRuntimeErrorHaltsOnlyItsSequence(t *testing.T) {
	program := writeFile(t, "prog.yml", failingProgram)

	code, stdout, stderr := runGlox(t, "-log-level", "error", program)
	if code != exitSoftware {
		t.Fatalf("exit %d, want %d", code, exitSoftware)
	}
	// the third sequence sees the outer total, not the block's shadow
	if stdout != "first\n1\n" {
		t.Fatalf("stdout %q", stdout)
	}
	if !strings.Contains(stderr, "Runtime: [line 9] RuntimeError at '/': Dividing by zero is not allowed.") {
		t.Fatalf("stderr %q", stderr)
	}
}

func TestGloxHaltOnError(t *testing.T) {
	program := writeFile(t, "prog.yml", failingProgram)
	cfg := writeFile(t, "glox.yml", "halt_on_error: true\nlog: {level: error, format: json}\n")

	code, stdout, stderr := runGlox(t, "-config", cfg, program)
	if code != exitSoftware {
		t.Fatalf("exit %d, want %d", code, exitSoftware)
	}
	if stdout != "first\n" {
		t.Fatalf("stdout %q", stdout)
	}
	if !strings.Contains(stderr, `"msg":"sequence aborted"`) {
		t.Fatalf("stderr %q, want a json error record", stderr)
	}
}

func TestGloxFlagOverridesConfig(t *testing.T) {
	program := writeFile(t, "prog.yml", failingProgram)
	cfg := writeFile(t, "glox.yml", "halt_on_error: true\n")

	code, stdout, _ := runGlox(t, "-config", cfg, "-halt=false", program)
	if code != exitSoftware || stdout != "first\n1\n" {
		t.Fatalf("exit %d stdout %q", code, stdout)
	}
}

func TestGloxUsageAndLoadErrors(t *testing.T) {
	if code, _, _ := runGlox(t); code != exitUsage {
		t.Errorf("no args: exit %d, want %d", code, exitUsage)
	}
	if code, _, _ := runGlox(t, "-log-format", "xml", "prog.yml"); code != exitUsage {
		t.Errorf("bad format: exit %d, want %d", code, exitUsage)
	}

	missing := filepath.Join(t.TempDir(), "missing.yml")
	if code, _, _ := runGlox(t, missing); code != exitDataErr {
		t.Errorf("missing file: exit %d, want %d", code, exitDataErr)
	}

	bad := writeFile(t, "bad.yml", "- print: {literal: 1.5}\n")
	code, _, stderr := runGlox(t, bad)
	if code != exitDataErr {
		t.Errorf("bad program: exit %d, want %d", code, exitDataErr)
	}
	if !strings.Contains(stderr, "Loader: [line 1] Error:") {
		t.Errorf("stderr %q", stderr)
	}
}
