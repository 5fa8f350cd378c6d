package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLintCmdTextExitsNonZeroOnError(t *testing.T) {
	tmpdir := t.TempDir()
	file := filepath.Join(tmpdir, "app.env")
	if err := os.WriteFile(file, []byte("=broken\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := newLintCmd()
	cmd.SetArgs([]string{file})
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	var out string
	out = captureStdout(t, func() {
		if err := cmd.Execute(); err == nil {
			t.Error("expected lint to report an error exit")
		}
	})

	if !strings.Contains(out, "error") {
		t.Errorf("expected text output to mention an error, got %q", out)
	}
}

func TestLintCmdJSON(t *testing.T) {
	tmpdir := t.TempDir()
	file := filepath.Join(tmpdir, "app.env")
	if err := os.WriteFile(file, []byte("FOO=1\nFOO=2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := newLintCmd()
	cmd.SetArgs([]string{"--format=json", file})

	out := captureStdout(t, func() {
		if err := cmd.Execute(); err != nil {
			t.Error(err)
		}
	})

	var decoded map[string][]diagnosticView
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("decode json: %v\noutput: %s", err, out)
	}
	diags, ok := decoded[file]
	if !ok || len(diags) == 0 {
		t.Fatalf("expected diagnostics for %s, got %v", file, decoded)
	}
	if diags[0].Severity != "warning" {
		t.Errorf("got severity %q, want warning", diags[0].Severity)
	}
}

func TestLintCmdCleanFileProducesNoOutput(t *testing.T) {
	tmpdir := t.TempDir()
	file := filepath.Join(tmpdir, "app.env")
	if err := os.WriteFile(file, []byte("FOO=bar\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := newLintCmd()
	cmd.SetArgs([]string{file})

	out := captureStdout(t, func() {
		if err := cmd.Execute(); err != nil {
			t.Error(err)
		}
	})

	if out != "" {
		t.Errorf("expected no output for a clean file, got %q", out)
	}
}
