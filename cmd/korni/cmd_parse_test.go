package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseCmdJSON(t *testing.T) {
	tmpdir := t.TempDir()
	file := filepath.Join(tmpdir, "app.env")
	if err := os.WriteFile(file, []byte("FOO=bar\n# note\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out := captureStdout(t, func() {
		cmd := newParseCmd()
		cmd.SetArgs([]string{file})
		if err := cmd.Execute(); err != nil {
			t.Error(err)
		}
	})

	var views []entryView
	if err := json.Unmarshal([]byte(out), &views); err != nil {
		t.Fatalf("decode json: %v\noutput: %s", err, out)
	}
	if len(views) != 2 {
		t.Fatalf("got %d entries, want 2", len(views))
	}
	if views[0].Key != "FOO" || views[0].Value != "bar" {
		t.Errorf("got %+v", views[0])
	}
	if views[1].Kind != "Comment" {
		t.Errorf("got kind %q, want Comment", views[1].Kind)
	}
}

func TestParseCmdYAML(t *testing.T) {
	tmpdir := t.TempDir()
	file := filepath.Join(tmpdir, "app.env")
	if err := os.WriteFile(file, []byte("FOO=bar\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out := captureStdout(t, func() {
		cmd := newParseCmd()
		cmd.SetArgs([]string{"--format=yaml", file})
		if err := cmd.Execute(); err != nil {
			t.Error(err)
		}
	})

	if !strings.Contains(out, "key: FOO") {
		t.Errorf("expected yaml output to contain key: FOO, got %q", out)
	}
}

func TestParseCmdUnknownFormat(t *testing.T) {
	tmpdir := t.TempDir()
	file := filepath.Join(tmpdir, "app.env")
	if err := os.WriteFile(file, []byte("FOO=bar\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := newParseCmd()
	cmd.SetArgs([]string{"--format=xml", file})
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	if err := cmd.Execute(); err == nil {
		t.Error("expected an error for an unknown format")
	}
}
