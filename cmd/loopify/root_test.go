package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"loopify/internal/loop"
)

func runCLI(t *testing.T, args []string) (string, string, error) {
	t.Helper()

	cmd := newRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q, got:\n%s", needle, haystack)
	}
}

func TestRootRejectsNonNumericCut(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	_, _, err := runCLI(t, []string{"in.mp3", "three"})
	if err == nil || !strings.Contains(err.Error(), "not a number") {
		t.Fatalf("expected cut parse error, got %v", err)
	}
}

func TestRootMissingInputFailsBeforeTooling(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("PATH", t.TempDir()) // no ffmpeg/ffprobe available

	missing := filepath.Join(t.TempDir(), "absent.mp3")
	_, _, err := runCLI(t, []string{missing, "3"})
	if !errors.Is(err, loop.ErrInputNotFound) {
		t.Fatalf("expected ErrInputNotFound, got %v", err)
	}
}

func TestRootAcceptsNegativeCutAfterDashes(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("PATH", t.TempDir())

	missing := filepath.Join(t.TempDir(), "absent.mp3")
	// The run still fails on the missing input, which proves -2.0 was taken
	// as a positional argument rather than a flag.
	_, _, err := runCLI(t, []string{"--", missing, "-2.0"})
	if !errors.Is(err, loop.ErrInputNotFound) {
		t.Fatalf("expected ErrInputNotFound, got %v", err)
	}
}

func TestRootRequiresTwoArguments(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	if _, _, err := runCLI(t, []string{"only-input.mp3"}); err == nil {
		t.Fatal("expected argument count error")
	}
}

func TestConfigInitAndValidate(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err := runCLI(t, []string{"config", "init", "--path", target})
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	out, _, err = runCLI(t, []string{"config", "validate", "--path", target})
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")
	requireContains(t, out, "ffmpeg")

	// A second init without --overwrite must refuse.
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}); err == nil {
		t.Fatal("expected init to refuse overwriting an existing config")
	}
}

func TestDepsCommandReportsMissingBinaries(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("PATH", t.TempDir())

	out, _, err := runCLI(t, []string{"deps"})
	if err == nil {
		t.Fatal("expected deps to fail when binaries are missing")
	}
	requireContains(t, out, "FFmpeg")
	requireContains(t, out, "missing")
}

func TestDepsCommandFindsBinaries(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	bin := t.TempDir()
	for _, name := range []string{"ffmpeg", "ffprobe"} {
		if err := os.WriteFile(filepath.Join(bin, name), []byte("#!/bin/sh\n"), 0o755); err != nil {
			t.Fatalf("write stub %s: %v", name, err)
		}
	}
	t.Setenv("PATH", bin)

	out, _, err := runCLI(t, []string{"deps"})
	if err != nil {
		t.Fatalf("deps: %v", err)
	}
	requireContains(t, out, "ok")
}
