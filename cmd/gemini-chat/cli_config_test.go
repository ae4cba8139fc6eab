package main

import (
	"path/filepath"
	"testing"
)

func TestParseCLIDefaults(t *testing.T) {
	opts, err := parseCLI("gemini-chat", nil)
	if err != nil {
		t.Fatalf("parseCLI returned error: %v", err)
	}
	if opts.Interactive || opts.Prompt != "" || opts.Verbose {
		t.Fatalf("unexpected defaults: %+v", opts)
	}
	if opts.EnvPath != ".env" {
		t.Fatalf("unexpected env path default: %q", opts.EnvPath)
	}
}

func TestParseCLIRejectsUnknownFlag(t *testing.T) {
	if _, err := parseCLI("gemini-chat", []string{"-bogus"}); err == nil {
		t.Fatal("expected error for unknown flag")
	}
}

func TestPickModeNoneWithoutFlags(t *testing.T) {
	if mode := pickMode(cliOptions{}); mode != modeNone {
		t.Fatalf("expected modeNone, got %v", mode)
	}
}

func TestPickModeOneShotWithPrompt(t *testing.T) {
	opts := cliOptions{Prompt: "Explain RAG in simple terms."}
	if mode := pickMode(opts); mode != modeOneShot {
		t.Fatalf("expected modeOneShot, got %v", mode)
	}
}

func TestPickModeInteractiveWinsOverPrompt(t *testing.T) {
	opts := cliOptions{Interactive: true, Prompt: "ignored"}
	if mode := pickMode(opts); mode != modeInteractive {
		t.Fatalf("expected modeInteractive, got %v", mode)
	}
}

func TestLoadDotEnvIgnoresMissingFile(t *testing.T) {
	if err := loadDotEnv(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Fatalf("missing dotenv file should not error: %v", err)
	}
}
