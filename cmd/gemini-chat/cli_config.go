package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	configpkg "github.com/botcampus-ai/gemini-chat-go/pkg/config"
)

// cliOptions carries the parsed command-line surface.
type cliOptions struct {
	Interactive bool
	Prompt      string
	ConfigPath  string
	EnvPath     string
	Verbose     bool
}

// runMode is the execution mode picked from the CLI surface.
type runMode int

const (
	modeNone runMode = iota
	modeOneShot
	modeInteractive
)

// parseCLI parses args into cliOptions using a dedicated FlagSet so tests
// can drive it.
func parseCLI(name string, args []string) (cliOptions, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	interactive := fs.Bool("interactive", false, "Start interactive chat loop")
	prompt := fs.String("prompt", "", "Run a one-shot prompt and exit")
	configPath := fs.String("config", "", "Path to a YAML settings file (default: discover "+configpkg.DefaultSettingsFile+" in the working directory)")
	envPath := fs.String("env", ".env", "Path to a dotenv file; ignored when missing")
	verbose := fs.Bool("verbose", false, "Verbose diagnostics on stderr")
	if err := fs.Parse(args); err != nil {
		return cliOptions{}, err
	}

	return cliOptions{
		Interactive: *interactive,
		Prompt:      *prompt,
		ConfigPath:  *configPath,
		EnvPath:     *envPath,
		Verbose:     *verbose,
	}, nil
}

// pickMode selects exactly one execution mode. The interactive switch wins
// over a supplied prompt; neither set means no mode.
func pickMode(opts cliOptions) runMode {
	switch {
	case opts.Interactive:
		return modeInteractive
	case opts.Prompt != "":
		return modeOneShot
	default:
		return modeNone
	}
}

// loadRuntimeConfig populates the environment from the dotenv file and
// resolves the process configuration.
func loadRuntimeConfig(opts cliOptions) (configpkg.Config, error) {
	if err := loadDotEnv(opts.EnvPath); err != nil {
		return configpkg.Config{}, err
	}
	cfg, err := configpkg.Load(opts.ConfigPath)
	if err != nil {
		return configpkg.Config{}, err
	}
	cfg.Verbose = opts.Verbose
	return cfg, nil
}

// loadDotEnv loads a dotenv file into the process environment. A missing
// file is not an error.
func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}
