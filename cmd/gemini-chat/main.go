// Command gemini-chat is a minimal command-line chat client for Google
// Gemini, spoken through Google's OpenAI-compatible endpoint.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/botcampus-ai/gemini-chat-go/pkg/agent"
	loggerpkg "github.com/botcampus-ai/gemini-chat-go/pkg/logger"
)

// main is the program entry point.
func main() {
	opts, err := parseCLI("gemini-chat", os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	cfg, err := loadRuntimeConfig(opts)
	if err != nil {
		fatal(err)
	}

	var appLogger loggerpkg.Logger = loggerpkg.NopLogger{}
	if cfg.Verbose {
		appLogger = loggerpkg.NewWriterLogger(os.Stderr)
	}

	assistant, err := agent.New("assistant", cfg, agent.WithLogger(appLogger))
	if err != nil {
		fatal(err)
	}

	switch pickMode(opts) {
	case modeInteractive:
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if err := runREPL(ctx, assistant, os.Stdin, os.Stdout); err != nil {
			fatal(err)
		}
	case modeOneShot:
		text, err := runOneShot(assistant, opts.Prompt)
		if err != nil {
			fatal(err)
		}
		fmt.Println(text)
	default:
		printUsage(os.Stdout)
		os.Exit(1)
	}
}

func fatal(err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func printUsage(out io.Writer) {
	_, _ = fmt.Fprintln(out, "No mode selected.")
	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, "Examples:")
	_, _ = fmt.Fprintln(out, "  gemini-chat -interactive")
	_, _ = fmt.Fprintln(out, `  gemini-chat -prompt "Explain RAG in simple terms."`)
}
