package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/botcampus-ai/gemini-chat-go/pkg/agent"
)

// chatAgent is the slice of *agent.Assistant the execution modes need.
type chatAgent interface {
	Run(ctx context.Context, input string) (agent.Reply, error)
}

// runOneShot submits a single prompt as one turn and returns the reply text.
func runOneShot(a chatAgent, prompt string) (string, error) {
	reply, err := a.Run(context.Background(), prompt)
	if err != nil {
		return "", err
	}
	return reply.Text(), nil
}

// runREPL reads user lines until EOF, interrupt, or an exit sentinel,
// submitting each line as one turn to the same assistant. ctx gates the
// input wait only; the in-flight model call is not cancelable, so an
// interrupt delivered mid-call takes effect at the next input wait.
func runREPL(ctx context.Context, a chatAgent, in io.Reader, out io.Writer) error {
	if a == nil {
		return fmt.Errorf("assistant is required")
	}
	if in == nil {
		return fmt.Errorf("input reader is required")
	}
	if out == nil {
		out = io.Discard
	}
	if ctx == nil {
		ctx = context.Background()
	}

	_, _ = fmt.Fprintln(out, "Interactive chat started. Type 'exit' or 'quit' to leave.")

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		_, _ = fmt.Fprint(out, "\nYou: ")

		var line string
		var open bool
		select {
		case <-ctx.Done():
			_, _ = fmt.Fprintln(out, "\nExiting.")
			return nil
		case line, open = <-lines:
		}
		if !open {
			select {
			case err := <-scanErr:
				if err != nil {
					return fmt.Errorf("read input: %w", err)
				}
			default:
			}
			_, _ = fmt.Fprintln(out, "\nExiting.")
			return nil
		}

		input := strings.TrimSpace(line)
		switch strings.ToLower(input) {
		case "exit", "quit":
			_, _ = fmt.Fprintln(out, "Goodbye.")
			return nil
		}

		reply, err := a.Run(context.Background(), input)
		if err != nil {
			return fmt.Errorf("turn failed: %w", err)
		}
		_, _ = fmt.Fprintf(out, "\nAssistant: %s\n", reply.Text())
	}
}
