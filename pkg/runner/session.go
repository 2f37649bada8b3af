package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// AskFunc answers a single user question.
type AskFunc func(ctx context.Context, question string) (string, error)

// Session is an interactive read-ask-print loop over a question
// answerer. It stops on EOF, an exit command or context cancellation.
// Errors from Ask are printed and the loop continues; only I/O and
// context errors end the session.
type Session struct {
	In  io.Reader
	Out io.Writer
	Ask AskFunc
}

func (s *Session) Run(ctx context.Context) error {
	prompt := color.New(color.FgCyan, color.Bold).SprintFunc()
	answer := color.New(color.FgGreen).SprintFunc()
	failed := color.New(color.FgRed).SprintFunc()

	scanner := bufio.NewScanner(s.In)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprintf(s.Out, "%s ", prompt("you>"))
		if !scanner.Scan() {
			fmt.Fprintln(s.Out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			return nil
		}
		reply, err := s.Ask(ctx, line)
		if err != nil {
			fmt.Fprintf(s.Out, "%s %v\n", failed("error:"), err)
			continue
		}
		fmt.Fprintf(s.Out, "%s %s\n", answer("saku>"), reply)
	}
}
