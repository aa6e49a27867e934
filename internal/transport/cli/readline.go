package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/sandevgo/lyla/internal/service/conversation"
	"github.com/sandevgo/lyla/pkg/log"
)

const exitCommand = "exit"

type lineReader interface {
	Readline() (string, error)
	Close() error
}

// ReadLine is the terminal front end: one question per line, one reply per
// turn, strictly sequential.
type ReadLine struct {
	session *conversation.Session
	rl      lineReader
	out     io.Writer
}

func NewReadLine(session *conversation.Session) (*ReadLine, error) {
	prompt := session.Profile().Prompt
	if prompt == "" {
		prompt = "You: "
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		InterruptPrompt: "^C",
		EOFPrompt:       exitCommand,
	})
	if err != nil {
		return nil, err
	}

	return newReadLine(session, rl, rl.Stdout()), nil
}

func newReadLine(session *conversation.Session, rl lineReader, out io.Writer) *ReadLine {
	return &ReadLine{
		session: session,
		rl:      rl,
		out:     out,
	}
}

func (r *ReadLine) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	logger.Debug().Msg("terminal chat started")

	profile := r.session.Profile()
	if profile.Greeting != "" {
		fmt.Fprintln(r.out, profile.Greeting)
	}

	for {
		// Check context before blocking read
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line, err := r.rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				if len(line) == 0 {
					return nil // Exit on Ctrl+C
				}
				continue
			}
			if errors.Is(err, io.EOF) || ctx.Err() != nil {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if strings.EqualFold(line, exitCommand) {
			return nil
		}

		res, ok := r.session.Submit(ctx, line)
		if !ok {
			continue
		}
		fmt.Fprintf(r.out, "%s: %s\n", profile.AssistantLabel, r.session.Text(res))
	}
}

func (r *ReadLine) Shutdown(ctx context.Context) error {
	if r.rl != nil {
		return r.rl.Close()
	}
	return nil
}
