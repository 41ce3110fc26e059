package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/sandevgo/bowen/internal/core"
	"github.com/sandevgo/bowen/internal/service/ui"
	"github.com/sandevgo/bowen/pkg/log"
)

type ReadLine struct {
	conv   core.Conversation
	router core.CmdRouter
	rl     *readline.Instance
	stop   context.CancelFunc
}

// NewReadLine builds the REPL. stop is called when the user leaves so the
// rest of the app shuts down with it.
func NewReadLine(conv core.Conversation, router core.CmdRouter, historyFile string, stop context.CancelFunc) (*ReadLine, error) {
	if err := os.MkdirAll(filepath.Dir(historyFile), 0755); err != nil {
		return nil, fmt.Errorf("failed to create runtime directory: %w", err)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "⚖ > ",
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    completer(router),
	})
	if err != nil {
		return nil, err
	}

	return &ReadLine{
		conv:   conv,
		router: router,
		rl:     rl,
		stop:   stop,
	}, nil
}

func completer(router core.CmdRouter) readline.AutoCompleter {
	items := make([]readline.PrefixCompleterInterface, 0)
	for _, cmd := range router.ListCommands() {
		items = append(items, readline.PcItem("/"+cmd.Name()))
	}
	return readline.NewPrefixCompleter(items...)
}

func (r *ReadLine) Start(ctx context.Context) error {
	if r.stop != nil {
		defer r.stop()
	}

	logger := log.FromCtx(ctx)
	logger.Debug().Msg("readline chat started")

	out := r.rl.Stdout()
	fmt.Fprintln(out, ui.Banner(len(r.conv.Messages())))
	if len(r.conv.Messages()) == 0 {
		fmt.Fprintln(out, ui.DescStyle.Render("Try: "+core.ExampleQuestions[0]))
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line, err := r.rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				if len(line) == 0 {
					return nil
				}
				continue
			} else if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "exit" || line == "quit" {
			return nil
		}
		if line == "" {
			continue
		}

		if reply, ok := r.router.Execute(ctx, r.conv, line); ok {
			fmt.Fprintln(out, ui.Markdown(reply))
			continue
		}

		r.ask(ctx, out, line)
	}
}

func (r *ReadLine) ask(ctx context.Context, out io.Writer, question string) {
	fmt.Fprintln(out, ui.DescStyle.Render("Searching legislation..."))

	res := r.conv.Send(ctx, question)
	switch {
	case !res.Accepted:
		fmt.Fprintln(out, ui.DescStyle.Render("Still waiting for the previous answer."))
	case res.Failed():
		fmt.Fprintln(out, ui.Error(res.Error, res.RetryAfter))
	case res.Answer != nil:
		fmt.Fprintln(out, ui.Answer(*res.Answer))
	}
}

func (r *ReadLine) Shutdown(ctx context.Context) error {
	if r.rl != nil {
		return r.rl.Close()
	}
	return nil
}
