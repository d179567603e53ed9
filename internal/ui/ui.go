// Released under an MIT license. See LICENSE.

// Package ui provides an interactive line editor for tiny.
package ui

import (
	"errors"
	"io"
	"strings"

	"github.com/peterh/liner"

	"github.com/michaelmacinnis/tiny/internal/system/history"
	"github.com/michaelmacinnis/tiny/pkg/scheme"
)

const (
	prompt       = "ts> "
	continuation = "... "

	// Characters that end the word being completed.
	breaks = "()'`,\" \t"
)

// Evaluator is the interface for things that want to process expressions
// entered by the user.
type Evaluator interface {
	// Completions returns the names that start with prefix.
	Completions(prefix string) []string
	// Evaluate loads src and reports whether the session should continue.
	Evaluate(src string) bool
}

// Run reads expressions until end of input or until the Evaluator asks
// to stop. Input lines are gathered until every list and string is closed.
func Run(e Evaluator) error {
	cli := liner.NewLiner()

	defer func() {
		_ = history.Save(cli.WriteHistory)
		_ = cli.Close()
	}()

	_ = history.Load(cli.ReadHistory)

	cli.SetCtrlCAborts(true)
	cli.SetTabCompletionStyle(liner.TabPrints)
	cli.SetWordCompleter(completer(e))

	var pending strings.Builder

	for {
		p := prompt
		if pending.Len() > 0 {
			p = continuation
		}

		line, err := cli.Prompt(p)

		switch {
		case err == nil:
		case errors.Is(err, liner.ErrPromptAborted):
			pending.Reset()

			continue
		case errors.Is(err, io.EOF):
			return nil
		default:
			return err
		}

		pending.WriteString(line)
		pending.WriteByte('\n')

		src := pending.String()
		if scheme.Incomplete(src) {
			continue
		}

		pending.Reset()

		entry := strings.TrimSpace(src)
		if entry == "" {
			continue
		}

		cli.AppendHistory(entry)

		if !e.Evaluate(src) {
			return nil
		}
	}
}

func completer(e Evaluator) liner.WordCompleter {
	return func(line string, pos int) (string, []string, string) {
		head, tail := line[:pos], line[pos:]

		start := strings.LastIndexAny(head, breaks) + 1

		word := head[start:]
		if word == "" {
			return head, nil, tail
		}

		return head[:start], e.Completions(word), tail
	}
}
