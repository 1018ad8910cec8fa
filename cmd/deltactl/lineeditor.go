// cmd/deltactl/lineeditor.go
package main

import (
	"bufio"
	"io"
	"os"
	"path/filepath"

	"github.com/chzyer/readline"
	"golang.org/x/term"
)

const prompt = "delta> "

type lineReader interface {
	Readline() (string, error)
}

type lineEditor interface {
	lineReader
	Close() error
}

// newLineEditor returns a readline editor on a terminal and a plain
// line scanner otherwise (pipes, scripts).
func newLineEditor() lineEditor {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return &scanEditor{sc: bufio.NewScanner(os.Stdin)}
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     historyFile(),
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return &scanEditor{sc: bufio.NewScanner(os.Stdin)}
	}
	return rl
}

func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".deltactl_history")
}

type scanEditor struct {
	sc *bufio.Scanner
}

func (e *scanEditor) Readline() (string, error) {
	if !e.sc.Scan() {
		if err := e.sc.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return e.sc.Text(), nil
}

func (e *scanEditor) Close() error { return nil }
