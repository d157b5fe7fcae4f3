// Package prompt asks the user questions during runtime resolution.
package prompt

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"golang.org/x/term"
)

// ErrNoInput is returned when input ends before an answer is read.
var ErrNoInput = errors.New("no input")

// Prompter reads answers to interactive questions.
type Prompter interface {
	// Confirm asks a yes/no question. Only "y", in any case, is yes.
	Confirm(question string) (bool, error)
	// Ask reads one line of text, trimmed of surrounding whitespace.
	Ask(question string) (string, error)
}

// New returns a Terminal prompter when stdin is a terminal and a Line
// prompter over stdin otherwise.
func New() Prompter {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return NewTerminal()
	}
	return NewLine(os.Stdin, os.Stdout)
}

// IsYes reports whether an answer confirms.
func IsYes(answer string) bool {
	return strings.EqualFold(strings.TrimSpace(answer), "y")
}

// Line prompts on an io.Writer and reads answers line by line from an
// io.Reader. It reads one byte at a time so that input after the answer is
// left in the reader for whoever consumes it next.
type Line struct {
	in  io.Reader
	out io.Writer
}

// NewLine returns a Line prompter.
func NewLine(in io.Reader, out io.Writer) *Line {
	return &Line{in: in, out: out}
}

func (l *Line) Confirm(question string) (bool, error) {
	answer, err := l.Ask(question + " (y/n): ")
	if err != nil {
		return false, err
	}
	return IsYes(answer), nil
}

func (l *Line) Ask(question string) (string, error) {
	fmt.Fprint(l.out, question)
	line, err := readLine(l.in)
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if errors.Is(err, io.EOF) {
			return "", ErrNoInput
		}
		return "", fmt.Errorf("read answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// readLine reads up to and including the next '\n'.
func readLine(r io.Reader) (string, error) {
	var sb strings.Builder
	buf := make([]byte, 1)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			sb.WriteByte(buf[0])
			if buf[0] == '\n' {
				return sb.String(), nil
			}
		}
		if err != nil {
			return sb.String(), err
		}
	}
}

// Terminal reads answers with line editing.
type Terminal struct{}

// NewTerminal returns a Terminal prompter.
func NewTerminal() *Terminal {
	return &Terminal{}
}

func (t *Terminal) Confirm(question string) (bool, error) {
	answer, err := t.Ask(question + " (y/n): ")
	if err != nil {
		return false, err
	}
	return IsYes(answer), nil
}

func (t *Terminal) Ask(question string) (string, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          question,
		InterruptPrompt: "^C",
		EOFPrompt:       "",
	})
	if err != nil {
		return "", fmt.Errorf("initialize readline: %w", err)
	}
	defer rl.Close()

	line, err := rl.Readline()
	if err != nil {
		if err == readline.ErrInterrupt || err == io.EOF {
			return "", ErrNoInput
		}
		return "", fmt.Errorf("read answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// Canned answers questions from a fixed list, in order. It records every
// question it was asked.
type Canned struct {
	Answers []string
	Asked   []string
}

func (c *Canned) Confirm(question string) (bool, error) {
	answer, err := c.Ask(question)
	if err != nil {
		return false, err
	}
	return IsYes(answer), nil
}

func (c *Canned) Ask(question string) (string, error) {
	c.Asked = append(c.Asked, question)
	if len(c.Answers) == 0 {
		return "", ErrNoInput
	}
	answer := c.Answers[0]
	c.Answers = c.Answers[1:]
	return strings.TrimSpace(answer), nil
}
