package session

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/go-faster/errors"
	"golang.org/x/term"
)

// ErrInterrupted is returned by a LineReader when the user presses Ctrl+C.
var ErrInterrupted = errors.New("interrupted")

// LineReader shows prompt and blocks until one line of input is available.
// It returns io.EOF when input is exhausted.
type LineReader interface {
	ReadLine(prompt string) (string, error)
}

type Console interface {
	LineReader
	io.Closer
}

// NewConsole picks readline for an interactive terminal and a plain
// reader for piped input.
func NewConsole(in *os.File, out io.Writer, historyFile string) (Console, error) {
	if !term.IsTerminal(int(in.Fd())) {
		return plainConsole{NewPlainReader(in, out)}, nil
	}
	rl, err := readline.NewEx(&readline.Config{
		Prompt:            "> ",
		HistoryFile:       historyFile,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
		Stdin:             in,
		Stdout:            out,
	})
	if err != nil {
		return nil, errors.Wrap(err, "init readline")
	}
	return &readlineConsole{rl: rl}, nil
}

type readlineConsole struct {
	rl *readline.Instance
}

func (c *readlineConsole) ReadLine(prompt string) (string, error) {
	c.rl.SetPrompt(prompt)
	line, err := c.rl.Readline()
	if err != nil {
		if errors.Is(err, readline.ErrInterrupt) {
			return "", ErrInterrupted
		}
		return "", err
	}
	return line, nil
}

func (c *readlineConsole) Close() error { return c.rl.Close() }

// maxLineBytes caps how much of a single input line is kept; the rest of an
// overlong line is read and dropped.
const maxLineBytes = 1024 * 1024

// PlainReader reads newline-terminated lines from any io.Reader and writes
// prompts to out.
type PlainReader struct {
	r   *bufio.Reader
	out io.Writer
}

func NewPlainReader(in io.Reader, out io.Writer) *PlainReader {
	return &PlainReader{r: bufio.NewReader(in), out: out}
}

func (r *PlainReader) ReadLine(prompt string) (string, error) {
	if prompt != "" {
		fmt.Fprint(r.out, prompt)
	}
	var line []byte
	for {
		chunk, isPrefix, err := r.r.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				if len(line) > 0 {
					return string(line), nil
				}
				return "", io.EOF
			}
			return "", errors.Wrap(err, "read input")
		}
		if room := maxLineBytes - len(line); room > 0 {
			line = append(line, chunk[:min(len(chunk), room)]...)
		}
		if !isPrefix {
			return string(line), nil
		}
	}
}

type plainConsole struct {
	*PlainReader
}

func (plainConsole) Close() error { return nil }
