package chat

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Console owns line-oriented terminal I/O for the conversation. Its Confirm
// method doubles as the knowledge resolver's confirmation policy so that the
// yes/no mechanism stays out of resolution logic.
type Console struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{
		scanner: bufio.NewScanner(in),
		out:     out,
	}
}

// Prompt prints msg and reads one line. ok is false once input is exhausted.
func (c *Console) Prompt(msg string) (line string, ok bool) {
	fmt.Fprint(c.out, msg)
	if !c.scanner.Scan() {
		return "", false
	}
	return c.scanner.Text(), true
}

// Confirm asks a yes/no question; only an explicit "yes" or "y" accepts.
func (c *Console) Confirm(msg string) bool {
	answer, ok := c.Prompt(msg + " (yes/no): ")
	if !ok {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "yes" || answer == "y"
}

func (c *Console) Println(args ...interface{}) {
	fmt.Fprintln(c.out, args...)
}

func (c *Console) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out, format, args...)
}
