package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrInputClosed is returned once the input stream is exhausted.
var ErrInputClosed = errors.New("input closed")

const (
	errPrefix     = " *** Error:"
	errOutOfRange = "data entered is invalid/outside of range"
)

// Console reads trimmed lines from a reader and writes prompts to a writer.
type Console struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewConsole wraps the given input and output streams.
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{
		in:  bufio.NewScanner(in),
		out: out,
	}
}

// Printf writes formatted output.
func (c *Console) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(c.out, format, args...)
}

// Println writes its arguments followed by a newline.
func (c *Console) Println(args ...any) {
	_, _ = fmt.Fprintln(c.out, args...)
}

// Error writes an error message in the shell's error style.
func (c *Console) Error(message string) {
	c.Printf("%s %s.\n", errPrefix, message)
}

// ReadLine reads one line with surrounding whitespace removed.
func (c *Console) ReadLine() (string, error) {
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", ErrInputClosed
	}
	return strings.TrimSpace(c.in.Text()), nil
}

// Halt waits for the user to press return.
func (c *Console) Halt() error {
	c.Printf("Press return to continue")
	_, err := c.ReadLine()
	return err
}

// ReadInt prompts until the user enters an integer between min and max.
func (c *Console) ReadInt(prompt string, min, max int) (int, error) {
	for {
		c.Printf("%s", prompt)
		line, err := c.ReadLine()
		if err != nil {
			return 0, err
		}
		value, err := strconv.Atoi(line)
		if err == nil && value >= min && value <= max {
			return value, nil
		}
		c.Error(errOutOfRange)
	}
}
