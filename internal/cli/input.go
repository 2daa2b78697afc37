package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
// In tests you can replace it with a stub to avoid touching the terminal.
var readPassword = term.ReadPassword

// GetSimpleText prints a prompt to w and reads a single line of input from
// reader. The trailing newline is trimmed. If EOF occurs after some input
// was read, the partial line is returned.
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+": "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetPassword prints the given prompt to w and reads a password from the
// user's terminal without echo. A newline is printed after the read to keep
// the UI tidy.
func GetPassword(prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+": "); err != nil {
		return "", err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(pw)), nil
}

// Confirm asks a yes/no question and reports whether the user answered "y"
// (case-insensitive). Anything else counts as no.
func Confirm(reader *bufio.Reader, prompt string, w io.Writer) bool {
	answer, err := GetSimpleText(reader, prompt+" (y/n)", w)
	if err != nil {
		return false
	}
	return strings.EqualFold(answer, "y")
}

// MenuChoice prompts until the user enters a number between low and high
// inclusive, and returns the validated choice. A false second return means
// the input stream ended.
func MenuChoice(reader *bufio.Reader, prompt string, low, high int, w io.Writer) (int, bool) {
	for {
		line, err := GetSimpleText(reader, prompt, w)
		if err != nil {
			return 0, false
		}
		var n int
		if _, convErr := fmt.Sscanf(line, "%d", &n); convErr != nil || n < low || n > high {
			fmt.Fprintf(w, "Invalid option. Please enter a number between %d and %d.\n", low, high)
			continue
		}
		return n, true
	}
}
