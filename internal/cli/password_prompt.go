package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var (
	errPasswordMismatch = errors.New("passwords do not match")
	errPasswordEmpty    = errors.New("password is required")
)

// PromptNewPassword asks for a password twice on stdin with echo disabled.
func PromptNewPassword(stdin *os.File, out io.Writer) (string, error) {
	if stdin == nil {
		return "", errors.New("stdin unavailable")
	}

	reader := bufio.NewReader(stdin)
	first, err := promptHidden(stdin, reader, out, "New password: ")
	if err != nil {
		return "", err
	}
	second, err := promptHidden(stdin, reader, out, "Repeat password: ")
	if err != nil {
		return "", err
	}
	return confirmPassword(first, second)
}

func promptHidden(stdin *os.File, reader *bufio.Reader, out io.Writer, label string) (string, error) {
	fmt.Fprint(out, label)
	restore, err := disableEcho(stdin)
	if err != nil {
		return "", fmt.Errorf("disable terminal echo: %w", err)
	}
	line, readErr := readLine(reader)
	restore()
	fmt.Fprintln(out)
	return line, readErr
}

func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func confirmPassword(first string, second string) (string, error) {
	first = strings.TrimSpace(first)
	if first == "" {
		return "", errPasswordEmpty
	}
	if first != strings.TrimSpace(second) {
		return "", errPasswordMismatch
	}
	return first, nil
}
