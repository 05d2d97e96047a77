package input

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// StreamBlankLines is the number of blank lines that ends stream input: the
// first separates designs from flowers, the second ends the input.
const StreamBlankLines = 2

// MaxLineBytes bounds a single input line.
const MaxLineBytes = 16 << 20

// ReadLines returns the trimmed lines of r. When stopAfterBlanks is positive,
// reading stops once that many blank lines have been seen; the blank lines are
// kept in the result.
func ReadLines(r io.Reader, stopAfterBlanks int) ([]string, error) {
	var (
		lines  []string
		blanks int
	)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineBytes)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		lines = append(lines, line)
		if line == "" {
			blanks++
		}
		if stopAfterBlanks > 0 && blanks == stopAfterBlanks {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read lines: %w", err)
	}
	return lines, nil
}

// Acquire reads the whole file at path, or stdin up to the second blank line
// when path is empty. It returns ErrEmptyInput when every line is blank.
func Acquire(path string, stdin io.Reader) ([]string, error) {
	var (
		lines []string
		err   error
	)
	if path == "" {
		lines, err = ReadLines(stdin, StreamBlankLines)
	} else {
		lines, err = readFile(path)
	}
	if err != nil {
		return nil, err
	}

	for _, line := range lines {
		if line != "" {
			return lines, nil
		}
	}
	return nil, ErrEmptyInput
}

func readFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	return ReadLines(f, 0)
}
