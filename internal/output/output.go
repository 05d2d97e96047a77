// Package output writes encoded bouquets to the result file and the console.
package output

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"go.uber.org/multierr"
)

// DefaultPath is where results are written when no path is configured.
const DefaultPath = "output.txt"

// Writer writes one encoded bouquet per line, large bouquets first, to a file
// and to a console stream.
type Writer struct {
	path    string
	console io.Writer
}

// NewWriter creates a Writer. An empty path falls back to DefaultPath and a
// nil console disables console output.
func NewWriter(path string, console io.Writer) *Writer {
	if path == "" {
		path = DefaultPath
	}
	return &Writer{path: path, console: console}
}

// Path returns the result file path.
func (w *Writer) Path() string {
	return w.path
}

// Write creates or truncates the result file and writes large then small
// tokens to it and to the console.
func (w *Writer) Write(large, small []string) (err error) {
	f, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()

	buf := bufio.NewWriter(f)
	err = multierr.Append(err, writeTokens(buf, large, small))
	err = multierr.Append(err, buf.Flush())

	if w.console != nil {
		err = multierr.Append(err, writeTokens(w.console, large, small))
	}
	return err
}

func writeTokens(dst io.Writer, groups ...[]string) error {
	for _, group := range groups {
		for _, token := range group {
			if _, err := fmt.Fprintln(dst, token); err != nil {
				return err
			}
		}
	}
	return nil
}
