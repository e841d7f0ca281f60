package utils

import (
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// ReadFromStdin reads all content from standard input
func ReadFromStdin() (string, error) {
	return ReadFrom(os.Stdin)
}

// ReadFrom reads all content from f. Terminals and empty regular files
// return "" instead of blocking.
func ReadFrom(f *os.File) (string, error) {
	if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
		return "", nil
	}

	stat, err := f.Stat()
	if err != nil {
		return "", err
	}
	if stat.Mode().IsRegular() && stat.Size() == 0 {
		return "", nil
	}

	bytes, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(bytes)), nil
}
