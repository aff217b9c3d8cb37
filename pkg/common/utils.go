package common

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// IsFileSafe reports whether c may appear in a file name built from device text.
// Letters, digits and . ! ( ) + - _ are accepted.
func IsFileSafe(c byte) bool {
	switch {
	case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		return true
	}
	switch c {
	case '.', '!', '(', ')', '+', '-', '_':
		return true
	}
	return false
}

// FileSafeByte returns c, or a space when c is not file-safe
func FileSafeByte(c byte) byte {
	if IsFileSafe(c) {
		return c
	}
	return ' '
}

// TrimTrailingSpace removes trailing whitespace only
func TrimTrailingSpace(s string) string {
	return strings.TrimRight(s, " \t\r\n\v\f")
}

// StripExt returns the file name of path without directory and extension
func StripExt(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ReadAllBytes reads the whole reader, failing on empty input
func ReadAllBytes(reader io.Reader) ([]byte, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, FormatError(ErrFailedToReadInput, err)
	}
	if len(data) == 0 {
		return nil, errors.New(ErrEmptyInput)
	}
	return data, nil
}

// ReadInputFile loads a complete input file into memory
func ReadInputFile(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, FormatError(ErrFailedToReadInput, err)
	}
	defer file.Close()

	return ReadAllBytes(file)
}

// WriteOutputFile writes data to path, creating parent directories
func WriteOutputFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return FormatError(ErrFailedToCreateOutputDir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return FormatError(ErrFailedToCreateOutputFile, err)
	}
	return nil
}
