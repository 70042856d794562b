package sources

import (
	"bufio"
	"errors"
	"fmt"
	"os"
)

// ErrUnreadable is returned when a source file can't be opened or read
var ErrUnreadable = errors.New("source unreadable")

// maxLineSize bounds a single line; bufio.Scanner's default of 64KiB is too
// small for wide tables
const maxLineSize = 16 * 1024 * 1024

// File reads a text file line by line
type File struct {
	Path string
}

// Scan calls fn for every line of the file, without the line terminator.
// It stops at the first error returned by fn.
func (f *File) Scan(fn func(line string) error) error {
	if f.Path == "" {
		return fmt.Errorf("%w: path is required", ErrUnreadable)
	}

	file, err := os.Open(f.Path)
	if err != nil {
		return fmt.Errorf("%w: failed to open %s: %v", ErrUnreadable, f.Path, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for scanner.Scan() {
		if err := fn(scanner.Text()); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("%w: failed to read %s: %v", ErrUnreadable, f.Path, err)
	}

	return nil
}
