package fileio

import (
	"errors"
	"fmt"
	"os"
)

// ErrIO matches every *IOError via errors.Is.
var ErrIO = errors.New("io error")

// IOError reports a failed read or write of a document path.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

func (e *IOError) Is(target error) bool { return target == ErrIO }

// IsIOError reports whether err is (or wraps) an *IOError.
func IsIOError(err error) bool {
	var ioe *IOError
	return errors.As(err, &ioe)
}

// Read returns the whole file as text.
func Read(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", &IOError{Op: "read", Path: path, Err: err}
	}
	return string(b), nil
}

// Write overwrites path with content unconditionally.
func Write(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}
