package rallylog

import (
	"errors"
	"fmt"
	"io"
)

// MissingFileError is returned when the log path does not exist.
type MissingFileError struct {
	Path string
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("%s not found", e.Path)
}

// DecodeError is returned when the log content is not a JSON array.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// IOError is returned when the log exists but cannot be read.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("failed to read %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Report writes the user-facing message for a recognised load failure and
// reports whether err was one. Any other error is left to the caller.
func Report(w io.Writer, err error) (bool, error) {
	var (
		missing *MissingFileError
		decode  *DecodeError
		ioErr   *IOError
		msg     string
	)
	switch {
	case err == nil:
		return false, nil
	case errors.As(err, &missing):
		msg = fmt.Sprintf("Error: %s not found.", missing.Path)
	case errors.As(err, &decode):
		msg = fmt.Sprintf("Error parsing JSON: %v", decode.Err)
	case errors.As(err, &ioErr):
		msg = fmt.Sprintf("Error reading %s: %v", ioErr.Path, ioErr.Err)
	default:
		return false, nil
	}
	if _, werr := fmt.Fprintln(w, msg); werr != nil {
		return true, fmt.Errorf("failed to write error message: %w", werr)
	}
	return true, nil
}
