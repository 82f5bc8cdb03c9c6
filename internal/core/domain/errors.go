package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNoteNotFound    = errors.New("note not found")
	ErrTaskNotFound    = errors.New("task not found")
	ErrFileMissing     = errors.New("file missing from disk")
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrTemporary       = errors.New("temporary failure")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}
