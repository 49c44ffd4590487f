package key

import (
	"errors"
	"fmt"
)

// ErrInvalidChar indicates a character notification carried a value that
// is not a Unicode scalar value. It points at a platform/translator
// mismatch, never at user input.
var ErrInvalidChar = errors.New("invalid character code")

// CharError records the offending character code.
type CharError struct {
	Code uint64
}

func (e *CharError) Error() string {
	return fmt.Sprintf("%v: U+%04X", ErrInvalidChar, e.Code)
}

// Is matches ErrInvalidChar.
func (e *CharError) Is(target error) bool {
	return target == ErrInvalidChar
}
