package input

import (
	"fmt"

	"github.com/dshills/inputcore/internal/input/platform"
)

// TranslateError reports a notification the translator could not decode.
type TranslateError struct {
	Kind platform.Kind
	Err  error
}

func (e *TranslateError) Error() string {
	return fmt.Sprintf("translate %s: %v", e.Kind, e.Err)
}

func (e *TranslateError) Unwrap() error {
	return e.Err
}
