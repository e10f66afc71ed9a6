// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package letter

import (
	"errors"
	"fmt"
)

// ErrGeneration matches every GenerationError with errors.Is.
var ErrGeneration = errors.New("document generation failed")

// GenerationError reports that the document could not be serialized. It
// wraps the underlying failure unchanged; no partial document is returned.
type GenerationError struct {
	Cause error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%v: %v", ErrGeneration, e.Cause)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is ErrGeneration.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGeneration
}
