package model

import (
	"errors"
	"fmt"
)

// ErrValidation tags request validation failures so boundaries can tell
// bad input apart from internal failures.
var ErrValidation = errors.New("invalid request")

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}
