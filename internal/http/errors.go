package http

import (
	"errors"
	"fmt"
)

var (
	errInvalidBody     = errors.New("request body must be a JSON object")
	errMissingFeatures = errors.New("missing 'features' in request body")
)

type featureValueError struct {
	index int
	err   error
}

func (e *featureValueError) Error() string {
	return fmt.Sprintf("feature %d: %v", e.index, e.err)
}

func (e *featureValueError) Unwrap() error {
	return e.err
}
