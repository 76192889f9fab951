package base

import "github.com/juju/errors"

// Sentinel errors of the engine. Call sites annotate them with context and
// callers match them with errors.Is.
var (
	// ErrEmptyInput is returned when a matrix or scheme is built from zero ratings.
	ErrEmptyInput = errors.New("empty input: no ratings supplied")
	// ErrDuplicateEntry is returned when two ratings collapse to the same (user, item) pair.
	ErrDuplicateEntry = errors.New("duplicate (user, item) rating")
	// ErrUnknownEntity is returned when a query references a user or item absent from the matrix.
	ErrUnknownEntity = errors.New("unknown user or item")
	// ErrInvalidParameter is returned for out-of-range parameters such as a non-positive
	// top-N size or a zero neighborhood.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrInsufficientData is returned when an evaluation scheme cannot keep a single
	// test user under the given-k constraint.
	ErrInsufficientData = errors.New("insufficient data for evaluation scheme")
)
