package rangedoppler

import "errors"

var (
	// ErrInsufficientChirps reports a chirp matrix with fewer rows than the
	// requested cancellation passes allow. This is a configuration error and
	// is surfaced before any processing starts.
	ErrInsufficientChirps = errors.New("rangedoppler: not enough chirps for requested MTI mode")

	// ErrRaggedMatrix reports chirp rows of unequal length.
	ErrRaggedMatrix = errors.New("rangedoppler: chirp rows must have identical length")

	// ErrEmptyMatrix reports a chirp matrix with no rows or empty rows.
	ErrEmptyMatrix = errors.New("rangedoppler: chirp matrix must not be empty")
)
