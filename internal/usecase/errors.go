package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")

	// Resolution and ingestion failures. None of these are retried by
	// the core; every one aborts the current record and surfaces to
	// the caller.
	ErrMissingRequiredField = errors.New("missing required field")
	ErrUnknownCountry       = errors.New("unknown country")
	ErrAmbiguousName        = errors.New("ambiguous name")
	ErrAmbiguousMatch       = errors.New("ambiguous match")
	ErrNoMatchFound         = errors.New("no match found")
	ErrUpstream             = errors.New("upstream source error")
)
