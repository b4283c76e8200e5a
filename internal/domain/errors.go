package domain

import "errors"

var (
	ErrCatalogMissing   = errors.New("catalog source missing")
	ErrCatalogMalformed = errors.New("catalog source malformed")
	ErrCatalogEmpty     = errors.New("catalog has no questions")
)
