package repository

import "errors"

var (
	ErrNotFound = errors.New("catalog record not found")

	ErrInvalidID = errors.New("invalid catalog ID format")
)
