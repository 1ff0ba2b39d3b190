package services

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrValidation       = errors.New("validation failed")
	ErrIncompleteConfig = errors.New("incomplete configuration")
)
