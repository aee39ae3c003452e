package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound     = errors.New("problem not found")
	ErrStoreClosed  = errors.New("store closed")
	ErrUnknownStore = errors.New("unknown store kind")
)
