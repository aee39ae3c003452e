package service

import "errors"

// Sentinel kinds for service errors. The HTTP layer maps these to status
// codes; the wrapped message is the user-facing string.
var (
	ErrValidation = errors.New("validation failed")
	ErrFetch      = errors.New("fetch failed")
	ErrStore      = errors.New("store operation failed")
	ErrImportBusy = errors.New("an import is already in progress")
	ErrNoPreview  = errors.New("no fetched preview to commit")
)
