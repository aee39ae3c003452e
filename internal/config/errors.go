package config

import (
	"errors"
)

// Sentinel kinds for configuration errors. Callers branch with errors.Is;
// the wrapped message names the offending key.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
)
