// Package seedgen generates synthetic solved-problem seed files for local
// development and load experiments. The output JSON is the same shape the
// service accepts through its seed import on startup.
package seedgen

import (
	"errors"
)

// Config holds the generation parameters.
type Config struct {
	// NumProblems is how many solved problems to generate.
	NumProblems int

	// Days is the span, ending today, that solve timestamps are spread over.
	Days int

	// Workers is the number of concurrent generation workers.
	Workers int

	// OutputFile is the JSON destination; empty means a timestamped name.
	OutputFile string
}

// Validate checks the configuration for obvious mistakes.
func (c *Config) Validate() error {
	if c.NumProblems <= 0 {
		return errors.New("num problems must be positive")
	}
	if c.Days <= 0 {
		return errors.New("days must be positive")
	}
	if c.Workers <= 0 {
		return errors.New("workers must be positive")
	}
	return nil
}
