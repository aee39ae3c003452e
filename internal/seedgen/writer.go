package seedgen

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/okian/solvemap/internal/domain/model"
	"github.com/okian/solvemap/pkg/logger"
)

// File permission constants.
const (
	seedFilePermission = 0600
)

// Run generates problems and writes them to the configured output file.
func Run(ctx context.Context, config *Config) error {
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	problems, err := Generate(ctx, config)
	if err != nil {
		return err
	}

	outputFile := config.OutputFile
	if outputFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		outputFile = "seed_" + timestamp + ".json"
	}

	if err := writeSeedFile(outputFile, problems); err != nil {
		return err
	}

	logger.Get().Info(ctx, "wrote seed file",
		logger.String("path", outputFile),
		logger.Int("problems", len(problems)))
	return nil
}

// writeSeedFile marshals problems as indented JSON.
func writeSeedFile(path string, problems []model.SolvedProblem) error {
	data, err := json.MarshalIndent(problems, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal problems: %w", err)
	}
	if err := os.WriteFile(path, data, seedFilePermission); err != nil {
		return fmt.Errorf("failed to write seed file: %w", err)
	}
	return nil
}
