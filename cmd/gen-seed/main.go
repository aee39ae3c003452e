package main

import (
	"context"
	"flag"
	"os"
	"runtime"

	"github.com/okian/solvemap/internal/seedgen"
	"github.com/okian/solvemap/pkg/logger"
)

// Default configuration constants.
const (
	defaultNumProblems = 500
	defaultDays        = 365
	defaultWorkers     = 2 // multiplier for runtime.NumCPU()
)

func main() {
	var (
		numProblems = flag.Int("problems", defaultNumProblems, "Number of solved problems to generate")
		days        = flag.Int("days", defaultDays, "Span of days, ending today, to spread solves over")
		workers     = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		outputFile  = flag.String("output", "", "Output file (default: seed_TIMESTAMP.json)")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("Failed to initialize logging: " + err.Error() + "\n")
		return
	}

	config := &seedgen.Config{
		NumProblems: *numProblems,
		Days:        *days,
		Workers:     *workers,
		OutputFile:  *outputFile,
	}

	if err := seedgen.Run(context.Background(), config); err != nil {
		os.Stderr.WriteString("Generation failed: " + err.Error() + "\n")
		return
	}
}
