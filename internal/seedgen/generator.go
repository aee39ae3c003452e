package seedgen

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/okian/solvemap/internal/domain/model"
	"github.com/okian/solvemap/pkg/logger"
)

// Constants for random number generation.
const (
	randomFloatDivisor = 1000000
	profileDivisor     = 8
	secondsPerDay      = 86400
)

// Difficulty ranges per solver profile. The distribution is skewed toward
// easier problems, matching how real solve histories tend to look.
const (
	warmupMin      = 800
	warmupRange    = 400
	easyMin        = 1200
	easyRange      = 200
	mediumMin      = 1400
	mediumRange    = 200
	upperMediumMin = 1600
	upperMediumRng = 300
	hardMin        = 1900
	hardRange      = 200
	veryHardMin    = 2100
	veryHardRange  = 300
	eliteMin       = 2400
	eliteRange     = 600
	fullMin        = 800
	fullRange      = 2200
)

// Profile cases for difficulty generation.
const (
	caseWarmup = iota
	caseEasy
	caseEasyAgain
	caseMedium
	caseUpperMedium
	caseHard
	caseVeryHard
	caseElite
)

var tagPool = []string{
	"implementation", "math", "greedy", "dp", "graphs",
	"binary search", "sortings", "two pointers", "strings", "data structures",
}

// getRandomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

// getRandomInt returns a random int in [0, max).
func getRandomInt(max int64) int64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(max))
	return n.Int64()
}

// Generate creates the configured number of solved problems with unique URLs.
func Generate(ctx context.Context, config *Config) ([]model.SolvedProblem, error) {
	logger.Get().Info(ctx, "generating solved problems", logger.Int("numProblems", config.NumProblems))

	problems := make([]model.SolvedProblem, config.NumProblems)

	type genResult struct {
		index   int
		problem model.SolvedProblem
		err     error
	}

	resultChan := make(chan genResult, config.NumProblems)

	workerCount := min(config.Workers, config.NumProblems)
	perWorker := config.NumProblems / workerCount

	now := time.Now().UTC()
	for worker := 0; worker < workerCount; worker++ {
		start := worker * perWorker
		end := start + perWorker
		if worker == workerCount-1 {
			end = config.NumProblems
		}

		go func(start, end int) {
			for i := start; i < end; i++ {
				select {
				case <-ctx.Done():
					resultChan <- genResult{index: i, err: ctx.Err()}
					return
				default:
					resultChan <- genResult{index: i, problem: generateSingle(i, now, config.Days)}
				}
			}
		}(start, end)
	}

	for i := 0; i < config.NumProblems; i++ {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("context cancelled during generation: %w", ctx.Err())
		case result := <-resultChan:
			if result.err != nil {
				return nil, fmt.Errorf("failed to generate problem %d: %w", result.index, result.err)
			}
			problems[result.index] = result.problem
		}
	}

	logger.Get().Info(ctx, "generated problems successfully", logger.Int("count", len(problems)))
	return problems, nil
}

// generateSingle creates one solved problem. The index keeps the URL unique.
func generateSingle(index int, now time.Time, days int) model.SolvedProblem {
	difficulty := generateVariedDifficulty()

	contest := 1000 + index/10
	letter := string(rune('A' + index%10))
	url := fmt.Sprintf("https://codeforces.com/contest/%d/problem/%s", contest, letter)

	// Spread solves over the configured window, ending now.
	offset := getRandomInt(int64(days) * secondsPerDay)
	solvedAt := now.Unix() - offset

	tagCount := 1 + getRandomInt(3)
	tags := make([]string, 0, tagCount)
	for len(tags) < int(tagCount) {
		t := tagPool[getRandomInt(int64(len(tagPool)))]
		if !contains(tags, t) {
			tags = append(tags, t)
		}
	}

	return model.SolvedProblem{
		ProblemURL: url,
		Difficulty: strconv.Itoa(difficulty),
		Tags:       strings.Join(tags, ", "),
		SolvedAt:   model.FormatSolvedAt(solvedAt),
	}
}

// generateVariedDifficulty creates a rating with a varied distribution.
func generateVariedDifficulty() int {
	switch getRandomInt(profileDivisor) {
	case caseWarmup:
		return warmupMin + int(getRandomFloat()*warmupRange)
	case caseEasy, caseEasyAgain:
		return easyMin + int(getRandomFloat()*easyRange)
	case caseMedium:
		return mediumMin + int(getRandomFloat()*mediumRange)
	case caseUpperMedium:
		return upperMediumMin + int(getRandomFloat()*upperMediumRng)
	case caseHard:
		return hardMin + int(getRandomFloat()*hardRange)
	case caseVeryHard:
		return veryHardMin + int(getRandomFloat()*veryHardRange)
	case caseElite:
		return eliteMin + int(getRandomFloat()*eliteRange)
	default:
		return fullMin + int(getRandomFloat()*fullRange)
	}
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
