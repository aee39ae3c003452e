// Package model contains domain models passed between layers.
package model

import "time"

// SolvedAtLayout is the canonical timestamp format for solve times,
// truncated from epoch seconds in UTC.
const SolvedAtLayout = "2006-01-02 15:04:05"

// SolvedProblem is the judge-agnostic record of one solved problem.
// Adapters construct it once per unique problem identity, using the
// earliest accepted submission, and never mutate it afterwards.
type SolvedProblem struct {
	ProblemURL   string `json:"problem_url"`   // canonical URL: judge + contest + index
	Difficulty   string `json:"difficulty"`    // numeric rating as string, "" if unknown
	SolutionNote string `json:"solution_note"` // free text, empty at import time
	Tags         string `json:"tags"`          // comma-joined keywords, "" if none
	SolvedAt     string `json:"solved_at"`     // SolvedAtLayout, UTC
}

// SolvedDate returns the date portion (YYYY-MM-DD) of SolvedAt.
func (p SolvedProblem) SolvedDate() string {
	if len(p.SolvedAt) < 10 {
		return p.SolvedAt
	}
	return p.SolvedAt[:10]
}

// FormatSolvedAt renders an epoch-seconds timestamp in the canonical layout.
func FormatSolvedAt(epochSeconds int64) string {
	return time.Unix(epochSeconds, 0).UTC().Format(SolvedAtLayout)
}

// StoredProblem is a SolvedProblem as persisted by the record store,
// carrying the store-assigned id and the ingestion timestamp.
type StoredProblem struct {
	ID int64 `json:"id"`
	SolvedProblem
	SyncedAt int64 `json:"synced_at"` // unix milliseconds at ingest/update
}

// ProblemPatch describes a partial update to a stored problem. Nil fields
// are left untouched.
type ProblemPatch struct {
	Difficulty   *string `json:"difficulty,omitempty"`
	SolutionNote *string `json:"solution_note,omitempty"`
	Tags         *string `json:"tags,omitempty"`
	SolvedAt     *string `json:"solved_at,omitempty"`
}

// Apply copies the non-nil patch fields onto p.
func (patch ProblemPatch) Apply(p *StoredProblem) {
	if patch.Difficulty != nil {
		p.Difficulty = *patch.Difficulty
	}
	if patch.SolutionNote != nil {
		p.SolutionNote = *patch.SolutionNote
	}
	if patch.Tags != nil {
		p.Tags = *patch.Tags
	}
	if patch.SolvedAt != nil {
		p.SolvedAt = *patch.SolvedAt
	}
}
