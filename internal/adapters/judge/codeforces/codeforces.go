// Package codeforces adapts the Codeforces submission API to canonical
// solved-problem records.
package codeforces

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/okian/solvemap/internal/adapters/judge"
	"github.com/okian/solvemap/internal/domain/dedupe"
	"github.com/okian/solvemap/internal/domain/model"
)

// Name is the registry key for this adapter.
const Name = "codeforces"

const (
	defaultBaseURL = "https://codeforces.com/api"
	problemURLTmpl = "https://codeforces.com/contest/%d/problem/%s"

	// statusOK is the success marker of the response envelope.
	statusOK = "OK"
	// acceptedVerdict marks an accepted submission.
	acceptedVerdict = "OK"
)

// submission mirrors one element of the user.status result array.
type submission struct {
	ID                  int64 `json:"id"`
	ContestID           int   `json:"contestId"`
	CreationTimeSeconds int64 `json:"creationTimeSeconds"`
	Problem             struct {
		ContestID int      `json:"contestId"`
		Index     string   `json:"index"`
		Name      string   `json:"name"`
		Rating    *int     `json:"rating,omitempty"`
		Tags      []string `json:"tags"`
	} `json:"problem"`
	Verdict string `json:"verdict"`
}

// envelope is the user.status response wrapper. Comment carries the
// failure reason when Status is not OK.
type envelope struct {
	Status  string       `json:"status"`
	Comment string       `json:"comment,omitempty"`
	Result  []submission `json:"result"`
}

// Adapter fetches from the Codeforces API.
type Adapter struct {
	client  *http.Client
	baseURL string
}

// Option applies a configuration option to the Adapter.
type Option func(*Adapter)

// WithHTTPClient sets the HTTP client used for API calls.
func WithHTTPClient(client *http.Client) Option {
	return func(a *Adapter) {
		if client != nil {
			a.client = client
		}
	}
}

// WithBaseURL overrides the API base URL, mainly for tests.
func WithBaseURL(base string) Option {
	return func(a *Adapter) {
		if base != "" {
			a.baseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// New creates a Codeforces adapter with configuration options.
func New(opts ...Option) *Adapter {
	a := &Adapter{
		client:  http.DefaultClient,
		baseURL: defaultBaseURL,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Name returns the registry key.
func (a *Adapter) Name() string { return Name }

// Fetch issues one request for the handle's full submission history and
// reduces it to one record per problem, earliest acceptance first.
func (a *Adapter) Fetch(ctx context.Context, handle string) ([]model.SolvedProblem, error) {
	endpoint := fmt.Sprintf("%s/user.status?handle=%s", a.baseURL, url.QueryEscape(handle))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build codeforces request: %w", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch codeforces submissions: %w", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode codeforces response: %w", err)
	}
	if env.Status != statusOK {
		msg := env.Comment
		if msg == "" {
			msg = "failed to fetch Codeforces submissions"
		}
		return nil, &judge.FetchError{Judge: Name, Message: msg}
	}

	earliest := dedupe.NewEarliest[submission]()
	for _, s := range env.Result {
		if s.Verdict != acceptedVerdict {
			continue
		}
		key := strconv.Itoa(s.ContestID) + "-" + s.Problem.Index
		earliest.Observe(key, s.CreationTimeSeconds, s)
	}

	records := make([]model.SolvedProblem, 0, earliest.Len())
	for _, s := range earliest.Values() {
		difficulty := ""
		if s.Problem.Rating != nil {
			difficulty = strconv.Itoa(*s.Problem.Rating)
		}
		records = append(records, model.SolvedProblem{
			ProblemURL: fmt.Sprintf(problemURLTmpl, s.ContestID, s.Problem.Index),
			Difficulty: difficulty,
			Tags:       strings.Join(s.Problem.Tags, ", "),
			SolvedAt:   model.FormatSolvedAt(s.CreationTimeSeconds),
		})
	}
	judge.SortRecords(records)
	return records, nil
}
