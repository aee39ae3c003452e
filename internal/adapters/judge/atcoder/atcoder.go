// Package atcoder adapts the kenkoooo AtCoder API to canonical
// solved-problem records, converting difficulty to the Codeforces scale.
package atcoder

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/okian/solvemap/internal/adapters/judge"
	"github.com/okian/solvemap/internal/domain/dedupe"
	"github.com/okian/solvemap/internal/domain/model"
	"github.com/okian/solvemap/internal/domain/rating"
)

// Name is the registry key for this adapter.
const Name = "atcoder"

const (
	defaultAPIBaseURL      = "https://kenkoooo.com/atcoder/atcoder-api"
	defaultResourceBaseURL = "https://kenkoooo.com/atcoder/resources"
	problemURLTmpl         = "https://atcoder.jp/contests/%s/tasks/%s"

	// acceptedResult marks an accepted submission. This feed has no
	// status envelope; failures are transport or parse errors.
	acceptedResult = "AC"
)

// submission mirrors one element of the user submissions feed.
type submission struct {
	ID            int64   `json:"id"`
	EpochSecond   int64   `json:"epoch_second"`
	ProblemID     string  `json:"problem_id"`
	ContestID     string  `json:"contest_id"`
	UserID        string  `json:"user_id"`
	Language      string  `json:"language"`
	Point         float64 `json:"point"`
	Length        int     `json:"length"`
	Result        string  `json:"result"`
	ExecutionTime *int    `json:"execution_time"`
}

// problemModel is one entry of the global difficulty-model table. A model
// without a difficulty estimate is valid and yields no difficulty.
type problemModel struct {
	Slope            *float64 `json:"slope,omitempty"`
	Intercept        *float64 `json:"intercept,omitempty"`
	Variance         *float64 `json:"variance,omitempty"`
	Difficulty       *float64 `json:"difficulty,omitempty"`
	Discrimination   *float64 `json:"discrimination,omitempty"`
	IRTLoglikelihood *float64 `json:"irt_loglikelihood,omitempty"`
	IRTUsers         *float64 `json:"irt_users,omitempty"`
	IsExperimental   *bool    `json:"is_experimental,omitempty"`
}

// Adapter fetches from the kenkoooo AtCoder API.
type Adapter struct {
	client          *http.Client
	apiBaseURL      string
	resourceBaseURL string
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

// WithAPIBaseURL overrides the submissions API base URL, mainly for tests.
func WithAPIBaseURL(base string) Option {
	return func(a *Adapter) {
		if base != "" {
			a.apiBaseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithResourceBaseURL overrides the static resources base URL.
func WithResourceBaseURL(base string) Option {
	return func(a *Adapter) {
		if base != "" {
			a.resourceBaseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// New creates an AtCoder adapter with configuration options.
func New(opts ...Option) *Adapter {
	a := &Adapter{
		client:          http.DefaultClient,
		apiBaseURL:      defaultAPIBaseURL,
		resourceBaseURL: defaultResourceBaseURL,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Name returns the registry key.
func (a *Adapter) Name() string { return Name }

// Fetch issues the submission-history and difficulty-model requests in
// parallel and joins them into canonical records. Either request failing
// fails the whole fetch; there are no partial results.
func (a *Adapter) Fetch(ctx context.Context, handle string) ([]model.SolvedProblem, error) {
	submissionsURL := fmt.Sprintf("%s/v3/user/submissions?user=%s&from_second=0",
		a.apiBaseURL, url.QueryEscape(handle))
	modelsURL := a.resourceBaseURL + "/problem-models.json"

	var (
		wg          sync.WaitGroup
		submissions []submission
		models      map[string]problemModel
		subErr      error
		modelErr    error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		subErr = a.getJSON(ctx, submissionsURL, &submissions)
	}()
	go func() {
		defer wg.Done()
		modelErr = a.getJSON(ctx, modelsURL, &models)
	}()
	wg.Wait()
	if subErr != nil {
		return nil, fmt.Errorf("fetch atcoder submissions: %w", subErr)
	}
	if modelErr != nil {
		return nil, fmt.Errorf("fetch atcoder problem models: %w", modelErr)
	}

	earliest := dedupe.NewEarliest[submission]()
	for _, s := range submissions {
		if s.Result != acceptedResult {
			continue
		}
		earliest.Observe(s.ProblemID, s.EpochSecond, s)
	}

	records := make([]model.SolvedProblem, 0, earliest.Len())
	for _, s := range earliest.Values() {
		difficulty := ""
		if m, ok := models[s.ProblemID]; ok && m.Difficulty != nil {
			difficulty = strconv.Itoa(rating.ToCodeforces(*m.Difficulty))
		}
		records = append(records, model.SolvedProblem{
			ProblemURL: fmt.Sprintf(problemURLTmpl, s.ContestID, s.ProblemID),
			Difficulty: difficulty,
			SolvedAt:   model.FormatSolvedAt(s.EpochSecond),
		})
	}
	judge.SortRecords(records)
	return records, nil
}

func (a *Adapter) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
