package judge

import "errors"

// Sentinel kinds for judge adapter errors.
var (
	ErrUnknownJudge = errors.New("unknown judge")
)

// FetchError reports a judge-level failure whose message is meant for the
// user verbatim, e.g. a non-success status envelope naming a bad handle.
type FetchError struct {
	Judge   string
	Message string
}

func (e *FetchError) Error() string {
	return e.Message
}
