// Package types contains common types used across the application
package types

// ImportStatus is the read shape of the import state machine exposed to
// callers. Only the preview count is exposed, never the records themselves.
type ImportStatus struct {
	State        string `json:"state"`
	Judge        string `json:"judge,omitempty"`
	BatchID      string `json:"batch_id,omitempty"`
	PendingCount int    `json:"pending_count"`
	Error        string `json:"error,omitempty"`
}
