// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"
)

// ImportHandler handles the two-phase judge import flow.
type ImportHandler struct {
	deps ImportDependencies
}

// NewImportHandler creates a new import handler.
func NewImportHandler(deps ImportDependencies) *ImportHandler {
	return &ImportHandler{deps: deps}
}

// fetchRequest is the body of POST /api/import.
type fetchRequest struct {
	Judge  string `json:"judge"`
	Handle string `json:"handle"`
}

// confirmRequest is the body of POST /api/import/confirm.
type confirmRequest struct {
	ClearExisting bool `json:"clear_existing"`
}

type confirmResponse struct {
	Imported int `json:"imported"`
}

// selectJudgeRequest is the body of POST /api/import/judge.
type selectJudgeRequest struct {
	Judge string `json:"judge"`
}

// HandleFetch handles POST /api/import: fetch a preview, commit nothing.
func (h *ImportHandler) HandleFetch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req fetchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	status, err := h.deps.StartImport(r.Context(), req.Judge, req.Handle)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// HandleConfirm handles POST /api/import/confirm: commit the held preview.
func (h *ImportHandler) HandleConfirm(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	n, err := h.deps.ConfirmImport(r.Context(), req.ClearExisting)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, confirmResponse{Imported: n})
}

// HandleSelectJudge handles POST /api/import/judge: switch judges,
// discarding any held preview or error.
func (h *ImportHandler) HandleSelectJudge(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req selectJudgeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	status, err := h.deps.SelectJudge(req.Judge)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// HandleStatus handles GET /api/import/status.
func (h *ImportHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	status := h.deps.ImportStatus()
	writeJSON(w, http.StatusOK, struct {
		Judges []string `json:"judges"`
		Status any      `json:"status"`
	}{Judges: h.deps.Judges(), Status: status})
}
