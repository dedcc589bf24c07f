package api

import (
	"bytes"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/codegate-sec/codegate/internal/history"
	"github.com/codegate-sec/codegate/internal/output"
	"github.com/codegate-sec/codegate/internal/web/jobs"
)

// Handlers holds dependencies for the REST API handlers. History is
// optional and may be nil.
type Handlers struct {
	Manager *jobs.Manager
	History *history.Store
}

// NewHandlers creates API handlers with the given dependencies.
func NewHandlers(manager *jobs.Manager, hist *history.Store) *Handlers {
	return &Handlers{Manager: manager, History: hist}
}

// CreateScan handles POST /api/v1/scans.
func (h *Handlers) CreateScan(w http.ResponseWriter, r *http.Request) {
	req, err := decodeCreateScanRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	job := h.Manager.Create(req.Code, req.FilePath)
	if err := h.Manager.Start(job.ID); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to start scan: "+err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":     job.ID,
		"status": job.Status,
	})
}

// ListScans handles GET /api/v1/scans.
func (h *Handlers) ListScans(w http.ResponseWriter, r *http.Request) {
	jobList := h.Manager.List()

	type scanSummary struct {
		ID           string         `json:"id"`
		FilePath     string         `json:"file_path,omitempty"`
		Status       jobs.JobStatus `json:"status"`
		CreatedAt    time.Time      `json:"created_at"`
		RiskScore    int            `json:"risk_score"`
		FindingCount int            `json:"finding_count"`
	}

	summaries := make([]scanSummary, len(jobList))
	for i, j := range jobList {
		summaries[i] = scanSummary{
			ID:           j.ID,
			FilePath:     j.FilePath,
			Status:       j.Status,
			CreatedAt:    j.CreatedAt,
			RiskScore:    j.RiskScore(),
			FindingCount: j.FindingCount(),
		}
	}

	writeJSON(w, http.StatusOK, summaries)
}

// GetScan handles GET /api/v1/scans/{id}.
func (h *Handlers) GetScan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	job, err := h.Manager.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, job)
}

// GetScanReport handles GET /api/v1/scans/{id}/report.
func (h *Handlers) GetScanReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	job, err := h.Manager.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	if job.Status != jobs.StatusCompleted {
		writeError(w, http.StatusConflict, "scan is not yet completed")
		return
	}

	formatter := &output.HTMLFormatter{}
	var buf bytes.Buffer
	if err := formatter.Format(&buf, job.Report); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to render report: "+err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// DeleteScan handles DELETE /api/v1/scans/{id}.
func (h *Handlers) DeleteScan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Manager.Delete(id); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListHistory handles GET /api/v1/history.
func (h *Handlers) ListHistory(w http.ResponseWriter, r *http.Request) {
	if h.History == nil {
		writeError(w, http.StatusNotFound, "history is not enabled")
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	entries, err := h.History.Recent(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if entries == nil {
		entries = []history.Entry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

// GetHistoryStats handles GET /api/v1/history/stats.
func (h *Handlers) GetHistoryStats(w http.ResponseWriter, r *http.Request) {
	if h.History == nil {
		writeError(w, http.StatusNotFound, "history is not enabled")
		return
	}

	stats, err := h.History.Statistics(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
