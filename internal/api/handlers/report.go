package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rsundaram/Networth-Tracker-Backend/internal/api/response"
	"github.com/rsundaram/Networth-Tracker-Backend/internal/apperrors"
	"github.com/rsundaram/Networth-Tracker-Backend/internal/service"
)

// ReportHandler triggers report runs and serves snapshots.
type ReportHandler struct {
	reportService   *service.ReportService
	snapshotService *service.SnapshotService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService *service.ReportService, snapshotService *service.SnapshotService) *ReportHandler {
	return &ReportHandler{
		reportService:   reportService,
		snapshotService: snapshotService,
	}
}

// RunRequest is the body of POST /api/report/run.
type RunRequest struct {
	SendEmail bool `json:"send_email"`
}

// Run handles POST /api/report/run: executes a full report run for the
// current quarter and returns the resulting snapshot.
func (h *ReportHandler) Run(w http.ResponseWriter, r *http.Request) {
	var req RunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.reportService.Run(r.Context(), req.SendEmail)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}

// LatestSnapshot handles GET /api/snapshot/latest.
func (h *ReportHandler) LatestSnapshot(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.snapshotService.LoadLatest()
	if err != nil {
		if errors.Is(err, apperrors.ErrSnapshotNotFound) {
			response.RespondError(w, http.StatusNotFound, "no snapshot available", "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to load snapshot", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, snapshot)
}
