package handlers

import (
	"net/http"
	"time"

	"github.com/rsundaram/Networth-Tracker-Backend/internal/api/response"
	"github.com/rsundaram/Networth-Tracker-Backend/internal/calendar"
	"github.com/rsundaram/Networth-Tracker-Backend/internal/ingest"
	"github.com/rsundaram/Networth-Tracker-Backend/internal/service"
	"github.com/rsundaram/Networth-Tracker-Backend/internal/validation"
)

// ScheduleHandler serves DCA schedule previews.
type ScheduleHandler struct {
	scheduleService  *service.ScheduleService
	securitiesMaster string
}

// NewScheduleHandler creates a new ScheduleHandler. securitiesMaster is the
// path of the securities master file, re-read on every request so edits show
// up without a restart.
func NewScheduleHandler(scheduleService *service.ScheduleService, securitiesMaster string) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleService:  scheduleService,
		securitiesMaster: securitiesMaster,
	}
}

// Schedule handles GET /api/schedule?date=YYYY-MM-DD.
// Returns the contribution schedule for the quarter containing the given
// date (default: today).
func (h *ScheduleHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	date, err := validation.ParseDateOrDefault(r.URL.Query().Get("date"), time.Now())
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid date parameter", err.Error())
		return
	}

	rows, err := ingest.LoadSecuritiesMaster(h.securitiesMaster)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	schedule, err := h.scheduleService.BuildSchedule(r.Context(), rows, calendar.QuarterOf(date))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, schedule)
}
