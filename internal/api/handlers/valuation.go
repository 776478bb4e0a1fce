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

// ValuationHandler serves quarter quantity computations.
type ValuationHandler struct {
	valuationService *service.ValuationService
	securitiesMaster string
}

// NewValuationHandler creates a new ValuationHandler.
func NewValuationHandler(valuationService *service.ValuationService, securitiesMaster string) *ValuationHandler {
	return &ValuationHandler{
		valuationService: valuationService,
		securitiesMaster: securitiesMaster,
	}
}

// Quantities handles GET /api/valuation/quantities?date=YYYY-MM-DD.
// Returns per-security share quantities for the quarter containing the given
// date (default: today).
func (h *ValuationHandler) Quantities(w http.ResponseWriter, r *http.Request) {
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

	quantities, err := h.valuationService.ComputeQuarterQuantities(r.Context(), rows, calendar.QuarterOf(date))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, quantities)
}
