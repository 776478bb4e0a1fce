package handlers

import (
	"errors"
	"net/http"

	"github.com/rsundaram/Networth-Tracker-Backend/internal/apperrors"
	"github.com/rsundaram/Networth-Tracker-Backend/internal/api/response"
)

// respondServiceError maps pipeline errors onto HTTP statuses. Validation
// failures are the client's problem, feed availability is the upstream's,
// everything else is ours.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidFundingType),
		errors.Is(err, apperrors.ErrInvalidFundingAmount),
		errors.Is(err, apperrors.ErrMissingRequiredColumn),
		errors.Is(err, apperrors.ErrMissingRequiredField):
		response.RespondError(w, http.StatusUnprocessableEntity, "invalid securities master", err.Error())

	case errors.Is(err, apperrors.ErrDataUnavailable):
		response.RespondError(w, http.StatusBadGateway, "price feed unavailable", err.Error())

	default:
		if mcp, ok := apperrors.AsMissingClosePrices(err); ok {
			pairs := make([]string, len(mcp.Pairs))
			for i, p := range mcp.Pairs {
				pairs[i] = p.String()
			}
			response.RespondError(w, http.StatusUnprocessableEntity, "missing close prices", pairs)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "internal error", err.Error())
	}
}
