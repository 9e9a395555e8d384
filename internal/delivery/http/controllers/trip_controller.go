package controllers

import (
	"log/slog"
	"net/http"

	"travelagency/internal/delivery/http/helpers"
	"travelagency/internal/domain"
)

// TripsSuccessResponse is the success envelope for GET /trips (200).
type TripsSuccessResponse struct {
	Data  []*domain.TripView `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// TripController handles the trip catalog.
type TripController struct {
	Logger         *slog.Logger
	Service        domain.TripService
	RedactInternal bool
}

func NewTripController(logger *slog.Logger, svc domain.TripService, redactInternal bool) *TripController {
	return &TripController{
		Logger:         logger,
		Service:        svc,
		RedactInternal: redactInternal,
	}
}

// ListTrips godoc
// @Summary List trips
// @Description Returns every trip with the countries it visits. Dates are ddMMyyyy numbers.
// @Tags trips
// @Produce json
// @Success 200 {object} controllers.TripsSuccessResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /trips [get]
func (c *TripController) ListTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := c.Service.ListTrips(r.Context())
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, trips)
}

func (c *TripController) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if status := helpers.WriteDomainError(w, err, c.RedactInternal); status >= http.StatusInternalServerError {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	}
}
