package controllers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/oapi-codegen/nullable"

	"travelagency/internal/delivery/http/helpers"
	"travelagency/internal/domain"
)

// CreateClientRequest is the request body for POST /clients.
type CreateClientRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Telephone string `json:"telephone"`
	Pesel     string `json:"pesel"`
}

// CreateClientResponse is the data returned by POST /clients.
type CreateClientResponse struct {
	ID int `json:"id"`
}

// ClientTripResponse is one registration of a client with its trip details.
// Dates are ddMMyyyy numbers; paymentDate is null until the trip is paid.
type ClientTripResponse struct {
	TripID        int                                    `json:"tripId"`
	Name          string                                 `json:"name"`
	Description   string                                 `json:"description"`
	DateRangeFrom domain.DayMonthYear                    `json:"dateRangeFrom"`
	DateRangeTo   domain.DayMonthYear                    `json:"dateRangeTo"`
	MaxPeople     int                                    `json:"maxPeople"`
	RegisteredAt  domain.DayMonthYear                    `json:"registeredAt"`
	PaymentDate   nullable.Nullable[domain.DayMonthYear] `json:"paymentDate" swaggertype:"integer"`
}

// MessageResponse carries a human readable confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// ClientTripsSuccessResponse is the success envelope for GET /clients/{id}/trips (200).
type ClientTripsSuccessResponse struct {
	Data  []ClientTripResponse `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// CreateClientSuccessResponse is the success envelope for POST /clients (201).
type CreateClientSuccessResponse struct {
	Data  CreateClientResponse `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// MessageSuccessResponse is the success envelope for registration changes (200).
type MessageSuccessResponse struct {
	Data  MessageResponse   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ClientController handles client and registration endpoints.
type ClientController struct {
	Logger              *slog.Logger
	Service             domain.ClientService
	RegistrationService domain.RegistrationService
	RedactInternal      bool
}

// NewClientController creates a ClientController with the given logger and services.
func NewClientController(logger *slog.Logger, svc domain.ClientService, registrations domain.RegistrationService, redactInternal bool) *ClientController {
	return &ClientController{
		Logger:              logger,
		Service:             svc,
		RegistrationService: registrations,
		RedactInternal:      redactInternal,
	}
}

// GetClientTrips godoc
// @Summary List a client's trips
// @Description Returns every trip the client is registered to, ordered by trip id. Dates are ddMMyyyy numbers.
// @Tags clients
// @Produce json
// @Param id path int true "Client ID"
// @Success 200 {object} controllers.ClientTripsSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /clients/{id}/trips [get]
func (c *ClientController) GetClientTrips(w http.ResponseWriter, r *http.Request) {
	clientID, ok := helpers.PathID(w, r, "id")
	if !ok {
		return
	}
	trips, err := c.Service.GetTripsForClient(r.Context(), clientID)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	resp := make([]ClientTripResponse, 0, len(trips))
	for _, ct := range trips {
		resp = append(resp, toClientTripResponse(ct))
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, resp)
}

// CreateClient godoc
// @Summary Create a client
// @Description Creates a client. All fields are required, the email must look like local@domain.tld and the pesel must be 11 digits and unique.
// @Tags clients
// @Accept json
// @Produce json
// @Param body body CreateClientRequest true "Client data"
// @Success 201 {object} controllers.CreateClientSuccessResponse "Location header points at the new client"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /clients [post]
func (c *ClientController) CreateClient(w http.ResponseWriter, r *http.Request) {
	var req CreateClientRequest
	if !helpers.DecodeJSON(w, r, &req) {
		return
	}
	client := domain.NewClient(req.FirstName, req.LastName, req.Email, req.Telephone, req.Pesel)
	id, err := c.Service.CreateClient(r.Context(), client)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/clients/"+strconv.Itoa(id))
	helpers.WriteJSONSuccess(w, http.StatusCreated, CreateClientResponse{ID: id})
}

// RegisterForTrip godoc
// @Summary Register a client for a trip
// @Description Registers the client unless the trip is full or the client is already registered.
// @Tags clients
// @Produce json
// @Param id path int true "Client ID"
// @Param tripId path int true "Trip ID"
// @Success 200 {object} controllers.MessageSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /clients/{id}/trips/{tripId} [put]
func (c *ClientController) RegisterForTrip(w http.ResponseWriter, r *http.Request) {
	clientID, tripID, ok := clientTripIDs(w, r)
	if !ok {
		return
	}
	if err := c.RegistrationService.Register(r.Context(), clientID, tripID); err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, MessageResponse{Message: "client registered for trip"})
}

// UnregisterFromTrip godoc
// @Summary Remove a client from a trip
// @Tags clients
// @Produce json
// @Param id path int true "Client ID"
// @Param tripId path int true "Trip ID"
// @Success 200 {object} controllers.MessageSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /clients/{id}/trips/{tripId} [delete]
func (c *ClientController) UnregisterFromTrip(w http.ResponseWriter, r *http.Request) {
	clientID, tripID, ok := clientTripIDs(w, r)
	if !ok {
		return
	}
	if err := c.RegistrationService.Unregister(r.Context(), clientID, tripID); err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, MessageResponse{Message: "client unregistered from trip"})
}

func (c *ClientController) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if status := helpers.WriteDomainError(w, err, c.RedactInternal); status >= http.StatusInternalServerError {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	}
}

func clientTripIDs(w http.ResponseWriter, r *http.Request) (clientID, tripID int, ok bool) {
	if clientID, ok = helpers.PathID(w, r, "id"); !ok {
		return 0, 0, false
	}
	if tripID, ok = helpers.PathID(w, r, "tripId"); !ok {
		return 0, 0, false
	}
	return clientID, tripID, true
}

func toClientTripResponse(ct *domain.ClientTrip) ClientTripResponse {
	resp := ClientTripResponse{
		RegisteredAt: domain.NewDayMonthYear(ct.RegisteredAt),
		PaymentDate:  nullable.NewNullNullable[domain.DayMonthYear](),
	}
	if ct.Trip != nil {
		resp.TripID = ct.Trip.ID
		resp.Name = ct.Trip.Name
		resp.Description = ct.Trip.Description
		resp.DateRangeFrom = domain.NewDayMonthYear(ct.Trip.DateFrom)
		resp.DateRangeTo = domain.NewDayMonthYear(ct.Trip.DateTo)
		resp.MaxPeople = ct.Trip.MaxPeople
	}
	if ct.PaymentDate != nil {
		resp.PaymentDate = nullable.NewNullableWithValue(domain.NewDayMonthYear(*ct.PaymentDate))
	}
	return resp
}
