package http

import (
	"log/slog"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"travelagency/internal/delivery/http/controllers"
	"travelagency/internal/delivery/http/middleware"
)

// NewRouter initializes the HTTP router with all application routes and wraps it with
// request id, real ip, panic recovery, request logging and CORS.
func NewRouter(logger *slog.Logger, clientController *controllers.ClientController, tripController *controllers.TripController, corsOrigins []string) http.Handler {
	mux := http.NewServeMux()

	// Clients
	mux.HandleFunc("POST /clients", clientController.CreateClient)
	mux.HandleFunc("GET /clients/{id}/trips", clientController.GetClientTrips)
	mux.HandleFunc("PUT /clients/{id}/trips/{tripId}", clientController.RegisterForTrip)
	mux.HandleFunc("DELETE /clients/{id}/trips/{tripId}", clientController.UnregisterFromTrip)

	// Trips
	mux.HandleFunc("GET /trips", tripController.ListTrips)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	var handler http.Handler = mux
	handler = middleware.CORS(corsOrigins, handler)
	handler = middleware.LoggingMiddleware(logger, handler)
	handler = chimw.Recoverer(handler)
	handler = chimw.RealIP(handler)
	handler = chimw.RequestID(handler)
	return handler
}
