package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rsundaram/Networth-Tracker-Backend/internal/api/handlers"
	custommiddleware "github.com/rsundaram/Networth-Tracker-Backend/internal/api/middleware"
	"github.com/rsundaram/Networth-Tracker-Backend/internal/config"
	"github.com/rsundaram/Networth-Tracker-Backend/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	systemService *service.SystemService,
	scheduleService *service.ScheduleService,
	valuationService *service.ValuationService,
	reportService *service.ReportService,
	snapshotService *service.SnapshotService,
	cfg *config.Config,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	securitiesMaster := cfg.Tracker.SecuritiesMaster

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(systemService)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/schedule", func(r chi.Router) {
			scheduleHandler := handlers.NewScheduleHandler(scheduleService, securitiesMaster)
			r.Get("/", scheduleHandler.Schedule)
		})

		r.Route("/valuation", func(r chi.Router) {
			valuationHandler := handlers.NewValuationHandler(valuationService, securitiesMaster)
			r.Get("/quantities", valuationHandler.Quantities)
		})

		reportHandler := handlers.NewReportHandler(reportService, snapshotService)
		r.Route("/report", func(r chi.Router) {
			r.Post("/run", reportHandler.Run)
		})
		r.Route("/snapshot", func(r chi.Router) {
			r.Get("/latest", reportHandler.LatestSnapshot)
		})
	})

	return r
}
