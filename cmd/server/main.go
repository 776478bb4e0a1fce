package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/robfig/cron/v3"

	"github.com/rsundaram/Networth-Tracker-Backend/internal/api"
	"github.com/rsundaram/Networth-Tracker-Backend/internal/calendar"
	"github.com/rsundaram/Networth-Tracker-Backend/internal/config"
	"github.com/rsundaram/Networth-Tracker-Backend/internal/mailer"
	"github.com/rsundaram/Networth-Tracker-Backend/internal/marketdata"
	"github.com/rsundaram/Networth-Tracker-Backend/internal/service"
	"github.com/rsundaram/Networth-Tracker-Backend/internal/yahoo"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Price source adapter with an explicit memoization cache; runs within
	// one process share chart fetches for an hour.
	yahooClient := yahoo.NewFinanceClient()
	priceCache := cache.New(time.Hour, 2*time.Hour)
	priceSource := marketdata.NewSource(yahooClient, priceCache)

	resolver := calendar.NewResolver(priceSource)

	// Create services
	systemService := service.NewSystemService(cfg.Snapshot.Dir)
	scheduleService := service.NewScheduleService(resolver, cfg.Tracker.ProbeSymbol)
	valuationService := service.NewValuationService(scheduleService, priceSource)
	realEstateService := service.NewRealEstateService(cfg.Tracker.RealEstate, cfg.Tracker.Assumptions)
	snapshotService := service.NewSnapshotService(cfg.Snapshot.Dir)
	gmailSender := mailer.NewGmailSender(cfg.Google)
	reportService := service.NewReportService(cfg, valuationService, realEstateService, snapshotService, gmailSender)

	// Schedule the quarterly report run when configured
	scheduler := cron.New()
	if spec := cfg.Tracker.ReportCron; spec != "" {
		_, err := scheduler.AddFunc(spec, func() {
			log.Printf("starting scheduled report run")
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
			defer cancel()
			if _, err := reportService.Run(ctx, true); err != nil {
				log.Printf("scheduled report run failed: %v", err)
				return
			}
			log.Printf("scheduled report run complete")
		})
		if err != nil {
			log.Fatalf("Invalid report_cron %q: %v", spec, err)
		}
		scheduler.Start()
		log.Printf("report runs scheduled: %s", spec)
	}

	// Create router
	router := api.NewRouter(systemService, scheduleService, valuationService, reportService, snapshotService, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Minute, // report runs block on the price feed
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	scheduler.Stop()

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
