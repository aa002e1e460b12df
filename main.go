package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"capster-board/config"
	"capster-board/controllers"
	"capster-board/metrics"
	"capster-board/repository"
	"capster-board/routes"
	"capster-board/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	settings, err := config.LoadSettings()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := config.NewLogger(settings.LogLevel)
	slog.SetDefault(logger)

	if err := run(settings, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(settings config.Settings, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := config.ConnectDB(settings.DatabaseURL)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := config.Migrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	now := func() time.Time { return time.Now().In(settings.Location) }

	appointmentRepo := repository.NewAppointmentRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	masterRepo := repository.NewMasterRepository(db)
	notificationRepo := repository.NewNotificationLogRepository(db)

	var cache services.MastersCache
	redisClient, err := config.NewRedisClient(ctx, settings.RedisAddr, settings.RedisPassword, settings.RedisDB)
	switch {
	case err != nil:
		logger.Warn("redis unavailable, masters cache disabled", "error", err)
	case redisClient != nil:
		defer redisClient.Close()
		cache = services.NewRedisMastersCache(redisClient, settings.MastersCacheTTL, logger)
	}

	sheet, err := openSpreadsheet(ctx, settings)
	if err != nil {
		return err
	}
	if sheet == nil {
		logger.Info("google sheets not configured, export disabled")
	}

	var notifier services.VisitNotifier
	if settings.TwilioConfigured() {
		notifier = services.NewWhatsAppNotifier(
			settings.TwilioAccountSID,
			settings.TwilioAuthToken,
			settings.TwilioWhatsAppNumber,
			notificationRepo,
			logger,
		)
	}

	exportService := services.NewExportService(appointmentRepo, sheet, m, logger)
	exportService.Now = now
	summaryService := services.NewSummaryService(appointmentRepo)
	summaryService.Now = now
	bookingService := services.NewBookingService(appointmentRepo, notifier, m, logger)
	bookingService.Now = now
	mastersService := services.NewMastersService(masterRepo, cache, logger)

	if settings.ExportSchedule != "" {
		scheduler, err := services.NewExportScheduler(settings.ExportSchedule, settings.Location, exportService, logger)
		if err != nil {
			return err
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	deps := routes.Dependencies{
		Logger:       logger,
		Metrics:      m,
		Gatherer:     reg,
		CORSOrigins:  settings.CORSOrigins,
		Appointments: controllers.NewAppointmentController(appointmentRepo, bookingService, now),
		Customers:    controllers.NewCustomerController(customerRepo),
		Masters:      controllers.NewMasterController(mastersService),
		Summary:      controllers.NewSummaryController(summaryService),
		Export:       controllers.NewExportController(exportService),
		Health:       controllers.NewHealthController(sqlDB),
	}
	if settings.AuthEnabled() {
		deps.JWTSecret = settings.JWTSecret
		deps.Auth = controllers.NewAuthController(settings.StaffPasswordHash, settings.JWTSecret, settings.JWTExpiry)
	} else {
		logger.Warn("staff auth disabled, API is open")
	}

	if settings.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := routes.SetupRouter(deps)
	printRoutes(r)

	srv := &http.Server{
		Addr:              ":" + settings.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "timezone", settings.Location.String())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openSpreadsheet returns nil when the sheet is not configured. A configured
// sheet that cannot be opened is a startup error.
func openSpreadsheet(ctx context.Context, settings config.Settings) (services.Spreadsheet, error) {
	if !settings.SheetsConfigured() {
		return nil, nil
	}
	gs, err := services.NewGoogleSheet(ctx, []byte(settings.GoogleServiceAccountKey), settings.GoogleSheetID, settings.GoogleSheetRange)
	if err != nil {
		return nil, fmt.Errorf("google sheets: %w", err)
	}
	return gs, nil
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
