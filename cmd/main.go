package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/jobconnect/pipeline/internal/api"
	"github.com/jobconnect/pipeline/internal/config"
	"github.com/jobconnect/pipeline/internal/logger"
	"github.com/jobconnect/pipeline/internal/metrics"
	"github.com/jobconnect/pipeline/internal/repositories"
	"github.com/jobconnect/pipeline/internal/services"
	log "github.com/sirupsen/logrus"
)

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Get()

	logger.Setup(cfg.Logger)
	defer logger.Cleanup()

	metrics.StartMetricsServer(cfg.Server.MetricsAddr)

	dbContext, err := repositories.NewDbContext(cfg.DB.ConnectionString)
	if err != nil {
		log.Fatalf("can't create db context: %v", err)
	}
	defer dbContext.Close()

	err = dbContext.Migrate()
	if err != nil {
		log.Fatalf("can't migrate db context: %v", err)
	}

	txm := repositories.NewTxManager(dbContext.DB)
	users := repositories.NewUsersRepository(dbContext.DB)
	jobs := repositories.NewJobsRepository(dbContext.DB)
	cachedJobs := repositories.NewCachedJobs(jobs)
	applications := repositories.NewApplicationsRepository(dbContext.DB)
	stages := repositories.NewStagesRepository(dbContext.DB)
	notifications := repositories.NewNotificationsRepository(dbContext.DB)
	alerts := repositories.NewAlertsRepository(dbContext.DB)
	saved := repositories.NewSavedCandidatesRepository(dbContext.DB)

	bus := EventBus.New()

	applicationsService := services.NewApplicationsService(bus, txm, applications, stages,
		cachedJobs, users, notifications, saved)
	stagesService := services.NewStagesService(txm, stages, applications, cachedJobs)
	transitionsService := services.NewTransitionsService(bus, txm, applications, stages,
		stagesService, cachedJobs, users, notifications)
	notificationsService := services.NewNotificationsService(notifications)
	alertsService := services.NewAlertsService(alerts, jobs, users)
	jobsService := services.NewJobsService(bus, txm, jobs, users, notifications, cachedJobs)

	_, err = services.NewAlertDispatcher(bus, txm, alerts, jobs, notifications)
	if err != nil {
		log.Fatalf("can't create alert dispatcher: %v", err)
	}

	cleaner, err := services.NewNotificationsCleaner(notifications, cfg.Server.NotificationRetentionInDays)
	if err != nil {
		log.Fatalf("can't create notifications cleaner: %v", err)
	}
	defer cleaner.Stop()

	server := api.NewServer(cfg.Server, cfg.Auth, applicationsService, stagesService,
		transitionsService, notificationsService, alertsService, jobsService)
	go func() {
		if err := server.Run(); err != nil {
			log.Fatalf("http server failed: %v", err)
		}
	}()

	<-ctx.Done()

	log.Info("Shutting down services...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("http server shutdown: %v", err)
	}
	log.Info("Services stopped.")
}
