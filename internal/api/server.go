package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jobconnect/pipeline/internal/config"
	"github.com/jobconnect/pipeline/internal/services"
)

type Server struct {
	httpServer *http.Server

	applications  *services.ApplicationsService
	stages        *services.StagesService
	transitions   *services.TransitionsService
	notifications *services.NotificationsService
	alerts        *services.AlertsService
	jobs          *services.JobsService
}

func NewServer(serverCfg config.ServerConfig, authCfg config.AuthConfig,
	applications *services.ApplicationsService, stages *services.StagesService,
	transitions *services.TransitionsService, notifications *services.NotificationsService,
	alerts *services.AlertsService, jobs *services.JobsService) *Server {

	s := &Server{
		applications:  applications,
		stages:        stages,
		transitions:   transitions,
		notifications: notifications,
		alerts:        alerts,
		jobs:          jobs,
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	limiter := newActorLimiter(serverCfg.RateLimitPerSecond, serverCfg.RateLimitBurst)

	v1 := engine.Group("/api/v1")
	v1.Use(authMiddleware(authCfg.JWTSecret), rateLimitMiddleware(limiter))

	v1.POST("/jobs/:id/apply", s.submitApplication)
	v1.GET("/jobs/:id/applications", s.listPipeline)
	v1.POST("/jobs/:id/activate", s.activateJob)
	v1.GET("/jobs/:id/stages", s.listStages)
	v1.POST("/jobs/:id/stages", s.addStage)
	v1.PUT("/stages/:id", s.renameStage)
	v1.DELETE("/stages/:id", s.deleteStage)

	v1.GET("/applications/mine", s.listOwnApplications)
	v1.GET("/applications/:id", s.getApplication)
	v1.POST("/applications/:id/move", s.moveApplication)
	v1.POST("/applications/:id/hire", s.hireApplication)
	v1.POST("/applications/:id/status", s.setApplicationStatus)
	v1.POST("/applications/:id/rating", s.rateApplication)
	v1.POST("/applications/:id/save", s.toggleSavedCandidate)
	v1.GET("/candidates/saved", s.listSavedCandidates)

	v1.GET("/notifications", s.listNotifications)
	v1.GET("/notifications/unread-count", s.unreadCount)
	v1.POST("/notifications/:id/read", s.markNotificationRead)
	v1.POST("/notifications/read-all", s.markAllNotificationsRead)
	v1.DELETE("/notifications/:id", s.deleteNotification)

	v1.GET("/alerts", s.listAlerts)
	v1.POST("/alerts", s.createAlert)
	v1.PUT("/alerts/:id", s.editAlert)
	v1.DELETE("/alerts/:id", s.deleteAlert)
	v1.POST("/alerts/:id/toggle", s.toggleAlert)
	v1.GET("/alerts/matches", s.listAllMatches)
	v1.GET("/alerts/:id/matches", s.listAlertMatches)

	s.httpServer = &http.Server{
		Addr:    serverCfg.ListenAddr,
		Handler: engine,
	}
	return s
}

func (s *Server) Run() error {
	err := s.httpServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
