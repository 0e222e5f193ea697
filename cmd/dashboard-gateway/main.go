package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jrnavarro/coursetrack-client/internal/handler"
	"github.com/jrnavarro/coursetrack-client/internal/metrics"
	"github.com/jrnavarro/coursetrack-client/internal/notify"
	"github.com/jrnavarro/coursetrack-client/internal/page"
	"github.com/jrnavarro/coursetrack-client/internal/remote"
	"github.com/jrnavarro/coursetrack-client/pkg/config"
	"github.com/jrnavarro/coursetrack-client/pkg/logger"
	corsmiddleware "github.com/jrnavarro/coursetrack-client/pkg/middleware/cors"
	reqidmiddleware "github.com/jrnavarro/coursetrack-client/pkg/middleware/requestid"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	api, err := remote.New(cfg.Remote, logr)
	if err != nil {
		logr.Sugar().Fatalw("failed to init remote client", "error", err)
	}

	metricsSvc := metrics.New()
	notifier := notify.New(cfg.Notify.TTL)
	session := page.NewSession(api, notifier, logr)

	pages := page.NewPages(
		page.NewSubjectsPage(page.SubjectsPageConfig{
			API:          api,
			Notifier:     notifier,
			PollInterval: cfg.Sync.SubjectsPollInterval,
			Observer:     metricsSvc,
			Logger:       logr,
		}),
		page.NewNotesPage(page.NotesPageConfig{
			API:          api,
			Notifier:     notifier,
			PollInterval: cfg.Sync.NotesPollInterval,
			Observer:     metricsSvc,
			Logger:       logr,
		}),
		page.NewProjectsPage(page.ProjectsPageConfig{
			API:      api,
			Notifier: notifier,
			Observer: metricsSvc,
			Logger:   logr,
		}),
		page.NewStatusPage(page.StatusPageConfig{
			API:      api,
			Notifier: notifier,
			Observer: metricsSvc,
			Logger:   logr,
		}),
		page.NewProfilePage(page.ProfilePageConfig{
			API:      api,
			Notifier: notifier,
			Observer: metricsSvc,
			Logger:   logr,
		}),
		page.NewGuidePage(api, logr),
		logr,
	)

	appCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(metricsSvc.GinMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	handler.NewAuthHandler(session,
		func() { pages.StartAll(appCtx) },
		pages.StopAll,
	).Register(r)
	handler.NewSubjectsHandler(pages.Subjects).Register(r)
	handler.NewNotesHandler(pages.Notes).Register(r)
	handler.NewProjectsHandler(pages.Projects).Register(r)
	handler.NewStatusHandler(pages.Status).Register(r)
	handler.NewProfileHandler(pages.Profile).Register(r)
	handler.NewGuideHandler(pages.Guide, cfg.Export.Enabled).Register(r)
	handler.NewNotificationHandler(notifier).Register(r)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	go func() {
		logr.Sugar().Infow("gateway starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("gateway failed", "error", err)
		}
	}()

	<-appCtx.Done()
	logr.Sugar().Infow("shutting down")

	pages.StopAll()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("shutdown error", "error", err)
	}
}
