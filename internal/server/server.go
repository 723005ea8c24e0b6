// Package server wires the database, services, router and HTTP listener.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"
	"golang.org/x/sync/errgroup"

	"github.com/tierlab/ranklist/internal/api/middleware/mwauth"
	"github.com/tierlab/ranklist/internal/api/middleware/mwlog"
	"github.com/tierlab/ranklist/internal/api/rcreator"
	"github.com/tierlab/ranklist/internal/api/ritem"
	"github.com/tierlab/ranklist/internal/config"
	"github.com/tierlab/ranklist/internal/db"
	"github.com/tierlab/ranklist/pkg/metrics"
	"github.com/tierlab/ranklist/pkg/service/scontributor"
	"github.com/tierlab/ranklist/pkg/service/screator"
	"github.com/tierlab/ranklist/pkg/service/sitem"
)

func Run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log := newLogger(cfg.LogLevel)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := db.Open(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	m := metrics.New()
	items := sitem.New(conn, log)
	contributors := scontributor.New(conn)
	creators := screator.New(conn)

	itemHandler := ritem.New(conn, items, m, log)
	creatorHandler := rcreator.New(conn, items, contributors, creators, log)

	router := chi.NewRouter()
	router.Use(mwlog.Middleware(log))
	router.Handle("/metrics", m.Handler())
	router.Route("/api/v1/items", func(r chi.Router) {
		r.Use(mwauth.Middleware([]byte(cfg.TokenSecret)))
		itemHandler.Routes(r)
		creatorHandler.Routes(r)
	})

	handler := cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
		AllowedHeaders: []string{"Authorization", "Content-Type", "If-Match"},
		ExposedHeaders: []string{"ETag", "Location"},
	}).Handler(router)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		log.Info("listening", slog.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return group.Wait()
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
