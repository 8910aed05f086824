package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"smartBooking/internal/cache"
	"smartBooking/internal/config"
	"smartBooking/internal/http-server/handlers/auth/login"
	"smartBooking/internal/http-server/handlers/booking/createBooking"
	"smartBooking/internal/http-server/handlers/booking/getAllBookings"
	"smartBooking/internal/http-server/handlers/booking/getBooking"
	"smartBooking/internal/http-server/handlers/event/createEvent"
	"smartBooking/internal/http-server/handlers/event/deleteEvent"
	"smartBooking/internal/http-server/handlers/event/getAllEvents"
	"smartBooking/internal/http-server/handlers/event/getEventInfo"
	"smartBooking/internal/http-server/handlers/event/updateEvent"
	"smartBooking/internal/http-server/handlers/health"
	"smartBooking/internal/http-server/middleware/adminauth"
	"smartBooking/internal/http-server/middleware/mwlogger"
	"smartBooking/internal/lib/logger/handlers/slogpretty"
	"smartBooking/internal/lib/logger/sl"
	"smartBooking/internal/storage/postgres"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("Starting smart booking", slog.String("env", cfg.Env))
	log.Debug("Debug messages are enabled")

	storage, err := postgres.InitDB(&cfg.Database)
	if err != nil {
		log.Error("failed to init storage", sl.Err(err))
		os.Exit(1)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	if err = rdb.Ping(pingCtx).Err(); err != nil {
		// The cache degrades to plain DB reads, so this is not fatal.
		log.Warn("redis unavailable, serving without cache hits", sl.Err(err))
	}
	cancel()

	events := cache.New(log, storage, rdb, cfg.Redis.CacheTTL)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(mwlogger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", health.New(log, storage))
		r.Post("/auth/login", login.New(log, cfg.Admin))

		r.Get("/events", getAllEvents.New(log, events))
		r.Get("/events/{id}", getEventInfo.New(log, events))
		r.Post("/bookings", createBooking.New(log, events))

		r.Group(func(r chi.Router) {
			r.Use(adminauth.New(log, cfg.Admin.JWTSecret))

			r.Post("/events", createEvent.New(log, events))
			r.Put("/events/{id}", updateEvent.New(log, events))
			r.Delete("/events/{id}", deleteEvent.New(log, events))
			r.Get("/bookings", getAllBookings.New(log, storage))
			r.Get("/bookings/{id}", getBooking.New(log, storage))
		})
	})

	log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT, os.Interrupt)

	go func() {
		if err = srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to start server", sl.Err(err))
			stop <- syscall.SIGTERM
		}
	}()

	sign := <-stop

	log.Info("application stopping", slog.String("signal", sign.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err = srv.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to shutdown server", sl.Err(err))
	}

	log.Info("application stopped")

	if err = rdb.Close(); err != nil {
		log.Error("failed to close redis connection", sl.Err(err))
	}

	if err = storage.Close(); err != nil {
		log.Error("failed to close postgres connection", sl.Err(err))
	}

	log.Info("postgres connection closed")
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	h := opts.NewPrettyHandler(os.Stdout)

	return slog.New(h)
}
