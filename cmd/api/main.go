package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/juju/errors"
	"github.com/sirupsen/logrus"

	_ "job-intake/docs" // Swagger docs
	"job-intake/internal/api"
	"job-intake/internal/auth"
	"job-intake/internal/config"
	"job-intake/internal/lifecycle"
	"job-intake/internal/logging"
	"job-intake/internal/middleware"
	"job-intake/internal/session"
	"job-intake/internal/storage"
	"job-intake/internal/storage/memory"
)

// @title Job Intake API
// @version 1.0
// @description Applicant intake funnel and admin review panel for job applications

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @BasePath /

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}

	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	store, closeStore, err := openStore(cfg, log)
	if err != nil {
		log.Fatalf("store: %v", errors.ErrorStack(err))
	}
	defer closeStore()

	sessionStore, closeSessions, err := openSessionStore(cfg, log)
	if err != nil {
		log.Fatalf("session store: %v", errors.ErrorStack(err))
	}
	defer closeSessions()

	if !cfg.AdminConfigured() {
		log.Warn("ADMIN_USER/ADMIN_PASS not set, admin login is disabled")
	}
	gate, err := auth.NewGate(cfg.AdminUser, cfg.AdminPassword)
	if err != nil {
		log.Fatalf("admin gate: %v", err)
	}

	apiSrv := api.NewAPI(api.Deps{
		Lifecycle:    lifecycle.NewManager(store),
		Sessions:     session.NewManager(sessionStore, cfg.SessionSecret, cfg.SessionTTL, log, session.WithSecureCookie(cfg.CookieSecure)),
		Gate:         gate,
		LoginLimiter: middleware.NewRateLimiter(cfg.LoginRate, cfg.LoginBurst),
		Chat:         api.ChatContacts{WhatsApp: cfg.ChatWhatsApp, Email: cfg.ChatEmail},
		Logger:       log,
	})
	router := api.NewRouter(apiSrv)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.WithError(err).Error("server shutdown")
		}
		close(idleConnsClosed)
	}()

	log.Infof("Job intake server listening on :%s", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}

	<-idleConnsClosed
}

func openStore(cfg *config.Config, log *logrus.Logger) (lifecycle.Store, func(), error) {
	if cfg.StoreDriver == config.DriverMemory {
		log.Warn("Using in-memory store, data is lost on restart")
		return memory.New(), func() {}, nil
	}

	log.Println("Connecting to database...")
	db, err := storage.NewDB(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, errors.Annotate(err, "db open")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, nil, errors.Annotate(err, "db migrate")
	}
	log.Println("Database connected successfully!")
	return db, db.Close, nil
}

func openSessionStore(cfg *config.Config, log *logrus.Logger) (session.Store, func(), error) {
	if cfg.RedisURL == "" {
		log.Info("REDIS_URL not set, keeping sessions in memory")
		mem := session.NewMemoryStore()
		stop := make(chan struct{})
		go func() {
			ticker := time.NewTicker(10 * time.Minute)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					mem.CleanExpired()
				case <-stop:
					return
				}
			}
		}()
		return mem, func() { close(stop) }, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	rs, err := session.NewRedisStore(ctx, cfg.RedisURL)
	if err != nil {
		return nil, nil, errors.Annotate(err, "redis connect")
	}
	log.Info("Sessions stored in Redis")
	return rs, func() {
		if err := rs.Close(); err != nil {
			log.WithError(err).Warn("closing redis")
		}
	}, nil
}
