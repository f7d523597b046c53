package main

import (
	"expvar"
	"os"
	"runtime"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"github.com/mvrana/libris/clients/openlibrary"
	"github.com/mvrana/libris/config"
	"github.com/mvrana/libris/handler"
	"github.com/mvrana/libris/internal/jsonlog"
	"github.com/mvrana/libris/repository"
	"github.com/mvrana/libris/repository/postgres"
	"github.com/mvrana/libris/service"
	"golang.org/x/time/rate"
)

const version = "1.0.0"

// app defines the application's layers and shared resources.
type app struct {
	config  config.Config
	repo    repository.Repository
	service service.Service
	handler *handler.Handler
}

func main() {
	logger := jsonlog.New(os.Stdout, jsonlog.LevelInfo)

	cfg, err := config.Decode()
	if err != nil {
		logger.PrintFatal(err, nil)
	}

	// Initialize database connection
	db, err := postgres.OpenDBConn(cfg)
	if err != nil {
		logger.PrintFatal(err, nil)
	}
	defer db.Close()
	logger.PrintInfo("database connection pool established", nil)

	// Per-client rate limiter cache
	cache := ttlcache.New(ttlcache.WithTTL[string, *rate.Limiter](3 * time.Minute))
	go cache.Start()

	// Application layers
	catalog := openlibrary.New(cfg.OpenLibrary.BaseURL, cfg.OpenLibrary.UserAgent, cfg.OpenLibrary.RPS)
	repo := repository.New(db)
	service := service.New(cfg, logger, repo, catalog)
	handler := handler.New(cfg, logger, cache, service)

	if cfg.Metrics.Enabled {
		expvar.NewString("version").Set(version)
		expvar.Publish("goroutines", expvar.Func(func() interface{} {
			return runtime.NumGoroutine()
		}))
		expvar.Publish("database", expvar.Func(func() interface{} {
			return db.Stats()
		}))
		expvar.Publish("timestamp", expvar.Func(func() interface{} {
			return time.Now().Unix()
		}))
	}

	// Instantiate application
	app := &app{
		config:  cfg,
		repo:    repo,
		service: service,
		handler: handler,
	}

	// Start HTTP server
	err = app.serve(logger)
	if err != nil {
		logger.PrintFatal(err, nil)
	}
}
