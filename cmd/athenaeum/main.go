package main

import (
	"os"
	"sync"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"github.com/ndukwe/athenaeum/config"
	_ "github.com/ndukwe/athenaeum/docs"
	"github.com/ndukwe/athenaeum/handler"
	"github.com/ndukwe/athenaeum/internal/jsonlog"
	"github.com/ndukwe/athenaeum/repository"
	"github.com/ndukwe/athenaeum/repository/postgres"
	"github.com/ndukwe/athenaeum/service"
)

// app defines the application's layers and shared resources.
type app struct {
	config  config.Config
	repo    repository.Repository
	service service.Service
	handler *handler.Handler
}

// @title  Athenaeum API
// @version 1.0.0
// @description This is an API service for managing a library's books, members and borrow records.
// @termsOfService http://swagger.io/terms/
// @contact.name API Support
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:4000
// @BasePath /
func main() {
	logger := jsonlog.New(os.Stdout, jsonlog.LevelInfo)

	// Initialize configuration
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

	// Other shared resources: waitgroup and in-memory cache
	var wg sync.WaitGroup
	cache := ttlcache.New(ttlcache.WithTTL[string, int64](5 * time.Minute))
	go cache.Start()

	// Application layers
	repo := repository.New(db)
	service := service.New(cfg, &wg, logger, repo)
	handler := handler.New(cfg, logger, cache, service)

	// Periodically flag overdue borrows and queue notice emails
	sweepInterval, err := time.ParseDuration(cfg.Loans.SweepInterval)
	if err != nil {
		logger.PrintFatal(err, nil)
	}
	go service.RunOverdueSweeper(sweepInterval)

	// Instantiate application
	app := &app{
		config:  cfg,
		repo:    repo,
		service: service,
		handler: handler,
	}

	// Start HTTP server
	err = app.serve(&wg, logger)
	if err != nil {
		logger.PrintFatal(err, nil)
	}
}
