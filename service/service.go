package service

import (
	"sync"

	"github.com/ndukwe/athenaeum/config"
	"github.com/ndukwe/athenaeum/internal/jsonlog"
	"github.com/ndukwe/athenaeum/repository"
)

type Service interface {
	books
	members
	borrows
	stats
	failedValidation(map[string]string) error
}

// Service defines the app's service layer.
type service struct {
	config config.Config
	wg     *sync.WaitGroup
	logger *jsonlog.Logger
	repo   repository.Repository
}

// New creates a new instance of Service.
func New(cfg config.Config, wg *sync.WaitGroup, logger *jsonlog.Logger, repo repository.Repository) *service {
	return &service{
		config: cfg,
		wg:     wg,
		logger: logger,
		repo:   repo,
	}
}
