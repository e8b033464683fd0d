package handler

import (
	"github.com/jellydator/ttlcache/v3"
	"github.com/ndukwe/athenaeum/config"
	"github.com/ndukwe/athenaeum/internal/jsonlog"
	"github.com/ndukwe/athenaeum/service"
)

// Handler defines Handler layer.
type Handler struct {
	config  config.Config
	logger  *jsonlog.Logger
	cache   *ttlcache.Cache[string, int64]
	service service.Service
}

// New creates a new instance of Handler.
func New(cfg config.Config, logger *jsonlog.Logger, cache *ttlcache.Cache[string, int64], service service.Service) *Handler {
	return &Handler{
		config:  cfg,
		logger:  logger,
		cache:   cache,
		service: service,
	}
}
