package handler

import (
	"github.com/jellydator/ttlcache/v3"
	"github.com/mvrana/libris/config"
	"github.com/mvrana/libris/internal/jsonlog"
	"github.com/mvrana/libris/service"
	"golang.org/x/time/rate"
)

// Handler defines Handler layer. The cache holds one rate limiter per client
// IP; entries expire on their own once a client goes quiet.
type Handler struct {
	config  config.Config
	logger  *jsonlog.Logger
	cache   *ttlcache.Cache[string, *rate.Limiter]
	service service.Service
}

// New creates a new instance of Handler.
func New(cfg config.Config, logger *jsonlog.Logger, cache *ttlcache.Cache[string, *rate.Limiter], service service.Service) *Handler {
	return &Handler{
		config:  cfg,
		logger:  logger,
		cache:   cache,
		service: service,
	}
}
