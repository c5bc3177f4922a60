package factory

import (
	"go.uber.org/zap"

	"github.com/mikey/scam-honeypot/internal/adapters/httpapi"
	"github.com/mikey/scam-honeypot/internal/config"
	"github.com/mikey/scam-honeypot/internal/core"
)

// FilterFactory creates the inbound message filter
type FilterFactory struct {
	cfg     *config.Config
	logger  *zap.Logger
	service *core.HoneypotService
}

// NewFilterFactory creates a new filter factory
func NewFilterFactory(cfg *config.Config, logger *zap.Logger, service *core.HoneypotService) *FilterFactory {
	return &FilterFactory{
		cfg:     cfg,
		logger:  logger,
		service: service,
	}
}

// CreateMessageFilter creates the HTTP message filter
func (f *FilterFactory) CreateMessageFilter() (core.MessageFilter, error) {
	return httpapi.NewServer(
		f.service,
		f.logger,
		f.cfg.GetString("server.listen_address"),
		f.cfg.GetString("server.api_key"),
	), nil
}
