package graph

import (
	"net/http"
	"time"

	"github.com/mikey/inbox-cleanup-agent/internal/config"
	"github.com/mikey/inbox-cleanup-agent/internal/core"
	"go.uber.org/zap"
)

// Factory creates Graph mail stores
type Factory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewFactory creates a new Graph factory
func NewFactory(cfg *config.Config, logger *zap.Logger) *Factory {
	return &Factory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateMailStore creates a new Graph mail store
func (f *Factory) CreateMailStore() (core.MailStore, error) {
	graphCfg := f.cfg.GetGraph()

	httpClient := &http.Client{
		Timeout: time.Duration(graphCfg.RequestTimeoutSecs) * time.Second,
	}

	tokens := NewStaticTokenSource(graphCfg.AccessToken)

	return NewMailStore(httpClient, graphCfg.BaseURL, tokens, f.logger), nil
}
