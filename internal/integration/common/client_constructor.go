package common

import (
	"github.com/futig/scholar-backend/internal/config"
	pkgHTTP "github.com/futig/scholar-backend/pkg/http"
	"go.uber.org/zap"
)

// NewBaseConnector builds the HTTP connector shared by every external service client
func NewBaseConnector(cfg config.HTTPClientConfig, logger *zap.Logger) *pkgHTTP.Connector {
	connCfg := &pkgHTTP.ConnectorConfig{
		Logger:  logger,
		BaseURL: cfg.Url,
	}

	opts := []pkgHTTP.HttpOpts{
		pkgHTTP.WithTimeouts(pkgHTTP.Timeouts{
			Connect:        cfg.ConnTimeout,
			Request:        cfg.RequestTimeout,
			KeepAlive:      cfg.KeepAlive,
			ResponseHeader: cfg.ResponseHeaderTimeout,
			IdleConn:       cfg.IdleConnTimeout,
		}),
		pkgHTTP.WithConnectionPool(0, cfg.MaxIdleConnsPerHost),
		pkgHTTP.WithInsecureSkipVerify(cfg.InsecureSkipVerify),
		pkgHTTP.WithRequestLogging(),
		pkgHTTP.WithAuthToken(cfg.Token),
	}

	if cfg.APIKey != "" {
		opts = append(opts, pkgHTTP.WithAPIKey(cfg.APIKeyHeader, cfg.APIKey))
	}

	return pkgHTTP.NewConnector(connCfg, opts...)
}
