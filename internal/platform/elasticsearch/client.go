// File: internal/platform/elasticsearch/client.go
package elasticsearch

import (
	"fmt"
	"net/http"
	"time"

	"foodshare_backend/internal/config"

	"github.com/elastic/elastic-transport-go/v8/elastictransport"
	"github.com/elastic/go-elasticsearch/v8"
	"go.uber.org/zap"
)

// zapTransportLogger routes transport-level request logs through zap.
type zapTransportLogger struct {
	logger *zap.Logger
}

func (l zapTransportLogger) LogRoundTrip(req *http.Request, res *http.Response, err error, start time.Time, dur time.Duration) error {
	fields := []zap.Field{
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
		zap.Duration("duration", dur),
	}
	if res != nil {
		fields = append(fields, zap.Int("status", res.StatusCode))
	}
	if err != nil {
		l.logger.Warn("Elasticsearch round trip failed", append(fields, zap.Error(err))...)
		return nil
	}
	l.logger.Debug("Elasticsearch round trip", fields...)
	return nil
}

func (l zapTransportLogger) RequestBodyEnabled() bool  { return false }
func (l zapTransportLogger) ResponseBodyEnabled() bool { return false }

var _ elastictransport.Logger = zapTransportLogger{}

// ESClientWrapper wraps the official Elasticsearch client. A nil wrapper is a
// valid value and means search mirroring is disabled.
type ESClientWrapper struct {
	Client *elasticsearch.Client
	Logger *zap.Logger
}

// NewClient creates a new Elasticsearch client wrapper. When no URL is
// configured it returns (nil, nil) and the caller falls back to SQL search.
func NewClient(cfg *config.Config, logger *zap.Logger) (*ESClientWrapper, error) {
	if cfg.ElasticsearchURL == "" {
		logger.Info("ELASTICSEARCH_URL not set, search mirror disabled")
		return nil, nil
	}

	esCfg := elasticsearch.Config{
		Addresses: []string{cfg.ElasticsearchURL},
		Transport: &http.Transport{
			MaxIdleConnsPerHost:   10,
			ResponseHeaderTimeout: 10 * time.Second,
		},
		Logger: zapTransportLogger{logger: logger.Named("es-transport")},
	}

	client, err := elasticsearch.NewClient(esCfg)
	if err != nil {
		return nil, fmt.Errorf("error creating elasticsearch client: %w", err)
	}

	res, err := client.Info()
	if err != nil {
		return nil, fmt.Errorf("error pinging elasticsearch: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch info request failed: %s", res.String())
	}

	logger.Info("Successfully connected to Elasticsearch", zap.String("url", cfg.ElasticsearchURL))
	return &ESClientWrapper{Client: client, Logger: logger}, nil
}
