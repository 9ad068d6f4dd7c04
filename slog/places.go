package slog

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/fwojciec/nps"
)

// Ensure LoggingPlacesClient implements nps.PlacesClient.
var _ nps.PlacesClient = (*LoggingPlacesClient)(nil)

// LoggingPlacesClient wraps a PlacesClient with logging.
type LoggingPlacesClient struct {
	next   nps.PlacesClient
	logger *slog.Logger
}

// NewLoggingPlacesClient creates a new LoggingPlacesClient.
func NewLoggingPlacesClient(next nps.PlacesClient, logger *slog.Logger) *LoggingPlacesClient {
	return &LoggingPlacesClient{next: next, logger: logger}
}

// Search delegates to the wrapped client and logs the operation.
func (c *LoggingPlacesClient) Search(ctx context.Context, zipcode string) (raw json.RawMessage, err error) {
	defer func(begin time.Time) {
		c.logger.Info("places search",
			"zipcode", zipcode,
			"bytes", len(raw),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Search(ctx, zipcode)
}
