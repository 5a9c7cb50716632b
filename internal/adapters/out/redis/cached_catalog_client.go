// Package redis provides a read-through cache in front of the catalog
// client. Gig lookups repeat for every order of a popular gig, so they are
// cached with a TTL; profile lookups carry the buyer's payment country and
// are always read fresh.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"orders/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

// DefaultGigTTL bounds how stale a cached gig can get. Price changes take
// effect on new orders within this window.
const DefaultGigTTL = 5 * time.Minute

// CachedCatalogClient wraps a CatalogClient with a Redis read-through cache
// for gig lookups. Cache failures degrade to direct lookups; they are logged
// and never surface to the caller.
type CachedCatalogClient struct {
	inner  ports.CatalogClient
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedCatalogClient creates the caching wrapper. A non-positive ttl
// falls back to DefaultGigTTL.
func NewCachedCatalogClient(inner ports.CatalogClient, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedCatalogClient {
	if ttl <= 0 {
		ttl = DefaultGigTTL
	}
	return &CachedCatalogClient{
		inner:  inner,
		client: client,
		ttl:    ttl,
		logger: logger.With("component", "catalog_cache"),
	}
}

func gigKey(gigID string) string {
	return "catalog:gig:" + gigID
}

// GetGig returns the cached gig when present, otherwise reads through to the
// catalog and caches the result.
func (c *CachedCatalogClient) GetGig(ctx context.Context, gigID string) (ports.Gig, error) {
	cached, err := c.client.Get(ctx, gigKey(gigID)).Result()
	if err == nil {
		var gig ports.Gig
		if unmarshalErr := json.Unmarshal([]byte(cached), &gig); unmarshalErr == nil {
			return gig, nil
		}
		// undecodable entry: fall through and overwrite it
	} else if err != redis.Nil {
		c.logger.WarnContext(ctx, "gig cache read failed", "gigId", gigID, "error", err)
	}

	gig, err := c.inner.GetGig(ctx, gigID)
	if err != nil {
		return ports.Gig{}, err
	}

	data, err := json.Marshal(gig)
	if err != nil {
		return ports.Gig{}, fmt.Errorf("failed to marshal gig for cache: %w", err)
	}
	if err = c.client.Set(ctx, gigKey(gigID), data, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "gig cache write failed", "gigId", gigID, "error", err)
	}

	return gig, nil
}

// GetProfile always reads through to the profile service.
func (c *CachedCatalogClient) GetProfile(ctx context.Context, accountID string) (ports.Profile, error) {
	return c.inner.GetProfile(ctx, accountID)
}
