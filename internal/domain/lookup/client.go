package lookup

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/sync/singleflight"

	"github.com/disgoorg/card-binder/internal/domain/tcg"
)

const (
	MaxSuggestions   = 10
	DefaultCacheSize = 256
)

// Client routes lookups to the provider registered for a game and caches
// full records.
type Client struct {
	providers map[tcg.Game]Provider
	cache     *lru.Cache
	group     singleflight.Group
}

func NewClient(cacheSize int, providers ...Provider) (*Client, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New(cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create lookup cache: %w", err)
	}

	c := &Client{
		providers: make(map[tcg.Game]Provider, len(providers)),
		cache:     cache,
	}
	for _, p := range providers {
		c.providers[p.Game()] = p
	}
	return c, nil
}

func (c *Client) Supports(game tcg.Game) bool {
	_, ok := c.providers[game]
	return ok
}

// Suggest returns at most MaxSuggestions distinct, trimmed names.
func (c *Client) Suggest(ctx context.Context, game tcg.Game, query string) ([]string, error) {
	p, ok := c.providers[game]
	if !ok {
		return nil, ErrNoEndpoint
	}

	start := time.Now()
	names, err := p.Suggest(ctx, query)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, min(len(names), MaxSuggestions))
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
		if len(out) == MaxSuggestions {
			break
		}
	}

	slog.Debug("Suggestions fetched",
		slog.String("type", "lookup"),
		slog.String("game", game.String()),
		slog.String("query", query),
		slog.Int("count", len(out)),
		slog.Duration("took", time.Since(start)),
	)
	return out, nil
}

// Fetch returns the full record for name. Concurrent fetches of the same
// card share one request.
func (c *Client) Fetch(ctx context.Context, game tcg.Game, name string) (*ExternalCard, error) {
	p, ok := c.providers[game]
	if !ok {
		return nil, ErrNoEndpoint
	}

	key := game.Slug() + ":" + strings.ToLower(strings.TrimSpace(name))
	if v, ok := c.cache.Get(key); ok {
		return v.(*ExternalCard), nil
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		if v, ok := c.cache.Get(key); ok {
			return v, nil
		}
		card, err := p.Fetch(ctx, name)
		if err != nil {
			return nil, err
		}
		if len(card.Printings) == 0 {
			return nil, fmt.Errorf("%s: %w", card.Name, ErrNoPrintings)
		}
		c.cache.Add(key, card)
		return card, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*ExternalCard), nil
}
