package cmd

import (
	"context"
	"fmt"
	"net/http"

	"github.com/disgoorg/card-binder/internal/config"
	"github.com/disgoorg/card-binder/internal/domain/collection"
	"github.com/disgoorg/card-binder/internal/domain/lookup"
	"github.com/disgoorg/card-binder/internal/gateways/database"
	"github.com/disgoorg/card-binder/internal/gateways/database/repositories"
	"github.com/disgoorg/card-binder/internal/gateways/storage"
	"github.com/disgoorg/card-binder/internal/logger"
	"github.com/disgoorg/card-binder/internal/notify"
)

// openRepository connects the storage backend. The returned func releases it.
func openRepository(ctx context.Context, backend config.Backend) (collection.Repository, func(), error) {
	nop := func() {}
	s := cfg.Storage

	switch backend {
	case config.BackendFile:
		return storage.NewFile(s.Dir), nop, nil

	case config.BackendRedis:
		r, err := storage.NewRedis(ctx, s.RedisURL, s.RedisPrefix)
		if err != nil {
			return nil, nop, err
		}
		return r, func() { _ = r.Close() }, nil

	case config.BackendMongo:
		m, err := storage.NewMongo(ctx, s.MongoURI, s.MongoDatabase)
		if err != nil {
			return nil, nop, err
		}
		return m, func() { _ = m.Close(context.Background()) }, nil

	case config.BackendSpaces:
		sp, err := storage.NewSpaces(ctx, s.Spaces)
		if err != nil {
			return nil, nop, err
		}
		return sp, nop, nil

	case config.BackendPostgres:
		db, err := database.New(ctx, cfg.DB)
		if err != nil {
			return nil, nop, err
		}
		if err := db.InitializeSchema(ctx); err != nil {
			_ = db.Close()
			return nil, nop, err
		}
		return repositories.NewKVRepository(db.BunDB()), func() { _ = db.Close() }, nil
	}
	return nil, nop, fmt.Errorf("%w: unknown storage backend %q", config.ErrInvalidConfig, backend)
}

func loadStore(ctx context.Context) (*collection.Store, func(), error) {
	repo, closeRepo, err := openRepository(ctx, cfg.Storage.Backend)
	if err != nil {
		return nil, nil, err
	}
	logger.LogSystem("Storage ready", "backend", string(cfg.Storage.Backend))
	return collection.Load(ctx, repo, collection.WithKey(cfg.Storage.Key)), closeRepo, nil
}

func newLookupClient() (*lookup.Client, error) {
	l := cfg.Lookup
	httpClient := &http.Client{Timeout: l.Timeout()}
	return lookup.NewClient(l.CacheSize,
		lookup.NewScryfall(l.ScryfallURL, httpClient),
		lookup.NewPokemonTCG(l.PokemonTCGURL, httpClient),
		lookup.NewYGOProDeck(l.YGOProDeckURL, httpClient),
	)
}

// newNotifier returns the feed the API serves and the notifier every toast
// goes through.
func newNotifier() (*notify.Feed, notify.Notifier, error) {
	feed := notify.NewFeed(cfg.Notify.FeedSize)
	n := notify.Multi{feed, notify.Log{}}
	if url := cfg.Notify.DiscordWebhookURL; url != "" {
		d, err := notify.NewDiscord(url)
		if err != nil {
			return nil, nil, err
		}
		n = append(n, d)
	}
	return feed, n, nil
}
