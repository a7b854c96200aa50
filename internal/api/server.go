// Package api exposes the binder over a JSON HTTP API.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	lru "github.com/hashicorp/golang-lru"

	"github.com/disgoorg/card-binder/internal/clock"
	"github.com/disgoorg/card-binder/internal/config"
	"github.com/disgoorg/card-binder/internal/domain/chat"
	"github.com/disgoorg/card-binder/internal/domain/collection"
	"github.com/disgoorg/card-binder/internal/domain/lookup"
	"github.com/disgoorg/card-binder/internal/notify"
)

// Deps are the long lived services the handlers work against.
type Deps struct {
	Store  *collection.Store
	Lookup lookup.Lookup
	Inbox  *chat.Inbox
	// Feed is read by GET /api/notifications. Notifier receives every toast
	// and should include Feed.
	Feed     *notify.Feed
	Notifier notify.Notifier
	Clock    clock.Clock
	Version  string
}

type Server struct {
	app      *fiber.App
	cfg      config.ServerConfig
	deps     Deps
	sessions *lru.Cache

	// ctx bounds background autocomplete queries.
	ctx    context.Context
	cancel context.CancelFunc
}

func New(cfg config.ServerConfig, deps Deps) (*Server, error) {
	if deps.Store == nil || deps.Lookup == nil {
		return nil, errors.New("api: store and lookup are required")
	}
	if deps.Clock == nil {
		deps.Clock = clock.Real{}
	}
	if deps.Feed == nil {
		deps.Feed = notify.NewFeed(0)
	}
	if deps.Notifier == nil {
		deps.Notifier = deps.Feed
	}
	if deps.Inbox == nil {
		deps.Inbox = chat.NewInbox(deps.Clock)
	}

	size := cfg.SessionCacheSize
	if size <= 0 {
		size = 128
	}
	sessions, err := lru.NewWithEvict(size, onSessionEvicted)
	if err != nil {
		return nil, fmt.Errorf("failed to create session cache: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		cfg:      cfg,
		deps:     deps,
		sessions: sessions,
		ctx:      ctx,
		cancel:   cancel,
	}

	s.app = fiber.New(fiber.Config{
		AppName:               "Card Binder API",
		ServerHeader:          "Card-Binder",
		ErrorHandler:          CustomErrorHandler,
		DisableStartupMessage: true,
	})

	s.app.Use(recover.New())
	s.app.Use(SecurityHeaders())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	origins := cfg.CORSOrigins
	if origins == "" {
		origins = "*"
	}
	s.app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))
	s.app.Use(LoggingMiddleware())

	s.setupRoutes()
	return s, nil
}

func (s *Server) App() *fiber.App { return s.app }

func (s *Server) Listen(addr string) error {
	slog.Info("Starting API server",
		slog.String("type", "sys"),
		slog.String("address", addr),
	)
	return s.app.Listen(addr)
}

// Shutdown stops accepting requests, waits for in-flight ones and stops
// every intake session.
func (s *Server) Shutdown(ctx context.Context) error {
	s.cancel()
	err := s.app.ShutdownWithContext(ctx)
	s.sessions.Purge()
	return err
}

func (s *Server) setupRoutes() {
	s.app.Get("/health", s.health)

	api := s.app.Group("/api")
	api.Get("/games", s.listGames)
	api.Get("/notifications", s.listNotifications)

	cards := api.Group("/collection")
	cards.Get("/:game", s.listCards)
	cards.Post("/:game", s.addCard)
	cards.Get("/:game/:id", s.cardDetails)
	cards.Delete("/:game/:id", s.removeCard)

	intake := api.Group("/intake")
	if s.cfg.RateLimit > 0 {
		intake.Use(limiter.New(limiter.Config{
			Max:        s.cfg.RateLimit,
			Expiration: time.Minute,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return SendError(c, fiber.StatusTooManyRequests, "RATE_LIMITED", "Too many requests, slow down", nil)
			},
		}))
	}
	intake.Post("/", s.createSession)
	intake.Get("/:id", s.getSession)
	intake.Post("/:id/game", s.sessionGame)
	intake.Post("/:id/name", s.sessionName)
	intake.Post("/:id/fields", s.sessionFields)
	intake.Post("/:id/base", s.sessionBase)
	intake.Post("/:id/copies", s.sessionCopies)
	intake.Post("/:id/grading", s.sessionGrading)
	intake.Post("/:id/suggestions/select", s.selectSuggestion)
	intake.Post("/:id/printings/select", s.selectPrinting)
	intake.Post("/:id/submit", s.submitSession)

	market := api.Group("/market")
	market.Get("/", s.listListings)
	market.Get("/:id", s.getListing)

	messages := api.Group("/messages")
	messages.Get("/", s.listConversations)
	messages.Post("/", s.startConversation)
	messages.Get("/:id", s.getConversation)
	messages.Post("/:id", s.sendMessage)

	s.app.Use(func(c *fiber.Ctx) error {
		slog.Warn("No route matched for request",
			slog.String("type", "http"),
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.String("ip", c.IP()),
		)
		return SendNotFound(c, "The requested resource was not found")
	})
}
