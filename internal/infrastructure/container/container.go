package container

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/nearchat/nearchat-backend/internal/config"
	httpdelivery "github.com/nearchat/nearchat-backend/internal/delivery/http"
	"github.com/nearchat/nearchat-backend/internal/delivery/http/handler"
	"github.com/nearchat/nearchat-backend/internal/infrastructure/database"
	"github.com/nearchat/nearchat-backend/internal/infrastructure/gemini"
	"github.com/nearchat/nearchat-backend/internal/infrastructure/server"
	"github.com/nearchat/nearchat-backend/internal/observability"
	"github.com/nearchat/nearchat-backend/internal/repository"
	"github.com/nearchat/nearchat-backend/internal/repository/catalog"
	fsrepo "github.com/nearchat/nearchat-backend/internal/repository/firestore"
	"github.com/nearchat/nearchat-backend/internal/repository/memory"
	"github.com/nearchat/nearchat-backend/internal/repository/noop"
	pgrepo "github.com/nearchat/nearchat-backend/internal/repository/postgres"
	"github.com/nearchat/nearchat-backend/internal/repository/redisstore"
	"github.com/nearchat/nearchat-backend/internal/usecase/conversation"
	"github.com/nearchat/nearchat-backend/internal/usecase/feed"
	"github.com/nearchat/nearchat-backend/internal/usecase/profile"
	"github.com/nearchat/nearchat-backend/internal/usecase/reply"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config

	DB        *sqlx.DB
	Redis     *redis.Client
	Firestore *firestore.Client
	Gemini    *gemini.Client

	Store         repository.MessageStore
	Conversations *conversation.Manager
	Pipeline      *reply.Pipeline
	Server        *server.Server
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	ctx := context.Background()
	log := observability.Logger()

	c := &Container{Config: cfg}

	// Message store: the Connected/Disconnected decision is made exactly
	// once here; everything downstream receives the handle explicitly.
	c.Store = c.newMessageStore(ctx, cfg)

	// Match catalog: Postgres when configured, static otherwise.
	catalogRepo := c.newCatalog(ctx, cfg)

	// Presence: Redis when configured, in-process otherwise.
	presence := c.newPresence(cfg)

	// Reply generator: Gemini when an API key is configured.
	generator := c.newGenerator(ctx, cfg)

	c.Conversations = conversation.NewManager(c.Store, catalogRepo)
	c.Pipeline = reply.NewPipeline(c.Store, presence, c.Conversations, generator)

	profileUseCase := profile.NewUseCase(c.Store)
	feedUseCase := feed.NewFeedUseCase(catalogRepo)

	profileHandler := handler.NewProfileHandler(profileUseCase)
	feedHandler := handler.NewFeedHandler(feedUseCase)
	chatHandler := handler.NewChatHandler(c.Conversations, c.Pipeline, profileUseCase)
	sessionHandler := handler.NewSessionHandler(c.Conversations, profileUseCase)

	router := httpdelivery.NewRouter(profileHandler, feedHandler, chatHandler, sessionHandler)
	c.Server = server.NewServer(&cfg.Server, router.Setup())

	log.Info("application wired",
		"storage", cfg.Storage.Type,
		"catalog_db", cfg.Database.Host != "",
		"redis", cfg.Redis.Host != "",
		"gemini", cfg.Gemini.APIKey != "",
	)
	return c, nil
}

func (c *Container) newMessageStore(ctx context.Context, cfg *config.Config) repository.MessageStore {
	log := observability.Logger()

	if cfg.Storage.Type == "memory" {
		log.Info("using in-memory message store")
		return memory.NewMessageStore()
	}

	client, err := database.NewFirestoreClient(ctx, &cfg.Firestore)
	if err != nil {
		// Deliberate fallback, logged once and never surfaced to the user:
		// appends silently succeed without persistence from here on.
		log.Warn("document store unavailable, running in mock mode", "error", err)
		return noop.NewMessageStore()
	}

	c.Firestore = client
	return fsrepo.NewMessageStore(client)
}

func (c *Container) newCatalog(ctx context.Context, cfg *config.Config) repository.CatalogRepository {
	log := observability.Logger()

	if cfg.Database.Host == "" {
		return catalog.NewStaticCatalog()
	}

	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Warn("catalog database unavailable, using static catalog", "error", err)
		return catalog.NewStaticCatalog()
	}

	if err := pgrepo.Seed(ctx, db, catalog.DefaultMatches()); err != nil {
		log.Warn("seeding match catalog failed, using static catalog", "error", err)
		_ = db.Close()
		return catalog.NewStaticCatalog()
	}

	c.DB = db
	return pgrepo.NewCatalogRepository(db)
}

func (c *Container) newPresence(cfg *config.Config) repository.PresenceStore {
	log := observability.Logger()

	if cfg.Redis.Host == "" {
		return memory.NewPresenceStore()
	}

	client, err := database.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Warn("redis unavailable, using in-process presence store", "error", err)
		return memory.NewPresenceStore()
	}

	c.Redis = client
	return redisstore.NewPresenceStore(client)
}

func (c *Container) newGenerator(ctx context.Context, cfg *config.Config) reply.Generator {
	log := observability.Logger()

	if cfg.Gemini.APIKey == "" {
		log.Info("no gemini api key configured, using mock replies")
		return gemini.NewMockGenerator()
	}

	client, err := gemini.NewClient(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		log.Warn("gemini client init failed, using mock replies", "error", err)
		return gemini.NewMockGenerator()
	}

	c.Gemini = client
	return client
}

// Close closes all connections
func (c *Container) Close() error {
	// Let in-flight reply legs finish before tearing clients down.
	if c.Pipeline != nil {
		c.Pipeline.Wait()
	}
	if c.Conversations != nil {
		c.Conversations.Reset()
	}

	if c.Gemini != nil {
		c.Gemini.Close()
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			observability.Logger().Error("closing redis", "error", err)
		}
	}

	if c.Firestore != nil {
		if err := c.Firestore.Close(); err != nil {
			observability.Logger().Error("closing firestore", "error", err)
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}
