// Package container provides dependency injection using Uber FX
package container

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/culina/v2/internal/application/assistant"
	"github.com/culina/v2/internal/infrastructure/ai/gemini"
	"github.com/culina/v2/internal/infrastructure/ai/mock"
	"github.com/culina/v2/internal/infrastructure/cache"
	"github.com/culina/v2/internal/infrastructure/config"
	"github.com/culina/v2/internal/infrastructure/http/handlers"
	"github.com/culina/v2/internal/infrastructure/http/server"
	"github.com/culina/v2/internal/infrastructure/persistence/memory"
	"github.com/culina/v2/internal/ports/inbound"
	"github.com/culina/v2/internal/ports/outbound"
	"github.com/culina/v2/pkg/logger"
)

// Module provides all dependency injection modules
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	CacheModule,
	AIModule,
	RepositoryModule,
	ServiceModule,
	HandlerModule,
	HTTPModule,
	LifecycleModule,
)

// ConfigModule provides configuration
var ConfigModule = fx.Provide(
	func() (*config.Config, error) {
		return config.Load("")
	},
)

// LoggerModule provides logging
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, error) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.App.Debug,
			OutputPaths: cfg.App.LogOutputPaths,
		})
	},
	func(log *zap.Logger) *zap.SugaredLogger {
		return log.Sugar()
	},
)

// CacheModule provides the cache repository: Redis when response
// caching is enabled, in-memory otherwise.
var CacheModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (outbound.CacheRepository, error) {
		if !cfg.AI.EnableCache {
			log.Info("Using in-memory cache")
			return memory.NewCacheRepository(), nil
		}
		return cache.NewRedisCache(cfg.Redis, cfg.RedisAddr(), log)
	},
)

// AIModule provides the AI client. Without an API key the mock client
// serves deterministic responses so the full pipeline stays usable.
var AIModule = fx.Provide(
	func(cfg *config.Config, cacheRepo outbound.CacheRepository, log *zap.Logger) outbound.AIClient {
		var client outbound.AIClient
		if cfg.AI.APIKey == "" {
			log.Warn("No AI API key configured, using mock client")
			client = mock.NewClient(log)
		} else {
			client = gemini.NewClient(cfg.AI, log)
		}

		if cfg.AI.EnableCache {
			client = cache.NewCachedAIClient(client, cacheRepo, cfg.AI.CacheTTL, log)
		}
		return client
	},
)

// RepositoryModule provides repository implementations
var RepositoryModule = fx.Provide(
	fx.Annotate(
		memory.NewRecipeRepository,
		fx.As(new(outbound.RecipeRepository)),
	),
	fx.Annotate(
		memory.NewPlanRepository,
		fx.As(new(outbound.PlanRepository)),
	),
)

// ServiceModule provides application services
var ServiceModule = fx.Provide(
	fx.Annotate(
		assistant.NewService,
		fx.As(new(inbound.AssistantService)),
	),
)

// HandlerModule provides HTTP handlers
var HandlerModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) *handlers.HealthHandlers {
		return handlers.NewHealthHandlers(cfg.App.Version, log)
	},
	func(
		svc inbound.AssistantService,
		recipes outbound.RecipeRepository,
		plans outbound.PlanRepository,
		cfg *config.Config,
		log *zap.Logger,
	) *handlers.AssistantHandlers {
		// Full provider failures degrade to the same canned content the
		// demo mode serves, so the API stays usable through outages.
		fallback := assistant.NewService(mock.NewClient(log), log)
		return handlers.NewAssistantHandlers(svc, fallback, recipes, plans, cfg.App.DefaultLanguage, cfg.AI.APIKey == "", log)
	},
	handlers.NewRecipeHandlers,
	handlers.NewPlanHandlers,
)

// HTTPModule provides HTTP server and handlers
var HTTPModule = fx.Provide(
	server.NewServer,
)

// LifecycleModule provides lifecycle hooks
var LifecycleModule = fx.Invoke(
	RegisterLifecycleHooks,
)

// RegisterLifecycleHooks registers application lifecycle hooks
func RegisterLifecycleHooks(
	lc fx.Lifecycle,
	cfg *config.Config,
	log *zap.Logger,
	srv *server.Server,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting Culina application",
				zap.String("version", cfg.App.Version),
				zap.String("environment", cfg.App.Environment),
			)

			go func() {
				if err := srv.Start(); err != nil {
					log.Fatal("Failed to start HTTP server", zap.Error(err))
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down Culina application")

			if err := srv.Shutdown(ctx); err != nil {
				log.Error("Failed to shutdown HTTP server", zap.Error(err))
			}

			_ = log.Sync()
			return nil
		},
	})
}
