// Package main provides the entry point for the Leo's Kitchen API service.
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/xiuxiu06/leos-kitchen/internal/application/auth"
	"github.com/xiuxiu06/leos-kitchen/internal/application/chat"
	"github.com/xiuxiu06/leos-kitchen/internal/application/nutrition"
	"github.com/xiuxiu06/leos-kitchen/internal/application/profile"
	"github.com/xiuxiu06/leos-kitchen/internal/application/recipe"
	"github.com/xiuxiu06/leos-kitchen/internal/infrastructure/ai/openai"
	"github.com/xiuxiu06/leos-kitchen/internal/infrastructure/cache"
	"github.com/xiuxiu06/leos-kitchen/internal/infrastructure/config"
	"github.com/xiuxiu06/leos-kitchen/internal/infrastructure/http/handlers"
	"github.com/xiuxiu06/leos-kitchen/internal/infrastructure/http/middleware"
	"github.com/xiuxiu06/leos-kitchen/internal/infrastructure/http/server"
	"github.com/xiuxiu06/leos-kitchen/internal/infrastructure/http/session"
	gormrepo "github.com/xiuxiu06/leos-kitchen/internal/infrastructure/persistence/gorm"
	"github.com/xiuxiu06/leos-kitchen/internal/infrastructure/persistence/sqlite"
	"github.com/xiuxiu06/leos-kitchen/internal/infrastructure/security"
	"github.com/xiuxiu06/leos-kitchen/internal/ports/outbound"
	"github.com/xiuxiu06/leos-kitchen/pkg/logger"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	fmt.Println("Leo's Kitchen API - share meals, hit your macros")
	fmt.Println()

	app := fx.New(
		fx.NopLogger,

		fx.Provide(func() (*config.Config, error) {
			return config.Load("")
		}),

		fx.Provide(func(cfg *config.Config) (*zap.Logger, error) {
			return logger.New(logger.Config{
				Level:       cfg.App.LogLevel,
				Format:      cfg.App.LogFormat,
				Development: cfg.App.Debug,
			})
		}),

		// Persistence
		fx.Provide(func(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
			level := gormlogger.Warn
			if cfg.App.Debug {
				level = gormlogger.Info
			}
			db, err := sqlite.SetupDatabase(cfg.Database, level)
			if err != nil {
				return nil, err
			}
			if cfg.Database.Seed {
				if err := sqlite.SeedDatabase(db); err != nil {
					log.Warn("Database seeding failed", zap.Error(err))
				}
			}
			return db, nil
		}),
		fx.Provide(func(db *gorm.DB) outbound.UserRepository {
			return gormrepo.NewUserRepository(db)
		}),
		fx.Provide(func(db *gorm.DB) outbound.RecipeRepository {
			return gormrepo.NewRecipeRepository(db)
		}),
		fx.Provide(func(db *gorm.DB) outbound.NutritionRepository {
			return gormrepo.NewNutritionRepository(db)
		}),

		// Cache is optional: a down Redis degrades reads, never startup
		fx.Provide(func(cfg *config.Config, log *zap.Logger) outbound.CacheRepository {
			if !cfg.Redis.Enabled {
				return nil
			}
			redisCache, err := cache.NewRedisCache(cfg.Redis)
			if err != nil {
				log.Warn("Redis unavailable, feed caching disabled", zap.Error(err))
				return nil
			}
			return redisCache
		}),

		// Security
		fx.Provide(func() outbound.PasswordHasher {
			return security.NewSHA256Hasher()
		}),
		fx.Provide(func(cfg *config.Config) *security.TokenService {
			return security.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.JWTExpiration)
		}),

		// AI
		fx.Provide(func(cfg *config.Config, log *zap.Logger) outbound.ChatCompletionService {
			return openai.NewClient(cfg.AI, log)
		}),

		// Application services
		fx.Provide(auth.NewService),
		fx.Provide(profile.NewService),
		fx.Provide(recipe.NewService),
		fx.Provide(nutrition.NewService),
		fx.Provide(chat.NewService),

		// HTTP
		fx.Provide(func(cfg *config.Config, log *zap.Logger) *session.Store {
			maxAge := time.Duration(cfg.Auth.SessionMaxAge) * time.Second
			return session.NewStore(maxAge, cfg.Auth.SecureCookies, log)
		}),
		fx.Provide(middleware.New),
		fx.Provide(handlers.NewAuthAPIHandlers),
		fx.Provide(handlers.NewRecipeAPIHandlers),
		fx.Provide(handlers.NewProfileAPIHandlers),
		fx.Provide(handlers.NewChatAPIHandlers),
		fx.Provide(func(
			cfg *config.Config,
			mw *middleware.Middleware,
			authH *handlers.AuthAPIHandlers,
			recipeH *handlers.RecipeAPIHandlers,
			profileH *handlers.ProfileAPIHandlers,
			chatH *handlers.ChatAPIHandlers,
			log *zap.Logger,
		) *server.Server {
			return server.New(cfg, mw, server.Handlers{
				Auth:    authH,
				Recipe:  recipeH,
				Profile: profileH,
				Chat:    chatH,
			}, log)
		}),

		fx.Invoke(registerLifecycleHooks),
	)

	app.Run()
}

func registerLifecycleHooks(
	lc fx.Lifecycle,
	cfg *config.Config,
	log *zap.Logger,
	srv *server.Server,
	sessions *session.Store,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting API server",
				zap.String("app", cfg.App.Name),
				zap.String("version", cfg.App.Version),
				zap.String("environment", cfg.App.Environment),
				zap.Int("port", cfg.Server.Port),
			)
			go func() {
				if err := srv.Start(); err != nil {
					log.Fatal("HTTP server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
			defer cancel()
			sessions.Close()
			return srv.Shutdown(shutdownCtx)
		},
	})
}
