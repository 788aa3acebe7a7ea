package modules

import (
	"context"
	"fmt"
	"time"

	"gametrack/api/handlers"
	"gametrack/api/middleware"
	"gametrack/api/routes"
	"gametrack/fetcher/repositories"
	"gametrack/fetcher/requests"
	"gametrack/pkg/config"
	"gametrack/pkg/database"
	"gametrack/pkg/logger"
	"gametrack/pkg/redis"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

const startupTimeout = 30 * time.Second

// Module provides everything the API server needs.
var Module = fx.Options(
	fx.Provide(config.Load),
	fx.Provide(ProvideLogger),
	fx.Provide(ProvideZerolog),
	fx.Provide(ProvideDatabase),
	fx.Provide(ProvideRedis),
	// repos
	fx.Provide(repositories.NewMatchRepository),
	fx.Provide(repositories.NewPlayerRepository),
	// riot
	fx.Provide(ProvideRiotClient),
	fx.Provide(ProvideFetcher),
	// svc
	fx.Provide(ProvideSyncService),
	fx.Provide(ProvidePlayerService),
	// http
	fx.Provide(ProvidePlayerHandler),
	fx.Provide(ProvideRouter),
)

// ProvideLogger creates the file backed logger and closes it on stop.
func ProvideLogger(lc fx.Lifecycle, cfg *config.Config) (*logger.Logger, error) {
	l, err := logger.New(cfg)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return l.Close()
		},
	})

	return l, nil
}

func ProvideZerolog(l *logger.Logger) zerolog.Logger {
	return l.Logger
}

// ProvideDatabase connects to postgres and runs the migrations.
func ProvideDatabase(lc fx.Lifecycle, cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	db, err := database.NewConnection(cfg.Database.DSN)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()
	if err := database.RunMigrations(ctx, db); err != nil {
		database.Close(db)
		return nil, fmt.Errorf("couldn't migrate the database: %w", err)
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if err := database.Close(db); err != nil {
				log.Warn().Err(err).Msg("error closing database connection")
			}
			return nil
		},
	})

	return db, nil
}

// ProvideRedis connects to redis and closes the client on stop.
func ProvideRedis(lc fx.Lifecycle, cfg *config.Config) (*redis.RedisClient, error) {
	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	client, err := redis.NewClient(ctx, cfg.Redis)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})

	return client, nil
}

// ProvideRiotClient creates the single rate limited client shared by every fetcher.
func ProvideRiotClient(cfg *config.Config, log zerolog.Logger) (requests.Caller, error) {
	return requests.NewClientFromConfig(cfg, log.With().Str("component", "riot").Logger())
}

// ProvideRouter creates the gin engine with the request id middleware.
func ProvideRouter(cfg *config.Config, log zerolog.Logger, playerHandler *handlers.PlayerHandler) *routes.Router {
	if cfg.Environment == "production" || cfg.Environment == "docker" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), middleware.RequestID(log))

	router := routes.NewRouter(engine)
	router.SetupRoutes(playerHandler)

	return router
}
