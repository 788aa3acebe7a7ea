package modules

import (
	"gametrack/api/handlers"
	playerservice "gametrack/api/services/player"
	"gametrack/fetcher/data"
	"gametrack/fetcher/repositories"
	"gametrack/fetcher/requests"
	syncservice "gametrack/fetcher/services/sync"
	"gametrack/pkg/config"
	"gametrack/pkg/redis"

	"github.com/rs/zerolog"
)

func ProvideFetcher(caller requests.Caller, cfg *config.Config, log zerolog.Logger) *data.MainFetcher {
	return data.NewMainFetcher(caller, cfg.Sync.Workers, log)
}

func ProvideSyncService(
	fetcher *data.MainFetcher,
	matchRepo repositories.MatchRepository,
	playerRepo repositories.PlayerRepository,
	cfg *config.Config,
	log zerolog.Logger,
) *syncservice.SyncService {
	return syncservice.NewSyncService(&syncservice.SyncServiceDeps{
		MatchFetcher:     fetcher.Match,
		MatchRepository:  matchRepo,
		PlayerRepository: playerRepo,
		Logger:           log.With().Str("component", "sync").Logger(),
		Timeout:          cfg.Sync.Timeout,
	})
}

func ProvidePlayerService(
	fetcher *data.MainFetcher,
	syncService *syncservice.SyncService,
	redisClient *redis.RedisClient,
	matchRepo repositories.MatchRepository,
	playerRepo repositories.PlayerRepository,
	cfg *config.Config,
	log zerolog.Logger,
) *playerservice.PlayerService {
	// Initialize the player service.
	return playerservice.NewPlayerService(&playerservice.PlayerServiceDeps{
		Resolver:         fetcher.Account,
		Syncer:           syncService,
		Redis:            redisClient,
		MatchRepository:  matchRepo,
		PlayerRepository: playerRepo,
		LockDuration:     cfg.Sync.LockDuration,
		Logger:           log,
	})
}

func ProvidePlayerHandler(playerService *playerservice.PlayerService) *handlers.PlayerHandler {
	return handlers.NewPlayerHandler(&handlers.PlayerHandlerDependencies{
		PlayerService: playerService,
	})
}
