package playerservice

import (
	"time"

	"gametrack/api/services/testutil"
	fetchermocks "gametrack/fetcher/testutil"
	"gametrack/pkg/redis"

	"github.com/rs/zerolog"
)

// Helper to initialize the mocks.
func setupTestService() (
	*PlayerService,
	*testutil.MockAccountResolver,
	*testutil.MockMatchSyncer,
	*fetchermocks.MockMatchRepository,
	*fetchermocks.MockPlayerRepository,
	*testutil.MockPlayerRedisClient,
) {
	mockResolver := new(testutil.MockAccountResolver)
	mockSyncer := new(testutil.MockMatchSyncer)
	mockMatchRepo := new(fetchermocks.MockMatchRepository)
	mockPlayerRepo := new(fetchermocks.MockPlayerRepository)
	mockPlayerRedisClient := new(testutil.MockPlayerRedisClient)

	service := &PlayerService{
		resolver:         mockResolver,
		syncer:           mockSyncer,
		syncLock:         redis.NewKeyLock(mockPlayerRedisClient, redis.SyncLockPrefix, time.Minute),
		logger:           zerolog.Nop(),
		MatchRepository:  mockMatchRepo,
		PlayerRepository: mockPlayerRepo,
	}

	return service, mockResolver, mockSyncer, mockMatchRepo, mockPlayerRepo, mockPlayerRedisClient
}
