package testutil

import (
	"context"
	"time"

	"gametrack/api/dto"
	"gametrack/api/filters"
	accountfetcher "gametrack/fetcher/data/account"
	syncservice "gametrack/fetcher/services/sync"
	"gametrack/pkg/database/models"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"
)

// ============================================================================
// Mock Implementations used on the Player service tests.
// ============================================================================

// Account resolver mock implementation.
type MockAccountResolver struct {
	mock.Mock
}

func (m *MockAccountResolver) Resolve(ctx context.Context, gameName, tagLine string) (*accountfetcher.Account, error) {
	args := m.Called(ctx, gameName, tagLine)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accountfetcher.Account), args.Error(1)
}

// Sync service mock implementation.
type MockMatchSyncer struct {
	mock.Mock
}

func (m *MockMatchSyncer) SavePlayer(ctx context.Context, account *accountfetcher.Account) (*models.Player, bool, error) {
	args := m.Called(ctx, account)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*models.Player), args.Bool(1), args.Error(2)
}

func (m *MockMatchSyncer) Sync(ctx context.Context, puuid string, limit int) (*syncservice.SyncResult, error) {
	args := m.Called(ctx, puuid, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*syncservice.SyncResult), args.Error(1)
}

// Redis client mock implementation.
type MockPlayerRedisClient struct {
	mock.Mock
}

func (m *MockPlayerRedisClient) SetNX(ctx context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd {
	args := m.Called(ctx, key, value, expiration)
	return args.Get(0).(*redis.BoolCmd)
}

func (m *MockPlayerRedisClient) TTL(ctx context.Context, key string) *redis.DurationCmd {
	args := m.Called(ctx, key)
	return args.Get(0).(*redis.DurationCmd)
}

func (m *MockPlayerRedisClient) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	args := m.Called(ctx, keys)
	return args.Get(0).(*redis.IntCmd)
}

// ============================================================================
// Mock Implementations used on the Player handler tests.
// ============================================================================

// Player service mock implementation.
type MockPlayerService struct {
	mock.Mock
}

func (m *MockPlayerService) LookupPlayer(ctx context.Context, filter *filters.PlayerSearchFilter) (*dto.PlayerSearch, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PlayerSearch), args.Error(1)
}

func (m *MockPlayerService) GetPlayerMatches(ctx context.Context, filter *filters.PlayerMatchesFilter) (*dto.PlayerMatches, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PlayerMatches), args.Error(1)
}

func (m *MockPlayerService) FetchPlayerStats(ctx context.Context, filter *filters.PlayerSearchFilter, limit int) (*dto.PlayerMatches, error) {
	args := m.Called(ctx, filter, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PlayerMatches), args.Error(1)
}

func (m *MockPlayerService) DeletePlayer(ctx context.Context, puuid string) error {
	args := m.Called(ctx, puuid)
	return args.Error(0)
}
