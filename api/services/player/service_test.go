package playerservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"gametrack/api/filters"
	"gametrack/api/services/testutil"
	accountfetcher "gametrack/fetcher/data/account"
	"gametrack/fetcher/requests"
	syncservice "gametrack/fetcher/services/sync"
	fetchermocks "gametrack/fetcher/testutil"
	sharedtest "gametrack/internal/testutil"
	"gametrack/pkg/database/models"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testPuuid = "test-puuid"

var (
	testAccount = &accountfetcher.Account{Puuid: testPuuid, GameName: "Faker", TagLine: "KR1"}
	testPlayer  = &models.Player{Puuid: testPuuid, GameName: "Faker", TagLine: "KR1"}
)

func testRecords(matchIds ...string) []models.ParticipationRecord {
	records := make([]models.ParticipationRecord, 0, len(matchIds))
	for i, matchId := range matchIds {
		records = append(records, models.ParticipationRecord{
			PlayerPuuid: testPuuid,
			MatchId:     matchId,
			Kills:       i + 1,
			Deaths:      1,
			Assists:     2,
			Win:         i%2 == 0,
			Kda:         float64(i + 3),
			Match:       models.Match{MatchId: matchId, GameCreation: 1700000000000, GameMode: "CLASSIC"},
		})
	}
	return records
}

// Simple test for asserting that everything is fine with the player service creation.
func TestNewPlayerService(t *testing.T) {
	mockRedis := new(testutil.MockPlayerRedisClient)
	mockMatchRepo := new(fetchermocks.MockMatchRepository)
	mockPlayerRepo := new(fetchermocks.MockPlayerRepository)

	service := NewPlayerService(&PlayerServiceDeps{
		Resolver:         new(testutil.MockAccountResolver),
		Syncer:           new(testutil.MockMatchSyncer),
		Redis:            mockRedis,
		MatchRepository:  mockMatchRepo,
		PlayerRepository: mockPlayerRepo,
		Logger:           zerolog.Nop(),
	})

	assert.NotNil(t, service)
	assert.NotNil(t, service.syncLock)
	assert.Equal(t, mockMatchRepo, service.MatchRepository)
	assert.Equal(t, mockPlayerRepo, service.PlayerRepository)
}

func TestAcquireSyncLock(t *testing.T) {
	tests := []struct {
		name          string
		setNX         *redis.BoolCmd
		ttl           *redis.DurationCmd
		expectedError error
		retryAfter    time.Duration
	}{
		{
			name:  "lock acquired",
			setNX: redis.NewBoolResult(true, nil),
		},
		{
			name:          "lock held with ttl",
			setNX:         redis.NewBoolResult(false, nil),
			ttl:           redis.NewDurationResult(42*time.Second, nil),
			expectedError: ErrSyncInProgress,
			retryAfter:    42 * time.Second,
		},
		{
			name:          "lock held without expiration",
			setNX:         redis.NewBoolResult(false, nil),
			ttl:           redis.NewDurationResult(-1, nil),
			expectedError: ErrSyncInProgress,
		},
		{
			name:  "redis failure",
			setNX: redis.NewBoolResult(false, errors.New("connection refused")),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _, _, _, _, mockRedis := setupTestService()
			lockKey := service.syncLock.Key(testPuuid)

			mockRedis.On("SetNX", mock.Anything, lockKey, "processing", time.Minute).Return(tt.setNX).Once()
			if tt.ttl != nil {
				mockRedis.On("TTL", mock.Anything, lockKey).Return(tt.ttl).Once()
			}

			err := service.acquireSyncLock(context.Background(), testPuuid)

			switch {
			case tt.expectedError != nil:
				assert.ErrorIs(t, err, tt.expectedError)
				var inProgress *SyncInProgressError
				require.ErrorAs(t, err, &inProgress)
				assert.Equal(t, tt.retryAfter, inProgress.RetryAfter)
			case tt.setNX.Err() != nil:
				assert.ErrorContains(t, err, "couldn't check the lock")
				assert.NotErrorIs(t, err, ErrSyncInProgress)
			default:
				assert.NoError(t, err)
			}

			mockRedis.AssertExpectations(t)
		})
	}
}

func TestLookupPlayer(t *testing.T) {
	tests := []struct {
		name          string
		account       *accountfetcher.Account
		resolveError  error
		created       bool
		saveError     error
		expectedError error
	}{
		{
			name:    "new player",
			account: testAccount,
			created: true,
		},
		{
			name:    "known player refreshed",
			account: testAccount,
			created: false,
		},
		{
			name:          "riot id not found",
			resolveError:  &requests.APIError{Kind: requests.ErrNotFound, StatusCode: 404},
			expectedError: requests.ErrNotFound,
		},
		{
			name:      "save failure",
			account:   testAccount,
			saveError: errors.New("database is down"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, mockResolver, mockSyncer, _, _, _ := setupTestService()
			filter := &filters.PlayerSearchFilter{GameName: "Faker", TagLine: "KR1"}

			mockResolver.On("Resolve", mock.Anything, "Faker", "KR1").Return(tt.account, tt.resolveError).Once()
			if tt.account != nil {
				if tt.saveError != nil {
					mockSyncer.On("SavePlayer", mock.Anything, tt.account).Return(nil, false, tt.saveError).Once()
				} else {
					mockSyncer.On("SavePlayer", mock.Anything, tt.account).Return(testPlayer, tt.created, nil).Once()
				}
			}

			result, err := service.LookupPlayer(context.Background(), filter)

			if tt.resolveError != nil || tt.saveError != nil {
				assert.Error(t, err)
				assert.Nil(t, result)
				if tt.expectedError != nil {
					assert.ErrorIs(t, err, tt.expectedError)
				}
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.created, result.Created)
				assert.Equal(t, testPuuid, result.Player.Puuid)
				assert.Equal(t, "Faker", result.Player.GameName)
			}

			fetchermocks.VerifyAllMocks(t, mockResolver, mockSyncer)
		})
	}
}

func TestLookupPlayerNilFilter(t *testing.T) {
	service, _, _, _, _, _ := setupTestService()

	result, err := service.LookupPlayer(context.Background(), nil)
	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestGetPlayerMatches(t *testing.T) {
	service, _, mockSyncer, mockMatchRepo, mockPlayerRepo, mockRedis := setupTestService()

	lockKey := service.syncLock.Key(testPuuid)
	synced := testRecords("A", "B")
	stored := testRecords("A", "B", "C")

	mockPlayerRepo.On("GetPlayerByPuuid", mock.Anything, testPuuid).Return(testPlayer, nil).Once()
	mockRedis.On("SetNX", mock.Anything, lockKey, "processing", time.Minute).Return(redis.NewBoolResult(true, nil)).Once()
	mockSyncer.On("Sync", mock.Anything, testPuuid, 3).Return(&syncservice.SyncResult{
		Records:   synced,
		Requested: 3,
		Cached:    1,
		Fetched:   1,
	}, nil).Once()
	mockMatchRepo.On("GetPlayerParticipations", mock.Anything, testPuuid).Return(stored, nil).Once()
	mockRedis.On("Del", mock.Anything, []string{lockKey}).Return(redis.NewIntResult(1, nil)).Once()

	result, err := service.GetPlayerMatches(context.Background(), &filters.PlayerMatchesFilter{Puuid: testPuuid, Limit: 3})
	require.NoError(t, err)

	assert.Equal(t, testPuuid, result.Player.Puuid)
	require.Len(t, result.Matches, 2)
	assert.Equal(t, "A", result.Matches[0].MatchId)
	assert.Equal(t, "B", result.Matches[1].MatchId)
	assert.Equal(t, 2, result.TotalMatches)
	assert.Equal(t, 3, result.RequestedMatches)
	assert.Equal(t, 1, result.MissingMatches)

	// The summary covers every stored match, not only the synced window.
	assert.Equal(t, 3, result.Summary.TotalMatches)
	assert.Equal(t, 2, result.Summary.Wins)

	fetchermocks.VerifyAllMocks(t, mockSyncer, mockMatchRepo, mockPlayerRepo, mockRedis)
}

func TestGetPlayerMatchesErrors(t *testing.T) {
	tests := []struct {
		name          string
		player        *models.Player
		playerError   error
		lockHeld      bool
		syncError     error
		expectedError error
	}{
		{
			name:          "unknown player",
			expectedError: syncservice.ErrUnknownPlayer,
		},
		{
			name:        "player lookup failure",
			playerError: errors.New("database is down"),
		},
		{
			name:          "sync already running",
			player:        testPlayer,
			lockHeld:      true,
			expectedError: ErrSyncInProgress,
		},
		{
			name:          "listing rate limited",
			player:        testPlayer,
			syncError:     &requests.APIError{Kind: requests.ErrRateLimitExhausted, StatusCode: 429},
			expectedError: requests.ErrRateLimitExhausted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _, mockSyncer, mockMatchRepo, mockPlayerRepo, mockRedis := setupTestService()
			lockKey := service.syncLock.Key(testPuuid)

			mockPlayerRepo.On("GetPlayerByPuuid", mock.Anything, testPuuid).Return(tt.player, tt.playerError).Once()
			if tt.player != nil {
				mockRedis.On("SetNX", mock.Anything, lockKey, "processing", time.Minute).Return(redis.NewBoolResult(!tt.lockHeld, nil)).Once()
				if tt.lockHeld {
					mockRedis.On("TTL", mock.Anything, lockKey).Return(redis.NewDurationResult(30*time.Second, nil)).Once()
				} else {
					mockSyncer.On("Sync", mock.Anything, testPuuid, 10).Return(nil, tt.syncError).Once()
					mockRedis.On("Del", mock.Anything, []string{lockKey}).Return(redis.NewIntResult(1, nil)).Once()
				}
			}

			result, err := service.GetPlayerMatches(context.Background(), &filters.PlayerMatchesFilter{Puuid: testPuuid, Limit: 10})

			assert.Error(t, err)
			assert.Nil(t, result)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			}

			mockMatchRepo.AssertNotCalled(t, "GetPlayerParticipations", mock.Anything, mock.Anything)
			fetchermocks.VerifyAllMocks(t, mockSyncer, mockPlayerRepo, mockRedis)
		})
	}
}

func TestFetchPlayerStats(t *testing.T) {
	service, mockResolver, mockSyncer, mockMatchRepo, _, mockRedis := setupTestService()

	lockKey := service.syncLock.Key(testPuuid)
	records := testRecords("A")

	mockResolver.On("Resolve", mock.Anything, "Faker", "KR1").Return(testAccount, nil).Once()
	mockSyncer.On("SavePlayer", mock.Anything, testAccount).Return(testPlayer, true, nil).Once()
	mockRedis.On("SetNX", mock.Anything, lockKey, "processing", time.Minute).Return(redis.NewBoolResult(true, nil)).Once()
	// The limit is capped before the sync.
	mockSyncer.On("Sync", mock.Anything, testPuuid, 20).Return(&syncservice.SyncResult{Records: records, Requested: 1, Fetched: 1}, nil).Once()
	mockMatchRepo.On("GetPlayerParticipations", mock.Anything, testPuuid).Return(records, nil).Once()
	mockRedis.On("Del", mock.Anything, []string{lockKey}).Return(redis.NewIntResult(1, nil)).Once()

	result, err := service.FetchPlayerStats(context.Background(), &filters.PlayerSearchFilter{GameName: "Faker", TagLine: "KR1"}, 100)
	require.NoError(t, err)

	assert.Equal(t, 1, result.TotalMatches)
	assert.Equal(t, 0, result.MissingMatches)
	assert.Equal(t, 1, result.Summary.TotalMatches)

	fetchermocks.VerifyAllMocks(t, mockResolver, mockSyncer, mockMatchRepo, mockRedis)
}

func TestDeletePlayer(t *testing.T) {
	tests := []struct {
		name          string
		repoResult    *sharedtest.OperationResult[bool]
		expectedError error
	}{
		{
			name:       "deleted",
			repoResult: sharedtest.NewSuccessResult(true),
		},
		{
			name:          "unknown player",
			repoResult:    sharedtest.NewSuccessResult(false),
			expectedError: syncservice.ErrUnknownPlayer,
		},
		{
			name:       "repository error",
			repoResult: sharedtest.GetMockRepoError[bool](),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _, _, _, mockPlayerRepo, _ := setupTestService()

			mockPlayerRepo.On("DeletePlayer", mock.Anything, testPuuid).Return(tt.repoResult.Data, tt.repoResult.Err).Once()

			err := service.DeletePlayer(context.Background(), testPuuid)

			switch {
			case tt.expectedError != nil:
				assert.ErrorIs(t, err, tt.expectedError)
			case tt.repoResult.Err != nil:
				assert.ErrorContains(t, err, sharedtest.DatabaseError)
			default:
				assert.NoError(t, err)
			}

			mockPlayerRepo.AssertExpectations(t)
		})
	}
}
