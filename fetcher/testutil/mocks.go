package testutil

import (
	"context"
	"testing"

	matchfetcher "gametrack/fetcher/data/match"
	"gametrack/fetcher/requests"
	"gametrack/pkg/database/models"

	"github.com/stretchr/testify/mock"
)

// Assert the expectations of all mocks.
func VerifyAllMocks(t *testing.T, mocks ...any) {
	t.Helper()

	for _, m := range mocks {
		if mockObj, ok := m.(interface{ AssertExpectations(mock.TestingT) bool }); ok {
			mockObj.AssertExpectations(t)
		}
	}
}

// MockCaller replaces the Riot client.
type MockCaller struct {
	mock.Mock
}

func (m *MockCaller) Call(ctx context.Context, endpoint string, opts *requests.RequestOptions) ([]byte, error) {
	args := m.Called(ctx, endpoint, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return []byte(args.String(0)), args.Error(1)
}

// MockMatchFetcher replaces the match fetcher.
type MockMatchFetcher struct {
	mock.Mock
}

func (m *MockMatchFetcher) ListMatchIds(ctx context.Context, puuid string, limit int) ([]string, error) {
	args := m.Called(ctx, puuid, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockMatchFetcher) FetchDetails(ctx context.Context, matchIds []string) *matchfetcher.DetailBatch {
	args := m.Called(ctx, matchIds)
	return args.Get(0).(*matchfetcher.DetailBatch)
}

// MockMatchRepository replaces the match repository.
type MockMatchRepository struct {
	mock.Mock
}

func (m *MockMatchRepository) CreateMatchParticipation(ctx context.Context, match *models.Match, record *models.ParticipationRecord) error {
	args := m.Called(ctx, match, record)
	return args.Error(0)
}

func (m *MockMatchRepository) GetParticipations(ctx context.Context, puuid string, matchIds []string) ([]models.ParticipationRecord, error) {
	args := m.Called(ctx, puuid, matchIds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ParticipationRecord), args.Error(1)
}

func (m *MockMatchRepository) GetPlayerParticipations(ctx context.Context, puuid string) ([]models.ParticipationRecord, error) {
	args := m.Called(ctx, puuid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ParticipationRecord), args.Error(1)
}

// MockPlayerRepository replaces the player repository.
type MockPlayerRepository struct {
	mock.Mock
}

func (m *MockPlayerRepository) DeletePlayer(ctx context.Context, puuid string) (bool, error) {
	args := m.Called(ctx, puuid)
	return args.Bool(0), args.Error(1)
}

func (m *MockPlayerRepository) GetPlayerByPuuid(ctx context.Context, puuid string) (*models.Player, error) {
	args := m.Called(ctx, puuid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Player), args.Error(1)
}

func (m *MockPlayerRepository) ListPlayers(ctx context.Context) ([]models.Player, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Player), args.Error(1)
}

func (m *MockPlayerRepository) UpsertPlayer(ctx context.Context, player *models.Player) (bool, error) {
	args := m.Called(ctx, player)
	return args.Bool(0), args.Error(1)
}
