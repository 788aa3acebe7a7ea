package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gametrack/api/dto"
	"gametrack/api/filters"
	playerservice "gametrack/api/services/player"
	"gametrack/api/services/testutil"
	"gametrack/fetcher/requests"
	syncservice "gametrack/fetcher/services/sync"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupTestHandler() (*gin.Engine, *testutil.MockPlayerService) {
	gin.SetMode(gin.TestMode)

	mockService := new(testutil.MockPlayerService)
	handler := NewPlayerHandler(&PlayerHandlerDependencies{PlayerService: mockService})

	engine := gin.New()
	engine.POST("/players/search", handler.LookupPlayer)
	engine.POST("/players/fetch-stats", handler.FetchPlayerStats)
	engine.GET("/players/:puuid/matches", handler.GetPlayerMatches)
	engine.DELETE("/players/:puuid", handler.DeletePlayer)

	return engine, mockService
}

func doRequest(engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestLookupPlayer(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		result         *dto.PlayerSearch
		serviceError   error
		callsService   bool
		expectedStatus int
	}{
		{
			name:           "created",
			body:           `{"game_name": "Faker", "tag_line": "#KR1"}`,
			result:         &dto.PlayerSearch{Player: &dto.Player{Puuid: "p1"}, Created: true},
			callsService:   true,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "updated",
			body:           `{"game_name": "Faker", "tag_line": "KR1"}`,
			result:         &dto.PlayerSearch{Player: &dto.Player{Puuid: "p1"}, Created: false},
			callsService:   true,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing tag line",
			body:           `{"game_name": "Faker"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "blank game name",
			body:           `{"game_name": "  ", "tag_line": "KR1"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "not found",
			body:           `{"game_name": "Faker", "tag_line": "KR1"}`,
			serviceError:   &requests.APIError{Kind: requests.ErrNotFound, StatusCode: 404},
			callsService:   true,
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, mockService := setupTestHandler()

			if tt.callsService {
				mockService.On("LookupPlayer", mock.Anything, &filters.PlayerSearchFilter{GameName: "Faker", TagLine: "KR1"}).
					Return(tt.result, tt.serviceError).Once()
			}

			w := doRequest(engine, http.MethodPost, "/players/search", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.result != nil {
				var body dto.PlayerSearch
				assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, tt.result.Created, body.Created)
				assert.Equal(t, "p1", body.Player.Puuid)
			}

			mockService.AssertExpectations(t)
		})
	}
}

func TestGetPlayerMatches(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		limit          int
		serviceError   error
		expectedStatus int
	}{
		{
			name:           "default limit",
			query:          "",
			limit:          10,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "capped limit",
			query:          "?limit=50",
			limit:          20,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "unknown player",
			query:          "?limit=5",
			limit:          5,
			serviceError:   syncservice.ErrUnknownPlayer,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "rate limit exhausted",
			limit:          10,
			serviceError:   &requests.APIError{Kind: requests.ErrRateLimitExhausted, StatusCode: 429},
			expectedStatus: http.StatusServiceUnavailable,
		},
		{
			name:           "upstream failure",
			limit:          10,
			serviceError:   &requests.APIError{Kind: requests.ErrUpstream, StatusCode: 500},
			expectedStatus: http.StatusBadGateway,
		},
		{
			name:           "database failure",
			limit:          10,
			serviceError:   errors.New("database is down"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, mockService := setupTestHandler()

			var result *dto.PlayerMatches
			if tt.serviceError == nil {
				result = &dto.PlayerMatches{Player: &dto.Player{Puuid: "p1"}, Matches: []*dto.MatchRecord{{MatchId: "A"}}, TotalMatches: 1}
			}
			mockService.On("GetPlayerMatches", mock.Anything, &filters.PlayerMatchesFilter{Puuid: "p1", Limit: tt.limit}).
				Return(result, tt.serviceError).Once()

			w := doRequest(engine, http.MethodGet, "/players/p1/matches"+tt.query, "")

			assert.Equal(t, tt.expectedStatus, w.Code)
			if result != nil {
				var body map[string]any
				assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Contains(t, body, "summary")
				assert.Contains(t, body, "missing_matches")
				assert.EqualValues(t, 1, body["total_matches"])
			} else {
				assert.Contains(t, w.Body.String(), "error")
			}

			mockService.AssertExpectations(t)
		})
	}
}

func TestGetPlayerMatchesInvalidLimit(t *testing.T) {
	engine, mockService := setupTestHandler()

	w := doRequest(engine, http.MethodGet, "/players/p1/matches?limit=ten", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "GetPlayerMatches", mock.Anything, mock.Anything)
}

func TestGetPlayerMatchesSyncInProgress(t *testing.T) {
	engine, mockService := setupTestHandler()

	mockService.On("GetPlayerMatches", mock.Anything, mock.Anything).
		Return(nil, &playerservice.SyncInProgressError{RetryAfter: 30 * time.Second}).Once()

	w := doRequest(engine, http.MethodGet, "/players/p1/matches", "")

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "30", w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "try again in 30 seconds")
}

func TestFetchPlayerStats(t *testing.T) {
	engine, mockService := setupTestHandler()

	mockService.On("FetchPlayerStats", mock.Anything, &filters.PlayerSearchFilter{GameName: "Faker", TagLine: "KR1"}, 5).
		Return(&dto.PlayerMatches{Player: &dto.Player{Puuid: "p1"}, Matches: []*dto.MatchRecord{}}, nil).Once()

	w := doRequest(engine, http.MethodPost, "/players/fetch-stats", `{"game_name": "Faker", "tag_line": "KR1", "limit": 5}`)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestDeletePlayer(t *testing.T) {
	tests := []struct {
		name           string
		serviceError   error
		expectedStatus int
	}{
		{name: "deleted", expectedStatus: http.StatusNoContent},
		{name: "unknown player", serviceError: syncservice.ErrUnknownPlayer, expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, mockService := setupTestHandler()

			mockService.On("DeletePlayer", mock.Anything, "p1").Return(tt.serviceError).Once()

			w := doRequest(engine, http.MethodDelete, "/players/p1", "")

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}
