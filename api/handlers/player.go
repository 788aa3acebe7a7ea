package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"gametrack/api/dto"
	"gametrack/api/filters"
	playerservice "gametrack/api/services/player"
	"gametrack/fetcher/requests"
	syncservice "gametrack/fetcher/services/sync"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// PlayerService is what the handler needs from the player service.
type PlayerService interface {
	LookupPlayer(ctx context.Context, filter *filters.PlayerSearchFilter) (*dto.PlayerSearch, error)
	GetPlayerMatches(ctx context.Context, filter *filters.PlayerMatchesFilter) (*dto.PlayerMatches, error)
	FetchPlayerStats(ctx context.Context, filter *filters.PlayerSearchFilter, limit int) (*dto.PlayerMatches, error)
	DeletePlayer(ctx context.Context, puuid string) error
}

// PlayerHandler is the handler for the player endpoints.
type PlayerHandler struct {
	playerService PlayerService
}

type PlayerHandlerDependencies struct {
	PlayerService PlayerService
}

// NewPlayerHandler creates a new instance of the player handler.
func NewPlayerHandler(deps *PlayerHandlerDependencies) *PlayerHandler {
	return &PlayerHandler{
		playerService: deps.PlayerService,
	}
}

// LookupPlayer handles the Riot ID search.
func (h *PlayerHandler) LookupPlayer(c *gin.Context) {
	var body filters.PlayerSearchParams
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	filter, err := filters.NewPlayerSearchFilter(body.GameName, body.TagLine)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.playerService.LookupPlayer(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	c.JSON(status, result)
}

// GetPlayerMatches handles requests for syncing and retrieving a player match history.
func (h *PlayerHandler) GetPlayerMatches(c *gin.Context) {
	var qp filters.PlayerMatchesParams
	if err := c.ShouldBindQuery(&qp); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	filter := filters.NewPlayerMatchesFilter(c.Param("puuid"), qp.Limit)

	result, err := h.playerService.GetPlayerMatches(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// FetchPlayerStats handles the lookup and sync in one request.
func (h *PlayerHandler) FetchPlayerStats(c *gin.Context) {
	var body filters.PlayerStatsParams
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	filter, err := filters.NewPlayerSearchFilter(body.GameName, body.TagLine)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.playerService.FetchPlayerStats(c.Request.Context(), filter, body.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// DeletePlayer removes a player and its records.
func (h *PlayerHandler) DeletePlayer(c *gin.Context) {
	if err := h.playerService.DeletePlayer(c.Request.Context(), c.Param("puuid")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// respondError maps the service errors to their status codes.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	var inProgress *playerservice.SyncInProgressError
	switch {
	case errors.Is(err, requests.ErrInvalidIdentifier):
		status = http.StatusBadRequest
	case errors.Is(err, requests.ErrNotFound), errors.Is(err, syncservice.ErrUnknownPlayer):
		status = http.StatusNotFound
	case errors.As(err, &inProgress):
		status = http.StatusTooManyRequests
		if seconds := int(inProgress.RetryAfter.Seconds()); seconds > 0 {
			c.Header("Retry-After", strconv.Itoa(seconds))
		}
	case errors.Is(err, requests.ErrRateLimitExhausted):
		status = http.StatusServiceUnavailable
	case errors.Is(err, requests.ErrUpstream):
		status = http.StatusBadGateway
	}

	if status >= http.StatusInternalServerError {
		zerolog.Ctx(c.Request.Context()).Error().
			Err(err).
			Int("status", status).
			Msg("request failed")
	}

	c.JSON(status, gin.H{"error": err.Error()})
}
