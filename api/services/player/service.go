package playerservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gametrack/api/converters"
	"gametrack/api/dto"
	"gametrack/api/filters"
	accountfetcher "gametrack/fetcher/data/account"
	matchfetcher "gametrack/fetcher/data/match"
	"gametrack/fetcher/repositories"
	syncservice "gametrack/fetcher/services/sync"
	"gametrack/pkg/database/models"
	"gametrack/pkg/messages"
	"gametrack/pkg/redis"
	"gametrack/pkg/stats"

	"github.com/rs/zerolog"
)

// ErrSyncInProgress means another request is already syncing the player.
var ErrSyncInProgress = errors.New(messages.OperationInProgress)

// SyncInProgressError tells when the running sync lock expires.
type SyncInProgressError struct {
	RetryAfter time.Duration
}

func (e *SyncInProgressError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("operation already in progress, try again in %d seconds", int(e.RetryAfter.Seconds()))
	}
	return messages.OperationInProgress
}

func (e *SyncInProgressError) Unwrap() error {
	return ErrSyncInProgress
}

// AccountResolver turns a Riot ID into an account.
type AccountResolver interface {
	Resolve(ctx context.Context, gameName, tagLine string) (*accountfetcher.Account, error)
}

// MatchSyncer stores players and brings their match history up to date.
type MatchSyncer interface {
	SavePlayer(ctx context.Context, account *accountfetcher.Account) (*models.Player, bool, error)
	Sync(ctx context.Context, puuid string, limit int) (*syncservice.SyncResult, error)
}

// PlayerService serves the player lookups and match histories.
type PlayerService struct {
	resolver AccountResolver
	syncer   MatchSyncer
	syncLock *redis.KeyLock
	logger   zerolog.Logger

	MatchRepository  repositories.MatchRepository
	PlayerRepository repositories.PlayerRepository
}

type PlayerServiceDeps struct {
	Resolver         AccountResolver
	Syncer           MatchSyncer
	Redis            redis.LockClient
	MatchRepository  repositories.MatchRepository
	PlayerRepository repositories.PlayerRepository
	LockDuration     time.Duration
	Logger           zerolog.Logger
}

// NewPlayerService creates a service for handling player services.
func NewPlayerService(deps *PlayerServiceDeps) *PlayerService {
	return &PlayerService{
		resolver:         deps.Resolver,
		syncer:           deps.Syncer,
		syncLock:         redis.NewKeyLock(deps.Redis, redis.SyncLockPrefix, deps.LockDuration),
		logger:           deps.Logger,
		MatchRepository:  deps.MatchRepository,
		PlayerRepository: deps.PlayerRepository,
	}
}

// acquireSyncLock takes the player lock, or tells how long the current holder keeps it.
// The scheduler resync takes the same lock.
func (ps *PlayerService) acquireSyncLock(ctx context.Context, puuid string) error {
	err := ps.syncLock.Acquire(ctx, puuid)

	var held *redis.LockHeldError
	if errors.As(err, &held) {
		return &SyncInProgressError{RetryAfter: held.RetryAfter}
	}
	return err
}

func (ps *PlayerService) releaseSyncLock(ctx context.Context, puuid string) {
	if err := ps.syncLock.Release(ctx, puuid); err != nil {
		ps.logger.Warn().
			Err(err).
			Str("puuid", puuid).
			Msg("couldn't release the sync lock")
	}
}

// LookupPlayer resolves the Riot ID and stores the player.
func (ps *PlayerService) LookupPlayer(ctx context.Context, filter *filters.PlayerSearchFilter) (*dto.PlayerSearch, error) {
	if filter == nil {
		return nil, errors.New(messages.FiltersNotNil)
	}

	player, created, err := ps.resolvePlayer(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &dto.PlayerSearch{
		Player:  converters.ConvertPlayer(player),
		Created: created,
	}, nil
}

// GetPlayerMatches syncs a stored player and returns its recent matches.
func (ps *PlayerService) GetPlayerMatches(ctx context.Context, filter *filters.PlayerMatchesFilter) (*dto.PlayerMatches, error) {
	if filter == nil {
		return nil, errors.New(messages.FiltersNotNil)
	}

	player, err := ps.PlayerRepository.GetPlayerByPuuid(ctx, filter.Puuid)
	if err != nil {
		return nil, fmt.Errorf("couldn't get the player: %w", err)
	}
	if player == nil {
		return nil, fmt.Errorf(messages.UnknownPlayer+": %w", filter.Puuid, syncservice.ErrUnknownPlayer)
	}

	return ps.syncPlayer(ctx, player, filter.Limit)
}

// FetchPlayerStats resolves, stores and syncs the player in a single call.
func (ps *PlayerService) FetchPlayerStats(ctx context.Context, filter *filters.PlayerSearchFilter, limit int) (*dto.PlayerMatches, error) {
	if filter == nil {
		return nil, errors.New(messages.FiltersNotNil)
	}

	player, _, err := ps.resolvePlayer(ctx, filter)
	if err != nil {
		return nil, err
	}

	return ps.syncPlayer(ctx, player, matchfetcher.ClampCount(limit))
}

// DeletePlayer removes the player and its participation records.
func (ps *PlayerService) DeletePlayer(ctx context.Context, puuid string) error {
	deleted, err := ps.PlayerRepository.DeletePlayer(ctx, puuid)
	if err != nil {
		return fmt.Errorf("couldn't delete the player: %w", err)
	}
	if !deleted {
		return fmt.Errorf(messages.UnknownPlayer+": %w", puuid, syncservice.ErrUnknownPlayer)
	}

	return nil
}

func (ps *PlayerService) resolvePlayer(ctx context.Context, filter *filters.PlayerSearchFilter) (*models.Player, bool, error) {
	account, err := ps.resolver.Resolve(ctx, filter.GameName, filter.TagLine)
	if err != nil {
		return nil, false, err
	}

	player, created, err := ps.syncer.SavePlayer(ctx, account)
	if err != nil {
		return nil, false, fmt.Errorf("couldn't save the player: %w", err)
	}

	return player, created, nil
}

// syncPlayer runs the sync under the player lock and builds the response.
func (ps *PlayerService) syncPlayer(ctx context.Context, player *models.Player, limit int) (*dto.PlayerMatches, error) {
	if err := ps.acquireSyncLock(ctx, player.Puuid); err != nil {
		return nil, err
	}
	defer ps.releaseSyncLock(ctx, player.Puuid)

	result, err := ps.syncer.Sync(ctx, player.Puuid, limit)
	if err != nil {
		return nil, err
	}

	stored, err := ps.MatchRepository.GetPlayerParticipations(ctx, player.Puuid)
	if err != nil {
		return nil, fmt.Errorf("couldn't get the stored matches: %w", err)
	}

	return &dto.PlayerMatches{
		Player:           converters.ConvertPlayer(player),
		Matches:          converters.ConvertRecords(result.Records),
		TotalMatches:     len(result.Records),
		RequestedMatches: result.Requested,
		MissingMatches:   result.Shortfall(),
		Summary:          stats.Summarize(stored),
	}, nil
}
