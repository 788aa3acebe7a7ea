package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	syncservice "gametrack/fetcher/services/sync"
	"gametrack/pkg/database/models"
	"gametrack/pkg/redis"

	"github.com/rs/zerolog"
)

// PlayerLister lists the stored players.
type PlayerLister interface {
	ListPlayers(ctx context.Context) ([]models.Player, error)
}

// PlayerSyncer syncs a single player.
type PlayerSyncer interface {
	Sync(ctx context.Context, puuid string, limit int) (*syncservice.SyncResult, error)
}

// PlayerLock is the per player sync lock, the same one the api takes.
type PlayerLock interface {
	Acquire(ctx context.Context, id string) error
	Release(ctx context.Context, id string) error
}

type ResyncDeps struct {
	Players PlayerLister
	Syncer  PlayerSyncer
	Lock    PlayerLock
	// Limit is the number of matches requested per player.
	Limit  int
	Logger zerolog.Logger
}

// ResyncReport sums up a resync run.
type ResyncReport struct {
	Players int
	Synced  int
	// Skipped players were being synced by an api request.
	Skipped int
	Fetched int
	Missing int
	// Failed maps the puuid to the error that stopped its sync.
	Failed map[string]error
}

// ResyncPlayers syncs every stored player, oldest update first.
// A failing player is recorded and the run moves on.
func ResyncPlayers(ctx context.Context, deps *ResyncDeps) (*ResyncReport, error) {
	deps.Logger.Info().Msg("starting player resync")
	startTime := time.Now()

	players, err := deps.Players.ListPlayers(ctx)
	if err != nil {
		return nil, fmt.Errorf("couldn't list the players: %w", err)
	}

	report := &ResyncReport{
		Players: len(players),
		Failed:  make(map[string]error),
	}

	for _, player := range players {
		// Stop between players, never in the middle of one.
		if err := ctx.Err(); err != nil {
			return report, err
		}

		if err := deps.Lock.Acquire(ctx, player.Puuid); err != nil {
			if errors.Is(err, redis.ErrLockHeld) {
				deps.Logger.Debug().
					Str("puuid", player.Puuid).
					Msg("player already syncing, skipping")
				report.Skipped++
				continue
			}

			deps.Logger.Warn().
				Err(err).
				Str("puuid", player.Puuid).
				Msg("couldn't lock the player")
			report.Failed[player.Puuid] = err
			continue
		}

		result, err := deps.Syncer.Sync(ctx, player.Puuid, deps.Limit)
		if releaseErr := deps.Lock.Release(ctx, player.Puuid); releaseErr != nil {
			deps.Logger.Warn().
				Err(releaseErr).
				Str("puuid", player.Puuid).
				Msg("couldn't release the sync lock")
		}
		if err != nil {
			deps.Logger.Warn().
				Err(err).
				Str("puuid", player.Puuid).
				Msg("player resync failed")
			report.Failed[player.Puuid] = err
			continue
		}

		report.Synced++
		report.Fetched += result.Fetched
		report.Missing += result.Shortfall()
	}

	deps.Logger.Info().
		Int("players", report.Players).
		Int("synced", report.Synced).
		Int("skipped", report.Skipped).
		Int("failed", len(report.Failed)).
		Int("fetched", report.Fetched).
		Int("missing", report.Missing).
		Dur("took", time.Since(startTime)).
		Msg("player resync finished")

	return report, nil
}
