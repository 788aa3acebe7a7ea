package matchfetcher

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"gametrack/fetcher/requests"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const (
	// MaxMatchCount bounds how many matches a single sync can request.
	MaxMatchCount = 20
	// DefaultMatchCount is used when the caller gives no usable limit.
	DefaultMatchCount = 10
)

// MatchFetcher lists and fetches matches through the shared client.
type MatchFetcher struct {
	caller  requests.Caller
	workers int
	logger  zerolog.Logger
}

// NewMatchFetcher creates a match fetcher running up to workers detail requests at a time.
func NewMatchFetcher(caller requests.Caller, workers int, logger zerolog.Logger) *MatchFetcher {
	if workers < 1 {
		workers = 1
	}

	return &MatchFetcher{
		caller:  caller,
		workers: workers,
		logger:  logger,
	}
}

// ClampCount keeps the requested count between 1 and MaxMatchCount.
func ClampCount(limit int) int {
	if limit <= 0 {
		return DefaultMatchCount
	}
	return min(limit, MaxMatchCount)
}

// ListMatchIds returns the most recent match ids of the player, in the order Riot sends them.
func (m *MatchFetcher) ListMatchIds(ctx context.Context, puuid string, limit int) ([]string, error) {
	if puuid == "" {
		return nil, requests.ErrInvalidIdentifier
	}

	count := ClampCount(limit)
	endpoint := fmt.Sprintf("/lol/match/v5/matches/by-puuid/%s/ids", url.PathEscape(puuid))

	ids, _, err := requests.Get[[]string](ctx, m.caller, endpoint, map[string]string{
		"count": strconv.Itoa(count),
	})
	if err != nil {
		return nil, fmt.Errorf("couldn't list the matches of %s: %w", puuid, err)
	}

	if ids == nil || *ids == nil {
		return []string{}, nil
	}

	matchIds := *ids
	if len(matchIds) > count {
		matchIds = matchIds[:count]
	}

	return matchIds, nil
}

// GetMatch fetches a single match detail.
func (m *MatchFetcher) GetMatch(ctx context.Context, matchId string) (*MatchDetail, error) {
	endpoint := fmt.Sprintf("/lol/match/v5/matches/%s", url.PathEscape(matchId))

	detail, raw, err := requests.Get[MatchDetail](ctx, m.caller, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("couldn't get the match %s: %w", matchId, err)
	}
	if detail == nil {
		return nil, fmt.Errorf("couldn't get the match %s: %w", matchId, requests.ErrNotFound)
	}

	detail.Raw = raw
	if detail.Metadata.MatchId == "" {
		detail.Metadata.MatchId = matchId
	}

	return detail, nil
}

// FailedMatch is a match id that couldn't be fetched.
type FailedMatch struct {
	MatchId string
	Err     error
}

// PartialFailure reports the matches missing from a batch.
type PartialFailure struct {
	Requested int
	Failed    []FailedMatch
}

// Shortfall is how many requested matches are missing.
func (p *PartialFailure) Shortfall() int {
	return len(p.Failed)
}

func (p *PartialFailure) Error() string {
	return fmt.Sprintf("fetched %d of %d matches", p.Requested-p.Shortfall(), p.Requested)
}

// DetailBatch is the best effort result of FetchDetails.
type DetailBatch struct {
	// Details follow the input order, failed ids are left out.
	Details []*MatchDetail
	Failed  []FailedMatch
}

// Err returns a *PartialFailure when any match is missing, nil otherwise.
func (b *DetailBatch) Err() error {
	if len(b.Failed) == 0 {
		return nil
	}
	return &PartialFailure{
		Requested: len(b.Details) + len(b.Failed),
		Failed:    b.Failed,
	}
}

// FetchDetails fetches every match concurrently, bounded by the worker count.
// A failed match is logged and skipped, it never aborts the batch.
func (m *MatchFetcher) FetchDetails(ctx context.Context, matchIds []string) *DetailBatch {
	details := make([]*MatchDetail, len(matchIds))
	errs := make([]error, len(matchIds))

	var g errgroup.Group
	g.SetLimit(m.workers)

	for i, matchId := range matchIds {
		g.Go(func() error {
			// Ids not started before the deadline are reported as failed.
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return nil
			}

			details[i], errs[i] = m.GetMatch(ctx, matchId)
			return nil
		})
	}
	g.Wait()

	batch := &DetailBatch{Details: make([]*MatchDetail, 0, len(matchIds))}
	for i, matchId := range matchIds {
		if errs[i] != nil {
			m.logger.Warn().
				Err(errs[i]).
				Str("match_id", matchId).
				Msg("skipping match")

			batch.Failed = append(batch.Failed, FailedMatch{MatchId: matchId, Err: errs[i]})
			continue
		}
		batch.Details = append(batch.Details, details[i])
	}

	return batch
}
