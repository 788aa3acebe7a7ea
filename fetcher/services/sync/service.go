package syncservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	accountfetcher "gametrack/fetcher/data/account"
	matchfetcher "gametrack/fetcher/data/match"
	"gametrack/fetcher/repositories"
	"gametrack/fetcher/requests"
	"gametrack/pkg/database/models"
	"gametrack/pkg/mathutil"
	"gametrack/pkg/messages"

	"github.com/rs/zerolog"
)

var (
	// ErrDataIntegrity means a match payload doesn't list the player it was fetched for.
	ErrDataIntegrity = errors.New("match data integrity violated")
	// ErrUnknownPlayer means the puuid was never stored by SavePlayer.
	ErrUnknownPlayer = errors.New("unknown player")
)

// MatchFetcher is the part of the match fetcher used by the sync.
type MatchFetcher interface {
	ListMatchIds(ctx context.Context, puuid string, limit int) ([]string, error)
	FetchDetails(ctx context.Context, matchIds []string) *matchfetcher.DetailBatch
}

// SyncService reconciles the Riot match history of a player with the database.
type SyncService struct {
	matchFetcher MatchFetcher
	logger       zerolog.Logger
	timeout      time.Duration

	MatchRepository  repositories.MatchRepository
	PlayerRepository repositories.PlayerRepository
}

// SyncServiceDeps are the dependencies of the sync service.
type SyncServiceDeps struct {
	MatchFetcher     MatchFetcher
	MatchRepository  repositories.MatchRepository
	PlayerRepository repositories.PlayerRepository
	Logger           zerolog.Logger
	// Timeout bounds a whole sync, zero means no bound.
	Timeout time.Duration
}

// NewSyncService creates the sync service.
func NewSyncService(deps *SyncServiceDeps) *SyncService {
	return &SyncService{
		matchFetcher:     deps.MatchFetcher,
		logger:           deps.Logger,
		timeout:          deps.Timeout,
		MatchRepository:  deps.MatchRepository,
		PlayerRepository: deps.PlayerRepository,
	}
}

// MatchFailure is a listed match that didn't make it into the result.
type MatchFailure struct {
	MatchId string
	Err     error
}

// SyncResult is the outcome of a sync.
type SyncResult struct {
	// Records follow the order of the listed match ids.
	Records []models.ParticipationRecord
	// Requested is how many match ids Riot listed.
	Requested int
	// Cached is how many records were already stored.
	Cached int
	// Fetched is how many records were stored by this sync.
	Fetched  int
	Failures []MatchFailure
}

// Shortfall is how many listed matches are missing from the records.
func (r *SyncResult) Shortfall() int {
	return r.Requested - len(r.Records)
}

// SavePlayer stores the resolved account, refreshing the name and tag of a known puuid.
func (s *SyncService) SavePlayer(ctx context.Context, account *accountfetcher.Account) (*models.Player, bool, error) {
	if account == nil || account.Puuid == "" {
		return nil, false, requests.ErrInvalidIdentifier
	}

	player := &models.Player{
		Puuid:    account.Puuid,
		GameName: account.GameName,
		TagLine:  account.TagLine,
	}

	created, err := s.PlayerRepository.UpsertPlayer(ctx, player)
	if err != nil {
		return nil, false, err
	}

	return player, created, nil
}

// Sync brings the last limit matches of the player into the database.
// Matches already stored for the player are never fetched again.
// Per match failures are collected on the result, only the listing can fail the sync.
func (s *SyncService) Sync(ctx context.Context, puuid string, limit int) (*SyncResult, error) {
	if puuid == "" {
		return nil, requests.ErrInvalidIdentifier
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	player, err := s.PlayerRepository.GetPlayerByPuuid(ctx, puuid)
	if err != nil {
		return nil, err
	}
	if player == nil {
		return nil, fmt.Errorf(messages.UnknownPlayer+": %w", puuid, ErrUnknownPlayer)
	}

	matchIds, err := s.matchFetcher.ListMatchIds(ctx, puuid, limit)
	if err != nil {
		return nil, err
	}

	result := &SyncResult{Requested: len(matchIds)}
	if len(matchIds) == 0 {
		result.Records = []models.ParticipationRecord{}
		return result, nil
	}

	existing, err := s.MatchRepository.GetParticipations(ctx, puuid, matchIds)
	if err != nil {
		return nil, err
	}

	byMatch := make(map[string]models.ParticipationRecord, len(matchIds))
	for _, record := range existing {
		byMatch[record.MatchId] = record
	}
	result.Cached = len(byMatch)

	missing := make([]string, 0, len(matchIds)-len(byMatch))
	for _, matchId := range matchIds {
		if _, ok := byMatch[matchId]; !ok {
			missing = append(missing, matchId)
		}
	}

	if len(missing) > 0 {
		batch := s.matchFetcher.FetchDetails(ctx, missing)
		for _, failed := range batch.Failed {
			result.Failures = append(result.Failures, MatchFailure(failed))
		}

		for _, detail := range batch.Details {
			record, err := s.persistMatch(ctx, puuid, detail)
			if err != nil {
				result.Failures = append(result.Failures, MatchFailure{MatchId: detail.Metadata.MatchId, Err: err})
				continue
			}

			byMatch[record.MatchId] = *record
			result.Fetched++
		}
	}

	result.Records = make([]models.ParticipationRecord, 0, len(byMatch))
	for _, matchId := range matchIds {
		if record, ok := byMatch[matchId]; ok {
			result.Records = append(result.Records, record)
		}
	}

	event := s.logger.Info()
	if len(result.Failures) > 0 {
		event = s.logger.Warn()
	}
	event.
		Str("puuid", puuid).
		Int("requested", result.Requested).
		Int("cached", result.Cached).
		Int("fetched", result.Fetched).
		Int("shortfall", result.Shortfall()).
		Msg("match history synced")

	return result, nil
}

// persistMatch extracts the player record from the detail and stores it with the match.
func (s *SyncService) persistMatch(ctx context.Context, puuid string, detail *matchfetcher.MatchDetail) (*models.ParticipationRecord, error) {
	matchId := detail.Metadata.MatchId

	participant, ok := detail.FindParticipant(puuid)
	if !ok {
		err := fmt.Errorf(messages.MissingParticipant+": %w", puuid, matchId, ErrDataIntegrity)
		s.logger.Error().
			Err(err).
			Str("puuid", puuid).
			Str("match_id", matchId).
			Msg("participant missing from match")
		return nil, err
	}

	match := &models.Match{
		MatchId:      matchId,
		GameCreation: detail.Info.GameCreation,
		GameDuration: detail.Info.GameDuration,
		GameMode:     detail.Info.GameMode,
		GameType:     detail.Info.GameType,
		RawData:      models.RawJSON(detail.Raw),
	}

	record := newParticipationRecord(puuid, matchId, participant)
	if err := s.MatchRepository.CreateMatchParticipation(ctx, match, record); err != nil {
		s.logger.Error().
			Err(err).
			Str("puuid", puuid).
			Str("match_id", matchId).
			Msg("couldn't store the match")
		return nil, err
	}

	record.Match = *match
	return record, nil
}

// newParticipationRecord maps the Riot participant into the stored record.
func newParticipationRecord(puuid, matchId string, p *matchfetcher.MatchPlayer) *models.ParticipationRecord {
	champLevel := p.ChampionLevel
	if champLevel == 0 {
		champLevel = 1
	}

	return &models.ParticipationRecord{
		PlayerPuuid:                 puuid,
		MatchId:                     matchId,
		Kills:                       p.Kills,
		Deaths:                      p.Deaths,
		Assists:                     p.Assists,
		Win:                         p.Win,
		ChampionId:                  p.ChampionId,
		ChampionName:                p.ChampionName,
		ChampLevel:                  champLevel,
		DoubleKills:                 p.DoubleKills,
		TripleKills:                 p.TripleKills,
		QuadraKills:                 p.QuadraKills,
		PentaKills:                  p.PentaKills,
		TotalDamageDealtToChampions: p.TotalDamageDealtToChampions,
		GoldEarned:                  p.GoldEarned,
		TotalMinionsKilled:          p.TotalMinionsKilled,
		VisionScore:                 p.VisionScore,
		WardsPlaced:                 p.WardsPlaced,
		WardsKilled:                 p.WardsKilled,
		Kda:                         mathutil.KDA(p.Kills, p.Deaths, p.Assists),
		KillParticipation:           p.Challenges.KillParticipation,
		DamagePerMinute:             p.Challenges.DamagePerMinute,
		GoldPerMinute:               p.Challenges.GoldPerMinute,
	}
}
