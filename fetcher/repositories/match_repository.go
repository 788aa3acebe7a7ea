package repositories

import (
	"context"
	"fmt"

	"gametrack/pkg/database/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Public Interface.
type MatchRepository interface {
	CreateMatchParticipation(ctx context.Context, match *models.Match, record *models.ParticipationRecord) error
	GetParticipations(ctx context.Context, puuid string, matchIds []string) ([]models.ParticipationRecord, error)
	GetPlayerParticipations(ctx context.Context, puuid string) ([]models.ParticipationRecord, error)
}

// Match repository structure.
type matchRepository struct {
	db *gorm.DB
}

// Create a match repository.
func NewMatchRepository(db *gorm.DB) MatchRepository {
	return &matchRepository{db: db}
}

// CreateMatchParticipation stores the match if it's new and the player record, in one transaction.
// A record that already exists fails the whole unit with gorm.ErrDuplicatedKey.
func (mr *matchRepository) CreateMatchParticipation(
	ctx context.Context,
	match *models.Match,
	record *models.ParticipationRecord,
) error {
	return mr.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Other players may have stored the match already.
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "match_id"}},
			DoNothing: true,
		}).Create(match).Error
		if err != nil {
			return fmt.Errorf("couldn't create the match %s: %w", match.MatchId, err)
		}

		record.MatchId = match.MatchId
		if err := tx.Omit(clause.Associations).Create(record).Error; err != nil {
			return fmt.Errorf("couldn't create the participation of %s on %s: %w", record.PlayerPuuid, match.MatchId, err)
		}

		return nil
	})
}

// GetParticipations returns the stored records of the player among the given matches.
func (mr *matchRepository) GetParticipations(ctx context.Context, puuid string, matchIds []string) ([]models.ParticipationRecord, error) {
	records := []models.ParticipationRecord{}
	if len(matchIds) == 0 {
		return records, nil
	}

	err := mr.db.WithContext(ctx).
		Preload("Match").
		Where("player_puuid = ? AND match_id IN ?", puuid, matchIds).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("couldn't get the participations of %s: %w", puuid, err)
	}

	return records, nil
}

// GetPlayerParticipations returns every stored record of the player, most recent game first.
func (mr *matchRepository) GetPlayerParticipations(ctx context.Context, puuid string) ([]models.ParticipationRecord, error) {
	records := []models.ParticipationRecord{}

	err := mr.db.WithContext(ctx).
		Joins("Match").
		Where("participation_records.player_puuid = ?", puuid).
		Order(clause.OrderByColumn{Column: clause.Column{Table: "Match", Name: "game_creation"}, Desc: true}).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("couldn't get the participations of %s: %w", puuid, err)
	}

	return records, nil
}
