package repositories

import (
	"context"
	"errors"
	"fmt"

	"gametrack/pkg/database/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PlayerRepository defines the public interface for handling player related data.
type PlayerRepository interface {
	DeletePlayer(ctx context.Context, puuid string) (bool, error)
	GetPlayerByPuuid(ctx context.Context, puuid string) (*models.Player, error)
	ListPlayers(ctx context.Context) ([]models.Player, error)
	UpsertPlayer(ctx context.Context, player *models.Player) (bool, error)
}

// playerRepository is the repository instance.
type playerRepository struct {
	db *gorm.DB
}

// NewPlayerRepository creates and return the player repository.
func NewPlayerRepository(db *gorm.DB) PlayerRepository {
	return &playerRepository{db: db}
}

// DeletePlayer removes the player, the database cascades to its participation records.
func (ps *playerRepository) DeletePlayer(ctx context.Context, puuid string) (bool, error) {
	result := ps.db.WithContext(ctx).Where("puuid = ?", puuid).Delete(&models.Player{})
	if result.Error != nil {
		return false, fmt.Errorf("couldn't delete the player %s: %w", puuid, result.Error)
	}

	return result.RowsAffected > 0, nil
}

// GetPlayerByPuuid returns a given player by his PUUID.
// A missing player is not an error, it returns nil.
func (ps *playerRepository) GetPlayerByPuuid(ctx context.Context, puuid string) (*models.Player, error) {
	var player models.Player
	if err := ps.db.WithContext(ctx).Where("puuid = ?", puuid).Take(&player).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("couldn't get the player %s: %w", puuid, err)
	}

	return &player, nil
}

// ListPlayers returns every stored player.
func (ps *playerRepository) ListPlayers(ctx context.Context) ([]models.Player, error) {
	players := []models.Player{}
	if err := ps.db.WithContext(ctx).Order("updated_at ASC").Find(&players).Error; err != nil {
		return nil, fmt.Errorf("couldn't list the players: %w", err)
	}

	return players, nil
}

// UpsertPlayer creates the player or refreshes its name and tag.
// Returns true when the player was created. The player is reloaded with the stored values.
func (ps *playerRepository) UpsertPlayer(ctx context.Context, player *models.Player) (bool, error) {
	created := false

	err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Player
		err := tx.Select("puuid").Where("puuid = ?", player.Puuid).Take(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			created = true
		case err != nil:
			return err
		}

		err = tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "puuid"}},
			DoUpdates: clause.AssignmentColumns([]string{"game_name", "tag_line", "updated_at"}),
		}).Omit(clause.Associations).Create(player).Error
		if err != nil {
			return err
		}

		return tx.Where("puuid = ?", player.Puuid).Take(player).Error
	})
	if err != nil {
		return false, fmt.Errorf("couldn't upsert the player %s: %w", player.Puuid, err)
	}

	return created, nil
}
