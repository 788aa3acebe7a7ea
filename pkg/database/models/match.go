package models

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"

	"gametrack/pkg/mathutil"

	"gorm.io/gorm"
)

// RawJSON stores a JSON payload on a jsonb column.
type RawJSON []byte

// Value implements driver.Valuer.
func (j RawJSON) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return string(j), nil
}

// Scan implements sql.Scanner.
func (j *RawJSON) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*j = nil
	case []byte:
		*j = append((*j)[:0], v...)
	case string:
		*j = RawJSON(v)
	default:
		return fmt.Errorf("unsupported type %T for RawJSON", value)
	}
	return nil
}

// MarshalJSON keeps the payload as is.
func (j RawJSON) MarshalJSON() ([]byte, error) {
	if len(j) == 0 {
		return []byte("null"), nil
	}
	return j, nil
}

// Match is shared by every player that took part on it and never changes once stored.
type Match struct {
	MatchId      string  `gorm:"primaryKey;type:varchar(50)"`
	GameCreation int64   `gorm:"index"` // Epoch milliseconds.
	GameDuration int     // Seconds.
	GameMode     string  `gorm:"type:varchar(50)"`
	GameType     string  `gorm:"type:varchar(50)"`
	RawData      RawJSON `gorm:"type:jsonb"`
	CreatedAt    time.Time
}

// GameDatetime returns the game creation as a UTC time.
func (m *Match) GameDatetime() time.Time {
	return time.UnixMilli(m.GameCreation).UTC()
}

// ParticipationRecord is the performance of one player in one match.
type ParticipationRecord struct {
	ID          uint64 `gorm:"primaryKey"`
	PlayerPuuid string `gorm:"type:varchar(78);not null;uniqueIndex:idx_player_match"`
	MatchId     string `gorm:"type:varchar(50);not null;uniqueIndex:idx_player_match;index"`

	// Foreign keys. Deleting a player removes its records, the matches stay.
	Player Player `gorm:"foreignKey:PlayerPuuid;references:Puuid;constraint:OnDelete:CASCADE"`
	Match  Match  `gorm:"foreignKey:MatchId;references:MatchId;constraint:OnDelete:RESTRICT"`

	Kills        int
	Deaths       int
	Assists      int
	Win          bool
	ChampionId   int
	ChampionName string `gorm:"type:varchar(50)"`
	ChampLevel   int

	DoubleKills int
	TripleKills int
	QuadraKills int
	PentaKills  int

	TotalDamageDealtToChampions int
	GoldEarned                  int
	TotalMinionsKilled          int
	VisionScore                 int
	WardsPlaced                 int
	WardsKilled                 int

	// Always derived from kills, deaths and assists.
	Kda float64

	// Taken from the match challenges when Riot sends them.
	KillParticipation *float64
	DamagePerMinute   *float64
	GoldPerMinute     *float64

	CreatedAt time.Time
}

// ErrImmutableRecord is returned when saving a record that was already stored.
var ErrImmutableRecord = errors.New("participation records can't be updated")

// BeforeSave recomputes the KDA, the upstream value is never trusted.
func (r *ParticipationRecord) BeforeSave(tx *gorm.DB) error {
	r.Kda = mathutil.KDA(r.Kills, r.Deaths, r.Assists)
	return nil
}

// BeforeUpdate blocks updates on the match history.
func (r *ParticipationRecord) BeforeUpdate(tx *gorm.DB) error {
	return ErrImmutableRecord
}
