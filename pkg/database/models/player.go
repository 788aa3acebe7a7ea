package models

import (
	"time"
)

// Player resolved from a Riot ID.
// The puuid is assigned by Riot and never changes, the name and tag can be refreshed.
type Player struct {
	Puuid     string `gorm:"primaryKey;type:varchar(78)"`
	GameName  string `gorm:"type:varchar(100);index:idx_name_tag"`
	TagLine   string `gorm:"type:varchar(10);index:idx_name_tag"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
