package dto

import "time"

// Player is the stored Riot account.
type Player struct {
	Puuid     string    `json:"puuid"`
	GameName  string    `json:"game_name"`
	TagLine   string    `json:"tag_line"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PlayerSearch is the result of a player lookup.
type PlayerSearch struct {
	Player  *Player `json:"player"`
	Created bool    `json:"created"`
}
