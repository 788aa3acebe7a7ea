package dto

import (
	"time"

	"gametrack/pkg/stats"
)

// MatchRecord is the performance of the player in one match.
type MatchRecord struct {
	MatchId      string    `json:"match_id"`
	GameDatetime time.Time `json:"game_datetime"`
	GameDuration int       `json:"game_duration"`
	GameMode     string    `json:"game_mode"`

	Kills   int     `json:"kills"`
	Deaths  int     `json:"deaths"`
	Assists int     `json:"assists"`
	Win     bool    `json:"win"`
	Kda     float64 `json:"kda"`

	ChampionId   int    `json:"champion_id"`
	ChampionName string `json:"champion_name"`
	ChampLevel   int    `json:"champ_level"`

	DoubleKills                 int      `json:"double_kills"`
	TripleKills                 int      `json:"triple_kills"`
	QuadraKills                 int      `json:"quadra_kills"`
	PentaKills                  int      `json:"penta_kills"`
	TotalDamageDealtToChampions int      `json:"total_damage_dealt_to_champions"`
	DamagePerMinute             *float64 `json:"damage_per_minute"`

	GoldEarned         int      `json:"gold_earned"`
	GoldPerMinute      *float64 `json:"gold_per_minute"`
	TotalMinionsKilled int      `json:"total_minions_killed"`

	VisionScore int `json:"vision_score"`
	WardsPlaced int `json:"wards_placed"`
	WardsKilled int `json:"wards_killed"`

	KillParticipation *float64  `json:"kill_participation"`
	CreatedAt         time.Time `json:"created_at"`
}

// PlayerMatches is the match history of a player after a sync.
type PlayerMatches struct {
	Player  *Player        `json:"player"`
	Matches []*MatchRecord `json:"matches"`
	// TotalMatches is the number of matches returned.
	TotalMatches int `json:"total_matches"`
	// RequestedMatches is the number of matches Riot listed.
	RequestedMatches int `json:"requested_matches"`
	// MissingMatches were listed but couldn't be stored this time.
	MissingMatches int `json:"missing_matches"`
	// Summary covers every stored match of the player.
	Summary stats.Summary `json:"summary"`
}
