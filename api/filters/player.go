package filters

import (
	accountfetcher "gametrack/fetcher/data/account"
	matchfetcher "gametrack/fetcher/data/match"
)

// Body of the player search.
type PlayerSearchParams struct {
	GameName string `json:"game_name" binding:"required"`
	TagLine  string `json:"tag_line" binding:"required"`
}

// Query params of the player match history.
type PlayerMatchesParams struct {
	Limit int `form:"limit"`
}

// Body of the one shot lookup and sync.
type PlayerStatsParams struct {
	GameName string `json:"game_name" binding:"required"`
	TagLine  string `json:"tag_line" binding:"required"`
	Limit    int    `json:"limit"`
}

// PlayerSearchFilter is the validated Riot ID.
type PlayerSearchFilter struct {
	GameName string
	TagLine  string
}

// PlayerMatchesFilter is the validated match history request.
type PlayerMatchesFilter struct {
	Puuid string
	Limit int
}

// NewPlayerSearchFilter trims the Riot ID and drops a leading '#' from the tag.
func NewPlayerSearchFilter(gameName, tagLine string) (*PlayerSearchFilter, error) {
	gameName, tagLine, err := accountfetcher.NormalizeRiotId(gameName, tagLine)
	if err != nil {
		return nil, err
	}

	return &PlayerSearchFilter{
		GameName: gameName,
		TagLine:  tagLine,
	}, nil
}

// NewPlayerMatchesFilter defaults and caps the limit.
func NewPlayerMatchesFilter(puuid string, limit int) *PlayerMatchesFilter {
	return &PlayerMatchesFilter{
		Puuid: puuid,
		Limit: matchfetcher.ClampCount(limit),
	}
}
