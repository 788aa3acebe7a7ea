package matchfetcher

import "encoding/json"

// MatchDetail is the match_v5 payload of one match.
type MatchDetail struct {
	Metadata MatchMetadata `json:"metadata"`
	Info     MatchInfo     `json:"info"`

	// Raw keeps the payload as received.
	Raw json.RawMessage `json:"-"`
}

// MatchMetadata identifies the match and its participants.
type MatchMetadata struct {
	MatchId      string   `json:"matchId"`
	Participants []string `json:"participants"`
}

// MatchInfo contains the basic match metadata.
type MatchInfo struct {
	GameCreation int64         `json:"gameCreation"`
	GameDuration int           `json:"gameDuration"`
	GameMode     string        `json:"gameMode"`
	GameType     string        `json:"gameType"`
	GameVersion  string        `json:"gameVersion"`
	Participants []MatchPlayer `json:"participants"`
	QueueId      int           `json:"queueId"`
}

// MatchPlayer contains the stats and information about a given player in a Match.
type MatchPlayer struct {
	Assists                     int        `json:"assists"`
	ChampionLevel               int        `json:"champLevel"`
	ChampionId                  int        `json:"championId"`
	ChampionName                string     `json:"championName"`
	Challenges                  Challenges `json:"challenges"`
	Deaths                      int        `json:"deaths"`
	DoubleKills                 int        `json:"doubleKills"`
	GoldEarned                  int        `json:"goldEarned"`
	Kills                       int        `json:"kills"`
	PentaKills                  int        `json:"pentaKills"`
	Puuid                       string     `json:"puuid"`
	QuadraKills                 int        `json:"quadraKills"`
	RiotIdGameName              string     `json:"riotIdGameName"`
	RiotIdTagline               string     `json:"riotIdTagline"`
	TotalDamageDealtToChampions int        `json:"totalDamageDealtToChampions"`
	TotalMinionsKilled          int        `json:"totalMinionsKilled"`
	TripleKills                 int        `json:"tripleKills"`
	VisionScore                 int        `json:"visionScore"`
	WardsKilled                 int        `json:"wardsKilled"`
	WardsPlaced                 int        `json:"wardsPlaced"`
	Win                         bool       `json:"win"`
}

// Challenges of the player for this match.
// Riot omits them on some modes, missing values stay nil.
type Challenges struct {
	DamagePerMinute   *float64 `json:"damagePerMinute"`
	GoldPerMinute     *float64 `json:"goldPerMinute"`
	KillParticipation *float64 `json:"killParticipation"`
}

// FindParticipant returns the participant with the given puuid.
func (m *MatchDetail) FindParticipant(puuid string) (*MatchPlayer, bool) {
	for i := range m.Info.Participants {
		if m.Info.Participants[i].Puuid == puuid {
			return &m.Info.Participants[i], true
		}
	}
	return nil, false
}
