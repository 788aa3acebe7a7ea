package repositories

import (
	"testing"

	"gametrack/pkg/database/models"

	"gorm.io/gorm"
)

func newTestMatch(matchId string, gameCreation int64) *models.Match {
	return &models.Match{
		MatchId:      matchId,
		GameCreation: gameCreation,
		GameDuration: 1800,
		GameMode:     "CLASSIC",
		GameType:     "MATCHED_GAME",
		RawData:      models.RawJSON(`{"metadata":{"matchId":"` + matchId + `"}}`),
	}
}

func newTestRecord(puuid string, kills, deaths, assists int) *models.ParticipationRecord {
	return &models.ParticipationRecord{
		PlayerPuuid:  puuid,
		Kills:        kills,
		Deaths:       deaths,
		Assists:      assists,
		Win:          true,
		ChampionId:   103,
		ChampionName: "Ahri",
		ChampLevel:   16,
	}
}

// seedPlayers inserts the players used by the repository tests.
func seedPlayers(t *testing.T, db *gorm.DB, puuids ...string) {
	t.Helper()

	for _, puuid := range puuids {
		player := &models.Player{Puuid: puuid, GameName: "name-" + puuid, TagLine: "T1"}
		if err := db.Create(player).Error; err != nil {
			t.Fatalf("couldn't seed player %s: %v", puuid, err)
		}
	}
}
