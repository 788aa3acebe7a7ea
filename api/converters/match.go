package converters

import (
	"gametrack/api/dto"
	"gametrack/pkg/database/models"
)

// ConvertPlayer converts the stored player into its DTO.
func ConvertPlayer(player *models.Player) *dto.Player {
	if player == nil {
		return nil
	}

	return &dto.Player{
		Puuid:     player.Puuid,
		GameName:  player.GameName,
		TagLine:   player.TagLine,
		CreatedAt: player.CreatedAt,
		UpdatedAt: player.UpdatedAt,
	}
}

// ConvertRecord converts a participation record with its match into the DTO.
func ConvertRecord(record *models.ParticipationRecord) *dto.MatchRecord {
	return &dto.MatchRecord{
		MatchId:                     record.MatchId,
		GameDatetime:                record.Match.GameDatetime(),
		GameDuration:                record.Match.GameDuration,
		GameMode:                    record.Match.GameMode,
		Kills:                       record.Kills,
		Deaths:                      record.Deaths,
		Assists:                     record.Assists,
		Win:                         record.Win,
		Kda:                         record.Kda,
		ChampionId:                  record.ChampionId,
		ChampionName:                record.ChampionName,
		ChampLevel:                  record.ChampLevel,
		DoubleKills:                 record.DoubleKills,
		TripleKills:                 record.TripleKills,
		QuadraKills:                 record.QuadraKills,
		PentaKills:                  record.PentaKills,
		TotalDamageDealtToChampions: record.TotalDamageDealtToChampions,
		DamagePerMinute:             record.DamagePerMinute,
		GoldEarned:                  record.GoldEarned,
		GoldPerMinute:               record.GoldPerMinute,
		TotalMinionsKilled:          record.TotalMinionsKilled,
		VisionScore:                 record.VisionScore,
		WardsPlaced:                 record.WardsPlaced,
		WardsKilled:                 record.WardsKilled,
		KillParticipation:           record.KillParticipation,
		CreatedAt:                   record.CreatedAt,
	}
}

// ConvertRecords keeps the order of the records.
func ConvertRecords(records []models.ParticipationRecord) []*dto.MatchRecord {
	result := make([]*dto.MatchRecord, 0, len(records))
	for i := range records {
		result = append(result, ConvertRecord(&records[i]))
	}
	return result
}
