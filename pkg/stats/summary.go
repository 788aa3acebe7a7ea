package stats

import (
	"gametrack/pkg/database/models"
	"gametrack/pkg/mathutil"
)

// Summary is the aggregate view of a set of participation records.
// Always computed from the records, never stored.
type Summary struct {
	TotalMatches   int     `json:"total_matches"`
	Wins           int     `json:"wins"`
	Losses         int     `json:"losses"`
	WinRate        float64 `json:"win_rate"`
	AvgKills       float64 `json:"avg_kills"`
	AvgDeaths      float64 `json:"avg_deaths"`
	AvgAssists     float64 `json:"avg_assists"`
	AvgKda         float64 `json:"avg_kda"`
	AvgDamage      float64 `json:"avg_damage"`
	AvgGold        float64 `json:"avg_gold"`
	AvgCs          float64 `json:"avg_cs"`
	AvgVisionScore float64 `json:"avg_vision_score"`
}

// Summarize aggregates the records. An empty input returns the zero Summary.
// The KDA is taken over the sums, so a single deathless game doesn't skew it.
func Summarize(records []models.ParticipationRecord) Summary {
	total := len(records)
	if total == 0 {
		return Summary{}
	}

	var wins, kills, deaths, assists, damage, gold, cs, vision int
	for _, r := range records {
		if r.Win {
			wins++
		}
		kills += r.Kills
		deaths += r.Deaths
		assists += r.Assists
		damage += r.TotalDamageDealtToChampions
		gold += r.GoldEarned
		cs += r.TotalMinionsKilled
		vision += r.VisionScore
	}

	avg := func(sum, places int) float64 {
		return mathutil.Round(float64(sum)/float64(total), places)
	}

	return Summary{
		TotalMatches:   total,
		Wins:           wins,
		Losses:         total - wins,
		WinRate:        mathutil.Round(float64(wins)/float64(total)*100, 1),
		AvgKills:       avg(kills, 1),
		AvgDeaths:      avg(deaths, 1),
		AvgAssists:     avg(assists, 1),
		AvgKda:         mathutil.KDA(kills, deaths, assists),
		AvgDamage:      avg(damage, 0),
		AvgGold:        avg(gold, 0),
		AvgCs:          avg(cs, 1),
		AvgVisionScore: avg(vision, 1),
	}
}
