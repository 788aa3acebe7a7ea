package regions

import (
	"fmt"
	"strings"
)

// Riot routing value used on the account and match endpoints.
type MainRegion string

const (
	Americas MainRegion = "AMERICAS"
	Europe   MainRegion = "EUROPE"
	Asia     MainRegion = "ASIA"
	Sea      MainRegion = "SEA"
)

// List of routing regions and the platforms they serve.
var RegionList = map[MainRegion][]string{
	Americas: {"BR1", "LA1", "LA2", "NA1"},
	Europe:   {"EUN1", "EUW1", "TR1", "ME1", "RU"},
	Asia:     {"KR", "JP1"},
	Sea:      {"OC1", "SG2", "TW2", "VN2"},
}

// ParseMainRegion validates a case insensitive region name.
func ParseMainRegion(value string) (MainRegion, error) {
	region := MainRegion(strings.ToUpper(strings.TrimSpace(value)))
	if _, ok := RegionList[region]; !ok {
		return "", fmt.Errorf("unknown main region %q", value)
	}
	return region, nil
}

// BaseURL returns the API host for the given region.
func BaseURL(region MainRegion) string {
	return fmt.Sprintf("https://%s.api.riotgames.com", strings.ToLower(string(region)))
}
