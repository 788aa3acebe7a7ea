package data

import (
	accountfetcher "gametrack/fetcher/data/account"
	matchfetcher "gametrack/fetcher/data/match"
	"gametrack/fetcher/requests"

	"github.com/rs/zerolog"
)

// MainFetcher groups the fetchers of one routing region.
// They share the client, so they share its rate limiter.
type MainFetcher struct {
	Account *accountfetcher.AccountFetcher
	Match   *matchfetcher.MatchFetcher
}

// NewMainFetcher creates the fetchers on top of the given client.
func NewMainFetcher(caller requests.Caller, workers int, logger zerolog.Logger) *MainFetcher {
	return &MainFetcher{
		Account: accountfetcher.NewAccountFetcher(caller),
		Match:   matchfetcher.NewMatchFetcher(caller, workers, logger),
	}
}
