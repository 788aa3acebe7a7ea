package accountfetcher

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"gametrack/fetcher/requests"
)

// Account is the identity returned by the account_v1 endpoint.
type Account struct {
	Puuid    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

// AccountFetcher resolves Riot IDs into puuids.
type AccountFetcher struct {
	caller requests.Caller
}

// NewAccountFetcher creates the account fetcher.
func NewAccountFetcher(caller requests.Caller) *AccountFetcher {
	return &AccountFetcher{caller: caller}
}

// NormalizeRiotId trims both parts and removes the leading '#' users often type on the tag.
func NormalizeRiotId(gameName, tagLine string) (string, string, error) {
	name := strings.TrimSpace(gameName)
	tag := strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(tagLine), "#"))

	if name == "" || tag == "" {
		return "", "", requests.ErrInvalidIdentifier
	}

	return name, tag, nil
}

// Resolve returns the account for the given Riot ID.
// An empty answer is ErrNotFound, other client failures are returned unchanged.
func (a *AccountFetcher) Resolve(ctx context.Context, gameName, tagLine string) (*Account, error) {
	name, tag, err := NormalizeRiotId(gameName, tagLine)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf(
		"/riot/account/v1/accounts/by-riot-id/%s/%s",
		url.PathEscape(name),
		url.PathEscape(tag),
	)

	account, _, err := requests.Get[*Account](ctx, a.caller, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("couldn't resolve %s#%s: %w", name, tag, err)
	}

	if account == nil || *account == nil || (*account).Puuid == "" {
		return nil, fmt.Errorf("couldn't resolve %s#%s: %w", name, tag, requests.ErrNotFound)
	}

	resolved := *account
	// Riot echoes the canonical casing, fall back to the input when it doesn't.
	if resolved.GameName == "" {
		resolved.GameName = name
	}
	if resolved.TagLine == "" {
		resolved.TagLine = tag
	}

	return resolved, nil
}
