package messages

const (
	BadStatusCodeMsg    = "API returned status code %d on URL %s"
	CouldNotFindId      = "couldn't find the %s Id"
	FailedToParseMsg    = "failed to parse API response"
	FiltersNotNil       = "filters can't be nil"
	InvalidIdentifier   = "game name and tag line are required"
	MissingParticipant  = "player %s is not a participant of match %s"
	OperationInProgress = "operation already in progress, please wait"
	RateLimitExhausted  = "rate limit still active after %d attempts on URL %s"
	RequestFailedMsg    = "API request failed on URL %s"
	UnknownPlayer       = "player %s was never resolved"
)
