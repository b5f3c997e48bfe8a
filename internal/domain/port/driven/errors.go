package driven

import "errors"

// RateLimitMessage is the user-facing text for an exhausted API quota.
const RateLimitMessage = "GitHub API rate limit exceeded. Please try again later or add an authentication token."

// RateLimitError reports that GitHub rejected a request because the API
// rate limit is exhausted (HTTP 403).
type RateLimitError string

// Error implements the error interface.
func (e RateLimitError) Error() string { return string(e) }

// FetchError reports any other upstream or transport failure. The message
// carries the upstream error text through to the caller.
type FetchError string

// Error implements the error interface.
func (e FetchError) Error() string { return string(e) }

// GraphQLError reports a query-level error carried inside an otherwise
// successful GraphQL response body. It only matters as a fallback trigger
// for the contribution resolver and is never surfaced past it.
type GraphQLError string

// Error implements the error interface.
func (e GraphQLError) Error() string { return string(e) }

// IsRateLimitError checks whether err is, or wraps, a RateLimitError.
func IsRateLimitError(err error) bool {
	var e RateLimitError
	return errors.As(err, &e)
}

// IsFetchError checks whether err is, or wraps, a FetchError.
func IsFetchError(err error) bool {
	var e FetchError
	return errors.As(err, &e)
}
