// Package driven defines secondary port interfaces for external adapters.
package driven

import (
	"context"

	"github.com/mioNacs/Look4Git/internal/domain/model"
)

// GitHubClient defines the driven port for interacting with the GitHub API.
// Implementations classify upstream failures: HTTP 403 becomes a
// RateLimitError, everything else a FetchError. No method retries.
type GitHubClient interface {
	// FetchProfile returns the user's public profile record.
	FetchProfile(ctx context.Context, username string) (model.Profile, error)

	// FetchRepositories returns up to 100 of the user's repositories in a
	// single page, requested sorted by star count. The returned order is
	// server-determined and not part of the contract.
	FetchRepositories(ctx context.Context, username string) ([]model.Repository, error)

	// FetchLatestCommit returns the message of the repository's most recent
	// commit, or "" for an empty repository.
	FetchLatestCommit(ctx context.Context, username, repo string) (string, error)

	// FetchLanguages returns the repository's language to byte-count map.
	FetchLanguages(ctx context.Context, username, repo string) (map[string]int, error)

	// FetchContributionCalendar returns the trailing year of daily
	// contribution counts from the GraphQL contribution calendar, in
	// calendar order as returned by the API (callers sort). Query-level
	// errors inside a 200 response are returned as a GraphQLError.
	FetchContributionCalendar(ctx context.Context, username string) ([]model.ContributionDay, error)

	// FetchEvents returns up to 100 of the user's most recent public events.
	FetchEvents(ctx context.Context, username string) ([]model.Event, error)
}
