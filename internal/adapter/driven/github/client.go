// Package github implements the GitHubClient port using the go-github library.
package github

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v82/github"
	"github.com/gregjones/httpcache"

	"github.com/gofri/go-github-ratelimit/v2/github_ratelimit"

	"github.com/mioNacs/Look4Git/internal/domain/model"
	"github.com/mioNacs/Look4Git/internal/domain/port/driven"
)

// reposPerPage is the API's maximum page size. A single page is fetched;
// users with more than 100 repositories get truncated top-N selections
// system-wide. Extending pagination would change rate-limit cost, so the
// cap is kept as a documented constraint.
const reposPerPage = 100

// eventsPerPage caps the events fallback at the 100 most recent public events.
const eventsPerPage = 100

// Compile-time interface satisfaction check.
var _ driven.GitHubClient = (*Client)(nil)

// Client implements the driven.GitHubClient port using the go-github library.
// Configuration is immutable after construction and safe for concurrent use.
type Client struct {
	gh         *gh.Client
	httpClient *http.Client
	token      string // Stored for the GraphQL Authorization header.
	graphqlURL string // Configured endpoint; derived from baseURL in NewClientWithHTTPClient.
}

// NewClient creates a new GitHub API client with the following transport stack:
//  1. httpcache (ETag-based conditional request caching)
//  2. client-side request rate cap (skipped when maxRate <= 0)
//  3. go-github-ratelimit (secondary rate limit middleware, sleeps on 429)
//  4. go-github (GitHub REST API client with optional PAT auth)
//
// apiURL and graphqlURL point at api.github.com in production and are
// overridable for GitHub Enterprise. The token is optional; without it
// requests go out unauthenticated and are subject to tighter rate limits.
// timeout bounds every outbound request.
func NewClient(token, apiURL, graphqlURL string, maxRate float64, timeout time.Duration) (*Client, error) {
	var transport http.RoundTripper = httpcache.NewMemoryCacheTransport()
	if maxRate > 0 {
		transport = newLimitedTransport(transport, maxRate)
	}
	httpClient := github_ratelimit.NewClient(transport)
	httpClient.Timeout = timeout

	client := gh.NewClient(httpClient)
	if token != "" {
		client = client.WithAuthToken(token)
	}

	u, err := url.Parse(apiURL)
	if err != nil {
		return nil, fmt.Errorf("parsing API base URL: %w", err)
	}
	// go-github requires the base URL to end in a slash.
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	client.BaseURL = u

	return &Client{
		gh:         client,
		httpClient: httpClient,
		token:      token,
		graphqlURL: graphqlURL,
	}, nil
}

// NewClientWithHTTPClient creates a Client with a custom http.Client and base URL.
// This constructor is intended for testing, allowing injection of an httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL, token string) (*Client, error) {
	client := gh.NewClient(httpClient)

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	client.BaseURL = u

	// Derive graphqlURL from baseURL so httptest servers can intercept GraphQL requests.
	graphqlU := *u
	graphqlU.Path = "/graphql"

	return &Client{
		gh:         client,
		httpClient: httpClient,
		token:      token,
		graphqlURL: graphqlU.String(),
	}, nil
}

// FetchProfile retrieves the user's public profile record.
func (c *Client) FetchProfile(ctx context.Context, username string) (model.Profile, error) {
	user, resp, err := c.gh.Users.Get(ctx, username)
	if err != nil {
		return model.Profile{}, classify(err)
	}

	logRateLimit(resp, "users/"+username, 1)

	return model.Profile{
		Login:       user.GetLogin(),
		Name:        user.GetName(),
		AvatarURL:   user.GetAvatarURL(),
		Bio:         user.GetBio(),
		Company:     user.GetCompany(),
		Location:    user.GetLocation(),
		Blog:        user.GetBlog(),
		Hireable:    user.GetHireable(),
		Followers:   user.GetFollowers(),
		Following:   user.GetFollowing(),
		PublicRepos: user.GetPublicRepos(),
		CreatedAt:   user.GetCreatedAt().Time,
	}, nil
}

// FetchRepositories retrieves up to 100 of the user's repositories in a
// single page, requested sorted by star count descending.
func (c *Client) FetchRepositories(ctx context.Context, username string) ([]model.Repository, error) {
	opts := &gh.RepositoryListByUserOptions{
		Sort:      "stars",
		Direction: "desc",
		ListOptions: gh.ListOptions{
			PerPage: reposPerPage,
		},
	}

	repos, resp, err := c.gh.Repositories.ListByUser(ctx, username, opts)
	if err != nil {
		return nil, classify(err)
	}

	logRateLimit(resp, "users/"+username+"/repos", len(repos))

	result := make([]model.Repository, 0, len(repos))
	for _, r := range repos {
		result = append(result, mapRepository(r))
	}

	return result, nil
}

// FetchLatestCommit retrieves the message of the repository's most recent
// commit. Returns "" for a repository with no commits.
func (c *Client) FetchLatestCommit(ctx context.Context, username, repo string) (string, error) {
	opts := &gh.CommitsListOptions{
		ListOptions: gh.ListOptions{PerPage: 1},
	}

	commits, resp, err := c.gh.Repositories.ListCommits(ctx, username, repo, opts)
	if err != nil {
		return "", classify(err)
	}

	logRateLimit(resp, username+"/"+repo+"/commits", len(commits))

	if len(commits) == 0 {
		return "", nil
	}
	return commits[0].GetCommit().GetMessage(), nil
}

// FetchLanguages retrieves the repository's language to byte-count map.
func (c *Client) FetchLanguages(ctx context.Context, username, repo string) (map[string]int, error) {
	languages, resp, err := c.gh.Repositories.ListLanguages(ctx, username, repo)
	if err != nil {
		return nil, classify(err)
	}

	logRateLimit(resp, username+"/"+repo+"/languages", len(languages))

	return languages, nil
}

// FetchEvents retrieves up to 100 of the user's most recent public events.
func (c *Client) FetchEvents(ctx context.Context, username string) ([]model.Event, error) {
	opts := &gh.ListOptions{PerPage: eventsPerPage}

	events, resp, err := c.gh.Activity.ListEventsPerformedByUser(ctx, username, false, opts)
	if err != nil {
		return nil, classify(err)
	}

	logRateLimit(resp, "users/"+username+"/events", len(events))

	result := make([]model.Event, 0, len(events))
	for _, e := range events {
		result = append(result, model.Event{
			Type:      e.GetType(),
			CreatedAt: e.GetCreatedAt().Time,
		})
	}

	return result, nil
}

// mapRepository converts a go-github Repository to a domain model Repository.
// LatestCommit stays nil; enrichment happens in the application layer.
func mapRepository(r *gh.Repository) model.Repository {
	return model.Repository{
		ID:          r.GetID(),
		Name:        r.GetName(),
		Description: r.GetDescription(),
		Language:    r.GetLanguage(),
		Stars:       r.GetStargazersCount(),
		Forks:       r.GetForksCount(),
		UpdatedAt:   r.GetUpdatedAt().Time,
		URL:         r.GetHTMLURL(),
		Fork:        r.GetFork(),
	}
}

// classify maps go-github errors onto the port's error taxonomy:
// rate-limit rejections and plain 403s become RateLimitError, everything
// else a FetchError carrying the upstream message.
func classify(err error) error {
	var rateErr *gh.RateLimitError
	if errors.As(err, &rateErr) {
		return driven.RateLimitError(driven.RateLimitMessage)
	}

	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return driven.RateLimitError(driven.RateLimitMessage)
	}

	var respErr *gh.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil && respErr.Response.StatusCode == http.StatusForbidden {
		return driven.RateLimitError(driven.RateLimitMessage)
	}

	return driven.FetchError(err.Error())
}

// logRateLimit logs the GitHub API rate limit status after each call.
func logRateLimit(resp *gh.Response, endpoint string, count int) {
	if resp == nil {
		return
	}

	slog.Debug("github api call",
		"endpoint", endpoint,
		"count", count,
		"rate_remaining", resp.Rate.Remaining,
		"rate_limit", resp.Rate.Limit,
	)

	if resp.Rate.Remaining < 100 {
		slog.Warn("github rate limit low",
			"remaining", resp.Rate.Remaining,
			"reset_in", time.Until(resp.Rate.Reset.Time).Round(time.Second),
		)
	}
}
