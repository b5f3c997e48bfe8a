package application

import (
	"context"
	"sort"
	"time"

	"github.com/mioNacs/Look4Git/internal/domain/model"
	"github.com/mioNacs/Look4Git/internal/domain/port/driven"
)

// contributionEventTypes are the public event types counted as contributions
// by the events fallback. Everything else is ignored.
var contributionEventTypes = map[string]bool{
	"PushEvent":          true,
	"CreateEvent":        true,
	"PullRequestEvent":   true,
	"CommitCommentEvent": true,
	"IssuesEvent":        true,
	"IssueCommentEvent":  true,
}

// contributionStrategy is one way of producing a year of daily contribution
// counts. Strategies are tried in fixed priority order; any failure of one
// strategy triggers the next, and the last strategy's failure is terminal.
type contributionStrategy interface {
	name() string
	fetch(ctx context.Context, username string) (model.ContributionRecord, error)
}

// FetchContributionData returns the trailing year of daily contribution
// counts. The GraphQL contribution calendar is tried first; on any failure
// (network, auth, or query-level errors inside a 200 response) the resolver
// falls back to reconstructing counts from the user's recent public events.
// It fails only when every strategy fails, with the last error classified
// per the port's taxonomy.
func (s *Service) FetchContributionData(ctx context.Context, username string) (model.ContributionRecord, error) {
	var lastErr error
	for _, strategy := range s.strategies {
		record, err := strategy.fetch(ctx, username)
		if err == nil {
			return record, nil
		}
		s.logger.Warn("contribution strategy failed",
			"strategy", strategy.name(),
			"username", username,
			"error", err,
		)
		lastErr = err
	}
	return nil, lastErr
}

// calendarStrategy fetches true contribution counts from the GraphQL
// contribution calendar. Requires GraphQL access (a token); sees private
// contributions where permitted.
type calendarStrategy struct {
	gh driven.GitHubClient
}

func (c *calendarStrategy) name() string { return "graphql-calendar" }

func (c *calendarStrategy) fetch(ctx context.Context, username string) (model.ContributionRecord, error) {
	days, err := c.gh.FetchContributionCalendar(ctx, username)
	if err != nil {
		return nil, err
	}

	record := make(model.ContributionRecord, len(days))
	copy(record, days)
	sort.Slice(record, func(i, j int) bool {
		return record[i].Date < record[j].Date
	})

	return record, nil
}

// eventsStrategy approximates contributions from the user's last 100 public
// events. REST-only and always available, but blind to older activity and
// private contributions: a best-effort degrade, not an equivalent
// replacement for the calendar.
type eventsStrategy struct {
	gh driven.GitHubClient

	// now is overridable in tests; zero value means time.Now.
	now func() time.Time
}

func (e *eventsStrategy) name() string { return "events-heuristic" }

func (e *eventsStrategy) fetch(ctx context.Context, username string) (model.ContributionRecord, error) {
	events, err := e.gh.FetchEvents(ctx, username)
	if err != nil {
		return nil, err
	}

	nowFn := e.now
	if nowFn == nil {
		nowFn = time.Now
	}
	today := nowFn().UTC().Truncate(24 * time.Hour)
	start := today.AddDate(-1, 0, 0)

	// Zero-initialize every calendar day in the window so the record has no
	// gaps even for users with no matching events.
	counts := make(map[string]int)
	for d := start; !d.After(today); d = d.AddDate(0, 0, 1) {
		counts[d.Format(model.DateLayout)] = 0
	}

	for _, event := range events {
		if !contributionEventTypes[event.Type] {
			continue
		}
		date := event.CreatedAt.UTC().Format(model.DateLayout)
		if _, ok := counts[date]; ok {
			counts[date]++
		}
	}

	record := make(model.ContributionRecord, 0, len(counts))
	for date, count := range counts {
		record = append(record, model.ContributionDay{Date: date, Count: count})
	}
	sort.Slice(record, func(i, j int) bool {
		return record[i].Date < record[j].Date
	})

	return record, nil
}
