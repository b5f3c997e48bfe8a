package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mioNacs/Look4Git/internal/domain/model"
	"github.com/mioNacs/Look4Git/internal/domain/port/driven"
)

var testNow = time.Date(2026, 8, 28, 15, 4, 5, 0, time.UTC)

// newContributionService builds a Service whose events strategy uses a
// fixed clock, so the fallback window is deterministic.
func newContributionService(gh driven.GitHubClient) *Service {
	svc := newTestService(gh)
	svc.strategies = []contributionStrategy{
		&calendarStrategy{gh: gh},
		&eventsStrategy{gh: gh, now: func() time.Time { return testNow }},
	}
	return svc
}

// requireDailySequence asserts the record is strictly ascending by date with
// no gaps, ending on the expected last day.
func requireDailySequence(t *testing.T, record model.ContributionRecord, first, last string) {
	t.Helper()

	require.NotEmpty(t, record)
	assert.Equal(t, first, record[0].Date)
	assert.Equal(t, last, record[len(record)-1].Date)

	prev, err := time.Parse(model.DateLayout, record[0].Date)
	require.NoError(t, err)
	for _, day := range record[1:] {
		cur, err := time.Parse(model.DateLayout, day.Date)
		require.NoError(t, err)
		assert.Equal(t, prev.AddDate(0, 0, 1), cur, "dates must be consecutive with no gaps or duplicates")
		prev = cur
	}
}

func TestFetchContributionData_CalendarSortedAscending(t *testing.T) {
	svc := newContributionService(&mockGitHubClient{
		fetchCalendar: func(_ context.Context, _ string) ([]model.ContributionDay, error) {
			return []model.ContributionDay{
				{Date: "2026-08-27", Count: 2},
				{Date: "2026-08-25", Count: 5},
				{Date: "2026-08-26", Count: 0},
			}, nil
		},
		fetchEvents: func(_ context.Context, _ string) ([]model.Event, error) {
			t.Error("events fallback must not run when the calendar succeeds")
			return nil, nil
		},
	})

	record, err := svc.FetchContributionData(context.Background(), "mioNacs")
	require.NoError(t, err)

	requireDailySequence(t, record, "2026-08-25", "2026-08-27")
	assert.Equal(t, 5, record[0].Count)
	assert.Equal(t, 0, record[1].Count)
	assert.Equal(t, 2, record[2].Count)
}

func TestFetchContributionData_FallsBackOnGraphQLError(t *testing.T) {
	svc := newContributionService(&mockGitHubClient{
		fetchCalendar: func(_ context.Context, _ string) ([]model.ContributionDay, error) {
			return nil, driven.GraphQLError("Could not resolve to a User")
		},
		fetchEvents: func(_ context.Context, _ string) ([]model.Event, error) {
			return []model.Event{
				{Type: "PushEvent", CreatedAt: testNow.Add(-48 * time.Hour)},
				{Type: "PushEvent", CreatedAt: testNow.Add(-48 * time.Hour)},
				{Type: "WatchEvent", CreatedAt: testNow.Add(-24 * time.Hour)},
			}, nil
		},
	})

	record, err := svc.FetchContributionData(context.Background(), "mioNacs")
	require.NoError(t, err, "a GraphQL-level error must trigger the fallback, not fail")

	requireDailySequence(t, record, "2025-08-28", "2026-08-28")

	total := 0
	byDate := map[string]int{}
	for _, day := range record {
		total += day.Count
		byDate[day.Date] = day.Count
	}
	assert.Equal(t, 2, total, "only contribution-type events count")
	assert.Equal(t, 2, byDate["2026-08-26"])
}

func TestFetchContributionData_FallbackWithZeroEvents(t *testing.T) {
	svc := newContributionService(&mockGitHubClient{
		fetchCalendar: func(_ context.Context, _ string) ([]model.ContributionDay, error) {
			return nil, driven.FetchError("graphql unreachable")
		},
		fetchEvents: func(_ context.Context, _ string) ([]model.Event, error) {
			return nil, nil
		},
	})

	record, err := svc.FetchContributionData(context.Background(), "mioNacs")
	require.NoError(t, err)

	requireDailySequence(t, record, "2025-08-28", "2026-08-28")
	for _, day := range record {
		assert.Equal(t, 0, day.Count)
	}
}

func TestFetchContributionData_BothStrategiesFail(t *testing.T) {
	svc := newContributionService(&mockGitHubClient{
		fetchCalendar: func(_ context.Context, _ string) ([]model.ContributionDay, error) {
			return nil, driven.GraphQLError("nope")
		},
		fetchEvents: func(_ context.Context, _ string) ([]model.Event, error) {
			return nil, driven.RateLimitError(driven.RateLimitMessage)
		},
	})

	_, err := svc.FetchContributionData(context.Background(), "mioNacs")
	require.Error(t, err)
	assert.True(t, driven.IsRateLimitError(err), "the terminal error is the fallback's, classified")
}

func TestEventsStrategy_FiltersTypesAndWindow(t *testing.T) {
	gh := &mockGitHubClient{
		fetchEvents: func(_ context.Context, _ string) ([]model.Event, error) {
			return []model.Event{
				{Type: "PushEvent", CreatedAt: testNow.AddDate(-2, 0, 0)},          // outside window
				{Type: "WatchEvent", CreatedAt: testNow},                           // not a contribution type
				{Type: "ForkEvent", CreatedAt: testNow},                            // not a contribution type
				{Type: "IssueCommentEvent", CreatedAt: testNow},                    // counts today
				{Type: "PullRequestEvent", CreatedAt: testNow.Add(-time.Hour)},     // counts today
				{Type: "CreateEvent", CreatedAt: testNow.Add(-24 * time.Hour)},     // counts yesterday
				{Type: "IssuesEvent", CreatedAt: testNow.Add(-24 * time.Hour)},     // counts yesterday
				{Type: "CommitCommentEvent", CreatedAt: testNow.Add(-time.Minute)}, // counts today
			}, nil
		},
	}
	strategy := &eventsStrategy{gh: gh, now: func() time.Time { return testNow }}

	record, err := strategy.fetch(context.Background(), "mioNacs")
	require.NoError(t, err)

	byDate := map[string]int{}
	for _, day := range record {
		byDate[day.Date] = day.Count
	}
	assert.Equal(t, 3, byDate["2026-08-28"])
	assert.Equal(t, 2, byDate["2026-08-27"])
	assert.Equal(t, 0, byDate["2025-08-29"])
}
