package github_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ghAdapter "github.com/mioNacs/Look4Git/internal/adapter/driven/github"
	"github.com/mioNacs/Look4Git/internal/domain/port/driven"
)

func calendarResponse(weeks ...[]map[string]any) map[string]any {
	weekNodes := make([]any, 0, len(weeks))
	for _, days := range weeks {
		weekNodes = append(weekNodes, map[string]any{"contributionDays": days})
	}
	return map[string]any{
		"data": map[string]any{
			"user": map[string]any{
				"contributionsCollection": map[string]any{
					"contributionCalendar": map[string]any{
						"weeks": weekNodes,
					},
				},
			},
		},
	}
}

func TestFetchContributionCalendar_Success(t *testing.T) {
	resp := calendarResponse(
		[]map[string]any{
			{"date": "2026-08-23", "contributionCount": 3},
			{"date": "2026-08-24", "contributionCount": 0},
		},
		[]map[string]any{
			{"date": "2026-08-25", "contributionCount": 7},
		},
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/graphql" {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "bearer test-token", r.Header.Get("Authorization"))
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var req struct {
				Query     string         `json:"query"`
				Variables map[string]any `json:"variables"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Contains(t, req.Query, "contributionCalendar")
			assert.Equal(t, "mioNacs", req.Variables["login"])

			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(resp)
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	client, err := ghAdapter.NewClientWithHTTPClient(server.Client(), server.URL+"/", "test-token")
	require.NoError(t, err)

	days, err := client.FetchContributionCalendar(context.Background(), "mioNacs")
	require.NoError(t, err)

	require.Len(t, days, 3)
	assert.Equal(t, "2026-08-23", days[0].Date)
	assert.Equal(t, 3, days[0].Count)
	assert.Equal(t, "2026-08-25", days[2].Date)
	assert.Equal(t, 7, days[2].Count)
}

func TestFetchContributionCalendar_GraphQLErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"data":   nil,
			"errors": []any{map[string]any{"message": "Could not resolve to a User"}},
		})
	}))
	defer server.Close()

	client, err := ghAdapter.NewClientWithHTTPClient(server.Client(), server.URL+"/", "test-token")
	require.NoError(t, err)

	_, err = client.FetchContributionCalendar(context.Background(), "ghost")
	require.Error(t, err)

	var gqlErr driven.GraphQLError
	require.True(t, errors.As(err, &gqlErr), "body-level errors must surface as GraphQLError")
	assert.Equal(t, "Could not resolve to a User", gqlErr.Error())
}

func TestFetchContributionCalendar_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client, err := ghAdapter.NewClientWithHTTPClient(server.Client(), server.URL+"/", "test-token")
	require.NoError(t, err)

	_, err = client.FetchContributionCalendar(context.Background(), "mioNacs")
	require.Error(t, err)
	assert.True(t, driven.IsRateLimitError(err))
}

func TestFetchContributionCalendar_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client, err := ghAdapter.NewClientWithHTTPClient(server.Client(), server.URL+"/", "test-token")
	require.NoError(t, err)

	_, err = client.FetchContributionCalendar(context.Background(), "mioNacs")
	require.Error(t, err)
	assert.True(t, driven.IsFetchError(err))
}

func TestFetchContributionCalendar_NoTokenOmitsAuthHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(calendarResponse())
	}))
	defer server.Close()

	client, err := ghAdapter.NewClientWithHTTPClient(server.Client(), server.URL+"/", "")
	require.NoError(t, err)

	days, err := client.FetchContributionCalendar(context.Background(), "mioNacs")
	require.NoError(t, err)
	assert.Empty(t, days)
}
