package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mioNacs/Look4Git/internal/domain/model"
	"github.com/mioNacs/Look4Git/internal/domain/port/driven"
)

const contributionCalendarQuery = `query($login: String!) {
	user(login: $login) {
		contributionsCollection {
			contributionCalendar {
				weeks {
					contributionDays {
						date
						contributionCount
					}
				}
			}
		}
	}
}`

// graphqlRequest is the JSON body sent to the GitHub GraphQL API.
type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

// contributionCalendarResponse represents the expected shape of a GitHub
// GraphQL response for the contribution calendar query.
type contributionCalendarResponse struct {
	Data struct {
		User struct {
			ContributionsCollection struct {
				ContributionCalendar struct {
					Weeks []struct {
						ContributionDays []struct {
							Date              string `json:"date"`
							ContributionCount int    `json:"contributionCount"`
						} `json:"contributionDays"`
					} `json:"weeks"`
				} `json:"contributionCalendar"`
			} `json:"contributionsCollection"`
		} `json:"user"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// FetchContributionCalendar queries the GraphQL API for the trailing year of
// daily contribution counts and flattens the weeks structure into a day list.
// The list is returned in calendar order as sent by the API; sorting is the
// caller's concern.
//
// Query-level errors carried inside a 200 response are returned as a
// driven.GraphQLError so the contribution resolver can fall back; transport
// and HTTP failures are classified per the port's taxonomy.
func (c *Client) FetchContributionCalendar(ctx context.Context, username string) ([]model.ContributionDay, error) {
	reqBody := graphqlRequest{
		Query: contributionCalendarQuery,
		Variables: map[string]any{
			"login": username,
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, driven.FetchError(fmt.Sprintf("marshaling contribution query: %v", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.graphqlURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, driven.FetchError(fmt.Sprintf("creating contribution request: %v", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		httpReq.Header.Set("Authorization", fmt.Sprintf("bearer %s", c.token))
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, driven.FetchError(fmt.Sprintf("contribution query for %s: %v", username, err))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusForbidden {
		return nil, driven.RateLimitError(driven.RateLimitMessage)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, driven.FetchError(fmt.Sprintf("contribution query for %s: HTTP %d", username, resp.StatusCode))
	}

	var gqlResp contributionCalendarResponse
	if err := json.NewDecoder(resp.Body).Decode(&gqlResp); err != nil {
		return nil, driven.FetchError(fmt.Sprintf("decoding contribution response for %s: %v", username, err))
	}

	if len(gqlResp.Errors) > 0 {
		return nil, driven.GraphQLError(gqlResp.Errors[0].Message)
	}

	var days []model.ContributionDay
	for _, week := range gqlResp.Data.User.ContributionsCollection.ContributionCalendar.Weeks {
		for _, day := range week.ContributionDays {
			days = append(days, model.ContributionDay{
				Date:  day.Date,
				Count: day.ContributionCount,
			})
		}
	}

	return days, nil
}
