package httphandler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/mioNacs/Look4Git/internal/domain/model"
	"github.com/mioNacs/Look4Git/internal/domain/port/driven"
)

// writeJSON marshals v to JSON and writes it to the response with the given
// status code. If marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError writes a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeUpstreamError maps a classified GitHub error onto an HTTP status and
// passes the upstream message through verbatim for the front end to display.
func writeUpstreamError(w http.ResponseWriter, err error) {
	switch {
	case driven.IsRateLimitError(err):
		writeError(w, http.StatusTooManyRequests, err.Error())
	case driven.IsFetchError(err):
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// errorResponse is the standard error response body.
type errorResponse struct {
	Error string `json:"error"`
}

// ProfileResponse is the JSON representation of a user profile.
type ProfileResponse struct {
	Login       string `json:"login"`
	Name        string `json:"name"`
	AvatarURL   string `json:"avatar_url"`
	Bio         string `json:"bio"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Blog        string `json:"blog"`
	Hireable    bool   `json:"hireable"`
	Followers   int    `json:"followers"`
	Following   int    `json:"following"`
	PublicRepos int    `json:"public_repos"`
	CreatedAt   string `json:"created_at"`
}

// RepoResponse is the JSON representation of one repository, carrying
// exactly the fields the front end renders. LatestCommit is omitted for
// repositories that were not enriched.
type RepoResponse struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Language     string  `json:"language"`
	Stars        int     `json:"stargazers_count"`
	Forks        int     `json:"forks_count"`
	UpdatedAt    string  `json:"updated_at"`
	URL          string  `json:"html_url"`
	Fork         bool    `json:"fork"`
	LatestCommit *string `json:"latestCommit,omitempty"`
}

// LanguageStatsResponse is the JSON representation of aggregated language data.
type LanguageStatsResponse struct {
	BytesPerLanguage map[string]int `json:"bytesPerLanguage"`
	ReposPerLanguage map[string]int `json:"reposPerLanguage"`
}

// ContributionDayResponse is one day of the contribution calendar.
type ContributionDayResponse struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// HealthResponse is the JSON representation of the health check endpoint.
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

// toProfileResponse converts a domain Profile to its JSON representation.
func toProfileResponse(p model.Profile) ProfileResponse {
	return ProfileResponse{
		Login:       p.Login,
		Name:        p.Name,
		AvatarURL:   p.AvatarURL,
		Bio:         p.Bio,
		Company:     p.Company,
		Location:    p.Location,
		Blog:        p.Blog,
		Hireable:    p.Hireable,
		Followers:   p.Followers,
		Following:   p.Following,
		PublicRepos: p.PublicRepos,
		CreatedAt:   p.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// toRepoResponse converts a domain Repository to its JSON representation.
func toRepoResponse(r model.Repository) RepoResponse {
	return RepoResponse{
		ID:           r.ID,
		Name:         r.Name,
		Description:  r.Description,
		Language:     r.Language,
		Stars:        r.Stars,
		Forks:        r.Forks,
		UpdatedAt:    r.UpdatedAt.UTC().Format(time.RFC3339),
		URL:          r.URL,
		Fork:         r.Fork,
		LatestCommit: r.LatestCommit,
	}
}

// toLanguageStatsResponse converts domain LanguageStats to its JSON representation.
func toLanguageStatsResponse(s model.LanguageStats) LanguageStatsResponse {
	return LanguageStatsResponse{
		BytesPerLanguage: s.BytesPerLanguage,
		ReposPerLanguage: s.ReposPerLanguage,
	}
}

// toContributionResponse converts a ContributionRecord to its JSON representation.
func toContributionResponse(record model.ContributionRecord) []ContributionDayResponse {
	resp := make([]ContributionDayResponse, 0, len(record))
	for _, day := range record {
		resp = append(resp, ContributionDayResponse{Date: day.Date, Count: day.Count})
	}
	return resp
}
