// Package httphandler is the HTTP driving adapter serving the JSON API
// consumed by the profile visualizer front end.
package httphandler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/mioNacs/Look4Git/internal/application"
)

// Handler serves the four aggregation entry points. Each endpoint is
// independent; the front end calls them per username, twice in comparison
// mode, and re-invokes the contributions endpoint to retry on demand.
type Handler struct {
	svc    *application.Service
	logger *slog.Logger
}

// NewHandler creates a Handler backed by the aggregation service.
func NewHandler(svc *application.Service, logger *slog.Logger) *Handler {
	return &Handler{
		svc:    svc,
		logger: logger,
	}
}

// NewServeMux creates an http.Handler with all routes registered and wrapped
// with logging and recovery middleware.
func NewServeMux(h *Handler, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/users/{username}", h.GetProfile)
	mux.HandleFunc("GET /api/v1/users/{username}/repos", h.GetReposWithCommits)
	mux.HandleFunc("GET /api/v1/users/{username}/languages", h.GetLanguageStats)
	mux.HandleFunc("GET /api/v1/users/{username}/contributions", h.GetContributions)
	mux.HandleFunc("GET /api/v1/health", h.Health)

	// Recovery innermost so panics are caught before logging.
	wrapped := withRecovery(logger, mux)
	wrapped = withRequestLog(logger, wrapped)

	return wrapped
}

// GetProfile returns the user's profile record.
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	if username == "" {
		writeError(w, http.StatusBadRequest, "username is required")
		return
	}

	profile, err := h.svc.FetchUserData(r.Context(), username)
	if err != nil {
		h.logger.Error("failed to fetch profile", "username", username, "error", err)
		writeUpstreamError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toProfileResponse(profile))
}

// GetReposWithCommits returns the user's repositories with the most-starred
// ones enriched with their latest commit message.
func (h *Handler) GetReposWithCommits(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	if username == "" {
		writeError(w, http.StatusBadRequest, "username is required")
		return
	}

	repos, err := h.svc.FetchUserReposWithCommits(r.Context(), username)
	if err != nil {
		h.logger.Error("failed to fetch repositories", "username", username, "error", err)
		writeUpstreamError(w, err)
		return
	}

	resp := make([]RepoResponse, 0, len(repos))
	for _, repo := range repos {
		resp = append(resp, toRepoResponse(repo))
	}

	writeJSON(w, http.StatusOK, resp)
}

// GetLanguageStats returns aggregated language statistics. This endpoint
// never reports an upstream failure: the service degrades to empty mappings.
func (h *Handler) GetLanguageStats(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	if username == "" {
		writeError(w, http.StatusBadRequest, "username is required")
		return
	}

	stats := h.svc.CalculateLanguageStats(r.Context(), username)
	writeJSON(w, http.StatusOK, toLanguageStatsResponse(stats))
}

// GetContributions returns one year of daily contribution counts.
func (h *Handler) GetContributions(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	if username == "" {
		writeError(w, http.StatusBadRequest, "username is required")
		return
	}

	record, err := h.svc.FetchContributionData(r.Context(), username)
	if err != nil {
		h.logger.Error("failed to fetch contributions", "username", username, "error", err)
		writeUpstreamError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toContributionResponse(record))
}

// Health reports service liveness.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}
