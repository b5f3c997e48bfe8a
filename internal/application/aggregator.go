// Package application contains the data-aggregation services that turn a
// username into UI-ready bundles of profile, repository, language, and
// contribution data.
package application

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/mioNacs/Look4Git/internal/domain/model"
	"github.com/mioNacs/Look4Git/internal/domain/port/driven"
)

const (
	// topReposForCommits is how many of the most-starred repositories get
	// their latest commit message fetched.
	topReposForCommits = 5

	// topReposForLanguages is how many of the most-starred non-fork
	// repositories are sampled for language statistics.
	topReposForLanguages = 25
)

// Service exposes the four aggregation entry points consumed by the
// presentation layer. It does not orchestrate across usernames; comparison
// mode is the caller invoking it once per user.
type Service struct {
	gh         driven.GitHubClient
	logger     *slog.Logger
	strategies []contributionStrategy
}

// NewService creates a Service backed by the given GitHub client.
func NewService(gh driven.GitHubClient, logger *slog.Logger) *Service {
	return &Service{
		gh:     gh,
		logger: logger,
		strategies: []contributionStrategy{
			&calendarStrategy{gh: gh},
			&eventsStrategy{gh: gh},
		},
	}
}

// FetchUserData returns the user's profile. Classified errors from the
// GitHub client propagate to the caller unchanged.
func (s *Service) FetchUserData(ctx context.Context, username string) (model.Profile, error) {
	return s.gh.FetchProfile(ctx, username)
}

// FetchUserReposWithCommits returns the user's full repository collection
// with the latest commit message merged into the top repositories by star
// count. The collection's length, identity, and order are preserved;
// enrichment only populates LatestCommit on the selected subset.
//
// An individual commit fetch failure is logged and resolved to an empty
// string for that repository. Only a failure of the initial repository
// fetch propagates.
func (s *Service) FetchUserReposWithCommits(ctx context.Context, username string) ([]model.Repository, error) {
	repos, err := s.gh.FetchRepositories(ctx, username)
	if err != nil {
		return nil, err
	}

	result := make([]model.Repository, len(repos))
	copy(result, repos)

	// Selection order (by stars) can differ from storage order, so results
	// are merged back by repository ID, never by position.
	indexByID := make(map[int64]int, len(result))
	for i, repo := range result {
		indexByID[repo.ID] = i
	}

	top := topByStars(repos, topReposForCommits)

	err = forEachBatch(ctx, top, batchSize, func(ctx context.Context, repo model.Repository) error {
		message, err := s.gh.FetchLatestCommit(ctx, username, repo.Name)
		if err != nil {
			s.logger.Warn("latest commit fetch failed",
				"username", username,
				"repo", repo.Name,
				"error", err,
			)
			message = ""
		}
		if i, ok := indexByID[repo.ID]; ok {
			// Each item writes to its own slot; no two goroutines in a
			// group share a repository ID.
			result[i].LatestCommit = &message
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// CalculateLanguageStats aggregates language byte counts and per-language
// repository counts over the user's most-starred non-fork repositories.
//
// This method never fails: language stats are supplementary data, so any
// error in the pipeline (including the repository fetch and rate-limit
// rejections) degrades to empty mappings instead of propagating.
func (s *Service) CalculateLanguageStats(ctx context.Context, username string) model.LanguageStats {
	stats, err := s.languageStats(ctx, username)
	if err != nil {
		s.logger.Warn("language stats degraded to empty",
			"username", username,
			"error", err,
		)
		return model.EmptyLanguageStats()
	}
	return stats
}

func (s *Service) languageStats(ctx context.Context, username string) (model.LanguageStats, error) {
	repos, err := s.gh.FetchRepositories(ctx, username)
	if err != nil {
		return model.LanguageStats{}, err
	}

	nonForks := make([]model.Repository, 0, len(repos))
	for _, repo := range repos {
		if !repo.Fork {
			nonForks = append(nonForks, repo)
		}
	}
	sampled := topByStars(nonForks, topReposForLanguages)

	var mu sync.Mutex
	bytesPerLanguage := make(map[string]int)
	reposPerLanguage := make(map[string]map[string]struct{})

	err = forEachBatch(ctx, sampled, batchSize, func(ctx context.Context, repo model.Repository) error {
		languages, err := s.gh.FetchLanguages(ctx, username, repo.Name)
		if err != nil {
			return err
		}

		mu.Lock()
		defer mu.Unlock()
		for language, bytes := range languages {
			bytesPerLanguage[language] += bytes

			// Per-language repository sets guarantee a repository is
			// counted at most once per language.
			set, ok := reposPerLanguage[language]
			if !ok {
				set = make(map[string]struct{})
				reposPerLanguage[language] = set
			}
			set[repo.Name] = struct{}{}
		}
		return nil
	})
	if err != nil {
		return model.LanguageStats{}, err
	}

	repoCounts := make(map[string]int, len(reposPerLanguage))
	for language, set := range reposPerLanguage {
		repoCounts[language] = len(set)
	}

	return model.LanguageStats{
		BytesPerLanguage: bytesPerLanguage,
		ReposPerLanguage: repoCounts,
	}, nil
}

// topByStars returns the n repositories with the highest star count without
// mutating the input. Ties keep the server-provided order.
func topByStars(repos []model.Repository, n int) []model.Repository {
	sorted := make([]model.Repository, len(repos))
	copy(sorted, repos)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Stars > sorted[j].Stars
	})

	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
