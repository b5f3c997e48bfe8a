package model

import "time"

// Repository represents one public repository of a profiled user.
//
// LatestCommit starts absent (nil) and is populated only for repositories
// selected for commit enrichment. A pointer to the empty string means
// enrichment was attempted but the commit fetch failed.
type Repository struct {
	ID           int64
	Name         string
	Description  string
	Language     string
	Stars        int
	Forks        int
	UpdatedAt    time.Time
	URL          string
	Fork         bool
	LatestCommit *string
}
