package model

import "time"

// Profile is a snapshot of a GitHub account's public identity and metadata.
// It is fetched fresh on every request and never cached or persisted.
type Profile struct {
	Login       string
	Name        string
	AvatarURL   string
	Bio         string
	Company     string
	Location    string
	Blog        string
	Hireable    bool
	Followers   int
	Following   int
	PublicRepos int
	CreatedAt   time.Time
}
