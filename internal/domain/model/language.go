package model

// LanguageStats holds two parallel mappings keyed by language name,
// aggregated over a sample of the user's most-starred non-fork repositories.
type LanguageStats struct {
	// BytesPerLanguage is the sum of byte counts across sampled repositories.
	BytesPerLanguage map[string]int
	// ReposPerLanguage is the number of distinct sampled repositories that
	// contain the language. Never exceeds the sample size.
	ReposPerLanguage map[string]int
}

// EmptyLanguageStats returns a structurally valid LanguageStats with no data.
// Language aggregation degrades to this value instead of failing.
func EmptyLanguageStats() LanguageStats {
	return LanguageStats{
		BytesPerLanguage: map[string]int{},
		ReposPerLanguage: map[string]int{},
	}
}
