package model

// DateLayout is the calendar-date format used for contribution days.
// It matches the GraphQL contribution calendar's date strings and sorts
// chronologically when compared lexicographically.
const DateLayout = "2006-01-02"

// ContributionDay is one calendar day's contribution count.
type ContributionDay struct {
	Date  string
	Count int
}

// ContributionRecord is one year of daily contribution counts, strictly
// ascending by date with every day in range present exactly once.
type ContributionRecord []ContributionDay
