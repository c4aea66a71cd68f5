package model

import "time"

// PlatformStats is the normalized statistics record produced for one
// (user, platform) pair. Numeric fields are decimal strings; nullable fields
// are nil when the platform has no such value.
type PlatformStats struct {
	Platform         Platform  `json:"platform"`
	Username         string    `json:"username"`
	SolvedCount      string    `json:"solvedCount"`
	Rating           *string   `json:"rating"`
	HighestRating    *string   `json:"highestRating"`
	GlobalRank       *string   `json:"globalRank"`
	CountryRank      *string   `json:"countryRank"`
	EasyCount        string    `json:"easyCount"`
	MediumCount      string    `json:"mediumCount"`
	HardCount        string    `json:"hardCount"`
	FundamentalCount string    `json:"fundamentalCount"`
	TotalContest     string    `json:"totalcontest"`
	LastUpdated      time.Time `json:"lastUpdated"`
	Error            string    `json:"error,omitempty"`
}

// NewStats returns a zero-filled record for platform and username.
func NewStats(platform Platform, username string, now time.Time) PlatformStats {
	return PlatformStats{
		Platform:         platform,
		Username:         username,
		SolvedCount:      "0",
		EasyCount:        "0",
		MediumCount:      "0",
		HardCount:        "0",
		FundamentalCount: "0",
		TotalContest:     "0",
		LastUpdated:      now.UTC(),
	}
}

// FailedStats is the only way an error record is built, so every platform
// reports failures with the same shape.
func FailedStats(platform Platform, username string, err error, now time.Time) PlatformStats {
	s := NewStats(platform, username, now)
	s.Error = "unknown error"
	if err != nil && err.Error() != "" {
		s.Error = err.Error()
	}
	return s
}

func (s PlatformStats) Failed() bool {
	return s.Error != ""
}

// StringPtr returns nil for an empty string.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
