package model

import (
	"time"

	"github.com/google/uuid"
)

// PlatformHandle links a user to their username on one platform.
type PlatformHandle struct {
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Platform  Platform  `json:"platform" db:"platform"`
	Username  string    `json:"username" db:"username"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type HandleReq struct {
	Platform string `json:"platform" binding:"required"`
	Username string `json:"username"`
}

type SaveHandlesReq struct {
	Handles []HandleReq `json:"handles" binding:"dive"`
}

type LeaderboardQuery struct {
	Limit int `form:"limit,default=50"`
}

type LeaderboardEntry struct {
	Rank        int       `json:"rank"`
	UserID      uuid.UUID `json:"user_id"`
	Username    string    `json:"username"`
	SolvedCount string    `json:"solvedCount"`
	Rating      *string   `json:"rating"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// RefreshResult is returned by a refresh: every fresh record, success or not.
type RefreshResult struct {
	Stats  []PlatformStats `json:"stats"`
	Failed int             `json:"failed"`
}
