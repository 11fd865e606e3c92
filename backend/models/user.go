package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Username     string `gorm:"unique;not null"`
	Email        string `gorm:"unique;not null"`
	PasswordHash string `gorm:"not null"`
}

// UserProfile is the server-side gamification record, one row per account.
// Stats and Achievements are stored as JSON documents so the merge operation
// can combine them field by field in Go code.
type UserProfile struct {
	gorm.Model
	PublicID       string    `gorm:"uniqueIndex;not null"`
	UserID         uint      `gorm:"uniqueIndex;not null"`
	Username       string    `gorm:"not null"`
	XP             int       `gorm:"default:0"`
	Level          int       `gorm:"default:1"`
	Streak         int       `gorm:"default:0"`
	LastActiveDate string    // date-only, "2006-01-02"
	Achievements   []string  `gorm:"serializer:json"`
	Stats          UserStats `gorm:"serializer:json"`
}

// UserStats holds the named engagement counters. Counters never decrease
// except through the merge operation's per-field max.
type UserStats struct {
	TotalPositions      int `json:"totalPositions"`
	MEPsContacted       int `json:"mepsContacted"`
	ConsultationsJoined int `json:"consultationsJoined"`
	PetitionsSigned     int `json:"petitionsSigned"`
	ProceduresShared    int `json:"proceduresShared"`
	ProceduresViewed    int `json:"proceduresViewed"`
	SummariesGenerated  int `json:"summariesGenerated"`
}

// Profile is the transport shape of a gamification profile. It is also the
// document format of the guest store, so guest and account profiles share one
// structure end to end.
type Profile struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	XP             int       `json:"xp"`
	Level          int       `json:"level"`
	Streak         int       `json:"streak"`
	LastActiveDate string    `json:"lastActiveDate"`
	Achievements   []string  `json:"achievements"`
	Stats          UserStats `json:"stats"`
	CreatedAt      time.Time `json:"createdAt"`
}

// LeaderboardEntry is one row of the public leaderboard
type LeaderboardEntry struct {
	Rank         int    `json:"rank"`
	UserID       string `json:"userId"`
	Username     string `json:"username"`
	XP           int    `json:"xp"`
	Level        int    `json:"level"`
	TotalActions int    `json:"totalActions"`
}
