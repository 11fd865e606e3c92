package controllers

import (
	"time"

	"eurolens/backend/gamification"
	"eurolens/backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// loadProfile fetches the user's profile row, creating a zeroed one when
// absent, and runs the daily streak side-effect. The row is persisted only
// when something changed.
func loadProfile(db *gorm.DB, userID uint, username string) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := db.Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return nil, err
		}
		profile = models.UserProfile{
			PublicID:       uuid.NewString(),
			UserID:         userID,
			Username:       username,
			Level:          1,
			LastActiveDate: gamification.DateOnly(time.Now()),
			Achievements:   []string{},
		}
		if profile.Username == "" {
			profile.Username = "EU Citizen"
		}
		if err := db.Create(&profile).Error; err != nil {
			return nil, err
		}
		return &profile, nil
	}

	now := time.Now()
	today := gamification.DateOnly(now)
	if profile.LastActiveDate != today {
		profile.Streak = gamification.NextStreak(profile.LastActiveDate, profile.Streak, now)
		profile.LastActiveDate = today
		if err := db.Save(&profile).Error; err != nil {
			return nil, err
		}
	}

	return &profile, nil
}

// profileJSON converts a profile row to its transport shape
func profileJSON(row *models.UserProfile) models.Profile {
	achievements := row.Achievements
	if achievements == nil {
		achievements = []string{}
	}
	return models.Profile{
		ID:             row.PublicID,
		Username:       row.Username,
		XP:             row.XP,
		Level:          row.Level,
		Streak:         row.Streak,
		LastActiveDate: row.LastActiveDate,
		Achievements:   achievements,
		Stats:          row.Stats,
		CreatedAt:      row.CreatedAt,
	}
}

// applyProfileJSON writes the mutable fields of a transport profile back to
// the row. Identity fields stay untouched.
func applyProfileJSON(row *models.UserProfile, p models.Profile) {
	row.XP = p.XP
	row.Level = p.Level
	row.Streak = p.Streak
	row.LastActiveDate = p.LastActiveDate
	row.Achievements = p.Achievements
	row.Stats = p.Stats
}

// positionJSON converts a stance row to its transport shape
func positionJSON(row *models.UserPosition) models.Position {
	actions := row.ActionsTaken
	if actions == nil {
		actions = []string{}
	}
	return models.Position{
		ID:             row.PublicID,
		ProcedureID:    row.ProcedureID,
		ProcedureTitle: row.ProcedureTitle,
		Position:       row.Position,
		Reason:         row.Reason,
		ActionsTaken:   actions,
		Timestamp:      row.UpdatedAt,
	}
}

// achievementsJSON never renders null for an empty unlock list
func achievementsJSON(unlocked []gamification.Achievement) []gamification.Achievement {
	if unlocked == nil {
		return []gamification.Achievement{}
	}
	return unlocked
}

func containsString(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}
