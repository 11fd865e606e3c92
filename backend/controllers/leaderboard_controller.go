package controllers

import (
	"eurolens/backend/config"
	"eurolens/backend/gamification"
	"eurolens/backend/models"
	"eurolens/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const (
	leaderboardDefaultLimit = 20
	leaderboardMaxLimit     = 100
)

type LeaderboardController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewLeaderboardController(db *gorm.DB, cfg *config.Config) *LeaderboardController {
	return &LeaderboardController{DB: db, Cfg: cfg}
}

// GetLeaderboard godoc
// @Summary Public XP leaderboard
// @Description Ordered by XP descending; limit is clamped to [1, 100]
// @Tags leaderboard
// @Produce json
// @Param limit query int false "Page size, default 20"
// @Param offset query int false "Page offset, default 0"
// @Success 200 {object} map[string]interface{}
// @Router /leaderboard [get]
func (lc *LeaderboardController) GetLeaderboard(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", leaderboardDefaultLimit)
	if limit < 1 {
		limit = 1
	}
	if limit > leaderboardMaxLimit {
		limit = leaderboardMaxLimit
	}

	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	var rows []models.UserProfile
	if err := lc.DB.Order("xp DESC").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return utils.InternalServerError(c, "Failed to fetch leaderboard")
	}

	entries := make([]models.LeaderboardEntry, 0, len(rows))
	for i := range rows {
		entries = append(entries, models.LeaderboardEntry{
			Rank:         offset + i + 1,
			UserID:       rows[i].PublicID,
			Username:     rows[i].Username,
			XP:           rows[i].XP,
			Level:        rows[i].Level,
			TotalActions: gamification.TotalActions(rows[i].Stats),
		})
	}

	return c.JSON(fiber.Map{"leaderboard": entries})
}
