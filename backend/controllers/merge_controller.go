package controllers

import (
	"errors"

	"eurolens/backend/config"
	"eurolens/backend/gamification"
	"eurolens/backend/models"
	"eurolens/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MergeController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewMergeController(db *gorm.DB, cfg *config.Config) *MergeController {
	return &MergeController{DB: db, Cfg: cfg}
}

type MergeGuestRequest struct {
	Profile   *models.Profile   `json:"profile"`
	Positions []models.Position `json:"positions"`
}

// MergeGuest godoc
// @Summary Fold guest progress into the authenticated account
// @Description Per-field max on XP, streak and counters; achievement union;
// guest stances are kept only for procedures the account has no stance on
// @Tags merge
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /me/merge-guest [post]
func (mc *MergeController) MergeGuest(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, mc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input MergeGuestRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Profile == nil {
		return utils.BadRequest(c, "profile is required")
	}

	profileRow, err := loadProfile(mc.DB, userID, "")
	if err != nil {
		return utils.InternalServerError(c, "Failed to fetch profile")
	}

	merged := gamification.MergeProfiles(profileJSON(profileRow), *input.Profile)
	applyProfileJSON(profileRow, merged)
	if err := mc.DB.Save(profileRow).Error; err != nil {
		return utils.InternalServerError(c, "Failed to update profile")
	}

	// Guest stances fill the gaps; on conflict the account's own stance wins
	for _, p := range input.Positions {
		if p.ProcedureID == "" {
			continue
		}

		var existing models.UserPosition
		err := mc.DB.Where("user_id = ? AND procedure_id = ?", userID, p.ProcedureID).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.InternalServerError(c, "Failed to merge positions")
		}

		if !models.IsValidPosition(p.Position) {
			continue
		}

		actions := p.ActionsTaken
		if actions == nil {
			actions = []string{}
		}
		row := models.UserPosition{
			PublicID:       uuid.NewString(),
			UserID:         userID,
			ProcedureID:    p.ProcedureID,
			ProcedureTitle: p.ProcedureTitle,
			Position:       p.Position,
			Reason:         p.Reason,
			ActionsTaken:   actions,
		}
		if err := mc.DB.Create(&row).Error; err != nil {
			return utils.InternalServerError(c, "Failed to merge positions")
		}
	}

	return c.JSON(fiber.Map{
		"ok":      true,
		"profile": profileJSON(profileRow),
	})
}
