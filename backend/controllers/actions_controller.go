package controllers

import (
	"errors"

	"eurolens/backend/config"
	"eurolens/backend/gamification"
	"eurolens/backend/models"
	"eurolens/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ActionsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewActionsController(db *gorm.DB, cfg *config.Config) *ActionsController {
	return &ActionsController{DB: db, Cfg: cfg}
}

type RecordActionRequest struct {
	ProcedureID string `json:"procedureId"`
	ActionType  string `json:"actionType"`
}

// RecordAction godoc
// @Summary Record a civic action on a stance
// @Description Each action type counts once per stance; repeats grant 0 XP
// @Tags actions
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /me/actions [post]
func (ac *ActionsController) RecordAction(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, ac.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input RecordActionRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.ProcedureID == "" || input.ActionType == "" {
		return utils.BadRequest(c, "procedureId and actionType are required")
	}
	if _, ok := gamification.RewardForAction(input.ActionType); !ok {
		return utils.BadRequest(c, "Invalid action type")
	}

	var row models.UserPosition
	err = ac.DB.Where("user_id = ? AND procedure_id = ?", userID, input.ProcedureID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "No position for this procedure")
		}
		return utils.InternalServerError(c, "Failed to fetch position")
	}

	if containsString(row.ActionsTaken, input.ActionType) {
		// Already counted for this stance
		return c.JSON(fiber.Map{
			"position":        positionJSON(&row),
			"xpGained":        0,
			"newAchievements": achievementsJSON(nil),
		})
	}

	row.ActionsTaken = append(row.ActionsTaken, input.ActionType)
	if err := ac.DB.Save(&row).Error; err != nil {
		return utils.InternalServerError(c, "Failed to update position")
	}

	profileRow, err := loadProfile(ac.DB, userID, "")
	if err != nil {
		return utils.InternalServerError(c, "Failed to fetch profile")
	}

	profile := profileJSON(profileRow)
	xpGained := gamification.ApplyAction(&profile, input.ActionType)
	unlocked := gamification.CheckAchievements(&profile)
	applyProfileJSON(profileRow, profile)
	if err := ac.DB.Save(profileRow).Error; err != nil {
		return utils.InternalServerError(c, "Failed to update profile")
	}

	return c.JSON(fiber.Map{
		"position":        positionJSON(&row),
		"xpGained":        xpGained,
		"newAchievements": achievementsJSON(unlocked),
	})
}

// RecordView godoc
// @Summary Record a procedure view
// @Tags actions
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Router /me/views [post]
func (ac *ActionsController) RecordView(c *fiber.Ctx) error {
	return ac.applyReward(c, gamification.ApplyProcedureView)
}

// RecordSummary godoc
// @Summary Record a generated summary
// @Tags actions
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Router /me/summaries [post]
func (ac *ActionsController) RecordSummary(c *fiber.Ctx) error {
	return ac.applyReward(c, gamification.ApplySummaryGenerated)
}

func (ac *ActionsController) applyReward(c *fiber.Ctx, apply func(*models.Profile) int) error {
	userID, err := utils.ExtractUserIDFromToken(c, ac.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	profileRow, err := loadProfile(ac.DB, userID, "")
	if err != nil {
		return utils.InternalServerError(c, "Failed to fetch profile")
	}

	profile := profileJSON(profileRow)
	xpGained := apply(&profile)
	unlocked := gamification.CheckAchievements(&profile)
	applyProfileJSON(profileRow, profile)
	if err := ac.DB.Save(profileRow).Error; err != nil {
		return utils.InternalServerError(c, "Failed to update profile")
	}

	return c.JSON(fiber.Map{
		"profile":         profileJSON(profileRow),
		"xpGained":        xpGained,
		"newAchievements": achievementsJSON(unlocked),
	})
}
