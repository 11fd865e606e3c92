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

type PositionsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewPositionsController(db *gorm.DB, cfg *config.Config) *PositionsController {
	return &PositionsController{DB: db, Cfg: cfg}
}

// GetPositions godoc
// @Summary List the authenticated user's stances
// @Description Anonymous callers get an empty list, not an error
// @Tags positions
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /me/positions [get]
func (pc *PositionsController) GetPositions(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return c.JSON(fiber.Map{"positions": []models.Position{}})
	}

	var rows []models.UserPosition
	if err := pc.DB.Where("user_id = ?", userID).Order("updated_at DESC").Find(&rows).Error; err != nil {
		return utils.InternalServerError(c, "Failed to fetch positions")
	}

	positions := make([]models.Position, 0, len(rows))
	for i := range rows {
		positions = append(positions, positionJSON(&rows[i]))
	}

	return c.JSON(fiber.Map{"positions": positions})
}

type SavePositionRequest struct {
	ProcedureID    string `json:"procedureId"`
	ProcedureTitle string `json:"procedureTitle"`
	Position       string `json:"position"`
	Reason         string `json:"reason"`
}

// SavePosition godoc
// @Summary Create or update a stance on a procedure
// @Description First submission grants the stance reward; re-stating updates in place with 0 XP
// @Tags positions
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /me/positions [post]
func (pc *PositionsController) SavePosition(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input SavePositionRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.ProcedureID == "" || input.ProcedureTitle == "" || input.Position == "" {
		return utils.BadRequest(c, "procedureId, procedureTitle, and position are required")
	}
	if !models.IsValidPosition(input.Position) {
		return utils.BadRequest(c, "Invalid position")
	}

	var existing models.UserPosition
	err = pc.DB.Where("user_id = ? AND procedure_id = ?", userID, input.ProcedureID).First(&existing).Error
	if err == nil {
		// Re-stating updates the record in place; no reward the second time
		existing.ProcedureTitle = input.ProcedureTitle
		existing.Position = input.Position
		existing.Reason = input.Reason
		if err := pc.DB.Save(&existing).Error; err != nil {
			return utils.InternalServerError(c, "Failed to update position")
		}
		return c.JSON(fiber.Map{
			"position": positionJSON(&existing),
			"xpGained": 0,
		})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.InternalServerError(c, "Failed to fetch position")
	}

	row := models.UserPosition{
		PublicID:       uuid.NewString(),
		UserID:         userID,
		ProcedureID:    input.ProcedureID,
		ProcedureTitle: input.ProcedureTitle,
		Position:       input.Position,
		Reason:         input.Reason,
		ActionsTaken:   []string{},
	}
	if err := pc.DB.Create(&row).Error; err != nil {
		return utils.InternalServerError(c, "Failed to save position")
	}

	profileRow, err := loadProfile(pc.DB, userID, "")
	if err != nil {
		return utils.InternalServerError(c, "Failed to fetch profile")
	}

	profile := profileJSON(profileRow)
	xpGained := gamification.ApplyStatePosition(&profile)
	unlocked := gamification.CheckAchievements(&profile)
	applyProfileJSON(profileRow, profile)
	if err := pc.DB.Save(profileRow).Error; err != nil {
		return utils.InternalServerError(c, "Failed to update profile")
	}

	return c.JSON(fiber.Map{
		"position":        positionJSON(&row),
		"xpGained":        xpGained,
		"newAchievements": achievementsJSON(unlocked),
	})
}
