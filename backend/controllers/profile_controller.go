package controllers

import (
	"strings"

	"eurolens/backend/config"
	"eurolens/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ProfileController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewProfileController(db *gorm.DB, cfg *config.Config) *ProfileController {
	return &ProfileController{DB: db, Cfg: cfg}
}

// GetProfile godoc
// @Summary Get the authenticated profile
// @Description Returns the gamification profile, or null for anonymous callers
// @Tags profile
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /me/profile [get]
func (pc *ProfileController) GetProfile(c *fiber.Ctx) error {
	// Read path fails open: anonymous browsing gets a null profile, not 401
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return c.JSON(fiber.Map{"profile": nil})
	}

	profile, err := loadProfile(pc.DB, userID, "")
	if err != nil {
		return utils.InternalServerError(c, "Failed to fetch profile")
	}

	return c.JSON(fiber.Map{"profile": profileJSON(profile)})
}

// UpdateProfile godoc
// @Summary Rename the authenticated profile
// @Tags profile
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Router /me/profile [patch]
func (pc *ProfileController) UpdateProfile(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input struct {
		Username string `json:"username"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	profile, err := loadProfile(pc.DB, userID, "")
	if err != nil {
		return utils.InternalServerError(c, "Failed to fetch profile")
	}

	if username := strings.TrimSpace(input.Username); username != "" {
		profile.Username = username
		if err := pc.DB.Save(profile).Error; err != nil {
			return utils.InternalServerError(c, "Failed to update profile")
		}
	}

	return c.JSON(fiber.Map{"profile": profileJSON(profile)})
}
