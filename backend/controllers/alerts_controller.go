package controllers

import (
	"errors"

	"eurolens/backend/config"
	"eurolens/backend/models"
	"eurolens/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AlertsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewAlertsController(db *gorm.DB, cfg *config.Config) *AlertsController {
	return &AlertsController{DB: db, Cfg: cfg}
}

func alertJSON(row *models.UserAlert) models.Alert {
	return models.Alert{
		ID:                 row.PublicID,
		ProcedureReference: row.ProcedureReference,
		Topic:              row.Topic,
		Type:               row.Type,
		Channel:            row.Channel,
		CreatedAt:          row.CreatedAt,
	}
}

// GetAlerts godoc
// @Summary List the user's alert subscriptions
// @Description Anonymous callers get an empty list, not an error
// @Tags alerts
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /me/alerts [get]
func (ac *AlertsController) GetAlerts(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, ac.Cfg)
	if err != nil {
		return c.JSON(fiber.Map{"alerts": []models.Alert{}})
	}

	var rows []models.UserAlert
	if err := ac.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&rows).Error; err != nil {
		return utils.InternalServerError(c, "Failed to fetch alerts")
	}

	alerts := make([]models.Alert, 0, len(rows))
	for i := range rows {
		alerts = append(alerts, alertJSON(&rows[i]))
	}

	return c.JSON(fiber.Map{"alerts": alerts})
}

type CreateAlertRequest struct {
	ProcedureReference string `json:"procedureReference"`
	Topic              string `json:"topic"`
	Type               string `json:"type"`
	Channel            string `json:"channel"`
}

// CreateAlert godoc
// @Summary Subscribe to procedure or topic alerts
// @Tags alerts
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /me/alerts [post]
func (ac *AlertsController) CreateAlert(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, ac.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input CreateAlertRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.Type == "" || input.Channel == "" {
		return utils.BadRequest(c, "type and channel are required")
	}
	if input.Channel != "email" && input.Channel != "in_app" {
		return utils.BadRequest(c, "channel must be email or in_app")
	}

	row := models.UserAlert{
		PublicID:           uuid.NewString(),
		UserID:             userID,
		ProcedureReference: input.ProcedureReference,
		Topic:              input.Topic,
		Type:               input.Type,
		Channel:            input.Channel,
	}
	if err := ac.DB.Create(&row).Error; err != nil {
		return utils.InternalServerError(c, "Failed to create alert")
	}

	return c.JSON(fiber.Map{"alert": alertJSON(&row)})
}

// DeleteAlert godoc
// @Summary Remove an alert subscription
// @Tags alerts
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /me/alerts [delete]
func (ac *AlertsController) DeleteAlert(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, ac.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	alertID := c.Query("id")
	if alertID == "" {
		return utils.BadRequest(c, "id is required")
	}

	// Scoped to the caller so one user cannot delete another's alert
	var row models.UserAlert
	err = ac.DB.Where("public_id = ? AND user_id = ?", alertID, userID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Alert not found")
		}
		return utils.InternalServerError(c, "Failed to fetch alert")
	}

	if err := ac.DB.Delete(&row).Error; err != nil {
		return utils.InternalServerError(c, "Failed to delete alert")
	}

	return c.JSON(fiber.Map{"ok": true})
}
