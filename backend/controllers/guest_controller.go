package controllers

import (
	"strings"
	"time"

	"eurolens/backend/config"
	"eurolens/backend/gamification"
	"eurolens/backend/models"
	"eurolens/backend/store"
	"eurolens/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GuestController mirrors the /me surface for anonymous visitors. Progress is
// keyed by the X-Guest-ID header and kept in the guest store; without the
// header every request operates on a transient default that is never saved.
type GuestController struct {
	Store *store.GuestStore
	Cfg   *config.Config
}

func NewGuestController(s *store.GuestStore, cfg *config.Config) *GuestController {
	return &GuestController{Store: s, Cfg: cfg}
}

func guestID(c *fiber.Ctx) string {
	return strings.TrimSpace(c.Get("X-Guest-ID"))
}

// GetProfile godoc
// @Summary Get the guest profile
// @Tags guest
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /guest/profile [get]
func (gc *GuestController) GetProfile(c *fiber.Ctx) error {
	profile := gc.Store.GetProfile(guestID(c))
	return c.JSON(fiber.Map{"profile": profile})
}

// UpdateProfile godoc
// @Summary Rename the guest profile
// @Tags guest
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /guest/profile [patch]
func (gc *GuestController) UpdateProfile(c *fiber.Ctx) error {
	var input struct {
		Username string `json:"username"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	id := guestID(c)
	profile := gc.Store.GetProfile(id)
	if username := strings.TrimSpace(input.Username); username != "" {
		profile.Username = username
		// Best effort, the store already logged any failure detail
		_ = gc.Store.SaveProfile(id, profile)
	}

	return c.JSON(fiber.Map{"profile": profile})
}

// GetPositions godoc
// @Summary List the guest's stances
// @Tags guest
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /guest/positions [get]
func (gc *GuestController) GetPositions(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"positions": gc.Store.GetPositions(guestID(c))})
}

// SavePosition godoc
// @Summary Create or update a guest stance
// @Tags guest
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Router /guest/positions [post]
func (gc *GuestController) SavePosition(c *fiber.Ctx) error {
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

	id := guestID(c)
	positions := gc.Store.GetPositions(id)

	for i := range positions {
		if positions[i].ProcedureID == input.ProcedureID {
			positions[i].ProcedureTitle = input.ProcedureTitle
			positions[i].Position = input.Position
			positions[i].Reason = input.Reason
			positions[i].Timestamp = time.Now()
			_ = gc.Store.SavePositions(id, positions)
			return c.JSON(fiber.Map{
				"position": positions[i],
				"xpGained": 0,
			})
		}
	}

	position := models.Position{
		ID:             uuid.NewString(),
		ProcedureID:    input.ProcedureID,
		ProcedureTitle: input.ProcedureTitle,
		Position:       input.Position,
		Reason:         input.Reason,
		ActionsTaken:   []string{},
		Timestamp:      time.Now(),
	}
	positions = append(positions, position)
	_ = gc.Store.SavePositions(id, positions)

	profile := gc.Store.GetProfile(id)
	xpGained := gamification.ApplyStatePosition(&profile)
	unlocked := gamification.CheckAchievements(&profile)
	_ = gc.Store.SaveProfile(id, profile)

	return c.JSON(fiber.Map{
		"position":        position,
		"xpGained":        xpGained,
		"newAchievements": achievementsJSON(unlocked),
	})
}

// RecordAction godoc
// @Summary Record a civic action on a guest stance
// @Tags guest
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /guest/actions [post]
func (gc *GuestController) RecordAction(c *fiber.Ctx) error {
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

	id := guestID(c)
	positions := gc.Store.GetPositions(id)

	var position *models.Position
	for i := range positions {
		if positions[i].ProcedureID == input.ProcedureID {
			position = &positions[i]
			break
		}
	}
	if position == nil {
		return utils.NotFound(c, "No position for this procedure")
	}

	if containsString(position.ActionsTaken, input.ActionType) {
		return c.JSON(fiber.Map{
			"position":        *position,
			"xpGained":        0,
			"newAchievements": achievementsJSON(nil),
		})
	}

	position.ActionsTaken = append(position.ActionsTaken, input.ActionType)
	position.Timestamp = time.Now()
	_ = gc.Store.SavePositions(id, positions)

	profile := gc.Store.GetProfile(id)
	xpGained := gamification.ApplyAction(&profile, input.ActionType)
	unlocked := gamification.CheckAchievements(&profile)
	_ = gc.Store.SaveProfile(id, profile)

	return c.JSON(fiber.Map{
		"position":        *position,
		"xpGained":        xpGained,
		"newAchievements": achievementsJSON(unlocked),
	})
}

// RecordView godoc
// @Summary Record a guest procedure view
// @Tags guest
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /guest/views [post]
func (gc *GuestController) RecordView(c *fiber.Ctx) error {
	return gc.applyReward(c, gamification.ApplyProcedureView)
}

// RecordSummary godoc
// @Summary Record a guest generated summary
// @Tags guest
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /guest/summaries [post]
func (gc *GuestController) RecordSummary(c *fiber.Ctx) error {
	return gc.applyReward(c, gamification.ApplySummaryGenerated)
}

func (gc *GuestController) applyReward(c *fiber.Ctx, apply func(*models.Profile) int) error {
	id := guestID(c)
	profile := gc.Store.GetProfile(id)
	xpGained := apply(&profile)
	unlocked := gamification.CheckAchievements(&profile)
	_ = gc.Store.SaveProfile(id, profile)

	return c.JSON(fiber.Map{
		"profile":         profile,
		"xpGained":        xpGained,
		"newAchievements": achievementsJSON(unlocked),
	})
}
