package controllers

import (
	"net/url"

	"eurolens/backend/config"
	"eurolens/backend/europarl"
	"eurolens/backend/utils"

	"github.com/gofiber/fiber/v2"
)

// referenceParam extracts the :reference path parameter. Canonical references
// contain a slash (2024/0123(COD), A9-0123/2024), so clients percent-encode
// them and the raw param still carries %2F; it must be decoded here because
// unescaping before routing would split the reference into two path segments.
func referenceParam(c *fiber.Ctx) string {
	raw := c.Params("reference")
	if decoded, err := url.PathUnescape(raw); err == nil {
		return decoded
	}
	return raw
}

type ProceduresController struct {
	Service *europarl.Service
	Cfg     *config.Config
}

func NewProceduresController(service *europarl.Service, cfg *config.Config) *ProceduresController {
	return &ProceduresController{Service: service, Cfg: cfg}
}

// GetInProgress godoc
// @Summary Procedures currently moving through the legislative process
// @Tags procedures
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} utils.ErrorResponse
// @Router /procedures/in-progress [get]
func (pc *ProceduresController) GetInProgress(c *fiber.Ctx) error {
	procedures, err := pc.Service.InProgress(c.Context())
	if err != nil {
		return utils.InternalServerError(c, "Failed to fetch procedures")
	}
	return c.JSON(fiber.Map{"procedures": procedures})
}

// GetRecentlyDecided godoc
// @Summary Procedures adopted in recent plenary sessions
// @Tags procedures
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} utils.ErrorResponse
// @Router /procedures/recently-decided [get]
func (pc *ProceduresController) GetRecentlyDecided(c *fiber.Ctx) error {
	procedures, err := pc.Service.RecentlyDecided(c.Context())
	if err != nil {
		return utils.InternalServerError(c, "Failed to fetch procedures")
	}
	return c.JSON(fiber.Map{"procedures": procedures})
}

// GetUpcomingSessions godoc
// @Summary Upcoming plenary sessions
// @Tags procedures
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} utils.ErrorResponse
// @Router /sessions/upcoming [get]
func (pc *ProceduresController) GetUpcomingSessions(c *fiber.Ctx) error {
	sessions, err := pc.Service.UpcomingSessions(c.Context())
	if err != nil {
		return utils.InternalServerError(c, "Failed to fetch sessions")
	}
	return c.JSON(fiber.Map{"sessions": sessions})
}

// GetProcedure godoc
// @Summary Resolve one procedure or document reference
// @Description Unresolvable references get a synthetic placeholder, never an error
// @Tags procedures
// @Produce json
// @Param reference path string true "Procedure or document reference"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Router /procedure/{reference} [get]
func (pc *ProceduresController) GetProcedure(c *fiber.Ctx) error {
	reference := referenceParam(c)
	if reference == "" {
		return utils.BadRequest(c, "reference is required")
	}

	detail, fallback := pc.Service.ResolveReference(c.Context(), reference)
	return c.JSON(fiber.Map{
		"procedure": detail,
		"fallback":  fallback,
	})
}

// GetProcedureVotes godoc
// @Summary Per-MEP votes for a procedure
// @Description Roll-call breakdowns are not wired up yet, so this always
// returns an empty list
// @Tags procedures
// @Produce json
// @Param reference path string true "Procedure or document reference"
// @Success 200 {object} map[string]interface{}
// @Router /procedure/{reference}/votes [get]
func (pc *ProceduresController) GetProcedureVotes(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"votes": []interface{}{}})
}
