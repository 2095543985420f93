package rest

import (
	"github.com/gofiber/fiber/v2"
	domainLiveness "github.com/photoframe/photoframe/domains/liveness"
	pkgError "github.com/photoframe/photoframe/pkg/error"
	"github.com/photoframe/photoframe/pkg/utils"
)

type Monitor struct {
	Service domainLiveness.ILivenessUsecase
}

type checkResult struct {
	Status  domainLiveness.Status              `json:"status"`
	Record  *domainLiveness.ConnectivityRecord `json:"record,omitempty"`
	Elapsed string                             `json:"elapsed,omitempty"`
	Message string                             `json:"message,omitempty"`
	Error   string                             `json:"error,omitempty"`
}

// InitRestMonitor mounts the operator endpoints. Every route requires auth.
func InitRestMonitor(app fiber.Router, service domainLiveness.ILivenessUsecase, auth fiber.Handler) Monitor {
	handler := Monitor{Service: service}

	app.Post("/monitor/check", auth, handler.Check)
	app.Post("/monitor/trigger/enable", auth, handler.EnableTrigger)
	app.Post("/monitor/trigger/disable", auth, handler.DisableTrigger)
	app.Post("/presence", auth, handler.RecordPresence)

	return handler
}

func (h *Monitor) Check(c *fiber.Ctx) error {
	result := h.Service.Check(c.UserContext())

	out := checkResult{
		Status:  result.Status,
		Record:  result.Record,
		Message: result.Message,
	}
	if result.Elapsed > 0 {
		out.Elapsed = result.Elapsed.String()
	}
	if result.Err != nil {
		out.Error = result.Err.Error()
	}

	res := utils.ResponseData{
		Status:  fiber.StatusOK,
		Code:    "SUCCESS",
		Message: "Check completed",
		Results: out,
	}
	if !result.Ok() {
		res.Status = fiber.StatusBadGateway
		res.Code = "CHECK_FAILED"
		res.Message = "Check did not complete"
	}
	return c.Status(res.Status).JSON(res)
}

func (h *Monitor) EnableTrigger(c *fiber.Ctx) error {
	if err := h.Service.EnableTrigger(c.UserContext()); err != nil {
		return respondError(c, err)
	}
	return c.JSON(utils.ResponseData{
		Status:  fiber.StatusOK,
		Code:    "SUCCESS",
		Message: "Monitor schedule enabled",
	})
}

func (h *Monitor) DisableTrigger(c *fiber.Ctx) error {
	if err := h.Service.DisableTrigger(c.UserContext()); err != nil {
		return respondError(c, err)
	}
	return c.JSON(utils.ResponseData{
		Status:  fiber.StatusOK,
		Code:    "SUCCESS",
		Message: "Monitor schedule disabled",
	})
}

func (h *Monitor) RecordPresence(c *fiber.Ctx) error {
	var event domainLiveness.PresenceEvent
	if err := c.BodyParser(&event); err != nil {
		return respondError(c, pkgError.ValidationError("invalid presence event: "+err.Error()))
	}

	if err := h.Service.RecordPresence(c.UserContext(), event); err != nil {
		return respondError(c, err)
	}
	return c.JSON(utils.ResponseData{
		Status:  fiber.StatusOK,
		Code:    "SUCCESS",
		Message: "Presence recorded",
	})
}
