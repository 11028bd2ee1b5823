package controllers

import (
	"jafa-app/controllers/helpers"
	"jafa-app/services"

	"github.com/gofiber/fiber/v2"
)

type DashboardController struct {
	Dashboard *services.DashboardService
}

func NewDashboardController(dashboard *services.DashboardService) *DashboardController {
	return &DashboardController{Dashboard: dashboard}
}

func (c *DashboardController) GetDashboard(ctx *fiber.Ctx) error {
	summary, err := c.Dashboard.Summary()
	if err != nil {
		return helpers.RespondError(ctx, err)
	}
	return helpers.OK(ctx, "Dashboard found", summary)
}
