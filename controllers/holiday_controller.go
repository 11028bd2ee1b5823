package controllers

import (
	"jafa-app/controllers/helpers"
	"jafa-app/repositories"
	"jafa-app/services"
	"time"

	"github.com/gofiber/fiber/v2"
)

type HolidayController struct {
	Holidays *services.HolidayService
}

func NewHolidayController(holidays *services.HolidayService) *HolidayController {
	return &HolidayController{Holidays: holidays}
}

// GetHolidays accepts country, from and to (YYYY-MM-DD) query filters.
func (c *HolidayController) GetHolidays(ctx *fiber.Ctx) error {
	filter := repositories.HolidayFilter{CountryCode: ctx.Query("country")}
	for key, dst := range map[string]**time.Time{"from": &filter.From, "to": &filter.To} {
		v := ctx.Query(key)
		if v == "" {
			continue
		}
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid " + key + " date, expected YYYY-MM-DD"})
		}
		*dst = &t
	}

	holidays, err := c.Holidays.List(filter)
	if err != nil {
		return helpers.RespondError(ctx, err)
	}
	return helpers.OK(ctx, "Holidays found", holidays)
}

func (c *HolidayController) GetUpcoming(ctx *fiber.Ctx) error {
	holidays, err := c.Holidays.Upcoming(ctx.QueryInt("limit", 3))
	if err != nil {
		return helpers.RespondError(ctx, err)
	}
	return helpers.OK(ctx, "Upcoming holidays found", holidays)
}

func (c *HolidayController) CreateHoliday(ctx *fiber.Ctx) error {
	var input services.HolidayInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	holiday, err := c.Holidays.Create(input)
	if err != nil {
		return helpers.RespondError(ctx, err)
	}
	return helpers.Created(ctx, "Holiday created successfully", holiday)
}

func (c *HolidayController) DeleteHoliday(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return helpers.RespondError(ctx, err)
	}
	if err := c.Holidays.Delete(id); err != nil {
		return helpers.RespondError(ctx, err)
	}
	return helpers.OK(ctx, "Holiday deleted successfully", nil)
}
