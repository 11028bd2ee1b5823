package routes

import (
	"jafa-app/config"
	"jafa-app/controllers"
	"jafa-app/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupHolidayRoutes(app *fiber.App, holidayController *controllers.HolidayController) {
	api := app.Group(config.MAIN_ROUTES+"/holidays", middleware.AuthMiddleware)

	api.Get("/", holidayController.GetHolidays)
	api.Post("/", holidayController.CreateHoliday)
	api.Get("/upcoming", holidayController.GetUpcoming)
	api.Delete("/:id", holidayController.DeleteHoliday)
}
