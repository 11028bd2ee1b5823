package routes

import (
	"jafa-app/config"
	"jafa-app/controllers"
	"jafa-app/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupMetaRoutes(app *fiber.App, metaController *controllers.MetaController) {
	api := app.Group(config.MAIN_ROUTES+"/meta", middleware.AuthMiddleware)
	api.Get("/choices", metaController.GetChoices)
}
