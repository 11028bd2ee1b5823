package routes

import (
	"jafa-app/config"
	"jafa-app/controllers"
	"jafa-app/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupPartnerRoutes(app *fiber.App, partnerController *controllers.PartnerController) {
	api := app.Group(config.MAIN_ROUTES+"/partners", middleware.AuthMiddleware)

	api.Get("/", partnerController.GetAllPartners)
	api.Post("/", partnerController.CreatePartner)
	api.Post("/import", partnerController.ImportPartners)
	api.Get("/:id", partnerController.GetPartnerByID)
	api.Put("/:id", partnerController.UpdatePartner)
	api.Delete("/:id", partnerController.DeletePartner)

	// role-filtered pickers for the shipment form
	app.Get(config.MAIN_ROUTES+"/customers", middleware.AuthMiddleware, partnerController.GetCustomers)
	app.Get(config.MAIN_ROUTES+"/carriers", middleware.AuthMiddleware, partnerController.GetCarriers)
}
