package routes

import (
	"jafa-app/config"
	"jafa-app/controllers"
	"jafa-app/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupShipmentRoutes(app *fiber.App, shipmentController *controllers.ShipmentController, documentController *controllers.DocumentController) {
	api := app.Group(config.MAIN_ROUTES+"/shipments", middleware.AuthMiddleware)

	api.Get("/", shipmentController.GetAllShipments)
	api.Post("/", shipmentController.CreateShipment)
	api.Get("/export", shipmentController.ExportOpenShipments)
	api.Get("/:id", shipmentController.GetShipmentByID)
	api.Put("/:id", shipmentController.UpdateShipment)
	api.Delete("/:id", shipmentController.DeleteShipment)
	api.Put("/:id/carrier", shipmentController.AssignCarrier)
	api.Put("/:id/status", shipmentController.ChangeStatus)
	api.Get("/:id/history", shipmentController.GetHistory)
	api.Get("/:id/sheet", shipmentController.DownloadSheet)
	api.Post("/:id/sheet/email", shipmentController.EmailSheet)
	api.Get("/:id/documents", documentController.GetDocuments)
	api.Post("/:id/documents", documentController.UploadDocument)

	documents := app.Group(config.MAIN_ROUTES+"/documents", middleware.AuthMiddleware)
	documents.Get("/:id/download", documentController.DownloadDocument)
	documents.Delete("/:id", documentController.DeleteDocument)
}
