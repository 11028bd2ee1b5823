package routes

import (
	"jafa-app/controllers"

	"github.com/gofiber/fiber/v2"
)

// Controllers bundles every handler group mounted on the app.
type Controllers struct {
	Auth      *controllers.AuthController
	Dashboard *controllers.DashboardController
	Partners  *controllers.PartnerController
	Shipments *controllers.ShipmentController
	Documents *controllers.DocumentController
	Holidays  *controllers.HolidayController
	Meta      *controllers.MetaController
}

func Setup(app *fiber.App, c Controllers) {
	SetupAuthRoutes(app, c.Auth)
	SetupDashboardRoutes(app, c.Dashboard)
	SetupPartnerRoutes(app, c.Partners)
	SetupShipmentRoutes(app, c.Shipments, c.Documents)
	SetupHolidayRoutes(app, c.Holidays)
	SetupMetaRoutes(app, c.Meta)
}
