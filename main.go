package main

import (
	"context"
	"io"
	"jafa-app/config"
	"jafa-app/controllers"
	"jafa-app/controllers/idgen"
	"jafa-app/database"
	"jafa-app/migration"
	"jafa-app/pdfsheet"
	"jafa-app/repositories"
	"jafa-app/routes"
	seed "jafa-app/seeder"
	"jafa-app/services"
	"jafa-app/storage"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()

	zlog, err := config.NewLogger()
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zlog.Sync()

	if err := database.EnsureDatabaseExists(config.DBName); err != nil {
		zlog.Fatal("Failed to ensure database", zap.Error(err))
	}

	db, err := database.Open()
	if err != nil {
		zlog.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := migration.Migrate(db); err != nil {
		zlog.Fatal("Failed to migrate", zap.Error(err))
	}

	if err := seed.SeedAdmin(db, zlog, config.AdminUsername, config.AdminEmail, config.AdminPassword); err != nil {
		zlog.Fatal("Failed to seed admin user", zap.Error(err))
	}
	year := config.Now().Year()
	if err := seed.SeedHolidays(db, year, year+1); err != nil {
		zlog.Warn("Failed to seed holidays", zap.Error(err))
	}

	idgen.Init()

	store, err := storage.FromConfig(context.Background())
	if err != nil {
		zlog.Fatal("Failed to open file storage", zap.Error(err))
	}
	if c, ok := store.(io.Closer); ok {
		defer c.Close()
	}

	if err := pdfsheet.CheckFontDir(config.PDFFontDir); err != nil {
		zlog.Warn("PDF font directory unusable, falling back to core fonts", zap.Error(err))
	}

	shipmentRepo := repositories.NewShipmentRepository(db)
	holidayRepo := repositories.NewHolidayRepository(db)

	userService := services.NewUserService(repositories.NewUserRepository(db), config.JWTSecret, time.Duration(config.JWTExpiration)*time.Second, config.Now, zlog)
	partnerService := services.NewPartnerService(db, zlog)
	shipmentService := services.NewShipmentService(db, store, zlog, config.Now)
	documentService := services.NewDocumentService(db, store, zlog)
	holidayService := services.NewHolidayService(holidayRepo, config.Now)
	dashboardService := services.NewDashboardService(shipmentRepo, holidayRepo, config.Now)
	exportService := services.NewExportService(shipmentRepo, config.Now)
	mailService := services.NewMailService(db, zlog)

	app := fiber.New(fiber.Config{
		BodyLimit: 20 * 1024 * 1024,
	})

	config.SetupCORS(app)
	app.Use(recover.New())
	app.Use(logger.New())

	routes.Setup(app, routes.Controllers{
		Auth:      controllers.NewAuthController(userService),
		Dashboard: controllers.NewDashboardController(dashboardService),
		Partners:  controllers.NewPartnerController(partnerService),
		Shipments: controllers.NewShipmentController(shipmentService, exportService, mailService, config.PDFFontDir),
		Documents: controllers.NewDocumentController(documentService),
		Holidays:  controllers.NewHolidayController(holidayService),
		Meta:      controllers.NewMetaController(),
	})

	port := config.APP_PORT
	zlog.Info("Server listening", zap.String("port", port))

	if err := app.Listen(":" + port); err != nil {
		zlog.Fatal("Server stopped", zap.Error(err))
	}
}
