package migration

import (
	"jafa-app/models"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "20250301_create_core_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(
					&models.User{},
					&models.Partner{},
					&models.Shipment{},
					&models.Document{},
					&models.Holiday{},
				)
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("documents", "shipments", "partners", "holidays", "users")
			},
		},
		{
			ID: "20250415_add_shipment_histories",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.ShipmentHistory{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("shipment_histories")
			},
		},
	})
	return m.Migrate()
}
