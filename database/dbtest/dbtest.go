// Package dbtest opens a migrated in-memory database for tests.
package dbtest

import (
	"jafa-app/database"
	"jafa-app/migration"
	"jafa-app/models"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func Open(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.OpenSQLite("file::memory:")
	require.NoError(t, err)
	require.NoError(t, migration.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// Partner inserts a partner of the given type.
func Partner(t *testing.T, db *gorm.DB, name string, typ models.PartnerType) *models.Partner {
	t.Helper()

	p := &models.Partner{Name: name, Address: name + " street 1", PartnerType: typ}
	require.NoError(t, db.Create(p).Error)
	return p
}
