package database

import (
	"context"
	"testing"

	"clinic-management-backend/internal/config"
	"clinic-management-backend/internal/models"
	"clinic-management-backend/pkg/utils"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, Migrate(db))
	return db
}

func TestDialectorRejectsUnknownDriver(t *testing.T) {
	_, err := Dialector(config.DatabaseConfig{Driver: "oracle"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "oracle")
}

func TestDialectorSupportedDrivers(t *testing.T) {
	for _, driver := range []string{"mysql", "postgres", "sqlite"} {
		d, err := Dialector(config.DatabaseConfig{Driver: driver, Host: "localhost", Port: "5432", Database: "clinic"})
		require.NoError(t, err, driver)
		assert.Equal(t, driver, d.Name())
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	utils.SetPasswordCost(4)
	db := openTestDB(t)
	ctx := context.Background()
	cfg := config.SeedConfig{AdminName: "Admin", AdminEmail: "admin@example.com", AdminPassword: "secret-pass"}

	first, err := Seed(ctx, db, cfg)
	require.NoError(t, err)
	assert.Equal(t, len(defaultServices), first.Services)
	assert.Equal(t, len(defaultMedications), first.Medications)
	assert.True(t, first.AdminCreated)

	second, err := Seed(ctx, db, cfg)
	require.NoError(t, err)
	assert.False(t, second.AdminCreated)

	var services, medications, admins int64
	require.NoError(t, db.Model(&models.Service{}).Count(&services).Error)
	require.NoError(t, db.Model(&models.Medication{}).Count(&medications).Error)
	require.NoError(t, db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&admins).Error)

	assert.EqualValues(t, len(defaultServices), services)
	assert.EqualValues(t, len(defaultMedications), medications)
	assert.EqualValues(t, 1, admins)
}
