package repository

import (
	"context"
	"errors"
	"testing"

	"clinic-management-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newClinicTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.Service{}, &models.Clinic{}, &models.User{}))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string, clinicID *uint) *models.User {
	t.Helper()
	u := &models.User{Name: "Manager", Email: email, PasswordHash: "x", Role: models.RoleClinicAdmin, ClinicID: clinicID}
	require.NoError(t, db.Create(u).Error)
	return u
}

func TestCreateClinicLinksOwner(t *testing.T) {
	db := newClinicTestDB(t)
	repo := NewClinicRepo(db)
	ctx := context.Background()

	owner := seedUser(t, db, "owner@example.com", nil)
	clinic := &models.Clinic{Name: "Fort Clinic", Address: "Fort", Latitude: 6.93, Longitude: 79.84, ContactPhone: "011", IsActive: true}
	require.NoError(t, repo.CreateClinic(ctx, clinic, &owner.ID))

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, owner.ID).Error)
	require.NotNil(t, reloaded.ClinicID)
	assert.Equal(t, clinic.ID, *reloaded.ClinicID)

	// an owner who already runs a clinic keeps it
	second := &models.Clinic{Name: "Kandy Clinic", Address: "Kandy", Latitude: 7.29, Longitude: 80.63, ContactPhone: "081", IsActive: true}
	require.NoError(t, repo.CreateClinic(ctx, second, &owner.ID))

	var again models.User
	require.NoError(t, db.First(&again, owner.ID).Error)
	require.NotNil(t, again.ClinicID)
	assert.Equal(t, clinic.ID, *again.ClinicID)
}

func TestCreateClinicRollsBackWhenOwnerLinkFails(t *testing.T) {
	db := newClinicTestDB(t)
	repo := NewClinicRepo(db)
	owner := seedUser(t, db, "owner@example.com", nil)

	require.NoError(t, db.Callback().Update().Before("gorm:update").Register("test:fail_user_update", func(tx *gorm.DB) {
		if tx.Statement.Table == "users" {
			_ = tx.AddError(errors.New("users table locked"))
		}
	}))

	clinic := &models.Clinic{Name: "Fort Clinic", Address: "Fort", Latitude: 6.93, Longitude: 79.84, ContactPhone: "011", IsActive: true}
	err := repo.CreateClinic(context.Background(), clinic, &owner.ID)
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Clinic{}).Count(&count).Error)
	assert.Zero(t, count)

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, owner.ID).Error)
	assert.Nil(t, reloaded.ClinicID)
}
