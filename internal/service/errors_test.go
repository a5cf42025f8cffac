package service

import (
	"errors"
	"fmt"
	"testing"

	"clinic-management-backend/internal/models"
	"clinic-management-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationErrorErr(t *testing.T) {
	var empty *ValidationError
	assert.NoError(t, empty.Err())
	assert.NoError(t, (&ValidationError{}).Err())

	v := &ValidationError{}
	v.Add("patient_id", selectedInvalid("patient_id"))
	v.Add("clinic_id", selectedInvalid("clinic_id"))

	err := v.Err()
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"The selected patient id is invalid."}, verr.Fields["patient_id"])
	assert.Equal(t, "validation failed: clinic_id: The selected clinic id is invalid.; patient_id: The selected patient id is invalid.", err.Error())
}

func TestAlreadyTaken(t *testing.T) {
	assert.Equal(t, "The nic has already been taken.", alreadyTaken("nic"))
	assert.Equal(t, []string{"The email has already been taken."}, Invalid("email", alreadyTaken("email")).Fields["email"])
}

func TestIsNotFoundUnwraps(t *testing.T) {
	assert.True(t, isNotFound(fmt.Errorf("patient %w", repository.ErrNotFound)))
	assert.False(t, isNotFound(ErrForbidden))
}

func TestNormalizeClock(t *testing.T) {
	assert.Equal(t, "09:05", normalizeClock("9:05"))
	assert.Equal(t, "17:30", normalizeClock("17:30"))
	assert.Equal(t, "late", normalizeClock("late"))
}

func TestOptional(t *testing.T) {
	assert.Nil(t, optional("   "))
	require.NotNil(t, optional(" O+ "))
	assert.Equal(t, "O+", *optional(" O+ "))
}

func TestByDistanceSortsNearestFirst(t *testing.T) {
	clinics := []models.Clinic{
		{ID: 1, Name: "Kandy", Latitude: 7.2906, Longitude: 80.6337},
		{ID: 2, Name: "Fort", Latitude: 6.9344, Longitude: 79.8428},
		{ID: 3, Name: "Dehiwala", Latitude: 6.8511, Longitude: 79.8659},
	}

	out := byDistance(clinics, 6.9271, 79.8612)
	require.Len(t, out, 3)
	assert.Equal(t, []uint{2, 3, 1}, []uint{out[0].ID, out[1].ID, out[2].ID})
	for _, c := range out {
		require.NotNil(t, c.Distance)
	}
	assert.Less(t, *out[0].Distance, *out[1].Distance)
}

func TestUniqueIDsKeepsOrder(t *testing.T) {
	assert.Equal(t, []uint{3, 1, 2}, uniqueIDs([]uint{3, 1, 3, 2, 1}))
}

func TestActorRoles(t *testing.T) {
	a := Actor{ID: 4, Role: models.RoleClinicAdmin}
	assert.True(t, a.Is(models.RoleClinicAdmin))
	assert.False(t, a.IsAdmin())
	assert.True(t, Actor{Role: models.RoleAdmin}.IsAdmin())
}
