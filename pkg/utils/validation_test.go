package utils

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type samplePatientRequest struct {
	FullName      string   `json:"full_name" binding:"required,max=10"`
	ContactNumber string   `json:"contact_number" binding:"required,lk_mobile"`
	Gender        string   `json:"gender" binding:"required,oneof=Male Female Other"`
	DateOfBirth   string   `json:"date_of_birth" binding:"required,datetime=2006-01-02"`
	Email         *string  `json:"email_address" binding:"omitempty,email"`
	Latitude      *float64 `json:"latitude" binding:"omitempty,gte=-90,lte=90"`
}

func bindSample(t *testing.T, body string) error {
	t.Helper()
	gin.SetMode(gin.TestMode)
	SetupValidator()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var req samplePatientRequest
	return c.ShouldBindJSON(&req)
}

func TestBindingErrorsUseJSONNames(t *testing.T) {
	err := bindSample(t, `{"full_name":"A very long patient name","contact_number":"0123","gender":"X","date_of_birth":"15/06/1990","email_address":"nope","latitude":120}`)
	require.Error(t, err)

	fields, ok := BindingErrors(err)
	require.True(t, ok)

	assert.Equal(t, []string{"The full name field must not be greater than 10 characters."}, fields["full_name"])
	assert.Equal(t, []string{"The contact number field format is invalid."}, fields["contact_number"])
	assert.Equal(t, []string{"The selected gender is invalid."}, fields["gender"])
	assert.Equal(t, []string{"The date of birth field must match the format 2006-01-02."}, fields["date_of_birth"])
	assert.Equal(t, []string{"The email address field must be a valid email address."}, fields["email_address"])
	assert.Equal(t, []string{"The latitude field must not be greater than 90."}, fields["latitude"])
}

func TestBindingErrorsRequired(t *testing.T) {
	err := bindSample(t, `{}`)
	require.Error(t, err)

	fields, ok := BindingErrors(err)
	require.True(t, ok)
	assert.Equal(t, []string{"The full name field is required."}, fields["full_name"])
	assert.Contains(t, fields, "contact_number")
	assert.NotContains(t, fields, "email_address")
}

func TestBindingErrorsTypeMismatch(t *testing.T) {
	err := bindSample(t, `{"full_name":"Jane","contact_number":"0771234567","gender":"Female","date_of_birth":"1990-06-15","latitude":"north"}`)
	require.Error(t, err)

	fields, ok := BindingErrors(err)
	require.True(t, ok)
	assert.Equal(t, []string{"The latitude field must be a number."}, fields["latitude"])
}

func TestBindingErrorsIgnoresMalformedJSON(t *testing.T) {
	err := bindSample(t, `{"full_name":`)
	require.Error(t, err)

	_, ok := BindingErrors(err)
	assert.False(t, ok)
}
