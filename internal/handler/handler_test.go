package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"clinic-management-backend/internal/repository"
	"clinic-management-backend/internal/service"
	"clinic-management-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRespondErrorStatusCodes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		err  error
		code int
		body string
	}{
		{service.Invalid("nic", "The nic has already been taken."), http.StatusUnprocessableEntity, `"The given data was invalid."`},
		{fmt.Errorf("patient %w", repository.ErrNotFound), http.StatusNotFound, `"Patient not found"`},
		{service.ErrNoClinic, http.StatusNotFound, `"Clinic not found for user"`},
		{service.ErrForbidden, http.StatusForbidden, `"This action is unauthorized."`},
		{service.ErrInvalidCredentials, http.StatusUnauthorized, `"Invalid credentials"`},
		{service.ErrTooManyAttempts, http.StatusTooManyRequests, `"Too many login attempts`},
		{errors.New("connection reset"), http.StatusInternalServerError, `"Server Error"`},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

		respondError(c, tt.err)

		assert.Equal(t, tt.code, w.Code, tt.err.Error())
		assert.Contains(t, w.Body.String(), tt.body)
	}
}

func TestBindJSONEmptyBodyIsValidated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	utils.SetupValidator()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
	c.Request.Header.Set("Content-Type", "application/json")

	var req service.LoginInput
	assert.False(t, bindJSON(c, &req))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), `"email"`)
}

func TestBindJSONMalformedBody(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":`))
	c.Request.Header.Set("Content-Type", "application/json")

	var req service.LoginInput
	assert.False(t, bindJSON(c, &req))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPathIDRejectsNonNumeric(t *testing.T) {
	gin.SetMode(gin.TestMode)

	for _, raw := range []string{"abc", "0", "-1"} {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Params = gin.Params{{Key: "id", Value: raw}}

		_, ok := pathID(c, "id")
		assert.False(t, ok, raw)
		assert.Equal(t, http.StatusNotFound, w.Code, raw)
	}
}
