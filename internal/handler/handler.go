package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"unicode"

	"clinic-management-backend/internal/middleware"
	"clinic-management-backend/internal/repository"
	"clinic-management-backend/internal/service"
	"clinic-management-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/rs/zerolog"
)

// bindJSON binds and validates the body. An empty body is validated as an empty object.
// On failure the response is written and false returned.
func bindJSON(c *gin.Context, obj interface{}) bool {
	err := c.ShouldBindJSON(obj)
	if errors.Is(err, io.EOF) {
		err = binding.Validator.ValidateStruct(obj)
	}
	return bindResult(c, err)
}

// bindQuery binds and validates query string parameters
func bindQuery(c *gin.Context, obj interface{}) bool {
	return bindResult(c, c.ShouldBindQuery(obj))
}

func bindResult(c *gin.Context, err error) bool {
	if err == nil {
		return true
	}
	if fields, ok := utils.BindingErrors(err); ok {
		utils.ValidationErrorResponse(c, fields)
		return false
	}
	utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
	return false
}

// pathID parses a numeric route parameter; anything else is treated as a missing record
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		utils.ErrorResponse(c, http.StatusNotFound, "Not found")
		return 0, false
	}
	return uint(id), true
}

func actor(c *gin.Context) service.Actor {
	return service.Actor{ID: middleware.CurrentUserID(c), Role: middleware.CurrentRole(c)}
}

// respondError maps service and repository errors to HTTP responses
func respondError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		utils.ValidationErrorResponse(c, verr.Fields)
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, service.ErrNoClinic):
		utils.ErrorResponse(c, http.StatusNotFound, sentence(err.Error()))
	case errors.Is(err, service.ErrForbidden):
		utils.ErrorResponse(c, http.StatusForbidden, "This action is unauthorized.")
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrInvalidRefreshToken):
		utils.ErrorResponse(c, http.StatusUnauthorized, sentence(err.Error()))
	case errors.Is(err, service.ErrTooManyAttempts):
		utils.ErrorResponse(c, http.StatusTooManyRequests, sentence(err.Error()))
	default:
		_ = c.Error(err)
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		utils.ErrorResponse(c, http.StatusInternalServerError, "Server Error")
	}
}

func sentence(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return strings.TrimSpace(string(r))
}
