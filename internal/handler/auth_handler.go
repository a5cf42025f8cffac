package handler

import (
	"net/http"

	"clinic-management-backend/internal/middleware"
	"clinic-management-backend/internal/service"
	"clinic-management-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

const refreshTokenCookie = "refresh_token"

type AuthHandler struct {
	authService  *service.AuthService
	secureCookie bool
}

func NewAuthHandler(authService *service.AuthService, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		secureCookie: secureCookie,
	}
}

// Register handles user registration
func (h *AuthHandler) Register(c *gin.Context) {
	var req service.RegisterInput
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	setSessionCookies(c, result, h.secureCookie)
	utils.CreatedResponse(c, gin.H{
		"access_token": result.AccessToken,
		"user":         result.User,
	})
}

// Login handles user authentication
func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginInput
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	setSessionCookies(c, result, h.secureCookie)
	utils.SuccessResponse(c, gin.H{
		"access_token": result.AccessToken,
		"user":         result.User,
	})
}

// Refresh generates a new access token from the refresh token cookie
func (h *AuthHandler) Refresh(c *gin.Context) {
	refreshToken, err := c.Cookie(refreshTokenCookie)
	if err != nil || refreshToken == "" {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Refresh token not found")
		return
	}

	accessToken, err := h.authService.RefreshAccessToken(c.Request.Context(), refreshToken)
	if err != nil {
		respondError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessTokenCookie, accessToken, int(utils.GetAccessTokenExpiry().Seconds()), "/", "", h.secureCookie, true)
	utils.SuccessResponse(c, gin.H{
		"access_token": accessToken,
	})
}

// Logout revokes the refresh token and clears the session cookies
func (h *AuthHandler) Logout(c *gin.Context) {
	if refreshToken, err := c.Cookie(refreshTokenCookie); err == nil && refreshToken != "" {
		if err := h.authService.Logout(c.Request.Context(), refreshToken); err != nil {
			respondError(c, err)
			return
		}
	}

	clearSessionCookies(c, h.secureCookie)
	utils.MessageResponse(c, "Logged out successfully")
}

// Me returns the authenticated user
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authService.CurrentUser(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, user)
}

func setSessionCookies(c *gin.Context, result *service.AuthResult, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(refreshTokenCookie, result.RefreshToken, int(utils.GetRefreshTokenExpiry().Seconds()), "/", "", secure, true)
	c.SetCookie(middleware.AccessTokenCookie, result.AccessToken, int(utils.GetAccessTokenExpiry().Seconds()), "/", "", secure, true)
}

func clearSessionCookies(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(refreshTokenCookie, "", -1, "/", "", secure, true)
	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", "", secure, true)
}
