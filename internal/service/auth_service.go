package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"clinic-management-backend/internal/models"
	"clinic-management-backend/internal/repository"
	"clinic-management-backend/pkg/utils"
)

type AuthService struct {
	userRepo   *repository.UserRepository
	clinicRepo *repository.ClinicRepository
	auditRepo  *repository.AuditRepository
	limiter    LoginLimiter
}

func NewAuthService(userRepo *repository.UserRepository, clinicRepo *repository.ClinicRepository, auditRepo *repository.AuditRepository, limiter LoginLimiter) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		clinicRepo: clinicRepo,
		auditRepo:  auditRepo,
		limiter:    limiter,
	}
}

// AuthResult is returned by login and registration
type AuthResult struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"-"`
	User         *models.User `json:"user"`
}

type RegisterInput struct {
	Name                 string `json:"name" form:"name" binding:"required,max=255"`
	Email                string `json:"email" form:"email" binding:"required,email,max=255"`
	Password             string `json:"password" form:"password" binding:"required,min=8"`
	PasswordConfirmation string `json:"password_confirmation" form:"password_confirmation" binding:"required,eqfield=Password"`
	Role                 string `json:"role" form:"role" binding:"omitempty,oneof=doctor clinic_admin receptionist patient"`
	ClinicID             *uint  `json:"clinic_id" form:"clinic_id" binding:"omitempty,gt=0"`
}

type LoginInput struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

// Register creates a new user account and signs it in
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	exists, err := s.userRepo.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, Invalid("email", alreadyTaken("email"))
	}

	if in.ClinicID != nil {
		ok, err := s.clinicRepo.ClinicExists(ctx, *in.ClinicID)
		if err != nil {
			return nil, fmt.Errorf("failed to check clinic: %w", err)
		}
		if !ok {
			return nil, Invalid("clinic_id", selectedInvalid("clinic_id"))
		}
	}

	role := in.Role
	if role == "" {
		role = models.RoleDoctor
	}

	passwordHash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		ClinicID:     in.ClinicID,
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	result, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	recordActivity(ctx, s.auditRepo, user.ID, "user_registration", fmt.Sprintf("Account %s created", user.Email))
	return result, nil
}

// Login authenticates a user and returns tokens
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	key := LimiterKey(in.Email)

	blocked, err := s.limiter.Blocked(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to check login attempts: %w", err)
	}
	if blocked {
		return nil, ErrTooManyAttempts
	}

	user, err := s.userRepo.FindUserByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil || !utils.ComparePassword(user.PasswordHash, in.Password) {
		if err := s.limiter.Fail(ctx, key); err != nil {
			return nil, fmt.Errorf("failed to count login attempt: %w", err)
		}
		return nil, ErrInvalidCredentials
	}

	if err := s.limiter.Reset(ctx, key); err != nil {
		return nil, fmt.Errorf("failed to reset login attempts: %w", err)
	}

	result, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	recordActivity(ctx, s.auditRepo, user.ID, "user_login", "Signed in")
	return result, nil
}

// RefreshAccessToken generates a new access token from a refresh token
func (s *AuthService) RefreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	token, err := s.userRepo.FindRefreshTokenByHash(ctx, utils.HashRefreshToken(refreshToken))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrInvalidRefreshToken
		}
		return "", fmt.Errorf("failed to find refresh token: %w", err)
	}

	if time.Now().After(token.ExpiresAt) {
		return "", ErrInvalidRefreshToken
	}

	accessToken, err := utils.GenerateAccessToken(token.User.ID, token.User.Role)
	if err != nil {
		return "", fmt.Errorf("failed to generate access token: %w", err)
	}
	return accessToken, nil
}

// Logout revokes a refresh token. Unknown tokens are ignored.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	hash := utils.HashRefreshToken(refreshToken)

	token, err := s.userRepo.FindRefreshTokenByHash(ctx, hash)
	if err != nil {
		if isNotFound(err) {
			return nil
		}
		return fmt.Errorf("failed to find refresh token: %w", err)
	}

	if err := s.userRepo.RevokeRefreshTokenByHash(ctx, hash); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	recordActivity(ctx, s.auditRepo, token.UserID, "user_logout", "Signed out")
	return nil
}

// CurrentUser loads the authenticated account
func (s *AuthService) CurrentUser(ctx context.Context, userID uint) (*models.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

// PurgeRefreshTokens removes expired and revoked tokens
func (s *AuthService) PurgeRefreshTokens(ctx context.Context) (int64, error) {
	n, err := s.userRepo.PurgeRefreshTokens(ctx, time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to purge refresh tokens: %w", err)
	}
	return n, nil
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*AuthResult, error) {
	accessToken, err := utils.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := utils.GenerateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	stored := &models.RefreshToken{
		UserID:    user.ID,
		TokenHash: utils.HashRefreshToken(refreshToken),
		ExpiresAt: time.Now().Add(utils.GetRefreshTokenExpiry()),
		Revoked:   false,
	}
	if err := s.userRepo.CreateRefreshToken(ctx, stored); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &AuthResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}
