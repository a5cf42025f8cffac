package service

import (
	"context"

	"clinic-management-backend/internal/repository"

	"github.com/rs/zerolog"
)

// recordActivity writes an audit entry. Failures are logged and never fail the request.
func recordActivity(ctx context.Context, repo *repository.AuditRepository, userID uint, action, details string) {
	var actor *uint
	if userID != 0 {
		actor = &userID
	}
	if err := repo.CreateAuditLog(ctx, actor, action, details); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("action", action).Msg("failed to write audit log")
	}
}
