package service

import "clinic-management-backend/internal/models"

// Actor is the authenticated user a service call runs on behalf of
type Actor struct {
	ID   uint
	Role string
}

func (a Actor) Is(role string) bool {
	return a.Role == role
}

func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}
