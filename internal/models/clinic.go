package models

import "time"

// Clinic is a medical facility listed in the public directory
type Clinic struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:255;not null;index" json:"name"`
	Address      string    `gorm:"size:255;not null" json:"address"`
	Latitude     float64   `gorm:"type:decimal(10,7);not null;index:idx_clinic_location" json:"latitude"`
	Longitude    float64   `gorm:"type:decimal(10,7);not null;index:idx_clinic_location" json:"longitude"`
	ContactPhone string    `gorm:"size:20;not null" json:"contact_phone"`
	Description  string    `gorm:"type:text" json:"description,omitempty"`
	IsActive     bool      `gorm:"default:true;index" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Services []Service `gorm:"many2many:clinic_services" json:"services,omitempty"`
}

// TableName specifies the table name for Clinic model
func (Clinic) TableName() string {
	return "clinics"
}

// ClinicWithDistance is returned by location aware directory queries
type ClinicWithDistance struct {
	Clinic
	Distance *float64 `json:"distance,omitempty"`
}

// Service is a medical service a clinic can offer (many-to-many with clinics)
type Service struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:255;not null;uniqueIndex" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for Service model
func (Service) TableName() string {
	return "services"
}
