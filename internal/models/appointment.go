package models

import (
	"time"

	"gorm.io/datatypes"
)

// Appointment statuses. Transitions are not guarded.
const (
	AppointmentPending   = "pending"
	AppointmentConfirmed = "confirmed"
	AppointmentCancelled = "cancelled"
	AppointmentCompleted = "completed"
)

// Appointment is a booked visit of a patient
type Appointment struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	PatientID        uint           `gorm:"not null;index" json:"patient_id"`
	UserID           *uint          `gorm:"index" json:"user_id"`
	ClinicID         *uint          `gorm:"index" json:"clinic_id"`
	DoctorID         *uint          `gorm:"index" json:"doctor_id"`
	AppointmentDate  datatypes.Date `gorm:"not null;index" json:"appointment_date"`
	AppointmentTime  string         `gorm:"size:5;not null" json:"appointment_time"`
	AppointmentType  string         `gorm:"size:255;not null" json:"appointment_type"`
	Reason           string         `gorm:"type:text;not null" json:"reason"`
	ConfirmationSent bool           `gorm:"default:false" json:"confirmation_sent"`
	Notes            *string        `gorm:"type:text" json:"notes"`
	Status           string         `gorm:"size:20;not null;default:pending;index" json:"status"`
	CheckInTime      *time.Time     `json:"check_in_time"`
	PaymentCollected bool           `gorm:"default:false" json:"payment_collected"`
	TriageNotes      *string        `gorm:"type:text" json:"triage_notes"`
	ContactNumber    *string        `gorm:"size:20" json:"contact_number"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`

	Patient *Patient `gorm:"foreignKey:PatientID;references:ID" json:"patient,omitempty"`
	Clinic  *Clinic  `gorm:"foreignKey:ClinicID" json:"clinic,omitempty"`
	Doctor  *Doctor  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

// TableName specifies the table name for Appointment model
func (Appointment) TableName() string {
	return "appointments"
}
