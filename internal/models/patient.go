package models

import (
	"time"

	"gorm.io/datatypes"
)

// Patient is a person registered at the clinic by a doctor or receptionist
type Patient struct {
	ID                           uint           `gorm:"primaryKey" json:"id"`
	DoctorID                     *uint          `gorm:"index" json:"doctor_id"`
	Code                         string         `gorm:"column:patient_id;size:20;not null;uniqueIndex" json:"patient_id"`
	FullName                     string         `gorm:"size:255;not null;index" json:"full_name"`
	NIC                          string         `gorm:"column:nic;size:20;not null;uniqueIndex" json:"nic"`
	DateOfBirth                  datatypes.Date `gorm:"not null" json:"date_of_birth"`
	Gender                       string         `gorm:"size:10;not null" json:"gender"`
	StreetAddress                string         `gorm:"size:255;not null" json:"street_address"`
	City                         string         `gorm:"size:255;not null" json:"city"`
	District                     string         `gorm:"size:255;not null" json:"district"`
	Province                     string         `gorm:"size:255;not null" json:"province"`
	ContactNumber                string         `gorm:"size:20;not null" json:"contact_number"`
	EmailAddress                 *string        `gorm:"size:255" json:"email_address"`
	MaritalStatus                *string        `gorm:"size:20" json:"marital_status"`
	EmergencyContactName         string         `gorm:"size:255;not null" json:"emergency_contact_name"`
	EmergencyContactNumber       string         `gorm:"size:20;not null" json:"emergency_contact_number"`
	EmergencyContactRelationship string         `gorm:"size:255;not null" json:"emergency_contact_relationship"`
	BloodGroup                   *string        `gorm:"size:10" json:"blood_group"`
	KnownAllergies               *string        `gorm:"type:text" json:"known_allergies"`
	CurrentMedications           *string        `gorm:"type:text" json:"current_medications"`
	PastMedicalHistory           *string        `gorm:"type:text" json:"past_medical_history"`
	RegistrationDate             datatypes.Date `gorm:"not null" json:"registration_date"`
	CreatedAt                    time.Time      `json:"created_at"`
	UpdatedAt                    time.Time      `json:"updated_at"`

	Doctor       *User         `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Appointments []Appointment `gorm:"foreignKey:PatientID" json:"appointments,omitempty"`
}

// TableName specifies the table name for Patient model
func (Patient) TableName() string {
	return "patients"
}
