package models

import "time"

// Medication is an entry of the clinic formulary
type Medication struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:255;not null;uniqueIndex" json:"name"`
	GenericName string    `gorm:"size:255" json:"generic_name,omitempty"`
	Form        string    `gorm:"size:100" json:"form,omitempty"`
	Strength    string    `gorm:"size:100" json:"strength,omitempty"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for Medication model
func (Medication) TableName() string {
	return "medications"
}

// Prescription is a medication issued to a patient by a doctor account
type Prescription struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	PatientID    uint      `gorm:"not null;index" json:"patient_id"`
	DoctorID     uint      `gorm:"not null;index" json:"doctor_id"`
	MedicationID uint      `gorm:"not null;index" json:"medication_id"`
	Dosage       string    `gorm:"size:255;not null" json:"dosage"`
	Frequency    string    `gorm:"size:255;not null" json:"frequency"`
	Duration     string    `gorm:"size:255;not null" json:"duration"`
	Notes        *string   `gorm:"type:text" json:"notes"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Patient    *Patient    `gorm:"foreignKey:PatientID;references:ID" json:"patient,omitempty"`
	Doctor     *User       `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Medication *Medication `gorm:"foreignKey:MedicationID" json:"medication,omitempty"`
}

// TableName specifies the table name for Prescription model
func (Prescription) TableName() string {
	return "prescriptions"
}
