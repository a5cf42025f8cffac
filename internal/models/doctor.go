package models

import "time"

// Doctor is a directory entry for a practitioner working at a clinic
type Doctor struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ClinicID       uint      `gorm:"not null;index" json:"clinic_id"`
	Name           string    `gorm:"size:255;not null" json:"name"`
	Specialization string    `gorm:"size:255;not null;index" json:"specialization"`
	Bio            string    `gorm:"type:text" json:"bio,omitempty"`
	ContactPhone   string    `gorm:"size:20" json:"contact_phone,omitempty"`
	Email          string    `gorm:"size:255" json:"email,omitempty"`
	IsActive       bool      `gorm:"default:true;index" json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Clinic *Clinic `gorm:"foreignKey:ClinicID" json:"clinic,omitempty"`
}

// TableName specifies the table name for Doctor model
func (Doctor) TableName() string {
	return "doctors"
}

// Schedule is a weekly working window of a doctor at a clinic
type Schedule struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ClinicID  uint      `gorm:"not null;index" json:"clinic_id"`
	DoctorID  uint      `gorm:"not null;index" json:"doctor_id"`
	DayOfWeek int       `gorm:"not null" json:"day_of_week"`
	StartTime string    `gorm:"size:5;not null" json:"start_time"`
	EndTime   string    `gorm:"size:5;not null" json:"end_time"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Doctor *Doctor `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Clinic *Clinic `gorm:"foreignKey:ClinicID" json:"clinic,omitempty"`
}

// TableName specifies the table name for Schedule model
func (Schedule) TableName() string {
	return "schedules"
}

// Review is a rating left for a clinic by a signed in user
type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ClinicID  uint      `gorm:"not null;index" json:"clinic_id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `gorm:"type:text" json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName specifies the table name for Review model
func (Review) TableName() string {
	return "reviews"
}
