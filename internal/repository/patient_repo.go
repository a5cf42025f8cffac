package repository

import (
	"context"
	"strings"

	"clinic-management-backend/internal/models"

	"gorm.io/gorm"
)

type PatientRepository struct {
	db *gorm.DB
}

func NewPatientRepo(db *gorm.DB) *PatientRepository {
	return &PatientRepository{db: db}
}

// GetAllPatients lists patients alphabetically
func (r *PatientRepository) GetAllPatients(ctx context.Context, opts ListOptions) ([]models.Patient, error) {
	var patients []models.Patient
	err := opts.apply(r.db.WithContext(ctx)).Order("full_name ASC").Find(&patients).Error
	return patients, err
}

// SearchPatients matches full name or NIC, case insensitive
func (r *PatientRepository) SearchPatients(ctx context.Context, term string) ([]models.Patient, error) {
	var patients []models.Patient
	like := "%" + strings.ToLower(term) + "%"
	err := r.db.WithContext(ctx).
		Where("LOWER(full_name) LIKE ? OR LOWER(nic) LIKE ?", like, like).
		Order("full_name ASC").
		Find(&patients).Error
	return patients, err
}

// GetPatientByID retrieves a patient without relations
func (r *PatientRepository) GetPatientByID(ctx context.Context, id uint) (*models.Patient, error) {
	var patient models.Patient
	err := r.db.WithContext(ctx).First(&patient, id).Error
	if err != nil {
		return nil, translate(err, "patient")
	}
	return &patient, nil
}

// GetPatientWithAppointments loads the record page: appointments newest first
func (r *PatientRepository) GetPatientWithAppointments(ctx context.Context, id uint) (*models.Patient, error) {
	var patient models.Patient
	err := r.db.WithContext(ctx).
		Preload("Appointments", func(db *gorm.DB) *gorm.DB {
			return db.Order("appointment_date DESC, appointment_time DESC")
		}).
		First(&patient, id).Error
	if err != nil {
		return nil, translate(err, "patient")
	}
	return &patient, nil
}

func (r *PatientRepository) PatientExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Patient{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// NICTaken reports whether another patient uses the NIC. exceptID 0 checks all rows.
func (r *PatientRepository) NICTaken(ctx context.Context, nic string, exceptID uint) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&models.Patient{}).Where("nic = ?", nic)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *PatientRepository) PatientCodeTaken(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Patient{}).Where("patient_id = ?", code).Count(&count).Error
	return count > 0, err
}

// CountPatients counts all patients, or those registered by doctorID when non-zero
func (r *PatientRepository) CountPatients(ctx context.Context, doctorID uint) (int64, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&models.Patient{})
	if doctorID != 0 {
		q = q.Where("doctor_id = ?", doctorID)
	}
	err := q.Count(&count).Error
	return count, err
}

func (r *PatientRepository) CreatePatient(ctx context.Context, patient *models.Patient) error {
	return r.db.WithContext(ctx).Create(patient).Error
}

// UpdatePatient saves every column of the patient
func (r *PatientRepository) UpdatePatient(ctx context.Context, patient *models.Patient) error {
	return r.db.WithContext(ctx).Save(patient).Error
}

// DeletePatient removes the patient together with appointments and prescriptions
func (r *PatientRepository) DeletePatient(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("patient_id = ?", id).Delete(&models.Appointment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("patient_id = ?", id).Delete(&models.Prescription{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Patient{}, id).Error
	})
}
