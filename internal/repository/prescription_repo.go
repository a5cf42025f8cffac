package repository

import (
	"context"

	"clinic-management-backend/internal/models"

	"gorm.io/gorm"
)

type PrescriptionRepository struct {
	db *gorm.DB
}

func NewPrescriptionRepo(db *gorm.DB) *PrescriptionRepository {
	return &PrescriptionRepository{db: db}
}

// GetPrescriptionsByPatient lists a patient's prescriptions, newest first
func (r *PrescriptionRepository) GetPrescriptionsByPatient(ctx context.Context, patientID uint) ([]models.Prescription, error) {
	var prescriptions []models.Prescription
	err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Preload("Medication").
		Preload("Doctor").
		Order("created_at DESC, id DESC").
		Find(&prescriptions).Error
	return prescriptions, err
}

func (r *PrescriptionRepository) GetPrescriptionByID(ctx context.Context, id uint) (*models.Prescription, error) {
	var prescription models.Prescription
	err := r.db.WithContext(ctx).
		Preload("Medication").
		Preload("Doctor").
		Preload("Patient").
		First(&prescription, id).Error
	if err != nil {
		return nil, translate(err, "prescription")
	}
	return &prescription, nil
}

func (r *PrescriptionRepository) CreatePrescription(ctx context.Context, prescription *models.Prescription) error {
	return r.db.WithContext(ctx).Create(prescription).Error
}

func (r *PrescriptionRepository) UpdatePrescription(ctx context.Context, id uint, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.Prescription{ID: id}).Updates(updates).Error
}

func (r *PrescriptionRepository) DeletePrescription(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Prescription{}, id).Error
}

type MedicationRepository struct {
	db *gorm.DB
}

func NewMedicationRepo(db *gorm.DB) *MedicationRepository {
	return &MedicationRepository{db: db}
}

// GetAllMedications lists the formulary alphabetically
func (r *MedicationRepository) GetAllMedications(ctx context.Context) ([]models.Medication, error) {
	var medications []models.Medication
	err := r.db.WithContext(ctx).Order("name ASC").Find(&medications).Error
	return medications, err
}

func (r *MedicationRepository) MedicationExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Medication{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *MedicationRepository) MedicationNameExists(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Medication{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

func (r *MedicationRepository) CreateMedication(ctx context.Context, medication *models.Medication) error {
	return r.db.WithContext(ctx).Create(medication).Error
}

// FirstOrCreateMedication keeps the seeded formulary idempotent
func (r *MedicationRepository) FirstOrCreateMedication(ctx context.Context, medication *models.Medication) error {
	return r.db.WithContext(ctx).
		Where(models.Medication{Name: medication.Name}).
		Attrs(models.Medication{
			GenericName: medication.GenericName,
			Form:        medication.Form,
			Strength:    medication.Strength,
			Description: medication.Description,
		}).
		FirstOrCreate(medication).Error
}
