package service

import (
	"context"
	"errors"
	"testing"

	"clinic-management-backend/internal/database"
	"clinic-management-backend/internal/models"
	"clinic-management-backend/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type recordingNotifier struct {
	failFor  string
	notified []uint
}

func (n *recordingNotifier) NotifyAppointment(_ context.Context, a models.Appointment) error {
	if a.Patient != nil && a.Patient.FullName == n.failFor {
		return errors.New("sms gateway unavailable")
	}
	n.notified = append(n.notified, a.ID)
	return nil
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, database.Migrate(db))
	return db
}

func seedPatient(t *testing.T, db *gorm.DB, name, nic string) models.Patient {
	t.Helper()
	p := models.Patient{
		Code: nic, FullName: name, NIC: nic, Gender: "Female",
		DateOfBirth: datatypes.Date(today().AddDate(-30, 0, 0)), StreetAddress: "1 Main Street",
		City: "Colombo", District: "Colombo", Province: "Western", ContactNumber: "0771234567",
		EmergencyContactName: "Kin", EmergencyContactNumber: "0777654321", EmergencyContactRelationship: "Sibling",
		RegistrationDate: datatypes.Date(today()),
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func seedAppointment(t *testing.T, db *gorm.DB, patientID uint, days int, status string) models.Appointment {
	t.Helper()
	a := models.Appointment{
		PatientID: patientID, AppointmentDate: datatypes.Date(today().AddDate(0, 0, days)),
		AppointmentTime: "10:00", AppointmentType: "Consultation", Reason: "Check-up", Status: status,
	}
	require.NoError(t, db.Create(&a).Error)
	return a
}

func TestSendTomorrowNotifiesOpenAppointments(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	amara := seedPatient(t, db, "Amara", "AMARA00001")
	bimal := seedPatient(t, db, "Bimal", "BIMAL00001")

	due := seedAppointment(t, db, amara.ID, 1, models.AppointmentPending)
	failing := seedAppointment(t, db, bimal.ID, 1, models.AppointmentConfirmed)
	seedAppointment(t, db, amara.ID, 1, models.AppointmentCancelled)
	seedAppointment(t, db, amara.ID, 2, models.AppointmentPending)

	notifier := &recordingNotifier{failFor: "Bimal"}
	reminders := NewReminderService(repository.NewAppointmentRepo(db), notifier)

	sent, err := reminders.SendTomorrow(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	assert.Equal(t, []uint{due.ID}, notifier.notified)

	var sentAppointment models.Appointment
	require.NoError(t, db.First(&sentAppointment, due.ID).Error)
	assert.True(t, sentAppointment.ConfirmationSent)
	var failedAppointment models.Appointment
	require.NoError(t, db.First(&failedAppointment, failing.ID).Error)
	assert.False(t, failedAppointment.ConfirmationSent)

	// Flagged appointments are not sent twice; the failed one is retried
	notifier.failFor = ""
	notifier.notified = nil
	sent, err = reminders.SendTomorrow(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	assert.Equal(t, []uint{failing.ID}, notifier.notified)
}
