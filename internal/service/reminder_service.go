package service

import (
	"context"
	"fmt"

	"clinic-management-backend/internal/models"
	"clinic-management-backend/internal/repository"

	"github.com/rs/zerolog"
)

// Notifier delivers an appointment reminder to the patient
type Notifier interface {
	NotifyAppointment(ctx context.Context, appointment models.Appointment) error
}

// LogNotifier writes reminders to the application log
type LogNotifier struct {
	logger zerolog.Logger
}

func NewLogNotifier(logger zerolog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) NotifyAppointment(_ context.Context, a models.Appointment) error {
	event := n.logger.Info().
		Uint("appointment_id", a.ID).
		Str("date", dateString(a)).
		Str("time", a.AppointmentTime)
	if a.Patient != nil {
		event = event.Str("patient", a.Patient.FullName).Str("contact_number", a.Patient.ContactNumber)
	}
	if a.Clinic != nil {
		event = event.Str("clinic", a.Clinic.Name)
	}
	event.Msg("appointment reminder")
	return nil
}

type ReminderService struct {
	appointmentRepo *repository.AppointmentRepository
	notifier        Notifier
}

func NewReminderService(appointmentRepo *repository.AppointmentRepository, notifier Notifier) *ReminderService {
	return &ReminderService{appointmentRepo: appointmentRepo, notifier: notifier}
}

// SendTomorrow notifies patients about tomorrow's open appointments and flags them as sent.
// Appointments whose notification fails stay unflagged and are retried on the next run.
func (s *ReminderService) SendTomorrow(ctx context.Context) (int, error) {
	due, err := s.appointmentRepo.GetDueReminders(ctx, today().AddDate(0, 0, 1))
	if err != nil {
		return 0, fmt.Errorf("failed to load due reminders: %w", err)
	}

	sent := make([]uint, 0, len(due))
	for _, a := range due {
		if err := s.notifier.NotifyAppointment(ctx, a); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Uint("appointment_id", a.ID).Msg("reminder not delivered")
			continue
		}
		sent = append(sent, a.ID)
	}

	if err := s.appointmentRepo.MarkConfirmationSent(ctx, sent); err != nil {
		return 0, fmt.Errorf("failed to flag reminders: %w", err)
	}
	return len(sent), nil
}

func dateString(a models.Appointment) string {
	return timeOf(a.AppointmentDate).Format(dateLayout)
}
