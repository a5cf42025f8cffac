package handler

import (
	"errors"
	"net/http"
	"strconv"

	"clinic-management-backend/internal/middleware"
	"clinic-management-backend/internal/models"
	"clinic-management-backend/internal/repository"
	"clinic-management-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// PageHandler renders the server side pages
type PageHandler struct {
	authService         *service.AuthService
	clinicService       *service.ClinicService
	patientService      *service.PatientService
	prescriptionService *service.PrescriptionService
	appointmentService  *service.AppointmentService
	dashboardService    *service.DashboardService
	secureCookie        bool
}

func NewPageHandler(
	authService *service.AuthService,
	clinicService *service.ClinicService,
	patientService *service.PatientService,
	prescriptionService *service.PrescriptionService,
	appointmentService *service.AppointmentService,
	dashboardService *service.DashboardService,
	secureCookie bool,
) *PageHandler {
	return &PageHandler{
		authService:         authService,
		clinicService:       clinicService,
		patientService:      patientService,
		prescriptionService: prescriptionService,
		appointmentService:  appointmentService,
		dashboardService:    dashboardService,
		secureCookie:        secureCookie,
	}
}

// Home renders the public clinic directory
func (h *PageHandler) Home(c *gin.Context) {
	query := c.Query("q")
	clinics, err := h.clinicService.ListClinics(c.Request.Context(), service.ClinicQuery{Q: query})
	if err != nil {
		h.renderError(c, err)
		return
	}

	h.render(c, http.StatusOK, "home.html", gin.H{
		"Title":   "Find a clinic",
		"Query":   query,
		"Clinics": clinics,
	})
}

func (h *PageHandler) LoginForm(c *gin.Context) {
	h.render(c, http.StatusOK, "login.html", gin.H{"Title": "Log in"})
}

// Login authenticates the form submission and starts a cookie session
func (h *PageHandler) Login(c *gin.Context) {
	var form service.LoginInput
	if err := c.ShouldBind(&form); err != nil {
		h.render(c, http.StatusUnprocessableEntity, "login.html", gin.H{
			"Title": "Log in",
			"Email": form.Email,
			"Error": "Please enter your email and password.",
		})
		return
	}

	result, err := h.authService.Login(c.Request.Context(), form)
	if err != nil {
		status := http.StatusInternalServerError
		message := "Something went wrong, please try again."
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			status, message = http.StatusUnauthorized, "These credentials do not match our records."
		case errors.Is(err, service.ErrTooManyAttempts):
			status, message = http.StatusTooManyRequests, "Too many login attempts. Please try again later."
		default:
			zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("page login failed")
		}
		h.render(c, status, "login.html", gin.H{"Title": "Log in", "Email": form.Email, "Error": message})
		return
	}

	setSessionCookies(c, result, h.secureCookie)
	c.Redirect(http.StatusFound, "/dashboard")
}

// Logout ends the cookie session
func (h *PageHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(refreshTokenCookie); err == nil && token != "" {
		if err := h.authService.Logout(c.Request.Context(), token); err != nil {
			zerolog.Ctx(c.Request.Context()).Warn().Err(err).Msg("failed to revoke refresh token")
		}
	}
	clearSessionCookies(c, h.secureCookie)
	c.Redirect(http.StatusFound, "/login")
}

// Dashboard renders the summary that matches the user's role
func (h *PageHandler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()
	a := actor(c)
	data := gin.H{"Title": "Dashboard"}

	switch a.Role {
	case models.RoleClinicAdmin:
		summary, err := h.dashboardService.ClinicSummary(ctx, a)
		if errors.Is(err, service.ErrNoClinic) {
			data["Notice"] = "You do not administer a clinic yet."
		} else if err != nil {
			h.renderError(c, err)
			return
		}
		data["Clinic"] = summary
	case models.RolePatient:
		summary, err := h.dashboardService.PatientSummary(ctx, a, service.NearbyQuery{})
		if err != nil {
			h.renderError(c, err)
			return
		}
		data["Patient"] = summary
	default:
		summary, err := h.dashboardService.DoctorSummary(ctx, a)
		if err != nil {
			h.renderError(c, err)
			return
		}
		data["Doctor"] = summary
	}

	activity, err := h.dashboardService.RecentActivity(ctx, a)
	if err != nil {
		h.renderError(c, err)
		return
	}
	data["Activity"] = activity

	h.render(c, http.StatusOK, "dashboard.html", data)
}

// Patients renders the patient list with optional search
func (h *PageHandler) Patients(c *gin.Context) {
	query := c.Query("q")
	patients, err := h.patientService.SearchPatients(c.Request.Context(), query)
	if err != nil {
		h.renderError(c, err)
		return
	}

	h.render(c, http.StatusOK, "patients.html", gin.H{
		"Title":    "Patients",
		"Query":    query,
		"Patients": patients,
	})
}

// PatientRecord renders a patient with appointments and prescriptions
func (h *PageHandler) PatientRecord(c *gin.Context) {
	id, ok := pagePathID(c, "id")
	if !ok {
		h.renderError(c, repository.ErrNotFound)
		return
	}

	patient, err := h.patientService.GetPatientRecord(c.Request.Context(), id)
	if err != nil {
		h.renderError(c, err)
		return
	}
	prescriptions, err := h.prescriptionService.PatientPrescriptions(c.Request.Context(), id)
	if err != nil {
		h.renderError(c, err)
		return
	}

	h.render(c, http.StatusOK, "patient_record.html", gin.H{
		"Title":         patient.FullName,
		"Patient":       patient,
		"Prescriptions": prescriptions,
	})
}

// DoctorAppointments renders the doctor's calendar
func (h *PageHandler) DoctorAppointments(c *gin.Context) {
	var q service.DoctorAppointmentQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		q = service.DoctorAppointmentQuery{}
	}

	calendar, err := h.appointmentService.DoctorAppointments(c.Request.Context(), actor(c), q)
	if err != nil {
		h.renderError(c, err)
		return
	}

	h.render(c, http.StatusOK, "doctor_appointments.html", gin.H{
		"Title":    "Appointments",
		"Calendar": calendar,
		"Statuses": []string{models.AppointmentPending, models.AppointmentConfirmed, models.AppointmentCancelled, models.AppointmentCompleted},
	})
}

func (h *PageHandler) render(c *gin.Context, status int, name string, data gin.H) {
	data["Role"] = middleware.CurrentRole(c)
	c.HTML(status, name, data)
}

func (h *PageHandler) renderError(c *gin.Context, err error) {
	status, message := http.StatusInternalServerError, "Server Error"
	if errors.Is(err, repository.ErrNotFound) {
		status, message = http.StatusNotFound, "Not Found"
	} else {
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Str("path", c.FullPath()).Msg("page failed")
	}
	h.render(c, status, "error.html", gin.H{"Title": message, "Message": message})
}

func pagePathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	return uint(id), err == nil && id > 0
}
