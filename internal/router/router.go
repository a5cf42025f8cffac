package router

import (
	"fmt"
	"net/http"

	"clinic-management-backend/internal/config"
	"clinic-management-backend/internal/handler"
	"clinic-management-backend/internal/middleware"
	"clinic-management-backend/internal/service"
	"clinic-management-backend/internal/web"
	"clinic-management-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Role lists accepted by middleware.RequireRoles
const (
	clinicManagers = "clinic_admin,admin"
	clinicalStaff  = "doctor,receptionist,admin"
	prescribers    = "doctor,admin"
	frontDesk      = "doctor,receptionist,admin"
	completers     = "doctor,clinic_admin,admin"
)

// New builds the gin engine with the JSON API under /api and the server rendered pages
func New(cfg *config.Config, svc *service.Services, logger zerolog.Logger) (*gin.Engine, error) {
	utils.SetupValidator()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS(cfg))

	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	secure := cfg.Server.SecureCookie
	authHandler := handler.NewAuthHandler(svc.Auth, secure)
	clinicHandler := handler.NewClinicHandler(svc.Clinics)
	catalogHandler := handler.NewCatalogHandler(svc.Catalog)
	doctorHandler := handler.NewDoctorHandler(svc.Doctors)
	scheduleHandler := handler.NewScheduleHandler(svc.Schedules)
	reviewHandler := handler.NewReviewHandler(svc.Reviews)
	patientHandler := handler.NewPatientHandler(svc.Patients, svc.Prescriptions)
	appointmentHandler := handler.NewAppointmentHandler(svc.Appointments)
	prescriptionHandler := handler.NewPrescriptionHandler(svc.Prescriptions)
	dashboardHandler := handler.NewDashboardHandler(svc.Dashboard)
	pageHandler := handler.NewPageHandler(svc.Auth, svc.Clinics, svc.Patients, svc.Prescriptions, svc.Appointments, svc.Dashboard, secure)

	r.GET("/health", func(c *gin.Context) {
		utils.SuccessResponse(c, gin.H{
			"status":  "healthy",
			"service": "clinic-management-backend",
		})
	})

	api := r.Group("/api")

	// Public
	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)
	api.POST("/refresh", authHandler.Refresh)
	api.POST("/logout", authHandler.Logout)

	api.GET("/clinics", clinicHandler.List)
	api.GET("/clinics/nearby", clinicHandler.Nearby)
	api.GET("/clinics/:id", clinicHandler.Get)
	api.GET("/clinics/:id/doctors", clinicHandler.Doctors)
	api.GET("/clinics/:id/schedule", clinicHandler.Schedule)
	api.GET("/clinics/:id/reviews", clinicHandler.Reviews)
	api.GET("/services", catalogHandler.ListServices)
	api.GET("/doctors", doctorHandler.List)
	api.GET("/doctors/:id", doctorHandler.Get)
	api.GET("/schedules", scheduleHandler.List)
	api.GET("/schedules/:id", scheduleHandler.Get)
	api.GET("/reviews", reviewHandler.List)
	api.GET("/reviews/:id", reviewHandler.Get)

	// Authenticated
	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware())
	{
		authed.GET("/user", authHandler.Me)
		authed.GET("/activity/recent", dashboardHandler.RecentActivity)
		authed.GET("/dashboard/doctor", dashboardHandler.Doctor)
		authed.GET("/dashboard/patient", dashboardHandler.Patient)
		authed.GET("/dashboard/clinic", middleware.RequireRoles("clinic_admin"), dashboardHandler.Clinic)

		authed.POST("/clinics", middleware.RequireRoles(clinicManagers), clinicHandler.Create)
		authed.PUT("/clinics/:id", middleware.RequireRoles(clinicManagers), clinicHandler.Update)
		authed.DELETE("/clinics/:id", middleware.RequireRoles(clinicManagers), clinicHandler.Delete)
		authed.POST("/services", middleware.RequireRoles(clinicManagers), catalogHandler.CreateService)

		authed.POST("/doctors", middleware.RequireRoles(clinicManagers), doctorHandler.Create)
		authed.PUT("/doctors/:id", middleware.RequireRoles(clinicManagers), doctorHandler.Update)
		authed.DELETE("/doctors/:id", middleware.RequireRoles(clinicManagers), doctorHandler.Delete)

		authed.POST("/schedules", middleware.RequireRoles(clinicManagers), scheduleHandler.Create)
		authed.PUT("/schedules/:id", middleware.RequireRoles(clinicManagers), scheduleHandler.Update)
		authed.DELETE("/schedules/:id", middleware.RequireRoles(clinicManagers), scheduleHandler.Delete)

		authed.POST("/reviews", reviewHandler.Create)
		authed.PUT("/reviews/:id", middleware.RequireRoles(clinicManagers), reviewHandler.Update)
		authed.DELETE("/reviews/:id", middleware.RequireRoles(clinicManagers), reviewHandler.Delete)

		patients := authed.Group("/patients")
		patients.Use(middleware.RequireRoles(clinicalStaff))
		{
			patients.GET("", patientHandler.List)
			patients.GET("/search", patientHandler.Search)
			patients.GET("/total", patientHandler.Total)
			patients.POST("", patientHandler.Create)
			patients.GET("/:id", patientHandler.Get)
			patients.PUT("/:id", patientHandler.Update)
			patients.DELETE("/:id", patientHandler.Delete)
			patients.GET("/:id/prescriptions", middleware.RequireRoles(prescribers), patientHandler.Prescriptions)
		}

		appointments := authed.Group("/appointments")
		{
			appointments.GET("", appointmentHandler.List)
			appointments.POST("", appointmentHandler.Create)
			appointments.GET("/next", appointmentHandler.Next)
			appointments.GET("/upcoming/:patientId", appointmentHandler.Upcoming)
			appointments.POST("/checkin/:id", middleware.RequireRoles(frontDesk), appointmentHandler.CheckIn)
			appointments.GET("/:id", appointmentHandler.Get)
			appointments.PUT("/:id", appointmentHandler.Update)
			appointments.DELETE("/:id", appointmentHandler.Delete)
			appointments.POST("/:id/confirm", middleware.RequireRoles(clinicManagers), appointmentHandler.Confirm)
			appointments.POST("/:id/cancel", middleware.RequireRoles(clinicManagers), appointmentHandler.Cancel)
			appointments.POST("/:id/complete", middleware.RequireRoles(completers), appointmentHandler.Complete)
		}
		authed.GET("/clinic/appointments", middleware.RequireRoles("clinic_admin"), appointmentHandler.ClinicAppointments)
		authed.GET("/doctor/appointments", middleware.RequireRoles(clinicalStaff), appointmentHandler.DoctorAppointments)

		authed.GET("/medications", middleware.RequireRoles(prescribers), catalogHandler.ListMedications)
		authed.POST("/medications", middleware.RequireRoles(prescribers), catalogHandler.CreateMedication)
		prescriptions := authed.Group("/prescriptions")
		prescriptions.Use(middleware.RequireRoles(prescribers))
		{
			prescriptions.POST("", prescriptionHandler.Create)
			prescriptions.GET("/:id", prescriptionHandler.Get)
			prescriptions.PUT("/:id", prescriptionHandler.Update)
			prescriptions.DELETE("/:id", prescriptionHandler.Delete)
		}
	}

	// Pages
	r.GET("/", pageHandler.Home)
	r.GET("/login", pageHandler.LoginForm)
	r.POST("/login", pageHandler.Login)
	r.POST("/logout", pageHandler.Logout)

	pages := r.Group("")
	pages.Use(middleware.PageAuth())
	{
		pages.GET("/dashboard", pageHandler.Dashboard)
		pages.GET("/patients", middleware.RequireRoles(clinicalStaff), pageHandler.Patients)
		pages.GET("/patients/:id/record", middleware.RequireRoles(clinicalStaff), pageHandler.PatientRecord)
		pages.GET("/doctor/appointments-view", middleware.RequireRoles(clinicalStaff), pageHandler.DoctorAppointments)
	}

	r.NoRoute(func(c *gin.Context) {
		utils.ErrorResponse(c, http.StatusNotFound, "Not found")
	})

	return r, nil
}
