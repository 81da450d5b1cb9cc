package router

import (
	"github.com/gin-gonic/gin"

	"github.com/govdesk/front-office-api/internal/handler"
	"github.com/govdesk/front-office-api/internal/middleware"
	"github.com/govdesk/front-office-api/internal/models"
	"github.com/govdesk/front-office-api/internal/repository"
	"github.com/govdesk/front-office-api/internal/service"
)

// Dependencies carries everything the route tree needs.
type Dependencies struct {
	Auth        *handler.AuthHandler
	Appointment *handler.AppointmentHandler
	Nature      *handler.NatureHandler
	Client      *handler.ClientHandler
	Personnel   *handler.PersonnelHandler
	Attachment  *handler.AttachmentHandler
	Dashboard   *handler.DashboardHandler

	AuthService *service.AuthService
	Metrics     *service.MetricsService
	Users       *repository.UserRepository
}

// Setup mounts the API route tree on the engine under prefix.
func Setup(r *gin.Engine, prefix string, deps Dependencies) {
	api := r.Group(prefix)
	api.Use(middleware.Metrics(deps.Metrics))

	// Public routes. Downloads authenticate with a signed token instead of a
	// session so links can be handed to clients.
	api.POST("/auth/register", deps.Auth.Register)
	api.POST("/auth/login", deps.Auth.Login)
	api.POST("/auth/refresh", deps.Auth.Refresh)
	api.GET("/attachments/download", deps.Attachment.Download)
	api.GET("/reports/download", deps.Dashboard.DownloadReport)

	private := api.Group("")
	private.Use(middleware.JWT(deps.AuthService))

	auth := private.Group("/auth")
	{
		auth.POST("/logout", deps.Auth.Logout)
		auth.POST("/password", deps.Auth.ChangePassword)
		auth.GET("/me", deps.Auth.Me)
	}

	appointments := private.Group("/appointments")
	{
		appointments.POST("",
			middleware.Audit(deps.Users, models.AuditActionAppointmentCreate, "appointments"),
			deps.Appointment.Propose)
		appointments.GET("", deps.Appointment.List)
		appointments.GET("/:id", deps.Appointment.Get)
		appointments.POST("/:id/cancel",
			middleware.Audit(deps.Users, models.AuditActionAppointmentUpdate, "appointments"),
			deps.Appointment.Cancel)
		appointments.POST("/:id/feedback",
			middleware.Audit(deps.Users, models.AuditActionFeedbackSubmit, "appointments"),
			deps.Appointment.SubmitFeedback)

		appointments.GET("/:id/attachments", deps.Attachment.List)
		appointments.POST("/:id/attachments",
			middleware.Audit(deps.Users, models.AuditActionAttachmentUpload, "attachments"),
			deps.Attachment.Upload)

		// Triage decisions stay with the office.
		staff := appointments.Group("")
		staff.Use(middleware.RequireRoles(models.RoleAdmin, models.RoleStaff))
		staff.Use(middleware.Audit(deps.Users, models.AuditActionAppointmentUpdate, "appointments"))
		{
			staff.POST("/:id/confirm", deps.Appointment.Confirm)
			staff.POST("/:id/complete", deps.Appointment.Complete)
			staff.POST("/:id/reassign", deps.Appointment.Reassign)
			staff.PATCH("/:id/date", deps.Appointment.UpdateDate)
			staff.PATCH("/:id/notes", deps.Appointment.UpdateNotes)
		}

		appointments.DELETE("/:id",
			middleware.RequireRoles(models.RoleAdmin),
			middleware.Audit(deps.Users, models.AuditActionAppointmentDelete, "appointments"),
			deps.Appointment.Delete)
	}

	attachments := private.Group("/attachments")
	{
		attachments.GET("/:id/download-url",
			middleware.Audit(deps.Users, models.AuditActionAttachmentDownload, "attachments"),
			deps.Attachment.DownloadURL)
		attachments.DELETE("/:id",
			middleware.RequireRoles(models.RoleAdmin, models.RoleStaff),
			deps.Attachment.Delete)
	}

	natures := private.Group("/natures")
	{
		natures.GET("", deps.Nature.List)
		natures.GET("/:id", deps.Nature.Get)

		admin := natures.Group("")
		admin.Use(middleware.RequireRoles(models.RoleAdmin))
		{
			admin.POST("", middleware.Audit(deps.Users, models.AuditActionNatureCreate, "natures"), deps.Nature.Create)
			admin.PUT("/:id", middleware.Audit(deps.Users, models.AuditActionNatureUpdate, "natures"), deps.Nature.Update)
			admin.DELETE("/:id", middleware.Audit(deps.Users, models.AuditActionNatureUpdate, "natures"), deps.Nature.Delete)
		}
	}

	clients := private.Group("/clients")
	clients.Use(middleware.RequireRoles(models.RoleAdmin, models.RoleStaff))
	{
		clients.GET("", deps.Client.List)
		clients.GET("/:id", deps.Client.Get)
		clients.POST("", middleware.Audit(deps.Users, models.AuditActionClientCreate, "clients"), deps.Client.Create)
		clients.PUT("/:id", middleware.Audit(deps.Users, models.AuditActionClientUpdate, "clients"), deps.Client.Update)
		clients.DELETE("/:id", middleware.Audit(deps.Users, models.AuditActionClientUpdate, "clients"), deps.Client.Deactivate)
	}

	personnel := private.Group("/personnel")
	{
		personnel.GET("", middleware.RequireRoles(models.RoleAdmin, models.RoleStaff), deps.Personnel.List)
		personnel.GET("/:id", middleware.RequireRoles(models.RoleAdmin, models.RoleStaff), deps.Personnel.Get)

		admin := personnel.Group("")
		admin.Use(middleware.RequireRoles(models.RoleAdmin))
		{
			admin.POST("", middleware.Audit(deps.Users, models.AuditActionPersonnelCreate, "personnel"), deps.Personnel.Create)
			admin.PUT("/:id", middleware.Audit(deps.Users, models.AuditActionPersonnelUpdate, "personnel"), deps.Personnel.Update)
			admin.DELETE("/:id", middleware.Audit(deps.Users, models.AuditActionPersonnelUpdate, "personnel"), deps.Personnel.Deactivate)
		}
	}

	dashboard := private.Group("")
	dashboard.Use(middleware.RequireRoles(models.RoleAdmin, models.RoleStaff))
	{
		dashboard.GET("/dashboard/stats", deps.Dashboard.Stats)
		dashboard.POST("/reports/appointments", deps.Dashboard.GenerateReport)
	}
}
