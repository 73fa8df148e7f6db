package routes

import (
	"log"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/amaraspa/spa-scheduler/internal/audit"
	"github.com/amaraspa/spa-scheduler/internal/cache"
	"github.com/amaraspa/spa-scheduler/internal/config"
	"github.com/amaraspa/spa-scheduler/internal/handlers"
	infraRepo "github.com/amaraspa/spa-scheduler/internal/infra/repository"
	"github.com/amaraspa/spa-scheduler/internal/middleware"
	"github.com/amaraspa/spa-scheduler/internal/payments"
	"github.com/amaraspa/spa-scheduler/internal/storage"
	ucAppointment "github.com/amaraspa/spa-scheduler/internal/usecase/appointment"
	ucSettings "github.com/amaraspa/spa-scheduler/internal/usecase/settings"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	holds := cache.NewHoldStore(cfg.RedisAddr, cfg.RedisPassword)

	images := storage.NewImageStore(storage.S3Config{
		Region:    cfg.S3Region,
		Bucket:    cfg.S3Bucket,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		BaseURL:   cfg.S3BaseURL,
	})

	gateway, err := payments.NewGateway(cfg.MPAccessToken, cfg.PaymentSuccess, cfg.PaymentFailure)
	if err != nil {
		log.Printf("payment gateway disabled: %v", err)
	}

	// ======================================================
	// USE CASES
	// ======================================================
	createUC := ucAppointment.NewCreateAppointment(appointmentRepo, holds, auditDispatcher)
	rescheduleUC := ucAppointment.NewRescheduleAppointment(appointmentRepo, auditDispatcher)
	approveUC := ucAppointment.NewApproveAppointment(appointmentRepo, holds, auditDispatcher)
	cancelUC := ucAppointment.NewCancelAppointment(appointmentRepo, holds, auditDispatcher)
	completeUC := ucAppointment.NewCompleteAppointment(appointmentRepo, auditDispatcher)
	listUC := ucAppointment.NewListAppointments(appointmentRepo)

	getSettingsUC := ucSettings.NewGetSettings(appointmentRepo)
	updateSettingsUC := ucSettings.NewUpdateSettings(appointmentRepo, auditDispatcher)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	clientHandler := handlers.NewClientHandler(db, cfg)
	serviceHandler := handlers.NewServiceHandler(db, images)
	settingsHandler := handlers.NewSettingsHandler(getSettingsUC, updateSettingsUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		appointmentRepo,
		createUC,
		rescheduleUC,
		approveUC,
		cancelUC,
		completeUC,
		listUC,
	)

	paymentHandler := handlers.NewPaymentHandler(db, gateway, approveUC, cancelUC, completeUC)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.POST("/auth/admin/register", authHandler.Register)
		api.POST("/auth/admin/login", authHandler.Login)
		api.POST("/auth/register", clientHandler.Register)
		api.POST("/auth/login", clientHandler.Login)

		api.GET("/services", serviceHandler.List)
		api.GET("/services/:id", serviceHandler.Get)

		// gateway notifications carry no session
		api.POST("/payments/webhook", paymentHandler.Webhook)

		// ------------------------------
		// AUTHENTICATED
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments", appointmentHandler.List)
			secured.GET("/appointments/:id", appointmentHandler.Get)
			secured.GET("/appointments/client/:clientId", appointmentHandler.ListByClient)
			secured.PATCH("/appointments/:id/reschedule", appointmentHandler.Reschedule)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)

			secured.POST("/payments/online", paymentHandler.CreateOnline)
			secured.GET("/appointments/:id/payments", paymentHandler.ListByAppointment)

			// ------------------------------
			// ADMIN ONLY
			// ------------------------------
			admin := secured.Group("/")
			admin.Use(middleware.RequireAdmin())
			{
				admin.PATCH("/appointments/:id/approve", appointmentHandler.Approve)
				admin.PATCH("/appointments/:id/complete", appointmentHandler.Complete)

				admin.POST("/payments/cash", paymentHandler.CreateCash)

				admin.GET("/clients", clientHandler.List)
				admin.GET("/clients/:id", clientHandler.Get)
				admin.PATCH("/clients/:id/status", clientHandler.UpdateStatus)
				admin.DELETE("/clients/:id", clientHandler.Delete)

				admin.POST("/services", serviceHandler.Create)
				admin.PATCH("/services/:id", serviceHandler.Update)
				admin.POST("/services/:id/image", serviceHandler.UploadImage)
				admin.DELETE("/services/:id", serviceHandler.Delete)

				admin.GET("/settings", settingsHandler.Get)
				admin.PUT("/settings", settingsHandler.Update)

				admin.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
