package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/LocalServicesHQ/marketplace-api/internal/audit"
	"github.com/LocalServicesHQ/marketplace-api/internal/cache"
	"github.com/LocalServicesHQ/marketplace-api/internal/config"
	"github.com/LocalServicesHQ/marketplace-api/internal/handlers"
	infraRepo "github.com/LocalServicesHQ/marketplace-api/internal/infra/repository"
	"github.com/LocalServicesHQ/marketplace-api/internal/middleware"
	"github.com/LocalServicesHQ/marketplace-api/internal/models"
	ucBooking "github.com/LocalServicesHQ/marketplace-api/internal/usecase/booking"
	ucCatalog "github.com/LocalServicesHQ/marketplace-api/internal/usecase/catalog"
	ucFeedback "github.com/LocalServicesHQ/marketplace-api/internal/usecase/feedback"
	ucProfile "github.com/LocalServicesHQ/marketplace-api/internal/usecase/profile"
	ucStats "github.com/LocalServicesHQ/marketplace-api/internal/usecase/stats"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, store cache.Store, cfg *config.Config) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// USE CASES
	// ======================================================
	createBookingUC := ucBooking.NewCreateBooking(bookingRepo, auditDispatcher, store)
	updateStatusUC := ucBooking.NewUpdateStatus(bookingRepo, auditDispatcher, store)
	listBookingsUC := ucBooking.NewListBookings(bookingRepo, store)

	submitFeedbackUC := ucFeedback.NewSubmitFeedback(bookingRepo, auditDispatcher, store)
	listFeedbackUC := ucFeedback.NewListFeedback(bookingRepo, store)

	createServiceUC := ucCatalog.NewCreateService(db, auditDispatcher, store)
	deactivateServiceUC := ucCatalog.NewDeactivateService(db, auditDispatcher, store)
	listServicesUC := ucCatalog.NewListServices(db, store)

	resolveIdentityUC := ucProfile.NewResolveIdentity(db)
	updateProfileUC := ucProfile.NewUpdateProfile(db, auditDispatcher, store)

	dashboardStatsUC := ucStats.NewDashboardStats(db, store)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(resolveIdentityUC, updateProfileUC)
	serviceHandler := handlers.NewServiceHandler(createServiceUC, deactivateServiceUC, listServicesUC)
	discoverHandler := handlers.NewDiscoverHandler(db, listServicesUC)
	bookingHandler := handlers.NewBookingHandler(createBookingUC, updateStatusUC, listBookingsUC)
	feedbackHandler := handlers.NewFeedbackHandler(submitFeedbackUC, listFeedbackUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)
	statsHandler := handlers.NewStatsHandler(dashboardStatsUC)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		api.GET("/services", discoverHandler.ListServices)
		api.GET("/providers/:id", discoverHandler.GetProvider)
		api.GET("/providers/:id/feedbacks", feedbackHandler.ListForProvider)

		// ------------------------------
		// SECURED
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.PATCH("/me", meHandler.UpdateMe)

			secured.GET("/me/bookings", bookingHandler.ListMine)
			secured.GET("/me/stats", statsHandler.GetMine)
			secured.GET("/me/audit-logs", auditLogsHandler.List)

			// ------------------------------
			// PROVIDER
			// ------------------------------
			provider := secured.Group("/")
			provider.Use(middleware.RequireRole(models.UserTypeProvider))
			{
				provider.POST("/me/services", serviceHandler.Create)
				provider.GET("/me/services", serviceHandler.ListMine)
				provider.PATCH("/me/services/:id/deactivate", serviceHandler.Deactivate)

				provider.GET("/me/feedbacks", feedbackHandler.ListMine)
			}

			// ------------------------------
			// CUSTOMER
			// ------------------------------
			customer := secured.Group("/")
			customer.Use(middleware.RequireRole(models.UserTypeCustomer))
			{
				customer.POST("/bookings", bookingHandler.Create)
				customer.POST("/bookings/:id/feedback", feedbackHandler.Submit)
			}

			// Accept / reject / complete — ownership is enforced in the
			// use case, providers and customers both land here.
			secured.PATCH("/bookings/:id/status", bookingHandler.UpdateStatus)
		}
	}
}
