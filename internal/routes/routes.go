package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/saloonhq/saloon-backend/internal/audit"
	"github.com/saloonhq/saloon-backend/internal/cache"
	"github.com/saloonhq/saloon-backend/internal/config"
	"github.com/saloonhq/saloon-backend/internal/handlers"
	infraRepo "github.com/saloonhq/saloon-backend/internal/infra/repository"
	"github.com/saloonhq/saloon-backend/internal/middleware"
	ucAffiliation "github.com/saloonhq/saloon-backend/internal/usecase/affiliation"
	ucBooking "github.com/saloonhq/saloon-backend/internal/usecase/booking"
	ucSalon "github.com/saloonhq/saloon-backend/internal/usecase/salon"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)
	affiliationRepo := infraRepo.NewAffiliationGormRepository(db)
	salonRepo := infraRepo.NewSalonGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	redisClient := cache.NewRedisClient(cfg.RedisAddr)
	salonCache := cache.NewSalonCache(salonRepo, redisClient, cfg.SalonCacheTTL)

	// ======================================================
	// USE CASES
	// ======================================================
	createBookingUC := ucBooking.NewCreateBooking(bookingRepo, auditDispatcher)
	selfAssignUC := ucBooking.NewSelfAssignBooking(bookingRepo, auditDispatcher)
	updateStatusUC := ucBooking.NewUpdateBookingStatus(bookingRepo, auditDispatcher)
	cancelBookingUC := ucBooking.NewCancelBooking(bookingRepo, auditDispatcher)

	sendJoinRequestUC := ucAffiliation.NewSendJoinRequest(affiliationRepo, auditDispatcher)
	approveJoinRequestUC := ucAffiliation.NewApproveJoinRequest(affiliationRepo, auditDispatcher)
	rejectJoinRequestUC := ucAffiliation.NewRejectJoinRequest(affiliationRepo, auditDispatcher)

	nearbySalonsUC := ucSalon.NewNearbySalons(salonCache)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	salonHandler := handlers.NewSalonHandler(db, salonCache, nearbySalonsUC)
	serviceHandler := handlers.NewServiceHandler(db)
	barberHandler := handlers.NewBarberHandler(db, sendJoinRequestUC, approveJoinRequestUC, rejectJoinRequestUC)
	bookingHandler := handlers.NewBookingHandler(db, createBookingUC, selfAssignUC, updateStatusUC, cancelBookingUC)
	paymentHandler := handlers.NewPaymentHandler(db)
	reviewHandler := handlers.NewReviewHandler(db, salonCache)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register/", authHandler.Register)
		api.POST("/auth/login/", authHandler.Login)
		api.POST("/auth/token/refresh/", authHandler.Refresh)

		// ------------------------------
		// PUBLIC READS (wider when authenticated)
		// ------------------------------
		public := api.Group("/")
		public.Use(middleware.OptionalAuth(cfg))
		{
			public.GET("/salons/", salonHandler.List)
			public.GET("/salons/nearby/", salonHandler.Nearby)
			public.GET("/salons/:id/", salonHandler.Get)

			public.GET("/services/", serviceHandler.List)
			public.GET("/services/:id/", serviceHandler.Get)

			public.GET("/barbers/", barberHandler.List)
			public.GET("/barbers/:id/", barberHandler.Get)

			public.GET("/reviews/", reviewHandler.List)
		}

		// ------------------------------
		// PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/auth/profile/", authHandler.GetProfile)
			secured.PUT("/auth/profile/", authHandler.UpdateProfile)
			secured.POST("/auth/change-password/", authHandler.ChangePassword)

			secured.POST("/salons/", salonHandler.Create)
			secured.PUT("/salons/:id/", salonHandler.Update)
			secured.PATCH("/salons/:id/", salonHandler.Update)
			secured.DELETE("/salons/:id/", salonHandler.Delete)

			secured.POST("/services/", serviceHandler.Create)
			secured.PUT("/services/:id/", serviceHandler.Update)
			secured.PATCH("/services/:id/", serviceHandler.Update)
			secured.DELETE("/services/:id/", serviceHandler.Delete)

			secured.PATCH("/barbers/me/", barberHandler.UpdateMe)
			secured.POST("/barbers/join-request/:salon_id/", barberHandler.SendJoinRequest)
			secured.GET("/barbers/join-requests/", barberHandler.ListJoinRequests)
			secured.POST("/barbers/approve-request/:request_id/", barberHandler.ApproveJoinRequest)
			secured.POST("/barbers/reject-request/:request_id/", barberHandler.RejectJoinRequest)

			secured.GET("/bookings/", bookingHandler.List)
			secured.POST("/bookings/", bookingHandler.Create)
			secured.GET("/bookings/:id/", bookingHandler.Get)
			secured.PATCH("/bookings/:id/", bookingHandler.Patch)
			secured.POST("/bookings/:id/cancel/", bookingHandler.Cancel)
			secured.POST("/bookings/:id/complete/", bookingHandler.Complete)

			secured.GET("/payments/", paymentHandler.List)
			secured.POST("/payments/", paymentHandler.Create)
			secured.POST("/payments/:id/confirm/", paymentHandler.Confirm)

			secured.POST("/reviews/", reviewHandler.Create)
		}
	}
}
