package router

import (
	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-floor/config"
	"github.com/yeremiapane/restaurant-floor/controllers"
	"github.com/yeremiapane/restaurant-floor/middlewares"
	"github.com/yeremiapane/restaurant-floor/models"
	"github.com/yeremiapane/restaurant-floor/services"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB, floor *services.Floor, cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).RateLimit())

	userCtrl := controllers.NewUserController(db)
	tableCtrl := controllers.NewTableController(floor)
	reservationCtrl := controllers.NewReservationController(floor)
	cleanLogCtrl := controllers.NewCleaningLogController(floor)
	adminCtrl := controllers.NewAdminController(floor)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	r.POST("/login", middlewares.NewStrictRateLimiter().RateLimit(), userCtrl.Login)

	// booking intake, no login
	r.POST("/reservations", reservationCtrl.CreateReservation)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/admin")
	auth.Use(middlewares.AuthMiddleware())

	adminOnly := middlewares.RoleCheck(models.RoleAdmin)
	floorStaff := middlewares.RoleCheck(models.RoleAdmin, models.RoleStaff)

	auth.GET("/profile", userCtrl.GetProfile)
	auth.POST("/users", adminOnly, userCtrl.Register)

	// TABLES
	auth.GET("/tables", tableCtrl.GetAllTables)
	auth.POST("/tables", adminOnly, tableCtrl.CreateTable)
	auth.GET("/tables/stats", tableCtrl.GetTableStats)
	auth.GET("/tables/:table_id", tableCtrl.GetTableByID)
	auth.DELETE("/tables/:table_id", adminOnly, tableCtrl.DeleteTable)
	auth.POST("/tables/:table_id/transition", tableCtrl.TransitionTable)
	auth.PATCH("/tables/:table_id/server", floorStaff, tableCtrl.AssignServer)

	// RESERVATIONS
	auth.GET("/reservations", floorStaff, reservationCtrl.GetAllReservations)
	auth.GET("/reservations/stats", floorStaff, reservationCtrl.GetReservationStats)
	auth.GET("/reservations/:id", floorStaff, reservationCtrl.GetReservationByID)
	auth.PATCH("/reservations/:id", floorStaff, reservationCtrl.UpdateReservation)
	auth.DELETE("/reservations/:id", adminOnly, reservationCtrl.DeleteReservation)
	auth.POST("/reservations/:id/confirm", floorStaff, reservationCtrl.ConfirmReservation)
	auth.POST("/reservations/:id/complete", floorStaff, reservationCtrl.CompleteReservation)
	auth.POST("/reservations/:id/cancel", floorStaff, reservationCtrl.CancelReservation)
	auth.POST("/reservations/:id/assign", floorStaff, reservationCtrl.AssignTable)
	auth.POST("/reservations/:id/release", floorStaff, reservationCtrl.ReleaseTable)
	auth.POST("/reservations/:id/occupy", floorStaff, reservationCtrl.OccupyTable)

	// CLEANING LOGS (cleaner, staff, admin)
	auth.GET("/cleaning-logs", cleanLogCtrl.GetAllCleaningLogs)

	auth.GET("/dashboard/stats", floorStaff, adminCtrl.GetDashboardStats)

	return r
}
