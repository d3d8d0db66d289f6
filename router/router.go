package router

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rcsmith8/starter-restaurant-reservation/controllers"
	"github.com/rcsmith8/starter-restaurant-reservation/dashboard"
	"github.com/rcsmith8/starter-restaurant-reservation/middlewares"
	"github.com/rcsmith8/starter-restaurant-reservation/models"
	"github.com/rcsmith8/starter-restaurant-reservation/repository"
	"github.com/rcsmith8/starter-restaurant-reservation/services"
	"github.com/rcsmith8/starter-restaurant-reservation/utils"
	"github.com/rcsmith8/starter-restaurant-reservation/validation"
	"gorm.io/gorm"
)

type Options struct {
	// Clock decides "today" and what is in the past. Defaults to UTC wall time.
	Clock          validation.Clock
	AllowedOrigins []string

	// Per-IP limits; zero disables the limiter.
	RateLimit     int
	RateWindow    time.Duration
	AuthRateLimit int

	// Hub receives dashboard websocket clients. One is created when nil.
	Hub *dashboard.Hub
}

func SetupRouter(db *gorm.DB, opts Options) *gin.Engine {
	if opts.Clock == nil {
		opts.Clock = validation.SystemClock{Location: time.UTC}
	}
	if opts.Hub == nil {
		opts.Hub = dashboard.NewHub(utils.InfoLogger)
	}

	r := gin.New()
	r.HandleMethodNotAllowed = false

	r.Use(middlewares.RequestID())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		utils.RespondError(c, fmt.Errorf("panic: %v", recovered))
	}))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares(opts.AllowedOrigins))
	if opts.RateLimit > 0 {
		r.Use(middlewares.NewRateLimiter(opts.RateLimit, opts.RateWindow).RateLimit())
	}

	reservationRepo := repository.NewReservationRepository(db)
	tableRepo := repository.NewTableRepository(db)
	userRepo := repository.NewUserRepository(db)

	reservationCtrl := controllers.NewReservationController(
		services.NewReservationService(reservationRepo, tableRepo, opts.Clock, utils.InfoLogger))
	tableCtrl := controllers.NewTableController(
		services.NewTableService(tableRepo, reservationRepo, utils.InfoLogger))
	userCtrl := controllers.NewUserController(services.NewUserService(userRepo, utils.InfoLogger))
	adminCtrl := controllers.NewAdminController(services.NewStatsService(reservationRepo, tableRepo, opts.Clock))
	dashboardCtrl := controllers.NewDashboardController(opts.Hub, opts.AllowedOrigins)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	reservations := r.Group("/reservations")
	{
		reservations.GET("", reservationCtrl.ListReservations)
		reservations.POST("", reservationCtrl.CreateReservation)
		reservations.GET("/:reservation_id", reservationCtrl.GetReservation)
		reservations.PUT("/:reservation_id", reservationCtrl.UpdateReservation)
		reservations.PUT("/:reservation_id/status", reservationCtrl.UpdateReservationStatus)
	}

	tables := r.Group("/tables")
	{
		tables.GET("", tableCtrl.GetAllTables)
		tables.POST("", tableCtrl.CreateTable)
		tables.PUT("/:table_id/seat", tableCtrl.SeatTable)
		tables.DELETE("/:table_id/seat", tableCtrl.FinishTable)
	}

	// Login and registration get a stricter limit of their own.
	public := r.Group("/")
	if opts.AuthRateLimit > 0 {
		public.Use(middlewares.NewRateLimiter(opts.AuthRateLimit, time.Minute).RateLimit())
	}
	{
		public.POST("/register", middlewares.OptionalAuth(), userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/admin")
	auth.Use(middlewares.AuthMiddleware(), middlewares.RequireRole(models.RoleAdmin, models.RoleStaff))
	{
		auth.GET("/profile", userCtrl.GetProfile)
		auth.GET("/dashboard/stats", adminCtrl.GetDashboardStats)
		auth.DELETE("/tables/:table_id", tableCtrl.DeleteTable)
	}

	wsGroup := r.Group("/ws")
	wsGroup.Use(middlewares.WebSocketAuthMiddleware())
	{
		wsGroup.GET("/dashboard", dashboardCtrl.Connect)
	}

	r.NoRoute(func(c *gin.Context) {
		utils.RespondStatus(c, http.StatusNotFound, "Path not found: "+c.Request.URL.Path)
	})

	return r
}
