package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gustavopprado/sistema-reservas/internal/container"
	"github.com/gustavopprado/sistema-reservas/internal/handlers"
	"github.com/gustavopprado/sistema-reservas/internal/middleware"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(c *container.Container) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{c.Config.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(c.Logger))
	r.Use(middleware.ErrorHandler(c.Logger))
	r.Use(gin.Recovery())
	r.Use(middleware.Identity(c.Config.IdentityJWKSURL, c.Logger))

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(200, gin.H{
			"status":  "OK",
			"service": "sistema-reservas",
		})
	})

	r.GET("/rooms", handlers.ListRooms(c.RoomService))

	bookingRoutes := r.Group("/bookings")
	{
		bookingRoutes.POST("", handlers.CreateBooking(c.BookingService))
		bookingRoutes.GET("/search", handlers.SearchBookings(c.BookingService))
		bookingRoutes.PUT("/:id", handlers.EditBooking(c.BookingService))
		bookingRoutes.DELETE("/:id", handlers.CancelBooking(c.BookingService))
	}

	r.GET("/my-bookings", handlers.MyBookings(c.BookingService))

	return r
}
