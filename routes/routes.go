package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"voyago/handlers"
)

// RegisterRentalRoutes sets up the endpoints for the booking wizard.
func RegisterRentalRoutes(r *gin.Engine, rentalHandler *handlers.RentalHandler) {
	api := r.Group("/api/rental")
	{
		api.GET("/locations", rentalHandler.GetLocations)

		api.POST("/session", rentalHandler.StartSession)
		api.GET("/session/:sessionID", rentalHandler.GetSession)
		api.DELETE("/session/:sessionID", rentalHandler.CancelSession)
		api.POST("/session/:sessionID/reset", rentalHandler.ResetSession)

		api.PUT("/session/:sessionID/vehicle", rentalHandler.SetVehicle)
		api.PUT("/session/:sessionID/dates", rentalHandler.SetDates)
		api.PUT("/session/:sessionID/options", rentalHandler.SetOptions)
		api.PUT("/session/:sessionID/insurance", rentalHandler.SetInsurance)
		api.PUT("/session/:sessionID/driver", rentalHandler.SetDriver)

		api.POST("/session/:sessionID/next", rentalHandler.NextStep)
		api.POST("/session/:sessionID/previous", rentalHandler.PreviousStep)

		api.GET("/session/:sessionID/pricing", rentalHandler.GetPricing)
		api.POST("/session/:sessionID/pricing/recalculate", rentalHandler.RecalculatePricing)

		api.POST("/session/:sessionID/confirm", rentalHandler.ConfirmBooking)
	}
}

// RegisterVehicleRoutes sets up the vehicle catalog endpoints.
func RegisterVehicleRoutes(r *gin.Engine, vehicleHandler *handlers.VehicleHandler) {
	api := r.Group("/api/vehicles")
	{
		api.GET("", vehicleHandler.ListVehicles)
		api.GET("/:id", vehicleHandler.GetVehicleByID)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Voyago"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, rentalHandler *handlers.RentalHandler, vehicleHandler *handlers.VehicleHandler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterVehicleRoutes(r, vehicleHandler)
	RegisterRentalRoutes(r, rentalHandler)
}
