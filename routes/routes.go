package routes

import (
	"tidymove/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the booking lifecycle endpoints onto the router.
func RegisterRoutes(router *gin.Engine, bookingHandler *handlers.BookingHandler, webhookHandler *handlers.PaymentWebhookHandler) {
	api := router.Group("/api/v1")
	{
		bookings := api.Group("/bookings")
		{
			bookings.GET("", bookingHandler.SearchBookings)
			bookings.GET("/count", bookingHandler.CountBookings)
			bookings.GET("/:id", bookingHandler.GetBookingByID)
			bookings.PATCH("/:id", bookingHandler.UpdateBooking)
			bookings.POST("/:id/cancel", bookingHandler.CancelBooking)
			bookings.DELETE("/:id", bookingHandler.DeleteBooking)
		}

		customers := api.Group("/customers")
		{
			customers.GET("/:id/bookings", bookingHandler.GetCustomerBookings)
			customers.GET("/:id/bookings/stats", bookingHandler.GetCustomerStats)
		}

		professionals := api.Group("/professionals")
		{
			professionals.GET("/:id/bookings", bookingHandler.GetProfessionalBookings)
			professionals.GET("/:id/bookings/stats", bookingHandler.GetProfessionalStats)
		}
	}

	router.POST("/webhooks/stripe", webhookHandler.HandleStripeEvent)
}
