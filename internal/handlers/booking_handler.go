package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gustavopprado/sistema-reservas/internal/helpers"
	"github.com/gustavopprado/sistema-reservas/internal/middleware"
	"github.com/gustavopprado/sistema-reservas/internal/models"
	"github.com/gustavopprado/sistema-reservas/internal/services"
)

func CreateBooking(bs *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.CreateBookingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("invalid request body"))
			return
		}
		req.UserEmail = requesterEmail(c, req.UserEmail)

		booking, calendarLink, err := bs.CreateBooking(c.Request.Context(), &req)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, helpers.SuccessResponse(gin.H{
			"booking":      booking,
			"calendarLink": calendarLink,
		}, "Room booked successfully"))
	}
}

func SearchBookings(bs *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		date := c.Query("date")
		roomID := c.Query("roomId")

		bookings, err := bs.SearchBookings(c.Request.Context(), date, roomID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, bookings)
	}
}

func MyBookings(bs *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userEmail := requesterEmail(c, c.Query("userEmail"))

		bookings, err := bs.MyBookings(c.Request.Context(), userEmail)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, bookings)
	}
}

func EditBooking(bs *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if id == "" {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("booking ID is required"))
			return
		}

		var req models.EditBookingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("invalid request body"))
			return
		}
		req.UserEmail = requesterEmail(c, req.UserEmail)

		booking, err := bs.EditBooking(c.Request.Context(), id, &req)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, helpers.SuccessResponse(booking, "Booking updated successfully"))
	}
}

func CancelBooking(bs *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if id == "" {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("booking ID is required"))
			return
		}

		var req models.CancelBookingRequest
		// Body is optional when the identity middleware already verified the
		// requester.
		_ = c.ShouldBindJSON(&req)
		userEmail := requesterEmail(c, req.UserEmail)

		if err := bs.CancelBooking(c.Request.Context(), id, userEmail); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, helpers.SuccessResponse(nil, "Booking cancelled"))
	}
}

// requesterEmail prefers the identity-middleware-verified email over the
// client-supplied value. Without the middleware the fallback is trusted
// as-is.
func requesterEmail(c *gin.Context, fallback string) string {
	if verified, ok := c.Get(middleware.VerifiedEmailKey); ok {
		if email, ok := verified.(string); ok && email != "" {
			return email
		}
	}
	return fallback
}

// respondError maps domain errors to their status with the short message the
// client shows inline; everything else becomes a generic 500 with the detail
// logged server-side only.
func respondError(c *gin.Context, err error) {
	if helpers.IsDomainError(err) {
		c.JSON(helpers.StatusForError(err), helpers.ErrorResponse(err.Error()))
		return
	}
	c.Error(err)
	c.JSON(http.StatusInternalServerError, helpers.ErrorResponse("internal server error"))
}
