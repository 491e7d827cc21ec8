package routes

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"local-services-server/database"
	"local-services-server/models"
)

// rateBooking records the customer's 1..5 rating for their booking. Rating
// is orthogonal to status: a freshly hired booking can be rated before the
// provider has decided it. Re-rating overwrites the previous value.
func rateBooking(c *gin.Context) {
	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID"})
		return
	}

	var booking models.Booking
	if err := database.DB.First(&booking, bookingID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch booking"})
		}
		return
	}

	if c.GetUint("user_id") != booking.CustomerID {
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "Access denied",
			"message": "You can only rate your own bookings",
		})
		return
	}

	var req models.BookingRate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid rating data",
			"message": err.Error(),
		})
		return
	}

	if req.Rating < 1 || req.Rating > 5 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid rating",
			"message": "Rating must be between 1 and 5",
		})
		return
	}

	if err := database.DB.Model(&booking).Update("rating", req.Rating).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save rating"})
		return
	}
	booking.Rating = req.Rating

	c.JSON(http.StatusOK, gin.H{
		"message": "Thank you for rating",
		"booking": booking,
	})
}
