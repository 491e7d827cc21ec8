package routes

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"local-services-server/database"
	"local-services-server/models"
	ws "local-services-server/websocket"
)

// bookService creates a Pending booking from the full intake form. The
// provider is captured from the service owner at creation time.
func bookService(c *gin.Context) {
	serviceID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid service ID"})
		return
	}

	var service models.Service
	if err := database.DB.First(&service, serviceID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch service"})
		}
		return
	}

	var req models.BookingCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid booking data",
			"message": err.Error(),
		})
		return
	}

	customerID := c.GetUint("user_id")

	booking := models.Booking{
		CustomerID:    customerID,
		ProviderID:    service.ProviderID,
		ServiceID:     service.ID,
		Status:        models.BookingStatusPending,
		CustomerName:  &req.CustomerName,
		Age:           &req.Age,
		Gender:        &req.Gender,
		Address:       &req.Address,
		Date:          &req.Date,
		Time:          &req.Time,
		PaymentMethod: &req.PaymentMethod,
	}

	if err := database.DB.Create(&booking).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create booking"})
		return
	}

	notifyBookingEvent(&booking, "booking_requested", service.ProviderID)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Booking request sent to provider",
		"booking": booking,
	})
}

// hireService is the one-click shortcut: it creates a booking directly in
// Hired status with no intake fields and points the customer at the rating
// step.
func hireService(c *gin.Context) {
	serviceID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid service ID"})
		return
	}

	var service models.Service
	if err := database.DB.First(&service, serviceID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch service"})
		}
		return
	}

	customerID := c.GetUint("user_id")

	booking := models.Booking{
		CustomerID: customerID,
		ProviderID: service.ProviderID,
		ServiceID:  service.ID,
		Status:     models.BookingStatusHired,
	}

	if err := database.DB.Create(&booking).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create booking"})
		return
	}

	notifyBookingEvent(&booking, "booking_hired", service.ProviderID)

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Service hired, chat is now enabled",
		"booking":  booking,
		"rate_url": "/api/v1/bookings/" + strconv.FormatUint(uint64(booking.ID), 10) + "/rate",
	})
}

// decideBooking returns a handler that applies the provider's accept or
// reject decision. Only the owning provider may decide, and decided
// bookings are terminal.
func decideBooking(action string) gin.HandlerFunc {
	return func(c *gin.Context) {
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

		if c.GetUint("user_id") != booking.ProviderID {
			c.JSON(http.StatusForbidden, gin.H{
				"error":   "Access denied",
				"message": "Only the booked provider can decide this booking",
			})
			return
		}

		if booking.Status.IsDecided() {
			c.JSON(http.StatusConflict, gin.H{
				"error":   "Booking already decided",
				"message": "This booking is already " + string(booking.Status),
			})
			return
		}

		status := models.BookingStatusAccepted
		eventType := "booking_accepted"
		if action == "reject" {
			status = models.BookingStatusRejected
			eventType = "booking_rejected"
		}

		if err := database.DB.Model(&booking).Update("status", status).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update booking"})
			return
		}
		booking.Status = status

		notifyBookingEvent(&booking, eventType, booking.CustomerID)

		c.JSON(http.StatusOK, gin.H{
			"message": "Booking status updated",
			"booking": booking,
		})
	}
}

// customerNotifications lists the calling customer's bookings newest-first
func customerNotifications(c *gin.Context) {
	customerID := c.GetUint("user_id")

	var bookings []models.Booking
	if err := database.DB.
		Preload("Service").
		Preload("Provider").
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// providerNotifications lists the calling provider's bookings newest-first
func providerNotifications(c *gin.Context) {
	providerID := c.GetUint("user_id")

	var bookings []models.Booking
	if err := database.DB.
		Preload("Service").
		Preload("Customer").
		Where("provider_id = ?", providerID).
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// notifyBookingEvent pushes a booking lifecycle event to the counterparty
// over the chat hub when they are connected.
func notifyBookingEvent(booking *models.Booking, eventType string, recipientID uint) {
	if chatHub == nil {
		return
	}
	chatHub.SendToUser(recipientID, &ws.Message{
		Type:      eventType,
		Timestamp: time.Now(),
		Data: gin.H{
			"booking_id": booking.ID,
			"service_id": booking.ServiceID,
			"status":     booking.Status,
		},
	})
}
