package routes

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"local-services-server/database"
	"local-services-server/models"
)

// adminDashboard aggregates the moderation view: providers, customers,
// available services, all bookings, and complaints newest-first.
func adminDashboard(c *gin.Context) {
	var providers []models.User
	if err := database.DB.Where("role = ?", models.RoleProvider).Find(&providers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch providers"})
		return
	}

	var customers []models.User
	if err := database.DB.Where("role = ?", models.RoleCustomer).Find(&customers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch customers"})
		return
	}

	var services []models.Service
	if err := database.DB.Where("is_available = ?", true).Find(&services).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch services"})
		return
	}

	var bookings []models.Booking
	if err := database.DB.Preload("Service").Find(&bookings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bookings"})
		return
	}

	var complaints []models.Complaint
	if err := database.DB.Preload("User").Order("created_at DESC").Find(&complaints).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch complaints"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"providers":       providers,
		"customers":       customers,
		"active_services": services,
		"bookings":        bookings,
		"complaints":      complaints,
	})
}

// deleteUserCascade removes a user and every row they own. Deletes are
// explicit rather than relying on ORM-level cascade.
func deleteUserCascade(tx *gorm.DB, user *models.User) error {
	if user.IsProvider() {
		if err := tx.Where("provider_id = ?", user.ID).Delete(&models.Service{}).Error; err != nil {
			return err
		}
		if err := tx.Where("provider_id = ?", user.ID).Delete(&models.Booking{}).Error; err != nil {
			return err
		}
		if err := tx.Where("provider_id = ?", user.ID).Delete(&models.ChatMessage{}).Error; err != nil {
			return err
		}
	} else {
		if err := tx.Where("customer_id = ?", user.ID).Delete(&models.Booking{}).Error; err != nil {
			return err
		}
		if err := tx.Where("customer_id = ?", user.ID).Delete(&models.ChatMessage{}).Error; err != nil {
			return err
		}
	}

	if err := tx.Where("user_id = ?", user.ID).Delete(&models.Complaint{}).Error; err != nil {
		return err
	}

	return tx.Delete(user).Error
}

// deleteUserWithRole deletes a user of the expected role plus owned rows
func deleteUserWithRole(c *gin.Context, role models.UserRole) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var user models.User
	if err := database.DB.Where("id = ? AND role = ?", userID, role).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
		}
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		return deleteUserCascade(tx, &user)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": string(role) + " account deleted"})
}

// deleteProvider deletes a provider account and everything it owns
func deleteProvider(c *gin.Context) {
	deleteUserWithRole(c, models.RoleProvider)
}

// deleteCustomer deletes a customer account and everything it owns
func deleteCustomer(c *gin.Context) {
	deleteUserWithRole(c, models.RoleCustomer)
}

// deleteService removes a service and its bookings
func deleteService(c *gin.Context) {
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

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("service_id = ?", service.ID).Delete(&models.Booking{}).Error; err != nil {
			return err
		}
		return tx.Delete(&service).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete service"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Service deleted successfully"})
}

// resolveComplaint marks a complaint as resolved. Resolving an already
// resolved complaint is a no-op, not an error.
func resolveComplaint(c *gin.Context) {
	complaintID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid complaint ID"})
		return
	}

	var complaint models.Complaint
	if err := database.DB.First(&complaint, complaintID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Complaint not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch complaint"})
		}
		return
	}

	if complaint.Status != models.ComplaintStatusResolved {
		if err := database.DB.Model(&complaint).Update("status", models.ComplaintStatusResolved).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve complaint"})
			return
		}
		complaint.Status = models.ComplaintStatusResolved
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Complaint marked as resolved",
		"complaint": complaint,
	})
}
