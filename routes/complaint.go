package routes

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"local-services-server/database"
	"local-services-server/models"
)

// createComplaint files a complaint for the authenticated user
func createComplaint(c *gin.Context) {
	var req models.ComplaintCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid complaint data",
			"message": err.Error(),
		})
		return
	}

	if strings.TrimSpace(req.ComplaintText) == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Empty complaint",
			"message": "Complaint cannot be empty",
		})
		return
	}

	complaint := models.Complaint{
		UserID:        c.GetUint("user_id"),
		ComplaintText: req.ComplaintText,
		Status:        models.ComplaintStatusPending,
	}

	if err := database.DB.Create(&complaint).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit complaint"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Your complaint has been submitted successfully",
		"complaint": complaint,
	})
}

// listMyComplaints returns the caller's complaints newest-first
func listMyComplaints(c *gin.Context) {
	userID := c.GetUint("user_id")

	var complaints []models.Complaint
	if err := database.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&complaints).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch complaints"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"complaints": complaints})
}
