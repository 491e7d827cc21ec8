package routes

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"local-services-server/database"
	"local-services-server/models"
)

// listServices returns available services, optionally filtered by a name
// substring (q) and a location substring. Matching uses SQL LIKE with the
// engine's collation, the same posture as a contains() filter.
func listServices(c *gin.Context) {
	query := c.Query("q")
	location := c.Query("location")

	tx := database.DB.Where("is_available = ?", true)
	if query != "" {
		tx = tx.Where("name LIKE ?", "%"+query+"%")
	}
	if location != "" {
		tx = tx.Where("location LIKE ?", "%"+location+"%")
	}

	var services []models.Service
	if err := tx.Order("id ASC").Find(&services).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch services"})
		return
	}

	ratings, err := averageRatings(database.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch ratings"})
		return
	}

	responses := make([]models.ServiceResponse, 0, len(services))
	for _, service := range services {
		responses = append(responses, models.ServiceResponse{
			Service:   service,
			AvgRating: ratings[service.ID],
		})
	}

	c.JSON(http.StatusOK, gin.H{"services": responses})
}

// getService retrieves a single service with its average rating
func getService(c *gin.Context) {
	serviceID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid service ID"})
		return
	}

	var service models.Service
	if err := database.DB.Preload("Provider").First(&service, serviceID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch service"})
		}
		return
	}

	avg, err := service.AvgRating(database.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch rating"})
		return
	}

	c.JSON(http.StatusOK, models.ServiceResponse{Service: service, AvgRating: avg})
}

// createService creates a new service owned by the calling provider
func createService(c *gin.Context) {
	var req models.ServiceCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid service data",
			"message": err.Error(),
		})
		return
	}

	if req.Price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid price",
			"message": "Price must not be negative",
		})
		return
	}

	providerID := c.GetUint("user_id")

	service := models.Service{
		ProviderID:  providerID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Location:    req.Location,
		IsAvailable: true,
	}

	if err := database.DB.Create(&service).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create service"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Service created successfully",
		"service": service,
	})
}

// averageRatings returns the mean rating per service over rated bookings,
// rounded to one decimal. Services without rated bookings are absent from
// the map, which reads back as 0.
func averageRatings(db *gorm.DB) (map[uint]float64, error) {
	type row struct {
		ServiceID uint
		Avg       float64
	}

	var rows []row
	err := db.Model(&models.Booking{}).
		Select("service_id, AVG(rating) AS avg").
		Where("rating > 0").
		Group("service_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	ratings := make(map[uint]float64, len(rows))
	for _, r := range rows {
		ratings[r.ServiceID] = math.Round(r.Avg*10) / 10
	}
	return ratings, nil
}
