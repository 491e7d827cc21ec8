package models

import (
	"math"
	"time"

	"gorm.io/gorm"
)

type Service struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	ProviderID  uint      `json:"provider_id" gorm:"not null;index"`
	Name        string    `json:"name" gorm:"size:100;not null"`
	Description string    `json:"description" gorm:"type:text;not null"`
	Price       float64   `json:"price" gorm:"type:decimal(10,2);not null"`
	Location    string    `json:"location" gorm:"size:100;not null"`
	IsAvailable bool      `json:"is_available" gorm:"default:true"`
	ImageURL    *string   `json:"image_url" gorm:"size:255"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	Provider User      `json:"provider,omitempty" gorm:"foreignKey:ProviderID"`
	Bookings []Booking `json:"bookings,omitempty" gorm:"foreignKey:ServiceID"`
}

// TableName specifies the table name for the Service model
func (Service) TableName() string {
	return "services"
}

// ServiceCreate represents the request structure for creating a service
type ServiceCreate struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Price       float64 `json:"price" binding:"min=0"`
	Location    string  `json:"location" binding:"required"`
}

// ServiceResponse is a Service together with its derived average rating
type ServiceResponse struct {
	Service
	AvgRating float64 `json:"avg_rating"`
}

// AvgRating returns the mean of the service's rated bookings rounded to one
// decimal. Unrated bookings (rating = 0) are excluded; a service with no
// rated bookings has an average of exactly 0.
func (s *Service) AvgRating(db *gorm.DB) (float64, error) {
	var avg *float64
	err := db.Model(&Booking{}).
		Select("AVG(rating)").
		Where("service_id = ? AND rating > 0", s.ID).
		Scan(&avg).Error
	if err != nil {
		return 0, err
	}
	if avg == nil {
		return 0, nil
	}
	return math.Round(*avg*10) / 10, nil
}
