package models

import (
	"time"
)

type BookingStatus string

const (
	BookingStatusPending  BookingStatus = "Pending"
	BookingStatusHired    BookingStatus = "Hired"
	BookingStatusAccepted BookingStatus = "Accepted"
	BookingStatusRejected BookingStatus = "Rejected"
)

// IsDecided reports whether the booking has reached a terminal status.
// Accepted and Rejected have no outgoing transitions.
func (s BookingStatus) IsDecided() bool {
	return s == BookingStatusAccepted || s == BookingStatusRejected
}

type Booking struct {
	ID         uint          `json:"id" gorm:"primaryKey"`
	CustomerID uint          `json:"customer_id" gorm:"not null;index"`
	ProviderID uint          `json:"provider_id" gorm:"not null;index"`
	ServiceID  uint          `json:"service_id" gorm:"not null;index"`
	Status     BookingStatus `json:"status" gorm:"type:varchar(20);default:'Pending';check:status IN ('Pending','Hired','Accepted','Rejected')"`
	Rating     int           `json:"rating" gorm:"default:0;check:rating >= 0 AND rating <= 5"` // 0 = unrated

	// Intake form fields, absent on the hire shortcut
	CustomerName  *string `json:"customer_name" gorm:"size:100"`
	Age           *int    `json:"age"`
	Gender        *string `json:"gender" gorm:"size:20"`
	Address       *string `json:"address" gorm:"size:200"`
	Date          *string `json:"date" gorm:"size:50"`
	Time          *string `json:"time" gorm:"size:50"`
	PaymentMethod *string `json:"payment_method" gorm:"size:20"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	Customer User    `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	Provider User    `json:"provider,omitempty" gorm:"foreignKey:ProviderID"`
	Service  Service `json:"service,omitempty" gorm:"foreignKey:ServiceID"`
}

// TableName specifies the table name for the Booking model
func (Booking) TableName() string {
	return "bookings"
}

// BookingCreate represents the intake form for a full booking request
type BookingCreate struct {
	CustomerName  string `json:"customer_name" binding:"required"`
	Age           int    `json:"age" binding:"required,min=1"`
	Gender        string `json:"gender" binding:"required"`
	Address       string `json:"address" binding:"required"`
	Date          string `json:"date" binding:"required"`
	Time          string `json:"time" binding:"required"`
	PaymentMethod string `json:"payment_method" binding:"required"`
}

// BookingRate represents a customer's rating submission for a booking
type BookingRate struct {
	Rating int `json:"rating" binding:"required"`
}
