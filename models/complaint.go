package models

import (
	"time"
)

type ComplaintStatus string

const (
	ComplaintStatusPending  ComplaintStatus = "Pending"
	ComplaintStatusResolved ComplaintStatus = "Resolved"
)

type Complaint struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	UserID        uint            `json:"user_id" gorm:"not null;index"`
	ComplaintText string          `json:"complaint_text" gorm:"type:text;not null"`
	Status        ComplaintStatus `json:"status" gorm:"type:varchar(50);default:'Pending';check:status IN ('Pending','Resolved')"`
	CreatedAt     time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time       `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// TableName specifies the table name for the Complaint model
func (Complaint) TableName() string {
	return "complaints"
}

// ComplaintCreate represents the request structure for filing a complaint
type ComplaintCreate struct {
	ComplaintText string `json:"complaint_text" binding:"required"`
}
