package models

import (
	"time"
)

// ChatMessage is one entry of the append-only conversation between a
// customer and a provider. Conversations are scoped to the user pair,
// not to a booking.
type ChatMessage struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	CustomerID uint      `json:"customer_id" gorm:"not null;index:idx_chat_pair"`
	ProviderID uint      `json:"provider_id" gorm:"not null;index:idx_chat_pair"`
	Message    string    `json:"message" gorm:"type:text;not null"`
	SenderRole UserRole  `json:"sender_role" gorm:"type:varchar(20);not null"` // customer or provider
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Relationships
	Customer User `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	Provider User `json:"provider,omitempty" gorm:"foreignKey:ProviderID"`
}

// TableName specifies the table name for the ChatMessage model
func (ChatMessage) TableName() string {
	return "chat_messages"
}

// ChatMessageCreate represents the request structure for posting a message
type ChatMessageCreate struct {
	Message string `json:"message" binding:"required"`
}
