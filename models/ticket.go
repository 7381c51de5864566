package models

import "time"

// Support ticket statuses and priorities
const (
	TicketOpen       = "open"
	TicketInProgress = "in_progress"
	TicketResolved   = "resolved"
	TicketClosed     = "closed"

	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

type SupportTicket struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	RestaurantID uint      `json:"restaurant_id" gorm:"not null;index"`
	UserID       uint      `json:"user_id" gorm:"not null"`
	Title        string    `json:"title" gorm:"not null"`
	Description  string    `json:"description" gorm:"not null"`
	Category     string    `json:"category" gorm:"not null;default:'general'"`
	Priority     string    `json:"priority" gorm:"not null;default:'medium'"`
	Status       string    `json:"status" gorm:"not null;default:'open'"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
