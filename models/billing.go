package models

import "time"

type Plan struct {
	ID       uint     `json:"id" gorm:"primaryKey"`
	Name     string   `json:"name" gorm:"not null"`
	Slug     string   `json:"slug" gorm:"uniqueIndex;not null"`
	Price    float64  `json:"price" gorm:"not null"`
	Features []string `json:"features" gorm:"serializer:json"`
}

type Subscription struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	RestaurantID     uint      `json:"restaurant_id" gorm:"not null;index"`
	PlanID           uint      `json:"plan_id" gorm:"not null"`
	Plan             Plan      `json:"plan,omitempty" gorm:"foreignKey:PlanID"`
	Status           string    `json:"status" gorm:"not null;default:'active'"`
	CurrentPeriodEnd time.Time `json:"current_period_end"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type Invoice struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	RestaurantID   uint      `json:"restaurant_id" gorm:"not null;index"`
	SubscriptionID uint      `json:"subscription_id"`
	Amount         float64   `json:"amount" gorm:"not null"`
	Status         string    `json:"status" gorm:"not null;default:'paid'"`
	InvoiceDate    time.Time `json:"invoice_date"`
}
