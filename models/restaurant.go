package models

import "time"

// Restaurant plans gating feature availability
const (
	PlanStarter = "starter"
	PlanPremium = "premium"
)

type Restaurant struct {
	ID            uint       `json:"id" gorm:"primaryKey"`
	OwnerID       uint       `json:"owner_id" gorm:"not null;uniqueIndex"`
	Owner         User       `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Name          string     `json:"name" gorm:"not null"`
	LogoURL       string     `json:"logo_url"`
	WhatsAppPhone string     `json:"whatsapp_phone"`
	Plan          string     `json:"plan" gorm:"not null;default:'starter'"`
	MenuItems     []MenuItem `json:"menu_items,omitempty" gorm:"foreignKey:RestaurantID"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// IsPremium reports whether the restaurant's plan unlocks ordering,
// item images and the review QR code.
func (r *Restaurant) IsPremium() bool {
	return r.Plan == PlanPremium
}

type MenuItem struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	RestaurantID uint      `json:"restaurant_id" gorm:"not null;index"`
	Name         string    `json:"name" gorm:"not null"`
	Description  string    `json:"description"`
	Price        float64   `json:"price" gorm:"not null"`
	ImageURL     string    `json:"image_url"`
	Category     string    `json:"category" gorm:"not null;default:'Uncategorized'"`
	IsAvailable  bool      `json:"is_available" gorm:"default:true"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// QR code types stored per restaurant
const (
	QRTypeMenu         = "menu"
	QRTypeGoogleReview = "google_review"
)

type QRCode struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	RestaurantID uint      `json:"restaurant_id" gorm:"not null;index"`
	QRCodeType   string    `json:"qr_code_type" gorm:"not null"`
	QRCodeData   string    `json:"qr_code_data" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
}
