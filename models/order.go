package models

import "time"

// OrderStatus represents all possible states of a placed order
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusPreparing OrderStatus = "preparing"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

type Order struct {
	ID                  uint        `json:"id" gorm:"primaryKey"`
	RestaurantID        uint        `json:"restaurant_id" gorm:"not null;index"`
	Restaurant          Restaurant  `json:"restaurant,omitempty" gorm:"foreignKey:RestaurantID"`
	CustomerName        string      `json:"customer_name" gorm:"not null"`
	CustomerPhone       string      `json:"customer_phone" gorm:"not null"`
	Status              OrderStatus `json:"order_status" gorm:"not null;default:'pending'"`
	TotalAmount         float64     `json:"total_amount"`
	SpecialInstructions string      `json:"special_instructions"`
	Items               []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt           time.Time   `json:"created_at"`
	UpdatedAt           time.Time   `json:"updated_at"`
}

type OrderItem struct {
	ID         uint    `json:"id" gorm:"primaryKey"`
	OrderID    uint    `json:"order_id" gorm:"not null;index"`
	MenuItemID uint    `json:"menu_item_id" gorm:"not null"`
	Quantity   int     `json:"quantity" gorm:"not null"`
	Price      float64 `json:"price" gorm:"not null"` // snapshot price at time of order
	Name       string  `json:"name"`                  // snapshot name
}
