package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/Henry-Paul/Paperless-Restaurant-Menu/models"
)

// Orders is the GORM-backed order store used by the checkout flow.
type Orders struct {
	db *gorm.DB
}

func NewOrders(db *gorm.DB) *Orders {
	return &Orders{db: db}
}

// InsertOrder creates the order row together with its snapshot line
// items in a single Create, returning the new order ID.
func (s *Orders) InsertOrder(ctx context.Context, order *models.Order) (uint, error) {
	if err := s.db.WithContext(ctx).Create(order).Error; err != nil {
		return 0, fmt.Errorf("insert order: %w", err)
	}
	return order.ID, nil
}

// Menu resolves prices for one restaurant's cart. Only available items
// resolve; anything else reads as not found so the cart counts it as 0.
type Menu struct {
	db           *gorm.DB
	restaurantID uint
}

func NewMenu(db *gorm.DB, restaurantID uint) *Menu {
	return &Menu{db: db, restaurantID: restaurantID}
}

func (m *Menu) Item(id uint) (models.MenuItem, bool) {
	var item models.MenuItem
	err := m.db.
		Where("id = ? AND restaurant_id = ? AND is_available = ?", id, m.restaurantID, true).
		First(&item).Error
	if err != nil {
		return models.MenuItem{}, false
	}
	return item, true
}
