package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Henry-Paul/Paperless-Restaurant-Menu/config"
	"github.com/Henry-Paul/Paperless-Restaurant-Menu/models"
	"github.com/Henry-Paul/Paperless-Restaurant-Menu/statemachine"
)

// CategoryGroup is one menu section in first-seen category order.
type CategoryGroup struct {
	Category string            `json:"category"`
	Items    []models.MenuItem `json:"items"`
}

// GroupMenu groups items by category, keeping categories in the order
// they first appear and items of one category contiguous.
func GroupMenu(items []models.MenuItem) []CategoryGroup {
	var groups []CategoryGroup
	index := map[string]int{}
	for _, item := range items {
		category := item.Category
		if category == "" {
			category = "Uncategorized"
		}
		i, ok := index[category]
		if !ok {
			i = len(groups)
			index[category] = i
			groups = append(groups, CategoryGroup{Category: category})
		}
		groups[i].Items = append(groups[i].Items, item)
	}
	return groups
}

// GetRestaurant returns a restaurant's public profile
func GetRestaurant(c *gin.Context) {
	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"restaurant": gin.H{
			"id":       restaurant.ID,
			"name":     restaurant.Name,
			"logo_url": restaurant.LogoURL,
			"plan":     restaurant.Plan,
		},
	})
}

// GetMenu returns the customer-facing menu: available items only,
// grouped by category
func GetMenu(c *gin.Context) {
	restaurantID := c.Param("id")
	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, restaurantID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}

	var items []models.MenuItem
	config.DB.
		Where("restaurant_id = ? AND is_available = ?", restaurantID, true).
		Order("created_at, id").
		Find(&items)

	c.JSON(http.StatusOK, gin.H{
		"restaurant": restaurant.Name,
		"plan":       restaurant.Plan,
		"count":      len(items),
		"menu":       GroupMenu(items),
	})
}

// ListPlans returns the subscription tiers (public)
func ListPlans(c *gin.Context) {
	var plans []models.Plan
	config.DB.Order("price").Find(&plans)
	c.JSON(http.StatusOK, gin.H{"count": len(plans), "plans": plans})
}

// GetStateMachineInfo returns the order lifecycle for informational purposes
func GetStateMachineInfo(c *gin.Context) {
	var info []gin.H
	for _, t := range statemachine.GetAllTransitions() {
		info = append(info, gin.H{"from": t.From, "to": t.To, "actor": t.Actor})
	}
	c.JSON(http.StatusOK, gin.H{
		"state_machine":   info,
		"terminal_states": []string{string(models.StatusCompleted), string(models.StatusCancelled)},
		"description":     "MenuHub Order Lifecycle State Machine",
	})
}
