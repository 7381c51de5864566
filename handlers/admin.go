package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Henry-Paul/Paperless-Restaurant-Menu/config"
	"github.com/Henry-Paul/Paperless-Restaurant-Menu/models"
)

// AdminGetStats aggregates the platform dashboard numbers — admin only
func AdminGetStats(c *gin.Context) {
	var restaurantCount int64
	config.DB.Model(&models.Restaurant{}).Count(&restaurantCount)

	var orderCount int64
	config.DB.Model(&models.Order{}).Count(&orderCount)

	var openTickets int64
	config.DB.Model(&models.SupportTicket{}).
		Where("status = ?", models.TicketOpen).
		Count(&openTickets)

	// Revenue comes off paid invoices only
	var totalRevenue float64
	config.DB.Model(&models.Invoice{}).
		Where("status = ?", "paid").
		Select("COALESCE(SUM(amount), 0)").
		Scan(&totalRevenue)

	// Restaurants per plan
	byPlan := map[string]int64{}
	var rows []struct {
		Plan  string
		Total int64
	}
	config.DB.Model(&models.Restaurant{}).
		Select("plan, COUNT(*) as total").
		Group("plan").
		Scan(&rows)
	for _, r := range rows {
		byPlan[r.Plan] = r.Total
	}

	c.JSON(http.StatusOK, gin.H{
		"restaurants":   restaurantCount,
		"orders":        orderCount,
		"open_tickets":  openTickets,
		"total_revenue": totalRevenue,
		"plans":         byPlan,
	})
}

// AdminGetAllRestaurants lists every restaurant — admin only
func AdminGetAllRestaurants(c *gin.Context) {
	var restaurants []models.Restaurant
	query := config.DB.Preload("Owner")
	if plan := c.Query("plan"); plan != "" {
		query = query.Where("plan = ?", plan)
	}
	query.Find(&restaurants)
	c.JSON(http.StatusOK, gin.H{"count": len(restaurants), "restaurants": restaurants})
}

// AdminGetAllOrders lists every order with filters — admin only
func AdminGetAllOrders(c *gin.Context) {
	var orders []models.Order
	query := config.DB.Preload("Items").Preload("Restaurant")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if restaurantID := c.Query("restaurant_id"); restaurantID != "" {
		query = query.Where("restaurant_id = ?", restaurantID)
	}

	query.Order("created_at desc").Find(&orders)

	summary := map[string]int{}
	for _, o := range orders {
		summary[string(o.Status)]++
	}

	c.JSON(http.StatusOK, gin.H{
		"order_summary": summary,
		"count":         len(orders),
		"orders":        orders,
	})
}
