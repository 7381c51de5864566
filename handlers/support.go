package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Henry-Paul/Paperless-Restaurant-Menu/config"
	"github.com/Henry-Paul/Paperless-Restaurant-Menu/middleware"
	"github.com/Henry-Paul/Paperless-Restaurant-Menu/models"
)

type CreateTicketRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Category    string `json:"category"`
	Priority    string `json:"priority" binding:"omitempty,oneof=low medium high"`
}

// CreateTicket opens a support ticket for the owner's restaurant
func CreateTicket(c *gin.Context) {
	ownerID := middleware.GetUserID(c)

	var restaurant models.Restaurant
	if err := config.DB.Where("owner_id = ?", ownerID).First(&restaurant).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No restaurant found for your account"})
		return
	}

	var req CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Category == "" {
		req.Category = "general"
	}
	if req.Priority == "" {
		req.Priority = models.PriorityMedium
	}

	ticket := models.SupportTicket{
		RestaurantID: restaurant.ID,
		UserID:       ownerID,
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		Priority:     req.Priority,
		Status:       models.TicketOpen,
	}
	if err := config.DB.Create(&ticket).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create ticket"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Ticket created", "ticket": ticket})
}

// GetMyTickets lists the owner's tickets, newest first
func GetMyTickets(c *gin.Context) {
	ownerID := middleware.GetUserID(c)

	var restaurant models.Restaurant
	if err := config.DB.Where("owner_id = ?", ownerID).First(&restaurant).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No restaurant found for your account"})
		return
	}

	var tickets []models.SupportTicket
	config.DB.Where("restaurant_id = ?", restaurant.ID).
		Order("created_at desc").
		Find(&tickets)

	c.JSON(http.StatusOK, gin.H{"count": len(tickets), "tickets": tickets})
}

// AdminGetAllTickets lists all tickets, optionally by status — admin only
func AdminGetAllTickets(c *gin.Context) {
	var tickets []models.SupportTicket
	query := config.DB.Order("created_at desc")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	query.Find(&tickets)
	c.JSON(http.StatusOK, gin.H{"count": len(tickets), "tickets": tickets})
}

type UpdateTicketStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=open in_progress resolved closed"`
}

// AdminUpdateTicketStatus moves a ticket through its lifecycle — admin only
func AdminUpdateTicketStatus(c *gin.Context) {
	var ticket models.SupportTicket
	if err := config.DB.First(&ticket, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Ticket not found"})
		return
	}

	var req UpdateTicketStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	config.DB.Model(&ticket).Update("status", req.Status)
	c.JSON(http.StatusOK, gin.H{"message": "Ticket updated", "ticket": ticket})
}
