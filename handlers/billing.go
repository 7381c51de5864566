package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Henry-Paul/Paperless-Restaurant-Menu/config"
	"github.com/Henry-Paul/Paperless-Restaurant-Menu/middleware"
	"github.com/Henry-Paul/Paperless-Restaurant-Menu/models"
	"github.com/Henry-Paul/Paperless-Restaurant-Menu/payment"
)

type SubscribeRequest struct {
	Plan string `json:"plan" binding:"required"`
}

// Subscribe starts a plan-upgrade checkout session for the owner's
// restaurant and returns the gateway redirect URL
func Subscribe(c *gin.Context) {
	ownerID := middleware.GetUserID(c)

	var restaurant models.Restaurant
	if err := config.DB.Where("owner_id = ?", ownerID).First(&restaurant).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No restaurant found for your account"})
		return
	}

	var req SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var plan models.Plan
	if err := config.DB.Where("slug = ?", req.Plan).First(&plan).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown plan: " + req.Plan})
		return
	}
	if restaurant.Plan == plan.Slug {
		c.JSON(http.StatusConflict, gin.H{"error": "Already on the " + plan.Name + " plan"})
		return
	}

	session, err := Payments.CreateSession(c.Request.Context(), restaurant.ID, plan)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create checkout session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session_id":   session.ID,
		"checkout_url": session.CheckoutURL,
	})
}

type SubscribeCallbackRequest struct {
	SessionID string `json:"session_id" binding:"required"`
}

// SubscribeCallback records the settled checkout session: it writes the
// subscription and invoice and switches the restaurant's plan
func SubscribeCallback(c *gin.Context) {
	var req SubscribeCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := Payments.CompleteSession(c.Request.Context(), req.SessionID)
	if err != nil {
		if errors.Is(err, payment.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Checkout session not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete checkout session"})
		return
	}

	var plan models.Plan
	if err := config.DB.Where("slug = ?", session.PlanSlug).First(&plan).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Plan no longer exists"})
		return
	}

	subscription := models.Subscription{
		RestaurantID:     session.RestaurantID,
		PlanID:           plan.ID,
		Status:           "active",
		CurrentPeriodEnd: time.Now().AddDate(0, 0, 30),
	}
	if err := config.DB.Create(&subscription).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record subscription"})
		return
	}

	invoice := models.Invoice{
		RestaurantID:   session.RestaurantID,
		SubscriptionID: subscription.ID,
		Amount:         session.Amount,
		Status:         "paid",
		InvoiceDate:    time.Now(),
	}
	config.DB.Create(&invoice)

	config.DB.Model(&models.Restaurant{}).
		Where("id = ?", session.RestaurantID).
		Update("plan", plan.Slug)

	c.JSON(http.StatusOK, gin.H{
		"message":      "Subscription activated",
		"plan":         plan.Slug,
		"subscription": subscription,
	})
}

// GetMySubscription returns the owner's current subscription, if any
func GetMySubscription(c *gin.Context) {
	ownerID := middleware.GetUserID(c)

	var restaurant models.Restaurant
	if err := config.DB.Where("owner_id = ?", ownerID).First(&restaurant).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No restaurant found for your account"})
		return
	}

	var subscription models.Subscription
	if err := config.DB.Preload("Plan").
		Where("restaurant_id = ?", restaurant.ID).
		Order("created_at desc").
		First(&subscription).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{"plan": restaurant.Plan, "subscription": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"plan": restaurant.Plan, "subscription": subscription})
}
