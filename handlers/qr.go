package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Henry-Paul/Paperless-Restaurant-Menu/config"
	"github.com/Henry-Paul/Paperless-Restaurant-Menu/middleware"
	"github.com/Henry-Paul/Paperless-Restaurant-Menu/models"
	"github.com/Henry-Paul/Paperless-Restaurant-Menu/qrcode"
)

// GetMenuQR returns the owner's menu link and its QR image reference
func GetMenuQR(c *gin.Context) {
	ownerID := middleware.GetUserID(c)

	var restaurant models.Restaurant
	if err := config.DB.Where("owner_id = ?", ownerID).First(&restaurant).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No restaurant found for your account"})
		return
	}

	menuURL := qrcode.MenuURL(config.BaseURL, restaurant.ID)
	c.JSON(http.StatusOK, gin.H{
		"menu_url":     menuURL,
		"qr_image_url": qrcode.ImageURL(menuURL),
	})
}

type CreateReviewQRRequest struct {
	GoogleReviewURL string `json:"google_review_url" binding:"required,url"`
}

// CreateReviewQR stores a Google-review QR code (premium feature)
func CreateReviewQR(c *gin.Context) {
	ownerID := middleware.GetUserID(c)

	var restaurant models.Restaurant
	if err := config.DB.Where("owner_id = ?", ownerID).First(&restaurant).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No restaurant found for your account"})
		return
	}
	if !restaurant.IsPremium() {
		c.JSON(http.StatusPaymentRequired, gin.H{"error": "Review QR codes require the premium plan"})
		return
	}

	var req CreateReviewQRRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existing models.QRCode
	if result := config.DB.
		Where("restaurant_id = ? AND qr_code_type = ?", restaurant.ID, models.QRTypeGoogleReview).
		First(&existing); result.Error == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Review QR code already exists", "qr_code": existing})
		return
	}

	code := models.QRCode{
		RestaurantID: restaurant.ID,
		QRCodeType:   models.QRTypeGoogleReview,
		QRCodeData:   qrcode.ImageURL(req.GoogleReviewURL),
	}
	if err := config.DB.Create(&code).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save QR code"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Review QR code created", "qr_code": code})
}

// GetReviewQR fetches the stored Google-review QR code
func GetReviewQR(c *gin.Context) {
	ownerID := middleware.GetUserID(c)

	var restaurant models.Restaurant
	if err := config.DB.Where("owner_id = ?", ownerID).First(&restaurant).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No restaurant found for your account"})
		return
	}

	var code models.QRCode
	if err := config.DB.
		Where("restaurant_id = ? AND qr_code_type = ?", restaurant.ID, models.QRTypeGoogleReview).
		First(&code).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No review QR code yet"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"qr_code": code})
}
