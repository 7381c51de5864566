package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Henry-Paul/Paperless-Restaurant-Menu/cart"
	"github.com/Henry-Paul/Paperless-Restaurant-Menu/checkout"
	"github.com/Henry-Paul/Paperless-Restaurant-Menu/config"
	"github.com/Henry-Paul/Paperless-Restaurant-Menu/models"
	"github.com/Henry-Paul/Paperless-Restaurant-Menu/notify"
	"github.com/Henry-Paul/Paperless-Restaurant-Menu/store"
)

// SessionHeader carries the opaque browsing-session token. It is issued
// on the first cart write and echoed back on every response.
const SessionHeader = "X-Session-Token"

// orderingRestaurant loads the restaurant and enforces the premium
// gate for ordering endpoints. Returns ok=false after writing the
// error response.
func orderingRestaurant(c *gin.Context) (models.Restaurant, bool) {
	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return restaurant, false
	}
	if !restaurant.IsPremium() {
		c.JSON(http.StatusPaymentRequired, gin.H{"error": "Ordering requires the premium plan"})
		return restaurant, false
	}
	return restaurant, true
}

// sessionFlow returns (and lazily creates) the checkout flow for this
// browsing session at this restaurant, echoing the session token.
func sessionFlow(c *gin.Context, restaurant models.Restaurant) *checkout.Flow {
	token, flow := Sessions.GetOrCreate(c.GetHeader(SessionHeader), restaurant.ID, func() *checkout.Flow {
		catalog := store.NewMenu(config.DB, restaurant.ID)
		return checkout.NewFlow(restaurant, cart.New(), catalog, store.NewOrders(config.DB), Codes, Notifier)
	})
	c.Header(SessionHeader, token)
	return flow
}

// cartView renders the session cart with resolved lines and total.
func cartView(flow *checkout.Flow, restaurant models.Restaurant) gin.H {
	catalog := store.NewMenu(config.DB, restaurant.ID)
	return gin.H{
		"items": flow.Cart().Items(),
		"lines": flow.Cart().Lines(catalog),
		"count": flow.Cart().Count(),
		"total": flow.Cart().Total(catalog),
		"state": flow.State(),
	}
}

type AddCartItemRequest struct {
	ItemID uint `json:"item_id" binding:"required"`
}

// AddCartItem puts one unit of a menu item into the session cart
func AddCartItem(c *gin.Context) {
	restaurant, ok := orderingRestaurant(c)
	if !ok {
		return
	}
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var item models.MenuItem
	if err := config.DB.
		Where("id = ? AND restaurant_id = ?", req.ItemID, restaurant.ID).
		First(&item).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}
	if !item.IsAvailable {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Menu item '" + item.Name + "' is not available"})
		return
	}

	flow := sessionFlow(c, restaurant)
	if flow.State() != checkout.StateEditing {
		c.JSON(http.StatusConflict, gin.H{"error": "Cart is locked during confirmation", "state": flow.State()})
		return
	}
	flow.Cart().Add(req.ItemID)
	c.JSON(http.StatusOK, cartView(flow, restaurant))
}

// RemoveCartItem takes one unit of a menu item out of the session cart
func RemoveCartItem(c *gin.Context) {
	restaurant, ok := orderingRestaurant(c)
	if !ok {
		return
	}
	itemID, ok := parseUintParam(c, "itemId")
	if !ok {
		return
	}
	flow := sessionFlow(c, restaurant)
	if flow.State() != checkout.StateEditing {
		c.JSON(http.StatusConflict, gin.H{"error": "Cart is locked during confirmation", "state": flow.State()})
		return
	}
	flow.Cart().Remove(itemID)
	c.JSON(http.StatusOK, cartView(flow, restaurant))
}

// GetCart renders the session cart
func GetCart(c *gin.Context) {
	restaurant, ok := orderingRestaurant(c)
	if !ok {
		return
	}
	flow := sessionFlow(c, restaurant)
	c.JSON(http.StatusOK, cartView(flow, restaurant))
}

// ClearCart abandons the session's flow and empties the cart
func ClearCart(c *gin.Context) {
	restaurant, ok := orderingRestaurant(c)
	if !ok {
		return
	}
	Sessions.Drop(c.GetHeader(SessionHeader), restaurant.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}

type CheckoutRequest struct {
	CustomerName        string `json:"customer_name"`
	CustomerPhone       string `json:"customer_phone"`
	SpecialInstructions string `json:"special_instructions"`
}

// Checkout submits contact details and moves the flow to the OTP step
func Checkout(c *gin.Context) {
	restaurant, ok := orderingRestaurant(c)
	if !ok {
		return
	}
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	flow := sessionFlow(c, restaurant)
	if err := flow.SubmitDetails(c.Request.Context(), req.CustomerName, req.CustomerPhone, req.SpecialInstructions); err != nil {
		writeFlowError(c, err)
		return
	}

	pending := flow.Pending()
	c.JSON(http.StatusOK, gin.H{
		"message": "OTP sent to " + pending.CustomerPhone,
		"state":   flow.State(),
		"pending": pending,
	})
}

type ConfirmRequest struct {
	Code string `json:"code" binding:"required"`
}

// ConfirmOrder verifies the OTP, persists the order and hands the
// WhatsApp link back to the client
func ConfirmOrder(c *gin.Context) {
	restaurant, ok := orderingRestaurant(c)
	if !ok {
		return
	}
	var req ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	flow := sessionFlow(c, restaurant)
	order, err := flow.Confirm(c.Request.Context(), req.Code)
	if err != nil {
		writeFlowError(c, err)
		return
	}

	// The completed flow is done; drop the session entry
	Sessions.Drop(c.GetHeader(SessionHeader), restaurant.ID)

	c.JSON(http.StatusCreated, gin.H{
		"message":      "Order placed successfully",
		"order":        order,
		"whatsapp_url": notify.WhatsAppURL(restaurant.WhatsAppPhone, notify.OrderMessage(order)),
	})
}

// CheckoutBack returns from the OTP step to editing, keeping the draft
func CheckoutBack(c *gin.Context) {
	restaurant, ok := orderingRestaurant(c)
	if !ok {
		return
	}
	flow := sessionFlow(c, restaurant)
	if err := flow.Back(); err != nil {
		writeFlowError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Back to editing",
		"state":   flow.State(),
		"pending": flow.Pending(),
	})
}

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(n), true
}

// writeFlowError maps the checkout error taxonomy onto HTTP statuses.
func writeFlowError(c *gin.Context, err error) {
	var vErr *checkout.ValidationError
	var pErr *checkout.PersistenceError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Message, "field": vErr.Field})
	case errors.Is(err, checkout.ErrConfirmationMismatch):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Incorrect OTP, please try again"})
	case errors.As(err, &pErr):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save order, your cart was kept"})
	case errors.Is(err, checkout.ErrInvalidState):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
