package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Henry-Paul/Paperless-Restaurant-Menu/config"
	"github.com/Henry-Paul/Paperless-Restaurant-Menu/handlers"
	"github.com/Henry-Paul/Paperless-Restaurant-Menu/middleware"
	"github.com/Henry-Paul/Paperless-Restaurant-Menu/models"
	"github.com/Henry-Paul/Paperless-Restaurant-Menu/notify"
	"github.com/Henry-Paul/Paperless-Restaurant-Menu/otp"
	"github.com/Henry-Paul/Paperless-Restaurant-Menu/payment"
	"github.com/Henry-Paul/Paperless-Restaurant-Menu/routes"
	"github.com/Henry-Paul/Paperless-Restaurant-Menu/session"
)

type env struct {
	router *gin.Engine
	codes  *otp.MemoryStore
}

func setup(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1) // one in-memory database for all queries

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Restaurant{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.QRCode{},
		&models.Plan{},
		&models.Subscription{},
		&models.Invoice{},
		&models.SupportTicket{},
	))

	config.DB = db
	config.JWTSecret = []byte("test_secret")
	config.BaseURL = "http://localhost:8080"

	codeStore := otp.NewMemoryStore()
	handlers.Configure(
		session.NewRegistry(time.Hour),
		otp.NewStoreChannel(codeStore, time.Minute),
		notify.LogNotifier{},
		payment.NewStubProvider(config.BaseURL),
	)

	db.Create(&models.Plan{Name: "Starter", Slug: models.PlanStarter, Price: 0})
	db.Create(&models.Plan{Name: "Premium", Slug: models.PlanPremium, Price: 299})

	r := gin.New()
	routes.SetupRoutes(r)
	return &env{router: r, codes: codeStore}
}

func (e *env) do(t *testing.T, method, path string, body any, headers map[string]string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var out map[string]any
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &out)
	}
	return w, out
}

func seedRestaurant(t *testing.T, plan string) models.Restaurant {
	t.Helper()
	owner := models.User{Name: "Asha", Email: "asha@example.com", PasswordHash: "x", Role: models.RoleOwner}
	require.NoError(t, config.DB.Create(&owner).Error)
	restaurant := models.Restaurant{OwnerID: owner.ID, Name: "Spice Garden", Plan: plan, WhatsAppPhone: "919876543210"}
	require.NoError(t, config.DB.Create(&restaurant).Error)
	return restaurant
}

func seedItem(t *testing.T, restaurantID uint, name, category string, price float64) models.MenuItem {
	t.Helper()
	item := models.MenuItem{RestaurantID: restaurantID, Name: name, Category: category, Price: price, IsAvailable: true}
	require.NoError(t, config.DB.Create(&item).Error)
	return item
}

func TestGetMenuGroupsByCategory(t *testing.T) {
	e := setup(t)
	r := seedRestaurant(t, models.PlanStarter)
	seedItem(t, r.ID, "Dosa", "Mains", 100)
	seedItem(t, r.ID, "Chai", "Drinks", 30)
	seedItem(t, r.ID, "Idli", "Mains", 60)
	hidden := seedItem(t, r.ID, "Secret", "Mains", 10)
	config.DB.Model(&hidden).Update("is_available", false)

	w, body := e.do(t, http.MethodGet, "/api/restaurants/1/menu", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 3, body["count"])

	menu := body["menu"].([]any)
	require.Len(t, menu, 2)

	first := menu[0].(map[string]any)
	second := menu[1].(map[string]any)
	assert.Equal(t, "Mains", first["category"], "first-seen category comes first")
	assert.Equal(t, "Drinks", second["category"])
	assert.Len(t, first["items"].([]any), 2, "unavailable item hidden")
	assert.Len(t, second["items"].([]any), 1)
}

func TestStarterPlanCannotOrder(t *testing.T) {
	e := setup(t)
	r := seedRestaurant(t, models.PlanStarter)
	item := seedItem(t, r.ID, "Dosa", "Mains", 100)

	w, body := e.do(t, http.MethodPost, "/api/restaurants/1/cart/items",
		gin.H{"item_id": item.ID}, nil)
	assert.Equal(t, http.StatusPaymentRequired, w.Code)
	assert.Contains(t, body["error"], "premium")
}

func TestOrderFlowOverHTTP(t *testing.T) {
	e := setup(t)
	r := seedRestaurant(t, models.PlanPremium)
	a := seedItem(t, r.ID, "Dosa", "Mains", 100)
	b := seedItem(t, r.ID, "Lassi", "Drinks", 50)

	// Build cart {A:2, B:1}
	w, _ := e.do(t, http.MethodPost, "/api/restaurants/1/cart/items", gin.H{"item_id": a.ID}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	token := w.Header().Get(handlers.SessionHeader)
	require.NotEmpty(t, token)
	hdr := map[string]string{handlers.SessionHeader: token}

	w, _ = e.do(t, http.MethodPost, "/api/restaurants/1/cart/items", gin.H{"item_id": a.ID}, hdr)
	require.Equal(t, http.StatusOK, w.Code)
	w, body := e.do(t, http.MethodPost, "/api/restaurants/1/cart/items", gin.H{"item_id": b.ID}, hdr)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 3, body["count"])
	assert.EqualValues(t, 250, body["total"])

	// Missing name keeps the flow editable
	w, body = e.do(t, http.MethodPost, "/api/restaurants/1/checkout",
		gin.H{"customer_name": "", "customer_phone": "5551234"}, hdr)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "customer_name", body["field"])

	// Submit details → OTP issued
	w, body = e.do(t, http.MethodPost, "/api/restaurants/1/checkout",
		gin.H{"customer_name": "Jane", "customer_phone": "5551234"}, hdr)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "awaiting_confirmation", body["state"])

	issued, err := e.codes.Get(context.Background(), "5551234")
	require.NoError(t, err)

	// Wrong code → 422, nothing persisted
	w, _ = e.do(t, http.MethodPost, "/api/restaurants/1/checkout/confirm", gin.H{"code": issued + "x"}, hdr)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var count int64
	config.DB.Model(&models.Order{}).Count(&count)
	assert.EqualValues(t, 0, count)

	// Right code → order persisted with the frozen snapshot
	w, body = e.do(t, http.MethodPost, "/api/restaurants/1/checkout/confirm", gin.H{"code": issued}, hdr)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, body["whatsapp_url"], "wa.me")

	var order models.Order
	require.NoError(t, config.DB.Preload("Items").First(&order).Error)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.EqualValues(t, 250, order.TotalAmount)
	require.Len(t, order.Items, 2)

	// Session was dropped; a fresh cart is empty
	w, body = e.do(t, http.MethodGet, "/api/restaurants/1/cart", nil, hdr)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, body["count"])
}

func TestCheckoutBackKeepsDraft(t *testing.T) {
	e := setup(t)
	r := seedRestaurant(t, models.PlanPremium)
	item := seedItem(t, r.ID, "Dosa", "Mains", 100)

	w, _ := e.do(t, http.MethodPost, "/api/restaurants/1/cart/items", gin.H{"item_id": item.ID}, nil)
	token := w.Header().Get(handlers.SessionHeader)
	hdr := map[string]string{handlers.SessionHeader: token}

	w, _ = e.do(t, http.MethodPost, "/api/restaurants/1/checkout",
		gin.H{"customer_name": "Jane", "customer_phone": "5551234"}, hdr)
	require.Equal(t, http.StatusOK, w.Code)

	w, body := e.do(t, http.MethodPost, "/api/restaurants/1/checkout/back", nil, hdr)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "editing", body["state"])
	pending := body["pending"].(map[string]any)
	assert.Equal(t, "Jane", pending["customer_name"])
}

func TestOwnerLifecycle(t *testing.T) {
	e := setup(t)

	// Register and grab a token
	w, body := e.do(t, http.MethodPost, "/api/auth/register",
		gin.H{"name": "Asha", "email": "asha@example.com", "password": "secret123"}, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	auth := map[string]string{"Authorization": "Bearer " + body["token"].(string)}

	// Create the restaurant
	w, _ = e.do(t, http.MethodPost, "/api/owner/restaurant",
		gin.H{"name": "Spice Garden", "whatsapp_phone": "919876543210"}, auth)
	require.Equal(t, http.StatusCreated, w.Code)

	// Second restaurant is rejected
	w, _ = e.do(t, http.MethodPost, "/api/owner/restaurant", gin.H{"name": "Another"}, auth)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Plain item works on starter
	w, _ = e.do(t, http.MethodPost, "/api/owner/menu",
		gin.H{"name": "Dosa", "price": 100, "category": "Mains"}, auth)
	require.Equal(t, http.StatusCreated, w.Code)

	// Item images are gated
	w, _ = e.do(t, http.MethodPost, "/api/owner/menu",
		gin.H{"name": "Idli", "price": 60, "image_url": "https://img.example/idli.png"}, auth)
	assert.Equal(t, http.StatusPaymentRequired, w.Code)

	// Upgrade through the stub gateway
	w, body = e.do(t, http.MethodPost, "/api/owner/subscribe", gin.H{"plan": "premium"}, auth)
	require.Equal(t, http.StatusOK, w.Code)
	sessionID := body["session_id"].(string)

	w, _ = e.do(t, http.MethodPost, "/api/billing/callback", gin.H{"session_id": sessionID}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var restaurant models.Restaurant
	require.NoError(t, config.DB.First(&restaurant).Error)
	assert.Equal(t, models.PlanPremium, restaurant.Plan)

	// Premium unlocks images
	w, _ = e.do(t, http.MethodPost, "/api/owner/menu",
		gin.H{"name": "Idli", "price": 60, "image_url": "https://img.example/idli.png"}, auth)
	assert.Equal(t, http.StatusCreated, w.Code)

	// An invoice was written for the upgrade
	var invoices int64
	config.DB.Model(&models.Invoice{}).Where("status = ?", "paid").Count(&invoices)
	assert.EqualValues(t, 1, invoices)
}

func TestRemoveCartItemBadParam(t *testing.T) {
	e := setup(t)
	seedRestaurant(t, models.PlanPremium)

	w, body := e.do(t, http.MethodDelete, "/api/restaurants/1/cart/items/abc", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, body["error"], "itemId")
	assert.Empty(t, w.Header().Get(handlers.SessionHeader), "no session minted for a rejected request")
}

func TestAdminForcesOrderTransition(t *testing.T) {
	e := setup(t)
	r := seedRestaurant(t, models.PlanPremium)
	order := models.Order{RestaurantID: r.ID, CustomerName: "Jane", CustomerPhone: "5551234", Status: models.StatusPending}
	require.NoError(t, config.DB.Create(&order).Error)

	admin := models.User{Name: "Root", Email: "admin@example.com", PasswordHash: "x", Role: models.RoleAdmin}
	require.NoError(t, config.DB.Create(&admin).Error)
	token, err := middleware.GenerateToken(&admin)
	require.NoError(t, err)
	auth := map[string]string{"Authorization": "Bearer " + token}

	// The transition table still binds admins
	w, _ := e.do(t, http.MethodPut, "/api/admin/orders/1/status", gin.H{"status": "preparing"}, auth)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// But any listed transition goes through without ownership
	w, _ = e.do(t, http.MethodPut, "/api/admin/orders/1/status", gin.H{"status": "cancelled"}, auth)
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Order
	require.NoError(t, config.DB.First(&updated, order.ID).Error)
	assert.Equal(t, models.StatusCancelled, updated.Status)

	// Owners cannot reach the admin route
	w, body := e.do(t, http.MethodPost, "/api/auth/register",
		gin.H{"name": "Meera", "email": "meera@example.com", "password": "secret123"}, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	ownerAuth := map[string]string{"Authorization": "Bearer " + body["token"].(string)}
	w, _ = e.do(t, http.MethodPut, "/api/admin/orders/1/status", gin.H{"status": "confirmed"}, ownerAuth)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestOrderStatusTransitions(t *testing.T) {
	e := setup(t)

	w, body := e.do(t, http.MethodPost, "/api/auth/register",
		gin.H{"name": "Asha", "email": "asha@example.com", "password": "secret123"}, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	auth := map[string]string{"Authorization": "Bearer " + body["token"].(string)}

	w, _ = e.do(t, http.MethodPost, "/api/owner/restaurant", gin.H{"name": "Spice Garden"}, auth)
	require.Equal(t, http.StatusCreated, w.Code)

	var restaurant models.Restaurant
	require.NoError(t, config.DB.First(&restaurant).Error)
	order := models.Order{RestaurantID: restaurant.ID, CustomerName: "Jane", CustomerPhone: "5551234", Status: models.StatusPending}
	require.NoError(t, config.DB.Create(&order).Error)

	// pending → preparing is not a legal owner move
	w, _ = e.do(t, http.MethodPut, "/api/owner/orders/1/status", gin.H{"status": "preparing"}, auth)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// pending → confirmed is
	w, _ = e.do(t, http.MethodPut, "/api/owner/orders/1/status", gin.H{"status": "confirmed"}, auth)
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Order
	require.NoError(t, config.DB.First(&updated, order.ID).Error)
	assert.Equal(t, models.StatusConfirmed, updated.Status)
}
