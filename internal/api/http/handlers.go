package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"campus-food-backend/internal/domain"
	"campus-food-backend/internal/service"

	"github.com/gorilla/mux"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	Stores   service.StoreServiceInterface
	Ratings  service.RatingServiceInterface
	Orders   service.OrderServiceInterface
	Presence service.PresenceServiceInterface
	DB       Pinger
}

func NewHandler(
	storeSvc service.StoreServiceInterface,
	ratingSvc service.RatingServiceInterface,
	orderSvc service.OrderServiceInterface,
	presenceSvc service.PresenceServiceInterface,
	db Pinger,
) *Handler {
	return &Handler{
		Stores:   storeSvc,
		Ratings:  ratingSvc,
		Orders:   orderSvc,
		Presence: presenceSvc,
		DB:       db,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/auth/login", h.login).Methods("POST")
	r.HandleFunc("/api/auth/register-user", h.registerUser).Methods("POST")
	r.HandleFunc("/api/auth/register-store", h.registerStore).Methods("POST")

	r.HandleFunc("/api/stores", h.getStores).Methods("GET")
	r.HandleFunc("/api/stores/by-name/{storeName}", h.getStoreByName).Methods("GET")
	r.HandleFunc("/api/stores/{storeId}", h.getStore).Methods("GET")
	r.HandleFunc("/api/stores/{storeId}/status", h.updateStoreStatus).Methods("PATCH")

	r.HandleFunc("/api/stores/{storeId}/menu", h.getStoreMenu).Methods("GET")
	r.HandleFunc("/api/stores/{storeId}/menu", h.updateStoreMenu).Methods("PUT")
	r.HandleFunc("/api/stores/{storeId}/menu/{itemId}", h.updateMenuItem).Methods("PUT")
	r.HandleFunc("/api/stores/{storeId}/menu/{itemId}/rate", h.rateMenuItem).Methods("POST")

	r.HandleFunc("/api/reviews", h.getReviews).Methods("GET")
	r.HandleFunc("/api/reviews", h.createReview).Methods("POST")
	r.HandleFunc("/api/reviews/store/{storeId}", h.getStoreReviews).Methods("GET")
	r.HandleFunc("/api/reviews/store/{storeId}/item/{itemId}", h.getItemReviews).Methods("GET")
	r.HandleFunc("/api/reviews/stats/{storeId}/{itemId}", h.getReviewStats).Methods("GET")

	r.HandleFunc("/api/orders", h.getOrders).Methods("GET")
	r.HandleFunc("/api/orders", h.createOrder).Methods("POST")
	r.HandleFunc("/api/orders/{orderId}", h.getOrder).Methods("GET")
	r.HandleFunc("/api/orders/{orderId}/status", h.updateOrderStatus).Methods("PUT")
	r.HandleFunc("/api/orders/{orderId}/qrcode", h.getOrderQRCode).Methods("GET")

	r.HandleFunc("/api/active-users/count", h.getActiveUserCount).Methods("GET")
	r.HandleFunc("/api/active-users/ordering-count", h.getOrderingUserCount).Methods("GET")
	r.HandleFunc("/api/active-users/hunger-level", h.getHungerLevel).Methods("GET")
	r.HandleFunc("/api/active-users/stats", h.getActiveUserStats).Methods("GET")
	r.HandleFunc("/api/active-users", h.addActiveUser).Methods("POST")
	r.HandleFunc("/api/active-users/{userId}/activity", h.updateUserActivity).Methods("PUT")
	r.HandleFunc("/api/active-users/{userId}", h.removeActiveUser).Methods("DELETE")

	r.HandleFunc("/api/admin/registrations", h.getRegistrations).Methods("GET")
	r.HandleFunc("/api/admin/stores", h.createStoreByAdmin).Methods("POST")

	r.HandleFunc("/api/analytics/top-rated", h.getTopRated).Methods("GET")
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, data interface{}) {
	writeJSON(w, map[string]interface{}{"success": true, "data": data})
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrInvalidStatus):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	http.Error(w, err.Error(), errorStatus(err))
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	mongoStatus := "Connected"
	if err := h.DB.Ping(r.Context()); err != nil {
		mongoStatus = "Disconnected"
	}
	writeJSON(w, map[string]interface{}{
		"status":    "OK",
		"message":   "Campus Food Backend is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"mongodb":   mongoStatus,
	})
}

// ---- auth ----

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	resp, err := h.Stores.Login(req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, resp)
}

func (h *Handler) registerUser(w http.ResponseWriter, r *http.Request) {
	var req domain.UserCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	userID, err := h.Stores.RegisterUser(req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]interface{}{
		"success": true,
		"message": "User registered successfully",
		"user_id": userID,
	})
}

func (h *Handler) registerStore(w http.ResponseWriter, r *http.Request) {
	var req domain.StoreRegistrationCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	registrationID, err := h.Stores.RegisterStore(req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]interface{}{
		"success":         true,
		"message":         "Store registration submitted successfully",
		"registration_id": registrationID,
		"status":          "pending",
	})
}

// ---- stores ----

func (h *Handler) getStores(w http.ResponseWriter, r *http.Request) {
	var openOnly *bool
	if raw := r.URL.Query().Get("open"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			http.Error(w, "Invalid open filter", http.StatusBadRequest)
			return
		}
		openOnly = &parsed
	}

	stores, err := h.Stores.List(openOnly)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, stores)
}

func (h *Handler) getStore(w http.ResponseWriter, r *http.Request) {
	store, err := h.Stores.Get(mux.Vars(r)["storeId"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, store)
}

func (h *Handler) getStoreByName(w http.ResponseWriter, r *http.Request) {
	store, err := h.Stores.GetByName(mux.Vars(r)["storeName"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, store)
}

func (h *Handler) updateStoreStatus(w http.ResponseWriter, r *http.Request) {
	storeID, _ := strconv.Atoi(mux.Vars(r)["storeId"])
	isOpen, err := strconv.ParseBool(r.URL.Query().Get("is_open"))
	if err != nil {
		http.Error(w, "is_open query parameter is required", http.StatusBadRequest)
		return
	}

	if err := h.Stores.SetStatus(storeID, isOpen); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]interface{}{
		"success": true,
		"message": "Store status updated successfully",
		"is_open": isOpen,
	})
}

// ---- menu ----

func (h *Handler) getStoreMenu(w http.ResponseWriter, r *http.Request) {
	storeID, _ := strconv.Atoi(mux.Vars(r)["storeId"])
	menu, err := h.Stores.Menu(storeID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, menu)
}

func (h *Handler) updateStoreMenu(w http.ResponseWriter, r *http.Request) {
	storeID, _ := strconv.Atoi(mux.Vars(r)["storeId"])

	// Decode item by item over a defaults-filled struct so fields the
	// payload omits keep their defaults instead of zeroing out.
	var rawItems []json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&rawItems); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	menu := make([]domain.MenuItem, 0, len(rawItems))
	for _, raw := range rawItems {
		item := domain.MenuItem{
			Rating:      domain.DefaultRating,
			Category:    "Fast Food",
			IsAvailable: true,
		}
		if err := json.Unmarshal(raw, &item); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		menu = append(menu, item)
	}

	if err := h.Stores.ReplaceMenu(storeID, menu); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]interface{}{
		"success": true,
		"message": "Menu updated successfully",
	})
}

func (h *Handler) updateMenuItem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	storeID, _ := strconv.Atoi(vars["storeId"])
	itemID, _ := strconv.Atoi(vars["itemId"])

	var fields map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.Stores.UpdateMenuItem(storeID, itemID, fields); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]interface{}{
		"success": true,
		"message": "Menu item updated successfully",
	})
}

func (h *Handler) rateMenuItem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	storeID, _ := strconv.Atoi(vars["storeId"])
	itemID, _ := strconv.Atoi(vars["itemId"])

	var req struct {
		Rating float64 `json:"rating"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	stats, err := h.Ratings.RateItem(r.Context(), storeID, itemID, req.Rating)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]interface{}{
		"success":      true,
		"message":      "Rating submitted successfully",
		"new_rating":   stats.Rating,
		"review_count": stats.Count,
	})
}

// ---- reviews ----

func (h *Handler) getReviews(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := domain.ReviewFilter{UserName: query.Get("user_name")}
	filter.StoreID, _ = strconv.Atoi(query.Get("store_id"))
	filter.ItemID, _ = strconv.Atoi(query.Get("item_id"))

	reviews, err := h.Ratings.ListReviews(filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, reviews)
}

func (h *Handler) getStoreReviews(w http.ResponseWriter, r *http.Request) {
	storeID, _ := strconv.Atoi(mux.Vars(r)["storeId"])
	reviews, err := h.Ratings.ListReviews(domain.ReviewFilter{StoreID: storeID})
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, reviews)
}

func (h *Handler) getItemReviews(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	storeID, _ := strconv.Atoi(vars["storeId"])
	itemID, _ := strconv.Atoi(vars["itemId"])

	reviews, err := h.Ratings.ListReviews(domain.ReviewFilter{StoreID: storeID, ItemID: itemID})
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, reviews)
}

func (h *Handler) createReview(w http.ResponseWriter, r *http.Request) {
	var req domain.Review
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	review, err := h.Ratings.CreateReview(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]interface{}{
		"success": true,
		"message": "Review submitted successfully",
		"data":    review,
	})
}

func (h *Handler) getReviewStats(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	storeID, _ := strconv.Atoi(vars["storeId"])
	itemID, _ := strconv.Atoi(vars["itemId"])

	stats, err := h.Ratings.ReviewStats(storeID, itemID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, stats)
}

// ---- orders ----

func (h *Handler) getOrders(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := domain.OrderFilter{
		UserID: query.Get("user_id"),
		Status: query.Get("status"),
	}
	filter.StoreID, _ = strconv.Atoi(query.Get("store_id"))

	orders, err := h.Orders.List(filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, orders)
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req domain.OrderCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}

	order, err := h.Orders.Create(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]interface{}{
		"success": true,
		"message": "Order created successfully",
		"data":    order,
	})
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.Orders.Get(mux.Vars(r)["orderId"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, order)
}

func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["orderId"]

	var req struct {
		Status string `json:"status"`
		Note   string `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.Orders.UpdateStatus(r.Context(), orderID, req.Status, req.Note); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]interface{}{
		"success": true,
		"message": "Order status updated successfully",
	})
}

func (h *Handler) getOrderQRCode(w http.ResponseWriter, r *http.Request) {
	qr, err := h.Orders.QRCode(mux.Vars(r)["orderId"])
	if err != nil {
		writeError(w, err)
		return
	}
	if len(qr) == 0 {
		http.Error(w, "QR code not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(qr)
}

// ---- active users ----

func (h *Handler) getActiveUserCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.Presence.ActiveCount()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]interface{}{"success": true, "count": count})
}

func (h *Handler) getOrderingUserCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.Presence.OrderingCount()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]interface{}{"success": true, "count": count})
}

func (h *Handler) getHungerLevel(w http.ResponseWriter, r *http.Request) {
	level, err := h.Presence.HungerLevel()
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, level)
}

func (h *Handler) getActiveUserStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Presence.Stats()
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, stats)
}

func (h *Handler) addActiveUser(w http.ResponseWriter, r *http.Request) {
	var user domain.ActiveUser
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.Presence.Heartbeat(user); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]interface{}{
		"success": true,
		"message": "Active user updated",
	})
}

func (h *Handler) updateUserActivity(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	var fields map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.Presence.UpdateActivity(userID, fields); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]interface{}{
		"success": true,
		"message": "Activity updated",
	})
}

func (h *Handler) removeActiveUser(w http.ResponseWriter, r *http.Request) {
	if err := h.Presence.Remove(mux.Vars(r)["userId"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]interface{}{
		"success": true,
		"message": "User removed",
	})
}

// ---- admin ----

func (h *Handler) getRegistrations(w http.ResponseWriter, r *http.Request) {
	registrations, err := h.Stores.ListRegistrations()
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, registrations)
}

func (h *Handler) createStoreByAdmin(w http.ResponseWriter, r *http.Request) {
	var req domain.StoreCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	store, err := h.Stores.CreateStore(req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]interface{}{
		"success": true,
		"message": "Store created successfully",
		"data":    store,
	})
}

// ---- analytics ----

func (h *Handler) getTopRated(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	items, err := h.Ratings.TopRated(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, items)
}
