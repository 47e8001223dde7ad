package domain

import "time"

// Order statuses form a closed set; anything else is rejected.
const (
	StatusPending   = "pending"
	StatusPreparing = "preparing"
	StatusReady     = "ready"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

const (
	ReviewApproved = "approved"
	ReviewPending  = "pending"
	ReviewRejected = "rejected"
)

const DefaultRating = 4.0

type MenuItem struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	IsPopular   bool    `json:"is_popular"`
	IsFavorite  bool    `json:"is_favorite"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"review_count"`
	Category    string  `json:"category"`
	Image       string  `json:"image,omitempty"`
	Description string  `json:"description,omitempty"`
	IsAvailable bool    `json:"is_available"`
}

type StoreStats struct {
	TotalOrders   int     `json:"total_orders"`
	TotalRevenue  float64 `json:"total_revenue"`
	AverageRating float64 `json:"average_rating"`
}

type Store struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	StoreID   string     `json:"store_id"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	Image     string     `json:"image,omitempty"`
	Rating    float64    `json:"rating"`
	Tagline   string     `json:"tagline,omitempty"`
	Gradient  string     `json:"gradient,omitempty"`
	IsOpen    bool       `json:"is_open"`
	Reviews   int        `json:"reviews"`
	Menu      []MenuItem `json:"menu"`
	Stats     StoreStats `json:"stats"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type StoreCreate struct {
	Name     string  `json:"name"`
	StoreID  string  `json:"store_id"`
	Email    string  `json:"email"`
	Phone    string  `json:"phone"`
	Password string  `json:"password"`
	Image    string  `json:"image"`
	Rating   float64 `json:"rating"`
	Tagline  string  `json:"tagline"`
	Gradient string  `json:"gradient"`
	IsOpen   *bool   `json:"is_open"`
	Reviews  int     `json:"reviews"`
}

type Review struct {
	ID         string    `json:"id"`
	StoreID    int       `json:"store_id"`
	StoreName  string    `json:"store_name"`
	ItemID     int       `json:"item_id"`
	ItemName   string    `json:"item_name"`
	Rating     float64   `json:"rating"`
	Comment    string    `json:"comment"`
	UserName   string    `json:"user_name"`
	UserAvatar string    `json:"user_avatar"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type ReviewFilter struct {
	StoreID  int
	ItemID   int
	UserName string
}

type ReviewStats struct {
	Rating float64 `json:"rating"`
	Count  int     `json:"count"`
}

type OrderItem struct {
	StoreID   int     `json:"store_id"`
	StoreName string  `json:"store_name"`
	ItemID    int     `json:"item_id"`
	ItemName  string  `json:"item_name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

type DeliveryAddress struct {
	Building string `json:"building"`
	Room     string `json:"room"`
	Phone    string `json:"phone"`
}

type TimelineEntry struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Note      string    `json:"note"`
}

type Order struct {
	ID              string          `json:"id"`
	OrderID         string          `json:"order_id"`
	UserID          string          `json:"user_id"`
	UserName        string          `json:"user_name"`
	Items           []OrderItem     `json:"items"`
	TotalAmount     float64         `json:"total_amount"`
	Status          string          `json:"status"`
	DeliveryAddress DeliveryAddress `json:"delivery_address"`
	PaymentMethod   string          `json:"payment_method"`
	Notes           string          `json:"notes,omitempty"`
	Timeline        []TimelineEntry `json:"timeline"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type OrderCreate struct {
	UserID          string          `json:"user_id"`
	UserName        string          `json:"user_name"`
	Items           []OrderItem     `json:"items"`
	DeliveryAddress DeliveryAddress `json:"delivery_address"`
	PaymentMethod   string          `json:"payment_method"`
	Notes           string          `json:"notes"`
}

type OrderFilter struct {
	UserID  string
	StoreID int
	Status  string
}

type DeviceInfo struct {
	Type    string `json:"type"`
	OS      string `json:"os,omitempty"`
	Browser string `json:"browser,omitempty"`
}

type ActiveUser struct {
	ID           string     `json:"id,omitempty"`
	UserID       string     `json:"user_id"`
	SessionID    string     `json:"session_id"`
	IsOrdering   bool       `json:"is_ordering"`
	CurrentStore string     `json:"current_store,omitempty"`
	DeviceInfo   DeviceInfo `json:"device_info"`
	Timestamp    time.Time  `json:"timestamp"`
	LastActivity time.Time  `json:"last_activity"`
}

type DeviceCount struct {
	Device string `json:"_id"`
	Count  int    `json:"count"`
}

type HungerLevel struct {
	HungerLevel   int `json:"hunger_level"`
	ActiveUsers   int `json:"active_users"`
	OrderingUsers int `json:"ordering_users"`
}

type ActiveUserStats struct {
	ActiveUsers   int            `json:"active_users"`
	OrderingUsers int            `json:"ordering_users"`
	HungerLevel   int            `json:"hunger_level"`
	ByStore       map[string]int `json:"by_store"`
	ByDevice      []DeviceCount  `json:"by_device"`
	Timestamp     time.Time      `json:"timestamp"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Success   bool   `json:"success"`
	IsAdmin   bool   `json:"is_admin"`
	StoreName string `json:"store_name,omitempty"`
	Message   string `json:"message,omitempty"`
}

type UserCreate struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type StoreRegistrationCreate struct {
	StoreName       string `json:"store_name"`
	StoreID         string `json:"store_id"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type StoreRegistration struct {
	ID        string    `json:"id"`
	StoreName string    `json:"store_name"`
	StoreID   string    `json:"store_id"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// Credentials is what the auth flow needs from a stored account document.
type Credentials struct {
	HashedPassword string
	IsAdmin        bool
	StoreName      string
}

type TopRatedItem struct {
	StoreID  int     `json:"store_id"`
	ItemID   int     `json:"item_id"`
	ItemName string  `json:"item_name,omitempty"`
	Rating   float64 `json:"rating"`
}

// Event is the analytics message emitted to Kafka on review and order
// mutations.
type Event struct {
	EventID   string    `json:"event_id"`
	Type      string    `json:"type"`
	StoreID   int       `json:"store_id,omitempty"`
	ItemID    int       `json:"item_id,omitempty"`
	OrderID   string    `json:"order_id,omitempty"`
	Rating    float64   `json:"rating,omitempty"`
	Status    string    `json:"status,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

const (
	EventNewReview     = "new_review"
	EventOrderCreated  = "order_created"
	EventStatusChanged = "order_status_changed"
)
