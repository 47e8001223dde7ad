package service

import (
	"context"
	"time"

	"campus-food-backend/internal/domain"
)

type StoreRepository interface {
	ListStores(openOnly *bool) ([]domain.Store, error)
	GetStore(id int) (*domain.Store, error)
	GetStoreByObjectID(hex string) (*domain.Store, error)
	GetStoreByName(pattern string) (*domain.Store, error)
	SetStoreStatus(id int, isOpen bool) error
	GetMenu(storeID int) ([]domain.MenuItem, error)
	SaveMenu(storeID int, menu []domain.MenuItem) error
	StoreExists(email, storeID, name string) (bool, error)
	NextStoreID() (int, error)
	InsertStore(store domain.StoreCreate, hashedPassword string) (*domain.Store, error)
	AdminCredentials(username string) (*domain.Credentials, error)
	StoreCredentials(slug string) (*domain.Credentials, error)
	UserCredentials(username string) (*domain.Credentials, error)
	UserExists(email, username string) (bool, error)
	InsertUser(user domain.UserCreate, hashedPassword string) (string, error)
	InsertRegistration(reg domain.StoreRegistrationCreate) (string, error)
	ListRegistrations() ([]domain.StoreRegistration, error)
}

type ReviewRepository interface {
	InsertReview(review *domain.Review) error
	ListReviews(filter domain.ReviewFilter) ([]domain.Review, error)
	ListApprovedItemReviews(storeID, itemID int) ([]domain.Review, error)
	GetMenu(storeID int) ([]domain.MenuItem, error)
	SaveMenu(storeID int, menu []domain.MenuItem) error
	TopRatedItems(limit int) ([]domain.TopRatedItem, error)
}

type OrderRepository interface {
	InsertOrder(order *domain.Order) error
	GetOrder(orderID string) (*domain.Order, error)
	ListOrders(filter domain.OrderFilter) ([]domain.Order, error)
	SaveOrderStatus(orderID, status string, timeline []domain.TimelineEntry) error
	SaveOrderQR(orderID string, png []byte) error
	GetOrderQR(orderID string) ([]byte, error)
}

type PresenceRepository interface {
	UpsertActiveUser(user domain.ActiveUser) error
	MergeActivity(userID string, fields map[string]interface{}, lastActivity time.Time) error
	DeleteActiveUser(userID string) error
	CountActive(since time.Time) (int, error)
	CountOrdering(since time.Time) (int, error)
	ListActive(since time.Time) ([]domain.ActiveUser, error)
}

type StatsCache interface {
	SetItemStats(ctx context.Context, storeID, itemID int, rating float64, count int) error
	UpdateLeaderboard(ctx context.Context, storeID, itemID int, rating float64) error
	TopRated(ctx context.Context, limit int) ([]domain.TopRatedItem, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event) error
}

type StoreServiceInterface interface {
	Login(req domain.LoginRequest) (*domain.LoginResponse, error)
	RegisterUser(req domain.UserCreate) (string, error)
	RegisterStore(req domain.StoreRegistrationCreate) (string, error)
	List(openOnly *bool) ([]domain.Store, error)
	Get(id string) (*domain.Store, error)
	GetByName(name string) (*domain.Store, error)
	SetStatus(id int, isOpen bool) error
	Menu(storeID int) ([]domain.MenuItem, error)
	ReplaceMenu(storeID int, menu []domain.MenuItem) error
	UpdateMenuItem(storeID, itemID int, fields map[string]interface{}) error
	CreateStore(req domain.StoreCreate) (*domain.Store, error)
	ListRegistrations() ([]domain.StoreRegistration, error)
}

type RatingServiceInterface interface {
	CreateReview(ctx context.Context, req domain.Review) (*domain.Review, error)
	ListReviews(filter domain.ReviewFilter) ([]domain.Review, error)
	ReviewStats(storeID, itemID int) (domain.ReviewStats, error)
	RecomputeItemRating(ctx context.Context, storeID, itemID int) error
	RateItem(ctx context.Context, storeID, itemID int, rating float64) (domain.ReviewStats, error)
	TopRated(ctx context.Context, limit int) ([]domain.TopRatedItem, error)
}

type OrderServiceInterface interface {
	Create(ctx context.Context, req domain.OrderCreate) (*domain.Order, error)
	Get(orderID string) (*domain.Order, error)
	List(filter domain.OrderFilter) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, orderID, status, note string) error
	QRCode(orderID string) ([]byte, error)
}

type PresenceServiceInterface interface {
	Heartbeat(user domain.ActiveUser) error
	UpdateActivity(userID string, fields map[string]interface{}) error
	Remove(userID string) error
	ActiveCount() (int, error)
	OrderingCount() (int, error)
	HungerLevel() (*domain.HungerLevel, error)
	Stats() (*domain.ActiveUserStats, error)
}
