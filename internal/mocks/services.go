package mocks

import (
	"context"

	"campus-food-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// StoreServiceInterface mocks service.StoreServiceInterface.
type StoreServiceInterface struct {
	mock.Mock
}

func NewStoreServiceInterface(t testingT) *StoreServiceInterface {
	m := &StoreServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *StoreServiceInterface) Login(req domain.LoginRequest) (*domain.LoginResponse, error) {
	args := m.Called(req)
	var resp *domain.LoginResponse
	if v := args.Get(0); v != nil {
		resp = v.(*domain.LoginResponse)
	}
	return resp, args.Error(1)
}

func (m *StoreServiceInterface) RegisterUser(req domain.UserCreate) (string, error) {
	args := m.Called(req)
	return args.String(0), args.Error(1)
}

func (m *StoreServiceInterface) RegisterStore(req domain.StoreRegistrationCreate) (string, error) {
	args := m.Called(req)
	return args.String(0), args.Error(1)
}

func (m *StoreServiceInterface) List(openOnly *bool) ([]domain.Store, error) {
	args := m.Called(openOnly)
	var stores []domain.Store
	if v := args.Get(0); v != nil {
		stores = v.([]domain.Store)
	}
	return stores, args.Error(1)
}

func (m *StoreServiceInterface) Get(id string) (*domain.Store, error) {
	args := m.Called(id)
	var store *domain.Store
	if v := args.Get(0); v != nil {
		store = v.(*domain.Store)
	}
	return store, args.Error(1)
}

func (m *StoreServiceInterface) GetByName(name string) (*domain.Store, error) {
	args := m.Called(name)
	var store *domain.Store
	if v := args.Get(0); v != nil {
		store = v.(*domain.Store)
	}
	return store, args.Error(1)
}

func (m *StoreServiceInterface) SetStatus(id int, isOpen bool) error {
	return m.Called(id, isOpen).Error(0)
}

func (m *StoreServiceInterface) Menu(storeID int) ([]domain.MenuItem, error) {
	args := m.Called(storeID)
	var menu []domain.MenuItem
	if v := args.Get(0); v != nil {
		menu = v.([]domain.MenuItem)
	}
	return menu, args.Error(1)
}

func (m *StoreServiceInterface) ReplaceMenu(storeID int, menu []domain.MenuItem) error {
	return m.Called(storeID, menu).Error(0)
}

func (m *StoreServiceInterface) UpdateMenuItem(storeID, itemID int, fields map[string]interface{}) error {
	return m.Called(storeID, itemID, fields).Error(0)
}

func (m *StoreServiceInterface) CreateStore(req domain.StoreCreate) (*domain.Store, error) {
	args := m.Called(req)
	var store *domain.Store
	if v := args.Get(0); v != nil {
		store = v.(*domain.Store)
	}
	return store, args.Error(1)
}

func (m *StoreServiceInterface) ListRegistrations() ([]domain.StoreRegistration, error) {
	args := m.Called()
	var regs []domain.StoreRegistration
	if v := args.Get(0); v != nil {
		regs = v.([]domain.StoreRegistration)
	}
	return regs, args.Error(1)
}

// RatingServiceInterface mocks service.RatingServiceInterface.
type RatingServiceInterface struct {
	mock.Mock
}

func NewRatingServiceInterface(t testingT) *RatingServiceInterface {
	m := &RatingServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *RatingServiceInterface) CreateReview(ctx context.Context, req domain.Review) (*domain.Review, error) {
	args := m.Called(ctx, req)
	var review *domain.Review
	if v := args.Get(0); v != nil {
		review = v.(*domain.Review)
	}
	return review, args.Error(1)
}

func (m *RatingServiceInterface) ListReviews(filter domain.ReviewFilter) ([]domain.Review, error) {
	args := m.Called(filter)
	var reviews []domain.Review
	if v := args.Get(0); v != nil {
		reviews = v.([]domain.Review)
	}
	return reviews, args.Error(1)
}

func (m *RatingServiceInterface) ReviewStats(storeID, itemID int) (domain.ReviewStats, error) {
	args := m.Called(storeID, itemID)
	var stats domain.ReviewStats
	if v := args.Get(0); v != nil {
		stats = v.(domain.ReviewStats)
	}
	return stats, args.Error(1)
}

func (m *RatingServiceInterface) RecomputeItemRating(ctx context.Context, storeID, itemID int) error {
	return m.Called(ctx, storeID, itemID).Error(0)
}

func (m *RatingServiceInterface) RateItem(ctx context.Context, storeID, itemID int, rating float64) (domain.ReviewStats, error) {
	args := m.Called(ctx, storeID, itemID, rating)
	var stats domain.ReviewStats
	if v := args.Get(0); v != nil {
		stats = v.(domain.ReviewStats)
	}
	return stats, args.Error(1)
}

func (m *RatingServiceInterface) TopRated(ctx context.Context, limit int) ([]domain.TopRatedItem, error) {
	args := m.Called(ctx, limit)
	var items []domain.TopRatedItem
	if v := args.Get(0); v != nil {
		items = v.([]domain.TopRatedItem)
	}
	return items, args.Error(1)
}

// OrderServiceInterface mocks service.OrderServiceInterface.
type OrderServiceInterface struct {
	mock.Mock
}

func NewOrderServiceInterface(t testingT) *OrderServiceInterface {
	m := &OrderServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *OrderServiceInterface) Create(ctx context.Context, req domain.OrderCreate) (*domain.Order, error) {
	args := m.Called(ctx, req)
	var order *domain.Order
	if v := args.Get(0); v != nil {
		order = v.(*domain.Order)
	}
	return order, args.Error(1)
}

func (m *OrderServiceInterface) Get(orderID string) (*domain.Order, error) {
	args := m.Called(orderID)
	var order *domain.Order
	if v := args.Get(0); v != nil {
		order = v.(*domain.Order)
	}
	return order, args.Error(1)
}

func (m *OrderServiceInterface) List(filter domain.OrderFilter) ([]domain.Order, error) {
	args := m.Called(filter)
	var orders []domain.Order
	if v := args.Get(0); v != nil {
		orders = v.([]domain.Order)
	}
	return orders, args.Error(1)
}

func (m *OrderServiceInterface) UpdateStatus(ctx context.Context, orderID, status, note string) error {
	return m.Called(ctx, orderID, status, note).Error(0)
}

func (m *OrderServiceInterface) QRCode(orderID string) ([]byte, error) {
	args := m.Called(orderID)
	var png []byte
	if v := args.Get(0); v != nil {
		png = v.([]byte)
	}
	return png, args.Error(1)
}

// PresenceServiceInterface mocks service.PresenceServiceInterface.
type PresenceServiceInterface struct {
	mock.Mock
}

func NewPresenceServiceInterface(t testingT) *PresenceServiceInterface {
	m := &PresenceServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *PresenceServiceInterface) Heartbeat(user domain.ActiveUser) error {
	return m.Called(user).Error(0)
}

func (m *PresenceServiceInterface) UpdateActivity(userID string, fields map[string]interface{}) error {
	return m.Called(userID, fields).Error(0)
}

func (m *PresenceServiceInterface) Remove(userID string) error {
	return m.Called(userID).Error(0)
}

func (m *PresenceServiceInterface) ActiveCount() (int, error) {
	args := m.Called()
	return args.Int(0), args.Error(1)
}

func (m *PresenceServiceInterface) OrderingCount() (int, error) {
	args := m.Called()
	return args.Int(0), args.Error(1)
}

func (m *PresenceServiceInterface) HungerLevel() (*domain.HungerLevel, error) {
	args := m.Called()
	var level *domain.HungerLevel
	if v := args.Get(0); v != nil {
		level = v.(*domain.HungerLevel)
	}
	return level, args.Error(1)
}

func (m *PresenceServiceInterface) Stats() (*domain.ActiveUserStats, error) {
	args := m.Called()
	var stats *domain.ActiveUserStats
	if v := args.Get(0); v != nil {
		stats = v.(*domain.ActiveUserStats)
	}
	return stats, args.Error(1)
}

// Pinger mocks httpapi.Pinger.
type Pinger struct {
	mock.Mock
}

func NewPinger(t testingT) *Pinger {
	m := &Pinger{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *Pinger) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
