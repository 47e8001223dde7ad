package mocks

import (
	"context"
	"time"

	"campus-food-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// StoreRepository mocks service.StoreRepository.
type StoreRepository struct {
	mock.Mock
}

func NewStoreRepository(t testingT) *StoreRepository {
	m := &StoreRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *StoreRepository) ListStores(openOnly *bool) ([]domain.Store, error) {
	args := m.Called(openOnly)
	var stores []domain.Store
	if v := args.Get(0); v != nil {
		stores = v.([]domain.Store)
	}
	return stores, args.Error(1)
}

func (m *StoreRepository) GetStore(id int) (*domain.Store, error) {
	args := m.Called(id)
	var store *domain.Store
	if v := args.Get(0); v != nil {
		store = v.(*domain.Store)
	}
	return store, args.Error(1)
}

func (m *StoreRepository) GetStoreByObjectID(hex string) (*domain.Store, error) {
	args := m.Called(hex)
	var store *domain.Store
	if v := args.Get(0); v != nil {
		store = v.(*domain.Store)
	}
	return store, args.Error(1)
}

func (m *StoreRepository) GetStoreByName(pattern string) (*domain.Store, error) {
	args := m.Called(pattern)
	var store *domain.Store
	if v := args.Get(0); v != nil {
		store = v.(*domain.Store)
	}
	return store, args.Error(1)
}

func (m *StoreRepository) SetStoreStatus(id int, isOpen bool) error {
	return m.Called(id, isOpen).Error(0)
}

func (m *StoreRepository) GetMenu(storeID int) ([]domain.MenuItem, error) {
	args := m.Called(storeID)
	var menu []domain.MenuItem
	if v := args.Get(0); v != nil {
		menu = v.([]domain.MenuItem)
	}
	return menu, args.Error(1)
}

func (m *StoreRepository) SaveMenu(storeID int, menu []domain.MenuItem) error {
	return m.Called(storeID, menu).Error(0)
}

func (m *StoreRepository) StoreExists(email, storeID, name string) (bool, error) {
	args := m.Called(email, storeID, name)
	return args.Bool(0), args.Error(1)
}

func (m *StoreRepository) NextStoreID() (int, error) {
	args := m.Called()
	return args.Int(0), args.Error(1)
}

func (m *StoreRepository) InsertStore(store domain.StoreCreate, hashedPassword string) (*domain.Store, error) {
	args := m.Called(store, hashedPassword)
	var created *domain.Store
	if v := args.Get(0); v != nil {
		created = v.(*domain.Store)
	}
	return created, args.Error(1)
}

func (m *StoreRepository) AdminCredentials(username string) (*domain.Credentials, error) {
	args := m.Called(username)
	var creds *domain.Credentials
	if v := args.Get(0); v != nil {
		creds = v.(*domain.Credentials)
	}
	return creds, args.Error(1)
}

func (m *StoreRepository) StoreCredentials(slug string) (*domain.Credentials, error) {
	args := m.Called(slug)
	var creds *domain.Credentials
	if v := args.Get(0); v != nil {
		creds = v.(*domain.Credentials)
	}
	return creds, args.Error(1)
}

func (m *StoreRepository) UserCredentials(username string) (*domain.Credentials, error) {
	args := m.Called(username)
	var creds *domain.Credentials
	if v := args.Get(0); v != nil {
		creds = v.(*domain.Credentials)
	}
	return creds, args.Error(1)
}

func (m *StoreRepository) UserExists(email, username string) (bool, error) {
	args := m.Called(email, username)
	return args.Bool(0), args.Error(1)
}

func (m *StoreRepository) InsertUser(user domain.UserCreate, hashedPassword string) (string, error) {
	args := m.Called(user, hashedPassword)
	return args.String(0), args.Error(1)
}

func (m *StoreRepository) InsertRegistration(reg domain.StoreRegistrationCreate) (string, error) {
	args := m.Called(reg)
	return args.String(0), args.Error(1)
}

func (m *StoreRepository) ListRegistrations() ([]domain.StoreRegistration, error) {
	args := m.Called()
	var regs []domain.StoreRegistration
	if v := args.Get(0); v != nil {
		regs = v.([]domain.StoreRegistration)
	}
	return regs, args.Error(1)
}

// ReviewRepository mocks service.ReviewRepository.
type ReviewRepository struct {
	mock.Mock
}

func NewReviewRepository(t testingT) *ReviewRepository {
	m := &ReviewRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *ReviewRepository) InsertReview(review *domain.Review) error {
	return m.Called(review).Error(0)
}

func (m *ReviewRepository) ListReviews(filter domain.ReviewFilter) ([]domain.Review, error) {
	args := m.Called(filter)
	var reviews []domain.Review
	if v := args.Get(0); v != nil {
		reviews = v.([]domain.Review)
	}
	return reviews, args.Error(1)
}

func (m *ReviewRepository) ListApprovedItemReviews(storeID, itemID int) ([]domain.Review, error) {
	args := m.Called(storeID, itemID)
	var reviews []domain.Review
	if v := args.Get(0); v != nil {
		reviews = v.([]domain.Review)
	}
	return reviews, args.Error(1)
}

func (m *ReviewRepository) GetMenu(storeID int) ([]domain.MenuItem, error) {
	args := m.Called(storeID)
	var menu []domain.MenuItem
	if v := args.Get(0); v != nil {
		menu = v.([]domain.MenuItem)
	}
	return menu, args.Error(1)
}

func (m *ReviewRepository) SaveMenu(storeID int, menu []domain.MenuItem) error {
	return m.Called(storeID, menu).Error(0)
}

func (m *ReviewRepository) TopRatedItems(limit int) ([]domain.TopRatedItem, error) {
	args := m.Called(limit)
	var items []domain.TopRatedItem
	if v := args.Get(0); v != nil {
		items = v.([]domain.TopRatedItem)
	}
	return items, args.Error(1)
}

// OrderRepository mocks service.OrderRepository.
type OrderRepository struct {
	mock.Mock
}

func NewOrderRepository(t testingT) *OrderRepository {
	m := &OrderRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *OrderRepository) InsertOrder(order *domain.Order) error {
	return m.Called(order).Error(0)
}

func (m *OrderRepository) GetOrder(orderID string) (*domain.Order, error) {
	args := m.Called(orderID)
	var order *domain.Order
	if v := args.Get(0); v != nil {
		order = v.(*domain.Order)
	}
	return order, args.Error(1)
}

func (m *OrderRepository) ListOrders(filter domain.OrderFilter) ([]domain.Order, error) {
	args := m.Called(filter)
	var orders []domain.Order
	if v := args.Get(0); v != nil {
		orders = v.([]domain.Order)
	}
	return orders, args.Error(1)
}

func (m *OrderRepository) SaveOrderStatus(orderID, status string, timeline []domain.TimelineEntry) error {
	return m.Called(orderID, status, timeline).Error(0)
}

func (m *OrderRepository) SaveOrderQR(orderID string, png []byte) error {
	return m.Called(orderID, png).Error(0)
}

func (m *OrderRepository) GetOrderQR(orderID string) ([]byte, error) {
	args := m.Called(orderID)
	var png []byte
	if v := args.Get(0); v != nil {
		png = v.([]byte)
	}
	return png, args.Error(1)
}

// PresenceRepository mocks service.PresenceRepository.
type PresenceRepository struct {
	mock.Mock
}

func NewPresenceRepository(t testingT) *PresenceRepository {
	m := &PresenceRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *PresenceRepository) UpsertActiveUser(user domain.ActiveUser) error {
	return m.Called(user).Error(0)
}

func (m *PresenceRepository) MergeActivity(userID string, fields map[string]interface{}, lastActivity time.Time) error {
	return m.Called(userID, fields, lastActivity).Error(0)
}

func (m *PresenceRepository) DeleteActiveUser(userID string) error {
	return m.Called(userID).Error(0)
}

func (m *PresenceRepository) CountActive(since time.Time) (int, error) {
	args := m.Called(since)
	return args.Int(0), args.Error(1)
}

func (m *PresenceRepository) CountOrdering(since time.Time) (int, error) {
	args := m.Called(since)
	return args.Int(0), args.Error(1)
}

func (m *PresenceRepository) ListActive(since time.Time) ([]domain.ActiveUser, error) {
	args := m.Called(since)
	var users []domain.ActiveUser
	if v := args.Get(0); v != nil {
		users = v.([]domain.ActiveUser)
	}
	return users, args.Error(1)
}

// StatsCache mocks service.StatsCache.
type StatsCache struct {
	mock.Mock
}

func NewStatsCache(t testingT) *StatsCache {
	m := &StatsCache{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *StatsCache) SetItemStats(ctx context.Context, storeID, itemID int, rating float64, count int) error {
	return m.Called(ctx, storeID, itemID, rating, count).Error(0)
}

func (m *StatsCache) UpdateLeaderboard(ctx context.Context, storeID, itemID int, rating float64) error {
	return m.Called(ctx, storeID, itemID, rating).Error(0)
}

func (m *StatsCache) TopRated(ctx context.Context, limit int) ([]domain.TopRatedItem, error) {
	args := m.Called(ctx, limit)
	var items []domain.TopRatedItem
	if v := args.Get(0); v != nil {
		items = v.([]domain.TopRatedItem)
	}
	return items, args.Error(1)
}

// EventPublisher mocks service.EventPublisher.
type EventPublisher struct {
	mock.Mock
}

func NewEventPublisher(t testingT) *EventPublisher {
	m := &EventPublisher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *EventPublisher) Publish(ctx context.Context, event domain.Event) error {
	return m.Called(ctx, event).Error(0)
}

// QRGenerator mocks service.QRGenerator.
type QRGenerator struct {
	mock.Mock
}

func NewQRGenerator(t testingT) *QRGenerator {
	m := &QRGenerator{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *QRGenerator) Generate(orderID string) ([]byte, error) {
	args := m.Called(orderID)
	var png []byte
	if v := args.Get(0); v != nil {
		png = v.([]byte)
	}
	return png, args.Error(1)
}
