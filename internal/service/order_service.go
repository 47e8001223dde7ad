package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"campus-food-backend/internal/domain"

	"github.com/google/uuid"
)

var validStatuses = map[string]bool{
	domain.StatusPending:   true,
	domain.StatusPreparing: true,
	domain.StatusReady:     true,
	domain.StatusDelivered: true,
	domain.StatusCancelled: true,
}

// orderIDGenerator produces millisecond-timestamp order ids that stay
// distinct even when two orders land in the same millisecond.
type orderIDGenerator struct {
	mu   sync.Mutex
	last int64
}

func (g *orderIDGenerator) Next(now time.Time) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := now.UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	return fmt.Sprintf("ORD-%d", ms)
}

type OrderService struct {
	repo      OrderRepository
	qrEncoder QRGenerator
	publisher EventPublisher
	ids       orderIDGenerator
}

func NewOrderService(repo OrderRepository, qr QRGenerator, publisher EventPublisher) *OrderService {
	return &OrderService{
		repo:      repo,
		qrEncoder: qr,
		publisher: publisher,
	}
}

func (s *OrderService) Create(ctx context.Context, req domain.OrderCreate) (*domain.Order, error) {
	if req.UserID == "" || len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: order must carry a user id and at least one item", ErrInvalidInput)
	}

	// The total is always computed here; a client-supplied figure is
	// never trusted.
	var total float64
	for _, item := range req.Items {
		total += item.Price * float64(item.Quantity)
	}

	now := time.Now().UTC()
	order := domain.Order{
		OrderID:         s.ids.Next(now),
		UserID:          req.UserID,
		UserName:        req.UserName,
		Items:           req.Items,
		TotalAmount:     total,
		Status:          domain.StatusPending,
		DeliveryAddress: req.DeliveryAddress,
		PaymentMethod:   req.PaymentMethod,
		Notes:           req.Notes,
		Timeline: []domain.TimelineEntry{{
			Status:    domain.StatusPending,
			Timestamp: now,
			Note:      "Order placed",
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if order.PaymentMethod == "" {
		order.PaymentMethod = "cash"
	}

	if err := s.repo.InsertOrder(&order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if s.qrEncoder != nil {
		if qr, err := s.qrEncoder.Generate(order.OrderID); err == nil {
			if err := s.repo.SaveOrderQR(order.OrderID, qr); err != nil {
				log.Printf("Warning: failed to store QR code for order %s: %v", order.OrderID, err)
			}
		}
	}

	if s.publisher != nil {
		_ = s.publisher.Publish(ctx, domain.Event{
			EventID:   uuid.NewString(),
			Type:      domain.EventOrderCreated,
			OrderID:   order.OrderID,
			Timestamp: now,
		})
	}

	return &order, nil
}

func (s *OrderService) Get(orderID string) (*domain.Order, error) {
	return s.repo.GetOrder(orderID)
}

func (s *OrderService) List(filter domain.OrderFilter) ([]domain.Order, error) {
	return s.repo.ListOrders(filter)
}

// UpdateStatus appends to the timeline and moves the status. Only the
// closed status set is checked; transition order is not enforced.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID, status, note string) error {
	if !validStatuses[status] {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	order, err := s.repo.GetOrder(orderID)
	if err != nil {
		return err
	}

	if note == "" {
		note = "Order " + status
	}
	timeline := append(order.Timeline, domain.TimelineEntry{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Note:      note,
	})

	if err := s.repo.SaveOrderStatus(orderID, status, timeline); err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	if s.publisher != nil {
		_ = s.publisher.Publish(ctx, domain.Event{
			EventID:   uuid.NewString(),
			Type:      domain.EventStatusChanged,
			OrderID:   orderID,
			Status:    status,
			Timestamp: time.Now().UTC(),
		})
	}

	return nil
}

func (s *OrderService) QRCode(orderID string) ([]byte, error) {
	qr, err := s.repo.GetOrderQR(orderID)
	if err != nil {
		return nil, err
	}
	if len(qr) == 0 && s.qrEncoder != nil {
		regenerated, err := s.qrEncoder.Generate(orderID)
		if err != nil {
			return nil, err
		}
		if err := s.repo.SaveOrderQR(orderID, regenerated); err != nil {
			log.Printf("Warning: failed to cache regenerated QR code: %v", err)
		}
		return regenerated, nil
	}
	return qr, nil
}

var _ OrderServiceInterface = (*OrderService)(nil)
