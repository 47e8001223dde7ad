package storage

import (
	"time"

	"campus-food-backend/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Stored documents predate the current schema, so decoding goes through
// pointer-typed doc mirrors and the conversions below fill defaults:
// menu item ids backfilled by position, rating 4.0, is_open true, zeroed
// stats. The conversions are pure; identical documents always normalize
// to identical results.

type menuItemDoc struct {
	ID          int      `bson:"id"`
	Name        string   `bson:"name"`
	Price       float64  `bson:"price"`
	IsPopular   bool     `bson:"is_popular"`
	IsFavorite  bool     `bson:"is_favorite"`
	Rating      *float64 `bson:"rating"`
	ReviewCount int      `bson:"review_count"`
	Category    *string  `bson:"category"`
	Image       string   `bson:"image"`
	Description string   `bson:"description"`
	IsAvailable *bool    `bson:"is_available"`
}

type statsDoc struct {
	TotalOrders   int     `bson:"total_orders"`
	TotalRevenue  float64 `bson:"total_revenue"`
	AverageRating float64 `bson:"average_rating"`
}

type storeDoc struct {
	OID            primitive.ObjectID `bson:"_id,omitempty"`
	ID             int                `bson:"id"`
	Name           string             `bson:"name"`
	StoreID        string             `bson:"store_id"`
	Email          string             `bson:"email"`
	Phone          string             `bson:"phone"`
	HashedPassword string             `bson:"hashed_password"`
	Image          string             `bson:"image"`
	Rating         *float64           `bson:"rating"`
	Tagline        string             `bson:"tagline"`
	Gradient       string             `bson:"gradient"`
	IsOpen         *bool              `bson:"is_open"`
	Reviews        int                `bson:"reviews"`
	Menu           []menuItemDoc      `bson:"menu"`
	Stats          *statsDoc          `bson:"stats"`
	CreatedAt      time.Time          `bson:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at"`
}

type reviewDoc struct {
	OID        primitive.ObjectID `bson:"_id,omitempty"`
	StoreID    int                `bson:"store_id"`
	StoreName  string             `bson:"store_name"`
	ItemID     int                `bson:"item_id"`
	ItemName   string             `bson:"item_name"`
	Rating     float64            `bson:"rating"`
	Comment    string             `bson:"comment"`
	UserName   string             `bson:"user_name"`
	UserAvatar string             `bson:"user_avatar"`
	Status     string             `bson:"status"`
	CreatedAt  time.Time          `bson:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at"`
}

type orderItemDoc struct {
	StoreID   int     `bson:"store_id"`
	StoreName string  `bson:"store_name"`
	ItemID    int     `bson:"item_id"`
	ItemName  string  `bson:"item_name"`
	Price     float64 `bson:"price"`
	Quantity  int     `bson:"quantity"`
}

type deliveryAddressDoc struct {
	Building string `bson:"building"`
	Room     string `bson:"room"`
	Phone    string `bson:"phone"`
}

type timelineEntryDoc struct {
	Status    string    `bson:"status"`
	Timestamp time.Time `bson:"timestamp"`
	Note      string    `bson:"note"`
}

type orderDoc struct {
	OID             primitive.ObjectID `bson:"_id,omitempty"`
	OrderID         string             `bson:"order_id"`
	UserID          string             `bson:"user_id"`
	UserName        string             `bson:"user_name"`
	Items           []orderItemDoc     `bson:"items"`
	TotalAmount     float64            `bson:"total_amount"`
	Status          string             `bson:"status"`
	DeliveryAddress deliveryAddressDoc `bson:"delivery_address"`
	PaymentMethod   string             `bson:"payment_method"`
	Notes           string             `bson:"notes"`
	Timeline        []timelineEntryDoc `bson:"timeline"`
	QRCode          []byte             `bson:"qr_code,omitempty"`
	CreatedAt       time.Time          `bson:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at"`
}

type deviceInfoDoc struct {
	Type    string `bson:"type"`
	OS      string `bson:"os"`
	Browser string `bson:"browser"`
}

type activeUserDoc struct {
	OID          primitive.ObjectID `bson:"_id,omitempty"`
	UserID       string             `bson:"user_id"`
	SessionID    string             `bson:"session_id"`
	IsOrdering   bool               `bson:"is_ordering"`
	CurrentStore string             `bson:"current_store"`
	DeviceInfo   deviceInfoDoc      `bson:"device_info"`
	Timestamp    time.Time          `bson:"timestamp"`
	LastActivity time.Time          `bson:"last_activity"`
}

type registrationDoc struct {
	OID       primitive.ObjectID `bson:"_id,omitempty"`
	StoreName string             `bson:"store_name"`
	StoreID   string             `bson:"store_id"`
	Email     string             `bson:"email"`
	Phone     string             `bson:"phone"`
	Status    string             `bson:"status"`
	CreatedAt time.Time          `bson:"created_at"`
}

func normalizeMenuItem(doc menuItemDoc, position int) domain.MenuItem {
	item := domain.MenuItem{
		ID:          doc.ID,
		Name:        doc.Name,
		Price:       doc.Price,
		IsPopular:   doc.IsPopular,
		IsFavorite:  doc.IsFavorite,
		Rating:      domain.DefaultRating,
		ReviewCount: doc.ReviewCount,
		Category:    "Fast Food",
		Image:       doc.Image,
		Description: doc.Description,
		IsAvailable: true,
	}
	if item.ID == 0 {
		item.ID = position + 1
	}
	if doc.Rating != nil {
		item.Rating = *doc.Rating
	}
	if doc.Category != nil {
		item.Category = *doc.Category
	}
	if doc.IsAvailable != nil {
		item.IsAvailable = *doc.IsAvailable
	}
	return item
}

func normalizeMenu(docs []menuItemDoc) []domain.MenuItem {
	menu := make([]domain.MenuItem, 0, len(docs))
	for i, doc := range docs {
		menu = append(menu, normalizeMenuItem(doc, i))
	}
	return menu
}

func menuToDocs(menu []domain.MenuItem) []menuItemDoc {
	docs := make([]menuItemDoc, 0, len(menu))
	for _, item := range menu {
		item := item
		docs = append(docs, menuItemDoc{
			ID:          item.ID,
			Name:        item.Name,
			Price:       item.Price,
			IsPopular:   item.IsPopular,
			IsFavorite:  item.IsFavorite,
			Rating:      &item.Rating,
			ReviewCount: item.ReviewCount,
			Category:    &item.Category,
			Image:       item.Image,
			Description: item.Description,
			IsAvailable: &item.IsAvailable,
		})
	}
	return docs
}

func normalizeStore(doc storeDoc) domain.Store {
	store := domain.Store{
		ID:        doc.OID.Hex(),
		Name:      doc.Name,
		StoreID:   doc.StoreID,
		Email:     doc.Email,
		Phone:     doc.Phone,
		Image:     doc.Image,
		Rating:    domain.DefaultRating,
		Tagline:   doc.Tagline,
		Gradient:  doc.Gradient,
		IsOpen:    true,
		Reviews:   doc.Reviews,
		Menu:      normalizeMenu(doc.Menu),
		Stats:     domain.StoreStats{AverageRating: domain.DefaultRating},
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
	if doc.Rating != nil {
		store.Rating = *doc.Rating
	}
	if doc.IsOpen != nil {
		store.IsOpen = *doc.IsOpen
	}
	if doc.Stats != nil {
		store.Stats = domain.StoreStats{
			TotalOrders:   doc.Stats.TotalOrders,
			TotalRevenue:  doc.Stats.TotalRevenue,
			AverageRating: doc.Stats.AverageRating,
		}
	}
	return store
}

func normalizeReview(doc reviewDoc) domain.Review {
	review := domain.Review{
		ID:         doc.OID.Hex(),
		StoreID:    doc.StoreID,
		StoreName:  doc.StoreName,
		ItemID:     doc.ItemID,
		ItemName:   doc.ItemName,
		Rating:     doc.Rating,
		Comment:    doc.Comment,
		UserName:   doc.UserName,
		UserAvatar: doc.UserAvatar,
		Status:     doc.Status,
		CreatedAt:  doc.CreatedAt,
		UpdatedAt:  doc.UpdatedAt,
	}
	if review.UserAvatar == "" {
		review.UserAvatar = "👤"
	}
	if review.Status == "" {
		review.Status = domain.ReviewApproved
	}
	return review
}

func normalizeOrder(doc orderDoc) domain.Order {
	items := make([]domain.OrderItem, 0, len(doc.Items))
	for _, item := range doc.Items {
		items = append(items, domain.OrderItem(item))
	}
	timeline := make([]domain.TimelineEntry, 0, len(doc.Timeline))
	for _, entry := range doc.Timeline {
		timeline = append(timeline, domain.TimelineEntry(entry))
	}

	order := domain.Order{
		ID:              doc.OID.Hex(),
		OrderID:         doc.OrderID,
		UserID:          doc.UserID,
		UserName:        doc.UserName,
		Items:           items,
		TotalAmount:     doc.TotalAmount,
		Status:          doc.Status,
		DeliveryAddress: domain.DeliveryAddress(doc.DeliveryAddress),
		PaymentMethod:   doc.PaymentMethod,
		Notes:           doc.Notes,
		Timeline:        timeline,
		CreatedAt:       doc.CreatedAt,
		UpdatedAt:       doc.UpdatedAt,
	}
	if order.Status == "" {
		order.Status = domain.StatusPending
	}
	return order
}

func orderToDoc(order domain.Order) orderDoc {
	items := make([]orderItemDoc, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, orderItemDoc(item))
	}
	timeline := make([]timelineEntryDoc, 0, len(order.Timeline))
	for _, entry := range order.Timeline {
		timeline = append(timeline, timelineEntryDoc(entry))
	}
	return orderDoc{
		OrderID:         order.OrderID,
		UserID:          order.UserID,
		UserName:        order.UserName,
		Items:           items,
		TotalAmount:     order.TotalAmount,
		Status:          order.Status,
		DeliveryAddress: deliveryAddressDoc(order.DeliveryAddress),
		PaymentMethod:   order.PaymentMethod,
		Notes:           order.Notes,
		Timeline:        timeline,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}
}

func normalizeActiveUser(doc activeUserDoc) domain.ActiveUser {
	user := domain.ActiveUser{
		ID:           doc.OID.Hex(),
		UserID:       doc.UserID,
		SessionID:    doc.SessionID,
		IsOrdering:   doc.IsOrdering,
		CurrentStore: doc.CurrentStore,
		DeviceInfo:   domain.DeviceInfo(doc.DeviceInfo),
		Timestamp:    doc.Timestamp,
		LastActivity: doc.LastActivity,
	}
	if user.DeviceInfo.Type == "" {
		user.DeviceInfo.Type = "unknown"
	}
	return user
}

func normalizeRegistration(doc registrationDoc) domain.StoreRegistration {
	reg := domain.StoreRegistration{
		ID:        doc.OID.Hex(),
		StoreName: doc.StoreName,
		StoreID:   doc.StoreID,
		Email:     doc.Email,
		Phone:     doc.Phone,
		Status:    doc.Status,
		CreatedAt: doc.CreatedAt,
	}
	if reg.Status == "" {
		reg.Status = "pending"
	}
	return reg
}
