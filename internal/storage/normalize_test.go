package storage

import (
	"testing"

	"campus-food-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func floatPtr(v float64) *float64 { return &v }
func boolPtr(v bool) *bool        { return &v }
func strPtr(v string) *string     { return &v }

func TestNormalizeMenuItem(t *testing.T) {
	tests := []struct {
		name     string
		doc      menuItemDoc
		position int
		expected domain.MenuItem
	}{
		{
			name:     "missing_fields_get_defaults",
			doc:      menuItemDoc{Name: "Burger", Price: 100},
			position: 0,
			expected: domain.MenuItem{
				ID: 1, Name: "Burger", Price: 100,
				Rating: 4.0, Category: "Fast Food", IsAvailable: true,
			},
		},
		{
			name: "explicit_fields_kept",
			doc: menuItemDoc{
				ID: 7, Name: "Salad", Price: 60,
				Rating: floatPtr(3.5), Category: strPtr("Healthy"), IsAvailable: boolPtr(false),
			},
			position: 2,
			expected: domain.MenuItem{
				ID: 7, Name: "Salad", Price: 60,
				Rating: 3.5, Category: "Healthy", IsAvailable: false,
			},
		},
		{
			name:     "explicit_zero_rating_kept",
			doc:      menuItemDoc{ID: 3, Name: "Cola", Rating: floatPtr(0)},
			position: 0,
			expected: domain.MenuItem{
				ID: 3, Name: "Cola",
				Rating: 0, Category: "Fast Food", IsAvailable: true,
			},
		},
		{
			name:     "id_backfilled_by_position",
			doc:      menuItemDoc{Name: "Fries"},
			position: 4,
			expected: domain.MenuItem{
				ID: 5, Name: "Fries",
				Rating: 4.0, Category: "Fast Food", IsAvailable: true,
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expected, normalizeMenuItem(testCase.doc, testCase.position))
		})
	}
}

func TestNormalizeStore(t *testing.T) {
	oid := primitive.NewObjectID()

	t.Run("defaults", func(t *testing.T) {
		store := normalizeStore(storeDoc{OID: oid, Name: "Campus Cafe"})
		assert.Equal(t, oid.Hex(), store.ID)
		assert.Equal(t, 4.0, store.Rating)
		assert.True(t, store.IsOpen)
		assert.Equal(t, domain.StoreStats{AverageRating: 4.0}, store.Stats)
	})

	t.Run("explicit_closed_kept", func(t *testing.T) {
		store := normalizeStore(storeDoc{
			OID: oid, Name: "Night Bites",
			Rating: floatPtr(4.7), IsOpen: boolPtr(false),
			Stats: &statsDoc{TotalOrders: 12, TotalRevenue: 3400, AverageRating: 4.7},
		})
		assert.Equal(t, 4.7, store.Rating)
		assert.False(t, store.IsOpen)
		assert.Equal(t, 12, store.Stats.TotalOrders)
	})

	t.Run("idempotent", func(t *testing.T) {
		doc := storeDoc{OID: oid, Name: "Campus Cafe", Menu: []menuItemDoc{{Name: "Burger"}}}
		assert.Equal(t, normalizeStore(doc), normalizeStore(doc))
	})
}

func TestNormalizeReview(t *testing.T) {
	review := normalizeReview(reviewDoc{StoreID: 1, ItemID: 2, Rating: 5})
	assert.Equal(t, "👤", review.UserAvatar)
	assert.Equal(t, domain.ReviewApproved, review.Status)

	kept := normalizeReview(reviewDoc{UserAvatar: "🐱", Status: domain.ReviewPending})
	assert.Equal(t, "🐱", kept.UserAvatar)
	assert.Equal(t, domain.ReviewPending, kept.Status)
}

func TestNormalizeOrder_RoundTrip(t *testing.T) {
	order := domain.Order{
		OrderID:     "ORD-1700000000000",
		UserID:      "u1",
		Items:       []domain.OrderItem{{ItemID: 1, Price: 100, Quantity: 2}},
		TotalAmount: 200,
		Status:      domain.StatusPending,
		Timeline: []domain.TimelineEntry{
			{Status: domain.StatusPending, Note: "Order placed"},
		},
	}

	restored := normalizeOrder(orderToDoc(order))
	assert.Equal(t, order.OrderID, restored.OrderID)
	assert.Equal(t, order.Items, restored.Items)
	assert.Equal(t, order.Timeline, restored.Timeline)
	assert.Equal(t, order.TotalAmount, restored.TotalAmount)
}

func TestNormalizeActiveUser(t *testing.T) {
	user := normalizeActiveUser(activeUserDoc{UserID: "u1"})
	assert.Equal(t, "unknown", user.DeviceInfo.Type)

	mobile := normalizeActiveUser(activeUserDoc{
		UserID: "u2", DeviceInfo: deviceInfoDoc{Type: "mobile"},
	})
	assert.Equal(t, "mobile", mobile.DeviceInfo.Type)
}

func TestNormalizeRegistration(t *testing.T) {
	reg := normalizeRegistration(registrationDoc{StoreName: "Campus Cafe"})
	assert.Equal(t, "pending", reg.Status)
}
