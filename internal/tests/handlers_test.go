package tests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	httpapi "campus-food-backend/internal/api/http"
	"campus-food-backend/internal/domain"
	"campus-food-backend/internal/mocks"
	"campus-food-backend/internal/service"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupTestRouter(handler *httpapi.Handler) *mux.Router {
	r := mux.NewRouter()
	handler.RegisterRoutes(r)
	return r
}

func TestHandler_healthCheck(t *testing.T) {
	pinger := mocks.NewPinger(t)
	router := setupTestRouter(&httpapi.Handler{DB: pinger})

	pinger.On("Ping", mock.Anything).Return(nil).Once()

	req := httptest.NewRequest("GET", "/health", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"mongodb":"Connected"`)
}

func TestHandler_login(t *testing.T) {
	mockSvc := mocks.NewStoreServiceInterface(t)
	router := setupTestRouter(&httpapi.Handler{Stores: mockSvc})

	tests := []struct {
		name         string
		payload      string
		prepareMocks func()
		expectedCode int
	}{
		{
			name:    "success",
			payload: `{"username":"admin","password":"secret"}`,
			prepareMocks: func() {
				mockSvc.On("Login", domain.LoginRequest{Username: "admin", Password: "secret"}).
					Return(&domain.LoginResponse{Success: true, IsAdmin: true}, nil).Once()
			},
			expectedCode: http.StatusOK,
		},
		{
			name:    "bad_credentials",
			payload: `{"username":"admin","password":"wrong"}`,
			prepareMocks: func() {
				mockSvc.On("Login", mock.Anything).
					Return(nil, service.ErrUnauthorized).Once()
			},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "invalid_json",
			payload:      `not json`,
			prepareMocks: func() {},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			testCase.prepareMocks()
			req := httptest.NewRequest("POST", "/api/auth/login", bytes.NewBufferString(testCase.payload))
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)
			assert.Equal(t, testCase.expectedCode, recorder.Code)
		})
	}
}

func TestHandler_getStores(t *testing.T) {
	mockSvc := mocks.NewStoreServiceInterface(t)
	router := setupTestRouter(&httpapi.Handler{Stores: mockSvc})

	mockSvc.On("List", (*bool)(nil)).Return([]domain.Store{
		{Name: "Campus Cafe", IsOpen: true},
	}, nil).Once()

	req := httptest.NewRequest("GET", "/api/stores", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)

	var resp struct {
		Success bool           `json:"success"`
		Data    []domain.Store `json:"data"`
	}
	assert.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.Len(t, resp.Data, 1)
}

func TestHandler_getStores_OpenFilter(t *testing.T) {
	mockSvc := mocks.NewStoreServiceInterface(t)
	router := setupTestRouter(&httpapi.Handler{Stores: mockSvc})

	mockSvc.On("List", mock.MatchedBy(func(openOnly *bool) bool {
		return openOnly != nil && *openOnly
	})).Return([]domain.Store{}, nil).Once()

	req := httptest.NewRequest("GET", "/api/stores?open=true", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestHandler_getStore_NotFound(t *testing.T) {
	mockSvc := mocks.NewStoreServiceInterface(t)
	router := setupTestRouter(&httpapi.Handler{Stores: mockSvc})

	mockSvc.On("Get", "99").Return(nil, fmt.Errorf("%w: store 99", service.ErrNotFound)).Once()

	req := httptest.NewRequest("GET", "/api/stores/99", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestHandler_updateStoreStatus(t *testing.T) {
	mockSvc := mocks.NewStoreServiceInterface(t)
	router := setupTestRouter(&httpapi.Handler{Stores: mockSvc})

	t.Run("success", func(t *testing.T) {
		mockSvc.On("SetStatus", 1, false).Return(nil).Once()

		req := httptest.NewRequest("PATCH", "/api/stores/1/status?is_open=false", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), `"is_open":false`)
	})

	t.Run("missing_query_param", func(t *testing.T) {
		req := httptest.NewRequest("PATCH", "/api/stores/1/status", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestHandler_updateStoreMenu(t *testing.T) {
	mockSvc := mocks.NewStoreServiceInterface(t)
	router := setupTestRouter(&httpapi.Handler{Stores: mockSvc})

	// Items without rating/category/availability pick up defaults before
	// the service sees them.
	mockSvc.On("ReplaceMenu", 1, mock.MatchedBy(func(menu []domain.MenuItem) bool {
		return len(menu) == 1 &&
			menu[0].Rating == 4.0 &&
			menu[0].Category == "Fast Food" &&
			menu[0].IsAvailable
	})).Return(nil).Once()

	payload := `[{"name":"Burger","price":100}]`
	req := httptest.NewRequest("PUT", "/api/stores/1/menu", bytes.NewBufferString(payload))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestHandler_rateMenuItem(t *testing.T) {
	mockSvc := mocks.NewRatingServiceInterface(t)
	router := setupTestRouter(&httpapi.Handler{Ratings: mockSvc})

	tests := []struct {
		name         string
		payload      string
		prepareMocks func()
		expectedCode int
		expectedBody string
	}{
		{
			name:    "success",
			payload: `{"rating":5}`,
			prepareMocks: func() {
				mockSvc.On("RateItem", mock.Anything, 1, 2, 5.0).
					Return(domain.ReviewStats{Rating: 4.5, Count: 10}, nil).Once()
			},
			expectedCode: http.StatusOK,
			expectedBody: `"new_rating":4.5`,
		},
		{
			name:    "item_not_found",
			payload: `{"rating":5}`,
			prepareMocks: func() {
				mockSvc.On("RateItem", mock.Anything, 1, 2, 5.0).
					Return(domain.ReviewStats{}, fmt.Errorf("%w: menu item 2", service.ErrNotFound)).Once()
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name:    "rating_out_of_range",
			payload: `{"rating":9}`,
			prepareMocks: func() {
				mockSvc.On("RateItem", mock.Anything, 1, 2, 9.0).
					Return(domain.ReviewStats{}, fmt.Errorf("%w: rating", service.ErrInvalidInput)).Once()
			},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			testCase.prepareMocks()
			req := httptest.NewRequest("POST", "/api/stores/1/menu/2/rate", bytes.NewBufferString(testCase.payload))
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)
			assert.Equal(t, testCase.expectedCode, recorder.Code)
			if testCase.expectedBody != "" {
				assert.Contains(t, recorder.Body.String(), testCase.expectedBody)
			}
		})
	}
}

func TestHandler_createReview(t *testing.T) {
	mockSvc := mocks.NewRatingServiceInterface(t)
	router := setupTestRouter(&httpapi.Handler{Ratings: mockSvc})

	mockSvc.On("CreateReview", mock.Anything, mock.MatchedBy(func(review domain.Review) bool {
		return review.StoreID == 1 && review.ItemID == 2 && review.Rating == 5
	})).Return(&domain.Review{StoreID: 1, ItemID: 2, Rating: 5, Status: domain.ReviewApproved}, nil).Once()

	payload := `{"store_id":1,"item_id":2,"rating":5,"comment":"Great!"}`
	req := httptest.NewRequest("POST", "/api/reviews", bytes.NewBufferString(payload))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"status":"approved"`)
}

func TestHandler_getItemReviews(t *testing.T) {
	mockSvc := mocks.NewRatingServiceInterface(t)
	router := setupTestRouter(&httpapi.Handler{Ratings: mockSvc})

	mockSvc.On("ListReviews", domain.ReviewFilter{StoreID: 1, ItemID: 2}).
		Return([]domain.Review{{Rating: 5}, {Rating: 4}}, nil).Once()

	req := httptest.NewRequest("GET", "/api/reviews/store/1/item/2", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestHandler_createOrder(t *testing.T) {
	mockSvc := mocks.NewOrderServiceInterface(t)
	router := setupTestRouter(&httpapi.Handler{Orders: mockSvc})

	tests := []struct {
		name         string
		payload      string
		prepareMocks func()
		expectedCode int
		expectedBody string
	}{
		{
			name:    "success",
			payload: `{"user_id":"u1","items":[{"item_id":1,"price":100,"quantity":2}]}`,
			prepareMocks: func() {
				mockSvc.On("Create", mock.Anything, mock.Anything).
					Return(&domain.Order{OrderID: "ORD-1", TotalAmount: 200}, nil).Once()
			},
			expectedCode: http.StatusOK,
			expectedBody: `"order_id":"ORD-1"`,
		},
		{
			name:         "invalid_json",
			payload:      `bad json`,
			prepareMocks: func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:    "empty_items",
			payload: `{"user_id":"u1","items":[]}`,
			prepareMocks: func() {
				mockSvc.On("Create", mock.Anything, mock.Anything).
					Return(nil, fmt.Errorf("%w: order must carry a user id and at least one item", service.ErrInvalidInput)).Once()
			},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			testCase.prepareMocks()
			req := httptest.NewRequest("POST", "/api/orders", bytes.NewBufferString(testCase.payload))
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)
			assert.Equal(t, testCase.expectedCode, recorder.Code)
			if testCase.expectedBody != "" {
				assert.Contains(t, recorder.Body.String(), testCase.expectedBody)
			}
		})
	}
}

func TestHandler_updateOrderStatus(t *testing.T) {
	mockSvc := mocks.NewOrderServiceInterface(t)
	router := setupTestRouter(&httpapi.Handler{Orders: mockSvc})

	tests := []struct {
		name         string
		payload      string
		prepareMocks func()
		expectedCode int
	}{
		{
			name:    "success",
			payload: `{"status":"preparing"}`,
			prepareMocks: func() {
				mockSvc.On("UpdateStatus", mock.Anything, "ORD-1", "preparing", "").
					Return(nil).Once()
			},
			expectedCode: http.StatusOK,
		},
		{
			name:    "unknown_status",
			payload: `{"status":"shipped"}`,
			prepareMocks: func() {
				mockSvc.On("UpdateStatus", mock.Anything, "ORD-1", "shipped", "").
					Return(fmt.Errorf("%w: %q", service.ErrInvalidStatus, "shipped")).Once()
			},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:    "order_missing",
			payload: `{"status":"ready"}`,
			prepareMocks: func() {
				mockSvc.On("UpdateStatus", mock.Anything, "ORD-1", "ready", "").
					Return(fmt.Errorf("%w: order ORD-1", service.ErrNotFound)).Once()
			},
			expectedCode: http.StatusNotFound,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			testCase.prepareMocks()
			req := httptest.NewRequest("PUT", "/api/orders/ORD-1/status", bytes.NewBufferString(testCase.payload))
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)
			assert.Equal(t, testCase.expectedCode, recorder.Code)
		})
	}
}

func TestHandler_getOrderQRCode(t *testing.T) {
	mockSvc := mocks.NewOrderServiceInterface(t)
	router := setupTestRouter(&httpapi.Handler{Orders: mockSvc})

	mockSvc.On("QRCode", "ORD-1").Return([]byte("png-bytes"), nil).Once()

	req := httptest.NewRequest("GET", "/api/orders/ORD-1/qrcode", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "image/png", recorder.Header().Get("Content-Type"))
	assert.Equal(t, "png-bytes", recorder.Body.String())
}

func TestHandler_activeUsers(t *testing.T) {
	mockSvc := mocks.NewPresenceServiceInterface(t)
	router := setupTestRouter(&httpapi.Handler{Presence: mockSvc})

	t.Run("heartbeat", func(t *testing.T) {
		mockSvc.On("Heartbeat", mock.MatchedBy(func(user domain.ActiveUser) bool {
			return user.UserID == "u1"
		})).Return(nil).Once()

		payload := `{"user_id":"u1","session_id":"s1"}`
		req := httptest.NewRequest("POST", "/api/active-users", bytes.NewBufferString(payload))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("hunger_level", func(t *testing.T) {
		mockSvc.On("HungerLevel").Return(&domain.HungerLevel{
			HungerLevel: 75, ActiveUsers: 50, OrderingUsers: 12,
		}, nil).Once()

		req := httptest.NewRequest("GET", "/api/active-users/hunger-level", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), `"hunger_level":75`)
	})

	t.Run("update_activity_missing_user", func(t *testing.T) {
		mockSvc.On("UpdateActivity", "ghost", mock.Anything).
			Return(fmt.Errorf("%w: active user ghost", service.ErrNotFound)).Once()

		payload := `{"is_ordering":true}`
		req := httptest.NewRequest("PUT", "/api/active-users/ghost/activity", bytes.NewBufferString(payload))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("remove", func(t *testing.T) {
		mockSvc.On("Remove", "u1").Return(nil).Once()

		req := httptest.NewRequest("DELETE", "/api/active-users/u1", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
	})
}

func TestHandler_getTopRated(t *testing.T) {
	mockSvc := mocks.NewRatingServiceInterface(t)
	router := setupTestRouter(&httpapi.Handler{Ratings: mockSvc})

	mockSvc.On("TopRated", mock.Anything, 5).Return([]domain.TopRatedItem{
		{StoreID: 1, ItemID: 2, ItemName: "Burger", Rating: 4.8},
	}, nil).Once()

	req := httptest.NewRequest("GET", "/api/analytics/top-rated?limit=5", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"item_name":"Burger"`)
}
