package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"phone-kart/internal/middleware"
	"phone-kart/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCheckoutService is a mock implementation of CheckoutService.
type MockCheckoutService struct {
	mock.Mock
}

func (m *MockCheckoutService) CreatePaymentIntent(ctx context.Context, userID string, req *model.CheckoutRequest) (*model.PaymentIntentResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PaymentIntentResponse), args.Error(1)
}

func (m *MockCheckoutService) CreateOrder(ctx context.Context, userID, idempotencyKey string, req *model.CreateOrderRequest) (*model.OrderResponse, error) {
	args := m.Called(ctx, userID, idempotencyKey, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrderResponse), args.Error(1)
}

func (m *MockCheckoutService) GetMyOrders(ctx context.Context, userID string) ([]model.OrderResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.OrderResponse), args.Error(1)
}

// asUser attaches a user identity the way the middleware chain does.
func asUser(req *http.Request, userID string) *http.Request {
	if userID == "" {
		return req
	}
	rec := httptest.NewRecorder()
	var out *http.Request
	middleware.UserContext(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		out = r
	})).ServeHTTP(rec, req)
	return out
}

func checkoutBody(t *testing.T) *bytes.Buffer {
	t.Helper()
	body, err := json.Marshal(model.CheckoutRequest{
		OrderItems:      []model.OrderItemRequest{{PhoneID: "P1", Quantity: 1}},
		ShippingAddress: model.ShippingAddress{Address: "1 Main St", City: "Toronto", PostalCode: "M5V 1A1", Country: "CA"},
		PaymentMethod:   "card",
	})
	require.NoError(t, err)
	return bytes.NewBuffer(body)
}

func TestOrderHandler_CreatePaymentIntent(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name           string
		userID         string
		mockReturn     *model.PaymentIntentResponse
		mockError      error
		expectedStatus int
		expectService  bool
	}{
		{
			name:           "Success",
			userID:         "user-1",
			mockReturn:     &model.PaymentIntentResponse{ClientSecret: "pi_1_secret_x"},
			expectedStatus: http.StatusOK,
			expectService:  true,
		},
		{
			name:           "Missing user",
			userID:         "",
			expectedStatus: http.StatusUnauthorized,
			expectService:  false,
		},
		{
			name:           "Validation error",
			userID:         "user-1",
			mockError:      model.ErrNoOrderItems,
			expectedStatus: http.StatusBadRequest,
			expectService:  true,
		},
		{
			name:           "Gateway error",
			userID:         "user-1",
			mockError:      model.NewDomainError(model.ErrCodeProcessor, "Payment gateway error"),
			expectedStatus: http.StatusBadGateway,
			expectService:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockCheckoutService)
			if tt.expectService {
				mockService.On("CreatePaymentIntent", mock.Anything, tt.userID, mock.AnythingOfType("*model.CheckoutRequest")).
					Return(tt.mockReturn, tt.mockError)
			}

			h := NewOrderHandler(mockService, logger)

			req := httptest.NewRequest(http.MethodPost, "/api/orders/create-payment-intent", checkoutBody(t))
			req.Header.Set("X-User-ID", tt.userID)
			req = asUser(req, tt.userID)
			w := httptest.NewRecorder()

			h.CreatePaymentIntent(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				var resp model.PaymentIntentResponse
				require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
				assert.Equal(t, "pi_1_secret_x", resp.ClientSecret)
			}
			if !tt.expectService {
				mockService.AssertNotCalled(t, "CreatePaymentIntent", mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestOrderHandler_CreatePaymentIntent_InvalidBody(t *testing.T) {
	h := NewOrderHandler(new(MockCheckoutService), zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/api/orders/create-payment-intent", bytes.NewBufferString("{not json"))
	req.Header.Set("X-User-ID", "user-1")
	req = asUser(req, "user-1")
	w := httptest.NewRecorder()

	h.CreatePaymentIntent(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderHandler_Create(t *testing.T) {
	logger := zerolog.Nop()

	orderID := uuid.New()
	testResponse := &model.OrderResponse{
		Order: model.Order{
			ID:         orderID,
			UserID:     "user-1",
			Status:     model.OrderStatusPending,
			IsPaid:     true,
			TotalPrice: decimal.NewFromInt(1140),
		},
		Items: []model.OrderItem{{OrderID: orderID, PhoneID: "P1", Quantity: 1}},
	}

	tests := []struct {
		name           string
		idempotencyKey string
		mockReturn     *model.OrderResponse
		mockError      error
		expectedStatus int
	}{
		{
			name:           "Success",
			mockReturn:     testResponse,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "With idempotency key",
			idempotencyKey: "key-42",
			mockReturn:     testResponse,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Validation error",
			mockError:      model.ErrInvalidShippingAddr,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Phone not found",
			mockError:      model.ErrPhoneNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "Persistence failure",
			mockError:      model.NewDomainError(model.ErrCodePersistence, "Order could not be recorded; do not re-pay, verify your order status first"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockCheckoutService)
			mockService.On("CreateOrder", mock.Anything, "user-1", tt.idempotencyKey, mock.AnythingOfType("*model.CreateOrderRequest")).
				Return(tt.mockReturn, tt.mockError)

			h := NewOrderHandler(mockService, logger)

			req := httptest.NewRequest(http.MethodPost, "/api/orders", checkoutBody(t))
			req.Header.Set("X-User-ID", "user-1")
			if tt.idempotencyKey != "" {
				req.Header.Set("Idempotency-Key", tt.idempotencyKey)
			}
			req = asUser(req, "user-1")
			w := httptest.NewRecorder()

			h.Create(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestOrderHandler_Create_PersistenceErrorBody(t *testing.T) {
	mockService := new(MockCheckoutService)
	mockService.On("CreateOrder", mock.Anything, "user-1", "", mock.Anything).
		Return(nil, model.NewDomainError(model.ErrCodePersistence, "Order could not be recorded; do not re-pay, verify your order status first"))

	h := NewOrderHandler(mockService, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/api/orders", checkoutBody(t))
	req.Header.Set("X-User-ID", "user-1")
	req = asUser(req, "user-1")
	w := httptest.NewRecorder()

	h.Create(w, req)

	var resp model.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, model.ErrCodePersistence, resp.Error)
	assert.Contains(t, resp.Message, "do not re-pay")
}

func TestOrderHandler_MyOrders(t *testing.T) {
	orderID := uuid.New()
	mockService := new(MockCheckoutService)
	mockService.On("GetMyOrders", mock.Anything, "user-1").
		Return([]model.OrderResponse{{Order: model.Order{ID: orderID, UserID: "user-1"}}}, nil)

	h := NewOrderHandler(mockService, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/orders/myorders", nil)
	req.Header.Set("X-User-ID", "user-1")
	req = asUser(req, "user-1")
	w := httptest.NewRecorder()

	h.MyOrders(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp []model.OrderResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Len(t, resp, 1)
	assert.Equal(t, orderID, resp[0].ID)
}

func TestOrderHandler_MyOrders_RequiresUser(t *testing.T) {
	h := NewOrderHandler(new(MockCheckoutService), zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/orders/myorders", nil)
	w := httptest.NewRecorder()

	h.MyOrders(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOrderHandler_MethodNotAllowed(t *testing.T) {
	h := NewOrderHandler(new(MockCheckoutService), zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	w := httptest.NewRecorder()
	h.Create(w, req)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/orders/myorders", nil)
	w = httptest.NewRecorder()
	h.MyOrders(w, req)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
