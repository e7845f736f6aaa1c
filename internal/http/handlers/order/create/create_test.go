package create

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/greenbowl/salad-storefront/internal/models"
	orderservice "github.com/greenbowl/salad-storefront/internal/services/order"
	"github.com/greenbowl/salad-storefront/internal/storage"
)

// MockService реализует интерфейс create.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Submit(ctx context.Context, req models.CreateOrderRequest) (*models.Order, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func validRequest() models.CreateOrderRequest {
	return models.CreateOrderRequest{
		UserEmail: "anna@example.com",
		Items: []models.OrderItemInput{
			{Name: "Caesar Bowl", Quantity: 2, Price: decimal.NewFromFloat(8.50)},
		},
		Subtotal: decimal.NewFromFloat(17.00),
		Tax:      decimal.NewFromFloat(1.50),
		Delivery: decimal.NewFromFloat(3.00),
		Total:    decimal.NewFromFloat(21.50),
	}
}

func TestCreateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	savedOrder := &models.Order{
		UID:          "order-uid-1",
		UserEmail:    "anna@example.com",
		UserName:     "Anna Smith",
		UserPhone:    "+1-555-0101",
		Status:       models.OrderProcessing,
		OrderDate:    time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC),
		DeliveryDate: time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name           string
		requestBody    any
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "successful order",
			requestBody: validRequest(),
			setupMock: func(m *MockService) {
				m.On("Submit", mock.Anything, mock.AnythingOfType("models.CreateOrderRequest")).
					Return(savedOrder, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"success":true`,
		},
		{
			name:           "malformed JSON",
			requestBody:    "not a json",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"message":"invalid request body"`,
		},
		{
			name: "missing email",
			requestBody: models.CreateOrderRequest{
				Items: []models.OrderItemInput{
					{Name: "Caesar Bowl", Quantity: 1},
				},
			},
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `field UserEmail is a required field`,
		},
		{
			name: "empty cart",
			requestBody: map[string]any{
				"userEmail": "anna@example.com",
				"items":     []any{},
			},
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"success":false`,
		},
		{
			name:        "empty cart rejected by service",
			requestBody: validRequest(),
			setupMock: func(m *MockService) {
				m.On("Submit", mock.Anything, mock.Anything).
					Return(nil, orderservice.ErrEmptyCart)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"message":"cart must contain at least one item"`,
		},
		{
			name:        "unknown user",
			requestBody: validRequest(),
			setupMock: func(m *MockService) {
				m.On("Submit", mock.Anything, mock.Anything).
					Return(nil, storage.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"message":"user not found"`,
		},
		{
			name:        "storage failure",
			requestBody: validRequest(),
			setupMock: func(m *MockService) {
				m.On("Submit", mock.Anything, mock.Anything).
					Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"message":"could not create order"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			var body []byte
			var err error
			if str, ok := tt.requestBody.(string); ok {
				body = []byte(str)
			} else {
				body, err = json.Marshal(tt.requestBody)
				assert.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/orders/create", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
			mockService.AssertExpectations(t)
		})
	}
}

// Пустая корзина отклоняется валидатором со статусом 400 ещё до сервиса.
func TestCreateHandler_EmptyCartReturns400WithoutServiceCall(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
	mockService := new(MockService)
	handler := New(logger, mockService)

	body := []byte(`{"userEmail":"anna@example.com","items":[]}`)
	req := httptest.NewRequest(http.MethodPost, "/orders/create", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":false`)
	mockService.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
}
