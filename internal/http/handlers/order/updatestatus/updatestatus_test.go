package updatestatus

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

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/greenbowl/salad-storefront/internal/models"
	orderservice "github.com/greenbowl/salad-storefront/internal/services/order"
	"github.com/greenbowl/salad-storefront/internal/storage"
)

// MockService реализует интерфейс updatestatus.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) UpdateStatus(ctx context.Context, orderUID, status string) (*models.Order, error) {
	args := m.Called(ctx, orderUID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func TestUpdateStatusHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	tests := []struct {
		name           string
		orderUID       string
		requestBody    any
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "deliver order",
			orderUID:    "order-uid-1",
			requestBody: models.UpdateOrderStatusRequest{Status: models.OrderDelivered},
			setupMock: func(m *MockService) {
				m.On("UpdateStatus", mock.Anything, "order-uid-1", models.OrderDelivered).
					Return(&models.Order{UID: "order-uid-1", Status: models.OrderDelivered}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"Delivered"`,
		},
		{
			name:           "malformed JSON",
			orderUID:       "order-uid-1",
			requestBody:    "not a json",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"message":"invalid request body"`,
		},
		{
			name:           "status outside the enum fails validation",
			orderUID:       "order-uid-1",
			requestBody:    models.UpdateOrderStatusRequest{Status: "Shipped"},
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"success":false`,
		},
		{
			name:        "status rejected by service",
			orderUID:    "order-uid-1",
			requestBody: models.UpdateOrderStatusRequest{Status: models.OrderCancelled},
			setupMock: func(m *MockService) {
				m.On("UpdateStatus", mock.Anything, "order-uid-1", models.OrderCancelled).
					Return(nil, orderservice.ErrInvalidStatus)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"message":"status must be one of: Processing, Delivered, Cancelled"`,
		},
		{
			name:        "order not found",
			orderUID:    "missing-uid",
			requestBody: models.UpdateOrderStatusRequest{Status: models.OrderCancelled},
			setupMock: func(m *MockService) {
				m.On("UpdateStatus", mock.Anything, "missing-uid", models.OrderCancelled).
					Return(nil, storage.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"message":"order not found"`,
		},
		{
			name:        "storage failure",
			orderUID:    "order-uid-1",
			requestBody: models.UpdateOrderStatusRequest{Status: models.OrderDelivered},
			setupMock: func(m *MockService) {
				m.On("UpdateStatus", mock.Anything, "order-uid-1", models.OrderDelivered).
					Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"message":"could not update order status"`,
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

			req := httptest.NewRequest(http.MethodPut, "/orders/update-status/"+tt.orderUID, bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("orderId", tt.orderUID)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
			mockService.AssertExpectations(t)
		})
	}
}
