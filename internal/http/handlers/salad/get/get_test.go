package get

import (
	"context"
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
	"github.com/greenbowl/salad-storefront/internal/storage"
)

// MockService реализует интерфейс get.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) GetSalad(ctx context.Context, uid string) (*models.Salad, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Salad), args.Error(1)
}

func TestGetSaladHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	tests := []struct {
		name           string
		saladUID       string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:     "existing salad",
			saladUID: "salad-uid-1",
			setupMock: func(m *MockService) {
				m.On("GetSalad", mock.Anything, "salad-uid-1").
					Return(&models.Salad{UID: "salad-uid-1", Name: "Caesar"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"name":"Caesar"`,
		},
		{
			name:     "salad not found",
			saladUID: "missing-uid",
			setupMock: func(m *MockService) {
				m.On("GetSalad", mock.Anything, "missing-uid").
					Return(nil, storage.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"message":"salad not found"`,
		},
		{
			name:     "storage failure",
			saladUID: "salad-uid-1",
			setupMock: func(m *MockService) {
				m.On("GetSalad", mock.Anything, "salad-uid-1").
					Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"message":"could not get salad"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, "/salads/get/"+tt.saladUID, nil)

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("saladId", tt.saladUID)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
			mockService.AssertExpectations(t)
		})
	}
}
