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

func (m *MockService) GetMembershipPlan(ctx context.Context, uid string) (*models.MembershipPlan, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MembershipPlan), args.Error(1)
}

func TestGetMembershipPlanHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	tests := []struct {
		name           string
		planUID        string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:    "existing plan",
			planUID: "plan-uid-1",
			setupMock: func(m *MockService) {
				m.On("GetMembershipPlan", mock.Anything, "plan-uid-1").
					Return(&models.MembershipPlan{UID: "plan-uid-1", Tier: "Elite"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"tier":"Elite"`,
		},
		{
			name:    "plan not found",
			planUID: "missing-uid",
			setupMock: func(m *MockService) {
				m.On("GetMembershipPlan", mock.Anything, "missing-uid").
					Return(nil, storage.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"message":"membership plan not found"`,
		},
		{
			name:    "storage failure",
			planUID: "plan-uid-1",
			setupMock: func(m *MockService) {
				m.On("GetMembershipPlan", mock.Anything, "plan-uid-1").
					Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"message":"could not get membership plan"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, "/memberships/get/"+tt.planUID, nil)

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("membershipId", tt.planUID)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
			mockService.AssertExpectations(t)
		})
	}
}
