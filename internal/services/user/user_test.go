package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/greenbowl/salad-storefront/internal/lib/month"
	"github.com/greenbowl/salad-storefront/internal/models"
	"github.com/greenbowl/salad-storefront/internal/storage"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *RepoMock) GetUserByUID(ctx context.Context, uid string) (*models.User, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *RepoMock) ActivateMembership(ctx context.Context, userUID, planUID string, startDate, endDate time.Time) error {
	args := m.Called(ctx, userUID, planUID, startDate, endDate)
	return args.Error(0)
}

func (m *RepoMock) UpdateMembershipStatus(ctx context.Context, userUID, status string) (*models.User, error) {
	args := m.Called(ctx, userUID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestUserService_ActivateMembership(t *testing.T) {
	repo := new(RepoMock)
	plan := &models.MembershipPlan{UID: "plan-1", DurationMonths: 6}

	var gotStart, gotEnd time.Time
	repo.On("ActivateMembership", mock.Anything, "user-1", "plan-1",
		mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		gotStart = args.Get(3).(time.Time)
		gotEnd = args.Get(4).(time.Time)
	}).Return(nil).Once()

	svc := NewUserService(repo, newNoopLogger())
	err := svc.ActivateMembership(context.Background(), "user-1", plan)

	require.NoError(t, err)
	// Начало — момент активации, конец — плюс срок тарифа в календарных месяцах
	assert.WithinDuration(t, time.Now().UTC(), gotStart, time.Minute)
	assert.Equal(t, month.AddMonths(gotStart, 6), gotEnd)
	repo.AssertExpectations(t)
}

func TestUserService_UpdateMembershipStatus(t *testing.T) {
	tests := []struct {
		name      string
		status    string
		setupMock func(r *RepoMock)
		wantErr   error
	}{
		{
			name:   "cancel membership",
			status: models.MembershipCancelled,
			setupMock: func(r *RepoMock) {
				r.On("UpdateMembershipStatus", mock.Anything, "user-1", models.MembershipCancelled).
					Return(&models.User{UID: "user-1", MembershipStatus: models.MembershipCancelled}, nil).Once()
			},
		},
		{
			name:    "status outside the enum",
			status:  "Suspended",
			wantErr: ErrInvalidMembershipStatus,
		},
		{
			name:    "reset to None is not allowed",
			status:  models.MembershipNone,
			wantErr: ErrInvalidMembershipStatus,
		},
		{
			name:   "missing user",
			status: models.MembershipExpired,
			setupMock: func(r *RepoMock) {
				r.On("UpdateMembershipStatus", mock.Anything, "user-1", models.MembershipExpired).
					Return(nil, storage.ErrNotFound).Once()
			},
			wantErr: storage.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}
			svc := NewUserService(repo, newNoopLogger())

			got, err := svc.UpdateMembershipStatus(context.Background(), "user-1", tt.status)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.status, got.MembershipStatus)
			repo.AssertExpectations(t)
		})
	}
}
