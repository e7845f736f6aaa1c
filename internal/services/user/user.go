// Package services содержит операции над учётными записями пользователей
// и их членством.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/greenbowl/salad-storefront/internal/lib/month"
	"github.com/greenbowl/salad-storefront/internal/lib/sl"
	"github.com/greenbowl/salad-storefront/internal/models"
)

// ErrInvalidMembershipStatus возвращается при попытке выставить статус вне
// множества {Active, Expired, Cancelled}.
var ErrInvalidMembershipStatus = errors.New("invalid membership status")

// Repo описывает хранилище пользователей.
type Repo interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByUID(ctx context.Context, uid string) (*models.User, error)
	ActivateMembership(ctx context.Context, userUID, planUID string, startDate, endDate time.Time) error
	UpdateMembershipStatus(ctx context.Context, userUID, status string) (*models.User, error)
}

// UserService реализует операции над пользователями поверх хранилища.
type UserService struct {
	repo Repo
	log  *slog.Logger
}

// NewUserService создает новый экземпляр UserService.
func NewUserService(repo Repo, log *slog.Logger) *UserService {
	return &UserService{repo: repo, log: log}
}

// GetByEmail возвращает пользователя по адресу почты.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "services.user.GetByEmail"

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

// ActivateMembership включает членство пользователю: начало — сейчас,
// конец — начало плюс срок тарифа в календарных месяцах.
func (s *UserService) ActivateMembership(ctx context.Context, userUID string, plan *models.MembershipPlan) error {
	const op = "services.user.ActivateMembership"

	startDate := time.Now().UTC()
	endDate := month.AddMonths(startDate, plan.DurationMonths)

	if err := s.repo.ActivateMembership(ctx, userUID, plan.UID, startDate, endDate); err != nil {
		s.log.Error("failed to activate membership",
			slog.String("user_uid", userUID),
			slog.String("plan_uid", plan.UID),
			sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// UpdateMembershipStatus выставляет статус членства администратором.
// Допустимы только Active, Expired и Cancelled; перевод в None не
// предусмотрен, членство снимается истечением или отменой.
func (s *UserService) UpdateMembershipStatus(ctx context.Context, userUID, status string) (*models.User, error) {
	const op = "services.user.UpdateMembershipStatus"

	switch status {
	case models.MembershipActive, models.MembershipExpired, models.MembershipCancelled:
	default:
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidMembershipStatus)
	}

	user, err := s.repo.UpdateMembershipStatus(ctx, userUID, status)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}
