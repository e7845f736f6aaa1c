// Package services содержит бизнес-логику каталога: салаты и тарифы членства,
// с кешированием витринных списков.
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/greenbowl/salad-storefront/internal/models"
)

const (
	cacheKeySaladsAll  = "salads:all"
	cacheKeyPlansAll   = "memberships:all"
	catalogCacheExpiry = time.Hour
)

// SaladRepository определяет методы для работы с салатами в хранилище.
type SaladRepository interface {
	// CreateSalad добавляет новый салат и возвращает его UID.
	CreateSalad(ctx context.Context, salad models.Salad) (string, error)
	// GetSalad возвращает салат по UID.
	GetSalad(ctx context.Context, uid string) (*models.Salad, error)
	// ListSalads возвращает салаты; onlyActive ограничивает выдачу витриной.
	ListSalads(ctx context.Context, onlyActive bool) ([]*models.Salad, error)
	// UpdateSalad обновляет салат по UID и возвращает число изменённых записей.
	UpdateSalad(ctx context.Context, uid string, salad models.Salad) (int, error)
	// RemoveSalad удаляет салат по UID и возвращает число удалённых записей.
	RemoveSalad(ctx context.Context, uid string) (int, error)
}

// PlanRepository определяет методы для работы с тарифами членства.
type PlanRepository interface {
	CreateMembershipPlan(ctx context.Context, plan models.MembershipPlan) (string, error)
	GetMembershipPlan(ctx context.Context, uid string) (*models.MembershipPlan, error)
	ListMembershipPlans(ctx context.Context, onlyActive bool) ([]*models.MembershipPlan, error)
	UpdateMembershipPlan(ctx context.Context, uid string, plan models.MembershipPlan) (int, error)
	RemoveMembershipPlan(ctx context.Context, uid string) (int, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// CatalogService реализует операции каталога поверх хранилища и кеша.
type CatalogService struct {
	salads SaladRepository
	plans  PlanRepository
	cache  Cache
	log    *slog.Logger
}

// NewCatalogService создает новый экземпляр CatalogService.
func NewCatalogService(salads SaladRepository, plans PlanRepository, cache Cache, log *slog.Logger) *CatalogService {
	return &CatalogService{
		salads: salads,
		plans:  plans,
		cache:  cache,
		log:    log,
	}
}

// CreateSalad добавляет салат в каталог и сбрасывает кеш витрины.
func (s *CatalogService) CreateSalad(ctx context.Context, req models.SaladRequest) (string, error) {
	salad := models.Salad{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		IsActive:    true,
	}

	uid, err := s.salads.CreateSalad(ctx, salad)
	if err != nil {
		return "", err
	}

	s.log.Info("created new salad", slog.String("uid", uid))
	s.invalidate(cacheKeySaladsAll)
	return uid, nil
}

// GetSalad возвращает один салат по UID, минуя кеш витрины.
func (s *CatalogService) GetSalad(ctx context.Context, uid string) (*models.Salad, error) {
	return s.salads.GetSalad(ctx, uid)
}

// ListSalads возвращает витрину салатов, используя кеш или хранилище.
// Списки для администратора (включая скрытые позиции) кеш обходят.
func (s *CatalogService) ListSalads(ctx context.Context, onlyActive bool) ([]*models.Salad, error) {
	if !onlyActive {
		return s.salads.ListSalads(ctx, false)
	}

	var cached []*models.Salad
	found, err := s.cache.Get(cacheKeySaladsAll, &cached)
	if err != nil {
		s.log.Warn("failed to read salads from cache", slog.Any("err", err))
	}
	if found {
		return cached, nil
	}

	result, err := s.salads.ListSalads(ctx, true)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(cacheKeySaladsAll, result, catalogCacheExpiry); err != nil {
		s.log.Warn("failed to cache salads", slog.Any("err", err))
	}
	return result, nil
}

// UpdateSalad обновляет салат и сбрасывает кеш витрины.
func (s *CatalogService) UpdateSalad(ctx context.Context, uid string, req models.SaladRequest) (int, error) {
	salad := models.Salad{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		IsActive:    req.IsActive,
	}

	count, err := s.salads.UpdateSalad(ctx, uid, salad)
	if err != nil {
		return 0, err
	}

	s.invalidate(cacheKeySaladsAll)
	return count, nil
}

// RemoveSalad удаляет салат из каталога и сбрасывает кеш витрины.
func (s *CatalogService) RemoveSalad(ctx context.Context, uid string) (int, error) {
	count, err := s.salads.RemoveSalad(ctx, uid)
	if err != nil {
		return 0, err
	}

	s.invalidate(cacheKeySaladsAll)
	return count, nil
}

// CreateMembershipPlan добавляет тариф членства и сбрасывает кеш тарифов.
func (s *CatalogService) CreateMembershipPlan(ctx context.Context, req models.MembershipPlanRequest) (string, error) {
	plan := models.MembershipPlan{
		Name:            req.Name,
		Tier:            req.Tier,
		Price:           req.Price,
		OriginalPrice:   req.OriginalPrice,
		DurationMonths:  req.DurationMonths,
		WeeklyAllowance: req.WeeklyAllowance,
		Features:        req.Features,
		DiscountPercent: req.DiscountPercent,
		IsActive:        true,
	}

	uid, err := s.plans.CreateMembershipPlan(ctx, plan)
	if err != nil {
		return "", err
	}

	s.log.Info("created new membership plan", slog.String("uid", uid), slog.String("tier", plan.Tier))
	s.invalidate(cacheKeyPlansAll)
	return uid, nil
}

// GetMembershipPlan возвращает один тариф по UID, минуя кеш тарифов.
func (s *CatalogService) GetMembershipPlan(ctx context.Context, uid string) (*models.MembershipPlan, error) {
	return s.plans.GetMembershipPlan(ctx, uid)
}

// ListMembershipPlans возвращает тарифы членства, используя кеш или хранилище.
func (s *CatalogService) ListMembershipPlans(ctx context.Context, onlyActive bool) ([]*models.MembershipPlan, error) {
	if !onlyActive {
		return s.plans.ListMembershipPlans(ctx, false)
	}

	var cached []*models.MembershipPlan
	found, err := s.cache.Get(cacheKeyPlansAll, &cached)
	if err != nil {
		s.log.Warn("failed to read membership plans from cache", slog.Any("err", err))
	}
	if found {
		return cached, nil
	}

	result, err := s.plans.ListMembershipPlans(ctx, true)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(cacheKeyPlansAll, result, catalogCacheExpiry); err != nil {
		s.log.Warn("failed to cache membership plans", slog.Any("err", err))
	}
	return result, nil
}

// UpdateMembershipPlan обновляет тариф и сбрасывает кеш тарифов.
func (s *CatalogService) UpdateMembershipPlan(ctx context.Context, uid string, req models.MembershipPlanRequest) (int, error) {
	plan := models.MembershipPlan{
		Name:            req.Name,
		Tier:            req.Tier,
		Price:           req.Price,
		OriginalPrice:   req.OriginalPrice,
		DurationMonths:  req.DurationMonths,
		WeeklyAllowance: req.WeeklyAllowance,
		Features:        req.Features,
		DiscountPercent: req.DiscountPercent,
		IsActive:        req.IsActive,
	}

	count, err := s.plans.UpdateMembershipPlan(ctx, uid, plan)
	if err != nil {
		return 0, err
	}

	s.invalidate(cacheKeyPlansAll)
	return count, nil
}

// RemoveMembershipPlan удаляет тариф и сбрасывает кеш тарифов.
func (s *CatalogService) RemoveMembershipPlan(ctx context.Context, uid string) (int, error) {
	count, err := s.plans.RemoveMembershipPlan(ctx, uid)
	if err != nil {
		return 0, err
	}

	s.invalidate(cacheKeyPlansAll)
	return count, nil
}

func (s *CatalogService) invalidate(key string) {
	if err := s.cache.Invalidate(key); err != nil {
		s.log.Warn("failed to invalidate cache", slog.String("key", key), slog.Any("err", err))
	}
}
