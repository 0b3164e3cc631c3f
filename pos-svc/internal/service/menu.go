package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"overcooked-pos/pos-svc/internal/domain"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type ItemInput struct {
	Name       string          `json:"name" validate:"required,min=1,max=255"`
	Rate       decimal.Decimal `json:"rate"`
	CategoryID int             `json:"category_id" validate:"required,min=1"`
}

type MenuService struct {
	items      ItemRepository
	categories CategoryRepository
	validate   *validator.Validate
	logger     *zap.Logger
}

func NewMenuService(items ItemRepository, categories CategoryRepository, logger *zap.Logger) *MenuService {
	return &MenuService{
		items:      items,
		categories: categories,
		validate:   validator.New(),
		logger:     logger,
	}
}

func (s *MenuService) CreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if len(name) < 3 {
		return nil, fmt.Errorf("%w: category name must be at least 3 characters", ErrValidation)
	}

	category := &domain.Category{Name: strings.ToUpper(name)}
	if err := s.categories.CreateCategory(ctx, category); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, fmt.Errorf("%w: category %s", ErrConflict, category.Name)
		}
		return nil, fmt.Errorf("create category: %w", err)
	}
	return category, nil
}

func (s *MenuService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categories.ListCategories(ctx)
}

func (s *MenuService) CreateItem(ctx context.Context, input ItemInput, ownerID int) (*domain.Item, error) {
	category, err := s.checkItemInput(ctx, input)
	if err != nil {
		return nil, err
	}

	item := &domain.Item{
		Name:       strings.TrimSpace(input.Name),
		Rate:       input.Rate,
		CategoryID: category.ID,
		OwnerID:    ownerID,
	}
	if err := s.items.CreateItem(ctx, item); err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}
	item.CategoryName = category.Name

	s.logger.Info("item created", zap.Int("item_id", item.ID), zap.Int("owner_id", ownerID))
	return item, nil
}

func (s *MenuService) ListItems(ctx context.Context, ownerID int, search string) ([]domain.Item, error) {
	return s.items.ListItems(ctx, ownerID, strings.TrimSpace(search))
}

// UpdateItem rewrites an item of the owner. Existing order lines keep the
// total they were priced at until they are next written.
func (s *MenuService) UpdateItem(ctx context.Context, itemID int, input ItemInput, ownerID int) (*domain.Item, error) {
	item, err := s.items.GetItem(ctx, itemID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	if !item.OwnedBy(ownerID) {
		return nil, ErrNotFound
	}

	category, err := s.checkItemInput(ctx, input)
	if err != nil {
		return nil, err
	}

	item.Name = strings.TrimSpace(input.Name)
	item.Rate = input.Rate
	item.CategoryID = category.ID
	if err := s.items.UpdateItem(ctx, item); err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}
	item.CategoryName = category.Name
	return item, nil
}

func (s *MenuService) DeleteItem(ctx context.Context, itemID, ownerID int) (bool, error) {
	affected, err := s.items.DeleteItem(ctx, itemID, ownerID)
	if err != nil {
		return false, fmt.Errorf("delete item: %w", err)
	}
	if affected == 0 {
		return false, nil
	}

	s.logger.Info("item deleted", zap.Int("item_id", itemID), zap.Int("owner_id", ownerID))
	return true, nil
}

func (s *MenuService) checkItemInput(ctx context.Context, input ItemInput) (*domain.Category, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if input.Rate.IsNegative() {
		return nil, fmt.Errorf("%w: rate must not be negative", ErrValidation)
	}

	category, err := s.categories.GetCategory(ctx, input.CategoryID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("%w: category %d does not exist", ErrValidation, input.CategoryID)
	}
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	return category, nil
}
