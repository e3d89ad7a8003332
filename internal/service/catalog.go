package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pancakehouse/backend/internal/models"
	"github.com/pancakehouse/backend/internal/repo"
)

type CatalogService struct {
	Catalog *repo.CatalogRepo
}

type CreatePancakeInput struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	BasePrice   decimal.Decimal `json:"base_price"`
	Ingredients string          `json:"ingredients"`
	ImageURL    *string         `json:"image_url"`
	IsAvailable *bool           `json:"is_available"`
}

// UpdatePancakeInput patches only the fields that are present.
type UpdatePancakeInput struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	BasePrice   *decimal.Decimal `json:"base_price"`
	Ingredients *string          `json:"ingredients"`
	ImageURL    *string          `json:"image_url"`
	IsAvailable *bool            `json:"is_available"`
}

type CreateSizeInput struct {
	PancakeID       uint            `json:"pancake_id"`
	Name            string          `json:"name"`
	PriceMultiplier decimal.Decimal `json:"price_multiplier"`
}

type CreateToppingInput struct {
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	IsAvailable *bool           `json:"is_available"`
}

type UpdateToppingInput struct {
	Name        *string          `json:"name"`
	Price       *decimal.Decimal `json:"price"`
	IsAvailable *bool            `json:"is_available"`
}

func (s *CatalogService) CreatePancake(ctx context.Context, in CreatePancakeInput) (*models.Pancake, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}
	if !in.BasePrice.IsPositive() {
		return nil, fmt.Errorf("%w: base_price must be positive", ErrValidation)
	}

	pancake := &models.Pancake{
		Name:        in.Name,
		Description: in.Description,
		BasePrice:   in.BasePrice.Round(2),
		Ingredients: in.Ingredients,
		ImageURL:    in.ImageURL,
		IsAvailable: true,
	}
	if in.IsAvailable != nil {
		pancake.IsAvailable = *in.IsAvailable
	}

	if err := s.Catalog.CreatePancake(ctx, pancake); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return pancake, nil
}

func (s *CatalogService) UpdatePancake(ctx context.Context, id uint, in UpdatePancakeInput) (*models.Pancake, error) {
	pancake, err := s.Catalog.GetPancake(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: pancake %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	if in.Name != nil {
		if *in.Name == "" {
			return nil, fmt.Errorf("%w: name required", ErrValidation)
		}
		pancake.Name = *in.Name
	}
	if in.Description != nil {
		pancake.Description = *in.Description
	}
	if in.BasePrice != nil {
		if !in.BasePrice.IsPositive() {
			return nil, fmt.Errorf("%w: base_price must be positive", ErrValidation)
		}
		pancake.BasePrice = in.BasePrice.Round(2)
	}
	if in.Ingredients != nil {
		pancake.Ingredients = *in.Ingredients
	}
	if in.ImageURL != nil {
		pancake.ImageURL = in.ImageURL
	}
	if in.IsAvailable != nil {
		pancake.IsAvailable = *in.IsAvailable
	}

	if err := s.Catalog.SavePancake(ctx, pancake); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return pancake, nil
}

func (s *CatalogService) GetPancake(ctx context.Context, id uint) (*models.Pancake, error) {
	pancake, err := s.Catalog.GetPancake(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: pancake %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return pancake, nil
}

func (s *CatalogService) ListPancakes(ctx context.Context, availableOnly bool) ([]models.Pancake, error) {
	pancakes, err := s.Catalog.ListPancakes(ctx, availableOnly)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return pancakes, nil
}

func (s *CatalogService) CreateSize(ctx context.Context, in CreateSizeInput) (*models.Size, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}
	if !in.PriceMultiplier.IsPositive() {
		return nil, fmt.Errorf("%w: price_multiplier must be positive", ErrValidation)
	}

	if _, err := s.Catalog.GetPancake(ctx, in.PancakeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: pancake %d", ErrNotFound, in.PancakeID)
		}
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	size := &models.Size{
		PancakeID:       in.PancakeID,
		Name:            in.Name,
		PriceMultiplier: in.PriceMultiplier,
	}
	if err := s.Catalog.CreateSize(ctx, size); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return size, nil
}

func (s *CatalogService) ListSizes(ctx context.Context, pancakeID uint) ([]models.Size, error) {
	if _, err := s.Catalog.GetPancake(ctx, pancakeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: pancake %d", ErrNotFound, pancakeID)
		}
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	sizes, err := s.Catalog.ListSizes(ctx, pancakeID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return sizes, nil
}

func (s *CatalogService) CreateTopping(ctx context.Context, in CreateToppingInput) (*models.Topping, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}
	if in.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price must be non-negative", ErrValidation)
	}

	topping := &models.Topping{
		Name:        in.Name,
		Price:       in.Price.Round(2),
		IsAvailable: true,
	}
	if in.IsAvailable != nil {
		topping.IsAvailable = *in.IsAvailable
	}

	if err := s.Catalog.CreateTopping(ctx, topping); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return topping, nil
}

func (s *CatalogService) UpdateTopping(ctx context.Context, id uint, in UpdateToppingInput) (*models.Topping, error) {
	topping, err := s.Catalog.GetTopping(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: topping %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	if in.Name != nil {
		if *in.Name == "" {
			return nil, fmt.Errorf("%w: name required", ErrValidation)
		}
		topping.Name = *in.Name
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, fmt.Errorf("%w: price must be non-negative", ErrValidation)
		}
		topping.Price = in.Price.Round(2)
	}
	if in.IsAvailable != nil {
		topping.IsAvailable = *in.IsAvailable
	}

	if err := s.Catalog.SaveTopping(ctx, topping); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return topping, nil
}

func (s *CatalogService) ListToppings(ctx context.Context, availableOnly bool) ([]models.Topping, error) {
	toppings, err := s.Catalog.ListToppings(ctx, availableOnly)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return toppings, nil
}
