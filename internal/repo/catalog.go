package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/pancakehouse/backend/internal/models"
)

type CatalogRepo struct {
	DB *gorm.DB
}

func (r *CatalogRepo) CreatePancake(ctx context.Context, p *models.Pancake) error {
	return r.DB.WithContext(ctx).Create(p).Error
}

func (r *CatalogRepo) SavePancake(ctx context.Context, p *models.Pancake) error {
	return r.DB.WithContext(ctx).Save(p).Error
}

func (r *CatalogRepo) GetPancake(ctx context.Context, id uint) (*models.Pancake, error) {
	var p models.Pancake
	if err := r.DB.WithContext(ctx).Preload("Sizes").First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *CatalogRepo) ListPancakes(ctx context.Context, availableOnly bool) ([]models.Pancake, error) {
	q := r.DB.WithContext(ctx).Model(&models.Pancake{}).Preload("Sizes").Order("id ASC")
	if availableOnly {
		q = q.Where("is_available = ?", true)
	}

	var pancakes []models.Pancake
	if err := q.Find(&pancakes).Error; err != nil {
		return nil, err
	}
	return pancakes, nil
}

func (r *CatalogRepo) CreateSize(ctx context.Context, s *models.Size) error {
	return r.DB.WithContext(ctx).Create(s).Error
}

func (r *CatalogRepo) GetSize(ctx context.Context, id uint) (*models.Size, error) {
	var s models.Size
	if err := r.DB.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *CatalogRepo) ListSizes(ctx context.Context, pancakeID uint) ([]models.Size, error) {
	var sizes []models.Size
	if err := r.DB.WithContext(ctx).Where("pancake_id = ?", pancakeID).Order("id ASC").Find(&sizes).Error; err != nil {
		return nil, err
	}
	return sizes, nil
}

func (r *CatalogRepo) CreateTopping(ctx context.Context, t *models.Topping) error {
	return r.DB.WithContext(ctx).Create(t).Error
}

func (r *CatalogRepo) SaveTopping(ctx context.Context, t *models.Topping) error {
	return r.DB.WithContext(ctx).Save(t).Error
}

func (r *CatalogRepo) GetTopping(ctx context.Context, id uint) (*models.Topping, error) {
	var t models.Topping
	if err := r.DB.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *CatalogRepo) ListToppings(ctx context.Context, availableOnly bool) ([]models.Topping, error) {
	q := r.DB.WithContext(ctx).Model(&models.Topping{}).Order("id ASC")
	if availableOnly {
		q = q.Where("is_available = ?", true)
	}

	var toppings []models.Topping
	if err := q.Find(&toppings).Error; err != nil {
		return nil, err
	}
	return toppings, nil
}
