package service

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pancakehouse/backend/internal/models"
	"github.com/pancakehouse/backend/internal/repo"
)

func initTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Pancake{},
		&models.Size{},
		&models.Topping{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderItemTopping{},
	); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	return db
}

func newOrderService(t *testing.T) (*OrderService, *gorm.DB) {
	db := initTestDB(t)
	svc := &OrderService{
		Users:   &repo.UserRepo{DB: db},
		Catalog: &repo.CatalogRepo{DB: db},
		Orders:  &repo.OrderRepo{DB: db},
	}
	return svc, db
}

func dec(t *testing.T, s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func createUser(t *testing.T, db *gorm.DB) *models.User {
	user := &models.User{
		Email:        "customer@example.com",
		PasswordHash: "x",
		FirstName:    "Test",
		LastName:     "Customer",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func createPancake(t *testing.T, db *gorm.DB, name, basePrice string, available bool) *models.Pancake {
	p := &models.Pancake{
		Name:        name,
		Description: "test pancake",
		BasePrice:   dec(t, basePrice),
		Ingredients: "flour, eggs, milk",
		IsAvailable: available,
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("create pancake: %v", err)
	}
	return p
}

func createSize(t *testing.T, db *gorm.DB, pancakeID uint, name, multiplier string) *models.Size {
	s := &models.Size{
		PancakeID:       pancakeID,
		Name:            name,
		PriceMultiplier: dec(t, multiplier),
	}
	if err := db.Create(s).Error; err != nil {
		t.Fatalf("create size: %v", err)
	}
	return s
}

func createTopping(t *testing.T, db *gorm.DB, name, price string, available bool) *models.Topping {
	tp := &models.Topping{
		Name:        name,
		Price:       dec(t, price),
		IsAvailable: available,
	}
	if err := db.Create(tp).Error; err != nil {
		t.Fatalf("create topping: %v", err)
	}
	return tp
}
