package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pancakehouse/backend/internal/jwtauth"
	"github.com/pancakehouse/backend/internal/models"
	"github.com/pancakehouse/backend/internal/mykafka"
	"github.com/pancakehouse/backend/internal/repo"
	"github.com/pancakehouse/backend/internal/service"
)

type testEnv struct {
	T       *testing.T
	E       *echo.Echo
	DB      *gorm.DB
	Auth    *AuthHandler
	Catalog *CatalogHandler
	Order   *OrderHandler
}

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

func newTestEnv(t *testing.T) *testEnv {
	db := initTestDB(t)

	users := &repo.UserRepo{DB: db}
	catalog := &repo.CatalogRepo{DB: db}
	orders := &repo.OrderRepo{DB: db}

	tokens := &jwtauth.TokenService{
		DB:            db,
		JWTSecret:     []byte("test-jwt-secret"),
		RefreshSecret: []byte("test-refresh-secret"),
	}
	producer := &mykafka.Producer{}

	return &testEnv{
		T:  t,
		E:  echo.New(),
		DB: db,
		Auth: &AuthHandler{
			Account:  &service.AccountService{Users: users},
			Tokens:   tokens,
			Producer: producer,
		},
		Catalog: &CatalogHandler{
			Svc:      &service.CatalogService{Catalog: catalog},
			Producer: producer,
		},
		Order: &OrderHandler{
			Svc:      &service.OrderService{Users: users, Catalog: catalog, Orders: orders},
			Producer: producer,
		},
	}
}

func (env *testEnv) doJSONRequest(method, target string, payload interface{}) (*httptest.ResponseRecorder, echo.Context) {
	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(env.T, err)
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}

func mustDec(t *testing.T, s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func (env *testEnv) createPancake(name, basePrice string, available bool) *models.Pancake {
	price, err := decimal.NewFromString(basePrice)
	require.NoError(env.T, err)

	p := &models.Pancake{
		Name:        name,
		Description: "test pancake",
		BasePrice:   price,
		Ingredients: "flour, eggs, milk",
		IsAvailable: available,
	}
	require.NoError(env.T, env.DB.Create(p).Error)
	return p
}

func (env *testEnv) createUser(email string, admin bool) *models.User {
	u := &models.User{
		Email:        email,
		PasswordHash: "x",
		FirstName:    "Test",
		LastName:     "User",
		IsAdmin:      admin,
	}
	require.NoError(env.T, env.DB.Create(u).Error)
	return u
}
