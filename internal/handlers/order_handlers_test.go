package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/pancakehouse/backend/internal/models"
)

func asUser(c echo.Context, user *models.User) {
	c.Set("userID", user.ID)
	if user.IsAdmin {
		c.Set("role", "admin")
	} else {
		c.Set("role", "user")
	}
}

func TestCreateOrderHandler(t *testing.T) {
	env := newTestEnv(t)

	user := env.createUser("anna@example.com", false)
	pancake := env.createPancake("Classic", "8.00", true)

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/orders", map[string]interface{}{
		"items": []map[string]interface{}{
			{"pancake_id": pancake.ID, "quantity": 2},
		},
		"notes": "extra crispy please",
	})
	asUser(c, user)

	require.NoError(t, env.Order.CreateOrder(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var order models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))
	require.Equal(t, user.ID, order.UserID)
	require.Equal(t, models.OrderStatusPending, order.Status)
	require.True(t, order.TotalAmount.Equal(mustDec(t, "16.00")), "got %s", order.TotalAmount)
	require.NotNil(t, order.Notes)
	require.Equal(t, "extra crispy please", *order.Notes)
}

func TestCreateOrderHandlerValidation(t *testing.T) {
	env := newTestEnv(t)

	user := env.createUser("anna@example.com", false)
	env.createPancake("Seasonal", "9.00", false)

	_, c := env.doJSONRequest(http.MethodPost, "/api/v1/orders", map[string]interface{}{
		"items": []map[string]interface{}{
			{"pancake_id": 1, "quantity": 1},
		},
	})
	asUser(c, user)

	err := env.Order.CreateOrder(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusBadRequest, he.Code)
}

func TestGetOrderHandlerOwnership(t *testing.T) {
	env := newTestEnv(t)

	owner := env.createUser("anna@example.com", false)
	stranger := env.createUser("boris@example.com", false)
	admin := env.createUser("admin@example.com", true)
	pancake := env.createPancake("Classic", "8.00", true)

	recCreate, cCreate := env.doJSONRequest(http.MethodPost, "/api/v1/orders", map[string]interface{}{
		"items": []map[string]interface{}{
			{"pancake_id": pancake.ID, "quantity": 1},
		},
	})
	asUser(cCreate, owner)
	require.NoError(t, env.Order.CreateOrder(cCreate))

	var order models.Order
	require.NoError(t, json.Unmarshal(recCreate.Body.Bytes(), &order))

	get := func(u *models.User) error {
		_, c := env.doJSONRequest(http.MethodGet, "/", nil)
		c.SetPath("/api/v1/orders/:id")
		c.SetParamNames("id")
		c.SetParamValues("1")
		asUser(c, u)
		return env.Order.GetOrder(c)
	}

	require.NoError(t, get(owner))
	require.NoError(t, get(admin))

	err := get(stranger)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusForbidden, he.Code)
}

func TestUpdateOrderStatusHandler(t *testing.T) {
	env := newTestEnv(t)

	user := env.createUser("anna@example.com", false)
	pancake := env.createPancake("Classic", "8.00", true)

	_, cCreate := env.doJSONRequest(http.MethodPost, "/api/v1/orders", map[string]interface{}{
		"items": []map[string]interface{}{
			{"pancake_id": pancake.ID, "quantity": 1},
		},
	})
	asUser(cCreate, user)
	require.NoError(t, env.Order.CreateOrder(cCreate))

	patch := func(status string) (*httptest.ResponseRecorder, error) {
		rec, c := env.doJSONRequest(http.MethodPatch, "/", map[string]string{"status": status})
		c.SetPath("/api/v1/admin/orders/:id/status")
		c.SetParamNames("id")
		c.SetParamValues("1")
		return rec, env.Order.UpdateOrderStatus(c)
	}

	rec, err := patch("confirmed")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rec.Code)

	var updated models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	require.Equal(t, models.OrderStatusConfirmed, updated.Status)

	_, err = patch("completed")
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusUnprocessableEntity, he.Code)

	_, errMissing := func() (*httptest.ResponseRecorder, error) {
		rec, c := env.doJSONRequest(http.MethodPatch, "/", map[string]string{"status": "confirmed"})
		c.SetPath("/api/v1/admin/orders/:id/status")
		c.SetParamNames("id")
		c.SetParamValues("404")
		return rec, env.Order.UpdateOrderStatus(c)
	}()
	heMissing, ok := errMissing.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusNotFound, heMissing.Code)
}
