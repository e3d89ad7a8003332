package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/pancakehouse/backend/internal/models"
)

func TestCreatePancakeHandler(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/admin/pancakes", map[string]interface{}{
		"name":        "Classic",
		"description": "The classic stack",
		"base_price":  "8.00",
		"ingredients": "flour, eggs, milk",
	})
	require.NoError(t, env.Catalog.CreatePancake(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var pancake models.Pancake
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pancake))
	require.NotZero(t, pancake.ID)
	require.True(t, pancake.IsAvailable)

	_, cBad := env.doJSONRequest(http.MethodPost, "/api/v1/admin/pancakes", map[string]interface{}{
		"name":       "Free",
		"base_price": "0.00",
	})
	err := env.Catalog.CreatePancake(cBad)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusBadRequest, he.Code)
}

func TestPatchPancakeHandler(t *testing.T) {
	env := newTestEnv(t)
	pancake := env.createPancake("Classic", "8.00", true)

	rec, c := env.doJSONRequest(http.MethodPatch, "/", map[string]interface{}{
		"base_price": "9.50",
	})
	c.SetPath("/api/v1/admin/pancakes/:id")
	c.SetParamNames("id")
	c.SetParamValues("1")

	require.NoError(t, env.Catalog.PatchPancake(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var patched models.Pancake
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &patched))
	require.True(t, patched.BasePrice.Equal(mustDec(t, "9.50")))
	// untouched fields keep their values
	require.Equal(t, pancake.Name, patched.Name)
	require.Equal(t, pancake.Ingredients, patched.Ingredients)
}

func TestListPancakesFiltersAvailability(t *testing.T) {
	env := newTestEnv(t)
	env.createPancake("Classic", "8.00", true)
	env.createPancake("Seasonal", "9.00", false)

	rec, c := env.doJSONRequest(http.MethodGet, "/api/v1/pancakes", nil)
	require.NoError(t, env.Catalog.ListPancakes(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var visible []models.Pancake
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &visible))
	require.Len(t, visible, 1)
	require.Equal(t, "Classic", visible[0].Name)

	recAdmin, cAdmin := env.doJSONRequest(http.MethodGet, "/api/v1/admin/pancakes", nil)
	require.NoError(t, env.Catalog.AdminListPancakes(cAdmin))

	var all []models.Pancake
	require.NoError(t, json.Unmarshal(recAdmin.Body.Bytes(), &all))
	require.Len(t, all, 2)
}

func TestCreateSizeHandler(t *testing.T) {
	env := newTestEnv(t)
	pancake := env.createPancake("Classic", "8.00", true)

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/admin/sizes", map[string]interface{}{
		"pancake_id":       pancake.ID,
		"name":             "Large",
		"price_multiplier": "1.5",
	})
	require.NoError(t, env.Catalog.CreateSize(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var size models.Size
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &size))
	require.Equal(t, pancake.ID, size.PancakeID)

	_, cMissing := env.doJSONRequest(http.MethodPost, "/api/v1/admin/sizes", map[string]interface{}{
		"pancake_id":       9999,
		"name":             "Large",
		"price_multiplier": "1.5",
	})
	err := env.Catalog.CreateSize(cMissing)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusNotFound, he.Code)
}

func TestToppingHandlers(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/admin/toppings", map[string]interface{}{
		"name":  "Maple Syrup",
		"price": "1.00",
	})
	require.NoError(t, env.Catalog.CreateTopping(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var topping models.Topping
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &topping))

	// free toppings are allowed, negative prices are not
	recFree, cFree := env.doJSONRequest(http.MethodPost, "/api/v1/admin/toppings", map[string]interface{}{
		"name":  "Sprinkles",
		"price": "0.00",
	})
	require.NoError(t, env.Catalog.CreateTopping(cFree))
	require.Equal(t, http.StatusCreated, recFree.Code)

	_, cNeg := env.doJSONRequest(http.MethodPost, "/api/v1/admin/toppings", map[string]interface{}{
		"name":  "Discount",
		"price": "-1.00",
	})
	err := env.Catalog.CreateTopping(cNeg)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusBadRequest, he.Code)

	available := false
	recPatch, cPatch := env.doJSONRequest(http.MethodPatch, "/", map[string]interface{}{
		"is_available": available,
	})
	cPatch.SetPath("/api/v1/admin/toppings/:id")
	cPatch.SetParamNames("id")
	cPatch.SetParamValues("1")
	require.NoError(t, env.Catalog.PatchTopping(cPatch))
	require.Equal(t, http.StatusOK, recPatch.Code)

	var patched models.Topping
	require.NoError(t, json.Unmarshal(recPatch.Body.Bytes(), &patched))
	require.Equal(t, topping.ID, patched.ID)
	require.False(t, patched.IsAvailable)
	require.Equal(t, "Maple Syrup", patched.Name)
}
