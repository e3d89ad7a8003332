package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"github.com/pancakehouse/backend/internal/es"
	"github.com/pancakehouse/backend/internal/logging"
	"github.com/pancakehouse/backend/internal/mykafka"
	"github.com/pancakehouse/backend/internal/service"
)

type CatalogHandler struct {
	Svc      *service.CatalogService
	Producer *mykafka.Producer
	ES       *elasticsearch.Client
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}

func (h *CatalogHandler) ListPancakes(c echo.Context) error {
	pancakes, err := h.Svc.ListPancakes(c.Request().Context(), true)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, pancakes)
}

func (h *CatalogHandler) AdminListPancakes(c echo.Context) error {
	pancakes, err := h.Svc.ListPancakes(c.Request().Context(), false)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, pancakes)
}

func (h *CatalogHandler) GetPancake(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	pancake, err := h.Svc.GetPancake(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, pancake)
}

func (h *CatalogHandler) CreatePancake(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.create_pancake")

	var req service.CreatePancakeInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	pancake, err := h.Svc.CreatePancake(ctx, req)
	if err != nil {
		l.Warn("create_pancake_error", "error", err)
		return toHTTPError(err)
	}

	if err := es.IndexPancake(ctx, h.ES, es.PancakeIndex, pancake); err != nil {
		l.Warn("index_pancake_error", "pancake_id", pancake.ID, "error", err)
	}
	publish(c, h.Producer, "catalog_events", fmt.Sprint(pancake.ID), map[string]interface{}{
		"type":       "pancake_created",
		"pancake_id": pancake.ID,
		"name":       pancake.Name,
	})

	return c.JSON(http.StatusCreated, pancake)
}

func (h *CatalogHandler) PatchPancake(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.patch_pancake")

	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req service.UpdatePancakeInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	pancake, err := h.Svc.UpdatePancake(ctx, id, req)
	if err != nil {
		l.Warn("patch_pancake_error", "pancake_id", id, "error", err)
		return toHTTPError(err)
	}

	if err := es.IndexPancake(ctx, h.ES, es.PancakeIndex, pancake); err != nil {
		l.Warn("index_pancake_error", "pancake_id", pancake.ID, "error", err)
	}
	publish(c, h.Producer, "catalog_events", fmt.Sprint(pancake.ID), map[string]interface{}{
		"type":       "pancake_updated",
		"pancake_id": pancake.ID,
		"name":       pancake.Name,
	})

	return c.JSON(http.StatusOK, pancake)
}

func (h *CatalogHandler) ListSizes(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	sizes, err := h.Svc.ListSizes(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, sizes)
}

func (h *CatalogHandler) CreateSize(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.create_size")

	var req service.CreateSizeInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	size, err := h.Svc.CreateSize(ctx, req)
	if err != nil {
		l.Warn("create_size_error", "pancake_id", req.PancakeID, "error", err)
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, size)
}

func (h *CatalogHandler) ListToppings(c echo.Context) error {
	toppings, err := h.Svc.ListToppings(c.Request().Context(), true)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toppings)
}

func (h *CatalogHandler) AdminListToppings(c echo.Context) error {
	toppings, err := h.Svc.ListToppings(c.Request().Context(), false)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toppings)
}

func (h *CatalogHandler) CreateTopping(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.create_topping")

	var req service.CreateToppingInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	topping, err := h.Svc.CreateTopping(ctx, req)
	if err != nil {
		l.Warn("create_topping_error", "error", err)
		return toHTTPError(err)
	}

	publish(c, h.Producer, "catalog_events", fmt.Sprint(topping.ID), map[string]interface{}{
		"type":       "topping_created",
		"topping_id": topping.ID,
		"name":       topping.Name,
	})

	return c.JSON(http.StatusCreated, topping)
}

func (h *CatalogHandler) PatchTopping(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.patch_topping")

	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req service.UpdateToppingInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	topping, err := h.Svc.UpdateTopping(ctx, id, req)
	if err != nil {
		l.Warn("patch_topping_error", "topping_id", id, "error", err)
		return toHTTPError(err)
	}

	publish(c, h.Producer, "catalog_events", fmt.Sprint(topping.ID), map[string]interface{}{
		"type":       "topping_updated",
		"topping_id": topping.ID,
		"name":       topping.Name,
	})

	return c.JSON(http.StatusOK, topping)
}
