package httpserver

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pancakehouse/backend/internal/handlers"
	"github.com/pancakehouse/backend/internal/jwtauth"
)

type Deps struct {
	AuthHandler    *handlers.AuthHandler
	CatalogHandler *handlers.CatalogHandler
	OrderHandler   *handlers.OrderHandler
	SearchHandler  *handlers.SearchHandler
	Tokens         *jwtauth.TokenService
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	v1 := e.Group("/api/v1")

	v1.POST("/register", d.AuthHandler.Register)
	v1.POST("/login", d.AuthHandler.Login)
	v1.POST("/refresh", d.AuthHandler.Refresh)
	v1.POST("/logout", d.AuthHandler.LogOut)

	pancakes := v1.Group("/pancakes")
	pancakes.GET("", d.CatalogHandler.ListPancakes)
	pancakes.GET("/:id", d.CatalogHandler.GetPancake)
	pancakes.GET("/:id/sizes", d.CatalogHandler.ListSizes)

	v1.GET("/toppings", d.CatalogHandler.ListToppings)
	if d.SearchHandler != nil {
		v1.GET("/search", d.SearchHandler.Search)
	}

	orders := v1.Group("/orders", d.Tokens.RequireLogin)
	orders.POST("", d.OrderHandler.CreateOrder)
	orders.GET("", d.OrderHandler.GetMyOrders)
	orders.GET("/:id", d.OrderHandler.GetOrder)

	admin := v1.Group("/admin", d.Tokens.AdminOnly)
	admin.GET("/pancakes", d.CatalogHandler.AdminListPancakes)
	admin.POST("/pancakes", d.CatalogHandler.CreatePancake)
	admin.PATCH("/pancakes/:id", d.CatalogHandler.PatchPancake)
	admin.POST("/sizes", d.CatalogHandler.CreateSize)
	admin.GET("/toppings", d.CatalogHandler.AdminListToppings)
	admin.POST("/toppings", d.CatalogHandler.CreateTopping)
	admin.PATCH("/toppings/:id", d.CatalogHandler.PatchTopping)
	admin.GET("/orders", d.OrderHandler.GetAllOrders)
	admin.PATCH("/orders/:id/status", d.OrderHandler.UpdateOrderStatus)
}
