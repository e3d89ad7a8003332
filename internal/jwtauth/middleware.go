package jwtauth

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

func (t *TokenService) accessClaims(c echo.Context) (jwt.MapClaims, error) {
	raw := ""
	if cookie, err := c.Cookie("accessToken"); err == nil {
		raw = cookie.Value
	}
	if raw == "" {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if strings.HasPrefix(header, "Bearer ") {
			raw = strings.TrimPrefix(header, "Bearer ")
		}
	}
	if raw == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
	}

	parsed, err := jwt.Parse(raw, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, echo.NewHTTPError(http.StatusUnauthorized, "unexpected signature method")
		}
		return t.JWTSecret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid access token")
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid access token")
	}
	return claims, nil
}

func setUserContext(c echo.Context, claims jwt.MapClaims) {
	c.Set("userID", uint(claims["sub"].(float64)))
	if role, ok := claims["role"].(string); ok {
		c.Set("role", role)
	}
}

func (t *TokenService) RequireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := t.accessClaims(c)
		if err != nil {
			return err
		}
		setUserContext(c, claims)
		return next(c)
	}
}

func (t *TokenService) AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := t.accessClaims(c)
		if err != nil {
			return err
		}
		if role, _ := claims["role"].(string); role != RoleAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "admin rights required")
		}
		setUserContext(c, claims)
		return next(c)
	}
}

// UserID reads the authenticated user set by the middleware.
func UserID(c echo.Context) (uint, bool) {
	id, ok := c.Get("userID").(uint)
	return id, ok
}

func IsAdmin(c echo.Context) bool {
	role, _ := c.Get("role").(string)
	return role == RoleAdmin
}
