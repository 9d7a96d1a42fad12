package middleware

import (
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/sursrinu/artandcraft-platform/internal/apperr"
)

type Auth struct {
	JWTSecret []byte
}

func token(c echo.Context) string {
	if h := c.Request().Header.Get(echo.HeaderAuthorization); h != "" {
		// An Authorization header without the Bearer scheme is malformed,
		// not a cookie fallback.
		if raw, ok := strings.CutPrefix(h, "Bearer "); ok {
			return raw
		}
		return ""
	}
	if cookie, err := c.Cookie("accessToken"); err == nil {
		return cookie.Value
	}
	return ""
}

func (a *Auth) parse(c echo.Context) (jwt.MapClaims, error) {
	raw := token(c)
	if raw == "" {
		return nil, apperr.Unauthorized("Missing access token")
	}

	t, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.JWTSecret, nil
	})
	if err != nil || !t.Valid {
		return nil, apperr.Unauthorized("Invalid access token")
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apperr.Unauthorized("Invalid token claims")
	}
	return claims, nil
}

// RequireLogin authenticates the request and stores userID/role in context.
func (a *Auth) RequireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := a.parse(c)
		if err != nil {
			return err
		}
		sub, ok := claims["sub"].(float64)
		if !ok {
			return apperr.Unauthorized("Invalid subject claim")
		}
		role, _ := claims["role"].(string)
		c.Set("userID", uint(sub))
		c.Set("role", role)
		return next(c)
	}
}

func (a *Auth) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return a.RequireLogin(func(c echo.Context) error {
		if Role(c) != "admin" {
			return apperr.Forbidden("Admin access required")
		}
		return next(c)
	})
}

func UserID(c echo.Context) uint {
	if v, ok := c.Get("userID").(uint); ok {
		return v
	}
	return 0
}

func Role(c echo.Context) string {
	if v, ok := c.Get("role").(string); ok {
		return v
	}
	return ""
}
