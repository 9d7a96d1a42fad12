package httpserver

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sursrinu/artandcraft-platform/internal/apperr"
	"github.com/sursrinu/artandcraft-platform/internal/service"
	"github.com/sursrinu/artandcraft-platform/internal/transport"
)

type AuthHandler struct {
	Svc *service.AuthService
}

func createCookie(name, value, path string, exp time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		Expires:  exp,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}

func (h *AuthHandler) setTokenCookies(c echo.Context, res *service.LoginResult) {
	c.SetCookie(createCookie("accessToken", res.AccessToken, "/", res.AccessExp))
	c.SetCookie(createCookie("refreshToken", res.RefreshToken, "/", res.RefreshExp))
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation(apperr.CodeValidation, "invalid body")
	}

	user, err := h.Svc.Register(c.Request().Context(), req.Username, req.Email, req.Password)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, user, "Registered successfully")
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation(apperr.CodeValidation, "invalid body")
	}

	res, err := h.Svc.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	h.setTokenCookies(c, res)
	return respond(c, http.StatusOK, res, "")
}

func (h *AuthHandler) Refresh(c echo.Context) error {
	cookie, err := c.Cookie("refreshToken")
	if err != nil {
		return apperr.Unauthorized("Refresh token missing")
	}

	res, err := h.Svc.Refresh(c.Request().Context(), cookie.Value)
	if err != nil {
		return err
	}

	h.setTokenCookies(c, res)
	return respond(c, http.StatusOK, res, "")
}

func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie("refreshToken"); err == nil {
		if err := h.Svc.Logout(c.Request().Context(), cookie.Value); err != nil {
			return err
		}
	}

	expired := time.Now().Add(-time.Hour)
	c.SetCookie(createCookie("accessToken", "", "/", expired))
	c.SetCookie(createCookie("refreshToken", "", "/", expired))
	return respond(c, http.StatusOK, nil, "Logged out")
}
