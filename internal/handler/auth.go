package handler

import (
	"errors"
	"net/http"

	"github.com/aargibay-evolmind/excusator-3000/internal/apierror"
	"github.com/aargibay-evolmind/excusator-3000/internal/dto"
	"github.com/aargibay-evolmind/excusator-3000/internal/middleware"
	"github.com/aargibay-evolmind/excusator-3000/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{ svc service.AuthService }

func NewAuthHandler(svc service.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

// Register godoc
// @Summary Register a new account
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.RegisterRequest true "Credentials"
// @Success 201 {object} dto.TokenResponse
// @Failure 409 {object} apierror.APIError
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			c.JSON(http.StatusConflict, apierror.New(err.Error()))
			return
		}
		c.Error(err) //nolint:errcheck
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Login godoc
// @Summary Login with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.TokenResponse
// @Failure 401 {object} apierror.APIError
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, apierror.New(err.Error()))
			return
		}
		c.Error(err) //nolint:errcheck
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Me returns the account behind the presented bearer token.
func (h *AuthHandler) Me(c *gin.Context) {
	claims := middleware.GetClaims(c)
	resp, err := h.svc.Me(c.Request.Context(), claims.UserID)
	if err != nil {
		// Token was valid but the account no longer exists.
		c.JSON(http.StatusUnauthorized, apierror.New("Invalid or expired token"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
