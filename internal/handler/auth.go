package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/itemvault/backend/internal/model"
	"github.com/itemvault/backend/internal/service"
)

type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.UserCreate true "Username, email and password"
// @Success 201 {object} model.UserRead
// @Failure 400 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req model.UserCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user, err := h.svc.Register(c.Request.Context(), req)
	if err != nil {
		writeAuthError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user.Read())
}

// Login godoc
// @Summary Login and get an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.UserLogin true "Username and password"
// @Success 200 {object} model.LoginResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.UserLogin
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	res, err := h.svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// Me godoc
// @Summary Get current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.UserRead
// @Failure 401 {object} model.ErrorResponse
// @Router /me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user := GetAuthUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": service.ErrUnauthenticated.Error()})
		return
	}
	c.JSON(http.StatusOK, user.Read())
}

// writeAuthError maps the service error taxonomy onto HTTP statuses.
// Anything unrecognized is a persistence or config failure and
// surfaces as a 500.
func writeAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDuplicateUsername):
		c.JSON(http.StatusBadRequest, gin.H{"error": service.ErrDuplicateUsername.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.Header("WWW-Authenticate", "Bearer")
		c.JSON(http.StatusUnauthorized, gin.H{"error": service.ErrInvalidCredentials.Error()})
	case errors.Is(err, service.ErrUnauthenticated):
		c.Header("WWW-Authenticate", "Bearer")
		c.JSON(http.StatusUnauthorized, gin.H{"error": service.ErrUnauthenticated.Error()})
	case errors.Is(err, service.ErrInactiveAccount):
		c.JSON(http.StatusBadRequest, gin.H{"error": service.ErrInactiveAccount.Error()})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": service.ErrForbidden.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
	}
}
