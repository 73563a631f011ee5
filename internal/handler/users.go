package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/itemvault/backend/internal/model"
	"github.com/itemvault/backend/internal/service"
)

type AdminHandler struct {
	svc *service.AdminService
}

func NewAdminHandler(svc *service.AdminService) *AdminHandler {
	return &AdminHandler{svc: svc}
}

// ListUsers godoc
// @Summary List all users (superuser only)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.UserRead
// @Failure 401 {object} model.ErrorResponse
// @Failure 403 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.svc.ListUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	res := make([]model.UserRead, 0, len(users))
	for i := range users {
		res = append(res, users[i].Read())
	}
	c.JSON(http.StatusOK, res)
}
