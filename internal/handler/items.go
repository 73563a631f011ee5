package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/itemvault/backend/internal/model"
	"github.com/itemvault/backend/internal/service"
)

type ItemHandler struct {
	svc *service.ItemService
}

func NewItemHandler(svc *service.ItemService) *ItemHandler {
	return &ItemHandler{svc: svc}
}

// CreateItem godoc
// @Summary Create an item
// @Tags items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.ItemCreate true "Item payload"
// @Success 201 {object} model.ItemRead
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /items/ [post]
func (h *ItemHandler) CreateItem(c *gin.Context) {
	user := GetAuthUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": service.ErrUnauthenticated.Error()})
		return
	}

	var req model.ItemCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	item, err := h.svc.Create(c.Request.Context(), user, req)
	if err != nil {
		writeItemError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item.Read())
}

// ListItems godoc
// @Summary List the current user's items
// @Tags items
// @Produce json
// @Security BearerAuth
// @Param skip query int false "Offset" default(0)
// @Param limit query int false "Page size" default(100)
// @Success 200 {array} model.ItemRead
// @Failure 401 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /items/ [get]
func (h *ItemHandler) ListItems(c *gin.Context) {
	user := GetAuthUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": service.ErrUnauthenticated.Error()})
		return
	}

	skip, err := strconv.Atoi(c.DefaultQuery("skip", "0"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid skip parameter"})
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit parameter"})
		return
	}

	items, err := h.svc.List(c.Request.Context(), user, skip, limit)
	if err != nil {
		writeItemError(c, err)
		return
	}

	res := make([]model.ItemRead, 0, len(items))
	for i := range items {
		res = append(res, items[i].Read())
	}
	c.JSON(http.StatusOK, res)
}

// GetItem godoc
// @Summary Get an item by id
// @Tags items
// @Produce json
// @Security BearerAuth
// @Param id path int true "Item ID"
// @Success 200 {object} model.ItemRead
// @Failure 401 {object} model.ErrorResponse
// @Failure 403 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /items/{id} [get]
func (h *ItemHandler) GetItem(c *gin.Context) {
	user, id, ok := h.userAndID(c)
	if !ok {
		return
	}

	item, err := h.svc.Get(c.Request.Context(), user, id)
	if err != nil {
		writeItemError(c, err)
		return
	}

	c.JSON(http.StatusOK, item.Read())
}

// UpdateItem godoc
// @Summary Update an item
// @Tags items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Item ID"
// @Param request body model.ItemUpdate true "Fields to update"
// @Success 200 {object} model.ItemRead
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 403 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /items/{id} [put]
func (h *ItemHandler) UpdateItem(c *gin.Context) {
	user, id, ok := h.userAndID(c)
	if !ok {
		return
	}

	var req model.ItemUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	item, err := h.svc.Update(c.Request.Context(), user, id, req)
	if err != nil {
		writeItemError(c, err)
		return
	}

	c.JSON(http.StatusOK, item.Read())
}

// DeleteItem godoc
// @Summary Delete an item
// @Tags items
// @Produce json
// @Security BearerAuth
// @Param id path int true "Item ID"
// @Success 200 {object} model.MessageResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 403 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /items/{id} [delete]
func (h *ItemHandler) DeleteItem(c *gin.Context) {
	user, id, ok := h.userAndID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), user, id); err != nil {
		writeItemError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.MessageResponse{Message: "Item deleted successfully"})
}

func (h *ItemHandler) userAndID(c *gin.Context) (*model.User, int64, bool) {
	user := GetAuthUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": service.ErrUnauthenticated.Error()})
		return nil, 0, false
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return nil, 0, false
	}

	return user, id, true
}

func writeItemError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": service.ErrItemNotFound.Error()})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": service.ErrForbidden.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
	}
}
