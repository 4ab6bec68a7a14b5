package handler

import (
	"errors"
	"net/http"

	"github.com/aargibay-evolmind/excusator-3000/internal/apierror"
	"github.com/aargibay-evolmind/excusator-3000/internal/service"

	"github.com/gin-gonic/gin"
)

type CategoriesHandler struct{ svc service.CategoryService }

func NewCategoriesHandler(svc service.CategoryService) *CategoriesHandler {
	return &CategoriesHandler{svc: svc}
}

// List godoc
// @Summary Categories with enough active excuses
// @Tags categories
// @Produce json
// @Success 200 {array} dto.CategoryResponse
// @Failure 400 {object} apierror.APIError
// @Router /api/categories [get]
func (h *CategoriesHandler) List(c *gin.Context) {
	resp, err := h.svc.ActiveListing(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrNotEnoughCategories) {
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
			return
		}
		c.Error(err) //nolint:errcheck
		return
	}
	c.JSON(http.StatusOK, resp)
}
