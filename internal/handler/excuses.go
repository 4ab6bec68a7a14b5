package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/aargibay-evolmind/excusator-3000/internal/apierror"
	"github.com/aargibay-evolmind/excusator-3000/internal/service"

	"github.com/gin-gonic/gin"
)

type ExcusesHandler struct{ svc service.ExcuseService }

func NewExcusesHandler(svc service.ExcuseService) *ExcusesHandler {
	return &ExcusesHandler{svc: svc}
}

// Random godoc
// @Summary Random excuse for a category
// @Tags excuses
// @Produce json
// @Param category_id query int true "Category id"
// @Success 200 {object} dto.ExcuseResponse
// @Failure 400 {object} apierror.APIError
// @Failure 404 {object} apierror.APIError
// @Router /api/excuse [get]
func (h *ExcusesHandler) Random(c *gin.Context) {
	categoryID, err := strconv.Atoi(c.Query("category_id"))
	if err != nil || categoryID <= 0 {
		c.JSON(http.StatusBadRequest, apierror.New("Category ID is required"))
		return
	}

	resp, err := h.svc.RandomByCategory(c.Request.Context(), uint(categoryID))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("No excuse found for this category"))
			return
		}
		c.Error(err) //nolint:errcheck
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Legacy serves the pre-database static table. Unknown ids resolve to a
// fallback string with status 200; a non-integer id is a plain 404 (the
// route used to require an int parameter).
func (h *ExcusesHandler) Legacy(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	c.JSON(http.StatusOK, h.svc.LegacyByID(id))
}
