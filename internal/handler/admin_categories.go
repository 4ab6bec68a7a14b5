package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/aargibay-evolmind/excusator-3000/internal/dto"
	"github.com/aargibay-evolmind/excusator-3000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type AdminCategoriesHandler struct {
	svc    service.CategoryService
	tokens CSRFStore
}

func NewAdminCategoriesHandler(svc service.CategoryService, tokens CSRFStore) *AdminCategoriesHandler {
	return &AdminCategoriesHandler{svc: svc, tokens: tokens}
}

type categoryRow struct {
	ID          uint
	Name        string
	Deleted     bool
	DeleteToken string
}

// List GET /admin/categories — every category, soft-deleted ones greyed out.
func (h *AdminCategoriesHandler) List(c *gin.Context) {
	h.renderList(c, http.StatusOK, dto.CategoryForm{}, flashError(c))
}

// Create POST /admin/categories — inline form on the list page.
func (h *AdminCategoriesHandler) Create(c *gin.Context) {
	var form dto.CategoryForm
	if msg, ok := bindForm(c, &form); !ok {
		h.renderList(c, http.StatusUnprocessableEntity, form, msg)
		return
	}
	if _, err := h.svc.Create(c.Request.Context(), form); err != nil {
		c.Error(err) //nolint:errcheck
		return
	}
	c.Redirect(http.StatusSeeOther, "/admin/categories")
}

// Delete POST /admin/categories/:id — soft delete guarded by a single-use token.
func (h *AdminCategoriesHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}

	intent := fmt.Sprintf("delete:category:%d", id)
	if !h.tokens.Consume(c.Request.Context(), intent, c.PostForm("_token")) {
		log.Warn().Uint64("category_id", id).Msg("category delete rejected: invalid csrf token")
		c.Redirect(http.StatusSeeOther, "/admin/categories?error=csrf")
		return
	}

	if err := h.svc.SoftDelete(c.Request.Context(), uint(id)); err != nil {
		if err == service.ErrNotFound {
			c.Status(http.StatusNotFound)
			return
		}
		c.Error(err) //nolint:errcheck
		return
	}
	c.Redirect(http.StatusSeeOther, "/admin/categories")
}

func (h *AdminCategoriesHandler) renderList(c *gin.Context, status int, form dto.CategoryForm, errMsg string) {
	categories, err := h.svc.ListAll(c.Request.Context())
	if err != nil {
		c.Error(err) //nolint:errcheck
		return
	}

	rows := make([]categoryRow, 0, len(categories))
	for _, cat := range categories {
		row := categoryRow{ID: cat.ID, Name: cat.Name, Deleted: cat.DeletedAt.Valid}
		if !row.Deleted {
			token, err := h.tokens.Issue(c.Request.Context(), fmt.Sprintf("delete:category:%d", cat.ID))
			if err != nil {
				log.Error().Err(err).Uint("category_id", cat.ID).Msg("failed to issue csrf token")
			}
			row.DeleteToken = token
		}
		rows = append(rows, row)
	}

	c.HTML(status, "category_index.html", gin.H{
		"Categories": rows,
		"Form":       form,
		"Error":      errMsg,
	})
}
