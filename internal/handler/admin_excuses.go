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

type AdminExcusesHandler struct {
	excuses    service.ExcuseService
	categories service.CategoryService
	tokens     CSRFStore
}

func NewAdminExcusesHandler(excuses service.ExcuseService, categories service.CategoryService, tokens CSRFStore) *AdminExcusesHandler {
	return &AdminExcusesHandler{excuses: excuses, categories: categories, tokens: tokens}
}

type excuseRow struct {
	ID          uint
	Content     string
	Category    string
	DeleteToken string
}

// List GET /admin/excuses — active excuses only.
func (h *AdminExcusesHandler) List(c *gin.Context) {
	excuses, err := h.excuses.ListActive(c.Request.Context())
	if err != nil {
		c.Error(err) //nolint:errcheck
		return
	}

	rows := make([]excuseRow, 0, len(excuses))
	for _, e := range excuses {
		row := excuseRow{ID: e.ID, Content: e.Content, Category: "—"}
		if e.Category != nil {
			row.Category = e.Category.Name
		}
		token, err := h.tokens.Issue(c.Request.Context(), fmt.Sprintf("delete:excuse:%d", e.ID))
		if err != nil {
			log.Error().Err(err).Uint("excuse_id", e.ID).Msg("failed to issue csrf token")
		}
		row.DeleteToken = token
		rows = append(rows, row)
	}

	c.HTML(http.StatusOK, "excuse_index.html", gin.H{
		"Excuses": rows,
		"Error":   flashError(c),
	})
}

// NewForm GET /admin/excuses/new
func (h *AdminExcusesHandler) NewForm(c *gin.Context) {
	h.renderForm(c, http.StatusOK, "excuse_new.html", 0, dto.ExcuseForm{}, "")
}

// Create POST /admin/excuses/new
func (h *AdminExcusesHandler) Create(c *gin.Context) {
	var form dto.ExcuseForm
	if msg, ok := bindForm(c, &form); !ok {
		h.renderForm(c, http.StatusUnprocessableEntity, "excuse_new.html", 0, form, msg)
		return
	}
	if _, err := h.excuses.Create(c.Request.Context(), form); err != nil {
		if err == service.ErrNotFound {
			h.renderForm(c, http.StatusUnprocessableEntity, "excuse_new.html", 0, form, "La categoría seleccionada no existe.")
			return
		}
		c.Error(err) //nolint:errcheck
		return
	}
	c.Redirect(http.StatusSeeOther, "/admin/excuses")
}

// EditForm GET /admin/excuses/:id/edit
func (h *AdminExcusesHandler) EditForm(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	e, err := h.excuses.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		if err == service.ErrNotFound {
			c.Status(http.StatusNotFound)
			return
		}
		c.Error(err) //nolint:errcheck
		return
	}
	form := dto.ExcuseForm{Content: e.Content, CategoryID: e.CategoryID}
	h.renderForm(c, http.StatusOK, "excuse_edit.html", e.ID, form, "")
}

// Update POST /admin/excuses/:id/edit
func (h *AdminExcusesHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	var form dto.ExcuseForm
	if msg, ok := bindForm(c, &form); !ok {
		h.renderForm(c, http.StatusUnprocessableEntity, "excuse_edit.html", uint(id), form, msg)
		return
	}
	if _, err := h.excuses.Update(c.Request.Context(), uint(id), form); err != nil {
		if err == service.ErrNotFound {
			c.Status(http.StatusNotFound)
			return
		}
		c.Error(err) //nolint:errcheck
		return
	}
	c.Redirect(http.StatusSeeOther, "/admin/excuses")
}

// Delete POST /admin/excuses/:id — soft delete guarded by a single-use token.
func (h *AdminExcusesHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}

	intent := fmt.Sprintf("delete:excuse:%d", id)
	if !h.tokens.Consume(c.Request.Context(), intent, c.PostForm("_token")) {
		log.Warn().Uint64("excuse_id", id).Msg("excuse delete rejected: invalid csrf token")
		c.Redirect(http.StatusSeeOther, "/admin/excuses?error=csrf")
		return
	}

	if err := h.excuses.SoftDelete(c.Request.Context(), uint(id)); err != nil {
		if err == service.ErrNotFound {
			c.Status(http.StatusNotFound)
			return
		}
		c.Error(err) //nolint:errcheck
		return
	}
	c.Redirect(http.StatusSeeOther, "/admin/excuses")
}

// renderForm renders the new/edit form with the active categories select.
func (h *AdminExcusesHandler) renderForm(c *gin.Context, status int, tmpl string, id uint, form dto.ExcuseForm, errMsg string) {
	categories, err := h.categories.ListActive(c.Request.Context())
	if err != nil {
		c.Error(err) //nolint:errcheck
		return
	}
	c.HTML(status, tmpl, gin.H{
		"ID":         id,
		"Form":       form,
		"Categories": categories,
		"Error":      errMsg,
	})
}
