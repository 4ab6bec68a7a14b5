package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// CSRFStore issues and consumes the per-entity anti-forgery tokens embedded
// in the admin delete forms. Tokens are scoped by intent ("delete:excuse:42")
// and single-use.
type CSRFStore interface {
	Issue(ctx context.Context, intent string) (string, error)
	Consume(ctx context.Context, intent, token string) bool
}

// flashError translates the ?error= query flag set by redirects into the
// banner text rendered by the admin templates.
func flashError(c *gin.Context) string {
	if c.Query("error") == "csrf" {
		return "Token de seguridad inválido o caducado. No se eliminó el registro."
	}
	return ""
}

// Dashboard renders the admin landing page.
func Dashboard() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, "dashboard.html", gin.H{})
	}
}
