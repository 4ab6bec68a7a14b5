package handler_test

import (
	"context"
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/aargibay-evolmind/excusator-3000/internal/handler"
	"github.com/aargibay-evolmind/excusator-3000/internal/model"
	"github.com/aargibay-evolmind/excusator-3000/internal/service"
	"github.com/aargibay-evolmind/excusator-3000/web"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── CSRF store stub ──────────────────────────────────────────────────────────

// csrfStub issues predictable tokens and accepts only the ones preloaded in
// accept. Each accepted token is single-use.
type csrfStub struct {
	accept map[string]string // intent → valid token
}

func newCSRFStub() *csrfStub {
	return &csrfStub{accept: make(map[string]string)}
}

func (s *csrfStub) Issue(_ context.Context, intent string) (string, error) {
	return "issued-" + intent, nil
}

func (s *csrfStub) Consume(_ context.Context, intent, token string) bool {
	if token == "" || s.accept[intent] != token {
		return false
	}
	delete(s.accept, intent)
	return true
}

// ── Helpers ──────────────────────────────────────────────────────────────────

type adminEnv struct {
	router     *gin.Engine
	categories *categoryRepoStub
	excuses    *excuseRepoStub
	tokens     *csrfStub
}

func newAdminEnv() *adminEnv {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.SetHTMLTemplate(template.Must(template.ParseFS(web.Templates, "templates/*.html")))

	categories := newCategoryRepoStub()
	excuses := &excuseRepoStub{}
	tokens := newCSRFStub()

	categorySvc := service.NewCategoryService(categories, apiTestCfg())
	excuseSvc := service.NewExcuseService(excuses, categories)

	catH := handler.NewAdminCategoriesHandler(categorySvc, tokens)
	excH := handler.NewAdminExcusesHandler(excuseSvc, categorySvc, tokens)

	r.GET("/admin", handler.Dashboard())
	r.GET("/admin/categories", catH.List)
	r.POST("/admin/categories", catH.Create)
	r.POST("/admin/categories/:id", catH.Delete)
	r.GET("/admin/excuses", excH.List)
	r.GET("/admin/excuses/new", excH.NewForm)
	r.POST("/admin/excuses/new", excH.Create)
	r.POST("/admin/excuses/:id", excH.Delete)

	return &adminEnv{router: r, categories: categories, excuses: excuses, tokens: tokens}
}

func doForm(t *testing.T, r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doGet(t *testing.T, r *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, path, nil)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ── Tests: category admin ────────────────────────────────────────────────────

func TestAdminCategories_ListShowsDeletedState(t *testing.T) {
	env := newAdminEnv()
	env.categories.byID[1] = &model.Category{ID: 1, Name: "Activa SA"}
	env.categories.byID[2] = &model.Category{
		ID: 2, Name: "Borrada SL",
		DeletedAt: gorm.DeletedAt{Time: time.Now(), Valid: true},
	}
	env.categories.qualifying = []model.Category{*env.categories.byID[1], *env.categories.byID[2]}

	w := doGet(t, env.router, "/admin/categories")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()

	assert.Contains(t, body, "Activa SA")
	assert.Contains(t, body, "Borrada SL")
	assert.Contains(t, body, "Eliminada")
	// Delete form only for the active row
	assert.Contains(t, body, "issued-delete:category:1")
	assert.NotContains(t, body, "issued-delete:category:2")
}

func TestAdminCategories_CreateRedirects(t *testing.T) {
	env := newAdminEnv()

	w := doForm(t, env.router, "/admin/categories", url.Values{"name": {"Becarios"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/categories", w.Header().Get("Location"))
	require.Len(t, env.categories.byID, 1)
	assert.Equal(t, "Becarios", env.categories.byID[1].Name)
}

func TestAdminCategories_CreateEmptyNameRerenders(t *testing.T) {
	env := newAdminEnv()

	w := doForm(t, env.router, "/admin/categories", url.Values{"name": {""}})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Revisa los campos")
	assert.Empty(t, env.categories.byID, "invalid form must not create anything")
}

func TestAdminCategories_DeleteWithValidToken(t *testing.T) {
	env := newAdminEnv()
	env.categories.byID[1] = &model.Category{ID: 1, Name: "Temporal"}
	env.tokens.accept["delete:category:1"] = "good-token"

	w := doForm(t, env.router, "/admin/categories/1", url.Values{"_token": {"good-token"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/categories", w.Header().Get("Location"))
	assert.Empty(t, env.categories.byID, "category must be deleted")
}

func TestAdminCategories_DeleteInvalidTokenSkipsMutation(t *testing.T) {
	env := newAdminEnv()
	env.categories.byID[1] = &model.Category{ID: 1, Name: "Intocable"}

	w := doForm(t, env.router, "/admin/categories/1", url.Values{"_token": {"forged"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/categories?error=csrf", w.Header().Get("Location"))
	assert.Len(t, env.categories.byID, 1, "rejected token must leave the category untouched")
}

func TestAdminCategories_DeleteMissingTokenSkipsMutation(t *testing.T) {
	env := newAdminEnv()
	env.categories.byID[1] = &model.Category{ID: 1, Name: "Intocable"}

	w := doForm(t, env.router, "/admin/categories/1", url.Values{})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/categories?error=csrf", w.Header().Get("Location"))
	assert.Len(t, env.categories.byID, 1)
}

func TestAdminCategories_TokenIsSingleUse(t *testing.T) {
	env := newAdminEnv()
	env.categories.byID[1] = &model.Category{ID: 1, Name: "Primera"}
	env.categories.byID[2] = &model.Category{ID: 2, Name: "Segunda"}
	env.tokens.accept["delete:category:1"] = "once"

	first := doForm(t, env.router, "/admin/categories/1", url.Values{"_token": {"once"}})
	assert.Equal(t, "/admin/categories", first.Header().Get("Location"))

	// Replay against another entity (and the same one) must fail.
	second := doForm(t, env.router, "/admin/categories/2", url.Values{"_token": {"once"}})
	assert.Equal(t, "/admin/categories?error=csrf", second.Header().Get("Location"))
	assert.Len(t, env.categories.byID, 1)
}

func TestAdminCategories_DeleteUnknownID(t *testing.T) {
	env := newAdminEnv()
	env.tokens.accept["delete:category:42"] = "good-token"

	w := doForm(t, env.router, "/admin/categories/42", url.Values{"_token": {"good-token"}})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminCategories_CSRFBanner(t *testing.T) {
	env := newAdminEnv()

	w := doGet(t, env.router, "/admin/categories?error=csrf")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Token de seguridad inválido o caducado")
}

// ── Tests: excuse admin ──────────────────────────────────────────────────────

func TestAdminExcuses_CreateUnknownCategoryRerenders(t *testing.T) {
	env := newAdminEnv()

	w := doForm(t, env.router, "/admin/excuses/new", url.Values{
		"content":     {"El CI está en rojo."},
		"category_id": {"42"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "La categoría seleccionada no existe.")
}

func TestAdminExcuses_CreateRedirects(t *testing.T) {
	env := newAdminEnv()
	env.categories.byID[3] = &model.Category{ID: 3, Name: "Desarrolladores"}

	w := doForm(t, env.router, "/admin/excuses/new", url.Values{
		"content":     {"El CI está en rojo."},
		"category_id": {"3"},
	})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/excuses", w.Header().Get("Location"))
}

func TestAdminExcuses_NewFormListsCategories(t *testing.T) {
	env := newAdminEnv()
	env.categories.qualifying = []model.Category{{ID: 1, Name: "Desarrolladores"}, {ID: 2, Name: "Testers"}}

	w := doGet(t, env.router, "/admin/excuses/new")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Desarrolladores")
	assert.Contains(t, w.Body.String(), "Testers")
}

func TestAdminExcuses_DeleteInvalidToken(t *testing.T) {
	env := newAdminEnv()

	w := doForm(t, env.router, "/admin/excuses/9", url.Values{"_token": {"forged"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/excuses?error=csrf", w.Header().Get("Location"))
}

func TestAdminDashboard(t *testing.T) {
	env := newAdminEnv()

	w := doGet(t, env.router, "/admin")
	assert.Equal(t, http.StatusOK, w.Code)
}
