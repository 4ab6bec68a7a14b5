package handler

import (
	"net/http"

	"github.com/aargibay-evolmind/excusator-3000/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// bindAndValidate binds a JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid JSON: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// bindForm binds an urlencoded form and validates it. On failure it returns
// a human-readable summary for the re-rendered admin page instead of writing
// a response.
func bindForm(c *gin.Context, form interface{}) (string, bool) {
	if err := c.ShouldBind(form); err != nil {
		return "El formulario no se pudo procesar.", false
	}
	if err := validate.Struct(form); err != nil {
		msg := "Revisa los campos: "
		for i, fe := range err.(validator.ValidationErrors) {
			if i > 0 {
				msg += ", "
			}
			msg += fe.Field()
		}
		return msg, false
	}
	return "", true
}
