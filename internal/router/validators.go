package router

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/openshelf/bookstore-api/pkg/validation"
)

// Registered at package init so the nohtml binding tag works for every
// engine, including handlers driven directly in tests.
func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("nohtml", func(fl validator.FieldLevel) bool {
			return !validation.ContainsHTML(fl.Field().String())
		})
	}
}
