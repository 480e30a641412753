package validator

import (
	"github.com/go-playground/validator/v10"

	"baketrack-backend/internal/settings"
)

type ErrorResponse struct {
	FailedField string
	Tag         string
	Value       string
}

var validate = validator.New()

func init() {
	// Register custom validation for Apps Script web app URLs
	validate.RegisterValidation("script_url", func(fl validator.FieldLevel) bool {
		if url, ok := fl.Field().Interface().(string); ok {
			return settings.ValidScriptURL(url)
		}
		return false
	})
}

func ValidateStruct(data interface{}) []*ErrorResponse {
	var errors []*ErrorResponse
	err := validate.Struct(data)
	if err != nil {
		for _, err := range err.(validator.ValidationErrors) {
			var element ErrorResponse
			element.FailedField = err.StructNamespace()
			element.Tag = err.Tag()
			element.Value = err.Param()
			errors = append(errors, &element)
		}
	}
	return errors
}
