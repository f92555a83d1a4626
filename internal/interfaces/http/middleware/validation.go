package middleware

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// SetupValidator configures gin's binding validator: JSON tag names in
// error output plus the custom storeurl rule.
func SetupValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("storeurl", func(fl validator.FieldLevel) bool {
		u := strings.TrimSpace(fl.Field().String())
		return strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://")
	})
}

// ValidationMessage turns a binding error into a client-facing message.
// Non-validator errors (malformed JSON, wrong types) get the fallback.
func ValidationMessage(err error, fallback string) string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrors) == 0 {
		return fallback
	}

	e := validationErrors[0]
	switch e.Tag() {
	case "required":
		return "Field '" + e.Field() + "' is required"
	case "email":
		return "Invalid email format"
	case "storeurl":
		return "Store URL must start with http:// or https://"
	case "min":
		return "Field '" + e.Field() + "' must be at least " + e.Param() + " characters"
	case "max":
		return "Field '" + e.Field() + "' must be at most " + e.Param() + " characters"
	default:
		return "Field '" + e.Field() + "' is invalid"
	}
}
