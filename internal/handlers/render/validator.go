package render

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/julianpalmerio/minivenmo/internal/service/validate"
)

func configureValidator(v *validator.Validate) {
	_ = v.RegisterValidation("username", validateUsername)
	_ = v.RegisterValidation("card", validateCardNumber)
	v.RegisterTagNameFunc(useJSONTagNames)
}

func useJSONTagNames(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	// skip if tag key says it should be ignored
	if name == "-" {
		return ""
	}
	return name
}

// validateUsername reuses the registry's username predicate so the HTTP
// surface and the service reject exactly the same names
func validateUsername(fl validator.FieldLevel) bool {
	return validate.Username(fl.Field().String()) == nil
}

func validateCardNumber(fl validator.FieldLevel) bool {
	return validate.CardNumber(fl.Field().String()) == nil
}
