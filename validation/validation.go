package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Errors maps a field name to a human-readable message. It is returned by
// Struct and surfaced to clients as the body of a 422 response.
type Errors map[string]string

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for field, msg := range e {
		parts = append(parts, field+": "+msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields under their json names, not Go struct names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Struct validates v against its `validate` tags. On failure it returns an
// Errors map keyed by field; the first failing rule per field wins.
func Struct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := make(Errors, len(verrs))
	for _, fe := range verrs {
		if _, ok := out[fe.Field()]; !ok {
			out[fe.Field()] = message(fe)
		}
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required", fe.Field())
	case "email":
		return fmt.Sprintf("The %s must be a valid email address", fe.Field())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("The %s must be at least %s characters", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("The %s must be at least %s", fe.Field(), fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("The %s must not be greater than %s characters", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("The %s must not be greater than %s", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("The %s must be greater than %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("The %s must be at least %s", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("The %s must not be greater than %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("The %s field is invalid", fe.Field())
	}
}
