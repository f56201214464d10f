package handlers

import (
	"errors"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Request bodies are validated against the declarative rules on each
// entity's request struct, so the required-field table lives in one
// place per entity instead of being re-checked field by field in every
// handler.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// validateBody returns a human-readable message for the first violated
// rule, or "" when the payload passes.
func validateBody(body any) string {
	err := validate.Struct(body)
	if err == nil {
		return ""
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid request body"
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fieldName(fe.Field()) + " is required"
	case "min":
		if fe.Kind() == reflect.Slice {
			return fieldName(fe.Field()) + " is required"
		}
		return fieldName(fe.Field()) + " is too short"
	default:
		return fieldName(fe.Field()) + " is invalid"
	}
}

// fieldName turns a json tag name like "workDate" into "Work date".
func fieldName(tag string) string {
	var b strings.Builder
	for i, r := range tag {
		switch {
		case i == 0:
			b.WriteRune(unicode.ToUpper(r))
		case unicode.IsUpper(r):
			b.WriteByte(' ')
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
