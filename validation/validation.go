// Package validation wraps go-playground/validator with the field-keyed
// error shape the API returns for 422 responses. Field names come from json
// struct tags so clients see the same keys they sent.
package validation

import (
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/user/blogapi-go/apperror"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// "password" requires at least one upper, one lower, one digit and one symbol.
	// Length is handled separately by the min tag.
	must(v.RegisterValidation("password", validPassword))
	return v
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

func validPassword(fl validator.FieldLevel) bool {
	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range fl.Field().String() {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSymbol = true
		}
	}
	return hasUpper && hasLower && hasDigit && hasSymbol
}

// Struct validates s and converts any failures into a ValidationError whose
// Fields map is keyed by json field name.
func Struct(s interface{}) *apperror.AppError {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperror.NewValidationError("invalid input", err)
	}

	fields := make(map[string][]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = append(fields[fe.Field()], messageFor(fe))
	}
	return apperror.NewFieldValidationError("The given data was invalid.", fields)
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "The " + fe.Field() + " field is required."
	case "email":
		return "The " + fe.Field() + " must be a valid email address."
	case "max":
		return "The " + fe.Field() + " may not be greater than " + fe.Param() + " characters."
	case "min":
		return "The " + fe.Field() + " must be at least " + fe.Param() + " characters."
	case "eqfield":
		return "The " + fe.Field() + " does not match."
	case "password":
		return "The " + fe.Field() + " must contain at least one uppercase letter, one lowercase letter, one number, and one symbol."
	default:
		return "The " + fe.Field() + " is invalid."
	}
}
