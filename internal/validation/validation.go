// Package validation checks request payloads against their `validate` struct
// tags and turns failures into field-level errors.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validatable is implemented by request payloads that know how to validate themselves.
type Validatable interface {
	Validate() error
}

// FieldError describes a single invalid field.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// TagUTF16Max limits a string's length in UTF-16 code units, the unit
// browsers and JavaScript clients count in.
const TagUTF16Max = "utf16max"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names so messages match the wire format.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation(TagUTF16Max, utf16Max); err != nil {
		panic(err)
	}

	return v
}

func utf16Max(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		panic(fmt.Sprintf("validation: bad %s param %q", TagUTF16Max, fl.Param()))
	}
	field := fl.Field()
	if field.Kind() != reflect.String {
		return false
	}
	return UTF16Len(field.String()) <= limit
}

// UTF16Len returns the number of UTF-16 code units needed to encode s.
// Runes outside the Basic Multilingual Plane take a surrogate pair.
func UTF16Len(s string) int {
	n := 0
	for _, r := range s {
		if r > 0xFFFF {
			n += 2
		} else {
			n++
		}
	}
	return n
}

// Struct validates v using its struct tags.
func Struct(v any) error {
	return validate.Struct(v)
}

// HasTag reports whether err contains a failure of the given validator tag.
func HasTag(err error, tag string) bool {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return false
	}
	for _, fe := range verrs {
		if fe.Tag() == tag {
			return true
		}
	}
	return false
}

// FieldErrors converts a validation failure into per-field messages.
// Errors that did not come from the validator yield nil.
func FieldErrors(err error) []FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	fieldErrors := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		var msg string

		switch fe.Tag() {
		case "required":
			msg = "is required"
		case "max":
			if fe.Kind() == reflect.String {
				msg = fmt.Sprintf("must not exceed %s characters", fe.Param())
			} else {
				msg = fmt.Sprintf("must not exceed %s", fe.Param())
			}
		case TagUTF16Max:
			msg = fmt.Sprintf("must not exceed %s characters", fe.Param())
		case "min":
			if fe.Kind() == reflect.String {
				msg = fmt.Sprintf("must be at least %s characters", fe.Param())
			} else {
				msg = fmt.Sprintf("must be at least %s", fe.Param())
			}
		default:
			if fe.Param() != "" {
				msg = fmt.Sprintf("%s:%s", fe.Tag(), fe.Param())
			} else {
				msg = fe.Tag()
			}
		}

		fieldErrors = append(fieldErrors, FieldError{
			Field: fe.Field(),
			Error: msg,
		})
	}

	return fieldErrors
}
