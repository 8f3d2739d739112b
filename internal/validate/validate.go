package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// rejects strings made up of one repeating character, e.g. "aaaaaaaaaa",
	// which pass min length checks but are junk input.
	err := v.RegisterValidation(
		"noAllRepeatingChars",
		func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			if len(s) < 2 {
				return true
			}

			return strings.Count(s, string(s[0])) != len(s)
		},
	)
	if err != nil {
		panic(err)
	}

	return v
}

// StructFields validates v against its struct tags and returns one error per
// failed field so the handler can include them in the response body.
func StructFields(v any) []string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{err.Error()}
	}

	fieldErrors := make([]string, 0, len(validationErrors))
	for _, fieldError := range validationErrors {
		fieldErrors = append(
			fieldErrors,
			fmt.Sprintf(
				"field '%s' failed on the '%s' rule",
				fieldError.Field(),
				fieldError.Tag(),
			),
		)
	}

	return fieldErrors
}
