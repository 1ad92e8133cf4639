package validate

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// rejects strings like "aaaaaaaaaa" that pass min-length checks but
	// carry no information.
	if err := v.RegisterValidation("noAllRepeatingChars", noAllRepeatingChars); err != nil {
		panic(fmt.Sprintf("failed to register validation: %v", err))
	}

	return v
}

// FieldErrors maps a field name to the rule it failed. It is returned as the
// Errors payload of a 422 response.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for field := range fe {
		fields = append(fields, field)
	}

	return fmt.Sprintf("validation failed on: %s", strings.Join(fields, ", "))
}

// StructFields validates payload against its `validate` struct tags and
// returns a [FieldErrors] describing every failed field, or nil.
func StructFields(payload any) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	fieldErrs := make(FieldErrors, len(validationErrs))
	for _, fieldErr := range validationErrs {
		fieldErrs[fieldErr.Field()] = fmt.Sprintf(
			"failed on the '%s' rule",
			fieldErr.Tag(),
		)
	}

	return fieldErrs
}

func noAllRepeatingChars(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if len(value) < 2 {
		return true
	}

	first := rune(value[0])
	for _, r := range value {
		if r != first {
			return true
		}
	}

	return false
}
