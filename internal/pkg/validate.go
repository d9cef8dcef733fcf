package pkg

import (
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/simp-lee/svcadmin/internal/domain"
)

var (
	validateOnce    sync.Once
	structValidator *validator.Validate
)

// ValidateStruct checks obj against its `binding` tags outside of a request,
// using the same rules gin applies in BindAndValidate. Failures are returned as
// a CodeValidation AppError keyed like FieldErrors.
func ValidateStruct(obj any) error {
	validateOnce.Do(func() {
		structValidator = validator.New(validator.WithRequiredStructEnabled())
		structValidator.SetTagName("binding")
	})

	err := structValidator.Struct(obj)
	if err == nil {
		return nil
	}
	fields, ok := FieldErrors(err, obj)
	if !ok {
		return domain.NewAppError(domain.CodeValidation, "validation error", err)
	}
	return domain.NewValidationError("validation error", fields)
}
