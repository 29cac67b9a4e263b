package schema

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/feral-file/ff-catalog/internal/domain"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validate checks the `validate` tags of a record. Failures wrap domain.ErrValidation.
func Validate(record any) error {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})

	err := validate.Struct(record)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
	}
	return domain.Validationf("%s", strings.Join(msgs, ", "))
}
