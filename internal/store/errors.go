package store

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError rejects caller input before any state is touched. Fully
// recoverable; the message is meant for direct display.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

// ErrFollowSelf rejects a follow where actor and target are the same user.
var ErrFollowSelf = &ValidationError{msg: "cannot follow self"}

// PersistenceError reports a failed durable write. The in-memory snapshot has
// already advanced; the persisted copy lags it until the next successful
// write.
type PersistenceError struct {
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to persist %q: %v", e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// required rejects missing ids; notblank additionally rejects
	// whitespace-only content.
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	// report fields under their wire names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// checkParams validates an operation's parameter struct and converts the
// first field failure into a displayable ValidationError.
func checkParams(params any) error {
	err := validate.Struct(params)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return &ValidationError{msg: fieldMessage(fieldErrs[0])}
	}
	return &ValidationError{msg: err.Error()}
}

func fieldMessage(fe validator.FieldError) string {
	name := fe.Field()
	switch fe.Tag() {
	case "notblank":
		return fmt.Sprintf("%s cannot be empty", name)
	default:
		return fmt.Sprintf("%s is required", name)
	}
}
