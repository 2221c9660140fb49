package middleware

import (
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/storefront/backend/internal/domain/trade"
	"github.com/storefront/backend/internal/interfaces/http/dto"
)

// SetupValidator configures gin's validator with JSON field names and the
// status tags used by request DTOs. It is safe to call more than once.
func SetupValidator() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected validator engine")
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		return name
	})

	if err := v.RegisterValidation("order_status", func(fl validator.FieldLevel) bool {
		return trade.OrderStatus(fl.Field().String()).IsValid()
	}); err != nil {
		return err
	}
	return v.RegisterValidation("return_status", func(fl validator.FieldLevel) bool {
		return trade.ReturnStatus(fl.Field().String()).IsValid()
	})
}

// ValidationFailure converts a binding error into an error code, a message
// and per-field details
func ValidationFailure(err error) (string, string, map[string]any) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return dto.ErrCodeInvalidInput, "Malformed request body", nil
	}

	code := dto.ErrCodeInvalidInput
	fields := make(map[string]any, len(validationErrors))
	for _, e := range validationErrors {
		fields[e.Field()] = validationMessage(e)
		switch {
		case e.Tag() == "order_status" || e.Tag() == "return_status":
			code = dto.ErrCodeInvalidStatus
		case e.Field() == "quantity" && code == dto.ErrCodeInvalidInput:
			code = dto.ErrCodeInvalidQuantity
		}
	}
	return code, "Request validation failed", map[string]any{"fields": fields}
}

// validationMessage returns a human-readable validation message
func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "min":
		if e.Kind() == reflect.String {
			return "Must be at least " + e.Param() + " characters"
		}
		return "Must be at least " + e.Param()
	case "max":
		if e.Kind() == reflect.String {
			return "Must be at most " + e.Param() + " characters"
		}
		return "Must be at most " + e.Param()
	case "gte":
		return "Must be greater than or equal to " + e.Param()
	case "uuid":
		return "Invalid UUID format"
	case "order_status":
		return "Must be one of PENDING, ACCEPTED, SHIPPED, COMPLETED, CANCELLED, REFUNDED"
	case "return_status":
		return "Must be one of SUBMITTED, APPROVED, REJECTED, REFUNDED"
	default:
		return "Invalid value"
	}
}
