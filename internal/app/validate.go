package app

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/alexanderramin/studygo/internal/domain"
)

var validate = newValidator()

// newValidator adds maxbytes, a length limit counted in bytes rather than
// characters. Passwords use it since bcrypt rejects input over 72 bytes.
func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("maxbytes", func(fl validator.FieldLevel) bool {
		n, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return len(fl.Field().String()) <= n
	})
	return v
}

// Credentials is the signup/login input.
type Credentials struct {
	Username string `validate:"required,max=64"`
	Password string `validate:"required,maxbytes=72"`
}

// ValidateStruct validates a struct based on its validation tags.
func ValidateStruct(s any) error {
	if err := validate.Struct(s); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// ValidateTopicRequest checks planning input before anything is generated.
func ValidateTopicRequest(req domain.TopicRequest) error {
	if err := ValidateStruct(req.Normalized()); err != nil {
		return &PlanError{
			Code:    PlanErrInvalidRequest,
			Message: err.Error(),
			Err:     err,
		}
	}
	return nil
}

func ValidateCredentials(c Credentials) error {
	c.Username = strings.TrimSpace(c.Username)
	return ValidateStruct(c)
}

func formatValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		msgs := make([]string, 0, len(validationErrors))
		for _, e := range validationErrors {
			msgs = append(msgs, formatFieldError(e))
		}
		return errors.New(strings.Join(msgs, "; "))
	}
	return err
}

func formatFieldError(e validator.FieldError) string {
	field := fieldLabel(e.Field())

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at most %s characters", field, e.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, e.Param())
	case "maxbytes":
		return fmt.Sprintf("%s must be at most %s bytes", field, e.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func fieldLabel(name string) string {
	switch name {
	case "TotalDays":
		return "total days"
	case "DailyHours":
		return "daily hours"
	default:
		return strings.ToLower(name)
	}
}
