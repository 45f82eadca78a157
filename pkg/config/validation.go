package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field string
	Tag   string
	Value interface{}
}

func (e *ValidationError) Error() string {
	switch e.Tag {
	case "required":
		return fmt.Sprintf("%s is required", e.Field)
	case "min":
		return fmt.Sprintf("%s is below the allowed minimum", e.Field)
	case "ltefield":
		return fmt.Sprintf("%s must not exceed its bounding field", e.Field)
	case "oneof":
		return fmt.Sprintf("%s has an unknown value %v", e.Field, e.Value)
	default:
		return fmt.Sprintf("%s failed validation", e.Field)
	}
}

// ValidationErrors represents multiple validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var messages []string
	for i := range e {
		messages = append(messages, e[i].Error())
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(messages, "; "))
}

var validate = validator.New()

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	out := make(ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, ValidationError{
			Field: fe.Namespace(),
			Tag:   fe.Tag(),
			Value: fe.Value(),
		})
	}
	return out
}
