package config

import (
	stderrors "errors"
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/kbukum/beankit/errors"
)

var (
	validate *validator.Validate
	once     sync.Once
)

// FieldError is one failed validation rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func getValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Report fields by their config key, not the Go field name.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			tag := fld.Tag.Get("mapstructure")
			if strings.Contains(tag, "squash") {
				return ""
			}
			if name := strings.SplitN(tag, ",", 2)[0]; name != "" && name != "-" {
				return name
			}
			return strings.ToLower(fld.Name)
		})
	})
	return validate
}

// ValidateStruct checks s against its `validate` struct tags and returns an
// INVALID_CONFIG AppError listing every failed field.
func ValidateStruct(s any) error {
	err := getValidator().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !stderrors.As(err, &validationErrors) {
		return apperrors.InvalidConfig(err.Error()).WithCause(err)
	}

	fields := make([]FieldError, 0, len(validationErrors))
	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		name := fieldKey(e.Namespace())
		msg := formatValidationError(e)
		fields = append(fields, FieldError{Field: name, Message: msg})
		messages = append(messages, name+" "+msg)
	}

	return apperrors.InvalidConfig(strings.Join(messages, "; ")).
		WithDetail("fields", fields)
}

// fieldKey turns "Config.ServiceConfig.name" into "name". Type names and
// squashed embedded structs keep their Go names, config keys are lowercase.
func fieldKey(namespace string) string {
	parts := strings.Split(namespace, ".")
	keep := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" || unicode.IsUpper(rune(p[0])) {
			continue
		}
		keep = append(keep, p)
	}
	return strings.Join(keep, ".")
}

func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required", "required_if":
		return "is required"
	case "oneof":
		return "must be one of [" + strings.ReplaceAll(e.Param(), " ", ", ") + "]"
	case "gte":
		return "must be at least " + e.Param()
	case "lte":
		return "must be at most " + e.Param()
	case "min":
		return "must be at least " + e.Param()
	case "max":
		return "must be at most " + e.Param()
	case "bcp47_language_tag":
		return "must be a BCP 47 language tag"
	case "hostname|ip", "hostname", "ip":
		return "must be a host name or IP address"
	default:
		return "is invalid (" + e.Tag() + ")"
	}
}
