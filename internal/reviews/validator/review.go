package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"homestay/pkg/logger"
	"homestay/pkg/model"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

func (v ValidationErrors) FieldMap() map[string]string {
	fields := make(map[string]string, len(v))
	for _, err := range v {
		fields[err.Field] = err.Message
	}
	return fields
}

type ReviewValidator struct {
	validate *validator.Validate
	log      *logger.Logger
}

func NewReviewValidator(log *logger.Logger) *ReviewValidator {
	return &ReviewValidator{
		validate: validator.New(),
		log:      log,
	}
}

// Validate checks a review creation payload.
func (v *ReviewValidator) Validate(req *model.ReviewRequest) error {
	return v.translate(v.validate.Struct(req))
}

// ValidateUpdate checks a partial review update. At least one field must be
// present.
func (v *ReviewValidator) ValidateUpdate(update *model.ReviewUpdate) error {
	if update.Rating == nil && update.Comment == nil {
		return ValidationErrors{
			{Field: "rating", Message: "at least one of rating or comment is required"},
		}
	}
	// omitempty skips a dereferenced zero, so the range check on a present
	// rating has to be explicit.
	if update.Rating != nil && (*update.Rating < 1 || *update.Rating > 5) {
		return ValidationErrors{
			{Field: "rating", Message: "rating must be between 1 and 5"},
		}
	}
	return v.translate(v.validate.Struct(update))
}

func (v *ReviewValidator) translate(err error) error {
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	var out ValidationErrors
	for _, fieldErr := range validationErrs {
		field := fieldName(fieldErr.Field())
		message := fieldErr.Error()

		switch {
		case fieldErr.Tag() == "required":
			message = fmt.Sprintf("%s is required", field)
		case field == "rating":
			message = "rating must be between 1 and 5"
		case field == "comment" && fieldErr.Tag() == "max":
			message = "comment must be at most 1000 characters"
		}

		out = append(out, ValidationError{
			Field:   field,
			Message: message,
		})
	}
	return out
}

func fieldName(structField string) string {
	switch structField {
	case "Rating":
		return "rating"
	case "Comment":
		return "comment"
	default:
		return structField
	}
}
