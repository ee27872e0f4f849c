package validator

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"homestay/pkg/logger"
	"homestay/pkg/model"
)

const dateLayout = "2006-01-02"

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

// FieldMap flattens the errors into the field→message form the error
// boundary serializes.
func (v ValidationErrors) FieldMap() map[string]string {
	fields := make(map[string]string, len(v))
	for _, err := range v {
		fields[err.Field] = err.Message
	}
	return fields
}

type BookingValidator struct {
	validate *validator.Validate
	log      *logger.Logger
}

func NewBookingValidator(log *logger.Logger) *BookingValidator {
	return &BookingValidator{
		validate: validator.New(),
		log:      log,
	}
}

// Parse validates the request payload and returns the candidate interval.
func (v *BookingValidator) Parse(req *model.BookingRequest) (time.Time, time.Time, error) {
	if err := v.validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return time.Time{}, time.Time{}, v.translate(validationErrs)
		}
		return time.Time{}, time.Time{}, err
	}

	start, err := time.ParseInLocation(dateLayout, req.StartDate, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, ValidationErrors{{Field: "startDate", Message: "startDate must be a valid date"}}
	}
	end, err := time.ParseInLocation(dateLayout, req.EndDate, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, ValidationErrors{{Field: "endDate", Message: "endDate must be a valid date"}}
	}

	if !end.After(start) {
		return time.Time{}, time.Time{}, ValidationErrors{
			{Field: "endDate", Message: "endDate must be after startDate"},
		}
	}

	return start, end, nil
}

func (v *BookingValidator) translate(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		field := fieldName(err.Field())
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", field)
		case "datetime":
			message = fmt.Sprintf("%s must be a date in YYYY-MM-DD form", field)
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   field,
			Message: message,
		})
	}

	return validationErrors
}

func fieldName(structField string) string {
	switch structField {
	case "StartDate":
		return "startDate"
	case "EndDate":
		return "endDate"
	default:
		return structField
	}
}
