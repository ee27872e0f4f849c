package validator

import (
	"errors"
	"testing"
	"time"

	"homestay/pkg/logger"
	"homestay/pkg/model"
)

func newValidator() *BookingValidator {
	return NewBookingValidator(logger.New(logger.Config{Level: "error", Format: logger.JSON, Service: "test"}))
}

func TestParse_ValidRequest(t *testing.T) {
	v := newValidator()

	start, end, err := v.Parse(&model.BookingRequest{
		StartDate: "2024-06-10",
		EndDate:   "2024-06-15",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantStart := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)
	if !start.Equal(wantStart) || !end.Equal(wantEnd) {
		t.Errorf("expected [%s, %s], got [%s, %s]", wantStart, wantEnd, start, end)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		req       model.BookingRequest
		wantField string
	}{
		{
			name:      "missing start date",
			req:       model.BookingRequest{EndDate: "2024-06-15"},
			wantField: "startDate",
		},
		{
			name:      "missing end date",
			req:       model.BookingRequest{StartDate: "2024-06-10"},
			wantField: "endDate",
		},
		{
			name:      "malformed start date",
			req:       model.BookingRequest{StartDate: "June 10th", EndDate: "2024-06-15"},
			wantField: "startDate",
		},
		{
			name:      "end before start",
			req:       model.BookingRequest{StartDate: "2024-06-15", EndDate: "2024-06-10"},
			wantField: "endDate",
		},
		{
			name:      "end equal to start",
			req:       model.BookingRequest{StartDate: "2024-06-10", EndDate: "2024-06-10"},
			wantField: "endDate",
		},
	}

	v := newValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := v.Parse(&tt.req)
			if err == nil {
				t.Fatal("expected validation error")
			}

			var validationErrs ValidationErrors
			if !errors.As(err, &validationErrs) {
				t.Fatalf("expected ValidationErrors, got %T", err)
			}
			if _, ok := validationErrs.FieldMap()[tt.wantField]; !ok {
				t.Errorf("expected error on field %s, got %v", tt.wantField, validationErrs)
			}
		})
	}
}
