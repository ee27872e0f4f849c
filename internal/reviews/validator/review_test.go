package validator

import (
	"errors"
	"testing"

	"homestay/pkg/logger"
	"homestay/pkg/model"
)

func fixtureValidator() *ReviewValidator {
	return NewReviewValidator(logger.New(logger.Config{Level: "error", Format: logger.JSON, Service: "test"}))
}

func TestValidate(t *testing.T) {
	v := fixtureValidator()

	tests := []struct {
		name      string
		req       model.ReviewRequest
		wantField string
	}{
		{name: "valid", req: model.ReviewRequest{Rating: 3, Comment: "ok"}},
		{name: "valid without comment", req: model.ReviewRequest{Rating: 5}},
		{name: "missing rating", req: model.ReviewRequest{Comment: "nice"}, wantField: "rating"},
		{name: "rating too high", req: model.ReviewRequest{Rating: 6}, wantField: "rating"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.req)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			var validationErrs ValidationErrors
			if !errors.As(err, &validationErrs) {
				t.Fatalf("expected ValidationErrors, got %v", err)
			}
			if validationErrs.FieldMap()[tt.wantField] == "" {
				t.Errorf("expected error on %s, got %v", tt.wantField, validationErrs)
			}
		})
	}
}

func TestValidateUpdate(t *testing.T) {
	v := fixtureValidator()

	t.Run("rejects an empty update", func(t *testing.T) {
		if err := v.ValidateUpdate(&model.ReviewUpdate{}); err == nil {
			t.Error("expected error for empty update")
		}
	})

	t.Run("accepts a rating-only update", func(t *testing.T) {
		rating := 4
		if err := v.ValidateUpdate(&model.ReviewUpdate{Rating: &rating}); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("rejects an out-of-range rating", func(t *testing.T) {
		for _, rating := range []int{0, 6} {
			rating := rating
			if err := v.ValidateUpdate(&model.ReviewUpdate{Rating: &rating}); err == nil {
				t.Errorf("expected error for rating %d", rating)
			}
		}
	})
}
