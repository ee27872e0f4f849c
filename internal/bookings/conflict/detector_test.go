package conflict

import (
	"net/http"
	"testing"
	"time"

	"homestay/pkg/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// A fixed clock well before the June 2024 fixture range, so only the
// explicit past-date cases trip the past-date rule.
var clock = date(2024, time.January, 1)

var existing = []*model.Booking{
	{
		ID:        "b-1",
		ListingID: "l-1",
		GuestID:   "u-1",
		StartDate: date(2024, time.June, 10),
		EndDate:   date(2024, time.June, 15),
	},
}

func TestEvaluate_IntervalOverlap(t *testing.T) {
	tests := []struct {
		name        string
		start       time.Time
		end         time.Time
		rejected    bool
		wantReasons []Reason
	}{
		{
			name:        "candidate sandwiches existing",
			start:       date(2024, time.June, 8),
			end:         date(2024, time.June, 20),
			rejected:    true,
			wantReasons: []Reason{ReasonStartConflict, ReasonEndConflict},
		},
		{
			name:        "existing sandwiches candidate",
			start:       date(2024, time.June, 11),
			end:         date(2024, time.June, 12),
			rejected:    true,
			wantReasons: []Reason{ReasonStartConflict, ReasonEndConflict},
		},
		{
			name:        "only start falls inside",
			start:       date(2024, time.June, 12),
			end:         date(2024, time.June, 20),
			rejected:    true,
			wantReasons: []Reason{ReasonStartConflict},
		},
		{
			name:        "only end falls inside",
			start:       date(2024, time.June, 1),
			end:         date(2024, time.June, 12),
			rejected:    true,
			wantReasons: []Reason{ReasonEndConflict},
		},
		{
			name:     "day after existing end is free",
			start:    date(2024, time.June, 16),
			end:      date(2024, time.June, 20),
			rejected: false,
		},
		{
			name:        "start equal to existing end is inclusive",
			start:       date(2024, time.June, 15),
			end:         date(2024, time.June, 20),
			rejected:    true,
			wantReasons: []Reason{ReasonStartConflict},
		},
		{
			name:        "end equal to existing start is inclusive",
			start:       date(2024, time.June, 5),
			end:         date(2024, time.June, 10),
			rejected:    true,
			wantReasons: []Reason{ReasonEndConflict},
		},
		{
			name:        "identical range rejects both boundaries",
			start:       date(2024, time.June, 10),
			end:         date(2024, time.June, 15),
			rejected:    true,
			wantReasons: []Reason{ReasonStartConflict, ReasonEndConflict},
		},
		{
			name:     "well before existing is free",
			start:    date(2024, time.June, 1),
			end:      date(2024, time.June, 5),
			rejected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict := Evaluate(tt.start, tt.end, existing, clock)

			if verdict.Rejected != tt.rejected {
				t.Fatalf("expected rejected=%v, got %v", tt.rejected, verdict.Rejected)
			}
			if !tt.rejected {
				if verdict.Conflicting != nil {
					t.Error("passing verdict must not carry a conflicting interval")
				}
				return
			}

			if len(verdict.Reasons) != len(tt.wantReasons) {
				t.Fatalf("expected reasons %v, got %v", tt.wantReasons, verdict.Reasons)
			}
			for _, reason := range tt.wantReasons {
				if !verdict.Has(reason) {
					t.Errorf("expected reason %s in %v", reason, verdict.Reasons)
				}
			}
			if verdict.Conflicting == nil || verdict.Conflicting.ID != "b-1" {
				t.Errorf("expected conflicting interval b-1, got %+v", verdict.Conflicting)
			}
		})
	}
}

func TestEvaluate_PastDateRule(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
	}{
		{"start before today", date(2023, time.December, 20)},
		{"start equal to today", clock},
		{"start equal to today with a time-of-day component", clock.Add(9 * time.Hour)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict := Evaluate(tt.start, tt.start.AddDate(0, 0, 5), existing, clock)

			if !verdict.Rejected {
				t.Fatal("expected rejection for a past start date")
			}
			if !verdict.Has(ReasonPastDate) {
				t.Errorf("expected pastDate reason, got %v", verdict.Reasons)
			}
		})
	}
}

func TestEvaluate_PastDateWinsOverOverlap(t *testing.T) {
	// Snapshot contains a reservation the candidate overlaps, but the
	// past-date rule fires first.
	now := date(2024, time.June, 11)
	verdict := Evaluate(date(2024, time.June, 11), date(2024, time.June, 14), existing, now)

	if !verdict.Rejected {
		t.Fatal("expected rejection")
	}
	if !verdict.Has(ReasonPastDate) || verdict.Has(ReasonStartConflict) {
		t.Errorf("expected pastDate only, got %v", verdict.Reasons)
	}
	if verdict.Conflicting != nil {
		t.Error("past-date rejection must not name a conflicting interval")
	}
}

func TestEvaluate_FirstMatchWins(t *testing.T) {
	snapshot := []*model.Booking{
		{ID: "b-first", StartDate: date(2024, time.June, 10), EndDate: date(2024, time.June, 15)},
		{ID: "b-second", StartDate: date(2024, time.June, 18), EndDate: date(2024, time.June, 25)},
	}

	// Candidate overlaps both; the scan stops at the first.
	verdict := Evaluate(date(2024, time.June, 12), date(2024, time.June, 20), snapshot, clock)
	if !verdict.Rejected {
		t.Fatal("expected rejection")
	}
	if verdict.Conflicting.ID != "b-first" {
		t.Errorf("expected first snapshot entry to win, got %s", verdict.Conflicting.ID)
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	first := Evaluate(date(2024, time.June, 12), date(2024, time.June, 20), existing, clock)
	second := Evaluate(date(2024, time.June, 12), date(2024, time.June, 20), existing, clock)

	if first.Rejected != second.Rejected || len(first.Reasons) != len(second.Reasons) {
		t.Errorf("repeated evaluation diverged: %+v vs %+v", first, second)
	}
	for i := range first.Reasons {
		if first.Reasons[i] != second.Reasons[i] {
			t.Errorf("reason %d diverged: %s vs %s", i, first.Reasons[i], second.Reasons[i])
		}
	}
}

func TestVerdict_AppError(t *testing.T) {
	t.Run("no conflict yields nil", func(t *testing.T) {
		if err := (Verdict{}).AppError(); err != nil {
			t.Errorf("expected nil, got %v", err)
		}
	})

	t.Run("past date has message only", func(t *testing.T) {
		verdict := Evaluate(date(2023, time.June, 1), date(2023, time.June, 5), nil, clock)
		appErr := verdict.AppError()

		if appErr.StatusCode() != http.StatusForbidden {
			t.Errorf("expected 403, got %d", appErr.StatusCode())
		}
		if appErr.Message != "Bookings may not be made for a past date" {
			t.Errorf("unexpected message: %q", appErr.Message)
		}
		if len(appErr.Fields) != 0 {
			t.Errorf("past-date error must not carry a field map, got %v", appErr.Fields)
		}
	})

	t.Run("interval conflict names both fields", func(t *testing.T) {
		verdict := Evaluate(date(2024, time.June, 8), date(2024, time.June, 20), existing, clock)
		appErr := verdict.AppError()

		if appErr.StatusCode() != http.StatusForbidden {
			t.Errorf("expected 403, got %d", appErr.StatusCode())
		}
		if appErr.Fields["startDate"] == "" || appErr.Fields["endDate"] == "" {
			t.Errorf("expected startDate and endDate errors, got %v", appErr.Fields)
		}
	})

	t.Run("start-only conflict names one field", func(t *testing.T) {
		verdict := Evaluate(date(2024, time.June, 12), date(2024, time.June, 20), existing, clock)
		appErr := verdict.AppError()

		if appErr.Fields["startDate"] == "" || appErr.Fields["endDate"] != "" {
			t.Errorf("expected startDate error only, got %v", appErr.Fields)
		}
	})
}
