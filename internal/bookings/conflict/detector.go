package conflict

import (
	"time"

	apperrors "homestay/pkg/errors"
	"homestay/pkg/model"
)

// Reason names why a candidate date range was rejected.
type Reason string

const (
	ReasonStartConflict Reason = "startConflict"
	ReasonEndConflict   Reason = "endConflict"
	ReasonPastDate      Reason = "pastDate"
)

const (
	startConflictMessage = "Start date conflicts with an existing booking"
	endConflictMessage   = "End date conflicts with an existing booking"
)

// Verdict is the outcome of comparing a candidate interval against a
// listing's reservation snapshot. For a fixed snapshot and clock the
// verdict is deterministic.
type Verdict struct {
	Rejected    bool
	Reasons     []Reason
	Conflicting *model.Booking
}

func (v Verdict) Has(reason Reason) bool {
	for _, r := range v.Reasons {
		if r == reason {
			return true
		}
	}
	return false
}

// AppError maps a rejection to its transport error. The past-date rule has
// its own shape without a field map; interval conflicts name the offending
// boundary field(s).
func (v Verdict) AppError() *apperrors.AppError {
	if !v.Rejected {
		return nil
	}
	if v.Has(ReasonPastDate) {
		return apperrors.PastDate()
	}

	fields := make(map[string]string, 2)
	if v.Has(ReasonStartConflict) {
		fields["startDate"] = startConflictMessage
	}
	if v.Has(ReasonEndConflict) {
		fields["endDate"] = endConflictMessage
	}
	return apperrors.BookingConflict(fields)
}

// Evaluate applies the booking conflict policy:
//
//  1. A candidate starting today or earlier is rejected outright.
//  2. Otherwise the candidate is compared against every existing
//     reservation in snapshot order; the first overlap wins and stops the
//     scan. All boundary comparisons are inclusive, so a candidate touching
//     an existing boundary date is a conflict, not an adjacent booking.
func Evaluate(startDate, endDate time.Time, existing []*model.Booking, now time.Time) Verdict {
	candidateStart := toDate(startDate)
	candidateEnd := toDate(endDate)

	if !candidateStart.After(toDate(now)) {
		return Verdict{Rejected: true, Reasons: []Reason{ReasonPastDate}}
	}

	for _, booked := range existing {
		bookedStart := toDate(booked.StartDate)
		bookedEnd := toDate(booked.EndDate)

		startInside := within(candidateStart, bookedStart, bookedEnd)
		endInside := within(candidateEnd, bookedStart, bookedEnd)

		switch {
		case !candidateStart.After(bookedStart) && !candidateEnd.Before(bookedEnd):
			// Candidate swallows the existing reservation.
			return Verdict{
				Rejected:    true,
				Reasons:     []Reason{ReasonStartConflict, ReasonEndConflict},
				Conflicting: booked,
			}
		case startInside && endInside:
			return Verdict{
				Rejected:    true,
				Reasons:     []Reason{ReasonStartConflict, ReasonEndConflict},
				Conflicting: booked,
			}
		case startInside:
			return Verdict{
				Rejected:    true,
				Reasons:     []Reason{ReasonStartConflict},
				Conflicting: booked,
			}
		case endInside:
			return Verdict{
				Rejected:    true,
				Reasons:     []Reason{ReasonEndConflict},
				Conflicting: booked,
			}
		}
	}

	return Verdict{}
}

func within(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

func toDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
