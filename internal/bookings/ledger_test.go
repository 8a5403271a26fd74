package bookings

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

var ledgerNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func newBooking(total float64, departIn time.Duration) Booking {
	return Booking{
		BookingID:        "BG1741597200000",
		UserID:           uuid.New(),
		TotalPrice:       total,
		JourneyTimestamp: ledgerNow.Add(departIn),
		Status:           StatusConfirmed,
	}
}

func TestComputeRefundTiers(t *testing.T) {
	tests := []struct {
		name          string
		total         float64
		departIn      time.Duration
		wantDeduction int
		wantRefund    float64
	}{
		{"departed", 1000, -time.Hour, 100, 0},
		{"under an hour", 1000, 59 * time.Minute, 100, 0},
		{"exactly one hour", 1000, time.Hour, 25, 750},
		{"two hours", 999, 2 * time.Hour, 25, 749},
		{"just under a day", 1000, 24*time.Hour - time.Second, 25, 750},
		{"exactly a day", 1000, 24 * time.Hour, 20, 800},
		{"thirty hours", 1000, 30 * time.Hour, 20, 800},
		{"exactly two days", 1000, 48 * time.Hour, 10, 900},
		{"a week", 450, 7 * 24 * time.Hour, 10, 405},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBooking(tt.total, tt.departIn)
			got := ComputeRefund(&b, ledgerNow)
			if got.DeductionPercentage != tt.wantDeduction {
				t.Fatalf("deduction = %d, want %d", got.DeductionPercentage, tt.wantDeduction)
			}
			if got.RefundAmount != tt.wantRefund {
				t.Fatalf("refund = %v, want %v", got.RefundAmount, tt.wantRefund)
			}
		})
	}
}

func TestComputeRefundMonotonic(t *testing.T) {
	b := newBooking(1000, 0)
	prev := 101
	for minutes := -60; minutes <= 72*60; minutes += 15 {
		b.JourneyTimestamp = ledgerNow.Add(time.Duration(minutes) * time.Minute)
		got := ComputeRefund(&b, ledgerNow)
		if got.DeductionPercentage > prev {
			t.Fatalf("deduction rose from %d to %d at %d minutes", prev, got.DeductionPercentage, minutes)
		}
		if (got.RefundAmount == 0) != (minutes < 60) {
			t.Fatalf("refund %v at %d minutes", got.RefundAmount, minutes)
		}
		prev = got.DeductionPercentage
	}
}

func TestComputeRefundIgnoresStatus(t *testing.T) {
	b := newBooking(1000, 30*time.Hour)
	b.Status = StatusCancelled
	if got := ComputeRefund(&b, ledgerNow); got.RefundAmount != 800 {
		t.Fatalf("refund = %v, want 800", got.RefundAmount)
	}
}

func TestDeriveDisplayStateBoundary(t *testing.T) {
	b := newBooking(500, 0)

	if got := DeriveDisplayState(&b, ledgerNow.Add(-time.Nanosecond)); got != DisplayConfirmed {
		t.Fatalf("before departure = %s, want Confirmed", got)
	}
	if got := DeriveDisplayState(&b, ledgerNow); got != DisplayConfirmed {
		t.Fatalf("at departure = %s, want Confirmed", got)
	}
	if got := DeriveDisplayState(&b, ledgerNow.Add(time.Nanosecond)); got != DisplayExpired {
		t.Fatalf("after departure = %s, want Expired", got)
	}
}

func TestAvailableActions(t *testing.T) {
	tests := []struct {
		name     string
		departIn time.Duration
		status   Status
		rated    bool
		want     Actions
	}{
		{"confirmed and refundable", 30 * time.Hour, StatusConfirmed, false, Actions{Print: true, Cancel: true}},
		{"confirmed in final hour", 30 * time.Minute, StatusConfirmed, false, Actions{Print: true}},
		{"expired unrated", -time.Hour, StatusConfirmed, false, Actions{Print: true, Rate: true}},
		{"expired rated", -time.Hour, StatusConfirmed, true, Actions{Print: true}},
		{"cancelled", 30 * time.Hour, StatusCancelled, false, Actions{}},
		{"cancelled in the past", -time.Hour, StatusCancelled, false, Actions{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBooking(1000, tt.departIn)
			b.Status = tt.status
			b.IsRated = tt.rated
			if got := AvailableActions(&b, ledgerNow); got != tt.want {
				t.Fatalf("actions = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCancelIsTerminal(t *testing.T) {
	b := newBooking(1000, 30*time.Hour)

	refund, err := Cancel(&b, ledgerNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if refund.RefundAmount != 800 || refund.DeductionPercentage != 20 {
		t.Fatalf("unexpected refund %+v", refund)
	}
	if b.Status != StatusCancelled || b.RefundAmount == nil || *b.RefundAmount != 800 {
		t.Fatalf("booking not updated: %+v", b)
	}

	_, err = Cancel(&b, ledgerNow)
	var rejected *RejectedError
	if !errors.As(err, &rejected) || !errors.Is(err, ErrNotCancellable) {
		t.Fatalf("expected rejection on second cancel, got %v", err)
	}

	for _, at := range []time.Time{ledgerNow.Add(-48 * time.Hour), ledgerNow, ledgerNow.Add(48 * time.Hour)} {
		if got := DeriveDisplayState(&b, at); got != DisplayCancelled {
			t.Fatalf("display state at %v = %s, want Cancelled", at, got)
		}
	}
}

func TestCancelTooLateLeavesBookingUntouched(t *testing.T) {
	b := newBooking(1000, 30*time.Minute)
	before := b

	_, err := Cancel(&b, ledgerNow)
	var rejected *RejectedError
	if !errors.As(err, &rejected) {
		t.Fatalf("expected RejectedError, got %v", err)
	}
	if rejected.Reason != ReasonTooLate {
		t.Fatalf("reason = %q", rejected.Reason)
	}
	if b.Status != before.Status || b.RefundAmount != nil || b.CancelledAt != nil {
		t.Fatalf("booking mutated: %+v", b)
	}
}

func TestCheckCancellableAgreesWithCancel(t *testing.T) {
	departures := []time.Duration{72 * time.Hour, 24 * time.Hour, 2 * time.Hour, time.Hour, 59 * time.Minute, 0, -time.Hour}
	for _, status := range []Status{StatusConfirmed, StatusCancelled} {
		for _, departIn := range departures {
			b := newBooking(1000, departIn)
			b.Status = status

			quoted, checkErr := CheckCancellable(&b, ledgerNow)
			if b.Status != status {
				t.Fatalf("check mutated the booking")
			}
			if got := AvailableActions(&b, ledgerNow).Cancel; got != (checkErr == nil) {
				t.Fatalf("%s in %v: actions.Cancel=%v but check err=%v", status, departIn, got, checkErr)
			}

			refund, cancelErr := Cancel(&b, ledgerNow)
			if (checkErr == nil) != (cancelErr == nil) {
				t.Fatalf("%s in %v: check err=%v, cancel err=%v", status, departIn, checkErr, cancelErr)
			}
			if cancelErr == nil && refund != quoted {
				t.Fatalf("%s in %v: refund %+v differs from check %+v", status, departIn, refund, quoted)
			}
		}
	}
}

func TestRate(t *testing.T) {
	upcoming := newBooking(500, time.Hour)
	if err := Rate(&upcoming, ledgerNow); !errors.Is(err, ErrNotRateable) {
		t.Fatalf("expected ErrNotRateable, got %v", err)
	}
	if upcoming.IsRated {
		t.Fatalf("upcoming booking marked rated")
	}

	cancelled := newBooking(500, -time.Hour)
	cancelled.Status = StatusCancelled
	if err := Rate(&cancelled, ledgerNow); !errors.Is(err, ErrNotRateable) {
		t.Fatalf("expected ErrNotRateable for cancelled, got %v", err)
	}

	done := newBooking(500, -time.Hour)
	if err := Rate(&done, ledgerNow); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !done.IsRated {
		t.Fatalf("expected IsRated")
	}
	if err := Rate(&done, ledgerNow); !errors.Is(err, ErrAlreadyRated) {
		t.Fatalf("expected ErrAlreadyRated, got %v", err)
	}
	if !done.IsRated {
		t.Fatalf("second rate changed the flag")
	}
}
