package tickets

import (
	"bytes"
	"testing"
	"time"

	"busgo/internal/bookings"
	"busgo/internal/inventory"
)

func TestRenderProducesPDF(t *testing.T) {
	r := NewPDFRenderer(time.UTC)
	b := &bookings.Booking{
		BookingID: "BG1741597200000",
		Bus: bookings.BusSnapshot{TripInstance: inventory.TripInstance{
			Name: "SETC Route 101", From: "Chennai", To: "Madurai", BusType: inventory.BusTypeAC,
			ArrivalTime: "07:15", ArrivalDayOffset: 1,
		}},
		Passengers: bookings.PassengerList{
			{Name: "Asha", Age: 30, Gender: "Female", SeatNumber: "S1"},
			{Name: "Ravi", Age: 8, Gender: "Male", SeatNumber: "S2"},
		},
		PrimaryContact:   bookings.Contact{Name: "Asha", Mobile: "9876543210"},
		TotalPrice:       975,
		JourneyTimestamp: time.Date(2025, 3, 12, 22, 30, 0, 0, time.UTC),
	}

	doc, err := r.Render(b)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(doc, []byte("%PDF")) {
		t.Fatalf("output is not a PDF")
	}
	if r.ContentType() != "application/pdf" {
		t.Fatalf("unexpected content type %q", r.ContentType())
	}
}

func TestNewPDFRendererDefaultsToUTC(t *testing.T) {
	if NewPDFRenderer(nil).location != time.UTC {
		t.Fatalf("expected UTC fallback")
	}
}
