package tickets

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"busgo/internal/bookings"
	"busgo/internal/inventory"

	"github.com/phpdave11/gofpdf"
)

const contentTypePDF = "application/pdf"

// PDFRenderer prints bookings as single-page A4 tickets.
type PDFRenderer struct {
	location *time.Location
}

// NewPDFRenderer formats journey times in loc.
func NewPDFRenderer(loc *time.Location) *PDFRenderer {
	if loc == nil {
		loc = time.UTC
	}
	return &PDFRenderer{location: loc}
}

func (r *PDFRenderer) ContentType() string {
	return contentTypePDF
}

func (r *PDFRenderer) Render(b *bookings.Booking) ([]byte, error) {
	journey := b.JourneyTimestamp.In(r.location)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("BusGo Ticket "+b.BookingID, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, "BusGo Ticket", "B", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, "Booking ID: "+b.BookingID)
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		"Bus Operator: " + b.Bus.Name,
		fmt.Sprintf("Route: %s to %s", b.Bus.From, b.Bus.To),
		"Bus Type: " + b.Bus.BusType,
		"Date of Journey: " + journey.Format("02 Jan 2006"),
		"Departure: " + journey.Format("02 Jan 2006 15:04 MST"),
	}
	if b.Bus.ArrivalTime != "" {
		arrival := "Arrival: " + b.Bus.ArrivalTime
		if b.Bus.ArrivalDayOffset > 0 {
			arrival += fmt.Sprintf(" (+%d day)", b.Bus.ArrivalDayOffset)
		}
		lines = append(lines, arrival)
	}
	for _, s := range lines {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Passenger Details")
	pdf.Ln(9)

	widths := []float64{80, 25, 40, 35}
	pdf.SetFont("Helvetica", "B", 11)
	for i, h := range []string{"Name", "Age", "Gender", "Seat"} {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 11)
	for _, p := range b.Passengers {
		row := []string{p.Name, strconv.Itoa(p.Age), p.Gender, p.SeatNumber}
		for i, v := range row {
			pdf.CellFormat(widths[i], 8, v, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Primary contact: %s (%s)", b.PrimaryContact.Name, b.PrimaryContact.Mobile))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, "Total Fare: Rs. "+inventory.FormatFare(b.TotalPrice), "", 1, "R", false, 0, "")

	pdf.Ln(12)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.CellFormat(0, 6, "Thank you for choosing BusGo. Have a safe journey!", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render ticket: %w", err)
	}
	return buf.Bytes(), nil
}
