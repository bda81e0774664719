package services

import (
	"bytes"
	"database/sql"
	"fmt"

	intconfig "busbooking/internal/config"
	"busbooking/internal/domain"
	"busbooking/internal/domain/models"
	"busbooking/internal/repositories"
	"busbooking/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// TicketService renders the customer-facing e-ticket PDF for a booking.
type TicketService struct {
	BookingRepo repositories.BookingRepository
	TripRepo    repositories.TripRepository
	DB          *sql.DB
	RequestID   string

	// Loader overrides data loading in tests.
	Loader func(int64) (ticketData, error)
}

type ticketData struct {
	Reference     string
	RouteName     string
	BusName       string
	DepartureTime string
	BoardingPoint string
	DroppingPoint string
	Status        string
	PaymentStatus string
	TotalAmount   int64
	Seats         []models.SeatAssignment
}

func (s TicketService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s TicketService) bookings() repositories.BookingRepository {
	if s.BookingRepo.DB != nil {
		return s.BookingRepo
	}
	return repositories.BookingRepository{DB: s.db()}
}

func (s TicketService) trips() repositories.TripRepository {
	if s.TripRepo.DB != nil {
		return s.TripRepo
	}
	return repositories.TripRepository{DB: s.db()}
}

// GenerateETicket returns PDF bytes and a suggested filename. Customers may
// only print their own tickets.
func (s TicketService) GenerateETicket(principal domain.Principal, bookingID int64) ([]byte, string, error) {
	data, err := s.loadTicketData(principal, bookingID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "ticket", "generate", fmt.Sprintf("booking_id=%d", bookingID))
	return buildETicketPDF(data)
}

func (s TicketService) loadTicketData(principal domain.Principal, bookingID int64) (ticketData, error) {
	if s.Loader != nil {
		return s.Loader(bookingID)
	}

	b, err := s.bookings().GetByID(bookingID)
	if err != nil {
		return ticketData{}, err
	}
	if !domain.Elevated(principal.Role) && b.UserID != principal.UserID {
		return ticketData{}, domain.ForbiddenError{Msg: "booking belongs to another user"}
	}
	if b.Status == domain.BookingCancelled {
		return ticketData{}, domain.StateError{Resource: "booking", Msg: "cancelled bookings have no ticket"}
	}

	out := ticketData{
		Reference:     b.Reference,
		BoardingPoint: b.BoardingPoint,
		DroppingPoint: b.DroppingPoint,
		Status:        string(b.Status),
		PaymentStatus: string(b.PaymentStatus),
		TotalAmount:   b.TotalAmount,
		Seats:         b.Seats,
	}
	// Trip may have been deleted out from under the booking; the ticket
	// still renders with what the booking itself carries.
	if t, err := s.trips().GetByID(b.TripID); err == nil {
		out.RouteName = t.RouteName
		out.BusName = t.BusName
		out.DepartureTime = utils.FormatDateTime(t.DepartureTime)
	}
	return out, nil
}

func buildETicketPDF(d ticketData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "E-TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Reference : %s", safe(d.Reference, "-")),
		fmt.Sprintf("Route     : %s", safe(d.RouteName, "-")),
		fmt.Sprintf("Bus       : %s", safe(d.BusName, "-")),
		fmt.Sprintf("Departure : %s", safe(d.DepartureTime, "-")),
		fmt.Sprintf("Boarding  : %s", safe(d.BoardingPoint, "-")),
		fmt.Sprintf("Dropping  : %s", safe(d.DroppingPoint, "-")),
		fmt.Sprintf("Status    : %s / payment %s", safe(d.Status, "-"), safe(d.PaymentStatus, "-")),
	}
	for _, line := range lines {
		pdf.Cell(0, 8, line)
		pdf.Ln(8)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Passengers")
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 11)
	for _, seat := range d.Seats {
		pdf.Cell(0, 7, fmt.Sprintf("Seat %d  %s (%d, %s)  %s",
			seat.SeatNumber, seat.PassengerName, seat.PassengerAge, seat.PassengerGender, seat.PassengerPhone))
		pdf.Ln(7)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 9, fmt.Sprintf("Total: %s", utils.FormatAmount(d.TotalAmount)))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", domain.InternalError{Msg: "failed to render ticket", Err: err}
	}
	filename := fmt.Sprintf("eticket-%s.pdf", safe(d.Reference, "booking"))
	return buf.Bytes(), filename, nil
}

func safe(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
