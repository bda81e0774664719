package services

import (
	"bytes"
	"testing"

	"busbooking/internal/domain"
	"busbooking/internal/domain/models"
)

func TestGenerateETicket(t *testing.T) {
	svc := TicketService{
		Loader: func(id int64) (ticketData, error) {
			return ticketData{
				Reference:     "BK-20260826-TESTRF",
				RouteName:     "Dhaka-Rajshahi",
				BusName:       "Green Line 1",
				DepartureTime: "2026-08-30 08:00:00",
				BoardingPoint: "Gabtoli",
				DroppingPoint: "Rajshahi",
				Status:        "confirmed",
				PaymentStatus: "pending",
				TotalAmount:   600,
				Seats: []models.SeatAssignment{
					{SeatNumber: 4, PassengerName: "Rahim", PassengerAge: 30, PassengerGender: "male", PassengerPhone: "01712345678"},
				},
			}, nil
		},
	}

	pdf, filename, err := svc.GenerateETicket(domain.Principal{UserID: 9, Role: domain.RoleCustomer}, 42)
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}
	if filename != "eticket-BK-20260826-TESTRF.pdf" {
		t.Errorf("filename = %s", filename)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Errorf("output does not look like a PDF (first bytes %q)", pdf[:min(8, len(pdf))])
	}
}

func TestGenerateETicketCancelled(t *testing.T) {
	svc := TicketService{
		Loader: func(id int64) (ticketData, error) {
			return ticketData{}, domain.StateError{Resource: "booking", Msg: "cancelled bookings have no ticket"}
		},
	}
	_, _, err := svc.GenerateETicket(domain.Principal{UserID: 9, Role: domain.RoleCustomer}, 42)
	if !domain.IsState(err) {
		t.Fatalf("want state error, got %v", err)
	}
}
