// Package docs renders e-ticket PDFs for issued tickets.
package docs

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/phpdave11/gofpdf"
	qrcode "github.com/skip2/go-qrcode"

	"railbook/internal/domain"
	"railbook/internal/domain/models"
	"railbook/internal/store"
	"railbook/internal/utils"
)

// Service generates the e-ticket payload for one PNR. Loader is an
// injection point for tests; when nil the ticket store is consulted.
type Service struct {
	Tickets   *store.TicketStore
	RequestID string
	Loader    func(string) (models.TicketRecord, error)
}

func (s Service) load(ctx context.Context, code string) (models.TicketRecord, error) {
	if s.Loader != nil {
		return s.Loader(code)
	}
	ticket, ok := s.Tickets.Get(ctx, code)
	if !ok {
		return models.TicketRecord{}, domain.NotFoundError{Resource: "ticket"}
	}
	return ticket, nil
}

// GenerateETicket renders the PDF and a download filename.
func (s Service) GenerateETicket(ctx context.Context, code string) ([]byte, string, error) {
	ticket, err := s.load(ctx, code)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_eticket", "pnr="+ticket.PNR)
	return buildETicketPDF(ticket)
}

func buildETicketPDF(t models.TicketRecord) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "E-TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("PNR            : %s", t.PNR),
		fmt.Sprintf("Passenger      : %s", safe(t.PassengerName, "-")),
		fmt.Sprintf("Contact        : %s / %s", safe(t.Email, "-"), safe(t.Phone, "-")),
		fmt.Sprintf("Train          : %s (%s)", safe(t.TrainName, "-"), safe(t.TrainID, "-")),
		fmt.Sprintf("Route          : %s -> %s", safe(t.Origin, "-"), safe(t.Destination, "-")),
		fmt.Sprintf("Date           : %s", safe(utils.DateOnly(t.Date), "-")),
		fmt.Sprintf("Departs/Arrives: %s / %s", safeTime(t.DepartureTime), safeTime(t.ArrivalTime)),
		fmt.Sprintf("Seats          : %s", safe(strings.Join(t.SeatNumbers, ", "), "-")),
		fmt.Sprintf("Class          : %s", safe(t.FareClass, "-")),
		fmt.Sprintf("Total          : %s", utils.FormatMoney(t.TotalFare)),
		fmt.Sprintf("Status         : %s", safe(t.Status, "-")),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	if png, err := qrcode.Encode(t.PNR, qrcode.Medium, 256); err == nil {
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("pnr-qr", opts, bytes.NewReader(png))
		pdf.ImageOptions("pnr-qr", 150, 20, 40, 40, false, opts, 0, "")
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Present this e-ticket and the QR code at boarding. One ticket covers the listed seats only.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("ETICKET_%s_%s.pdf", t.PNR, safeFilenamePart(t.PassengerName))
	return buf.Bytes(), filename, nil
}

// safeTime prints a clean HH:MM; records mirrored from other tiers can
// carry suffixed times like "08:00 CET".
func safeTime(v string) string {
	hhmm, err := utils.NormalizeTimeStr(v)
	if err != nil {
		return safe(v, "-")
	}
	return hhmm
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
