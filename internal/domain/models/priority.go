package models

import "time"

// Priority application statuses. Approved and Rejected are terminal.
const (
	PriorityPending  = "Pending"
	PriorityApproved = "Approved"
	PriorityRejected = "Rejected"
)

// Priority ticket types requiring document proof.
const (
	PriorityStudent = "Student"
	PriorityOldAge  = "Old-Age"
	PriorityMedical = "Medical"
)

// ValidPriorityType reports whether t names a supported priority category.
func ValidPriorityType(t string) bool {
	switch t {
	case PriorityStudent, PriorityOldAge, PriorityMedical:
		return true
	}
	return false
}

// DocumentRef points at an uploaded proof document. A non-durable reference
// came from the local fallback and must not be trusted across sessions.
type DocumentRef struct {
	URL     string `json:"url"`
	Name    string `json:"name"`
	Durable bool   `json:"durable"`
}

// PriorityTicketRecord is an application for priority status tied to a
// booking. It is created by the passenger, transitioned only by an admin,
// and never deleted.
type PriorityTicketRecord struct {
	ID            string    `json:"id"`
	PNR           string    `json:"pnr"`
	OwnerID       string    `json:"owner_id"`
	PassengerName string    `json:"passenger_name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	TrainID       string    `json:"train_id"`
	Origin        string    `json:"origin"`
	Destination   string    `json:"destination"`
	Date          string    `json:"date"`
	FareClass     string    `json:"fare_class"`
	PriorityType  string    `json:"priority_type"`
	DocumentURL   string    `json:"document_url"`
	DocumentName  string    `json:"document_name"`
	Status        string    `json:"status"`
	AdminNotes    string    `json:"admin_notes"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Terminal reports whether the application has been dispositioned.
func (p PriorityTicketRecord) Terminal() bool {
	return p.Status == PriorityApproved || p.Status == PriorityRejected
}
