package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"railbook/internal/domain"
	"railbook/internal/domain/models"
	"railbook/internal/http/middleware"
	"railbook/internal/review"
	"railbook/internal/store"
)

// POST /api/priority-tickets/upload accepts the supporting document for a
// priority application ahead of booking.
func (a *API) UploadPriorityDocument(c *gin.Context) {
	file, header, err := c.Request.FormFile("document")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "document file is required", err)
		return
	}
	defer file.Close()

	if header.Size > store.MaxDocumentSize {
		RespondError(c, http.StatusBadRequest, "document exceeds the 5 MB limit", nil)
		return
	}
	ref, err := a.Uploader.Upload(c.Request.Context(), header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"document": ref})
}

type createPriorityRequest struct {
	PNR          string             `json:"pnr"`
	PriorityType string             `json:"priority_type"`
	Document     models.DocumentRef `json:"document"`
}

// POST /api/priority-tickets files an application for an already issued
// ticket, for passengers who skipped priority during booking.
func (a *API) CreatePriorityTicket(c *gin.Context) {
	var req createPriorityRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if !models.ValidPriorityType(req.PriorityType) {
		RespondDomainError(c, domain.ValidationError{Field: "priority_type", Msg: "unknown priority type"})
		return
	}
	if req.Document.URL == "" {
		RespondDomainError(c, domain.ValidationError{Field: "document", Msg: "proof document is required"})
		return
	}

	rc, _ := middleware.GetRequestContext(c)
	ticket, ok := a.Tickets.Get(c.Request.Context(), req.PNR)
	if !ok {
		RespondError(c, http.StatusNotFound, "ticket not found", nil)
		return
	}
	if ticket.OwnerID != rc.UserID && !rc.IsAdmin() {
		RespondError(c, http.StatusForbidden, "not your booking", nil)
		return
	}

	now := time.Now()
	app, err := a.Priority.Add(c.Request.Context(), models.PriorityTicketRecord{
		ID:            uuid.NewString(),
		PNR:           ticket.PNR,
		OwnerID:       ticket.OwnerID,
		PassengerName: ticket.PassengerName,
		Email:         ticket.Email,
		Phone:         ticket.Phone,
		TrainID:       ticket.TrainID,
		Origin:        ticket.Origin,
		Destination:   ticket.Destination,
		Date:          ticket.Date,
		FareClass:     ticket.FareClass,
		PriorityType:  req.PriorityType,
		DocumentURL:   req.Document.URL,
		DocumentName:  req.Document.Name,
		Status:        models.PriorityPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"priority_ticket": app})
}

// GET /api/priority-tickets?status=&priorityType=
func (a *API) ListPriorityTickets(c *gin.Context) {
	filter := review.Filter{
		Status:       c.Query("status"),
		PriorityType: c.Query("priorityType"),
	}
	apps := a.reviewService(c).List(c.Request.Context(), filter)
	c.JSON(http.StatusOK, gin.H{"priority_tickets": apps})
}

// GET /api/priority-tickets/:id
func (a *API) GetPriorityTicket(c *gin.Context) {
	app, ok := a.Priority.Get(c.Request.Context(), c.Param("id"))
	if !ok {
		RespondError(c, http.StatusNotFound, "priority application not found", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"priority_ticket": app})
}

type dispositionRequest struct {
	Status     string `json:"status"`
	AdminNotes string `json:"admin_notes"`
}

// PUT /api/priority-tickets/:id/status
func (a *API) UpdatePriorityStatus(c *gin.Context) {
	var req dispositionRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	a.disposition(c, req.Status, req.AdminNotes)
}

// PUT /api/priority-tickets/:id/approve
func (a *API) ApprovePriorityTicket(c *gin.Context) {
	var req dispositionRequest
	_ = c.ShouldBindJSON(&req) // notes are optional here
	a.disposition(c, models.PriorityApproved, req.AdminNotes)
}

// PUT /api/priority-tickets/:id/reject
func (a *API) RejectPriorityTicket(c *gin.Context) {
	var req dispositionRequest
	_ = c.ShouldBindJSON(&req)
	a.disposition(c, models.PriorityRejected, req.AdminNotes)
}

func (a *API) disposition(c *gin.Context, status, notes string) {
	rc, _ := middleware.GetRequestContext(c)
	app, err := a.reviewService(c).Disposition(c.Request.Context(), rc, c.Param("id"), status, notes)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "priority application updated", "priority_ticket": app})
}
