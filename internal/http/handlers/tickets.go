package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"railbook/internal/http/middleware"
)

// GET /api/tickets lists the caller's tickets; admins see every booking.
func (a *API) ListTickets(c *gin.Context) {
	rc, ok := middleware.GetRequestContext(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "authentication required", nil)
		return
	}
	svc := a.bookingService(middleware.GetRequestID(c))
	c.JSON(http.StatusOK, gin.H{"tickets": svc.ListFor(c.Request.Context(), rc)})
}

// GET /api/tickets/:pnr
func (a *API) GetTicket(c *gin.Context) {
	rc, _ := middleware.GetRequestContext(c)
	ticket, ok := a.Tickets.Get(c.Request.Context(), c.Param("pnr"))
	if !ok {
		RespondError(c, http.StatusNotFound, "ticket not found", nil)
		return
	}
	if ticket.OwnerID != rc.UserID && !rc.IsAdmin() {
		RespondError(c, http.StatusForbidden, "not your booking", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ticket": ticket})
}

// POST /api/tickets/:pnr/cancel
func (a *API) CancelTicket(c *gin.Context) {
	rc, _ := middleware.GetRequestContext(c)
	svc := a.bookingService(middleware.GetRequestID(c))
	ticket, err := svc.Cancel(c.Request.Context(), rc, c.Param("pnr"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "booking cancelled", "ticket": ticket})
}

// GET /api/tickets/:pnr/e-ticket streams the PDF e-ticket.
func (a *API) DownloadETicket(c *gin.Context) {
	rc, _ := middleware.GetRequestContext(c)
	code := c.Param("pnr")
	ticket, ok := a.Tickets.Get(c.Request.Context(), code)
	if !ok {
		RespondError(c, http.StatusNotFound, "ticket not found", nil)
		return
	}
	if ticket.OwnerID != rc.UserID && !rc.IsAdmin() {
		RespondError(c, http.StatusForbidden, "not your booking", nil)
		return
	}

	pdf, filename, err := a.docsService(c).GenerateETicket(c.Request.Context(), code)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
