package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"railbook/internal/booking"
	"railbook/internal/chat"
	"railbook/internal/config"
	"railbook/internal/docs"
	"railbook/internal/http/middleware"
	"railbook/internal/review"
	"railbook/internal/store"
)

// API wires the workflow services behind the HTTP handlers. Per-request
// concerns (request id, caller identity) are attached when a handler
// constructs its service value.
type API struct {
	Env      config.Env
	Tickets  *store.TicketStore
	Priority *store.PriorityStore
	Uploader store.Uploader
	Catalog  booking.Catalog
	Chat     *chat.Adapter
}

// NewAPI builds the handler set over shared stores.
func NewAPI(env config.Env) *API {
	tickets := store.NewTicketStore(env, nil)
	priority := store.NewPriorityStore(env, nil)
	catalog := booking.Catalog{Tickets: tickets}

	api := &API{
		Env:      env,
		Tickets:  tickets,
		Priority: priority,
		Uploader: store.Uploader{
			BaseURL:  env.RemoteAPIBaseURL,
			Client:   &http.Client{Timeout: env.RemoteTimeout},
			LocalDir: env.UploadDir,
		},
		Catalog: catalog,
	}
	api.Chat = &chat.Adapter{
		Catalog: catalog,
		Tickets: tickets,
		Issue:   api.bookingService("chat").Issue,
	}
	return api
}

func (a *API) bookingService(requestID string) booking.Service {
	return booking.Service{
		Tickets:       a.Tickets,
		Priority:      a.Priority,
		Coach:         a.Catalog.CoachLayout(),
		ServiceFee:    a.Env.ServiceFee,
		SurchargeRate: a.Env.PrioritySurcharge,
		RequestID:     requestID,
	}
}

func (a *API) reviewService(c *gin.Context) review.Service {
	return review.Service{Store: a.Priority, RequestID: middleware.GetRequestID(c)}
}

func (a *API) docsService(c *gin.Context) docs.Service {
	return docs.Service{Tickets: a.Tickets, RequestID: middleware.GetRequestID(c)}
}
