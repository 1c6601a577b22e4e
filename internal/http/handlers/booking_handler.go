package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"railbook/internal/booking"
	"railbook/internal/domain/models"
	"railbook/internal/fare"
	"railbook/internal/http/middleware"
	"railbook/internal/seatmap"
	"railbook/internal/utils"
)

// GET /api/stations
func (a *API) Stations(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"stations": booking.Stations()})
}

// GET /api/trains/search?origin=&destination=&date=
func (a *API) SearchTrains(c *gin.Context) {
	trains, err := a.Catalog.Search(c.Request.Context(), c.Query("origin"), c.Query("destination"), c.Query("date"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trains": trains})
}

// GET /api/seatmap?train=&date=
func (a *API) SeatMap(c *gin.Context) {
	trainID := utils.CleanSpace(c.Query("train"))
	date := utils.CleanSpace(c.Query("date"))
	if trainID == "" || !utils.ValidDate(date) {
		RespondError(c, http.StatusBadRequest, "train and date (YYYY-MM-DD) are required", nil)
		return
	}

	occupied := a.Tickets.Occupancy(c.Request.Context(), trainID, date)
	rows := seatmap.Generate(a.Catalog.CoachLayout(), occupied, nil)
	c.JSON(http.StatusOK, gin.H{"train": trainID, "date": date, "rows": rows})
}

type quoteRequest struct {
	Origin         string `json:"origin"`
	Destination    string `json:"destination"`
	TrainID        string `json:"train_id"`
	Date           string `json:"date"`
	PassengerCount int    `json:"passenger_count"`
	FareClass      string `json:"fare_class"`
	Priority       bool   `json:"priority"`
}

// POST /api/quote prices a journey before payment.
func (a *API) Quote(c *gin.Context) {
	var req quoteRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	train, err := a.Catalog.Find(c.Request.Context(), req.TrainID, req.Origin, req.Destination, req.Date)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if req.PassengerCount < 1 || req.PassengerCount > booking.MaxPassengers {
		RespondError(c, http.StatusBadRequest, "passenger_count must be between 1 and 6", nil)
		return
	}

	unit := train.Fare * fare.ClassMultiplier(req.FareClass)
	total := fare.ComputeTotal(unit, req.PassengerCount, a.Env.ServiceFee, req.Priority, a.Env.PrioritySurcharge)
	c.JSON(http.StatusOK, gin.H{
		"unit_fare":   utils.RoundMinor(unit),
		"service_fee": a.Env.ServiceFee,
		"total":       total,
	})
}

type createBookingRequest struct {
	Origin         string             `json:"origin"`
	Destination    string             `json:"destination"`
	Date           string             `json:"date"`
	PassengerCount int                `json:"passenger_count"`
	FareClass      string             `json:"fare_class"`
	Priority       bool               `json:"priority"`
	PriorityType   string             `json:"priority_type"`
	PassengerName  string             `json:"passenger_name"`
	Email          string             `json:"email"`
	Phone          string             `json:"phone"`
	TrainID        string             `json:"train_id"`
	Seats          []string           `json:"seats"`
	Document       models.DocumentRef `json:"document"`

	// PaymentConfirmed is the out-of-band payment signal; issuance trusts it.
	PaymentConfirmed bool `json:"payment_confirmed"`
}

// POST /api/bookings replays the booking steps from a completed form and,
// on confirmed payment, performs Payment -> Issued.
func (a *API) CreateBooking(c *gin.Context) {
	var req createBookingRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if !req.PaymentConfirmed {
		RespondError(c, http.StatusBadRequest, "payment not confirmed", nil)
		return
	}
	rc, _ := middleware.GetRequestContext(c)
	ctx := c.Request.Context()

	draft := booking.NewDraft(rc.UserID)
	draft, err := booking.Apply(draft, booking.SubmitSearch{
		Origin:         req.Origin,
		Destination:    req.Destination,
		Date:           req.Date,
		PassengerCount: req.PassengerCount,
		FareClass:      req.FareClass,
		Priority:       req.Priority,
		PriorityType:   req.PriorityType,
		PassengerName:  req.PassengerName,
		Email:          req.Email,
		Phone:          req.Phone,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	train, err := a.Catalog.Find(ctx, req.TrainID, draft.Origin, draft.Destination, draft.Date)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	next, err := booking.Apply(draft, booking.SelectTrain{Train: train})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if next.Step == draft.Step {
		RespondError(c, http.StatusConflict, "train is sold out", nil)
		return
	}
	draft = next

	coach := a.Catalog.CoachLayout()
	occupied := a.Tickets.Occupancy(ctx, train.ID, draft.Date)
	for _, seat := range utils.NormalizeSeats(req.Seats) {
		if draft, err = booking.Apply(draft, booking.ToggleSeat{SeatID: seat, Occupied: occupied, Coach: coach}); err != nil {
			RespondDomainError(c, err)
			return
		}
	}
	if draft, err = booking.Apply(draft, booking.ConfirmSeats{}); err != nil {
		RespondDomainError(c, err)
		return
	}
	draft.Document = req.Document

	ticket, err := a.bookingService(middleware.GetRequestID(c)).Issue(ctx, draft)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ticket": ticket})
}
