package api

import (
	"log"
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	intconfig "railbook/internal/config"
	h "railbook/internal/http/handlers"
	"railbook/internal/http/middleware"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	handlers := h.NewAPI(env)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())
	r.Use(middleware.Auth([]byte(env.JWTSecret)))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.OPTIONS("/*path", func(c *gin.Context) { c.AbortWithStatus(stdhttp.StatusNoContent) })

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/login", handlers.Login)
		auth.POST("/register", handlers.Register)

		// Journey planning (public)
		api.GET("/stations", handlers.Stations)
		api.GET("/trains/search", handlers.SearchTrains)
		api.GET("/seatmap", handlers.SeatMap)
		api.POST("/quote", handlers.Quote)

		// Bookings
		bookings := api.Group("/bookings")
		bookings.Use(middleware.RequireAuth(), middleware.RateLimit(rate.Limit(5), 10))
		bookings.POST("", handlers.CreateBooking)

		// Tickets
		tickets := api.Group("/tickets")
		tickets.Use(middleware.RequireAuth())
		tickets.GET("", handlers.ListTickets)
		tickets.GET("/:pnr", handlers.GetTicket)
		tickets.POST("/:pnr/cancel", handlers.CancelTicket)
		tickets.GET("/:pnr/e-ticket", handlers.DownloadETicket)

		// Priority applications
		priority := api.Group("/priority-tickets")
		priority.POST("/upload", middleware.RequireAuth(), handlers.UploadPriorityDocument)
		priority.POST("", middleware.RequireAuth(), handlers.CreatePriorityTicket)
		mountPriorityReview(priority, handlers)

		// Chat assistant
		chatGroup := api.Group("/chat")
		chatGroup.Use(middleware.RequireAuth())
		chatGroup.POST("/:session/messages", handlers.PostChatMessage)
		chatGroup.GET("/:session/messages", handlers.GetChatMessages)
	}

	return r
}

func mountPriorityReview(g *gin.RouterGroup, handlers *h.API) {
	admin := middleware.RequireRoles("admin")
	g.GET("", admin, handlers.ListPriorityTickets)
	g.GET("/:id", admin, handlers.GetPriorityTicket)
	g.PUT("/:id/status", admin, handlers.UpdatePriorityStatus)
	g.PUT("/:id/approve", admin, handlers.ApprovePriorityTicket)
	g.PUT("/:id/reject", admin, handlers.RejectPriorityTicket)
}
