package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"railbook/internal/http/middleware"
)

type chatMessageRequest struct {
	Text string `json:"text"`
}

// POST /api/chat/:session/messages feeds one user message to the assistant
// and returns its reply together with the session transcript.
func (a *API) PostChatMessage(c *gin.Context) {
	var req chatMessageRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	rc, _ := middleware.GetRequestContext(c)
	reply := a.Chat.Handle(c.Request.Context(), c.Param("session"), rc.UserID, req.Text)
	c.JSON(http.StatusOK, gin.H{
		"reply":    reply,
		"messages": a.Chat.Messages(c.Param("session")),
	})
}

// GET /api/chat/:session/messages
func (a *API) GetChatMessages(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"messages": a.Chat.Messages(c.Param("session"))})
}
