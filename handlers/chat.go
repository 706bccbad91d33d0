package handlers

import (
	"errors"
	"log"
	"net/http"

	"frappeinsight/models"
	"frappeinsight/service"
	"frappeinsight/validation"

	"github.com/gin-gonic/gin"
)

// ChatHandler submits one user turn through the full pipeline
// @Summary      Ask a question about your data
// @Description  Runs the agentic workflow for one user message and returns the terminal bot message (answer, chart and follow-ups, or an error entry)
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Param        request  body      models.ChatRequest   true  "User message"
// @Success      200      {object}  models.ChatResponse  "Terminal bot message"
// @Failure      400      {object}  map[string]string    "Invalid request"
// @Failure      409      {object}  map[string]string    "A turn is already in flight"
// @Router       /api/chat [post]
func (h *Handlers) ChatHandler(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if !validation.IsValidPrompt(req.Message) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "The request appears to be invalid or gibberish. Please provide a meaningful message."})
		return
	}

	log.Printf("[CHAT HANDLER] Message: %s", req.Message)

	message, err := h.chat.Send(c.Request.Context(), req.Message)
	if err != nil {
		if errors.Is(err, service.ErrBusy) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.ChatResponse{Message: message})
}

// RetryHandler re-runs a failed turn
// @Summary      Retry a failed turn
// @Description  Re-submits the original text of an error message through the pipeline
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Param        request  body      models.RetryRequest  true  "ID of the error message to retry"
// @Success      200      {object}  models.ChatResponse
// @Failure      400      {object}  map[string]string
// @Failure      409      {object}  map[string]string
// @Router       /api/chat/retry [post]
func (h *Handlers) RetryHandler(c *gin.Context) {
	var req models.RetryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	message, err := h.chat.Retry(c.Request.Context(), req.MessageID)
	if err != nil {
		if errors.Is(err, service.ErrBusy) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.ChatResponse{Message: message})
}

// HistoryHandler returns the full conversation log
// @Summary      Chat history
// @Tags         Chat
// @Produce      json
// @Success      200  {array}  models.Message
// @Router       /api/chat/history [get]
func (h *Handlers) HistoryHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.chat.Messages())
}

// ResetHandler clears the session
// @Summary      Reset session
// @Description  Clears chat history, connection config and long-term memory together
// @Tags         Session
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/session/reset [post]
func (h *Handlers) ResetHandler(c *gin.Context) {
	if err := h.chat.Reset(); err != nil {
		log.Printf("[CHAT HANDLER] Error resetting session: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "reset"})
}
