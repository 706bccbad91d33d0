package handlers

import (
	"log"
	"net/http"

	"frappeinsight/config"
	"frappeinsight/models"

	"github.com/gin-gonic/gin"
)

// ConnectHandler connects the session to a Frappe instance
// @Summary      Connect to a Frappe database
// @Description  Verifies the credentials and discovers available DocTypes. Discovery failure after a successful connection is reported as a warning, not an error.
// @Tags         Session
// @Accept       json
// @Produce      json
// @Param        request  body      models.ConnectRequest   true  "Frappe URL and API credentials"
// @Success      200      {object}  models.ConnectResponse
// @Failure      400      {object}  map[string]string
// @Router       /api/connect [post]
func (h *Handlers) ConnectHandler(c *gin.Context) {
	var req models.ConnectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	result, err := h.chat.Connect(c.Request.Context(), models.FrappeConfig{
		URL:       req.URL,
		APIKey:    req.APIKey,
		APISecret: req.APISecret,
	})
	if err != nil {
		log.Printf("[CONNECT HANDLER] Connection failed: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// DisconnectHandler disconnects and clears the session
// @Summary      Disconnect from the database
// @Description  Dropping the connection clears all session state (history, config, memory) and returns to demo mode
// @Tags         Session
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/disconnect [post]
func (h *Handlers) DisconnectHandler(c *gin.Context) {
	if err := h.chat.Reset(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "disconnected"})
}

// SchemaHandler returns the active schema directory
// @Summary      Active schema
// @Description  The demo schema in demo mode, or the discovered DocTypes when connected
// @Tags         Schema
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/schema [get]
func (h *Handlers) SchemaHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"connected": h.chat.IsConnected(),
		"schema":    h.chat.Schema(),
	})
}

// SuggestionsHandler returns the canned starter questions
// @Summary      Suggested questions
// @Tags         Chat
// @Produce      json
// @Success      200  {array}  string
// @Router       /api/suggestions [get]
func (h *Handlers) SuggestionsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, config.SuggestedQuestions)
}
