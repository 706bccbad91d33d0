package handlers

import (
	"net/http"
	"strconv"

	"frappeinsight/models"

	"github.com/gin-gonic/gin"
)

// ListMemoryHandler returns the long-term memory facts
// @Summary      List memory facts
// @Tags         Memory
// @Produce      json
// @Success      200  {array}  string
// @Router       /api/memory [get]
func (h *Handlers) ListMemoryHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.chat.Memory())
}

// AddMemoryHandler appends a memory fact
// @Summary      Add a memory fact
// @Description  The fact is included verbatim in every reasoning request until removed
// @Tags         Memory
// @Accept       json
// @Produce      json
// @Param        request  body      models.MemoryRequest  true  "Fact text"
// @Success      200      {array}   string
// @Failure      400      {object}  map[string]string
// @Router       /api/memory [post]
func (h *Handlers) AddMemoryHandler(c *gin.Context) {
	var req models.MemoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	h.chat.AddMemory(req.Fact)
	c.JSON(http.StatusOK, h.chat.Memory())
}

// RemoveMemoryHandler removes a memory fact by position
// @Summary      Remove a memory fact
// @Tags         Memory
// @Produce      json
// @Param        index  path      int  true  "Zero-based fact index"
// @Success      200    {array}   string
// @Failure      400    {object}  map[string]string
// @Router       /api/memory/{index} [delete]
func (h *Handlers) RemoveMemoryHandler(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid index"})
		return
	}
	if err := h.chat.RemoveMemory(index); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.chat.Memory())
}
