package handlers

import (
	"fmt"
	"net/http"
	"time"

	"frappeinsight/models"
	"frappeinsight/service"
	"frappeinsight/validation"

	"github.com/gin-gonic/gin"
)

func attachment(c *gin.Context, filename, contentType string, body []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, body)
}

// ExportChatHandler downloads the chat log
// @Summary      Export chat log
// @Description  Downloads the conversation as CSV (timestamp, sender, message, chart type, chart title) or JSON (full message objects)
// @Tags         Export
// @Produce      json
// @Param        format  query     string  false  "csv or json"  default(csv)
// @Success      200     {string}  string  "File download"
// @Failure      400     {object}  map[string]string
// @Router       /api/export/chat [get]
func (h *Handlers) ExportChatHandler(c *gin.Context) {
	messages := h.chat.Messages()
	date := time.Now().Format("2006-01-02")

	switch c.DefaultQuery("format", "csv") {
	case "csv":
		attachment(c, fmt.Sprintf("frappe-insight-chat-%s.csv", date), "text/csv", []byte(service.ChatToCSV(messages)))
	case "json":
		data, err := service.ChatToJSON(messages)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		attachment(c, fmt.Sprintf("frappe-insight-chat-%s.json", date), "application/json", data)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be csv or json"})
	}
}

// ExportChartHandler downloads a chart's data
// @Summary      Export chart data
// @Description  Downloads a visualization's flat rows as CSV (xAxisKey column first) or JSON (raw row array)
// @Tags         Export
// @Accept       json
// @Produce      json
// @Param        format   query     string                false  "csv or json"  default(csv)
// @Param        request  body      models.Visualization  true   "Chart to export"
// @Success      200      {string}  string                "File download"
// @Failure      400      {object}  map[string]string
// @Router       /api/export/chart [post]
func (h *Handlers) ExportChartHandler(c *gin.Context) {
	var viz models.Visualization
	if err := c.ShouldBindJSON(&viz); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if !validation.IsValidChartType(viz.Type) {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unsupported chart type %q", viz.Type)})
		return
	}

	now := time.Now().Unix()
	switch c.DefaultQuery("format", "csv") {
	case "csv":
		attachment(c, fmt.Sprintf("chart-data-%s-%d.csv", viz.Type, now), "text/csv", []byte(service.ChartToCSV(&viz)))
	case "json":
		data, err := service.ChartToJSON(&viz)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		attachment(c, fmt.Sprintf("chart-data-%s-%d.json", viz.Type, now), "application/json", data)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be csv or json"})
	}
}
