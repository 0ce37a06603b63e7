package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"imovelhub/server/internal/inventory"
	"imovelhub/server/internal/models"
	"imovelhub/server/internal/telegram"
)

// Dashboard is the super-admin overview of the platform
type Dashboard struct {
	Agents       int64                     `json:"agents"`
	Properties   inventory.PropertySummary `json:"properties"`
	Developments int64                     `json:"developments"`
	TotalUnits   int64                     `json:"total_units"`
	Units        inventory.SalesStats      `json:"units"`
	Progress     int                       `json:"progress"`
}

func (h *Handler) GetDashboard(c *gin.Context) {
	ctx := c.Request.Context()

	counts, err := h.db.GetDashboardCounts(ctx)
	if err != nil {
		h.respondError(c, err, "get dashboard")
		return
	}

	properties, err := h.listings.FetchProperties(ctx)
	if err != nil {
		h.respondError(c, err, "get dashboard")
		return
	}

	units := inventory.SalesStats{
		Available: int(counts.Units[models.UnitAvailable]),
		Reserved:  int(counts.Units[models.UnitReserved]),
		Sold:      int(counts.Units[models.UnitSold]),
	}
	units.Total = units.Available + units.Reserved + units.Sold

	c.JSON(http.StatusOK, Dashboard{
		Agents:       counts.Agents,
		Properties:   inventory.SummarizeProperties(properties),
		Developments: counts.Developments,
		TotalUnits:   counts.TotalUnits,
		Units:        units,
		Progress:     inventory.SalesProgressPercentage(units.Sold, units.Reserved, int(counts.TotalUnits)),
	})
}

// GetNotifierConfig returns the current notifier configuration
func (h *Handler) GetNotifierConfig(c *gin.Context) {
	config, err := h.db.GetNotifierConfig(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "get notifier config")
		return
	}

	// Don't send the full bot token back to the client
	config.BotToken = telegram.MaskToken(config.BotToken)
	c.JSON(http.StatusOK, config)
}

// UpdateNotifierConfig validates the credentials with a test message when
// enabled, then saves them
func (h *Handler) UpdateNotifierConfig(c *gin.Context) {
	var request models.NotifierConfigRequest
	if !h.bindJSON(c, &request) {
		return
	}

	ctx := c.Request.Context()
	current, err := h.db.GetNotifierConfig(ctx)
	if err != nil {
		h.respondError(c, err, "update notifier config")
		return
	}

	// A masked token sent back unchanged keeps the stored one
	if request.BotToken != "" && request.BotToken == telegram.MaskToken(current.BotToken) {
		request.BotToken = current.BotToken
	}

	for _, status := range request.Filters.Statuses {
		if !status.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status filter: " + string(status), "field": "filters.statuses"})
			return
		}
	}

	if request.IsEnabled {
		if len(request.BotToken) < 20 || !strings.Contains(request.BotToken, ":") {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bot token format. Please check your bot token from @BotFather"})
			return
		}
		if request.ChatID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Chat ID is required"})
			return
		}

		// Test the configuration before saving
		if err := h.notifier.SendTestMessage(ctx, request.BotToken, request.ChatID); err != nil {
			requestLogger(c, h.logger).WithError(err).Warn("Failed to send test message")
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	config, err := h.db.SaveNotifierConfig(ctx, &request)
	if err != nil {
		h.respondError(c, err, "save notifier config")
		return
	}
	h.notifier.UpdateConfig(config)

	c.JSON(http.StatusOK, gin.H{"message": "Notifier configuration updated successfully"})
}

// TestNotifierConfig sends a test message with the stored configuration
func (h *Handler) TestNotifierConfig(c *gin.Context) {
	ctx := c.Request.Context()
	config, err := h.db.GetNotifierConfig(ctx)
	if err != nil {
		h.respondError(c, err, "get notifier config")
		return
	}

	if !config.IsEnabled {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Notifications are disabled"})
		return
	}

	if err := h.notifier.SendTestMessage(ctx, config.BotToken, config.ChatID); err != nil {
		requestLogger(c, h.logger).WithError(err).Warn("Failed to send test message")
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Test notification sent"})
}
