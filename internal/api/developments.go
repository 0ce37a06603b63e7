package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"imovelhub/server/internal/events"
	"imovelhub/server/internal/forms"
	"imovelhub/server/internal/geometry"
	"imovelhub/server/internal/inventory"
	"imovelhub/server/internal/listing"
	"imovelhub/server/internal/models"
	"imovelhub/server/internal/queue"
)

// DevelopmentView is a development with its sales figures
type DevelopmentView struct {
	models.Development
	Category string               `json:"category"`
	Stats    inventory.SalesStats `json:"stats"`
	Progress int                  `json:"progress"`
}

func newDevelopmentView(dev models.Development, stats inventory.SalesStats) DevelopmentView {
	return DevelopmentView{
		Development: dev,
		Category:    inventory.DevelopmentCategory(dev.DevelopmentType),
		Stats:       stats,
		Progress:    inventory.DevelopmentProgress(&dev, stats),
	}
}

// developmentViews uses each development's cached sales mirror
func developmentViews(devs []models.Development) []DevelopmentView {
	views := make([]DevelopmentView, len(devs))
	for i, dev := range devs {
		views[i] = newDevelopmentView(dev, inventory.FromSalesStatus(dev.SalesStatus))
	}
	return views
}

// UnitsResponse is the sales mirror screen of a development
type UnitsResponse struct {
	Units    []models.Unit        `json:"units"`
	Stats    inventory.SalesStats `json:"stats"`
	Progress int                  `json:"progress"`
}

// GetDevelopments lists developments filtered by search text and category
func (h *Handler) GetDevelopments(c *gin.Context) {
	filters := bindFilters(c)

	devs, err := h.listings.FetchDevelopments(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "get developments")
		return
	}

	c.JSON(http.StatusOK, developmentViews(inventory.FilterDevelopments(devs, filters.Search, filters.Type)))
}

// GetDevelopmentMap returns the developments as a GeoJSON feature collection
func (h *Handler) GetDevelopmentMap(c *gin.Context) {
	filters := bindFilters(c)

	devs, err := h.listings.FetchDevelopments(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "get development map")
		return
	}

	devs = inventory.FilterDevelopments(devs, filters.Search, filters.Type)
	c.JSON(http.StatusOK, geometry.BuildDevelopmentMap(devs, nil, h.geohashPrecision))
}

// GetDevelopment returns a development with live stats computed from its units
func (h *Handler) GetDevelopment(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	dev, err := h.db.GetDevelopment(ctx, id)
	if err != nil {
		h.respondError(c, err, "get development")
		return
	}

	units, err := h.listings.FetchUnits(ctx, id)
	if err != nil {
		h.respondError(c, err, "get development")
		return
	}

	c.JSON(http.StatusOK, newDevelopmentView(*dev, inventory.ComputeSalesStats(units)))
}

func (h *Handler) CreateDevelopment(c *gin.Context) {
	var dev models.Development
	if !h.bindJSON(c, &dev) {
		return
	}

	if err := forms.ValidateDevelopment(&dev); err != nil {
		h.respondError(c, err, "create development")
		return
	}

	if err := h.db.CreateDevelopment(c.Request.Context(), &dev); err != nil {
		h.respondError(c, err, "create development")
		return
	}
	h.listings.Invalidate(listing.DevelopmentsKey)

	c.JSON(http.StatusCreated, newDevelopmentView(dev, inventory.SalesStats{}))
}

func (h *Handler) UpdateDevelopment(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var dev models.Development
	if !h.bindJSON(c, &dev) {
		return
	}
	dev.ID = id

	if err := forms.ValidateDevelopment(&dev); err != nil {
		h.respondError(c, err, "update development")
		return
	}

	if err := h.db.UpdateDevelopment(c.Request.Context(), &dev); err != nil {
		h.respondError(c, err, "update development")
		return
	}
	h.listings.Invalidate(listing.DevelopmentsKey)

	c.JSON(http.StatusOK, newDevelopmentView(dev, inventory.FromSalesStatus(dev.SalesStatus)))
}

// GetUnits returns the filtered units of a development together with the
// stats of all its units and the development's progress
func (h *Handler) GetUnits(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	filters := bindFilters(c)

	ctx := c.Request.Context()
	dev, err := h.db.GetDevelopment(ctx, id)
	if err != nil {
		h.respondError(c, err, "get units")
		return
	}

	units, err := h.listings.FetchUnits(ctx, id)
	if err != nil {
		h.respondError(c, err, "get units")
		return
	}

	stats := inventory.ComputeSalesStats(units)
	c.JSON(http.StatusOK, UnitsResponse{
		Units:    inventory.FilterUnits(units, filters.Search, filters.Status),
		Stats:    stats,
		Progress: inventory.DevelopmentProgress(dev, stats),
	})
}

// CreateUnit adds a single unit; unit number and a positive price are required
func (h *Handler) CreateUnit(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var input forms.UnitInput
	if !h.bindJSON(c, &input) {
		return
	}

	unit, err := input.ToUnit(id)
	if err != nil {
		h.respondError(c, err, "create unit")
		return
	}

	if err := h.db.CreateUnit(c.Request.Context(), unit); err != nil {
		h.respondError(c, err, "create unit")
		return
	}
	h.listings.InvalidateUnits(id)

	c.JSON(http.StatusCreated, unit)
}

// CreateUnitsBulk validates a list of units and queues it for import
func (h *Handler) CreateUnitsBulk(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var input forms.BulkUnitsInput
	if !h.bindJSON(c, &input) {
		return
	}

	units, err := input.ToUnits(id)
	if err != nil {
		h.respondError(c, err, "import units")
		return
	}

	if _, err := h.db.GetDevelopment(c.Request.Context(), id); err != nil {
		h.respondError(c, err, "import units")
		return
	}

	err = h.queue.Push(queue.UnitBatch{DevelopmentID: id, Units: units})
	switch {
	case errors.Is(err, queue.ErrQueueFull), errors.Is(err, queue.ErrQueueClosed):
		requestLogger(c, h.logger).WithError(err).Warn("Bulk import rejected")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Import queue unavailable, try again later"})
		return
	case err != nil:
		h.respondError(c, err, "import units")
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"queued": len(units)})
}

// UpdateUnitStatus changes only the status of a unit. Any transition is
// allowed; reservations and sales trigger an alert.
func (h *Handler) UpdateUnitStatus(c *gin.Context) {
	devID, ok := paramID(c, "id")
	if !ok {
		return
	}
	unitID, ok := paramID(c, "unitId")
	if !ok {
		return
	}

	var patch forms.StatusPatch
	if !h.bindJSON(c, &patch) {
		return
	}
	status, err := patch.Validate()
	if err != nil {
		h.respondError(c, err, "update unit")
		return
	}

	ctx := c.Request.Context()
	unit, previous, err := h.db.UpdateUnitStatus(ctx, devID, unitID, status)
	if err != nil {
		h.respondError(c, err, "update unit")
		return
	}
	h.listings.InvalidateUnits(devID)

	dev, err := h.db.GetDevelopment(ctx, devID)
	if err != nil {
		h.respondError(c, err, "update unit")
		return
	}

	logger := requestLogger(c, h.logger).WithFields(logrus.Fields{
		"development_id": devID,
		"unit_id":        unitID,
		"previous":       previous,
		"status":         status,
	})
	logger.Info("Unit status changed")

	if previous != status {
		stats := inventory.FromSalesStatus(dev.SalesStatus)
		h.publish(c, events.NewEvent(events.UnitStatusChanged, events.UnitStatusPayload{
			DevelopmentID:  devID,
			UnitID:         unit.ID,
			UnitNumber:     unit.UnitNumber,
			PreviousStatus: string(previous),
			Status:         string(status),
			Progress:       inventory.DevelopmentProgress(dev, stats),
		}))

		if h.notifier.ShouldNotify(unit, previous) {
			go func() {
				notifyCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
				defer cancel()
				if err := h.notifier.NotifyUnitStatus(notifyCtx, dev, unit, previous); err != nil {
					logger.WithError(err).Warn("Failed to send sales notification")
				}
			}()
		}
	}

	c.JSON(http.StatusOK, unit)
}
