package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"imovelhub/server/config"
	"imovelhub/server/internal/events"
	"imovelhub/server/internal/forms"
	"imovelhub/server/internal/inventory"
	"imovelhub/server/internal/listing"
	"imovelhub/server/internal/models"
	"imovelhub/server/internal/portals"
)

// ListFilters are the query parameters of the list views
type ListFilters struct {
	Search string `form:"search"`
	Type   string `form:"type"`
	Status string `form:"status"`
}

func bindFilters(c *gin.Context) ListFilters {
	var f ListFilters
	_ = c.ShouldBindQuery(&f)
	if f.Type == "" {
		f.Type = inventory.All
	}
	if f.Status == "" {
		f.Status = inventory.All
	}
	return f
}

// GetProperties lists properties filtered by search text, type and status
func (h *Handler) GetProperties(c *gin.Context) {
	filters := bindFilters(c)

	properties, err := h.listings.FetchProperties(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "get properties")
		return
	}

	c.JSON(http.StatusOK, inventory.FilterProperties(properties, filters.Search, filters.Type, filters.Status))
}

func (h *Handler) GetProperty(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	property, err := h.db.GetProperty(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "get property")
		return
	}
	c.JSON(http.StatusOK, property)
}

// CreateProperty stores a new, unpublished property
func (h *Handler) CreateProperty(c *gin.Context) {
	var input forms.PropertyInput
	if !h.bindJSON(c, &input) {
		return
	}

	property, err := input.ToProperty()
	if err != nil {
		h.respondError(c, err, "create property")
		return
	}
	property.Published = false
	property.PublishedPortals = datatypes.JSONSlice[string]{}
	property.PortalConfig = datatypes.NewJSONType(models.PortalConfig{})

	if err := h.db.CreateProperty(c.Request.Context(), property); err != nil {
		h.respondError(c, err, "create property")
		return
	}
	h.listings.Invalidate(listing.PropertiesKey)

	c.JSON(http.StatusCreated, property)
}

// UpdateProperty replaces the editor fields of a property
func (h *Handler) UpdateProperty(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var input forms.PropertyInput
	if !h.bindJSON(c, &input) {
		return
	}

	property, err := input.ToProperty()
	if err != nil {
		h.respondError(c, err, "update property")
		return
	}
	property.ID = id

	if err := h.db.UpdateProperty(c.Request.Context(), property); err != nil {
		h.respondError(c, err, "update property")
		return
	}
	h.listings.Invalidate(listing.PropertiesKey)

	c.JSON(http.StatusOK, property)
}

func (h *Handler) DeleteProperty(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.db.DeleteProperty(c.Request.Context(), id); err != nil {
		h.respondError(c, err, "delete property")
		return
	}
	h.listings.Invalidate(listing.PropertiesKey)

	c.Status(http.StatusNoContent)
}

// UpdatePropertyPortals stores the published flag, the selected portals and
// the per-portal overrides of a property
func (h *Handler) UpdatePropertyPortals(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var update portals.Update
	if !h.bindJSON(c, &update) {
		return
	}

	result, err := h.validator.Validate(config.GetPortals(), update)
	if err != nil {
		h.respondError(c, err, "update portals")
		return
	}

	ctx := c.Request.Context()
	before, err := h.db.GetProperty(ctx, id)
	if err != nil {
		h.respondError(c, err, "update portals")
		return
	}

	property, err := h.db.UpdatePropertyPortals(ctx, id, result.Published, result.Portals, result.Config)
	if err != nil {
		h.respondError(c, err, "update portals")
		return
	}
	h.listings.Invalidate(listing.PropertiesKey)

	payload := events.PortalsPayload{
		PropertyID: property.ID,
		Published:  property.Published,
		Portals:    result.Portals,
	}
	h.publish(c, events.NewEvent(events.PropertyPortalsUpdated, payload))
	if property.Published && !before.Published {
		h.publish(c, events.NewEvent(events.PropertyPublished, payload))
	}

	c.JSON(http.StatusOK, property)
}
