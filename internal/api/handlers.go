package api

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"imovelhub/server/config"
	"imovelhub/server/internal/addresslookup"
	"imovelhub/server/internal/database"
	"imovelhub/server/internal/events"
	"imovelhub/server/internal/forms"
	"imovelhub/server/internal/listing"
	"imovelhub/server/internal/models"
	"imovelhub/server/internal/portals"
	"imovelhub/server/internal/queue"
	"imovelhub/server/internal/telegram"
)

// AddressResolver resolves a postal code, returning nil when unknown
type AddressResolver interface {
	Lookup(ctx context.Context, cep string) *addresslookup.Address
}

// Options carries the collaborators of the HTTP handlers
type Options struct {
	DB               *database.Database
	Listings         *listing.CachedRepository
	Addresses        AddressResolver
	Notifier         *telegram.Service
	Publisher        events.Publisher
	Queue            *queue.UnitQueue
	Validator        *portals.Validator
	GeohashPrecision uint
	Logger           *logrus.Logger
}

type Handler struct {
	db               *database.Database
	listings         *listing.CachedRepository
	addresses        AddressResolver
	notifier         *telegram.Service
	publisher        events.Publisher
	queue            *queue.UnitQueue
	validator        *portals.Validator
	geohashPrecision uint
	logger           *logrus.Logger
}

func NewHandler(opts Options) *Handler {
	logger := opts.Logger
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}

	publisher := opts.Publisher
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}

	notifier := opts.Notifier
	if notifier == nil {
		notifier = telegram.NewService(logger)
	}

	// Load existing notifier configuration
	if opts.DB != nil {
		if cfg, err := opts.DB.GetNotifierConfig(context.Background()); err == nil {
			notifier.UpdateConfig(cfg)
		} else {
			logger.WithError(err).Warn("Failed to load notifier config")
		}
	}

	return &Handler{
		db:               opts.DB,
		listings:         opts.Listings,
		addresses:        opts.Addresses,
		notifier:         notifier,
		publisher:        publisher,
		queue:            opts.Queue,
		validator:        opts.Validator,
		geohashPrecision: opts.GeohashPrecision,
		logger:           logger,
	}
}

// respondError maps an error to a JSON error response. action describes
// what failed, e.g. "get property".
func (h *Handler) respondError(c *gin.Context, err error, action string) {
	var verr *forms.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "field": verr.Field})
	case errors.Is(err, database.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	default:
		requestLogger(c, h.logger).WithError(err).Error("Failed to " + action)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
	}
}

func (h *Handler) bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		requestLogger(c, h.logger).WithError(err).Debug("Invalid request body")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return false
	}
	return true
}

// paramID parses a positive numeric path parameter
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// publish sends an event in the background; failures are only logged
func (h *Handler) publish(c *gin.Context, event events.Event) {
	logger := requestLogger(c, h.logger)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := h.publisher.Publish(ctx, event); err != nil {
			logger.WithError(err).WithField("event_type", event.Type).Warn("Failed to publish event")
		}
	}()
}

func (h *Handler) Health(c *gin.Context) {
	if err := h.db.GetDB().WithContext(c.Request.Context()).Exec("SELECT 1").Error; err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetPortals returns the syndication catalog
func (h *Handler) GetPortals(c *gin.Context) {
	catalog := config.GetPortals()
	if catalog == nil {
		catalog = []models.Portal{}
	}
	c.JSON(http.StatusOK, catalog)
}

// LookupAddress resolves a CEP for the property editor's address tab
func (h *Handler) LookupAddress(c *gin.Context) {
	if h.addresses == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Address lookup disabled"})
		return
	}

	addr := h.addresses.Lookup(c.Request.Context(), c.Param("cep"))
	if addr == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
		return
	}
	c.JSON(http.StatusOK, addr)
}
