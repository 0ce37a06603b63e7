package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"imovelhub/server/internal/forms"
	"imovelhub/server/internal/models"
)

func (h *Handler) GetAgents(c *gin.Context) {
	agents, err := h.db.FetchAgents(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "get agents")
		return
	}
	c.JSON(http.StatusOK, agents)
}

// CreateAgent registers a broker; a taken slug gets a numeric suffix
func (h *Handler) CreateAgent(c *gin.Context) {
	var agent models.Agent
	if !h.bindJSON(c, &agent) {
		return
	}

	if err := forms.ValidateAgent(&agent); err != nil {
		h.respondError(c, err, "create agent")
		return
	}

	ctx := c.Request.Context()
	base := agent.Slug
	for i := 2; ; i++ {
		exists, err := h.db.SlugExists(ctx, agent.Slug)
		if err != nil {
			h.respondError(c, err, "create agent")
			return
		}
		if !exists {
			break
		}
		agent.Slug = fmt.Sprintf("%s-%d", base, i)
	}

	if err := h.db.CreateAgent(ctx, &agent); err != nil {
		h.respondError(c, err, "create agent")
		return
	}
	c.JSON(http.StatusCreated, agent)
}

// SiteResponse is the public micro-site of an agent
type SiteResponse struct {
	Agent        models.Agent      `json:"agent"`
	Properties   []models.Property `json:"properties"`
	Developments []DevelopmentView `json:"developments"`
}

// GetSite returns an agent's profile with the listings shown on the site:
// active published properties and every development with its progress
func (h *Handler) GetSite(c *gin.Context) {
	ctx := c.Request.Context()
	agent, err := h.db.GetAgentBySlug(ctx, c.Param("slug"))
	if err != nil {
		h.respondError(c, err, "get site")
		return
	}

	properties, err := h.db.FetchPropertiesByAgent(ctx, agent.ID)
	if err != nil {
		h.respondError(c, err, "get site")
		return
	}

	visible := make([]models.Property, 0, len(properties))
	for _, p := range properties {
		if p.Published && p.Status == models.PropertyActive {
			visible = append(visible, p)
		}
	}

	devs, err := h.db.FetchDevelopmentsByAgent(ctx, agent.ID)
	if err != nil {
		h.respondError(c, err, "get site")
		return
	}

	c.JSON(http.StatusOK, SiteResponse{
		Agent:        *agent,
		Properties:   visible,
		Developments: developmentViews(devs),
	})
}
