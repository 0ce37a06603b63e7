package database

import (
	"context"
	"fmt"

	"imovelhub/server/internal/models"
)

func (d *Database) FetchAgents(ctx context.Context) ([]models.Agent, error) {
	var agents []models.Agent
	if err := d.withContext(ctx).Order("name ASC").Find(&agents).Error; err != nil {
		return nil, fmt.Errorf("failed to query agents: %w", err)
	}
	return agents, nil
}

// GetAgentBySlug resolves the owner of a micro-site
func (d *Database) GetAgentBySlug(ctx context.Context, slug string) (*models.Agent, error) {
	var agent models.Agent
	if err := d.withContext(ctx).Where("slug = ?", slug).First(&agent).Error; err != nil {
		return nil, notFound(err)
	}
	return &agent, nil
}

func (d *Database) CreateAgent(ctx context.Context, agent *models.Agent) error {
	agent.ID = 0
	if err := d.withContext(ctx).Create(agent).Error; err != nil {
		return fmt.Errorf("failed to insert agent: %w", err)
	}
	return nil
}

// SlugExists reports whether a micro-site slug is already taken
func (d *Database) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := d.withContext(ctx).Model(&models.Agent{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check slug: %w", err)
	}
	return count > 0, nil
}
