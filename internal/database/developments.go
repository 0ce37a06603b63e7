package database

import (
	"context"
	"fmt"

	"imovelhub/server/internal/models"
)

// FetchDevelopments returns every development, most recent first
func (d *Database) FetchDevelopments(ctx context.Context) ([]models.Development, error) {
	var developments []models.Development
	if err := d.withContext(ctx).Order("id DESC").Find(&developments).Error; err != nil {
		return nil, fmt.Errorf("failed to query developments: %w", err)
	}
	return developments, nil
}

func (d *Database) FetchDevelopmentsByAgent(ctx context.Context, agentID uint) ([]models.Development, error) {
	var developments []models.Development
	err := d.withContext(ctx).
		Where("agent_id = ?", agentID).
		Order("id DESC").
		Find(&developments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query agent developments: %w", err)
	}
	return developments, nil
}

func (d *Database) GetDevelopment(ctx context.Context, id uint) (*models.Development, error) {
	var dev models.Development
	if err := d.withContext(ctx).First(&dev, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &dev, nil
}

// CreateDevelopment inserts a development with an empty sales mirror
func (d *Database) CreateDevelopment(ctx context.Context, dev *models.Development) error {
	dev.ID = 0
	dev.SalesStatus = models.SalesStatus{}
	dev.Units = nil
	if err := d.withContext(ctx).Create(dev).Error; err != nil {
		return fmt.Errorf("failed to insert development: %w", err)
	}
	return nil
}

// UpdateDevelopment replaces the editable fields of a development. The
// sales mirror is derived from the units and is never written here; dev is
// reloaded with the stored values afterwards.
func (d *Database) UpdateDevelopment(ctx context.Context, dev *models.Development) error {
	result := d.withContext(ctx).
		Model(dev).
		Select("*").
		Omit("id", "created_at", "sales_available", "sales_reserved", "sales_sold", "Units").
		Updates(dev)
	if result.Error != nil {
		return fmt.Errorf("failed to update development: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	stored, err := d.GetDevelopment(ctx, dev.ID)
	if err != nil {
		return err
	}
	*dev = *stored
	return nil
}
