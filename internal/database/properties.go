package database

import (
	"context"
	"fmt"

	"gorm.io/datatypes"

	"imovelhub/server/internal/models"
)

// FetchProperties returns every property, most recent first
func (d *Database) FetchProperties(ctx context.Context) ([]models.Property, error) {
	var properties []models.Property
	if err := d.withContext(ctx).Order("id DESC").Find(&properties).Error; err != nil {
		return nil, fmt.Errorf("failed to query properties: %w", err)
	}
	return properties, nil
}

// FetchPropertiesByAgent returns an agent's properties, most recent first
func (d *Database) FetchPropertiesByAgent(ctx context.Context, agentID uint) ([]models.Property, error) {
	var properties []models.Property
	err := d.withContext(ctx).
		Where("agent_id = ?", agentID).
		Order("id DESC").
		Find(&properties).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query agent properties: %w", err)
	}
	return properties, nil
}

func (d *Database) GetProperty(ctx context.Context, id uint) (*models.Property, error) {
	var p models.Property
	if err := d.withContext(ctx).First(&p, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (d *Database) CreateProperty(ctx context.Context, p *models.Property) error {
	p.ID = 0
	if err := d.withContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("failed to insert property: %w", err)
	}
	return nil
}

// UpdateProperty replaces the editable fields of an existing property.
// Publication settings are managed by UpdatePropertyPortals and are never
// written here; p is reloaded with the stored values afterwards.
func (d *Database) UpdateProperty(ctx context.Context, p *models.Property) error {
	result := d.withContext(ctx).
		Model(p).
		Select("*").
		Omit("id", "created_at", "published", "published_portals", "portal_config").
		Updates(p)
	if result.Error != nil {
		return fmt.Errorf("failed to update property: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	stored, err := d.GetProperty(ctx, p.ID)
	if err != nil {
		return err
	}
	*p = *stored
	return nil
}

func (d *Database) DeleteProperty(ctx context.Context, id uint) error {
	result := d.withContext(ctx).Delete(&models.Property{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete property: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdatePropertyPortals stores the syndication settings of a property
func (d *Database) UpdatePropertyPortals(ctx context.Context, id uint, published bool, portals []string, config models.PortalConfig) (*models.Property, error) {
	p, err := d.GetProperty(ctx, id)
	if err != nil {
		return nil, err
	}

	err = d.withContext(ctx).Model(p).Updates(map[string]interface{}{
		"published":         published,
		"published_portals": datatypes.NewJSONSlice(portals),
		"portal_config":     datatypes.NewJSONType(config),
	}).Error
	if err != nil {
		return nil, fmt.Errorf("failed to update property portals: %w", err)
	}

	return d.GetProperty(ctx, id)
}
