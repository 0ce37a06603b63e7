package database

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"imovelhub/server/internal/models"
)

// GetNotifierConfig retrieves the notifier configuration
func (d *Database) GetNotifierConfig(ctx context.Context) (*models.NotifierConfig, error) {
	var config models.NotifierConfig
	err := d.withContext(ctx).Order("id ASC").First(&config).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.NotifierConfig{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get notifier config: %w", err)
	}
	return &config, nil
}

// SaveNotifierConfig saves or updates the single notifier configuration row
func (d *Database) SaveNotifierConfig(ctx context.Context, req *models.NotifierConfigRequest) (*models.NotifierConfig, error) {
	config, err := d.GetNotifierConfig(ctx)
	if err != nil {
		return nil, err
	}

	config.IsEnabled = req.IsEnabled
	config.BotToken = req.BotToken
	config.ChatID = req.ChatID
	config.Filters = datatypes.NewJSONType(req.Filters)

	if err := d.withContext(ctx).Save(config).Error; err != nil {
		return nil, fmt.Errorf("failed to save notifier config: %w", err)
	}
	return config, nil
}
