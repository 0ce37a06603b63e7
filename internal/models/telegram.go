package models

import (
	"time"

	"gorm.io/datatypes"
)

// NotifierConfig stores the Telegram bot credentials and sales alert filters
type NotifierConfig struct {
	ID        uint                                    `gorm:"primaryKey" json:"id"`
	IsEnabled bool                                    `json:"is_enabled"`
	BotToken  string                                  `json:"bot_token"`
	ChatID    string                                  `json:"chat_id"`
	Filters   datatypes.JSONType[NotificationFilters] `json:"filters"`
	CreatedAt time.Time                               `json:"created_at"`
	UpdatedAt time.Time                               `json:"updated_at"`
}

// NotifierConfigRequest is used when updating the configuration
type NotifierConfigRequest struct {
	IsEnabled bool                `json:"is_enabled"`
	BotToken  string              `json:"bot_token"`
	ChatID    string              `json:"chat_id"`
	Filters   NotificationFilters `json:"filters"`
}

// NotificationFilters narrows which unit status changes trigger an alert
type NotificationFilters struct {
	Statuses       []UnitStatus `json:"statuses"`
	DevelopmentIDs []uint       `json:"development_ids"`
}

// IsUnitAllowed checks if a unit status change matches the filter criteria
func (f *NotificationFilters) IsUnitAllowed(unit *Unit) bool {
	if f == nil {
		return true // No filters means allow all
	}

	if len(f.Statuses) > 0 {
		allowed := false
		for _, status := range f.Statuses {
			if status == unit.Status {
				allowed = true
				break
			}
		}
		if !allowed {
			return false
		}
	}

	if len(f.DevelopmentIDs) > 0 {
		allowed := false
		for _, id := range f.DevelopmentIDs {
			if id == unit.DevelopmentID {
				allowed = true
				break
			}
		}
		if !allowed {
			return false
		}
	}

	return true
}
