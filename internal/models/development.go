package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Unit is one sellable sub-listing of a development (an apartment, a lot, a house)
type Unit struct {
	ID            uint                `gorm:"primaryKey" json:"id"`
	DevelopmentID uint                `gorm:"index;not null" json:"development_id"`
	UnitNumber    string              `gorm:"not null" json:"unit_number"`
	Block         *string             `json:"block"`
	Floor         *int                `json:"floor"`
	UnitType      *string             `json:"unit_type"`
	Bedrooms      *int                `json:"bedrooms"`
	Bathrooms     *int                `json:"bathrooms"`
	Area          decimal.NullDecimal `gorm:"type:decimal(12,2)" json:"area"`
	PrivateArea   decimal.NullDecimal `gorm:"type:decimal(12,2)" json:"private_area"`
	Price         decimal.Decimal     `gorm:"type:decimal(14,2);not null" json:"price"`
	Status        UnitStatus          `gorm:"size:16;not null;default:available;index" json:"status"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// PriceRange is the advertised min/max price of a development
type PriceRange struct {
	Min decimal.NullDecimal `gorm:"type:decimal(14,2)" json:"min"`
	Max decimal.NullDecimal `gorm:"type:decimal(14,2)" json:"max"`
}

// SalesStatus is the cached sales mirror of a development. It is recomputed
// from the unit records and never set by clients.
type SalesStatus struct {
	Available int `gorm:"not null;default:0" json:"available"`
	Reserved  int `gorm:"not null;default:0" json:"reserved"`
	Sold      int `gorm:"not null;default:0" json:"sold"`
}

type Development struct {
	ID                 uint                        `gorm:"primaryKey" json:"id"`
	Name               string                      `gorm:"not null" json:"name"`
	Description        string                      `json:"description"`
	Address            string                      `json:"address"`
	City               string                      `gorm:"index" json:"city"`
	State              string                      `gorm:"size:2" json:"state"`
	ZipCode            string                      `gorm:"size:9" json:"zip_code"`
	DevelopmentType    DevelopmentType             `gorm:"size:32;not null" json:"development_type"`
	ConstructionStatus ConstructionStatus          `gorm:"size:16;not null" json:"construction_status"`
	TotalUnits         int                         `gorm:"not null;default:0" json:"total_units"`
	PriceRange         PriceRange                  `gorm:"embedded;embeddedPrefix:price_" json:"price_range"`
	Amenities          datatypes.JSONSlice[string] `json:"amenities"`
	SalesStatus        SalesStatus                 `gorm:"embedded;embeddedPrefix:sales_" json:"sales_status"`
	Latitude           *float64                    `json:"latitude"`
	Longitude          *float64                    `json:"longitude"`
	DeliveryDate       *time.Time                  `json:"delivery_date"`
	AgentID            *uint                       `gorm:"index" json:"agent_id"`
	Units              []Unit                      `gorm:"foreignKey:DevelopmentID" json:"units,omitempty"`
	CreatedAt          time.Time                   `json:"created_at"`
	UpdatedAt          time.Time                   `json:"updated_at"`
}

// HasCoordinates reports whether the development can be placed on a map
func (d *Development) HasCoordinates() bool {
	return d.Latitude != nil && d.Longitude != nil
}
