package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Features holds the amenity flags shared by every property type
type Features struct {
	Pool            bool `json:"pool"`
	Gym             bool `json:"gym"`
	Barbecue        bool `json:"barbecue"`
	Playground      bool `json:"playground"`
	PartyRoom       bool `json:"party_room"`
	Security24h     bool `json:"security_24h"`
	Furnished       bool `json:"furnished"`
	AirConditioning bool `json:"air_conditioning"`
	Balcony         bool `json:"balcony"`
	Garden          bool `json:"garden"`
}

type ApartmentDetails struct {
	Floor         *int      `json:"floor,omitempty"`
	TotalFloors   *int      `json:"total_floors,omitempty"`
	UnitsPerFloor *int      `json:"units_per_floor,omitempty"`
	Condition     Condition `gorm:"size:32" json:"condition,omitempty"`
	BuildingName  string    `json:"building_name,omitempty"`
	HasElevator   bool      `json:"has_elevator,omitempty"`
	HasConcierge  bool      `json:"has_concierge,omitempty"`
	PetsAllowed   bool      `json:"pets_allowed,omitempty"`
}

type HouseDetails struct {
	LotSize        decimal.NullDecimal `gorm:"type:decimal(12,2)" json:"lot_size,omitempty"`
	Stories        *int                `json:"stories,omitempty"`
	Condition      Condition           `gorm:"size:32" json:"condition,omitempty"`
	HasOutdoorArea bool                `json:"has_outdoor_area,omitempty"`
	IsCorner       bool                `json:"is_corner,omitempty"`
	IsGated        bool                `json:"is_gated,omitempty"`
	HasSolarPanels bool                `json:"has_solar_panels,omitempty"`
	HasServiceArea bool                `json:"has_service_area,omitempty"`
}

type CommercialDetails struct {
	CommercialType        CommercialType      `gorm:"size:32" json:"commercial_type,omitempty"`
	FloorNumber           *int                `json:"floor_number,omitempty"`
	Condition             Condition           `gorm:"size:32" json:"condition,omitempty"`
	MonthlyMaintenanceFee decimal.NullDecimal `gorm:"type:decimal(12,2)" json:"monthly_maintenance_fee,omitempty"`
	PreviousUse           string              `json:"previous_use,omitempty"`
	Has24HourAccess       bool                `json:"has_24_hour_access,omitempty"`
	HasLoadingDock        bool                `json:"has_loading_dock,omitempty"`
	HasReceptionArea      bool                `json:"has_reception_area,omitempty"`
}

type LandDetails struct {
	FrontSize          decimal.NullDecimal `gorm:"type:decimal(10,2)" json:"front_size,omitempty"`
	SideSize           decimal.NullDecimal `gorm:"type:decimal(10,2)" json:"side_size,omitempty"`
	Topography         Topography          `gorm:"size:32" json:"topography,omitempty"`
	LandType           LandType            `gorm:"size:32" json:"land_type,omitempty"`
	ZoningType         string              `json:"zoning_type,omitempty"`
	HasWaterConnection bool                `json:"has_water_connection,omitempty"`
	HasSewerConnection bool                `json:"has_sewer_connection,omitempty"`
	HasPowerConnection bool                `json:"has_power_connection,omitempty"`
	HasDemolition      bool                `json:"has_demolition,omitempty"`
	IsInCondominium    bool                `json:"is_in_condominium,omitempty"`
	IsCorner           bool                `json:"is_corner,omitempty"`
}

type RuralDetails struct {
	TotalArea             decimal.NullDecimal   `gorm:"type:decimal(14,2)" json:"total_area,omitempty"`
	ProductiveArea        decimal.NullDecimal   `gorm:"type:decimal(14,2)" json:"productive_area,omitempty"`
	AppRegistration       string                `json:"app_registration,omitempty"`
	RuralFeatures         string                `json:"rural_features,omitempty"`
	WaterSources          string                `json:"water_sources,omitempty"`
	AccessRoads           string                `json:"access_roads,omitempty"`
	AgriculturalPotential AgriculturalPotential `gorm:"size:32" json:"agricultural_potential,omitempty"`
	HasMainHouse          bool                  `json:"has_main_house,omitempty"`
	HasElectricity        bool                  `json:"has_electricity,omitempty"`
	HasBarn               bool                  `json:"has_barn,omitempty"`
	HasFencing            bool                  `json:"has_fencing,omitempty"`
	HasOrchard            bool                  `json:"has_orchard,omitempty"`
	HasStables            bool                  `json:"has_stables,omitempty"`
}

// Property is a standalone listing. Exactly one of the type-specific detail
// groups is relevant, selected by PropertyType.
type Property struct {
	ID              uint                `gorm:"primaryKey" json:"id"`
	Title           string              `gorm:"not null" json:"title"`
	Description     string              `json:"description"`
	Address         string              `json:"address"`
	Neighborhood    string              `json:"neighborhood"`
	City            string              `gorm:"index" json:"city"`
	State           string              `gorm:"size:2" json:"state"`
	ZipCode         string              `gorm:"size:9" json:"zip_code"`
	PropertyType    PropertyType        `gorm:"size:16;not null;index" json:"property_type"`
	TransactionType TransactionType     `gorm:"size:8;not null" json:"transaction_type"`
	Status          PropertyStatus      `gorm:"size:16;not null;default:active;index" json:"status"`
	Price           decimal.Decimal     `gorm:"type:decimal(14,2);not null" json:"price"`
	Area            decimal.Decimal     `gorm:"type:decimal(12,2);not null" json:"area"`
	Bedrooms        *int                `json:"bedrooms"`
	Bathrooms       *int                `json:"bathrooms"`
	Suites          *int                `json:"suites"`
	ParkingSpaces   *int                `json:"parking_spaces"`
	CondoFee        decimal.NullDecimal `gorm:"type:decimal(12,2)" json:"condo_fee"`
	IPTU            decimal.NullDecimal `gorm:"column:iptu;type:decimal(12,2)" json:"iptu"`

	Features   Features          `gorm:"embedded;embeddedPrefix:has_" json:"features"`
	Apartment  ApartmentDetails  `gorm:"embedded;embeddedPrefix:apartment_" json:"apartment"`
	House      HouseDetails      `gorm:"embedded;embeddedPrefix:house_" json:"house"`
	Commercial CommercialDetails `gorm:"embedded;embeddedPrefix:commercial_" json:"commercial"`
	Land       LandDetails       `gorm:"embedded;embeddedPrefix:land_" json:"land"`
	Rural      RuralDetails      `gorm:"embedded;embeddedPrefix:rural_" json:"rural"`

	Published        bool                             `gorm:"not null;default:false" json:"published"`
	PublishedPortals datatypes.JSONSlice[string]      `json:"published_portals"`
	PortalConfig     datatypes.JSONType[PortalConfig] `json:"portal_config"`

	AgentID   *uint     `gorm:"index" json:"agent_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NormalizeTypeFields clears every detail group that does not belong to the
// property's type, so only the selected tagged-union branch is persisted.
func (p *Property) NormalizeTypeFields() {
	if p.PropertyType != PropertyApartment {
		p.Apartment = ApartmentDetails{}
	}
	if p.PropertyType != PropertyHouse {
		p.House = HouseDetails{}
	}
	if p.PropertyType != PropertyCommercial {
		p.Commercial = CommercialDetails{}
	}
	if p.PropertyType != PropertyLand {
		p.Land = LandDetails{}
	}
	if p.PropertyType != PropertyRural {
		p.Rural = RuralDetails{}
	}
}
