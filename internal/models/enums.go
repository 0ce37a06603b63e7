package models

// UnitStatus is the sales state of a single unit inside a development
type UnitStatus string

const (
	UnitAvailable UnitStatus = "available"
	UnitReserved  UnitStatus = "reserved"
	UnitSold      UnitStatus = "sold"
)

// UnitStatuses lists every unit status in display order
var UnitStatuses = []UnitStatus{UnitAvailable, UnitReserved, UnitSold}

func (s UnitStatus) Valid() bool {
	switch s {
	case UnitAvailable, UnitReserved, UnitSold:
		return true
	}
	return false
}

type DevelopmentType string

const (
	CondominioVertical   DevelopmentType = "condominio_vertical"
	CondominioHorizontal DevelopmentType = "condominio_horizontal"
	Loteamento           DevelopmentType = "loteamento"
	Apartamentos         DevelopmentType = "apartamentos"
	Casas                DevelopmentType = "casas"
)

func (t DevelopmentType) Valid() bool {
	switch t {
	case CondominioVertical, CondominioHorizontal, Loteamento, Apartamentos, Casas:
		return true
	}
	return false
}

type ConstructionStatus string

const (
	Planta        ConstructionStatus = "planta"
	EmConstrucao  ConstructionStatus = "em_construcao"
	ProntoParaUso ConstructionStatus = "pronto"
)

func (s ConstructionStatus) Valid() bool {
	switch s {
	case Planta, EmConstrucao, ProntoParaUso:
		return true
	}
	return false
}

type PropertyType string

const (
	PropertyApartment  PropertyType = "apartment"
	PropertyHouse      PropertyType = "house"
	PropertyLand       PropertyType = "land"
	PropertyCommercial PropertyType = "commercial"
	PropertyRural      PropertyType = "rural"
)

func (t PropertyType) Valid() bool {
	switch t {
	case PropertyApartment, PropertyHouse, PropertyLand, PropertyCommercial, PropertyRural:
		return true
	}
	return false
}

type TransactionType string

const (
	TransactionSale TransactionType = "sale"
	TransactionRent TransactionType = "rent"
	TransactionBoth TransactionType = "both"
)

func (t TransactionType) Valid() bool {
	switch t {
	case TransactionSale, TransactionRent, TransactionBoth:
		return true
	}
	return false
}

type PropertyStatus string

const (
	PropertyActive   PropertyStatus = "active"
	PropertyReserved PropertyStatus = "reserved"
	PropertySold     PropertyStatus = "sold"
	PropertyInactive PropertyStatus = "inactive"
)

func (s PropertyStatus) Valid() bool {
	switch s {
	case PropertyActive, PropertyReserved, PropertySold, PropertyInactive:
		return true
	}
	return false
}

// Condition is shared by apartments, houses and commercial properties
type Condition string

const (
	ConditionNew               Condition = "new"
	ConditionExcellent         Condition = "excellent"
	ConditionGood              Condition = "good"
	ConditionNeedsRenovation   Condition = "needsRenovation"
	ConditionUnderConstruction Condition = "underConstruction"
)

func (c Condition) Valid() bool {
	switch c {
	case ConditionNew, ConditionExcellent, ConditionGood, ConditionNeedsRenovation, ConditionUnderConstruction:
		return true
	}
	return false
}

type CommercialType string

const (
	CommercialOffice     CommercialType = "office"
	CommercialRetail     CommercialType = "retail"
	CommercialWarehouse  CommercialType = "warehouse"
	CommercialIndustrial CommercialType = "industrial"
	CommercialRestaurant CommercialType = "restaurant"
	CommercialHotel      CommercialType = "hotel"
	CommercialOther      CommercialType = "other"
)

func (c CommercialType) Valid() bool {
	switch c {
	case CommercialOffice, CommercialRetail, CommercialWarehouse, CommercialIndustrial,
		CommercialRestaurant, CommercialHotel, CommercialOther:
		return true
	}
	return false
}

type Topography string

const (
	TopographyFlat        Topography = "flat"
	TopographySlightSlope Topography = "slightSlope"
	TopographySteep       Topography = "steep"
	TopographyIrregular   Topography = "irregular"
)

func (t Topography) Valid() bool {
	switch t {
	case TopographyFlat, TopographySlightSlope, TopographySteep, TopographyIrregular:
		return true
	}
	return false
}

type LandType string

const (
	LandResidential LandType = "residential"
	LandCommercial  LandType = "commercial"
	LandIndustrial  LandType = "industrial"
	LandRural       LandType = "rural"
	LandMixed       LandType = "mixed"
)

func (t LandType) Valid() bool {
	switch t {
	case LandResidential, LandCommercial, LandIndustrial, LandRural, LandMixed:
		return true
	}
	return false
}

type AgriculturalPotential string

const (
	PotentialHigh         AgriculturalPotential = "high"
	PotentialMedium       AgriculturalPotential = "medium"
	PotentialLowFertility AgriculturalPotential = "low_fertility"
	PotentialSandy        AgriculturalPotential = "sandy"
	PotentialClay         AgriculturalPotential = "clay"
	PotentialRocky        AgriculturalPotential = "rocky"
	PotentialMixed        AgriculturalPotential = "mixed"
)

func (p AgriculturalPotential) Valid() bool {
	switch p {
	case PotentialHigh, PotentialMedium, PotentialLowFertility, PotentialSandy,
		PotentialClay, PotentialRocky, PotentialMixed:
		return true
	}
	return false
}
