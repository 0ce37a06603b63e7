package forms

import (
	"github.com/shopspring/decimal"

	"imovelhub/server/internal/models"
)

// PropertyInput is the property editor payload. Numeric fields arrive as
// NumberField and shadow the typed fields of the embedded property.
type PropertyInput struct {
	models.Property

	Price         NumberField `json:"price"`
	Area          NumberField `json:"area"`
	Bedrooms      NumberField `json:"bedrooms"`
	Bathrooms     NumberField `json:"bathrooms"`
	Suites        NumberField `json:"suites"`
	ParkingSpaces NumberField `json:"parking_spaces"`
	CondoFee      NumberField `json:"condo_fee"`
	IPTU          NumberField `json:"iptu"`

	Apartment  ApartmentInput  `json:"apartment"`
	House      HouseInput      `json:"house"`
	Commercial CommercialInput `json:"commercial"`
	Land       LandInput       `json:"land"`
	Rural      RuralInput      `json:"rural"`
}

type ApartmentInput struct {
	models.ApartmentDetails
	Floor         NumberField `json:"floor"`
	TotalFloors   NumberField `json:"total_floors"`
	UnitsPerFloor NumberField `json:"units_per_floor"`
}

type HouseInput struct {
	models.HouseDetails
	LotSize NumberField `json:"lot_size"`
	Stories NumberField `json:"stories"`
}

type CommercialInput struct {
	models.CommercialDetails
	FloorNumber           NumberField `json:"floor_number"`
	MonthlyMaintenanceFee NumberField `json:"monthly_maintenance_fee"`
}

type LandInput struct {
	models.LandDetails
	FrontSize NumberField `json:"front_size"`
	SideSize  NumberField `json:"side_size"`
}

type RuralInput struct {
	models.RuralDetails
	TotalArea      NumberField `json:"total_area"`
	ProductiveArea NumberField `json:"productive_area"`
}

// numberParser collects the first coercion failure by field name
type numberParser struct {
	err error
}

func (p *numberParser) parseInt(field string, raw NumberField, dst **int) {
	if p.err != nil {
		return
	}
	v, err := ParseOptionalInt(string(raw))
	if err != nil {
		p.err = invalid(field, "%v", err)
		return
	}
	*dst = v
}

func (p *numberParser) parseDecimal(field string, raw NumberField, dst *decimal.NullDecimal) {
	if p.err != nil {
		return
	}
	v, err := ParseOptionalDecimal(string(raw))
	if err != nil {
		p.err = invalid(field, "%v", err)
		return
	}
	*dst = v
}

// ToProperty coerces the numeric fields and validates the result with
// ValidateProperty. A blank price or area is treated as zero and rejected.
func (in PropertyInput) ToProperty() (*models.Property, error) {
	p := in.Property
	p.Apartment = in.Apartment.ApartmentDetails
	p.House = in.House.HouseDetails
	p.Commercial = in.Commercial.CommercialDetails
	p.Land = in.Land.LandDetails
	p.Rural = in.Rural.RuralDetails

	var price, area, condoFee, iptu decimal.NullDecimal
	var parser numberParser
	parser.parseDecimal("price", in.Price, &price)
	parser.parseDecimal("area", in.Area, &area)
	parser.parseInt("bedrooms", in.Bedrooms, &p.Bedrooms)
	parser.parseInt("bathrooms", in.Bathrooms, &p.Bathrooms)
	parser.parseInt("suites", in.Suites, &p.Suites)
	parser.parseInt("parking_spaces", in.ParkingSpaces, &p.ParkingSpaces)
	parser.parseDecimal("condo_fee", in.CondoFee, &condoFee)
	parser.parseDecimal("iptu", in.IPTU, &iptu)

	parser.parseInt("apartment.floor", in.Apartment.Floor, &p.Apartment.Floor)
	parser.parseInt("apartment.total_floors", in.Apartment.TotalFloors, &p.Apartment.TotalFloors)
	parser.parseInt("apartment.units_per_floor", in.Apartment.UnitsPerFloor, &p.Apartment.UnitsPerFloor)
	parser.parseDecimal("house.lot_size", in.House.LotSize, &p.House.LotSize)
	parser.parseInt("house.stories", in.House.Stories, &p.House.Stories)
	parser.parseInt("commercial.floor_number", in.Commercial.FloorNumber, &p.Commercial.FloorNumber)
	parser.parseDecimal("commercial.monthly_maintenance_fee", in.Commercial.MonthlyMaintenanceFee, &p.Commercial.MonthlyMaintenanceFee)
	parser.parseDecimal("land.front_size", in.Land.FrontSize, &p.Land.FrontSize)
	parser.parseDecimal("land.side_size", in.Land.SideSize, &p.Land.SideSize)
	parser.parseDecimal("rural.total_area", in.Rural.TotalArea, &p.Rural.TotalArea)
	parser.parseDecimal("rural.productive_area", in.Rural.ProductiveArea, &p.Rural.ProductiveArea)
	if parser.err != nil {
		return nil, parser.err
	}

	p.Price = price.Decimal
	p.Area = area.Decimal
	p.CondoFee = condoFee
	p.IPTU = iptu

	if err := ValidateProperty(&p); err != nil {
		return nil, err
	}
	return &p, nil
}
