package forms

import (
	"fmt"
	"strings"

	"imovelhub/server/internal/models"
)

// UnitInput is the "add unit" payload as the editor sends it
type UnitInput struct {
	UnitNumber  string      `json:"unit_number"`
	Block       string      `json:"block"`
	Floor       NumberField `json:"floor"`
	UnitType    string      `json:"unit_type"`
	Bedrooms    NumberField `json:"bedrooms"`
	Bathrooms   NumberField `json:"bathrooms"`
	Area        NumberField `json:"area"`
	PrivateArea NumberField `json:"private_area"`
	Price       NumberField `json:"price"`
	Status      string      `json:"status"`
}

// ToUnit validates the input and builds a unit of the given development.
// A unit needs a unit number and a positive price; status defaults to available.
func (in UnitInput) ToUnit(developmentID uint) (*models.Unit, error) {
	unit := &models.Unit{
		DevelopmentID: developmentID,
		UnitNumber:    strings.TrimSpace(in.UnitNumber),
		Block:         optionalString(in.Block),
		UnitType:      optionalString(in.UnitType),
		Status:        models.UnitAvailable,
	}
	if unit.UnitNumber == "" {
		return nil, invalid("unit_number", "is required")
	}

	price, err := ParseOptionalDecimal(string(in.Price))
	if err != nil {
		return nil, invalid("price", "%v", err)
	}
	if !price.Valid || !price.Decimal.IsPositive() {
		return nil, invalid("price", "must be greater than zero")
	}
	unit.Price = price.Decimal

	if unit.Floor, err = ParseOptionalInt(string(in.Floor)); err != nil {
		return nil, invalid("floor", "%v", err)
	}

	counts := []struct {
		field string
		raw   NumberField
		dst   **int
	}{
		{"bedrooms", in.Bedrooms, &unit.Bedrooms},
		{"bathrooms", in.Bathrooms, &unit.Bathrooms},
	}
	for _, c := range counts {
		v, err := ParseOptionalInt(string(c.raw))
		if err != nil {
			return nil, invalid(c.field, "%v", err)
		}
		if v != nil && *v < 0 {
			return nil, invalid(c.field, "must not be negative")
		}
		*c.dst = v
	}

	if unit.Area, err = ParseOptionalDecimal(string(in.Area)); err != nil {
		return nil, invalid("area", "%v", err)
	}
	if unit.Area.Valid && !unit.Area.Decimal.IsPositive() {
		return nil, invalid("area", "must be greater than zero")
	}
	if unit.PrivateArea, err = ParseOptionalDecimal(string(in.PrivateArea)); err != nil {
		return nil, invalid("private_area", "%v", err)
	}
	if unit.PrivateArea.Valid && !unit.PrivateArea.Decimal.IsPositive() {
		return nil, invalid("private_area", "must be greater than zero")
	}

	if in.Status != "" {
		status, err := ParseUnitStatus(in.Status)
		if err != nil {
			return nil, err
		}
		unit.Status = status
	}

	return unit, nil
}

// StatusPatch is the body of a unit status update. Any status may move to
// any other status.
type StatusPatch struct {
	Status string `json:"status"`
}

func (p StatusPatch) Validate() (models.UnitStatus, error) {
	return ParseUnitStatus(p.Status)
}

func ParseUnitStatus(raw string) (models.UnitStatus, error) {
	status := models.UnitStatus(strings.TrimSpace(raw))
	if !status.Valid() {
		return "", invalid("status", "must be one of available, reserved, sold")
	}
	return status, nil
}

// BulkUnitsInput adds many units to a development at once
type BulkUnitsInput struct {
	Units []UnitInput `json:"units"`
}

// ToUnits validates every entry and reports the first failure by index
func (in BulkUnitsInput) ToUnits(developmentID uint) ([]*models.Unit, error) {
	if len(in.Units) == 0 {
		return nil, invalid("units", "must contain at least one unit")
	}
	units := make([]*models.Unit, 0, len(in.Units))
	for i, input := range in.Units {
		unit, err := input.ToUnit(developmentID)
		if err != nil {
			if verr, ok := err.(*ValidationError); ok {
				verr.Field = fmt.Sprintf("units[%d].%s", i, verr.Field)
			}
			return nil, err
		}
		units = append(units, unit)
	}
	return units, nil
}
