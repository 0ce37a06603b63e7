package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotificationFilters_IsUnitAllowed(t *testing.T) {
	tests := []struct {
		name     string
		filters  *NotificationFilters
		unit     Unit
		expected bool
	}{
		{
			name:     "Nil filters allow everything",
			filters:  nil,
			unit:     Unit{DevelopmentID: 1, Status: UnitSold},
			expected: true,
		},
		{
			name:     "Empty filters allow everything",
			filters:  &NotificationFilters{},
			unit:     Unit{DevelopmentID: 1, Status: UnitReserved},
			expected: true,
		},
		{
			name:     "Status filter matches",
			filters:  &NotificationFilters{Statuses: []UnitStatus{UnitSold}},
			unit:     Unit{DevelopmentID: 1, Status: UnitSold},
			expected: true,
		},
		{
			name:     "Status filter rejects",
			filters:  &NotificationFilters{Statuses: []UnitStatus{UnitSold}},
			unit:     Unit{DevelopmentID: 1, Status: UnitReserved},
			expected: false,
		},
		{
			name:     "Development filter rejects",
			filters:  &NotificationFilters{DevelopmentIDs: []uint{2, 3}},
			unit:     Unit{DevelopmentID: 1, Status: UnitSold},
			expected: false,
		},
		{
			name: "Both filters match",
			filters: &NotificationFilters{
				Statuses:       []UnitStatus{UnitReserved, UnitSold},
				DevelopmentIDs: []uint{1},
			},
			unit:     Unit{DevelopmentID: 1, Status: UnitReserved},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.filters.IsUnitAllowed(&tt.unit))
		})
	}
}

func TestProperty_NormalizeTypeFields(t *testing.T) {
	floor := 7
	stories := 2
	p := Property{
		PropertyType: PropertyApartment,
		Apartment:    ApartmentDetails{Floor: &floor, HasElevator: true},
		House:        HouseDetails{Stories: &stories, IsCorner: true},
		Land:         LandDetails{IsCorner: true, Topography: TopographyFlat},
	}

	p.NormalizeTypeFields()

	assert.Equal(t, &floor, p.Apartment.Floor)
	assert.True(t, p.Apartment.HasElevator)
	assert.Equal(t, HouseDetails{}, p.House)
	assert.Equal(t, LandDetails{}, p.Land)
}

func TestEnumValidation(t *testing.T) {
	assert.True(t, UnitReserved.Valid())
	assert.False(t, UnitStatus("archived").Valid())
	assert.True(t, Loteamento.Valid())
	assert.False(t, DevelopmentType("apartment").Valid())
	assert.True(t, EmConstrucao.Valid())
	assert.True(t, PropertyRural.Valid())
	assert.False(t, PropertyStatus("all").Valid())
	assert.True(t, PotentialLowFertility.Valid())
	assert.True(t, TopographySlightSlope.Valid())
}
