package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"imovelhub/server/internal/models"
)

func strPtr(s string) *string {
	return &s
}

func sampleUnits() []models.Unit {
	return []models.Unit{
		{ID: 1, UnitNumber: "Apto 101", Block: strPtr("A"), UnitType: strPtr("2 quartos"), Status: models.UnitAvailable},
		{ID: 2, UnitNumber: "Casa 2", Block: strPtr("B"), Status: models.UnitSold},
		{ID: 3, UnitNumber: "Apto 102", Block: strPtr("A"), UnitType: strPtr("Cobertura"), Status: models.UnitReserved},
		{ID: 4, UnitNumber: "Lote 7", Status: models.UnitAvailable},
	}
}

func unitIDs(units []models.Unit) []uint {
	ids := make([]uint, len(units))
	for i, u := range units {
		ids[i] = u.ID
	}
	return ids
}

func TestFilterUnits_EmptyFiltersIsIdentity(t *testing.T) {
	units := sampleUnits()
	assert.Equal(t, units, FilterUnits(units, "", All))
}

func TestFilterUnits(t *testing.T) {
	tests := []struct {
		name         string
		search       string
		statusFilter string
		expectedIDs  []uint
	}{
		{name: "Case-insensitive unit number", search: "apto", statusFilter: All, expectedIDs: []uint{1, 3}},
		{name: "Upper-case needle", search: "CASA", statusFilter: All, expectedIDs: []uint{2}},
		{name: "Block match", search: "b", statusFilter: All, expectedIDs: []uint{2, 3}},
		{name: "Unit type match", search: "cobert", statusFilter: All, expectedIDs: []uint{3}},
		{name: "Status only", search: "", statusFilter: "available", expectedIDs: []uint{1, 4}},
		{name: "Text and status combined", search: "apto", statusFilter: "reserved", expectedIDs: []uint{3}},
		{name: "No match", search: "galpão", statusFilter: All, expectedIDs: []uint{}},
		{name: "Unknown status matches nothing", search: "", statusFilter: "archived", expectedIDs: []uint{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FilterUnits(sampleUnits(), tt.search, tt.statusFilter)
			assert.Equal(t, tt.expectedIDs, unitIDs(result))
		})
	}
}

func TestFilterUnits_AbsentOptionalFieldsMatchOnlyEmptySearch(t *testing.T) {
	units := []models.Unit{
		{ID: 1, UnitNumber: "101"},
		{ID: 2, UnitNumber: "102", Block: strPtr("Torre Norte")},
	}

	result := FilterUnits(units, "torre", All)
	assert.Equal(t, []uint{2}, unitIDs(result))

	assert.True(t, newTextMatcher("").matchesOptional(nil))
	assert.False(t, newTextMatcher("torre").matchesOptional(nil))
	assert.True(t, newTextMatcher("TORRE").matchesOptional(strPtr("Torre Norte")))
}

func TestFilterUnits_Example(t *testing.T) {
	units := []models.Unit{
		{UnitNumber: "Apto 101", Block: strPtr("A")},
		{UnitNumber: "Casa 2", Block: strPtr("B")},
	}

	result := FilterUnits(units, "apto", All)
	assert.Len(t, result, 1)
	assert.Equal(t, "Apto 101", result[0].UnitNumber)
}

func sampleProperties() []models.Property {
	return []models.Property{
		{ID: 1, Title: "Apartamento no Centro", Address: "Rua XV de Novembro, 100", City: "Curitiba", PropertyType: models.PropertyApartment, Status: models.PropertyActive},
		{ID: 2, Title: "Casa com piscina", Address: "Av. Brasil, 20", City: "São Paulo", PropertyType: models.PropertyHouse, Status: models.PropertySold},
		{ID: 3, Title: "Terreno plano", Address: "Estrada Velha", City: "Campinas", PropertyType: models.PropertyLand, Status: models.PropertyActive},
		{ID: 4, Title: "Sala comercial", Address: "Rua Augusta, 500", City: "SÃO PAULO", PropertyType: models.PropertyCommercial, Status: models.PropertyInactive},
	}
}

func propertyIDs(properties []models.Property) []uint {
	ids := make([]uint, len(properties))
	for i, p := range properties {
		ids[i] = p.ID
	}
	return ids
}

func TestFilterProperties(t *testing.T) {
	tests := []struct {
		name         string
		search       string
		typeFilter   string
		statusFilter string
		expectedIDs  []uint
	}{
		{name: "No filters", search: "", typeFilter: All, statusFilter: All, expectedIDs: []uint{1, 2, 3, 4}},
		{name: "Title match", search: "piscina", typeFilter: All, statusFilter: All, expectedIDs: []uint{2}},
		{name: "Address match", search: "augusta", typeFilter: All, statusFilter: All, expectedIDs: []uint{4}},
		{name: "City match with accents and case", search: "são paulo", typeFilter: All, statusFilter: All, expectedIDs: []uint{2, 4}},
		{name: "Type filter", search: "", typeFilter: "land", statusFilter: All, expectedIDs: []uint{3}},
		{name: "Status filter", search: "", typeFilter: All, statusFilter: "active", expectedIDs: []uint{1, 3}},
		{name: "All predicates combined", search: "paulo", typeFilter: "house", statusFilter: "sold", expectedIDs: []uint{2}},
		{name: "Predicates exclude each other", search: "paulo", typeFilter: "house", statusFilter: "active", expectedIDs: []uint{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FilterProperties(sampleProperties(), tt.search, tt.typeFilter, tt.statusFilter)
			assert.Equal(t, tt.expectedIDs, propertyIDs(result))
		})
	}
}

func sampleDevelopments() []models.Development {
	return []models.Development{
		{ID: 1, Name: "Residencial Aurora", City: "Curitiba", DevelopmentType: models.CondominioVertical},
		{ID: 2, Name: "Vila das Casas", City: "Londrina", DevelopmentType: models.Casas},
		{ID: 3, Name: "Loteamento Primavera", City: "Maringá", DevelopmentType: models.Loteamento},
		{ID: 4, Name: "Edifício Apartment Park", City: "Curitiba", DevelopmentType: models.Apartamentos},
		{ID: 5, Name: "Condomínio Jardins", Address: "Rua dos Apartamentos", City: "Cascavel", DevelopmentType: models.CondominioHorizontal},
	}
}

func developmentIDs(developments []models.Development) []uint {
	ids := make([]uint, len(developments))
	for i, d := range developments {
		ids[i] = d.ID
	}
	return ids
}

func TestFilterDevelopments_CategoryMapping(t *testing.T) {
	tests := []struct {
		name        string
		typeFilter  string
		expectedIDs []uint
	}{
		{name: "All", typeFilter: All, expectedIDs: []uint{1, 2, 3, 4, 5}},
		{name: "Apartment covers vertical condos and apartamentos", typeFilter: "apartment", expectedIDs: []uint{1, 4}},
		{name: "House covers horizontal condos and casas", typeFilter: "house", expectedIDs: []uint{2, 5}},
		{name: "Land covers loteamentos", typeFilter: "land", expectedIDs: []uint{3}},
		{name: "Raw development type is not a category", typeFilter: "casas", expectedIDs: []uint{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FilterDevelopments(sampleDevelopments(), "", tt.typeFilter)
			assert.Equal(t, tt.expectedIDs, developmentIDs(result))
		})
	}
}

func TestFilterDevelopments_TextSearch(t *testing.T) {
	result := FilterDevelopments(sampleDevelopments(), "curitiba", All)
	assert.Equal(t, []uint{1, 4}, developmentIDs(result))

	result = FilterDevelopments(sampleDevelopments(), "apartamentos", "house")
	assert.Equal(t, []uint{5}, developmentIDs(result), "address text does not change the category")

	result = FilterDevelopments(sampleDevelopments(), "MARINGÁ", All)
	assert.Equal(t, []uint{3}, developmentIDs(result))
}

func TestDevelopmentCategory(t *testing.T) {
	assert.Equal(t, "apartment", DevelopmentCategory(models.CondominioVertical))
	assert.Equal(t, "apartment", DevelopmentCategory(models.Apartamentos))
	assert.Equal(t, "house", DevelopmentCategory(models.CondominioHorizontal))
	assert.Equal(t, "house", DevelopmentCategory(models.Casas))
	assert.Equal(t, "land", DevelopmentCategory(models.Loteamento))
	assert.Equal(t, "", DevelopmentCategory("galpao"))
}
