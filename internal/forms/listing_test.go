package forms

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imovelhub/server/internal/models"
)

func validProperty() models.Property {
	return models.Property{
		Title:           "Casa térrea",
		PropertyType:    models.PropertyHouse,
		TransactionType: models.TransactionSale,
		Price:           decimal.NewFromInt(500000),
		Area:            decimal.NewFromInt(120),
	}
}

func TestValidateProperty(t *testing.T) {
	p := validProperty()
	floor := 3
	p.Apartment.Floor = &floor
	p.House.IsGated = true

	require.NoError(t, ValidateProperty(&p))
	assert.Equal(t, models.PropertyActive, p.Status)
	assert.Nil(t, p.Apartment.Floor, "apartment group is cleared for houses")
	assert.True(t, p.House.IsGated)
}

func TestValidateProperty_Errors(t *testing.T) {
	negative := -1
	tests := []struct {
		name   string
		mutate func(p *models.Property)
		field  string
	}{
		{name: "Missing title", mutate: func(p *models.Property) { p.Title = " " }, field: "title"},
		{name: "Unknown type", mutate: func(p *models.Property) { p.PropertyType = "castle" }, field: "property_type"},
		{name: "Unknown transaction", mutate: func(p *models.Property) { p.TransactionType = "swap" }, field: "transaction_type"},
		{name: "Unknown status", mutate: func(p *models.Property) { p.Status = "archived" }, field: "status"},
		{name: "Zero price", mutate: func(p *models.Property) { p.Price = decimal.Zero }, field: "price"},
		{name: "Area below one", mutate: func(p *models.Property) { p.Area = decimal.RequireFromString("0.5") }, field: "area"},
		{name: "Negative bedrooms", mutate: func(p *models.Property) { p.Bedrooms = &negative }, field: "bedrooms"},
		{name: "Bad house condition", mutate: func(p *models.Property) { p.House.Condition = "ruined" }, field: "house.condition"},
		{
			name: "Bad topography",
			mutate: func(p *models.Property) {
				p.PropertyType = models.PropertyLand
				p.Land.Topography = "mountain"
			},
			field: "land.topography",
		},
		{
			name: "Bad agricultural potential",
			mutate: func(p *models.Property) {
				p.PropertyType = models.PropertyRural
				p.Rural.AgriculturalPotential = "volcanic"
			},
			field: "rural.agricultural_potential",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProperty()
			tt.mutate(&p)
			err := ValidateProperty(&p)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestValidateProperty_IgnoresOtherTypeEnums(t *testing.T) {
	p := validProperty()
	p.Land.Topography = "mountain"
	assert.NoError(t, ValidateProperty(&p), "land fields of a house are cleared, not validated")
}

func TestValidateDevelopment(t *testing.T) {
	d := models.Development{
		Name:               " Residencial Aurora ",
		DevelopmentType:    models.CondominioVertical,
		ConstructionStatus: models.EmConstrucao,
		TotalUnits:         48,
		Amenities:          []string{"piscina", "academia", "piscina", " "},
	}
	require.NoError(t, ValidateDevelopment(&d))
	assert.Equal(t, "Residencial Aurora", d.Name)
	assert.Equal(t, []string{"piscina", "academia"}, []string(d.Amenities))

	d.PriceRange.Min = decimal.NewNullDecimal(decimal.NewFromInt(500000))
	d.PriceRange.Max = decimal.NewNullDecimal(decimal.NewFromInt(300000))
	assert.Error(t, ValidateDevelopment(&d))

	d.PriceRange = models.PriceRange{}
	d.DevelopmentType = "apartment"
	assert.Error(t, ValidateDevelopment(&d))

	d.DevelopmentType = models.Casas
	d.TotalUnits = -1
	assert.Error(t, ValidateDevelopment(&d))

	d.TotalUnits = 0
	lat := -25.43
	d.Latitude = &lat
	assert.Error(t, ValidateDevelopment(&d))
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"João da Silva Imóveis", "joao-da-silva-imoveis"},
		{"  Ana  Paula ", "ana-paula"},
		{"Corretora São José & Cia.", "corretora-sao-jose-cia"},
		{"already-a-slug", "already-a-slug"},
		{"!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Slugify(tt.input))
		})
	}
}

func TestValidateAgent(t *testing.T) {
	a := models.Agent{Name: "Márcia Lopes"}
	require.NoError(t, ValidateAgent(&a))
	assert.Equal(t, "marcia-lopes", a.Slug)

	a = models.Agent{Name: "Márcia Lopes", Slug: "Márcia Corretora"}
	require.NoError(t, ValidateAgent(&a))
	assert.Equal(t, "marcia-corretora", a.Slug)

	assert.Error(t, ValidateAgent(&models.Agent{Name: ""}))
}
