package geometry

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imovelhub/server/internal/inventory"
	"imovelhub/server/internal/models"
)

func floatPtr(f float64) *float64 {
	return &f
}

func TestBuildDevelopmentMap(t *testing.T) {
	devs := []models.Development{
		{
			ID: 1, Name: "Parque das Flores", City: "Campinas",
			DevelopmentType: models.CondominioVertical, TotalUnits: 10,
			Latitude: floatPtr(-22.9056), Longitude: floatPtr(-47.0608),
		},
		{ID: 2, Name: "Sem Mapa", City: "Campinas", DevelopmentType: models.Casas},
		{
			ID: 3, Name: "Reserva Verde", City: "Valinhos",
			DevelopmentType: models.Loteamento, TotalUnits: 4,
			SalesStatus: models.SalesStatus{Sold: 1, Reserved: 1, Available: 2},
			Latitude:    floatPtr(-22.97), Longitude: floatPtr(-46.99),
		},
	}
	stats := map[uint]inventory.SalesStats{
		1: {Available: 2, Reserved: 2, Sold: 3, Total: 7},
	}

	fc := BuildDevelopmentMap(devs, stats, 7)
	require.Len(t, fc.Features, 2)

	first := fc.Features[0]
	assert.Equal(t, orb.Point{-47.0608, -22.9056}, first.Geometry)
	assert.Equal(t, KindDevelopment, first.Properties["kind"])
	assert.Equal(t, "apartment", first.Properties["category"])
	assert.Equal(t, 50, first.Properties["progress"])
	assert.Len(t, first.Properties["geohash"], 7)
	assert.Equal(t, "6gyt9n5", first.Properties["geohash"])

	second := fc.Features[1]
	assert.Equal(t, "land", second.Properties["category"])
	assert.Equal(t, 50, second.Properties["progress"])

	require.NotNil(t, fc.BBox)
	assert.Equal(t, []float64{-47.0608, -22.97, -46.99, -22.9056}, []float64(fc.BBox))
}

func TestBuildDevelopmentMap_CityCoverage(t *testing.T) {
	devs := []models.Development{
		{ID: 1, City: "Campinas", Latitude: floatPtr(0), Longitude: floatPtr(0)},
		{ID: 2, City: "Campinas", Latitude: floatPtr(0), Longitude: floatPtr(1)},
		{ID: 3, City: "Campinas", Latitude: floatPtr(1), Longitude: floatPtr(1)},
		{ID: 4, City: "Campinas", Latitude: floatPtr(0.5), Longitude: floatPtr(0.5)},
	}

	fc := BuildDevelopmentMap(devs, nil, 5)
	require.Len(t, fc.Features, 5)

	coverage := fc.Features[4]
	assert.Equal(t, KindCoverage, coverage.Properties["kind"])
	assert.Equal(t, 4, coverage.Properties["point_count"])

	polygon, ok := coverage.Geometry.(orb.Polygon)
	require.True(t, ok)
	assert.Len(t, polygon[0], 4)
	assert.True(t, polygon[0].Closed())
}

func TestConvexHull(t *testing.T) {
	assert.Nil(t, ConvexHull([]orb.Point{{0, 0}, {1, 1}}))
	assert.Nil(t, ConvexHull([]orb.Point{{0, 0}, {1, 1}, {2, 2}}), "collinear points have no area")
	assert.Nil(t, ConvexHull([]orb.Point{{0, 0}, {0, 0}, {1, 1}}))

	square := []orb.Point{{0, 0}, {2, 0}, {2, 2}, {0, 2}, {1, 1}}
	hull := ConvexHull(square)
	require.NotNil(t, hull)
	assert.Len(t, hull, 5)
	assert.Equal(t, hull[0], hull[len(hull)-1])
	assert.Equal(t, orb.CCW, hull.Orientation())
}
