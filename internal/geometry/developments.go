// Package geometry builds the GeoJSON layers of the developments map.
package geometry

import (
	"sort"

	"github.com/mmcloughlin/geohash"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"imovelhub/server/internal/inventory"
	"imovelhub/server/internal/models"
)

const (
	KindDevelopment = "development"
	KindCoverage    = "coverage"

	maxGeohashPrecision = 12
)

// BuildDevelopmentMap returns one Point feature per development that has
// coordinates, followed by a coverage polygon per city with at least three
// non-collinear developments. Stats missing from statsByID fall back to the
// development's cached sales mirror.
func BuildDevelopmentMap(devs []models.Development, statsByID map[uint]inventory.SalesStats, precision uint) *geojson.FeatureCollection {
	if precision == 0 || precision > maxGeohashPrecision {
		precision = maxGeohashPrecision
	}

	fc := geojson.NewFeatureCollection()
	var points orb.MultiPoint
	byCity := make(map[string][]orb.Point)

	for i := range devs {
		dev := &devs[i]
		if !dev.HasCoordinates() {
			continue
		}

		stats, ok := statsByID[dev.ID]
		if !ok {
			stats = inventory.FromSalesStatus(dev.SalesStatus)
		}

		point := orb.Point{*dev.Longitude, *dev.Latitude}
		feature := geojson.NewFeature(point)
		feature.ID = dev.ID
		feature.Properties = geojson.Properties{
			"kind":                KindDevelopment,
			"id":                  dev.ID,
			"name":                dev.Name,
			"city":                dev.City,
			"development_type":    dev.DevelopmentType,
			"category":            inventory.DevelopmentCategory(dev.DevelopmentType),
			"construction_status": dev.ConstructionStatus,
			"geohash":             geohash.EncodeWithPrecision(*dev.Latitude, *dev.Longitude, precision),
			"available":           stats.Available,
			"reserved":            stats.Reserved,
			"sold":                stats.Sold,
			"total_units":         dev.TotalUnits,
			"progress":            inventory.DevelopmentProgress(dev, stats),
		}
		fc.Append(feature)

		points = append(points, point)
		if dev.City != "" {
			byCity[dev.City] = append(byCity[dev.City], point)
		}
	}

	cities := make([]string, 0, len(byCity))
	for city := range byCity {
		cities = append(cities, city)
	}
	sort.Strings(cities)

	for _, city := range cities {
		hull := ConvexHull(byCity[city])
		if hull == nil {
			continue
		}
		feature := geojson.NewFeature(orb.Polygon{hull})
		feature.Properties = geojson.Properties{
			"kind":        KindCoverage,
			"city":        city,
			"point_count": len(byCity[city]),
		}
		fc.Append(feature)
	}

	if len(points) > 0 {
		fc.BBox = geojson.NewBBox(points.Bound())
	}

	return fc
}

func cross(o, a, b orb.Point) float64 {
	return (a[0]-o[0])*(b[1]-o[1]) - (a[1]-o[1])*(b[0]-o[0])
}

// ConvexHull returns the closed counter-clockwise hull of points, or nil
// when fewer than three distinct non-collinear points are given
func ConvexHull(points []orb.Point) orb.Ring {
	pts := make([]orb.Point, len(points))
	copy(pts, points)
	sort.Slice(pts, func(i, j int) bool {
		if pts[i][0] == pts[j][0] {
			return pts[i][1] < pts[j][1]
		}
		return pts[i][0] < pts[j][0]
	})

	unique := pts[:0]
	for i, p := range pts {
		if i == 0 || !p.Equal(pts[i-1]) {
			unique = append(unique, p)
		}
	}
	if len(unique) < 3 {
		return nil
	}

	// Monotone chain
	hull := make([]orb.Point, 0, 2*len(unique))
	for _, p := range unique {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	lower := len(hull) + 1
	for i := len(unique) - 2; i >= 0; i-- {
		p := unique[i]
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}

	// hull ends with the first point, closing the ring
	if len(hull) < 4 {
		return nil
	}
	return orb.Ring(hull)
}
