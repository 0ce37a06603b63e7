// Package inventory computes the sales mirror of a development and filters
// unit, property and development collections for the listing views.
//
// Every function here is pure: it only reads its arguments and never fails.
package inventory

import (
	"imovelhub/server/internal/models"
)

// All is the categorical filter value that disables a predicate
const All = "all"

// SalesStats is the available/reserved/sold breakdown of a unit collection.
// Total is the length of the collection, not a development's TotalUnits.
type SalesStats struct {
	Available int `json:"available"`
	Reserved  int `json:"reserved"`
	Sold      int `json:"sold"`
	Total     int `json:"total"`
}

// ComputeSalesStats partitions units by status
func ComputeSalesStats(units []models.Unit) SalesStats {
	stats := SalesStats{Total: len(units)}
	for _, u := range units {
		switch u.Status {
		case models.UnitReserved:
			stats.Reserved++
		case models.UnitSold:
			stats.Sold++
		default:
			// Empty status is the creation default.
			stats.Available++
		}
	}
	return stats
}

// FromSalesStatus turns a development's cached mirror into stats
func FromSalesStatus(s models.SalesStatus) SalesStats {
	return SalesStats{
		Available: s.Available,
		Reserved:  s.Reserved,
		Sold:      s.Sold,
		Total:     s.Available + s.Reserved + s.Sold,
	}
}

// SalesStatus converts stats into the cached triple stored on a development
func (s SalesStats) SalesStatus() models.SalesStatus {
	return models.SalesStatus{
		Available: s.Available,
		Reserved:  s.Reserved,
		Sold:      s.Sold,
	}
}

// SalesProgressPercentage returns floor((sold+reserved)/total*100), or 0 when
// total is not positive. Values are truncated, never rounded: 33.9% is 33.
func SalesProgressPercentage(sold, reserved, total int) int {
	if total <= 0 {
		return 0
	}
	return (sold + reserved) * 100 / total
}

// DevelopmentProgress is the sell-through shown for a development. The
// numerator comes from the live unit stats and the denominator is always the
// development's TotalUnits, which may differ from stats.Total.
func DevelopmentProgress(dev *models.Development, stats SalesStats) int {
	return SalesProgressPercentage(stats.Sold, stats.Reserved, dev.TotalUnits)
}

// PropertySummary counts standalone listings per status for the dashboard
type PropertySummary struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Reserved  int `json:"reserved"`
	Sold      int `json:"sold"`
	Inactive  int `json:"inactive"`
	Published int `json:"published"`
}

func SummarizeProperties(properties []models.Property) PropertySummary {
	summary := PropertySummary{Total: len(properties)}
	for _, p := range properties {
		switch p.Status {
		case models.PropertyReserved:
			summary.Reserved++
		case models.PropertySold:
			summary.Sold++
		case models.PropertyInactive:
			summary.Inactive++
		default:
			summary.Active++
		}
		if p.Published {
			summary.Published++
		}
	}
	return summary
}
