package inventory

import (
	"strings"

	"golang.org/x/text/cases"

	"imovelhub/server/internal/models"
)

// developmentCategories maps the coarse type filter used by the listing
// views onto the development types it covers.
var developmentCategories = map[string][]models.DevelopmentType{
	"apartment": {models.CondominioVertical, models.Apartamentos},
	"house":     {models.CondominioHorizontal, models.Casas},
	"land":      {models.Loteamento},
}

// DevelopmentCategory returns the coarse category of a development type,
// or an empty string for unknown types.
func DevelopmentCategory(t models.DevelopmentType) string {
	for category, types := range developmentCategories {
		for _, candidate := range types {
			if candidate == t {
				return category
			}
		}
	}
	return ""
}

// matchesCategory reports whether t falls under typeFilter. Unknown filter
// values match nothing.
func matchesCategory(t models.DevelopmentType, typeFilter string) bool {
	if typeFilter == All {
		return true
	}
	for _, candidate := range developmentCategories[typeFilter] {
		if candidate == t {
			return true
		}
	}
	return false
}

// textMatcher does case-insensitive substring matching. It uses Unicode case
// folding so "SÃO" matches "são".
type textMatcher struct {
	needle string
	caser  cases.Caser
}

func newTextMatcher(search string) *textMatcher {
	m := &textMatcher{caser: cases.Fold()}
	m.needle = m.caser.String(search)
	return m
}

func (m *textMatcher) matches(field string) bool {
	return strings.Contains(m.caser.String(field), m.needle)
}

// matchesOptional: an absent field only matches the empty search
func (m *textMatcher) matchesOptional(field *string) bool {
	if field == nil {
		return m.needle == ""
	}
	return m.matches(*field)
}

// FilterUnits keeps the units whose number, block or type contains search
// and whose status equals statusFilter (or any status for "all").
func FilterUnits(units []models.Unit, search string, statusFilter string) []models.Unit {
	m := newTextMatcher(search)
	filtered := make([]models.Unit, 0, len(units))
	for _, u := range units {
		if statusFilter != All && string(u.Status) != statusFilter {
			continue
		}
		if !m.matches(u.UnitNumber) && !m.matchesOptional(u.Block) && !m.matchesOptional(u.UnitType) {
			continue
		}
		filtered = append(filtered, u)
	}
	return filtered
}

// FilterProperties keeps the properties whose title, address or city contains
// search and whose type and status pass their filters.
func FilterProperties(properties []models.Property, search, typeFilter, statusFilter string) []models.Property {
	m := newTextMatcher(search)
	filtered := make([]models.Property, 0, len(properties))
	for _, p := range properties {
		if typeFilter != All && string(p.PropertyType) != typeFilter {
			continue
		}
		if statusFilter != All && string(p.Status) != statusFilter {
			continue
		}
		if !m.matches(p.Title) && !m.matches(p.Address) && !m.matches(p.City) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

// FilterDevelopments keeps the developments whose name, address or city
// contains search and whose type belongs to the typeFilter category.
func FilterDevelopments(developments []models.Development, search, typeFilter string) []models.Development {
	m := newTextMatcher(search)
	filtered := make([]models.Development, 0, len(developments))
	for _, d := range developments {
		if !matchesCategory(d.DevelopmentType, typeFilter) {
			continue
		}
		if !m.matches(d.Name) && !m.matches(d.Address) && !m.matches(d.City) {
			continue
		}
		filtered = append(filtered, d)
	}
	return filtered
}
