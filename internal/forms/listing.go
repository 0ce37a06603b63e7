package forms

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"imovelhub/server/internal/models"
)

// ValidateProperty checks a property payload and keeps only the detail group
// that belongs to its type.
func ValidateProperty(p *models.Property) error {
	p.Title = strings.TrimSpace(p.Title)
	if p.Title == "" {
		return invalid("title", "is required")
	}
	if !p.PropertyType.Valid() {
		return invalid("property_type", "unknown property type %q", p.PropertyType)
	}
	if !p.TransactionType.Valid() {
		return invalid("transaction_type", "unknown transaction type %q", p.TransactionType)
	}
	if p.Status == "" {
		p.Status = models.PropertyActive
	}
	if !p.Status.Valid() {
		return invalid("status", "unknown status %q", p.Status)
	}
	if !p.Price.IsPositive() {
		return invalid("price", "must be greater than zero")
	}
	if p.Area.LessThan(decimal.NewFromInt(1)) {
		return invalid("area", "must be at least 1")
	}

	counts := map[string]*int{
		"bedrooms":       p.Bedrooms,
		"bathrooms":      p.Bathrooms,
		"suites":         p.Suites,
		"parking_spaces": p.ParkingSpaces,
	}
	for field, v := range counts {
		if v != nil && *v < 0 {
			return invalid(field, "must not be negative")
		}
	}

	p.NormalizeTypeFields()
	return validateTypeFields(p)
}

func validateTypeFields(p *models.Property) error {
	switch p.PropertyType {
	case models.PropertyApartment:
		if p.Apartment.Condition != "" && !p.Apartment.Condition.Valid() {
			return invalid("apartment.condition", "unknown condition %q", p.Apartment.Condition)
		}
	case models.PropertyHouse:
		if p.House.Condition != "" && !p.House.Condition.Valid() {
			return invalid("house.condition", "unknown condition %q", p.House.Condition)
		}
	case models.PropertyCommercial:
		if p.Commercial.CommercialType != "" && !p.Commercial.CommercialType.Valid() {
			return invalid("commercial.commercial_type", "unknown commercial type %q", p.Commercial.CommercialType)
		}
		if p.Commercial.Condition != "" && !p.Commercial.Condition.Valid() {
			return invalid("commercial.condition", "unknown condition %q", p.Commercial.Condition)
		}
	case models.PropertyLand:
		if p.Land.Topography != "" && !p.Land.Topography.Valid() {
			return invalid("land.topography", "unknown topography %q", p.Land.Topography)
		}
		if p.Land.LandType != "" && !p.Land.LandType.Valid() {
			return invalid("land.land_type", "unknown land type %q", p.Land.LandType)
		}
	case models.PropertyRural:
		if p.Rural.AgriculturalPotential != "" && !p.Rural.AgriculturalPotential.Valid() {
			return invalid("rural.agricultural_potential", "unknown agricultural potential %q", p.Rural.AgriculturalPotential)
		}
	}
	return nil
}

// ValidateDevelopment checks a development payload and dedupes its amenities
func ValidateDevelopment(d *models.Development) error {
	d.Name = strings.TrimSpace(d.Name)
	if d.Name == "" {
		return invalid("name", "is required")
	}
	if !d.DevelopmentType.Valid() {
		return invalid("development_type", "unknown development type %q", d.DevelopmentType)
	}
	if !d.ConstructionStatus.Valid() {
		return invalid("construction_status", "unknown construction status %q", d.ConstructionStatus)
	}
	if d.TotalUnits < 0 {
		return invalid("total_units", "must not be negative")
	}
	if d.PriceRange.Min.Valid && d.PriceRange.Max.Valid && d.PriceRange.Min.Decimal.GreaterThan(d.PriceRange.Max.Decimal) {
		return invalid("price_range", "min must not exceed max")
	}
	if (d.Latitude == nil) != (d.Longitude == nil) {
		return invalid("latitude", "latitude and longitude must be set together")
	}
	d.Amenities = dedupe(d.Amenities)
	return nil
}

func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// ValidateAgent fills the slug from the name when absent
func ValidateAgent(a *models.Agent) error {
	a.Name = strings.TrimSpace(a.Name)
	if a.Name == "" {
		return invalid("name", "is required")
	}
	if a.Slug == "" {
		a.Slug = Slugify(a.Name)
	} else {
		a.Slug = Slugify(a.Slug)
	}
	if a.Slug == "" {
		return invalid("slug", "must contain letters or digits")
	}
	return nil
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify turns "João da Silva Imóveis" into "joao-da-silva-imoveis"
func Slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(t, s)
	if err != nil {
		plain = s
	}
	slug := nonSlugChars.ReplaceAllString(strings.ToLower(plain), "-")
	return strings.Trim(slug, "-")
}
