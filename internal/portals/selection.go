// Package portals handles which listing portals a property is syndicated to
// and the per-portal overrides of its advertisement.
package portals

import "imovelhub/server/internal/models"

// IsSelected reports whether id is in the selection
func IsSelected(selected []string, id string) bool {
	for _, s := range selected {
		if s == id {
			return true
		}
	}
	return false
}

// SelectAll returns every catalog portal id in catalog order
func SelectAll(catalog []models.Portal) []string {
	ids := make([]string, len(catalog))
	for i, p := range catalog {
		ids[i] = p.ID
	}
	return ids
}

// SelectNone returns an empty selection
func SelectNone() []string {
	return []string{}
}

// Toggle adds id when absent and removes it when present. The result keeps
// catalog order and drops ids that are not in the catalog.
func Toggle(catalog []models.Portal, selected []string, id string) []string {
	adding := !IsSelected(selected, id)
	result := make([]string, 0, len(selected)+1)
	for _, p := range catalog {
		if p.ID == id {
			if adding {
				result = append(result, p.ID)
			}
			continue
		}
		if IsSelected(selected, p.ID) {
			result = append(result, p.ID)
		}
	}
	return result
}

// Normalize dedupes a selection, keeps catalog order and reports the ids
// that are not part of the catalog
func Normalize(catalog []models.Portal, selected []string) (normalized []string, unknown []string) {
	normalized = make([]string, 0, len(selected))
	for _, p := range catalog {
		if IsSelected(selected, p.ID) {
			normalized = append(normalized, p.ID)
		}
	}
	for _, id := range selected {
		if !IsSelected(normalized, id) && !IsSelected(unknown, id) {
			unknown = append(unknown, id)
		}
	}
	return normalized, unknown
}
