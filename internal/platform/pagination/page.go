// Package pagination normalizes list-endpoint paging inputs.
package pagination

import "fmt"

// LimitConfig configures page size normalization.
type LimitConfig struct {
	Default int
	Max     int
}

// SortConfig configures sort field validation.
type SortConfig struct {
	Default string
	Allowed []string
}

// ClampLimit applies defaults and caps for page sizes.
func ClampLimit(value int, cfg LimitConfig) int {
	limit := value
	if limit <= 0 {
		limit = cfg.Default
	}
	if cfg.Max > 0 && limit > cfg.Max {
		limit = cfg.Max
	}
	if limit <= 0 {
		limit = 1
	}
	return limit
}

// NormalizeSortBy validates a sort field and applies defaults.
func NormalizeSortBy(sortBy string, cfg SortConfig) (string, error) {
	if sortBy == "" {
		return cfg.Default, nil
	}
	for _, allowed := range cfg.Allowed {
		if sortBy == allowed {
			return sortBy, nil
		}
	}
	return "", fmt.Errorf("invalid sort field: %s", sortBy)
}
