package service

import (
	"context"
	"sort"
	"strings"

	apperrors "github.com/fraudx/fraudx/internal/errors"
	"github.com/fraudx/fraudx/internal/fraud"
	"github.com/fraudx/fraudx/internal/platform/pagination"
)

var listLimits = pagination.LimitConfig{Default: 50, Max: 200}

// ListAlerts filters, sorts, and windows the alert queue.
//
// Filters combine conjunctively. Sorting is stable over the filtered
// snapshot, so ties keep insertion order (newest first). The cursor is the
// id of the last record of the previous page; an absent or unknown cursor
// starts from the beginning of the filtered set.
func (s *Service) ListAlerts(ctx context.Context, filters fraud.FilterOptions, page fraud.PageParams) ([]fraud.Alert, fraud.PageInfo, error) {
	sortBy, err := pagination.NormalizeSortBy(page.SortBy, pagination.SortConfig{
		Default: "timestamp",
		Allowed: SortFields(),
	})
	if err != nil {
		return nil, fraud.PageInfo{}, apperrors.Wrap(apperrors.CodeAlertInvalidSortField, err.Error(), err)
	}
	order, err := fraud.ParseSortOrder(string(page.SortOrder))
	if err != nil {
		return nil, fraud.PageInfo{}, err
	}
	if filters.RiskScoreMin != nil && filters.RiskScoreMax != nil && *filters.RiskScoreMin > *filters.RiskScoreMax {
		return nil, fraud.PageInfo{}, apperrors.New(apperrors.CodeAlertInvalidRiskRange, "riskScoreMin exceeds riskScoreMax")
	}
	limit := pagination.ClampLimit(page.Limit, listLimits)

	if err := s.delay(ctx); err != nil {
		return nil, fraud.PageInfo{}, err
	}

	s.mu.Lock()
	filtered := make([]fraud.Alert, 0, len(s.alerts))
	for _, alert := range s.alerts {
		if matches(alert, filters) {
			filtered = append(filtered, alert)
		}
	}
	s.mu.Unlock()

	cmp := comparator(sortBy)
	descending := order == fraud.SortDesc
	sort.SliceStable(filtered, func(i, j int) bool {
		c := cmp(filtered[i], filtered[j])
		if descending {
			return c > 0
		}
		return c < 0
	})

	start := 0
	if page.Cursor != "" {
		for i, alert := range filtered {
			if alert.ID == page.Cursor {
				start = i + 1
				break
			}
		}
	}
	if start > len(filtered) {
		start = len(filtered)
	}

	end := start + limit
	if end > len(filtered) {
		end = len(filtered)
	}
	window := make([]fraud.Alert, end-start)
	copy(window, filtered[start:end])

	info := fraud.PageInfo{
		HasMore: end < len(filtered),
		Total:   len(filtered),
	}
	if len(window) > 0 {
		info.Cursor = window[len(window)-1].ID
	}
	return window, info, nil
}

func matches(alert fraud.Alert, filters fraud.FilterOptions) bool {
	if len(filters.Status) > 0 && !containsStatus(filters.Status, alert.Status) {
		return false
	}
	if len(filters.Priority) > 0 && !containsPriority(filters.Priority, alert.Priority) {
		return false
	}
	if filters.RiskScoreMin != nil && alert.RiskScore < *filters.RiskScoreMin {
		return false
	}
	if filters.RiskScoreMax != nil && alert.RiskScore > *filters.RiskScoreMax {
		return false
	}
	return true
}

func containsStatus(set []fraud.Status, s fraud.Status) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}

func containsPriority(set []fraud.Priority, p fraud.Priority) bool {
	for _, v := range set {
		if v == p {
			return true
		}
	}
	return false
}

// comparator returns a three-way compare for the given sort field. Priority
// compares by rank rather than lexically; an unset assignee compares low.
func comparator(field string) func(a, b fraud.Alert) int {
	switch field {
	case "amount":
		return func(a, b fraud.Alert) int { return compareFloat(a.Amount, b.Amount) }
	case "riskScore":
		return func(a, b fraud.Alert) int { return a.RiskScore - b.RiskScore }
	case "status":
		return func(a, b fraud.Alert) int { return strings.Compare(string(a.Status), string(b.Status)) }
	case "priority":
		return func(a, b fraud.Alert) int { return a.Priority.Rank() - b.Priority.Rank() }
	case "merchantName":
		return func(a, b fraud.Alert) int { return strings.Compare(a.MerchantName, b.MerchantName) }
	case "assignedTo":
		return func(a, b fraud.Alert) int { return strings.Compare(a.AssignedTo, b.AssignedTo) }
	case "id":
		return func(a, b fraud.Alert) int { return strings.Compare(a.ID, b.ID) }
	default: // timestamp
		return func(a, b fraud.Alert) int { return a.Timestamp.Compare(b.Timestamp) }
	}
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
