package persistence

import "strings"

// ValidateSortOrder maps any user input onto ASC or DESC, defaulting to
// DESC. Sort direction reaches the SQL string unparameterized, so it must
// never pass through unchecked.
func ValidateSortOrder(orderDir string) string {
	if strings.EqualFold(strings.TrimSpace(orderDir), "asc") {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField returns sortField only when the repository's whitelist
// allows it, otherwise defaultField. Same injection concern as the order
// direction: column names are interpolated, not bound.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	if field := strings.TrimSpace(sortField); allowedFields[field] {
		return field
	}
	return defaultField
}
