package persistence

import (
	"strings"

	"github.com/clubfinanzas/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// ClubSortFields contains allowed sort fields for clubs
var ClubSortFields = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"slug":       true,
	"plan":       true,
}

// UserSortFields contains allowed sort fields for users
var UserSortFields = map[string]bool{
	"created_at":    true,
	"updated_at":    true,
	"name":          true,
	"email":         true,
	"role":          true,
	"last_login_at": true,
}

// MemberSortFields contains allowed sort fields for members
var MemberSortFields = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"status":     true,
	"dues_debt":  true,
}

// CampaignSortFields contains allowed sort fields for campaigns
var CampaignSortFields = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"goal":       true,
	"status":     true,
	"close_date": true,
}

// ContributionSortFields contains allowed sort fields for contributions
var ContributionSortFields = map[string]bool{
	"created_at":  true,
	"amount":      true,
	"member_name": true,
	"status":      true,
}

// ExpenseSortFields contains allowed sort fields for expenses
var ExpenseSortFields = map[string]bool{
	"created_at": true,
	"date":       true,
	"amount":     true,
	"concept":    true,
	"category":   true,
}

// IncomeSortFields contains allowed sort fields for income
var IncomeSortFields = map[string]bool{
	"created_at": true,
	"date":       true,
	"amount":     true,
	"concept":    true,
	"source":     true,
}

// DebtSortFields contains allowed sort fields for debts
var DebtSortFields = map[string]bool{
	"created_at":       true,
	"updated_at":       true,
	"original_amount":  true,
	"remaining_amount": true,
	"member_name":      true,
	"status":           true,
}

// AuditSortFields contains allowed sort fields for audit logs
var AuditSortFields = map[string]bool{
	"created_at":  true,
	"action":      true,
	"entity_type": true,
}

// paginate applies whitelisted ordering and the page window to a query.
// A secondary order on id keeps pages stable when the sort key ties.
func paginate(query *gorm.DB, filter shared.Filter, allowed map[string]bool, defaultField string) *gorm.DB {
	filter.Normalize()
	field := ValidateSortField(filter.OrderBy, allowed, defaultField)
	dir := ValidateSortOrder(filter.OrderDir)
	return query.
		Order(field + " " + dir).
		Order("id " + dir).
		Offset(filter.Offset()).
		Limit(filter.PageSize)
}

// likePattern builds a case-insensitive LIKE pattern for LOWER(column) LIKE ?
func likePattern(search string) string {
	return "%" + strings.ToLower(strings.TrimSpace(search)) + "%"
}
