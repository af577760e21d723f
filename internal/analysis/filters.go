package analysis

import (
	"strings"

	domainAnalysis "methodcost/domain/analysis"
	"methodcost/domain/project"
)

// ApplyFilters returns the records matching every configured filter.
// Empty filter sets match everything; a zero bound of the date range is
// open on that side.
func ApplyFilters(records []project.Project, f domainAnalysis.Filters) []project.Project {
	if f.IsEmpty() {
		return records
	}

	filtered := make([]project.Project, 0, len(records))
	for _, r := range records {
		if matches(r, f) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

func matches(r project.Project, f domainAnalysis.Filters) bool {
	if len(f.Methodology) > 0 && !containsMethodology(f.Methodology, r.Methodology) {
		return false
	}
	if len(f.Industry) > 0 && !containsFold(f.Industry, r.Industry) {
		return false
	}
	if len(f.Size) > 0 && !containsSize(f.Size, r.Size) {
		return false
	}
	if f.DateRange != nil {
		if !f.DateRange.Start.IsZero() && r.StartDate.Before(f.DateRange.Start) {
			return false
		}
		if !f.DateRange.End.IsZero() && r.StartDate.After(f.DateRange.End) {
			return false
		}
	}
	return true
}

func containsMethodology(set []project.Methodology, m project.Methodology) bool {
	for _, s := range set {
		if s == m {
			return true
		}
	}
	return false
}

func containsSize(set []project.Size, s project.Size) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}

func containsFold(set []string, v string) bool {
	v = strings.TrimSpace(v)
	for _, s := range set {
		if strings.EqualFold(strings.TrimSpace(s), v) {
			return true
		}
	}
	return false
}
