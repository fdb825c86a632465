// file: internals/features/school/grading/grading_systems/service/band_rules.go
package service

import (
	"sort"
	"strings"
)

// GradeUnclassified is the fallback grade for percentages outside every band.
// It counts as the lowest/failing grade and carries zero points.
const GradeUnclassified = "UNCLASSIFIED"

// Band is the pure-logic view of one grade band. Validation and resolution
// work on this shape so they stay usable without a DB.
type Band struct {
	GradeName     string
	MinPercentage float64
	MaxPercentage float64
	Points        float64
}

// ValidateBands checks the structural invariants of a candidate band set.
// Callers may submit bands in any order (the UI submits highest-first for
// display); the overlap rule is checked on the min-ascending sort.
func ValidateBands(bands []Band) error {
	if len(bands) == 0 {
		return NewValidationError("at least one grade band is required")
	}

	for _, b := range bands {
		if strings.TrimSpace(b.GradeName) == "" {
			return NewValidationError("grade_name is required")
		}
		if b.MinPercentage < 0 || b.MaxPercentage > 100 {
			return NewValidationError("percentages must be within 0-100")
		}
		if b.Points < 0 {
			return NewValidationError("points must not be negative")
		}
		// Rule 1: range sanity
		if b.MinPercentage >= b.MaxPercentage {
			return NewValidationError("min must be less than max")
		}
	}

	// Rule 2: no overlap, on the sorted sequence
	sorted := sortBandsAsc(bands)
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].MaxPercentage > sorted[i].MinPercentage {
			return NewValidationError("overlapping ranges")
		}
	}
	return nil
}

// ResolveGrade maps a percentage onto the band whose [min,max] contains it
// (inclusive both ends). With valid bands at most one matches; if write-time
// validation was ever bypassed and two match, the band with the lowest min
// wins — enforcement belongs to write time, not read time. A percentage
// outside every band (below all minimums, or inside an intentional gap)
// falls back to the lowest band's grade with zero points; it never errors,
// so a single ungraded slot cannot abort an aggregation.
func ResolveGrade(percentage float64, bands []Band) (gradeName string, points float64, matched bool) {
	sorted := sortBandsAsc(bands)
	for _, b := range sorted {
		if percentage >= b.MinPercentage && percentage <= b.MaxPercentage {
			return b.GradeName, b.Points, true
		}
	}
	if len(sorted) > 0 {
		return sorted[0].GradeName, 0, false
	}
	return GradeUnclassified, 0, false
}

func sortBandsAsc(bands []Band) []Band {
	sorted := make([]Band, len(bands))
	copy(sorted, bands)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MinPercentage < sorted[j].MinPercentage
	})
	return sorted
}
