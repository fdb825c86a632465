// file: internals/features/school/grading/grading_systems/service/band_rules_test.go
package service

import "testing"

// Bands submitted highest-first, the way the admin UI sends them for display.
func sampleBands() []Band {
	return []Band{
		{GradeName: "A", MinPercentage: 80, MaxPercentage: 100, Points: 4},
		{GradeName: "B", MinPercentage: 60, MaxPercentage: 79, Points: 3},
		{GradeName: "C", MinPercentage: 40, MaxPercentage: 59, Points: 2},
		{GradeName: "F", MinPercentage: 0, MaxPercentage: 39, Points: 0},
	}
}

func TestValidateBands(t *testing.T) {
	tests := []struct {
		name    string
		bands   []Band
		wantErr string
	}{
		{
			name:  "valid set submitted highest-first",
			bands: sampleBands(),
		},
		{
			name: "touching edges are allowed",
			bands: []Band{
				{GradeName: "Fail", MinPercentage: 0, MaxPercentage: 50, Points: 0},
				{GradeName: "Pass", MinPercentage: 50, MaxPercentage: 100, Points: 1},
			},
		},
		{
			name:    "overlapping band rejected regardless of input order",
			bands:   append(sampleBands(), Band{GradeName: "B+", MinPercentage: 70, MaxPercentage: 85, Points: 3.5}),
			wantErr: "overlapping ranges",
		},
		{
			name: "min equal to max",
			bands: []Band{
				{GradeName: "A", MinPercentage: 50, MaxPercentage: 50, Points: 4},
			},
			wantErr: "min must be less than max",
		},
		{
			name: "min greater than max",
			bands: []Band{
				{GradeName: "A", MinPercentage: 90, MaxPercentage: 80, Points: 4},
			},
			wantErr: "min must be less than max",
		},
		{
			name:    "empty set",
			bands:   nil,
			wantErr: "at least one grade band is required",
		},
		{
			name: "blank grade name",
			bands: []Band{
				{GradeName: "  ", MinPercentage: 0, MaxPercentage: 100, Points: 4},
			},
			wantErr: "grade_name is required",
		},
		{
			name: "percentage above 100",
			bands: []Band{
				{GradeName: "A", MinPercentage: 80, MaxPercentage: 110, Points: 4},
			},
			wantErr: "percentages must be within 0-100",
		},
		{
			name: "negative points",
			bands: []Band{
				{GradeName: "F", MinPercentage: 0, MaxPercentage: 40, Points: -1},
			},
			wantErr: "points must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBands(tt.bands)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("ValidateBands() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("ValidateBands() = nil, want %q", tt.wantErr)
			}
			if _, ok := err.(*ValidationError); !ok {
				t.Fatalf("ValidateBands() error type = %T, want *ValidationError", err)
			}
			if err.Error() != tt.wantErr {
				t.Fatalf("ValidateBands() = %q, want %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestResolveGrade(t *testing.T) {
	bands := sampleBands()

	tests := []struct {
		name        string
		percentage  float64
		wantGrade   string
		wantPoints  float64
		wantMatched bool
	}{
		{"exact lower bound of top band", 80, "A", 4, true},
		{"upper edge", 100, "A", 4, true},
		{"inside middle band", 65, "B", 3, true},
		{"inclusive max", 59, "C", 2, true},
		{"zero", 0, "F", 0, true},
		{"gap between bands falls back to failing grade", 39.9, "F", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grade, points, matched := ResolveGrade(tt.percentage, bands)
			if grade != tt.wantGrade || points != tt.wantPoints || matched != tt.wantMatched {
				t.Fatalf("ResolveGrade(%v) = (%q, %v, %v), want (%q, %v, %v)",
					tt.percentage, grade, points, matched, tt.wantGrade, tt.wantPoints, tt.wantMatched)
			}
		})
	}
}

func TestResolveGradeNoBands(t *testing.T) {
	grade, points, matched := ResolveGrade(50, nil)
	if grade != GradeUnclassified || points != 0 || matched {
		t.Fatalf("ResolveGrade with no bands = (%q, %v, %v), want (%q, 0, false)",
			grade, points, matched, GradeUnclassified)
	}
}

// When write-time validation was bypassed and two bands contain the
// percentage, the lowest min wins — deterministically, never an error.
func TestResolveGradeOverlapTieBreak(t *testing.T) {
	bands := []Band{
		{GradeName: "Y", MinPercentage: 40, MaxPercentage: 80, Points: 2},
		{GradeName: "X", MinPercentage: 0, MaxPercentage: 50, Points: 1},
	}
	grade, points, matched := ResolveGrade(45, bands)
	if grade != "X" || points != 1 || !matched {
		t.Fatalf("ResolveGrade(45) = (%q, %v, %v), want (X, 1, true)", grade, points, matched)
	}
}
