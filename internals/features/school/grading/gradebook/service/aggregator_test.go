// file: internals/features/school/grading/gradebook/service/aggregator_test.go
package service

import (
	"testing"

	gradingService "edupro_backend/internals/features/school/grading/grading_systems/service"
)

func testBands() []gradingService.Band {
	return []gradingService.Band{
		{GradeName: "A", MinPercentage: 80, MaxPercentage: 100, Points: 4},
		{GradeName: "B", MinPercentage: 60, MaxPercentage: 79, Points: 3},
		{GradeName: "C", MinPercentage: 40, MaxPercentage: 59, Points: 2},
		{GradeName: "D", MinPercentage: 33, MaxPercentage: 39, Points: 1},
		{GradeName: "F", MinPercentage: 0, MaxPercentage: 32, Points: 0},
	}
}

func ptr(v float64) *float64 { return &v }

func TestAggregateExcludesUngradedCellsFromGPA(t *testing.T) {
	cells := []MarkCell{
		{ExamName: "Mid Term", SubjectName: "Mathematics", MarksObtained: ptr(80), FullMarks: 100},
		{ExamName: "Mid Term", SubjectName: "Physics", FullMarks: 100}, // not yet marked
		{ExamName: "Mid Term", SubjectName: "English", MarksObtained: ptr(38), FullMarks: 100},
	}

	got := Aggregate(cells, testBands())

	if got.GPA == nil {
		t.Fatal("GPA = nil, want 2.5")
	}
	// (4 + 1) / 2 graded cells; the ungraded slot must not drag it down
	if *got.GPA != 2.5 {
		t.Fatalf("GPA = %v, want 2.5", *got.GPA)
	}
	if len(got.Cells) != 3 {
		t.Fatalf("len(Cells) = %d, want 3 (ungraded cells stay visible)", len(got.Cells))
	}
	if got.Cells[1].Graded {
		t.Fatal("unmarked cell reported as graded")
	}
	if got.Cells[1].Percentage != nil {
		t.Fatal("unmarked cell carries a percentage")
	}
	if got.Cells[0].GradeName != "A" || got.Cells[0].Points != 4 {
		t.Fatalf("cell 0 = (%q, %v), want (A, 4)", got.Cells[0].GradeName, got.Cells[0].Points)
	}
	if got.Cells[2].GradeName != "D" || got.Cells[2].Points != 1 {
		t.Fatalf("cell 2 = (%q, %v), want (D, 1)", got.Cells[2].GradeName, got.Cells[2].Points)
	}
}

func TestAggregateNoGradedCells(t *testing.T) {
	cells := []MarkCell{
		{ExamName: "Final", SubjectName: "Mathematics", FullMarks: 100},
		{ExamName: "Final", SubjectName: "Physics", FullMarks: 100},
	}

	got := Aggregate(cells, testBands())

	if got.GPA != nil {
		t.Fatalf("GPA = %v, want nil when nothing is graded", *got.GPA)
	}
	if got.AveragePercentage != nil {
		t.Fatal("AveragePercentage set with no graded cells")
	}
	if got.OverallGrade != gradingService.GradeUnclassified {
		t.Fatalf("OverallGrade = %q, want %q", got.OverallGrade, gradingService.GradeUnclassified)
	}
}

// The overall grade resolves the mean percentage through the band set;
// it is not an average of the per-cell letters.
func TestAggregateOverallGradeFromMeanPercentage(t *testing.T) {
	cells := []MarkCell{
		{ExamName: "Final", SubjectName: "Mathematics", MarksObtained: ptr(100), FullMarks: 100}, // A
		{ExamName: "Final", SubjectName: "Physics", MarksObtained: ptr(60), FullMarks: 100},      // B
	}

	got := Aggregate(cells, testBands())

	// mean percentage = 80, which lands in the A band
	if got.OverallGrade != "A" || got.OverallPoints != 4 {
		t.Fatalf("overall = (%q, %v), want (A, 4)", got.OverallGrade, got.OverallPoints)
	}
	if got.AveragePercentage == nil || *got.AveragePercentage != 80 {
		t.Fatalf("AveragePercentage = %v, want 80", got.AveragePercentage)
	}
	if got.GPA == nil || *got.GPA != 3.5 {
		t.Fatalf("GPA = %v, want 3.5", got.GPA)
	}
}

// A percentage landing in a gap of the band set still yields a graded cell:
// lowest band's grade with zero points, contributing to the GPA denominator.
func TestAggregateGapPercentageCountsWithZeroPoints(t *testing.T) {
	gapped := []gradingService.Band{
		{GradeName: "F", MinPercentage: 0, MaxPercentage: 39, Points: 0},
		{GradeName: "C", MinPercentage: 40, MaxPercentage: 59, Points: 2},
		{GradeName: "A", MinPercentage: 80, MaxPercentage: 100, Points: 4},
	}
	cells := []MarkCell{
		{ExamName: "Final", SubjectName: "Mathematics", MarksObtained: ptr(70), FullMarks: 100}, // gap
		{ExamName: "Final", SubjectName: "Physics", MarksObtained: ptr(90), FullMarks: 100},     // A
	}

	got := Aggregate(cells, gapped)

	if got.Cells[0].GradeName != "F" || got.Cells[0].Points != 0 || !got.Cells[0].Graded {
		t.Fatalf("gap cell = (%q, %v, graded=%v), want (F, 0, true)",
			got.Cells[0].GradeName, got.Cells[0].Points, got.Cells[0].Graded)
	}
	if got.GPA == nil || *got.GPA != 2 {
		t.Fatalf("GPA = %v, want 2", got.GPA)
	}
	// mean percentage = 80 resolves to A even though one cell fell in a gap
	if got.OverallGrade != "A" {
		t.Fatalf("OverallGrade = %q, want A", got.OverallGrade)
	}
}

// The grade is resolved from the same two-decimal percentage the response
// reports, so a cell showing 40.00 can never carry the grade of 39.996.
func TestAggregateGradeAgreesWithReportedPercentage(t *testing.T) {
	cells := []MarkCell{
		{ExamName: "Quiz", SubjectName: "Mathematics", MarksObtained: ptr(9.999), FullMarks: 25}, // 39.996%
	}

	got := Aggregate(cells, testBands())

	if got.Cells[0].Percentage == nil || *got.Cells[0].Percentage != 40 {
		t.Fatalf("Percentage = %v, want 40", got.Cells[0].Percentage)
	}
	if got.Cells[0].GradeName != "C" {
		t.Fatalf("GradeName = %q, want C (grade of the reported percentage)", got.Cells[0].GradeName)
	}
	if got.AveragePercentage == nil || *got.AveragePercentage != 40 {
		t.Fatalf("AveragePercentage = %v, want 40", got.AveragePercentage)
	}
	if got.OverallGrade != "C" {
		t.Fatalf("OverallGrade = %q, want C", got.OverallGrade)
	}
}

func TestAggregateFractionalRounding(t *testing.T) {
	cells := []MarkCell{
		{ExamName: "Quiz", SubjectName: "Mathematics", MarksObtained: ptr(25), FullMarks: 30}, // 83.333...%
	}

	got := Aggregate(cells, testBands())

	if got.Cells[0].Percentage == nil || *got.Cells[0].Percentage != 83.33 {
		t.Fatalf("Percentage = %v, want 83.33", got.Cells[0].Percentage)
	}
	if got.Cells[0].GradeName != "A" {
		t.Fatalf("GradeName = %q, want A", got.Cells[0].GradeName)
	}
}
