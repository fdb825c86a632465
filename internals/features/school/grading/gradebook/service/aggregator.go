// file: internals/features/school/grading/gradebook/service/aggregator.go
package service

import (
	"math"

	"github.com/google/uuid"

	gradingService "edupro_backend/internals/features/school/grading/grading_systems/service"
)

// MarkCell is one (exam subject, student) slot of the grade book as fed into
// aggregation. MarksObtained is nil when no mark has been recorded yet.
type MarkCell struct {
	ExamSubjectID uuid.UUID
	ExamName      string
	SubjectName   string
	MarksObtained *float64
	FullMarks     float64
}

// GradedCell is a resolved cell. Ungraded cells stay visible (Graded=false)
// but never contribute to GPA.
type GradedCell struct {
	ExamSubjectID uuid.UUID `json:"exam_subject_id"`
	ExamName      string    `json:"exam_name"`
	SubjectName   string    `json:"subject_name"`
	MarksObtained *float64  `json:"marks_obtained,omitempty"`
	FullMarks     float64   `json:"full_marks"`
	Percentage    *float64  `json:"percentage,omitempty"`
	GradeName     string    `json:"grade_name,omitempty"`
	Points        float64   `json:"points"`
	Graded        bool      `json:"graded"`
}

// GradeSummary is the derived student summary. It is recomputed on demand and
// never a source of truth.
type GradeSummary struct {
	Cells             []GradedCell `json:"cells"`
	GPA               *float64     `json:"gpa"` // nil when no graded cells
	AveragePercentage *float64     `json:"average_percentage"`
	OverallGrade      string       `json:"overall_grade"`
	OverallPoints     float64      `json:"overall_points"`
}

// Aggregate resolves every cell against the band set and derives GPA and the
// overall grade. Cells without a recorded mark are omitted from the GPA
// (not treated as zero). The overall grade resolves the *average percentage*
// through the band set — it is never an average of letter grades.
// Percentages are rounded to two decimals before resolution, so a reported
// percentage and its grade always agree at band boundaries.
func Aggregate(cells []MarkCell, bands []gradingService.Band) GradeSummary {
	out := GradeSummary{Cells: make([]GradedCell, 0, len(cells))}

	var pointSum, pctSum float64
	graded := 0

	for _, cell := range cells {
		gc := GradedCell{
			ExamSubjectID: cell.ExamSubjectID,
			ExamName:      cell.ExamName,
			SubjectName:   cell.SubjectName,
			MarksObtained: cell.MarksObtained,
			FullMarks:     cell.FullMarks,
		}

		if cell.MarksObtained != nil && cell.FullMarks > 0 {
			pct := round2(*cell.MarksObtained / cell.FullMarks * 100)
			name, points, _ := gradingService.ResolveGrade(pct, bands)

			gc.Percentage = &pct
			gc.GradeName = name
			gc.Points = points
			gc.Graded = true

			pointSum += points
			pctSum += pct
			graded++
		}

		out.Cells = append(out.Cells, gc)
	}

	if graded == 0 {
		// no graded cells: GPA is explicitly "not available", never a
		// fabricated zero
		out.OverallGrade = gradingService.GradeUnclassified
		return out
	}

	gpa := round2(pointSum / float64(graded))
	avgPct := round2(pctSum / float64(graded))

	out.GPA = &gpa
	out.AveragePercentage = &avgPct
	out.OverallGrade, out.OverallPoints, _ = gradingService.ResolveGrade(avgPct, bands)
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
