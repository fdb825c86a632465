// file: internals/features/school/grading/gradebook/controller/gradebook_controller.go
package controller

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	examModel "edupro_backend/internals/features/school/exams/model"
	dto "edupro_backend/internals/features/school/grading/gradebook/dto"
	gradebookModel "edupro_backend/internals/features/school/grading/gradebook/model"
	gradebookService "edupro_backend/internals/features/school/grading/gradebook/service"
	gradingModel "edupro_backend/internals/features/school/grading/grading_systems/model"
	gradingService "edupro_backend/internals/features/school/grading/grading_systems/service"
	helper "edupro_backend/internals/helpers"
)

// Mark writes race the grading store's reference-guarded delete; both sides
// run serializable so the conflict aborts one of them instead of letting a
// new reference slip past the guard.
var serializableTx = &sql.TxOptions{Isolation: sql.LevelSerializable}

type GradebookController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Grading   *gradingService.GradingSystemService
}

func NewGradebookController(db *gorm.DB, v *validator.Validate) *GradebookController {
	if v == nil {
		v = validator.New()
	}
	return &GradebookController{
		DB:        db,
		Validator: v,
		Grading:   gradingService.NewGradingSystemService(db),
	}
}

/* ============================================
   GRADE BOOK (aggregated view)
   GET /gradebook/students/:student_id[?grading_system_id=]
============================================ */

func (ctl *GradebookController) GetStudentGradebook(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(strings.TrimSpace(c.Params("student_id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student id")
	}

	sys, err := ctl.resolveSystem(c.Query("grading_system_id"))
	if err != nil {
		return svcErr(c, err)
	}

	gb, err := ctl.buildGradebook(studentID, sys)
	if err != nil {
		return svcErr(c, err)
	}
	return helper.JsonOK(c, "Grade book computed", gb)
}

/* ============================================
   MARK ENTRY
   POST /gradebook/marks
============================================ */

func (ctl *GradebookController) CreateMark(c *fiber.Ctx) error {
	var req dto.CreateMarkRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var subject examModel.ExamSubjectModel
	if err := ctl.DB.Where("exam_subject_id = ?", req.ExamSubjectID).First(&subject).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Exam subject not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "operation failed")
	}
	if *req.MarksObtained > subject.ExamSubjectFullMarks {
		return helper.JsonError(c, fiber.StatusBadRequest, "marks_obtained must not exceed full marks")
	}

	mark := gradebookModel.ExamSubjectMarkModel{
		ExamSubjectMarkExamSubjectID:   req.ExamSubjectID,
		ExamSubjectMarkStudentID:       req.StudentID,
		ExamSubjectMarkMarksObtained:   *req.MarksObtained,
		ExamSubjectMarkGradingSystemID: ctl.currentSystemID(),
	}

	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&mark).Error; err != nil {
			msg := strings.ToLower(err.Error())
			if strings.Contains(msg, "uq_exam_subject_marks_cell") ||
				strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique") {
				return fiber.NewError(fiber.StatusConflict, "A mark for this student and subject already exists; edit it instead")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "operation failed")
		}
		// any cached aggregate for this student is now stale
		return invalidateSnapshots(tx, req.StudentID)
	}, serializableTx); err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "operation failed")
	}

	return helper.JsonCreated(c, "Mark recorded", dto.FromMarkModel(&mark))
}

/* ============================================
   INTERACTIVE CELL EDIT
   PATCH /gradebook/marks/:id
============================================ */

func (ctl *GradebookController) UpdateMark(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	var mark gradebookModel.ExamSubjectMarkModel
	if err := ctl.DB.Where("exam_subject_mark_id = ?", id).First(&mark).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Mark not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "operation failed")
	}
	prior := mark.ExamSubjectMarkMarksObtained

	var req dto.UpdateMarkRequest
	if err := c.BodyParser(&req); err != nil {
		return ctl.editRejected(c, fiber.StatusBadRequest, "Invalid payload", id, prior)
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return ctl.editRejected(c, fiber.StatusBadRequest, err.Error(), id, prior)
	}

	var subject examModel.ExamSubjectModel
	if err := ctl.DB.Where("exam_subject_id = ?", mark.ExamSubjectMarkExamSubjectID).First(&subject).Error; err != nil {
		return ctl.editRejected(c, fiber.StatusInternalServerError, "operation failed", id, prior)
	}
	if *req.MarksObtained > subject.ExamSubjectFullMarks {
		return ctl.editRejected(c, fiber.StatusBadRequest, "marks_obtained must not exceed full marks", id, prior)
	}

	sysID := ctl.currentSystemID()
	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&mark).Updates(map[string]any{
			"exam_subject_mark_marks_obtained":    *req.MarksObtained,
			"exam_subject_mark_grading_system_id": sysID,
		}).Error; err != nil {
			return err
		}
		return invalidateSnapshots(tx, mark.ExamSubjectMarkStudentID)
	}, serializableTx); err != nil {
		// rolled back: the stored value is still the prior one
		return ctl.editRejected(c, fiber.StatusInternalServerError, "operation failed", id, prior)
	}
	mark.ExamSubjectMarkMarksObtained = *req.MarksObtained
	mark.ExamSubjectMarkGradingSystemID = sysID

	resp := dto.MarkEditResponse{Mark: dto.FromMarkModel(&mark)}
	if sys, err := ctl.Grading.Default(); err == nil {
		if gb, err := ctl.buildGradebook(mark.ExamSubjectMarkStudentID, sys); err == nil {
			resp.Gradebook = gb
		}
	}
	return helper.JsonUpdated(c, "Mark updated", resp)
}

// editRejected flags the failing cell and echoes the prior value so the
// editor can revert instead of silently discarding the edit.
func (ctl *GradebookController) editRejected(c *fiber.Ctx, status int, message string, id uuid.UUID, prior float64) error {
	return c.Status(status).JSON(fiber.Map{
		"success":    false,
		"message":    message,
		"error_code": "EDIT_REJECTED",
		"data": dto.MarkEditConflict{
			ExamSubjectMarkID:  id,
			PriorMarksObtained: prior,
		},
	})
}

/* ============================================
   internals
============================================ */

func svcErr(c *fiber.Ctx, err error) error {
	switch err.(type) {
	case *gradingService.ValidationError:
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	case *gradingService.NotFoundError:
		return helper.JsonError(c, fiber.StatusNotFound, err.Error())
	case *gradingService.StorageError:
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	default:
		return helper.JsonError(c, fiber.StatusInternalServerError, "operation failed")
	}
}

// resolveSystem picks the requested grading system or falls back to the
// institution default.
func (ctl *GradebookController) resolveSystem(raw string) (*gradingModel.GradingSystemModel, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ctl.Grading.Default()
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, gradingService.NewValidationError("invalid grading_system_id")
	}
	return ctl.Grading.GetByID(id)
}

// currentSystemID stamps marks with the system active at computation time.
// nil when no default is configured yet.
func (ctl *GradebookController) currentSystemID() *uuid.UUID {
	sys, err := ctl.Grading.Default()
	if err != nil {
		return nil
	}
	id := sys.GradingSystemID
	return &id
}

// buildGradebook loads the student's cells, aggregates them, and refreshes
// the cached snapshot.
func (ctl *GradebookController) buildGradebook(studentID uuid.UUID, sys *gradingModel.GradingSystemModel) (*dto.GradebookResponse, error) {
	cells, err := ctl.loadCells(studentID)
	if err != nil {
		return nil, err
	}

	summary := gradebookService.Aggregate(cells, gradingService.BandsOf(sys))

	if payload, err := sonic.Marshal(summary); err == nil {
		snap := gradebookModel.StudentGradeSnapshotModel{
			StudentGradeSnapshotStudentID:       studentID,
			StudentGradeSnapshotGradingSystemID: sys.GradingSystemID,
			StudentGradeSnapshotPayload:         payload,
		}
		// cache refresh is best effort; the computed summary is returned anyway
		_ = ctl.DB.Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "student_grade_snapshot_student_id"},
				{Name: "student_grade_snapshot_grading_system_id"},
			},
			DoUpdates: clause.AssignmentColumns([]string{
				"student_grade_snapshot_payload",
				"student_grade_snapshot_computed_at",
			}),
		}).Create(&snap).Error
	}

	return &dto.GradebookResponse{
		StudentID:         studentID,
		GradingSystemID:   sys.GradingSystemID,
		GradingSystemName: sys.GradingSystemName,
		Summary:           summary,
	}, nil
}

// loadCells returns every cell of the exams this student participates in:
// subjects with a recorded mark carry it, the rest stay ungraded.
func (ctl *GradebookController) loadCells(studentID uuid.UUID) ([]gradebookService.MarkCell, error) {
	var marks []gradebookModel.ExamSubjectMarkModel
	if err := ctl.DB.Where("exam_subject_mark_student_id = ?", studentID).Find(&marks).Error; err != nil {
		return nil, &gradingService.StorageError{Cause: err}
	}

	markBySubject := make(map[uuid.UUID]float64, len(marks))
	subjectIDs := make([]uuid.UUID, 0, len(marks))
	for _, m := range marks {
		markBySubject[m.ExamSubjectMarkExamSubjectID] = m.ExamSubjectMarkMarksObtained
		subjectIDs = append(subjectIDs, m.ExamSubjectMarkExamSubjectID)
	}
	if len(subjectIDs) == 0 {
		return nil, nil
	}

	// exams the student sat for
	var examIDs []uuid.UUID
	if err := ctl.DB.Model(&examModel.ExamSubjectModel{}).
		Distinct("exam_subject_exam_id").
		Where("exam_subject_id IN ?", subjectIDs).
		Pluck("exam_subject_exam_id", &examIDs).Error; err != nil {
		return nil, &gradingService.StorageError{Cause: err}
	}

	var exams []examModel.ExamModel
	if err := ctl.DB.
		Preload("ExamSubjects").
		Where("exam_id IN ?", examIDs).
		Order("exam_created_at ASC").
		Find(&exams).Error; err != nil {
		return nil, &gradingService.StorageError{Cause: err}
	}

	var cells []gradebookService.MarkCell
	for _, exam := range exams {
		for _, subject := range exam.ExamSubjects {
			cell := gradebookService.MarkCell{
				ExamSubjectID: subject.ExamSubjectID,
				ExamName:      exam.ExamName,
				SubjectName:   subject.ExamSubjectName,
				FullMarks:     subject.ExamSubjectFullMarks,
			}
			if v, ok := markBySubject[subject.ExamSubjectID]; ok {
				value := v
				cell.MarksObtained = &value
			}
			cells = append(cells, cell)
		}
	}
	return cells, nil
}

func invalidateSnapshots(tx *gorm.DB, studentID uuid.UUID) error {
	return tx.Where("student_grade_snapshot_student_id = ?", studentID).
		Delete(&gradebookModel.StudentGradeSnapshotModel{}).Error
}
