// file: internals/features/school/grading/grading_systems/service/grading_system_service_test.go
package service

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockService(t *testing.T) (*GradingSystemService, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("gorm.Open: %v", err)
	}
	return NewGradingSystemService(db), mock
}

func countRows(n int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"count"}).AddRow(n)
}

func systemRows(id uuid.UUID, name string, isDefault bool) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"grading_system_id", "grading_system_name", "grading_system_is_default",
	}).AddRow(id.String(), name, isDefault)
}

func bandRows(systemID uuid.UUID) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"grade_band_id", "grade_band_grading_system_id", "grade_band_grade_name",
		"grade_band_min_percentage", "grade_band_max_percentage", "grade_band_points",
	})
	rows.AddRow(uuid.NewString(), systemID.String(), "A", 80.0, 100.0, 4.0)
	rows.AddRow(uuid.NewString(), systemID.String(), "F", 0.0, 39.0, 0.0)
	return rows
}

// Promoting a new system to default clears every existing default inside the
// same transaction, so exactly one default row survives the commit.
func TestCreateDefaultClearsExistingDefaultInSameTx(t *testing.T) {
	svc, mock := newMockService(t)
	sysID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "grading_systems" WHERE lower\(grading_system_name\) = lower\(\$1\)`).
		WillReturnRows(countRows(0))
	mock.ExpectExec(`UPDATE "grading_systems" SET "grading_system_is_default"=\$1.*WHERE grading_system_is_default = TRUE`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "grading_systems"`).
		WillReturnRows(sqlmock.NewRows([]string{"grading_system_id"}).AddRow(sysID.String()))
	mock.ExpectQuery(`INSERT INTO "grade_bands"`).
		WillReturnRows(sqlmock.NewRows([]string{"grade_band_id"}).
			AddRow(uuid.NewString()).AddRow(uuid.NewString()))
	mock.ExpectCommit()

	// rehydrate for the response
	mock.ExpectQuery(`SELECT \* FROM "grading_systems" WHERE grading_system_id = \$1`).
		WillReturnRows(systemRows(sysID, "Standard", true))
	mock.ExpectQuery(`SELECT \* FROM "grade_bands" WHERE`).
		WillReturnRows(bandRows(sysID))

	sys, err := svc.Create(CreateGradingSystemInput{
		Name:      "Standard",
		IsDefault: true,
		Bands: []Band{
			{GradeName: "A", MinPercentage: 80, MaxPercentage: 100, Points: 4},
			{GradeName: "F", MinPercentage: 0, MaxPercentage: 39, Points: 0},
		},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if !sys.GradingSystemIsDefault {
		t.Fatal("created system is not the default")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("statement flow: %v", err)
	}
}

func TestCreateDuplicateNameConflicts(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "grading_systems" WHERE lower\(grading_system_name\) = lower\(\$1\)`).
		WillReturnRows(countRows(1))
	mock.ExpectRollback()

	_, err := svc.Create(CreateGradingSystemInput{
		Name:  "Standard",
		Bands: []Band{{GradeName: "A", MinPercentage: 0, MaxPercentage: 100, Points: 4}},
	})
	if _, ok := err.(*ConflictError); !ok {
		t.Fatalf("Create() error = %T (%v), want *ConflictError", err, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("statement flow: %v", err)
	}
}

// Flipping an existing system to default demotes the others first, in the
// same transaction as the promotion.
func TestUpdatePromoteToDefaultDemotesOthersInSameTx(t *testing.T) {
	svc, mock := newMockService(t)
	sysID := uuid.New()
	isDefault := true

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "grading_systems" WHERE grading_system_id = \$1`).
		WillReturnRows(systemRows(sysID, "Cambridge", false))
	mock.ExpectExec(`UPDATE "grading_systems" SET "grading_system_is_default"=\$1.*WHERE grading_system_id <> \$\d AND grading_system_is_default = TRUE`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "grading_systems" SET "grading_system_is_default"=\$1`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	mock.ExpectQuery(`SELECT \* FROM "grading_systems" WHERE grading_system_id = \$1`).
		WillReturnRows(systemRows(sysID, "Cambridge", true))
	mock.ExpectQuery(`SELECT \* FROM "grade_bands" WHERE`).
		WillReturnRows(bandRows(sysID))

	sys, err := svc.Update(sysID, UpdateGradingSystemInput{IsDefault: &isDefault})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if !sys.GradingSystemIsDefault {
		t.Fatal("updated system is not the default")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("statement flow: %v", err)
	}
}

// A system still referenced by marks must survive a delete attempt untouched:
// the transaction rolls back after the reference count, before any DELETE.
func TestDeleteReferencedSystemRollsBack(t *testing.T) {
	svc, mock := newMockService(t)
	sysID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "grading_systems" WHERE grading_system_id = \$1`).
		WillReturnRows(systemRows(sysID, "Standard", true))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "exam_subject_marks" WHERE exam_subject_mark_grading_system_id = \$1`).
		WillReturnRows(countRows(3))
	mock.ExpectRollback()

	err := svc.Delete(sysID)
	if _, ok := err.(*ReferentialIntegrityError); !ok {
		t.Fatalf("Delete() error = %T (%v), want *ReferentialIntegrityError", err, err)
	}
	// ExpectationsWereMet also proves no DELETE statement was ever issued
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("statement flow: %v", err)
	}
}

func TestDeleteUnreferencedSystemRemovesBandsAndSystem(t *testing.T) {
	svc, mock := newMockService(t)
	sysID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "grading_systems" WHERE grading_system_id = \$1`).
		WillReturnRows(systemRows(sysID, "Cambridge", false))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "exam_subject_marks" WHERE exam_subject_mark_grading_system_id = \$1`).
		WillReturnRows(countRows(0))
	mock.ExpectExec(`DELETE FROM "grade_bands" WHERE grade_band_grading_system_id = \$1`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM "grading_systems"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := svc.Delete(sysID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("statement flow: %v", err)
	}
}

func TestDeleteUnknownSystemNotFound(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "grading_systems" WHERE grading_system_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"grading_system_id"}))
	mock.ExpectRollback()

	err := svc.Delete(uuid.New())
	if _, ok := err.(*NotFoundError); !ok {
		t.Fatalf("Delete() error = %T (%v), want *NotFoundError", err, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("statement flow: %v", err)
	}
}
