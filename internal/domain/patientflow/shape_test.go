package patientflow

import (
	"math/big"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/hospital/dashboard/internal/domain/masterdata"
)

func n(v int64) pgtype.Numeric {
	return pgtype.Numeric{Int: big.NewInt(v), Valid: true}
}

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func TestShapeOutpatientSummary_DerivesTotal(t *testing.T) {
	got, err := shapeOutpatientSummary([]outpatientSummaryRow{
		{Date: day("2024-01-02"), New: n(60), Returning: n(160)},
		{Date: day("2024-01-01"), New: n(50), Returning: n(150)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got))
	}
	if got[0].TotalPatients != 220 || got[0].TotalNew != 60 || got[0].TotalReturning != 160 {
		t.Errorf("unexpected first row: %+v", got[0])
	}
	if got[1].TotalPatients != 200 {
		t.Errorf("expected 200 patients on 2024-01-01, got %d", got[1].TotalPatients)
	}
	if !got[0].Date.Equal(day("2024-01-02")) {
		t.Errorf("row order must be preserved, got %s first", got[0].Date)
	}
}

func TestShapeOutpatientSummary_EmptyIsNotNil(t *testing.T) {
	got, err := shapeOutpatientSummary(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
}

func TestShapeOutpatientByDepartment_NullSumsAreZero(t *testing.T) {
	dept := masterdata.Department{ID: 4, Code: "PED", Name: "小児科", DisplayOrder: 4}
	got, err := shapeOutpatientByDepartment([]outpatientDepartmentRow{
		{Department: dept, New: pgtype.Numeric{}, Returning: pgtype.Numeric{}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0].Department.Code != "PED" {
		t.Errorf("department sub-object not attached: %+v", got[0].Department)
	}
	if got[0].TotalNew != 0 || got[0].TotalReturning != 0 || got[0].TotalPatients != 0 {
		t.Errorf("expected zero totals, got %+v", got[0])
	}
}

func TestShapeOutpatientByDepartment_FractionalIsError(t *testing.T) {
	_, err := shapeOutpatientByDepartment([]outpatientDepartmentRow{
		{Department: masterdata.Department{Code: "INT"}, New: pgtype.Numeric{Int: big.NewInt(15), Exp: -1, Valid: true}},
	})
	if err == nil {
		t.Fatal("expected error for fractional count")
	}
}

func TestShapeInpatientSummary(t *testing.T) {
	got, err := shapeInpatientSummary([]inpatientSummaryRow{
		{Date: day("2024-01-01"), Sums: inpatientSums{n(60), n(9), n(5), n(1), n(1)}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := InpatientSummary{
		Date:              day("2024-01-01"),
		TotalCurrent:      60,
		TotalNewAdmission: 9,
		TotalDischarge:    5,
		TotalTransferOut:  1,
		TotalTransferIn:   1,
	}
	if got[0] != want {
		t.Errorf("got %+v, want %+v", got[0], want)
	}
}

func TestShapeInpatientByWard_ZeroFill(t *testing.T) {
	got, err := shapeInpatientByWard([]inpatientWardRow{
		{Ward: masterdata.Ward{Code: "W3E", Capacity: 40}, Sums: inpatientSums{n(65), n(7), n(5), n(1), n(1)}},
		{Ward: masterdata.Ward{Code: "W4E", Capacity: 36}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected one row per ward, got %d", len(got))
	}
	if got[1].Ward.Code != "W4E" || got[1].TotalCurrent != 0 || got[1].TotalDischarge != 0 {
		t.Errorf("expected zero row for W4E, got %+v", got[1])
	}
	if got[0].TotalCurrent != 65 {
		t.Errorf("expected 65 current patients, got %d", got[0].TotalCurrent)
	}
}

func TestShapeOutpatientRecords_RecomputesTotal(t *testing.T) {
	got := shapeOutpatientRecords([]OutpatientRecord{
		{NewPatientsCount: 30, ReturningPatientsCount: 90, TotalCount: 999},
	})
	if got[0].TotalCount != 120 {
		t.Errorf("expected total 120, got %d", got[0].TotalCount)
	}
}
