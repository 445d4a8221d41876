package sales

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hospital/dashboard/internal/platform/db/dbtest"
	"github.com/hospital/dashboard/pkg/period"
)

var created = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func doctorRow(code, name, dept string) []interface{} {
	return []interface{}{code, name, dept, int32(1), created, int32(1), dept, "内科", int32(1), created}
}

func TestRepo_ListDoctors_Order(t *testing.T) {
	q := dbtest.New(dbtest.Result{Rows: [][]interface{}{doctorRow("D001", "佐藤 健", "INT")}})

	doctors, err := NewRepo(q).ListDoctors(context.Background())
	require.NoError(t, err)
	require.Len(t, doctors, 1)
	assert.Equal(t, "INT", doctors[0].Department.Code)
	assert.Equal(t, "INT", doctors[0].DepartmentCode)
	assert.Contains(t, q.Last().SQL, "ORDER BY dept.display_order, dept.code, doc.display_order, doc.name")
}

func TestRepo_ListDoctorsByDepartment_Bound(t *testing.T) {
	q := dbtest.New()

	doctors, err := NewRepo(q).ListDoctorsByDepartment(context.Background(), "INT' OR '1'='1")
	require.NoError(t, err)
	assert.NotNil(t, doctors)

	call := q.Last()
	assert.Contains(t, call.SQL, "WHERE doc.department_code = $1")
	assert.Contains(t, call.SQL, "ORDER BY doc.display_order, doc.name")
	assert.NotContains(t, call.SQL, "'1'='1")
	assert.Equal(t, []interface{}{"INT' OR '1'='1"}, call.Args)
}

func TestRepo_Summary(t *testing.T) {
	q := dbtest.New(dbtest.Result{Rows: [][]interface{}{
		{"2024-01", dbtest.Money("2950000.00"), dbtest.Money("11000000.00")},
		{"2024-02", dbtest.Money("2855000.50"), dbtest.Money("10455000.25")},
	}})

	got, err := NewRepo(q).Summary(context.Background(), period.MonthRange{Start: "2024-01", End: "2024-12"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "13950000", got[0].TotalSales.String())
	assert.Equal(t, "13310000.75", got[1].TotalSales.String())

	call := q.Last()
	assert.Contains(t, call.SQL, "WHERE s.year_month >= $1 AND s.year_month <= $2")
	assert.Contains(t, call.SQL, "ORDER BY s.year_month")
	assert.Equal(t, []interface{}{"2024-01", "2024-12"}, call.Args)
}

func TestRepo_Summary_Unbounded(t *testing.T) {
	q := dbtest.New()

	got, err := NewRepo(q).Summary(context.Background(), period.MonthRange{})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.NotContains(t, q.Last().SQL, "WHERE")
}

func TestRepo_ByDoctor(t *testing.T) {
	updated := time.Date(2024, 2, 5, 3, 0, 0, 0, time.UTC)
	q := dbtest.New(dbtest.Result{Rows: [][]interface{}{
		{"D001", "2024-02", dbtest.Money("1250000.00"), dbtest.Money("3300000.00"), updated},
	}})

	got, err := NewRepo(q).ByDoctor(context.Background(), "D001", period.MonthRange{End: "2024-02"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "4550000", got[0].TotalSales.String())
	assert.Equal(t, updated, got[0].UpdatedAt)

	call := q.Last()
	assert.Contains(t, call.SQL, "WHERE s.doctor_code = $1 AND s.year_month <= $2")
	assert.Equal(t, []interface{}{"D001", "2024-02"}, call.Args)
}

func TestRepo_ByDepartment(t *testing.T) {
	q := dbtest.New()

	_, err := NewRepo(q).ByDepartment(context.Background(), "INT", period.MonthRange{Start: "2024-01"})
	require.NoError(t, err)

	call := q.Last()
	assert.Contains(t, call.SQL, "JOIN doctors doc ON s.doctor_code = doc.code WHERE doc.department_code = $1 AND s.year_month >= $2")
	assert.Contains(t, call.SQL, "GROUP BY s.year_month")
	assert.Equal(t, []interface{}{"INT", "2024-01"}, call.Args)
}

func TestRepo_InDepartment_Order(t *testing.T) {
	q := dbtest.New()

	_, err := NewRepo(q).InDepartment(context.Background(), "INT", period.MonthRange{})
	require.NoError(t, err)
	assert.Contains(t, q.Last().SQL, "ORDER BY s.doctor_code, s.year_month")
}
