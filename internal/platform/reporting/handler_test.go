package reporting

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hospital/dashboard/internal/domain/sales"
	"github.com/hospital/dashboard/internal/platform/apperr"
	"github.com/hospital/dashboard/internal/platform/auth"
	"github.com/hospital/dashboard/internal/platform/middleware"
)

type fakeSales struct {
	calls []string
	err   error
}

func (f *fakeSales) Summary(ctx context.Context, startMonth, endMonth *string) ([]sales.Summary, error) {
	f.calls = append(f.calls, "summary")
	return []sales.Summary{{YearMonth: "2024-01", TotalOutpatientSales: d("1"), TotalInpatientSales: d("2"), TotalSales: d("3")}}, f.err
}

func (f *fakeSales) ByDoctor(ctx context.Context, doctorCode string, startMonth, endMonth *string) ([]sales.Sales, error) {
	f.calls = append(f.calls, "doctor:"+doctorCode)
	return []sales.Sales{{DoctorCode: doctorCode, YearMonth: "2024-01"}}, f.err
}

func (f *fakeSales) ByDepartment(ctx context.Context, departmentCode string, startMonth, endMonth *string) ([]sales.Summary, error) {
	f.calls = append(f.calls, "department:"+departmentCode)
	return []sales.Summary{{YearMonth: "2024-01"}}, f.err
}

func (f *fakeSales) ByDoctorsInDepartment(ctx context.Context, departmentCode string, startMonth, endMonth *string) ([]sales.DoctorSales, error) {
	f.calls = append(f.calls, "doctors:"+departmentCode)
	return []sales.DoctorSales{
		{Doctor: sales.Doctor{Code: "D001", Name: "山田 一郎"}, Sales: []sales.Sales{{YearMonth: "2024-01"}}},
		{Doctor: sales.Doctor{Code: "D002", Name: "佐藤 二郎"}, Sales: []sales.Sales{}},
	}, f.err
}

var levels = auth.ResolverFunc(func(ctx context.Context, staffID string) (*auth.Identity, error) {
	switch staffID {
	case "manager001":
		return &auth.Identity{StaffID: staffID, Level: 90}, nil
	case "nurse001":
		return &auth.Identity{StaffID: staffID, Level: 20}, nil
	}
	return nil, nil
})

func newServer(src SalesSource) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = middleware.HTTPErrorHandler(zerolog.Nop())
	e.Use(auth.StaffIdentity(levels, false))
	NewHandler(src, 90, zerolog.Nop()).RegisterRoutes(e)
	return e
}

func get(e *echo.Echo, target, staffID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if staffID != "" {
		req.Header.Set(auth.StaffIDHeader, staffID)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestExportSales_Summary(t *testing.T) {
	src := &fakeSales{}
	rec := get(newServer(src), ExportPath+"?startMonth=2024-01&endMonth=2024-12", "manager001")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, ContentType, rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, "attachment; filename=sales-2024-01-2024-12.xlsx", rec.Header().Get(echo.HeaderContentDisposition))
	assert.Equal(t, []string{"summary"}, src.calls)

	rows := readRows(t, bytes.NewBuffer(rec.Body.Bytes()), salesSheet)
	assert.Equal(t, []string{"All departments", "2024-01", "1", "2", "3"}, rows[1])
}

func TestExportSales_DepartmentSeries(t *testing.T) {
	src := &fakeSales{}
	rec := get(newServer(src), ExportPath+"?departmentCode=INT", "manager001")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"department:INT", "doctors:INT"}, src.calls)

	rows := readRows(t, bytes.NewBuffer(rec.Body.Bytes()), salesSheet)
	require.Len(t, rows, 3)
	assert.Equal(t, "INT", rows[1][0])
	assert.Equal(t, "山田 一郎", rows[2][0])
}

func TestExportSales_DoctorWins(t *testing.T) {
	src := &fakeSales{}
	rec := get(newServer(src), ExportPath+"?departmentCode=INT&doctorCode=D003", "manager001")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"doctor:D003"}, src.calls)
}

func TestExportSales_LevelGate(t *testing.T) {
	src := &fakeSales{}
	e := newServer(src)

	assert.Equal(t, http.StatusForbidden, get(e, ExportPath, "nurse001").Code)
	assert.Equal(t, http.StatusUnauthorized, get(e, ExportPath, "").Code)
	assert.Equal(t, http.StatusUnauthorized, get(e, ExportPath, "ghost").Code)
	assert.Empty(t, src.calls)
}

func TestExportSales_Errors(t *testing.T) {
	src := &fakeSales{err: apperr.Invalid("startMonth %q is not a YYYY-MM month", "2024-13")}
	rec := get(newServer(src), ExportPath+"?startMonth=2024-13", "manager001")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "2024-13")

	src = &fakeSales{err: errors.New("connection refused")}
	rec = get(newServer(src), ExportPath, "manager001")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "connection refused")
}
