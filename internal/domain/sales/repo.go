package sales

import (
	"context"

	"github.com/hospital/dashboard/pkg/period"
)

// Repository reads doctors and monthly sales. Monthly results are ordered by
// year_month ascending.
type Repository interface {
	ListDoctors(ctx context.Context) ([]Doctor, error)
	ListDoctorsByDepartment(ctx context.Context, departmentCode string) ([]Doctor, error)
	Summary(ctx context.Context, r period.MonthRange) ([]Summary, error)
	ByDoctor(ctx context.Context, doctorCode string, r period.MonthRange) ([]Sales, error)
	ByDepartment(ctx context.Context, departmentCode string, r period.MonthRange) ([]Summary, error)
	// InDepartment returns every sales row of the department's doctors,
	// ordered by doctor then month.
	InDepartment(ctx context.Context, departmentCode string, r period.MonthRange) ([]Sales, error)
}
