package sales

import (
	"context"

	"github.com/hospital/dashboard/internal/platform/apperr"
	"github.com/hospital/dashboard/pkg/period"
)

// Service validates arguments and runs the doctor and sales queries.
// Required codes and malformed months are rejected before any query runs.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListDoctors(ctx context.Context) ([]Doctor, error) {
	return s.repo.ListDoctors(ctx)
}

func (s *Service) ListDoctorsByDepartment(ctx context.Context, departmentCode string) ([]Doctor, error) {
	if departmentCode == "" {
		return nil, apperr.Required("departmentCode")
	}
	return s.repo.ListDoctorsByDepartment(ctx, departmentCode)
}

// Summary sums every doctor's sales per month.
func (s *Service) Summary(ctx context.Context, startMonth, endMonth *string) ([]Summary, error) {
	rng, err := period.ParseMonthRange(startMonth, endMonth)
	if err != nil {
		return nil, err
	}
	return s.repo.Summary(ctx, rng)
}

func (s *Service) ByDoctor(ctx context.Context, doctorCode string, startMonth, endMonth *string) ([]Sales, error) {
	if doctorCode == "" {
		return nil, apperr.Required("doctorCode")
	}
	rng, err := period.ParseMonthRange(startMonth, endMonth)
	if err != nil {
		return nil, err
	}
	return s.repo.ByDoctor(ctx, doctorCode, rng)
}

// ByDepartment sums the department's doctors' sales per month.
func (s *Service) ByDepartment(ctx context.Context, departmentCode string, startMonth, endMonth *string) ([]Summary, error) {
	if departmentCode == "" {
		return nil, apperr.Required("departmentCode")
	}
	rng, err := period.ParseMonthRange(startMonth, endMonth)
	if err != nil {
		return nil, err
	}
	return s.repo.ByDepartment(ctx, departmentCode, rng)
}

// ByDoctorsInDepartment returns one monthly series per doctor of the
// department, in doctor display order. Series are not aligned on months.
func (s *Service) ByDoctorsInDepartment(ctx context.Context, departmentCode string, startMonth, endMonth *string) ([]DoctorSales, error) {
	if departmentCode == "" {
		return nil, apperr.Required("departmentCode")
	}
	rng, err := period.ParseMonthRange(startMonth, endMonth)
	if err != nil {
		return nil, err
	}

	doctors, err := s.repo.ListDoctorsByDepartment(ctx, departmentCode)
	if err != nil {
		return nil, err
	}
	if len(doctors) == 0 {
		return []DoctorSales{}, nil
	}

	rows, err := s.repo.InDepartment(ctx, departmentCode, rng)
	if err != nil {
		return nil, err
	}
	return groupByDoctor(doctors, rows), nil
}
