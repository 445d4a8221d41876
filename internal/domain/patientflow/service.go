package patientflow

import (
	"context"

	"github.com/hospital/dashboard/pkg/period"
)

// Service validates date bounds and runs the patient flow aggregations.
// Malformed bounds are rejected before the database is touched.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) OutpatientSummary(ctx context.Context, startDate, endDate *string) ([]OutpatientSummary, error) {
	rng, err := period.ParseDateRange(startDate, endDate)
	if err != nil {
		return nil, err
	}
	return s.repo.OutpatientSummary(ctx, rng)
}

func (s *Service) OutpatientByDepartment(ctx context.Context, startDate, endDate *string) ([]OutpatientByDepartment, error) {
	rng, err := period.ParseDateRange(startDate, endDate)
	if err != nil {
		return nil, err
	}
	return s.repo.OutpatientByDepartment(ctx, rng)
}

func (s *Service) InpatientSummary(ctx context.Context, startDate, endDate *string) ([]InpatientSummary, error) {
	rng, err := period.ParseDateRange(startDate, endDate)
	if err != nil {
		return nil, err
	}
	return s.repo.InpatientSummary(ctx, rng)
}

func (s *Service) InpatientByWard(ctx context.Context, startDate, endDate *string) ([]InpatientByWard, error) {
	rng, err := period.ParseDateRange(startDate, endDate)
	if err != nil {
		return nil, err
	}
	return s.repo.InpatientByWard(ctx, rng)
}

// OutpatientRecords lists raw department-day rows, newest first.
func (s *Service) OutpatientRecords(ctx context.Context, startDate, endDate *string, departmentID *int) ([]OutpatientRecord, error) {
	rng, err := period.ParseDateRange(startDate, endDate)
	if err != nil {
		return nil, err
	}
	return s.repo.OutpatientRecords(ctx, OutpatientFilter{Period: rng, DepartmentID: departmentID})
}

// InpatientRecords lists raw ward-department-day rows, newest first.
func (s *Service) InpatientRecords(ctx context.Context, startDate, endDate *string, wardID, departmentID *int) ([]InpatientRecord, error) {
	rng, err := period.ParseDateRange(startDate, endDate)
	if err != nil {
		return nil, err
	}
	return s.repo.InpatientRecords(ctx, InpatientFilter{Period: rng, WardID: wardID, DepartmentID: departmentID})
}
