package patientflow

import (
	"context"
	"errors"
	"testing"

	"github.com/hospital/dashboard/internal/platform/apperr"
	"github.com/hospital/dashboard/pkg/period"
)

// -- Mock Repository --

type mockRepo struct {
	calls       int
	lastRange   period.DateRange
	lastOutpat  OutpatientFilter
	lastInpat   InpatientFilter
	summaryRows []OutpatientSummary
}

func (m *mockRepo) OutpatientSummary(_ context.Context, r period.DateRange) ([]OutpatientSummary, error) {
	m.calls++
	m.lastRange = r
	return m.summaryRows, nil
}

func (m *mockRepo) OutpatientByDepartment(_ context.Context, r period.DateRange) ([]OutpatientByDepartment, error) {
	m.calls++
	m.lastRange = r
	return []OutpatientByDepartment{}, nil
}

func (m *mockRepo) InpatientSummary(_ context.Context, r period.DateRange) ([]InpatientSummary, error) {
	m.calls++
	m.lastRange = r
	return []InpatientSummary{}, nil
}

func (m *mockRepo) InpatientByWard(_ context.Context, r period.DateRange) ([]InpatientByWard, error) {
	m.calls++
	m.lastRange = r
	return []InpatientByWard{}, nil
}

func (m *mockRepo) OutpatientRecords(_ context.Context, f OutpatientFilter) ([]OutpatientRecord, error) {
	m.calls++
	m.lastOutpat = f
	return []OutpatientRecord{}, nil
}

func (m *mockRepo) InpatientRecords(_ context.Context, f InpatientFilter) ([]InpatientRecord, error) {
	m.calls++
	m.lastInpat = f
	return []InpatientRecord{}, nil
}

func strp(s string) *string { return &s }

func TestService_MalformedDateRejectedBeforeQuery(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo)
	ctx := context.Background()

	calls := []func() error{
		func() error { _, err := svc.OutpatientSummary(ctx, strp("2024/01/01"), nil); return err },
		func() error { _, err := svc.OutpatientByDepartment(ctx, nil, strp("yesterday")); return err },
		func() error { _, err := svc.InpatientSummary(ctx, strp("2024-13-01"), nil); return err },
		func() error { _, err := svc.InpatientByWard(ctx, strp("2024-02-30"), nil); return err },
		func() error { _, err := svc.OutpatientRecords(ctx, strp("1 OR 1=1"), nil, nil); return err },
		func() error { _, err := svc.InpatientRecords(ctx, nil, strp("2024-1-1"), nil, nil); return err },
	}
	for i, call := range calls {
		if err := call(); !errors.Is(err, apperr.ErrInvalidArgument) {
			t.Errorf("call %d: expected invalid argument, got %v", i, err)
		}
	}
	if repo.calls != 0 {
		t.Errorf("expected no repository calls, got %d", repo.calls)
	}
}

func TestService_EmptyBoundsAreAbsent(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo)

	if _, err := svc.OutpatientSummary(context.Background(), strp(""), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastRange.Start != nil || repo.lastRange.End != nil {
		t.Errorf("expected unbounded range, got %+v", repo.lastRange)
	}
}

func TestService_PassesFilters(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo)
	ward, dept := 2, 3

	if _, err := svc.InpatientRecords(context.Background(), strp("2024-01-01"), nil, &ward, &dept); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastInpat.WardID == nil || *repo.lastInpat.WardID != 2 {
		t.Errorf("ward filter not passed: %+v", repo.lastInpat)
	}
	if repo.lastInpat.DepartmentID == nil || *repo.lastInpat.DepartmentID != 3 {
		t.Errorf("department filter not passed: %+v", repo.lastInpat)
	}
	if repo.lastInpat.Period.Start == nil || period.FormatDate(*repo.lastInpat.Period.Start) != "2024-01-01" {
		t.Errorf("start bound not passed: %+v", repo.lastInpat.Period)
	}

	if _, err := svc.OutpatientRecords(context.Background(), nil, nil, &dept); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastOutpat.DepartmentID == nil || *repo.lastOutpat.DepartmentID != 3 {
		t.Errorf("department filter not passed: %+v", repo.lastOutpat)
	}
}
