package patientflow

import (
	"context"

	"github.com/hospital/dashboard/pkg/period"
)

// Repository runs the patient flow aggregations. Every method returns an
// empty, non-nil slice when nothing matches.
type Repository interface {
	OutpatientSummary(ctx context.Context, r period.DateRange) ([]OutpatientSummary, error)
	OutpatientByDepartment(ctx context.Context, r period.DateRange) ([]OutpatientByDepartment, error)
	InpatientSummary(ctx context.Context, r period.DateRange) ([]InpatientSummary, error)
	InpatientByWard(ctx context.Context, r period.DateRange) ([]InpatientByWard, error)
	OutpatientRecords(ctx context.Context, f OutpatientFilter) ([]OutpatientRecord, error)
	InpatientRecords(ctx context.Context, f InpatientFilter) ([]InpatientRecord, error)
}
