package patientflow

import (
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/hospital/dashboard/internal/domain/masterdata"
	"github.com/hospital/dashboard/internal/platform/db"
	"github.com/hospital/dashboard/pkg/period"
)

// Scanned aggregate rows. SUM columns arrive as NUMERIC-compatible values and
// are NULL for a master row with no activity in range.

type outpatientSummaryRow struct {
	Date      time.Time
	New       pgtype.Numeric
	Returning pgtype.Numeric
}

type outpatientDepartmentRow struct {
	Department masterdata.Department
	New        pgtype.Numeric
	Returning  pgtype.Numeric
}

type inpatientSums struct {
	Current      pgtype.Numeric
	NewAdmission pgtype.Numeric
	Discharge    pgtype.Numeric
	TransferOut  pgtype.Numeric
	TransferIn   pgtype.Numeric
}

func (s *inpatientSums) fields() []interface{} {
	return []interface{}{&s.Current, &s.NewAdmission, &s.Discharge, &s.TransferOut, &s.TransferIn}
}

type inpatientSummaryRow struct {
	Date time.Time
	Sums inpatientSums
}

type inpatientWardRow struct {
	Ward masterdata.Ward
	Sums inpatientSums
}

// counter converts aggregates and keeps the first conversion error.
type counter struct {
	err error
}

func (c *counter) int(n pgtype.Numeric) int {
	if c.err != nil {
		return 0
	}
	v, err := db.NumericInt(n)
	if err != nil {
		c.err = err
	}
	return v
}

func shapeOutpatientSummary(rows []outpatientSummaryRow) ([]OutpatientSummary, error) {
	out := make([]OutpatientSummary, 0, len(rows))
	for _, r := range rows {
		var c counter
		s := OutpatientSummary{
			Date:           r.Date,
			TotalNew:       c.int(r.New),
			TotalReturning: c.int(r.Returning),
		}
		if c.err != nil {
			return nil, fmt.Errorf("outpatient summary %s: %w", period.FormatDate(r.Date), c.err)
		}
		s.TotalPatients = s.TotalNew + s.TotalReturning
		out = append(out, s)
	}
	return out, nil
}

func shapeOutpatientByDepartment(rows []outpatientDepartmentRow) ([]OutpatientByDepartment, error) {
	out := make([]OutpatientByDepartment, 0, len(rows))
	for _, r := range rows {
		var c counter
		s := OutpatientByDepartment{
			Department:     r.Department,
			TotalNew:       c.int(r.New),
			TotalReturning: c.int(r.Returning),
		}
		if c.err != nil {
			return nil, fmt.Errorf("outpatient totals for department %s: %w", r.Department.Code, c.err)
		}
		s.TotalPatients = s.TotalNew + s.TotalReturning
		out = append(out, s)
	}
	return out, nil
}

func shapeInpatientSummary(rows []inpatientSummaryRow) ([]InpatientSummary, error) {
	out := make([]InpatientSummary, 0, len(rows))
	for _, r := range rows {
		var c counter
		s := InpatientSummary{
			Date:              r.Date,
			TotalCurrent:      c.int(r.Sums.Current),
			TotalNewAdmission: c.int(r.Sums.NewAdmission),
			TotalDischarge:    c.int(r.Sums.Discharge),
			TotalTransferOut:  c.int(r.Sums.TransferOut),
			TotalTransferIn:   c.int(r.Sums.TransferIn),
		}
		if c.err != nil {
			return nil, fmt.Errorf("inpatient summary %s: %w", period.FormatDate(r.Date), c.err)
		}
		out = append(out, s)
	}
	return out, nil
}

func shapeInpatientByWard(rows []inpatientWardRow) ([]InpatientByWard, error) {
	out := make([]InpatientByWard, 0, len(rows))
	for _, r := range rows {
		var c counter
		s := InpatientByWard{
			Ward:              r.Ward,
			TotalCurrent:      c.int(r.Sums.Current),
			TotalNewAdmission: c.int(r.Sums.NewAdmission),
			TotalDischarge:    c.int(r.Sums.Discharge),
			TotalTransferOut:  c.int(r.Sums.TransferOut),
			TotalTransferIn:   c.int(r.Sums.TransferIn),
		}
		if c.err != nil {
			return nil, fmt.Errorf("inpatient totals for ward %s: %w", r.Ward.Code, c.err)
		}
		out = append(out, s)
	}
	return out, nil
}

// shapeOutpatientRecords recomputes TotalCount from the two stored counts.
func shapeOutpatientRecords(records []OutpatientRecord) []OutpatientRecord {
	for i := range records {
		records[i].TotalCount = records[i].NewPatientsCount + records[i].ReturningPatientsCount
	}
	return records
}
