package patientflow

import (
	"context"
	"fmt"

	"github.com/hospital/dashboard/internal/domain/masterdata"
	"github.com/hospital/dashboard/internal/platform/db"
	"github.com/hospital/dashboard/pkg/period"
)

type repoPG struct {
	db db.Querier
}

func NewRepo(q db.Querier) Repository {
	return &repoPG{db: q}
}

func (r *repoPG) OutpatientSummary(ctx context.Context, rng period.DateRange) ([]OutpatientSummary, error) {
	var p db.Params
	where := p.DateRange("o.date", rng).Where()

	rows, err := r.db.Query(ctx, `
		SELECT o.date,
		       SUM(o.new_patients_count),
		       SUM(o.returning_patients_count)
		FROM outpatient_records o`+where+`
		GROUP BY o.date
		ORDER BY o.date DESC`, p.Args()...)
	if err != nil {
		return nil, fmt.Errorf("outpatient summary: %w", err)
	}
	defer rows.Close()

	var scanned []outpatientSummaryRow
	for rows.Next() {
		var row outpatientSummaryRow
		if err := rows.Scan(&row.Date, &row.New, &row.Returning); err != nil {
			return nil, fmt.Errorf("scan outpatient summary: %w", err)
		}
		scanned = append(scanned, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outpatient summary: %w", err)
	}
	return shapeOutpatientSummary(scanned)
}

// OutpatientByDepartment keeps the date bounds in the join condition so a
// department with no records in range still yields a row of zeros.
func (r *repoPG) OutpatientByDepartment(ctx context.Context, rng period.DateRange) ([]OutpatientByDepartment, error) {
	var p db.Params
	on := p.DateRange("o.date", rng).And()

	rows, err := r.db.Query(ctx, `
		SELECT `+masterdata.DepartmentColumns("d")+`,
		       SUM(o.new_patients_count),
		       SUM(o.returning_patients_count)
		FROM departments d
		LEFT JOIN outpatient_records o ON o.department_id = d.id`+on+`
		GROUP BY d.id, d.code, d.name, d.display_order, d.created_at
		ORDER BY d.display_order, d.code`, p.Args()...)
	if err != nil {
		return nil, fmt.Errorf("outpatient by department: %w", err)
	}
	defer rows.Close()

	var scanned []outpatientDepartmentRow
	for rows.Next() {
		var row outpatientDepartmentRow
		dest := append(row.Department.Fields(), &row.New, &row.Returning)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan outpatient by department: %w", err)
		}
		scanned = append(scanned, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outpatient by department: %w", err)
	}
	return shapeOutpatientByDepartment(scanned)
}

func (r *repoPG) InpatientSummary(ctx context.Context, rng period.DateRange) ([]InpatientSummary, error) {
	var p db.Params
	where := p.DateRange("i.date", rng).Where()

	rows, err := r.db.Query(ctx, `
		SELECT i.date,
		       SUM(i.current_patient_count),
		       SUM(i.new_admission_count),
		       SUM(i.discharge_count),
		       SUM(i.transfer_out_count),
		       SUM(i.transfer_in_count)
		FROM inpatient_records i`+where+`
		GROUP BY i.date
		ORDER BY i.date DESC`, p.Args()...)
	if err != nil {
		return nil, fmt.Errorf("inpatient summary: %w", err)
	}
	defer rows.Close()

	var scanned []inpatientSummaryRow
	for rows.Next() {
		var row inpatientSummaryRow
		dest := append([]interface{}{&row.Date}, row.Sums.fields()...)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan inpatient summary: %w", err)
		}
		scanned = append(scanned, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate inpatient summary: %w", err)
	}
	return shapeInpatientSummary(scanned)
}

// InpatientByWard follows the same zero-fill rule as OutpatientByDepartment.
func (r *repoPG) InpatientByWard(ctx context.Context, rng period.DateRange) ([]InpatientByWard, error) {
	var p db.Params
	on := p.DateRange("i.date", rng).And()

	rows, err := r.db.Query(ctx, `
		SELECT `+masterdata.WardColumns("w")+`,
		       SUM(i.current_patient_count),
		       SUM(i.new_admission_count),
		       SUM(i.discharge_count),
		       SUM(i.transfer_out_count),
		       SUM(i.transfer_in_count)
		FROM wards w
		LEFT JOIN inpatient_records i ON i.ward_id = w.id`+on+`
		GROUP BY w.id, w.code, w.name, w.capacity, w.display_order, w.created_at
		ORDER BY w.display_order, w.code`, p.Args()...)
	if err != nil {
		return nil, fmt.Errorf("inpatient by ward: %w", err)
	}
	defer rows.Close()

	var scanned []inpatientWardRow
	for rows.Next() {
		var row inpatientWardRow
		dest := append(row.Ward.Fields(), row.Sums.fields()...)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan inpatient by ward: %w", err)
		}
		scanned = append(scanned, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate inpatient by ward: %w", err)
	}
	return shapeInpatientByWard(scanned)
}

func (r *repoPG) OutpatientRecords(ctx context.Context, f OutpatientFilter) ([]OutpatientRecord, error) {
	var p db.Params
	preds := p.DateRange("o.date", f.Period)
	if f.DepartmentID != nil {
		preds = append(preds, p.Equals("o.department_id", *f.DepartmentID))
	}

	rows, err := r.db.Query(ctx, `
		SELECT o.id, o.date, o.new_patients_count, o.returning_patients_count, o.created_at,
		       `+masterdata.DepartmentColumns("d")+`
		FROM outpatient_records o
		JOIN departments d ON o.department_id = d.id`+preds.Where()+`
		ORDER BY o.date DESC, d.code`, p.Args()...)
	if err != nil {
		return nil, fmt.Errorf("outpatient records: %w", err)
	}
	defer rows.Close()

	records := []OutpatientRecord{}
	for rows.Next() {
		var rec OutpatientRecord
		dest := append([]interface{}{
			&rec.ID, &rec.Date, &rec.NewPatientsCount, &rec.ReturningPatientsCount, &rec.CreatedAt,
		}, rec.Department.Fields()...)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan outpatient record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outpatient records: %w", err)
	}
	return shapeOutpatientRecords(records), nil
}

func (r *repoPG) InpatientRecords(ctx context.Context, f InpatientFilter) ([]InpatientRecord, error) {
	var p db.Params
	preds := p.DateRange("i.date", f.Period)
	if f.WardID != nil {
		preds = append(preds, p.Equals("i.ward_id", *f.WardID))
	}
	if f.DepartmentID != nil {
		preds = append(preds, p.Equals("i.department_id", *f.DepartmentID))
	}

	rows, err := r.db.Query(ctx, `
		SELECT i.id, i.date, i.current_patient_count, i.new_admission_count,
		       i.discharge_count, i.transfer_out_count, i.transfer_in_count, i.created_at,
		       `+masterdata.WardColumns("w")+`,
		       `+masterdata.DepartmentColumns("d")+`
		FROM inpatient_records i
		JOIN wards w ON i.ward_id = w.id
		JOIN departments d ON i.department_id = d.id`+preds.Where()+`
		ORDER BY i.date DESC, w.code, d.code`, p.Args()...)
	if err != nil {
		return nil, fmt.Errorf("inpatient records: %w", err)
	}
	defer rows.Close()

	records := []InpatientRecord{}
	for rows.Next() {
		var rec InpatientRecord
		dest := []interface{}{
			&rec.ID, &rec.Date, &rec.CurrentPatientCount, &rec.NewAdmissionCount,
			&rec.DischargeCount, &rec.TransferOutCount, &rec.TransferInCount, &rec.CreatedAt,
		}
		dest = append(dest, rec.Ward.Fields()...)
		dest = append(dest, rec.Department.Fields()...)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan inpatient record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate inpatient records: %w", err)
	}
	return records, nil
}
