package sales

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/hospital/dashboard/internal/domain/masterdata"
	"github.com/hospital/dashboard/internal/platform/db"
	"github.com/hospital/dashboard/pkg/period"
)

const doctorColumns = `doc.code, doc.name, doc.department_code, doc.display_order, doc.created_at`

type repoPG struct {
	db db.Querier
}

func NewRepo(q db.Querier) Repository {
	return &repoPG{db: q}
}

func (r *repoPG) ListDoctors(ctx context.Context) ([]Doctor, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+doctorColumns+`, `+masterdata.DepartmentColumns("dept")+`
		FROM doctors doc
		JOIN departments dept ON doc.department_code = dept.code
		ORDER BY dept.display_order, dept.code, doc.display_order, doc.name`)
	if err != nil {
		return nil, fmt.Errorf("list doctors: %w", err)
	}
	return scanDoctors(rows)
}

func (r *repoPG) ListDoctorsByDepartment(ctx context.Context, departmentCode string) ([]Doctor, error) {
	var p db.Params
	rows, err := r.db.Query(ctx, `
		SELECT `+doctorColumns+`, `+masterdata.DepartmentColumns("dept")+`
		FROM doctors doc
		JOIN departments dept ON doc.department_code = dept.code
		WHERE `+p.Equals("doc.department_code", departmentCode)+`
		ORDER BY doc.display_order, doc.name`, p.Args()...)
	if err != nil {
		return nil, fmt.Errorf("list doctors of department: %w", err)
	}
	return scanDoctors(rows)
}

func scanDoctors(rows pgx.Rows) ([]Doctor, error) {
	defer rows.Close()

	doctors := []Doctor{}
	for rows.Next() {
		var d Doctor
		dest := append([]interface{}{&d.Code, &d.Name, &d.DepartmentCode, &d.DisplayOrder, &d.CreatedAt}, d.Department.Fields()...)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan doctor: %w", err)
		}
		doctors = append(doctors, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate doctors: %w", err)
	}
	return doctors, nil
}

func (r *repoPG) Summary(ctx context.Context, rng period.MonthRange) ([]Summary, error) {
	var p db.Params
	where := p.MonthRange("s.year_month", rng).Where()

	return r.querySummary(ctx, "sales summary", `
		SELECT s.year_month, SUM(s.outpatient_sales), SUM(s.inpatient_sales)
		FROM sales s`+where+`
		GROUP BY s.year_month
		ORDER BY s.year_month`, p.Args())
}

func (r *repoPG) ByDepartment(ctx context.Context, departmentCode string, rng period.MonthRange) ([]Summary, error) {
	var p db.Params
	preds := db.Predicates{p.Equals("doc.department_code", departmentCode)}
	preds = append(preds, p.MonthRange("s.year_month", rng)...)

	return r.querySummary(ctx, "sales by department", `
		SELECT s.year_month, SUM(s.outpatient_sales), SUM(s.inpatient_sales)
		FROM sales s
		JOIN doctors doc ON s.doctor_code = doc.code`+preds.Where()+`
		GROUP BY s.year_month
		ORDER BY s.year_month`, p.Args())
}

func (r *repoPG) querySummary(ctx context.Context, op, sql string, args []interface{}) ([]Summary, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var scanned []summaryRow
	for rows.Next() {
		var row summaryRow
		if err := rows.Scan(&row.YearMonth, &row.Outpatient, &row.Inpatient); err != nil {
			return nil, fmt.Errorf("scan %s: %w", op, err)
		}
		scanned = append(scanned, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", op, err)
	}
	return shapeSummary(scanned)
}

func (r *repoPG) ByDoctor(ctx context.Context, doctorCode string, rng period.MonthRange) ([]Sales, error) {
	var p db.Params
	preds := db.Predicates{p.Equals("s.doctor_code", doctorCode)}
	preds = append(preds, p.MonthRange("s.year_month", rng)...)

	return r.querySales(ctx, "sales by doctor", `
		SELECT s.doctor_code, s.year_month, s.outpatient_sales, s.inpatient_sales, s.updated_at
		FROM sales s`+preds.Where()+`
		ORDER BY s.year_month`, p.Args())
}

func (r *repoPG) InDepartment(ctx context.Context, departmentCode string, rng period.MonthRange) ([]Sales, error) {
	var p db.Params
	preds := db.Predicates{p.Equals("doc.department_code", departmentCode)}
	preds = append(preds, p.MonthRange("s.year_month", rng)...)

	return r.querySales(ctx, "sales of department doctors", `
		SELECT s.doctor_code, s.year_month, s.outpatient_sales, s.inpatient_sales, s.updated_at
		FROM sales s
		JOIN doctors doc ON s.doctor_code = doc.code`+preds.Where()+`
		ORDER BY s.doctor_code, s.year_month`, p.Args())
}

func (r *repoPG) querySales(ctx context.Context, op, sql string, args []interface{}) ([]Sales, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var scanned []salesRow
	for rows.Next() {
		var row salesRow
		if err := rows.Scan(&row.DoctorCode, &row.YearMonth, &row.Outpatient, &row.Inpatient, &row.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan %s: %w", op, err)
		}
		scanned = append(scanned, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", op, err)
	}
	return shapeSales(scanned)
}
