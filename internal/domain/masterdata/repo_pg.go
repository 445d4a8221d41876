package masterdata

import (
	"context"
	"fmt"

	"github.com/hospital/dashboard/internal/platform/db"
)

type repoPG struct {
	db db.Querier
}

func NewRepo(q db.Querier) Repository {
	return &repoPG{db: q}
}

func (r *repoPG) ListDepartments(ctx context.Context) ([]Department, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+DepartmentColumns("d")+`
		FROM departments d
		ORDER BY d.display_order, d.code`)
	if err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	defer rows.Close()

	depts := []Department{}
	for rows.Next() {
		var d Department
		if err := rows.Scan(d.Fields()...); err != nil {
			return nil, fmt.Errorf("scan department: %w", err)
		}
		depts = append(depts, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate departments: %w", err)
	}
	return depts, nil
}

func (r *repoPG) ListWards(ctx context.Context) ([]Ward, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+WardColumns("w")+`
		FROM wards w
		ORDER BY w.display_order, w.code`)
	if err != nil {
		return nil, fmt.Errorf("list wards: %w", err)
	}
	defer rows.Close()

	wards := []Ward{}
	for rows.Next() {
		var w Ward
		if err := rows.Scan(w.Fields()...); err != nil {
			return nil, fmt.Errorf("scan ward: %w", err)
		}
		wards = append(wards, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate wards: %w", err)
	}
	return wards, nil
}
