package staff

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/hospital/dashboard/internal/platform/db"
)

type repoPG struct {
	db db.Querier
}

func NewRepo(q db.Querier) Repository {
	return &repoPG{db: q}
}

func (r *repoPG) GetByID(ctx context.Context, id string) (*Staff, error) {
	var s Staff
	err := r.db.QueryRow(ctx, `
		SELECT s.id, s.name, s.job_type_code, s.created_at,
		       p.job_type_code, p.job_type_name, p.level
		FROM staff s
		JOIN permissions p ON s.job_type_code = p.job_type_code
		WHERE s.id = $1`, id,
	).Scan(
		&s.ID, &s.Name, &s.JobTypeCode, &s.CreatedAt,
		&s.Permission.JobTypeCode, &s.Permission.JobTypeName, &s.Permission.Level,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("verify staff: %w", err)
	}
	return &s, nil
}
