package masterdata

import "context"

// Repository reads the reference lists.
type Repository interface {
	ListDepartments(ctx context.Context) ([]Department, error)
	ListWards(ctx context.Context) ([]Ward, error)
}
