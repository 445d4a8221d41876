package staff

import "context"

// Repository looks up staff members. GetByID returns nil, nil when no row
// matches.
type Repository interface {
	GetByID(ctx context.Context, id string) (*Staff, error)
}
