package staff

import (
	"context"

	"github.com/hospital/dashboard/internal/platform/apperr"
	"github.com/hospital/dashboard/internal/platform/auth"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// VerifyStaff resolves a staff identifier to the staff member and their
// permission. A nil result with a nil error means the identifier is unknown.
func (s *Service) VerifyStaff(ctx context.Context, staffID string) (*Staff, error) {
	if staffID == "" {
		return nil, apperr.Required("staffId")
	}
	return s.repo.GetByID(ctx, staffID)
}

// Resolve implements auth.Resolver.
func (s *Service) Resolve(ctx context.Context, staffID string) (*auth.Identity, error) {
	st, err := s.VerifyStaff(ctx, staffID)
	if err != nil || st == nil {
		return nil, err
	}
	return &auth.Identity{
		StaffID:     st.ID,
		Name:        st.Name,
		JobTypeCode: st.JobTypeCode,
		Level:       st.Permission.Level,
	}, nil
}
