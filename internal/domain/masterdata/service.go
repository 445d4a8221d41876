package masterdata

import "context"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ListDepartments returns every department ordered by (display order, code).
func (s *Service) ListDepartments(ctx context.Context) ([]Department, error) {
	return s.repo.ListDepartments(ctx)
}

// ListWards returns every ward ordered by (display order, code).
func (s *Service) ListWards(ctx context.Context) ([]Ward, error) {
	return s.repo.ListWards(ctx)
}
