package usecase

import (
	"context"

	"monhaven/src/core/ports"
)

// HealthService reports service and storage health.
type HealthService struct {
	repo ports.Repository
}

func NewHealthService(repo ports.Repository) *HealthService {
	return &HealthService{repo: repo}
}

// Check returns nil when the underlying storage is reachable.
func (s *HealthService) Check(ctx context.Context) error {
	return s.repo.Health(ctx)
}
