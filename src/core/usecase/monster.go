package usecase

import (
	"context"
	"log/slog"
	"strings"

	"monhaven/src/core/domain"
	"monhaven/src/core/ports"
)

// MonsterService handles monster creation and lookups.
type MonsterService struct {
	repo ports.GameRepository
	log  *slog.Logger
}

func NewMonsterService(repo ports.GameRepository, log *slog.Logger) *MonsterService {
	return &MonsterService{repo: repo, log: log}
}

func (s *MonsterService) Create(ctx context.Context, mon domain.Monster) (*domain.Monster, error) {
	if mon.TrainerID == 0 {
		return nil, domain.NewValidationError("trainer_id", "trainer is required")
	}
	if strings.TrimSpace(mon.Name) == "" {
		return nil, domain.NewValidationError("name", "monster name is required")
	}
	if strings.TrimSpace(mon.Species1) == "" {
		return nil, domain.NewValidationError("species1", "primary species is required")
	}
	if strings.TrimSpace(mon.Type1) == "" {
		return nil, domain.NewValidationError("type1", "primary type is required")
	}
	if mon.Level <= 0 {
		mon.Level = 1
	}
	if mon.BoxNumber <= 0 {
		mon.BoxNumber = domain.DefaultBoxNumber
	}
	if mon.Attribute == "" {
		mon.Attribute = domain.DefaultMonsterAttribute
	}
	return s.repo.CreateMonster(ctx, mon)
}

func (s *MonsterService) Get(ctx context.Context, monID int64) (*domain.Monster, error) {
	return s.repo.GetMonsterByID(ctx, monID)
}

func (s *MonsterService) ListByTrainer(ctx context.Context, trainerID int64) ([]domain.Monster, error) {
	if _, err := s.repo.GetTrainerByID(ctx, trainerID); err != nil {
		return nil, err
	}
	return s.repo.ListMonstersByTrainer(ctx, trainerID)
}
