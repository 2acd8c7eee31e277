package usecase

import (
	"context"
	"log/slog"
	"strings"

	"monhaven/src/core/domain"
	"monhaven/src/core/ports"
)

// TrainerService handles trainer profiles, currency, and inventory.
type TrainerService struct {
	repo ports.GameRepository
	log  *slog.Logger
}

func NewTrainerService(repo ports.GameRepository, log *slog.Logger) *TrainerService {
	return &TrainerService{repo: repo, log: log}
}

func (s *TrainerService) Create(ctx context.Context, playerID, name string) (*domain.Trainer, error) {
	if strings.TrimSpace(playerID) == "" {
		return nil, domain.NewValidationError("player_id", "player id is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, domain.NewValidationError("name", "trainer name is required")
	}

	trainer := domain.Trainer{
		PlayerID: playerID,
		Name:     name,
		Level:    domain.DefaultTrainerLevel,
		Currency: domain.DefaultTrainerCurrency,
	}
	created, err := s.repo.CreateTrainer(ctx, trainer)
	if err != nil {
		return nil, err
	}
	s.log.Info("trainer created", "trainer_id", created.ID, "player_id", created.PlayerID)
	return created, nil
}

func (s *TrainerService) Get(ctx context.Context, trainerID int64) (*domain.Trainer, error) {
	return s.repo.GetTrainerByID(ctx, trainerID)
}

func (s *TrainerService) ListByPlayer(ctx context.Context, playerID string) ([]domain.Trainer, error) {
	if strings.TrimSpace(playerID) == "" {
		return nil, domain.NewValidationError("player_id", "player id is required")
	}
	return s.repo.ListTrainersByPlayer(ctx, playerID)
}

// Principal resolves a player's highest-level trainer.
func (s *TrainerService) Principal(ctx context.Context, playerID string) (*domain.Trainer, error) {
	if strings.TrimSpace(playerID) == "" {
		return nil, domain.NewValidationError("player_id", "player id is required")
	}
	trainer, err := s.repo.PrincipalTrainer(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if trainer == nil {
		return nil, domain.NewNotFoundError("trainer")
	}
	return trainer, nil
}

func (s *TrainerService) AddCoins(ctx context.Context, trainerID, coins int64) (*domain.Trainer, error) {
	if coins == 0 {
		return nil, domain.NewValidationError("coins", "coin amount cannot be zero")
	}
	return s.repo.AddCoins(ctx, trainerID, coins)
}

func (s *TrainerService) AddLevels(ctx context.Context, trainerID int64, levels int) (*domain.Trainer, error) {
	if levels <= 0 {
		return nil, domain.NewValidationError("levels", "levels must be positive")
	}
	return s.repo.AddLevels(ctx, trainerID, levels)
}

// UpdateInventory adjusts one inventory entry by delta.
func (s *TrainerService) UpdateInventory(ctx context.Context, trainerID int64, category domain.InventoryCategory, itemName string, delta int) (*domain.Inventory, error) {
	if !domain.ValidCategory(category) {
		return nil, domain.NewValidationError("category", "unknown inventory category")
	}
	if strings.TrimSpace(itemName) == "" {
		return nil, domain.NewValidationError("item_name", "item name is required")
	}
	if delta == 0 {
		return nil, domain.NewValidationError("delta", "delta cannot be zero")
	}
	if _, err := s.repo.GetTrainerByID(ctx, trainerID); err != nil {
		return nil, err
	}
	return s.repo.UpdateInventoryItem(ctx, trainerID, category, itemName, delta)
}

func (s *TrainerService) Inventory(ctx context.Context, trainerID int64) (*domain.Inventory, error) {
	return s.repo.GetInventory(ctx, trainerID)
}

func (s *TrainerService) ItemsByCategory(ctx context.Context, category domain.InventoryCategory) ([]domain.Item, error) {
	if !domain.ValidCategory(category) {
		return nil, domain.NewValidationError("category", "unknown inventory category")
	}
	return s.repo.ListItemsByCategory(ctx, category)
}
