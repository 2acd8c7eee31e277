// Package usecase contains application services that orchestrate domain
// logic through the repository port.
package usecase

import (
	"context"
	"log/slog"
	"strings"

	"monhaven/src/core/domain"
	"monhaven/src/core/ports"
)

// BossService handles the shared raid boss lifecycle, damage, and rewards.
type BossService struct {
	repo ports.GameRepository
	log  *slog.Logger
}

func NewBossService(repo ports.GameRepository, log *slog.Logger) *BossService {
	return &BossService{repo: repo, log: log}
}

// Current returns the active boss.
func (s *BossService) Current(ctx context.Context) (*domain.Boss, error) {
	boss, err := s.repo.GetCurrentBoss(ctx)
	if err != nil {
		return nil, err
	}
	if boss == nil {
		return nil, domain.NewNotFoundError("active boss")
	}
	return boss, nil
}

func (s *BossService) Get(ctx context.Context, bossID int64) (*domain.Boss, error) {
	return s.repo.GetBossByID(ctx, bossID)
}

// Create spawns a new boss and retires any currently active one.
func (s *BossService) Create(ctx context.Context, boss domain.Boss) (*domain.Boss, error) {
	if strings.TrimSpace(boss.Name) == "" {
		return nil, domain.NewValidationError("name", "boss name is required")
	}
	if boss.MaxHealth <= 0 {
		return nil, domain.NewValidationError("max_health", "max health must be positive")
	}

	created, err := s.repo.CreateBoss(ctx, boss)
	if err != nil {
		return nil, err
	}
	s.log.Info("boss created", "boss_id", created.ID, "name", created.Name, "max_health", created.MaxHealth)
	return created, nil
}

// Damage applies a player's hit to a boss. The damage is attributed to
// the player's principal trainer when they have one.
func (s *BossService) Damage(ctx context.Context, bossID int64, playerID string, amount int64, source string) (*domain.Boss, error) {
	if strings.TrimSpace(playerID) == "" {
		return nil, domain.NewValidationError("player_id", "player id is required")
	}
	if amount <= 0 {
		return nil, domain.NewValidationError("amount", "damage must be positive")
	}

	var trainerID *int64
	trainer, err := s.repo.PrincipalTrainer(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if trainer != nil {
		trainerID = &trainer.ID
	}

	return s.repo.DamageBoss(ctx, bossID, playerID, amount, source, trainerID)
}

func (s *BossService) PlayerDamage(ctx context.Context, bossID int64, playerID string) (*domain.DamageSummary, error) {
	if strings.TrimSpace(playerID) == "" {
		return nil, domain.NewValidationError("player_id", "player id is required")
	}
	if _, err := s.repo.GetBossByID(ctx, bossID); err != nil {
		return nil, err
	}
	return s.repo.GetPlayerDamage(ctx, bossID, playerID)
}

func (s *BossService) TopDamagers(ctx context.Context, bossID int64, limit int) ([]ports.TopDamager, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	if _, err := s.repo.GetBossByID(ctx, bossID); err != nil {
		return nil, err
	}
	return s.repo.GetTopDamagers(ctx, bossID, limit)
}

// RewardStatus reports whether a trainer has a reward for a boss. A
// missing reward row is a normal status, not an error.
func (s *BossService) RewardStatus(ctx context.Context, bossID, trainerID int64) (*ports.RewardStatus, error) {
	if _, err := s.repo.GetBossByID(ctx, bossID); err != nil {
		return nil, err
	}

	reward, err := s.repo.GetTrainerReward(ctx, bossID, trainerID)
	if err != nil {
		if domain.IsNotFound(err) {
			return &ports.RewardStatus{}, nil
		}
		return nil, err
	}
	return &ports.RewardStatus{
		HasRewards: true,
		IsClaimed:  reward.IsClaimed,
		Reward:     reward,
	}, nil
}

func (s *BossService) Claim(ctx context.Context, bossID, trainerID int64) (*ports.RewardGrant, error) {
	return s.repo.ClaimTrainerRewards(ctx, bossID, trainerID)
}

// PlayerRewardStatus reports the reward standing for a player's principal
// trainer. A player who owns no trainers cannot have rewards.
func (s *BossService) PlayerRewardStatus(ctx context.Context, bossID int64, playerID string) (*ports.RewardStatus, error) {
	trainer, err := s.principalForPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}
	return s.RewardStatus(ctx, bossID, trainer.ID)
}

// ClaimPlayerRewards claims the boss reward on behalf of the player's
// principal trainer.
func (s *BossService) ClaimPlayerRewards(ctx context.Context, bossID int64, playerID string) (*ports.RewardGrant, error) {
	trainer, err := s.principalForPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}
	return s.Claim(ctx, bossID, trainer.ID)
}

func (s *BossService) principalForPlayer(ctx context.Context, playerID string) (*domain.Trainer, error) {
	if strings.TrimSpace(playerID) == "" {
		return nil, domain.NewValidationError("player_id", "player id is required")
	}
	trainer, err := s.repo.PrincipalTrainer(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if trainer == nil {
		return nil, domain.NewNotFoundError("trainer for player")
	}
	return trainer, nil
}

// Reward template administration.

func (s *BossService) CreateTemplate(ctx context.Context, tpl domain.RewardTemplate) (*domain.RewardTemplate, error) {
	if strings.TrimSpace(tpl.Name) == "" {
		return nil, domain.NewValidationError("name", "template name is required")
	}
	if tpl.Coins < 0 {
		return nil, domain.NewValidationError("coins", "coins cannot be negative")
	}
	if tpl.Levels < 0 {
		return nil, domain.NewValidationError("levels", "levels cannot be negative")
	}
	for _, item := range tpl.Items {
		if strings.TrimSpace(item.Name) == "" {
			return nil, domain.NewValidationError("items", "item name is required")
		}
		if item.Quantity <= 0 {
			return nil, domain.NewValidationError("items", "item quantity must be positive")
		}
	}
	if tpl.Items == nil {
		tpl.Items = []domain.RewardItem{}
	}
	if tpl.Monsters == nil {
		tpl.Monsters = []domain.RewardMonster{}
	}
	return s.repo.CreateRewardTemplate(ctx, tpl)
}

func (s *BossService) ListTemplates(ctx context.Context) ([]domain.RewardTemplate, error) {
	return s.repo.ListRewardTemplates(ctx)
}

func (s *BossService) AssignTemplate(ctx context.Context, bossID, templateID int64) error {
	if _, err := s.repo.GetBossByID(ctx, bossID); err != nil {
		return err
	}
	if _, err := s.repo.GetRewardTemplate(ctx, templateID); err != nil {
		return err
	}
	return s.repo.AssignTemplate(ctx, bossID, templateID)
}

func (s *BossService) UnassignTemplate(ctx context.Context, bossID, templateID int64) error {
	return s.repo.UnassignTemplate(ctx, bossID, templateID)
}

func (s *BossService) AssignedTemplates(ctx context.Context, bossID int64) ([]domain.RewardTemplate, error) {
	if _, err := s.repo.GetBossByID(ctx, bossID); err != nil {
		return nil, err
	}
	return s.repo.ListAssignedTemplates(ctx, bossID)
}
