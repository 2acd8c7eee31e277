package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"monhaven/src/core/domain"
	"monhaven/src/core/ports"
)

// HabitService handles repeating habits and their streaks.
type HabitService struct {
	repo ports.GameRepository
	log  *slog.Logger
	now  func() time.Time
}

func NewHabitService(repo ports.GameRepository, log *slog.Logger) *HabitService {
	return &HabitService{repo: repo, log: log, now: time.Now}
}

func (s *HabitService) Create(ctx context.Context, habit domain.Habit) (*domain.Habit, error) {
	if habit.TrainerID == 0 {
		return nil, domain.NewValidationError("trainer_id", "trainer is required")
	}
	if strings.TrimSpace(habit.Name) == "" {
		return nil, domain.NewValidationError("name", "habit name is required")
	}
	if habit.Frequency != domain.HabitDaily && habit.Frequency != domain.HabitWeekly {
		return nil, domain.NewValidationError("frequency", "frequency must be DAILY or WEEKLY")
	}
	if habit.CoinReward < 0 {
		return nil, domain.NewValidationError("coin_reward", "coin reward cannot be negative")
	}
	if habit.LevelReward < 0 {
		return nil, domain.NewValidationError("level_reward", "level reward cannot be negative")
	}

	if habit.MonsterID != nil {
		mon, err := s.repo.GetMonsterByID(ctx, *habit.MonsterID)
		if err != nil {
			return nil, err
		}
		if mon.TrainerID != habit.TrainerID {
			return nil, domain.NewOwnershipError("monster does not belong to trainer")
		}
	}
	return s.repo.CreateHabit(ctx, habit)
}

func (s *HabitService) Complete(ctx context.Context, habitID int64) (*ports.HabitResult, error) {
	result, err := s.repo.CompleteHabit(ctx, habitID, s.now())
	if err != nil {
		return nil, err
	}
	if result.AlreadyCompletedToday {
		s.log.Debug("habit already completed today", "habit_id", habitID)
	}
	return result, nil
}
