package usecase

import (
	"context"
	"log/slog"
	"strings"

	"monhaven/src/core/domain"
	"monhaven/src/core/ports"
)

// TaskService handles one-shot completable tasks.
type TaskService struct {
	repo ports.GameRepository
	log  *slog.Logger
}

func NewTaskService(repo ports.GameRepository, log *slog.Logger) *TaskService {
	return &TaskService{repo: repo, log: log}
}

func (s *TaskService) Create(ctx context.Context, task domain.Task) (*domain.Task, error) {
	if task.TrainerID == 0 {
		return nil, domain.NewValidationError("trainer_id", "trainer is required")
	}
	if strings.TrimSpace(task.Name) == "" {
		return nil, domain.NewValidationError("name", "task name is required")
	}
	if task.CoinReward < 0 {
		return nil, domain.NewValidationError("coin_reward", "coin reward cannot be negative")
	}
	if task.LevelReward < 0 {
		return nil, domain.NewValidationError("level_reward", "level reward cannot be negative")
	}

	if task.MonsterID != nil {
		mon, err := s.repo.GetMonsterByID(ctx, *task.MonsterID)
		if err != nil {
			return nil, err
		}
		if mon.TrainerID != task.TrainerID {
			return nil, domain.NewOwnershipError("monster does not belong to trainer")
		}
	}
	return s.repo.CreateTask(ctx, task)
}

func (s *TaskService) Complete(ctx context.Context, taskID int64) (*ports.TaskResult, error) {
	return s.repo.CompleteTask(ctx, taskID)
}
