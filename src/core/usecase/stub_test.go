package usecase

import (
	"context"
	"io"
	"log/slog"
	"time"

	"monhaven/src/core/domain"
	"monhaven/src/core/ports"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubRepo implements the repository methods a test cares about through
// function hooks. The embedded interface covers the rest; calling an
// unhooked method panics, which keeps tests honest about what they touch.
type stubRepo struct {
	ports.GameRepository

	getCurrentBoss   func(ctx context.Context) (*domain.Boss, error)
	getBossByID      func(ctx context.Context, bossID int64) (*domain.Boss, error)
	damageBoss       func(ctx context.Context, bossID int64, playerID string, amount int64, source string, trainerID *int64) (*domain.Boss, error)
	getTrainerReward func(ctx context.Context, bossID, trainerID int64) (*domain.BossReward, error)
	getTopDamagers   func(ctx context.Context, bossID int64, limit int) ([]ports.TopDamager, error)

	claimTrainerRewards func(ctx context.Context, bossID, trainerID int64) (*ports.RewardGrant, error)
	principalTrainer func(ctx context.Context, playerID string) (*domain.Trainer, error)

	createTrade  func(ctx context.Context, trade domain.Trade) (*domain.Trade, error)
	processTrade func(ctx context.Context, tradeID int64) (*domain.Trade, error)

	getTrainerByID func(ctx context.Context, trainerID int64) (*domain.Trainer, error)
	getMonsterByID func(ctx context.Context, monID int64) (*domain.Monster, error)

	getMissionByID func(ctx context.Context, missionID int64) (*domain.Mission, error)
	startMission   func(ctx context.Context, trainerID, missionID int64, target int, monIDs []int64) (*domain.ActiveMission, error)

	createTask    func(ctx context.Context, task domain.Task) (*domain.Task, error)
	createHabit   func(ctx context.Context, habit domain.Habit) (*domain.Habit, error)
	completeHabit func(ctx context.Context, habitID int64, now time.Time) (*ports.HabitResult, error)
}

func (s *stubRepo) GetCurrentBoss(ctx context.Context) (*domain.Boss, error) {
	return s.getCurrentBoss(ctx)
}

func (s *stubRepo) GetBossByID(ctx context.Context, bossID int64) (*domain.Boss, error) {
	return s.getBossByID(ctx, bossID)
}

func (s *stubRepo) DamageBoss(ctx context.Context, bossID int64, playerID string, amount int64, source string, trainerID *int64) (*domain.Boss, error) {
	return s.damageBoss(ctx, bossID, playerID, amount, source, trainerID)
}

func (s *stubRepo) GetTrainerReward(ctx context.Context, bossID, trainerID int64) (*domain.BossReward, error) {
	return s.getTrainerReward(ctx, bossID, trainerID)
}

func (s *stubRepo) GetTopDamagers(ctx context.Context, bossID int64, limit int) ([]ports.TopDamager, error) {
	return s.getTopDamagers(ctx, bossID, limit)
}

func (s *stubRepo) ClaimTrainerRewards(ctx context.Context, bossID, trainerID int64) (*ports.RewardGrant, error) {
	return s.claimTrainerRewards(ctx, bossID, trainerID)
}

func (s *stubRepo) PrincipalTrainer(ctx context.Context, playerID string) (*domain.Trainer, error) {
	return s.principalTrainer(ctx, playerID)
}

func (s *stubRepo) CreateTrade(ctx context.Context, trade domain.Trade) (*domain.Trade, error) {
	return s.createTrade(ctx, trade)
}

func (s *stubRepo) ProcessTrade(ctx context.Context, tradeID int64) (*domain.Trade, error) {
	return s.processTrade(ctx, tradeID)
}

func (s *stubRepo) GetTrainerByID(ctx context.Context, trainerID int64) (*domain.Trainer, error) {
	return s.getTrainerByID(ctx, trainerID)
}

func (s *stubRepo) GetMonsterByID(ctx context.Context, monID int64) (*domain.Monster, error) {
	return s.getMonsterByID(ctx, monID)
}

func (s *stubRepo) GetMissionByID(ctx context.Context, missionID int64) (*domain.Mission, error) {
	return s.getMissionByID(ctx, missionID)
}

func (s *stubRepo) StartMission(ctx context.Context, trainerID, missionID int64, target int, monIDs []int64) (*domain.ActiveMission, error) {
	return s.startMission(ctx, trainerID, missionID, target, monIDs)
}

func (s *stubRepo) CreateTask(ctx context.Context, task domain.Task) (*domain.Task, error) {
	return s.createTask(ctx, task)
}

func (s *stubRepo) CreateHabit(ctx context.Context, habit domain.Habit) (*domain.Habit, error) {
	return s.createHabit(ctx, habit)
}

func (s *stubRepo) CompleteHabit(ctx context.Context, habitID int64, now time.Time) (*ports.HabitResult, error) {
	return s.completeHabit(ctx, habitID, now)
}
