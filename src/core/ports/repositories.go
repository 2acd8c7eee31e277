// Package ports defines interfaces (ports) that connect core domain to infrastructure.
// These interfaces follow the ports and adapters (hexagonal) architecture pattern.
//
// Ports are defined here in the core layer, while implementations (adapters)
// live in src/infra/repo. This ensures the core has no dependency on infrastructure.
package ports

import (
	"context"
	"time"

	"monhaven/src/core/domain"
)

// Repository is the base interface for all repositories.
// Concrete repositories should embed this and add entity-specific methods.
type Repository interface {
	// Health checks if the underlying storage is reachable.
	Health(ctx context.Context) error
}

// TopDamager is one row of a boss damage leaderboard.
type TopDamager struct {
	PlayerID    string `json:"player_id"`
	TrainerName string `json:"trainer_name"`
	TotalDamage int64  `json:"total_damage"`
}

// RewardStatus reports whether a player has a reward row for a boss and
// whether it has been claimed.
type RewardStatus struct {
	HasRewards bool               `json:"has_rewards"`
	IsClaimed  bool               `json:"is_claimed"`
	Reward     *domain.BossReward `json:"rewards,omitempty"`
}

// RewardGrant is the outcome of a successful reward claim: the claimed
// row plus everything that was credited.
type RewardGrant struct {
	Reward   domain.BossReward `json:"reward"`
	Trainer  domain.Trainer    `json:"trainer"`
	Monsters []domain.Monster  `json:"monsters"`
}

// TradeResult is the non-throwing settlement wrapper returned to callers.
type TradeResult struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Trade   *domain.Trade `json:"trade,omitempty"`
}

// HabitResult is the outcome of a habit completion attempt.
type HabitResult struct {
	Habit                 domain.Habit `json:"habit"`
	AlreadyCompletedToday bool         `json:"already_completed_today"`
	CoinsAwarded          int64        `json:"coins_awarded"`
	LevelsAwarded         int          `json:"levels_awarded"`
}

// TaskResult is the outcome of a task completion.
type TaskResult struct {
	Task          domain.Task `json:"task"`
	CoinsAwarded  int64       `json:"coins_awarded"`
	LevelsAwarded int         `json:"levels_awarded"`
}

// MissionUpdate is the outcome of a mission progress increment. When the
// progress counter reaches its target the mission completes in the same
// operation and Completed is set.
type MissionUpdate struct {
	Active        *domain.ActiveMission `json:"active_mission,omitempty"`
	Completed     bool                  `json:"completed"`
	CoinsAwarded  int64                 `json:"coins_awarded"`
	LevelsAwarded int                   `json:"levels_awarded"`
	ItemsAwarded  []domain.RewardItem   `json:"items_awarded,omitempty"`
}

// GameRepository is a composite repository covering all domain operations.
// Multi-step mutations (boss damage, reward claims, trade settlement,
// habit/task/mission completion) must be atomic: implementations wrap
// them in a single storage transaction.
type GameRepository interface {
	Repository

	// Bosses
	GetCurrentBoss(ctx context.Context) (*domain.Boss, error)
	GetBossByID(ctx context.Context, bossID int64) (*domain.Boss, error)
	// CreateBoss deactivates every active boss and inserts the new one as
	// active, full health, stamped with the current month/year, in one transaction.
	CreateBoss(ctx context.Context, boss domain.Boss) (*domain.Boss, error)
	// DamageBoss applies damage, appends the damage record with the
	// player's running total, and on the defeat transition generates one
	// reward row per contributing trainer. All of it commits or none.
	DamageBoss(ctx context.Context, bossID int64, playerID string, amount int64, source string, trainerID *int64) (*domain.Boss, error)
	GetPlayerDamage(ctx context.Context, bossID int64, playerID string) (*domain.DamageSummary, error)
	GetTopDamagers(ctx context.Context, bossID int64, limit int) ([]TopDamager, error)
	GetTrainerReward(ctx context.Context, bossID, trainerID int64) (*domain.BossReward, error)
	// ClaimTrainerRewards flips the claim flag and credits coins, levels,
	// items, and monsters in one transaction. Random monster entries are
	// rolled from the species catalog; a failed roll degrades to a
	// placeholder monster instead of aborting the claim.
	ClaimTrainerRewards(ctx context.Context, bossID, trainerID int64) (*RewardGrant, error)
	// PrincipalTrainer resolves a player's highest-level trainer, or nil
	// when the player owns none.
	PrincipalTrainer(ctx context.Context, playerID string) (*domain.Trainer, error)

	// Reward templates
	CreateRewardTemplate(ctx context.Context, tpl domain.RewardTemplate) (*domain.RewardTemplate, error)
	GetRewardTemplate(ctx context.Context, templateID int64) (*domain.RewardTemplate, error)
	ListRewardTemplates(ctx context.Context) ([]domain.RewardTemplate, error)
	AssignTemplate(ctx context.Context, bossID, templateID int64) error
	UnassignTemplate(ctx context.Context, bossID, templateID int64) error
	ListAssignedTemplates(ctx context.Context, bossID int64) ([]domain.RewardTemplate, error)

	// Trades
	CreateTrade(ctx context.Context, trade domain.Trade) (*domain.Trade, error)
	GetTradeByID(ctx context.Context, tradeID int64) (*domain.Trade, error)
	// ProcessTrade settles a pending trade: ownership checks, monster
	// reassignment, and item transfers all-or-nothing in one transaction.
	ProcessTrade(ctx context.Context, tradeID int64) (*domain.Trade, error)
	CancelTrade(ctx context.Context, tradeID int64) (*domain.Trade, error)
	ListTradesByTrainer(ctx context.Context, trainerID int64) ([]domain.Trade, error)

	// Trainers
	CreateTrainer(ctx context.Context, trainer domain.Trainer) (*domain.Trainer, error)
	GetTrainerByID(ctx context.Context, trainerID int64) (*domain.Trainer, error)
	ListTrainersByPlayer(ctx context.Context, playerID string) ([]domain.Trainer, error)
	AddCoins(ctx context.Context, trainerID, coins int64) (*domain.Trainer, error)
	AddLevels(ctx context.Context, trainerID int64, levels int) (*domain.Trainer, error)
	// UpdateInventoryItem adjusts a quantity by delta. Entries never go
	// negative; an entry is removed when its quantity reaches zero.
	UpdateInventoryItem(ctx context.Context, trainerID int64, category domain.InventoryCategory, itemName string, delta int) (*domain.Inventory, error)
	GetInventory(ctx context.Context, trainerID int64) (*domain.Inventory, error)

	// Monsters
	CreateMonster(ctx context.Context, mon domain.Monster) (*domain.Monster, error)
	GetMonsterByID(ctx context.Context, monID int64) (*domain.Monster, error)
	ListMonstersByTrainer(ctx context.Context, trainerID int64) ([]domain.Monster, error)

	// Item catalog
	ListItemsByCategory(ctx context.Context, category domain.InventoryCategory) ([]domain.Item, error)

	// Missions
	ListAvailableMissions(ctx context.Context, trainerID int64) ([]domain.Mission, error)
	GetMissionByID(ctx context.Context, missionID int64) (*domain.Mission, error)
	GetActiveMission(ctx context.Context, trainerID int64) (*domain.ActiveMission, error)
	StartMission(ctx context.Context, trainerID, missionID int64, target int, monIDs []int64) (*domain.ActiveMission, error)
	// AddMissionProgress bumps the bounded counter; when it reaches the
	// target the mission completes, rewards are granted, bound monsters
	// level up, and a history row is written, all in one transaction.
	AddMissionProgress(ctx context.Context, trainerID int64, amount int) (*MissionUpdate, error)

	// Tasks
	CreateTask(ctx context.Context, task domain.Task) (*domain.Task, error)
	CompleteTask(ctx context.Context, taskID int64) (*TaskResult, error)

	// Habits
	CreateHabit(ctx context.Context, habit domain.Habit) (*domain.Habit, error)
	// CompleteHabit advances the streak per the frequency rules, grants
	// rewards, and records a completion row. Completing a habit twice on
	// the same calendar day is a no-op reported via AlreadyCompletedToday.
	CompleteHabit(ctx context.Context, habitID int64, now time.Time) (*HabitResult, error)
}
