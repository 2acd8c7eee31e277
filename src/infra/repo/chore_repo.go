package repo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"monhaven/src/core/domain"
	"monhaven/src/core/ports"
)

const taskColumns = `id, trainer_id, name, coin_reward, level_reward, monster_id, is_completed, completed_at, created_at`

func scanTask(row pgx.Row) (*domain.Task, error) {
	var t domain.Task
	if err := row.Scan(
		&t.ID, &t.TrainerID, &t.Name, &t.CoinReward, &t.LevelReward, &t.MonsterID,
		&t.IsCompleted, &t.CompletedAt, &t.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *PostgresRepository) CreateTask(ctx context.Context, task domain.Task) (*domain.Task, error) {
	const q = `
		INSERT INTO tasks (trainer_id, name, coin_reward, level_reward, monster_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + taskColumns + `
	`
	created, err := scanTask(r.pool.QueryRow(ctx, q,
		task.TrainerID, task.Name, task.CoinReward, task.LevelReward, task.MonsterID,
	))
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, domain.NewNotFoundError("trainer or monster")
		}
		return nil, err
	}
	return created, nil
}

// CompleteTask marks a one-shot task done exactly once and pays out its
// rewards: coins to the trainer, levels to the bound monster when one is
// set, otherwise to the trainer.
func (r *PostgresRepository) CompleteTask(ctx context.Context, taskID int64) (*ports.TaskResult, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const lockQ = `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1 FOR UPDATE`
	task, err := scanTask(tx.QueryRow(ctx, lockQ, taskID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("task")
		}
		return nil, err
	}
	if task.IsCompleted {
		return nil, domain.NewConflictError("task already completed")
	}

	const doneQ = `
		UPDATE tasks
		SET is_completed = TRUE, completed_at = now()
		WHERE id = $1
		RETURNING ` + taskColumns + `
	`
	task, err = scanTask(tx.QueryRow(ctx, doneQ, taskID))
	if err != nil {
		return nil, err
	}

	result := &ports.TaskResult{Task: *task}
	if task.CoinReward > 0 {
		if _, err := r.addCoinsTx(ctx, tx, task.TrainerID, task.CoinReward); err != nil {
			return nil, err
		}
		result.CoinsAwarded = task.CoinReward
	}
	if task.LevelReward > 0 {
		if task.MonsterID != nil {
			if err := r.levelUpMonsterTx(ctx, tx, *task.MonsterID, task.LevelReward); err != nil {
				return nil, err
			}
		} else {
			if _, err := r.addLevelsTx(ctx, tx, task.TrainerID, task.LevelReward); err != nil {
				return nil, err
			}
		}
		result.LevelsAwarded = task.LevelReward
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return result, nil
}

const habitColumns = `id, trainer_id, name, frequency, streak, last_completed_at, coin_reward, level_reward, monster_id, created_at`

func scanHabit(row pgx.Row) (*domain.Habit, error) {
	var h domain.Habit
	if err := row.Scan(
		&h.ID, &h.TrainerID, &h.Name, &h.Frequency, &h.Streak, &h.LastCompletedAt,
		&h.CoinReward, &h.LevelReward, &h.MonsterID, &h.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *PostgresRepository) CreateHabit(ctx context.Context, habit domain.Habit) (*domain.Habit, error) {
	const q = `
		INSERT INTO habits (trainer_id, name, frequency, coin_reward, level_reward, monster_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + habitColumns + `
	`
	created, err := scanHabit(r.pool.QueryRow(ctx, q,
		habit.TrainerID, habit.Name, habit.Frequency, habit.CoinReward, habit.LevelReward, habit.MonsterID,
	))
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, domain.NewNotFoundError("trainer or monster")
		}
		return nil, err
	}
	return created, nil
}

// CompleteHabit advances the streak per the frequency rules and records
// a completion. A second completion on the same calendar day changes
// nothing and awards nothing.
func (r *PostgresRepository) CompleteHabit(ctx context.Context, habitID int64, now time.Time) (*ports.HabitResult, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const lockQ = `SELECT ` + habitColumns + ` FROM habits WHERE id = $1 FOR UPDATE`
	habit, err := scanHabit(tx.QueryRow(ctx, lockQ, habitID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("habit")
		}
		return nil, err
	}

	streak, alreadyToday := domain.NextStreak(habit.Frequency, habit.Streak, habit.LastCompletedAt, now)
	if alreadyToday {
		if err := tx.Commit(ctx); err != nil {
			return nil, err
		}
		return &ports.HabitResult{Habit: *habit, AlreadyCompletedToday: true}, nil
	}

	const updateQ = `
		UPDATE habits
		SET streak = $2, last_completed_at = $3
		WHERE id = $1
		RETURNING ` + habitColumns + `
	`
	habit, err = scanHabit(tx.QueryRow(ctx, updateQ, habitID, streak, now))
	if err != nil {
		return nil, err
	}

	const completionQ = `
		INSERT INTO habit_completions (habit_id, streak, completed_at)
		VALUES ($1, $2, $3)
	`
	if _, err := tx.Exec(ctx, completionQ, habitID, streak, now); err != nil {
		return nil, err
	}

	result := &ports.HabitResult{Habit: *habit}
	if habit.CoinReward > 0 {
		if _, err := r.addCoinsTx(ctx, tx, habit.TrainerID, habit.CoinReward); err != nil {
			return nil, err
		}
		result.CoinsAwarded = habit.CoinReward
	}
	if habit.LevelReward > 0 {
		if habit.MonsterID != nil {
			if err := r.levelUpMonsterTx(ctx, tx, *habit.MonsterID, habit.LevelReward); err != nil {
				return nil, err
			}
		} else {
			if _, err := r.addLevelsTx(ctx, tx, habit.TrainerID, habit.LevelReward); err != nil {
				return nil, err
			}
		}
		result.LevelsAwarded = habit.LevelReward
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return result, nil
}
