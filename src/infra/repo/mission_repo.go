package repo

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"

	"monhaven/src/core/domain"
	"monhaven/src/core/ports"
)

const missionColumns = `id, name, description, difficulty, target_min, target_max, coin_reward, level_reward, item_rewards, active`

func scanMission(row pgx.Row) (*domain.Mission, error) {
	var m domain.Mission
	var items []byte
	if err := row.Scan(
		&m.ID, &m.Name, &m.Description, &m.Difficulty, &m.TargetMin, &m.TargetMax,
		&m.CoinReward, &m.LevelReward, &items, &m.Active,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &m.ItemRewards); err != nil {
		return nil, err
	}
	return &m, nil
}

const activeMissionColumns = `id, trainer_id, mission_id, progress, target, mon_ids, started_at, updated_at`

func scanActiveMission(row pgx.Row) (*domain.ActiveMission, error) {
	var am domain.ActiveMission
	if err := row.Scan(
		&am.ID, &am.TrainerID, &am.MissionID, &am.Progress, &am.Target, &am.MonIDs,
		&am.StartedAt, &am.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &am, nil
}

// ListAvailableMissions returns active missions the trainer has not yet
// completed.
func (r *PostgresRepository) ListAvailableMissions(ctx context.Context, trainerID int64) ([]domain.Mission, error) {
	const q = `
		SELECT ` + missionColumns + `
		FROM missions
		WHERE active
		  AND id NOT IN (SELECT mission_id FROM mission_history WHERE trainer_id = $1)
		ORDER BY id
	`
	rows, err := r.pool.Query(ctx, q, trainerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var missions []domain.Mission
	for rows.Next() {
		m, err := scanMission(rows)
		if err != nil {
			return nil, err
		}
		missions = append(missions, *m)
	}
	return missions, nil
}

func (r *PostgresRepository) GetMissionByID(ctx context.Context, missionID int64) (*domain.Mission, error) {
	const q = `SELECT ` + missionColumns + ` FROM missions WHERE id = $1`
	m, err := scanMission(r.pool.QueryRow(ctx, q, missionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("mission")
		}
		return nil, err
	}
	return m, nil
}

func (r *PostgresRepository) GetActiveMission(ctx context.Context, trainerID int64) (*domain.ActiveMission, error) {
	const q = `SELECT ` + activeMissionColumns + ` FROM active_missions WHERE trainer_id = $1`
	am, err := scanActiveMission(r.pool.QueryRow(ctx, q, trainerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("active mission")
		}
		return nil, err
	}
	return am, nil
}

// StartMission begins a mission for a trainer. The target is drawn by the
// caller; one active mission per trainer is enforced by the schema.
func (r *PostgresRepository) StartMission(ctx context.Context, trainerID, missionID int64, target int, monIDs []int64) (*domain.ActiveMission, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := r.transferMonstersCheckTx(ctx, tx, monIDs, trainerID); err != nil {
		return nil, err
	}

	if monIDs == nil {
		monIDs = []int64{}
	}
	const q = `
		INSERT INTO active_missions (trainer_id, mission_id, target, mon_ids)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + activeMissionColumns + `
	`
	am, err := scanActiveMission(tx.QueryRow(ctx, q, trainerID, missionID, target, monIDs))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.NewConflictError("trainer already has an active mission")
		}
		if isForeignKeyViolation(err) {
			return nil, domain.NewNotFoundError("trainer or mission")
		}
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return am, nil
}

// transferMonstersCheckTx verifies every bound monster belongs to the trainer.
func (r *PostgresRepository) transferMonstersCheckTx(ctx context.Context, tx pgx.Tx, monIDs []int64, trainerID int64) error {
	const q = `SELECT trainer_id FROM monsters WHERE id = $1`
	for _, monID := range monIDs {
		var owner int64
		if err := tx.QueryRow(ctx, q, monID).Scan(&owner); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.NewNotFoundError("monster")
			}
			return err
		}
		if owner != trainerID {
			return domain.NewOwnershipError("monster does not belong to trainer")
		}
	}
	return nil
}

// AddMissionProgress bumps the bounded progress counter. Reaching the
// target completes the mission in the same transaction: coins go to the
// trainer, level rewards to the bound monsters (or the trainer when none
// are bound), items to inventory, and a history row is recorded.
func (r *PostgresRepository) AddMissionProgress(ctx context.Context, trainerID int64, amount int) (*ports.MissionUpdate, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const lockQ = `SELECT ` + activeMissionColumns + ` FROM active_missions WHERE trainer_id = $1 FOR UPDATE`
	am, err := scanActiveMission(tx.QueryRow(ctx, lockQ, trainerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("active mission")
		}
		return nil, err
	}

	const bumpQ = `
		UPDATE active_missions
		SET progress = LEAST(target, progress + $2), updated_at = now()
		WHERE id = $1
		RETURNING ` + activeMissionColumns + `
	`
	am, err = scanActiveMission(tx.QueryRow(ctx, bumpQ, am.ID, amount))
	if err != nil {
		return nil, err
	}

	update := &ports.MissionUpdate{Active: am}
	if am.Progress < am.Target {
		if err := tx.Commit(ctx); err != nil {
			return nil, err
		}
		return update, nil
	}

	mission, err := r.getMissionTx(ctx, tx, am.MissionID)
	if err != nil {
		return nil, err
	}

	if mission.CoinReward > 0 {
		if _, err := r.addCoinsTx(ctx, tx, trainerID, mission.CoinReward); err != nil {
			return nil, err
		}
		update.CoinsAwarded = mission.CoinReward
	}
	if mission.LevelReward > 0 {
		if len(am.MonIDs) > 0 {
			for _, monID := range am.MonIDs {
				if err := r.levelUpMonsterTx(ctx, tx, monID, mission.LevelReward); err != nil {
					return nil, err
				}
			}
		} else {
			if _, err := r.addLevelsTx(ctx, tx, trainerID, mission.LevelReward); err != nil {
				return nil, err
			}
		}
		update.LevelsAwarded = mission.LevelReward
	}
	for _, item := range mission.ItemRewards {
		category := item.Category
		if !domain.ValidCategory(category) {
			category = domain.CategoryItems
		}
		if err := r.adjustInventoryTx(ctx, tx, trainerID, category, item.Name, item.Quantity); err != nil {
			return nil, err
		}
	}
	update.ItemsAwarded = mission.ItemRewards

	if _, err := tx.Exec(ctx, `DELETE FROM active_missions WHERE id = $1`, am.ID); err != nil {
		return nil, err
	}
	const historyQ = `
		INSERT INTO mission_history (trainer_id, mission_id, target)
		VALUES ($1, $2, $3)
	`
	if _, err := tx.Exec(ctx, historyQ, trainerID, am.MissionID, am.Target); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	update.Completed = true
	update.Active = nil
	r.log.Info("mission completed", "trainer_id", trainerID, "mission_id", am.MissionID)
	return update, nil
}

func (r *PostgresRepository) getMissionTx(ctx context.Context, tx pgx.Tx, missionID int64) (*domain.Mission, error) {
	const q = `SELECT ` + missionColumns + ` FROM missions WHERE id = $1`
	m, err := scanMission(tx.QueryRow(ctx, q, missionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("mission")
		}
		return nil, err
	}
	return m, nil
}
