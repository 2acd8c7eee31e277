package repo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"monhaven/src/core/domain"
	"monhaven/src/core/ports"
)

const bossColumns = `id, name, flavor_text, image_url, max_health, current_health,
	is_active, is_defeated, month, year, defeated_at, created_at`

func scanBoss(row pgx.Row) (*domain.Boss, error) {
	var b domain.Boss
	if err := row.Scan(
		&b.ID, &b.Name, &b.FlavorText, &b.ImageURL, &b.MaxHealth, &b.CurrentHealth,
		&b.IsActive, &b.IsDefeated, &b.Month, &b.Year, &b.DefeatedAt, &b.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &b, nil
}

// GetCurrentBoss returns the active boss, or nil when no boss is active.
func (r *PostgresRepository) GetCurrentBoss(ctx context.Context) (*domain.Boss, error) {
	const q = `
		SELECT ` + bossColumns + `
		FROM bosses
		WHERE is_active
		ORDER BY id DESC
		LIMIT 1
	`
	b, err := scanBoss(r.pool.QueryRow(ctx, q))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return b, nil
}

func (r *PostgresRepository) GetBossByID(ctx context.Context, bossID int64) (*domain.Boss, error) {
	const q = `SELECT ` + bossColumns + ` FROM bosses WHERE id = $1`
	b, err := scanBoss(r.pool.QueryRow(ctx, q, bossID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("boss")
		}
		return nil, err
	}
	return b, nil
}

// CreateBoss deactivates any active boss and inserts the new one at full
// health, stamped with the current month and year.
func (r *PostgresRepository) CreateBoss(ctx context.Context, boss domain.Boss) (*domain.Boss, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `UPDATE bosses SET is_active = FALSE WHERE is_active`); err != nil {
		return nil, err
	}

	now := time.Now()
	const q = `
		INSERT INTO bosses (name, flavor_text, image_url, max_health, current_health, month, year)
		VALUES ($1, $2, $3, $4, $4, $5, $6)
		RETURNING ` + bossColumns + `
	`
	created, err := scanBoss(tx.QueryRow(ctx, q,
		boss.Name, boss.FlavorText, boss.ImageURL, boss.MaxHealth, int(now.Month()), now.Year(),
	))
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return created, nil
}

// DamageBoss applies damage inside one transaction: the boss row is
// locked, the damage log records the full hit with the player's new
// running total, health clamps at zero, and the defeat transition
// generates reward rows. Overkill counts toward the player's total even
// though the boss cannot go below zero health.
func (r *PostgresRepository) DamageBoss(ctx context.Context, bossID int64, playerID string, amount int64, source string, trainerID *int64) (*domain.Boss, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const lockQ = `SELECT ` + bossColumns + ` FROM bosses WHERE id = $1 FOR UPDATE`
	boss, err := scanBoss(tx.QueryRow(ctx, lockQ, bossID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("boss")
		}
		return nil, err
	}
	if boss.IsDefeated {
		return nil, domain.NewConflictError("boss already defeated")
	}
	if !boss.IsActive {
		return nil, domain.NewConflictError("boss is not active")
	}

	newHealth := boss.CurrentHealth - amount
	if newHealth < 0 {
		newHealth = 0
	}

	var prevTotal int64
	const totalQ = `SELECT COALESCE(SUM(amount), 0) FROM boss_damage WHERE boss_id = $1 AND player_id = $2`
	if err := tx.QueryRow(ctx, totalQ, bossID, playerID).Scan(&prevTotal); err != nil {
		return nil, err
	}

	const logQ = `
		INSERT INTO boss_damage (boss_id, player_id, trainer_id, amount, total_damage, source)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	if _, err := tx.Exec(ctx, logQ, bossID, playerID, trainerID, amount, prevTotal+amount, source); err != nil {
		return nil, err
	}

	defeated := newHealth == 0
	const updateQ = `
		UPDATE bosses
		SET current_health = $2,
			is_defeated = $3,
			defeated_at = CASE WHEN $3 THEN now() ELSE defeated_at END
		WHERE id = $1
		RETURNING ` + bossColumns + `
	`
	updated, err := scanBoss(tx.QueryRow(ctx, updateQ, bossID, newHealth, defeated))
	if err != nil {
		return nil, err
	}

	if defeated {
		if err := r.generateRewardsTx(ctx, tx, updated); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	if defeated {
		r.log.Info("boss defeated", "boss_id", bossID, "name", updated.Name)
	}
	return updated, nil
}

// generateRewardsTx builds one reward row per contributing trainer using
// the boss's assigned templates, resolving each player to their
// highest-level trainer. Players without a trainer are skipped.
func (r *PostgresRepository) generateRewardsTx(ctx context.Context, tx pgx.Tx, boss *domain.Boss) error {
	const damageQ = `
		SELECT player_id, SUM(amount), MIN(created_at)
		FROM boss_damage
		WHERE boss_id = $1
		GROUP BY player_id
	`
	rows, err := tx.Query(ctx, damageQ, boss.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	var participants []domain.Participant
	for rows.Next() {
		var p domain.Participant
		if err := rows.Scan(&p.PlayerID, &p.TotalDamage, &p.FirstHitAt); err != nil {
			return err
		}
		participants = append(participants, p)
	}
	rows.Close()

	const trainerQ = `
		SELECT id FROM trainers
		WHERE player_id = $1
		ORDER BY level DESC, id ASC
		LIMIT 1
	`
	for i := range participants {
		var trainerID int64
		err := tx.QueryRow(ctx, trainerQ, participants[i].PlayerID).Scan(&trainerID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				continue
			}
			return err
		}
		participants[i].TrainerID = trainerID
	}

	templates, err := r.assignedTemplatesTx(ctx, tx, boss.ID)
	if err != nil {
		return err
	}

	domain.RankParticipants(participants)
	rewards := domain.BuildRewards(boss.Name, participants, templates)

	const insertQ = `
		INSERT INTO boss_rewards (boss_id, trainer_id, coins, levels, items, monsters)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (boss_id, trainer_id) DO NOTHING
	`
	for _, reward := range rewards {
		items, err := json.Marshal(reward.Items)
		if err != nil {
			return err
		}
		monsters, err := json.Marshal(reward.Monsters)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, insertQ, boss.ID, reward.TrainerID, reward.Coins, reward.Levels, items, monsters); err != nil {
			return err
		}
	}

	r.log.Info("boss rewards generated", "boss_id", boss.ID, "rewards", len(rewards))
	return nil
}

// GetPlayerDamage aggregates one player's contribution. A player with no
// recorded damage gets a zeroed summary rather than an error.
func (r *PostgresRepository) GetPlayerDamage(ctx context.Context, bossID int64, playerID string) (*domain.DamageSummary, error) {
	const q = `
		SELECT SUM(amount), MIN(created_at), MAX(created_at)
		FROM boss_damage
		WHERE boss_id = $1 AND player_id = $2
		GROUP BY player_id
	`
	summary := domain.DamageSummary{PlayerID: playerID}
	var lastHit time.Time
	err := r.pool.QueryRow(ctx, q, bossID, playerID).Scan(&summary.TotalDamage, &summary.FirstHitAt, &lastHit)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &summary, nil
		}
		return nil, err
	}
	summary.LastHitAt = &lastHit
	return &summary, nil
}

func (r *PostgresRepository) GetTopDamagers(ctx context.Context, bossID int64, limit int) ([]ports.TopDamager, error) {
	const q = `
		SELECT d.player_id, COALESCE(t.name, ''), SUM(d.amount) AS total
		FROM boss_damage d
		LEFT JOIN LATERAL (
			SELECT name FROM trainers
			WHERE player_id = d.player_id
			ORDER BY level DESC, id ASC
			LIMIT 1
		) t ON TRUE
		WHERE d.boss_id = $1
		GROUP BY d.player_id, t.name
		ORDER BY total DESC, MIN(d.created_at) ASC, d.player_id ASC
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, q, bossID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var top []ports.TopDamager
	for rows.Next() {
		var td ports.TopDamager
		if err := rows.Scan(&td.PlayerID, &td.TrainerName, &td.TotalDamage); err != nil {
			return nil, err
		}
		top = append(top, td)
	}
	return top, nil
}

const rewardColumns = `id, boss_id, trainer_id, coins, levels, items, monsters, is_claimed, claimed_at, created_at`

func scanReward(row pgx.Row) (*domain.BossReward, error) {
	var reward domain.BossReward
	var items, monsters []byte
	if err := row.Scan(
		&reward.ID, &reward.BossID, &reward.TrainerID, &reward.Coins, &reward.Levels,
		&items, &monsters, &reward.IsClaimed, &reward.ClaimedAt, &reward.CreatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &reward.Items); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(monsters, &reward.Monsters); err != nil {
		return nil, err
	}
	return &reward, nil
}

func (r *PostgresRepository) GetTrainerReward(ctx context.Context, bossID, trainerID int64) (*domain.BossReward, error) {
	const q = `SELECT ` + rewardColumns + ` FROM boss_rewards WHERE boss_id = $1 AND trainer_id = $2`
	reward, err := scanReward(r.pool.QueryRow(ctx, q, bossID, trainerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("reward")
		}
		return nil, err
	}
	return reward, nil
}

// ClaimTrainerRewards flips the claim flag exactly once and credits the
// reward contents to the trainer in the same transaction.
func (r *PostgresRepository) ClaimTrainerRewards(ctx context.Context, bossID, trainerID int64) (*ports.RewardGrant, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const lockQ = `
		SELECT ` + rewardColumns + `
		FROM boss_rewards
		WHERE boss_id = $1 AND trainer_id = $2
		FOR UPDATE
	`
	reward, err := scanReward(tx.QueryRow(ctx, lockQ, bossID, trainerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("reward")
		}
		return nil, err
	}
	if reward.IsClaimed {
		return nil, domain.NewConflictError("reward already claimed")
	}

	const claimQ = `
		UPDATE boss_rewards
		SET is_claimed = TRUE, claimed_at = now()
		WHERE id = $1
		RETURNING is_claimed, claimed_at
	`
	if err := tx.QueryRow(ctx, claimQ, reward.ID).Scan(&reward.IsClaimed, &reward.ClaimedAt); err != nil {
		return nil, err
	}

	trainer, err := r.addCoinsTx(ctx, tx, trainerID, reward.Coins)
	if err != nil {
		return nil, err
	}
	if reward.Levels > 0 {
		if trainer, err = r.addLevelsTx(ctx, tx, trainerID, reward.Levels); err != nil {
			return nil, err
		}
	}

	for _, item := range reward.Items {
		category := item.Category
		if !domain.ValidCategory(category) {
			category = domain.CategoryItems
		}
		if err := r.adjustInventoryTx(ctx, tx, trainerID, category, item.Name, item.Quantity); err != nil {
			return nil, err
		}
	}

	var granted []domain.Monster
	for _, rm := range reward.Monsters {
		mon, err := r.monsterFromReward(ctx, tx, trainerID, rm)
		if err != nil {
			return nil, err
		}
		created, err := r.createMonsterTx(ctx, tx, mon)
		if err != nil {
			return nil, err
		}
		granted = append(granted, *created)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	r.log.Info("boss reward claimed", "boss_id", bossID, "trainer_id", trainerID, "coins", reward.Coins)
	return &ports.RewardGrant{Reward: *reward, Trainer: *trainer, Monsters: granted}, nil
}
