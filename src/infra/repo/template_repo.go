package repo

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"

	"monhaven/src/core/domain"
)

const templateColumns = `id, name, description, coins, levels, items, monsters, is_top_damager, created_at`

func scanTemplate(row pgx.Row) (*domain.RewardTemplate, error) {
	var tpl domain.RewardTemplate
	var items, monsters []byte
	if err := row.Scan(
		&tpl.ID, &tpl.Name, &tpl.Description, &tpl.Coins, &tpl.Levels,
		&items, &monsters, &tpl.TopDamagerOnly, &tpl.CreatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &tpl.Items); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(monsters, &tpl.Monsters); err != nil {
		return nil, err
	}
	return &tpl, nil
}

func (r *PostgresRepository) CreateRewardTemplate(ctx context.Context, tpl domain.RewardTemplate) (*domain.RewardTemplate, error) {
	items, err := json.Marshal(tpl.Items)
	if err != nil {
		return nil, err
	}
	monsters, err := json.Marshal(tpl.Monsters)
	if err != nil {
		return nil, err
	}

	const q = `
		INSERT INTO boss_reward_templates (name, description, coins, levels, items, monsters, is_top_damager)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + templateColumns + `
	`
	return scanTemplate(r.pool.QueryRow(ctx, q,
		tpl.Name, tpl.Description, tpl.Coins, tpl.Levels, items, monsters, tpl.TopDamagerOnly,
	))
}

func (r *PostgresRepository) GetRewardTemplate(ctx context.Context, templateID int64) (*domain.RewardTemplate, error) {
	const q = `SELECT ` + templateColumns + ` FROM boss_reward_templates WHERE id = $1`
	tpl, err := scanTemplate(r.pool.QueryRow(ctx, q, templateID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("reward template")
		}
		return nil, err
	}
	return tpl, nil
}

func (r *PostgresRepository) ListRewardTemplates(ctx context.Context) ([]domain.RewardTemplate, error) {
	const q = `SELECT ` + templateColumns + ` FROM boss_reward_templates ORDER BY id`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []domain.RewardTemplate
	for rows.Next() {
		tpl, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, *tpl)
	}
	return templates, nil
}

func (r *PostgresRepository) AssignTemplate(ctx context.Context, bossID, templateID int64) error {
	const q = `
		INSERT INTO boss_template_assignments (boss_id, template_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`
	if _, err := r.pool.Exec(ctx, q, bossID, templateID); err != nil {
		if isForeignKeyViolation(err) {
			return domain.NewNotFoundError("boss or reward template")
		}
		return err
	}
	return nil
}

func (r *PostgresRepository) UnassignTemplate(ctx context.Context, bossID, templateID int64) error {
	const q = `DELETE FROM boss_template_assignments WHERE boss_id = $1 AND template_id = $2`
	res, err := r.pool.Exec(ctx, q, bossID, templateID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.NewNotFoundError("template assignment")
	}
	return nil
}

func (r *PostgresRepository) ListAssignedTemplates(ctx context.Context, bossID int64) ([]domain.RewardTemplate, error) {
	const q = `
		SELECT t.id, t.name, t.description, t.coins, t.levels, t.items, t.monsters, t.is_top_damager, t.created_at
		FROM boss_reward_templates t
		JOIN boss_template_assignments a ON a.template_id = t.id
		WHERE a.boss_id = $1
		ORDER BY t.id
	`
	rows, err := r.pool.Query(ctx, q, bossID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []domain.RewardTemplate
	for rows.Next() {
		tpl, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, *tpl)
	}
	return templates, nil
}

func (r *PostgresRepository) assignedTemplatesTx(ctx context.Context, tx pgx.Tx, bossID int64) ([]domain.RewardTemplate, error) {
	const q = `
		SELECT t.id, t.name, t.description, t.coins, t.levels, t.items, t.monsters, t.is_top_damager, t.created_at
		FROM boss_reward_templates t
		JOIN boss_template_assignments a ON a.template_id = t.id
		WHERE a.boss_id = $1
		ORDER BY t.id
	`
	rows, err := tx.Query(ctx, q, bossID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []domain.RewardTemplate
	for rows.Next() {
		tpl, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, *tpl)
	}
	return templates, nil
}
