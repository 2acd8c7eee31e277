package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"monhaven/src/core/domain"
)

const monsterColumns = `id, trainer_id, name, description, level, box_number, is_special,
	species1, species2, species3, type1, type2, type3, type4, type5, attribute, created_at`

func scanMonster(row pgx.Row) (*domain.Monster, error) {
	var m domain.Monster
	if err := row.Scan(
		&m.ID, &m.TrainerID, &m.Name, &m.Description, &m.Level, &m.BoxNumber, &m.IsSpecial,
		&m.Species1, &m.Species2, &m.Species3, &m.Type1, &m.Type2, &m.Type3, &m.Type4, &m.Type5,
		&m.Attribute, &m.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PostgresRepository) CreateMonster(ctx context.Context, mon domain.Monster) (*domain.Monster, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	created, err := r.createMonsterTx(ctx, tx, mon)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return created, nil
}

func (r *PostgresRepository) createMonsterTx(ctx context.Context, tx pgx.Tx, mon domain.Monster) (*domain.Monster, error) {
	const q = `
		INSERT INTO monsters (
			trainer_id, name, description, level, box_number, is_special,
			species1, species2, species3, type1, type2, type3, type4, type5, attribute
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING ` + monsterColumns + `
	`
	created, err := scanMonster(tx.QueryRow(ctx, q,
		mon.TrainerID, mon.Name, mon.Description, mon.Level, mon.BoxNumber, mon.IsSpecial,
		mon.Species1, mon.Species2, mon.Species3, mon.Type1, mon.Type2, mon.Type3, mon.Type4, mon.Type5,
		mon.Attribute,
	))
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, domain.NewNotFoundError("trainer")
		}
		return nil, err
	}
	return created, nil
}

func (r *PostgresRepository) GetMonsterByID(ctx context.Context, monID int64) (*domain.Monster, error) {
	const q = `SELECT ` + monsterColumns + ` FROM monsters WHERE id = $1`
	m, err := scanMonster(r.pool.QueryRow(ctx, q, monID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("monster")
		}
		return nil, err
	}
	return m, nil
}

func (r *PostgresRepository) ListMonstersByTrainer(ctx context.Context, trainerID int64) ([]domain.Monster, error) {
	const q = `
		SELECT ` + monsterColumns + `
		FROM monsters
		WHERE trainer_id = $1
		ORDER BY box_number, id
	`
	rows, err := r.pool.Query(ctx, q, trainerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var mons []domain.Monster
	for rows.Next() {
		m, err := scanMonster(rows)
		if err != nil {
			return nil, err
		}
		mons = append(mons, *m)
	}
	return mons, nil
}

// rollSpeciesTx draws a random species from the catalog. Special rolls
// exclude common species. Returns nil when the catalog has no candidates.
func (r *PostgresRepository) rollSpeciesTx(ctx context.Context, tx pgx.Tx, special bool) (*domain.Species, error) {
	const q = `
		SELECT id, name, monster_type, rarity, stage, type1, type2, attribute
		FROM species
		WHERE $1 = FALSE OR rarity <> 'common'
		ORDER BY random()
		LIMIT 1
	`
	var s domain.Species
	err := tx.QueryRow(ctx, q, special).Scan(
		&s.ID, &s.Name, &s.MonsterType, &s.Rarity, &s.Stage, &s.Type1, &s.Type2, &s.Attribute,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *PostgresRepository) levelUpMonsterTx(ctx context.Context, tx pgx.Tx, monID int64, levels int) error {
	const q = `UPDATE monsters SET level = level + $2 WHERE id = $1`
	res, err := tx.Exec(ctx, q, monID, levels)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.NewNotFoundError("monster")
	}
	return nil
}

// monsterFromReward materializes a reward monster grant. Static specs are
// used as given; otherwise the species is rolled from the catalog, falling
// back to a placeholder so a claim never fails on an empty catalog.
func (r *PostgresRepository) monsterFromReward(ctx context.Context, tx pgx.Tx, trainerID int64, rm domain.RewardMonster) (domain.Monster, error) {
	mon := domain.Monster{
		TrainerID:   trainerID,
		Name:        rm.Name,
		Description: rm.Description,
		Level:       domain.DefaultRewardMonsterLevel,
		BoxNumber:   domain.DefaultBoxNumber,
		IsSpecial:   rm.Special,
		Attribute:   domain.DefaultMonsterAttribute,
	}

	if rm.Static != nil {
		spec := rm.Static
		mon.Species1 = spec.Species1
		mon.Species2 = optional(spec.Species2)
		mon.Species3 = optional(spec.Species3)
		mon.Type1 = spec.Type1
		mon.Type2 = optional(spec.Type2)
		mon.Type3 = optional(spec.Type3)
		mon.Type4 = optional(spec.Type4)
		mon.Type5 = optional(spec.Type5)
		if spec.Attribute != "" {
			mon.Attribute = spec.Attribute
		}
		return mon, nil
	}

	species, err := r.rollSpeciesTx(ctx, tx, rm.Special)
	if err != nil {
		return domain.Monster{}, err
	}
	if species == nil {
		mon.Species1 = domain.PlaceholderSpecies
		mon.Type1 = domain.PlaceholderType
		return mon, nil
	}

	mon.Species1 = species.Name
	mon.Type1 = species.Type1
	mon.Type2 = species.Type2
	mon.Attribute = species.Attribute
	return mon, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
