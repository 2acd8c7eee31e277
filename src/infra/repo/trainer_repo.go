package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"monhaven/src/core/domain"
)

const trainerColumns = `id, player_id, name, level, currency, total_earned, created_at, updated_at`

func scanTrainer(row pgx.Row) (*domain.Trainer, error) {
	var t domain.Trainer
	if err := row.Scan(&t.ID, &t.PlayerID, &t.Name, &t.Level, &t.Currency, &t.TotalEarned, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *PostgresRepository) CreateTrainer(ctx context.Context, trainer domain.Trainer) (*domain.Trainer, error) {
	const q = `
		INSERT INTO trainers (player_id, name, level, currency)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + trainerColumns + `
	`
	t, err := scanTrainer(r.pool.QueryRow(ctx, q, trainer.PlayerID, trainer.Name, trainer.Level, trainer.Currency))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.NewConflictError("trainer name already taken for this player")
		}
		return nil, err
	}
	return t, nil
}

func (r *PostgresRepository) GetTrainerByID(ctx context.Context, trainerID int64) (*domain.Trainer, error) {
	const q = `SELECT ` + trainerColumns + ` FROM trainers WHERE id = $1`
	t, err := scanTrainer(r.pool.QueryRow(ctx, q, trainerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("trainer")
		}
		return nil, err
	}
	return t, nil
}

func (r *PostgresRepository) ListTrainersByPlayer(ctx context.Context, playerID string) ([]domain.Trainer, error) {
	const q = `
		SELECT ` + trainerColumns + `
		FROM trainers
		WHERE player_id = $1
		ORDER BY level DESC, id ASC
	`
	rows, err := r.pool.Query(ctx, q, playerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trainers []domain.Trainer
	for rows.Next() {
		t, err := scanTrainer(rows)
		if err != nil {
			return nil, err
		}
		trainers = append(trainers, *t)
	}
	return trainers, nil
}

// PrincipalTrainer resolves a player's highest-level trainer, nil when
// the player owns none. Ties break on the older trainer.
func (r *PostgresRepository) PrincipalTrainer(ctx context.Context, playerID string) (*domain.Trainer, error) {
	const q = `
		SELECT ` + trainerColumns + `
		FROM trainers
		WHERE player_id = $1
		ORDER BY level DESC, id ASC
		LIMIT 1
	`
	t, err := scanTrainer(r.pool.QueryRow(ctx, q, playerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return t, nil
}

func (r *PostgresRepository) AddCoins(ctx context.Context, trainerID, coins int64) (*domain.Trainer, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	t, err := r.addCoinsTx(ctx, tx, trainerID, coins)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *PostgresRepository) AddLevels(ctx context.Context, trainerID int64, levels int) (*domain.Trainer, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	t, err := r.addLevelsTx(ctx, tx, trainerID, levels)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return t, nil
}

// addCoinsTx credits coins to a trainer. Positive amounts also count
// toward the lifetime earnings total.
func (r *PostgresRepository) addCoinsTx(ctx context.Context, tx pgx.Tx, trainerID, coins int64) (*domain.Trainer, error) {
	const q = `
		UPDATE trainers
		SET currency = currency + $2,
			total_earned = total_earned + GREATEST($2, 0),
			updated_at = now()
		WHERE id = $1
		RETURNING ` + trainerColumns + `
	`
	t, err := scanTrainer(tx.QueryRow(ctx, q, trainerID, coins))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("trainer")
		}
		return nil, err
	}
	return t, nil
}

func (r *PostgresRepository) addLevelsTx(ctx context.Context, tx pgx.Tx, trainerID int64, levels int) (*domain.Trainer, error) {
	const q = `
		UPDATE trainers
		SET level = level + $2, updated_at = now()
		WHERE id = $1
		RETURNING ` + trainerColumns + `
	`
	t, err := scanTrainer(tx.QueryRow(ctx, q, trainerID, levels))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("trainer")
		}
		return nil, err
	}
	return t, nil
}

func (r *PostgresRepository) UpdateInventoryItem(ctx context.Context, trainerID int64, category domain.InventoryCategory, itemName string, delta int) (*domain.Inventory, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := r.adjustInventoryTx(ctx, tx, trainerID, category, itemName, delta); err != nil {
		return nil, err
	}
	inv, err := r.getInventoryTx(ctx, tx, trainerID)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return inv, nil
}

func (r *PostgresRepository) GetInventory(ctx context.Context, trainerID int64) (*domain.Inventory, error) {
	if _, err := r.GetTrainerByID(ctx, trainerID); err != nil {
		return nil, err
	}

	const q = `
		SELECT category, item_name, quantity
		FROM trainer_inventory
		WHERE trainer_id = $1
		ORDER BY category, item_name
	`
	rows, err := r.pool.Query(ctx, q, trainerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	inv := &domain.Inventory{
		TrainerID: trainerID,
		Items:     make(map[domain.InventoryCategory]map[string]int),
	}
	for rows.Next() {
		var category domain.InventoryCategory
		var name string
		var qty int
		if err := rows.Scan(&category, &name, &qty); err != nil {
			return nil, err
		}
		if inv.Items[category] == nil {
			inv.Items[category] = make(map[string]int)
		}
		inv.Items[category][name] = qty
	}
	return inv, nil
}

func (r *PostgresRepository) getInventoryTx(ctx context.Context, tx pgx.Tx, trainerID int64) (*domain.Inventory, error) {
	const q = `
		SELECT category, item_name, quantity
		FROM trainer_inventory
		WHERE trainer_id = $1
		ORDER BY category, item_name
	`
	rows, err := tx.Query(ctx, q, trainerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	inv := &domain.Inventory{
		TrainerID: trainerID,
		Items:     make(map[domain.InventoryCategory]map[string]int),
	}
	for rows.Next() {
		var category domain.InventoryCategory
		var name string
		var qty int
		if err := rows.Scan(&category, &name, &qty); err != nil {
			return nil, err
		}
		if inv.Items[category] == nil {
			inv.Items[category] = make(map[string]int)
		}
		inv.Items[category][name] = qty
	}
	return inv, nil
}

// adjustInventoryTx applies a signed quantity change. Additions upsert;
// removals require sufficient quantity and drop the row when it hits zero.
func (r *PostgresRepository) adjustInventoryTx(ctx context.Context, tx pgx.Tx, trainerID int64, category domain.InventoryCategory, itemName string, delta int) error {
	if delta == 0 {
		return nil
	}

	if delta > 0 {
		const q = `
			INSERT INTO trainer_inventory (trainer_id, category, item_name, quantity)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (trainer_id, category, item_name)
			DO UPDATE SET quantity = trainer_inventory.quantity + EXCLUDED.quantity
		`
		if _, err := tx.Exec(ctx, q, trainerID, category, itemName, delta); err != nil {
			if isForeignKeyViolation(err) {
				return domain.NewNotFoundError("trainer")
			}
			return err
		}
		return nil
	}

	need := -delta
	const takeQ = `
		UPDATE trainer_inventory
		SET quantity = quantity - $4
		WHERE trainer_id = $1 AND category = $2 AND item_name = $3 AND quantity >= $4
	`
	res, err := tx.Exec(ctx, takeQ, trainerID, category, itemName, need)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.NewConflictError(fmt.Sprintf("insufficient %q in category %s", itemName, category))
	}

	const cleanQ = `
		DELETE FROM trainer_inventory
		WHERE trainer_id = $1 AND category = $2 AND item_name = $3 AND quantity <= 0
	`
	_, err = tx.Exec(ctx, cleanQ, trainerID, category, itemName)
	return err
}

func (r *PostgresRepository) ListItemsByCategory(ctx context.Context, category domain.InventoryCategory) ([]domain.Item, error) {
	const q = `
		SELECT id, name, category, description
		FROM items
		WHERE category = $1
		ORDER BY name
	`
	rows, err := r.pool.Query(ctx, q, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		var it domain.Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Category, &it.Description); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}
