package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"monhaven/src/core/domain"
)

const tradeColumns = `id, initiator_id, recipient_id, status, offered_mons, requested_mons,
	offered_items, requested_items, created_at, updated_at`

func scanTrade(row pgx.Row) (*domain.Trade, error) {
	var t domain.Trade
	var offered, requested []byte
	if err := row.Scan(
		&t.ID, &t.InitiatorID, &t.RecipientID, &t.Status, &t.OfferedMons, &t.RequestedMons,
		&offered, &requested, &t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(offered, &t.OfferedItems); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(requested, &t.RequestedItems); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *PostgresRepository) CreateTrade(ctx context.Context, trade domain.Trade) (*domain.Trade, error) {
	offered, err := json.Marshal(trade.OfferedItems)
	if err != nil {
		return nil, err
	}
	requested, err := json.Marshal(trade.RequestedItems)
	if err != nil {
		return nil, err
	}

	const q = `
		INSERT INTO trades (initiator_id, recipient_id, offered_mons, requested_mons, offered_items, requested_items)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + tradeColumns + `
	`
	created, err := scanTrade(r.pool.QueryRow(ctx, q,
		trade.InitiatorID, trade.RecipientID, trade.OfferedMons, trade.RequestedMons, offered, requested,
	))
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, domain.NewNotFoundError("trainer")
		}
		return nil, err
	}
	return created, nil
}

func (r *PostgresRepository) GetTradeByID(ctx context.Context, tradeID int64) (*domain.Trade, error) {
	const q = `SELECT ` + tradeColumns + ` FROM trades WHERE id = $1`
	t, err := scanTrade(r.pool.QueryRow(ctx, q, tradeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("trade")
		}
		return nil, err
	}
	return t, nil
}

// ProcessTrade settles a pending trade atomically. Every monster must
// still belong to its expected side and every item debit must be covered
// at settlement time, otherwise the whole transaction rolls back.
func (r *PostgresRepository) ProcessTrade(ctx context.Context, tradeID int64) (*domain.Trade, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const lockQ = `SELECT ` + tradeColumns + ` FROM trades WHERE id = $1 FOR UPDATE`
	trade, err := scanTrade(tx.QueryRow(ctx, lockQ, tradeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("trade")
		}
		return nil, err
	}
	if trade.Status != domain.TradePending {
		return nil, domain.NewConflictError(fmt.Sprintf("trade is %s, not pending", trade.Status))
	}

	if err := r.transferMonstersTx(ctx, tx, trade.OfferedMons, trade.InitiatorID, trade.RecipientID); err != nil {
		return nil, err
	}
	if err := r.transferMonstersTx(ctx, tx, trade.RequestedMons, trade.RecipientID, trade.InitiatorID); err != nil {
		return nil, err
	}
	if err := r.transferItemsTx(ctx, tx, trade.OfferedItems, trade.InitiatorID, trade.RecipientID); err != nil {
		return nil, err
	}
	if err := r.transferItemsTx(ctx, tx, trade.RequestedItems, trade.RecipientID, trade.InitiatorID); err != nil {
		return nil, err
	}

	const settleQ = `
		UPDATE trades
		SET status = 'COMPLETED', updated_at = now()
		WHERE id = $1
		RETURNING ` + tradeColumns + `
	`
	settled, err := scanTrade(tx.QueryRow(ctx, settleQ, tradeID))
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	r.log.Info("trade settled", "trade_id", tradeID, "initiator_id", settled.InitiatorID, "recipient_id", settled.RecipientID)
	return settled, nil
}

// transferMonstersTx moves monsters from one trainer to another,
// verifying current ownership under a row lock.
func (r *PostgresRepository) transferMonstersTx(ctx context.Context, tx pgx.Tx, monIDs []int64, fromID, toID int64) error {
	const ownerQ = `SELECT trainer_id FROM monsters WHERE id = $1 FOR UPDATE`
	const moveQ = `UPDATE monsters SET trainer_id = $2 WHERE id = $1`

	for _, monID := range monIDs {
		var owner int64
		if err := tx.QueryRow(ctx, ownerQ, monID).Scan(&owner); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.NewNotFoundError(fmt.Sprintf("monster %d", monID))
			}
			return err
		}
		if owner != fromID {
			return domain.NewOwnershipError(fmt.Sprintf("monster %d does not belong to trainer %d", monID, fromID))
		}
		if _, err := tx.Exec(ctx, moveQ, monID, toID); err != nil {
			return err
		}
	}
	return nil
}

func (r *PostgresRepository) transferItemsTx(ctx context.Context, tx pgx.Tx, bundle domain.ItemBundle, fromID, toID int64) error {
	for category, items := range bundle {
		for name, qty := range items {
			if qty <= 0 {
				continue
			}
			if err := r.adjustInventoryTx(ctx, tx, fromID, category, name, -qty); err != nil {
				return err
			}
			if err := r.adjustInventoryTx(ctx, tx, toID, category, name, qty); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *PostgresRepository) CancelTrade(ctx context.Context, tradeID int64) (*domain.Trade, error) {
	const q = `
		UPDATE trades
		SET status = 'CANCELLED', updated_at = now()
		WHERE id = $1 AND status = 'PENDING'
		RETURNING ` + tradeColumns + `
	`
	cancelled, err := scanTrade(r.pool.QueryRow(ctx, q, tradeID))
	if err == nil {
		return cancelled, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	// Distinguish missing from already settled.
	trade, getErr := r.GetTradeByID(ctx, tradeID)
	if getErr != nil {
		return nil, getErr
	}
	return nil, domain.NewConflictError(fmt.Sprintf("trade is %s, not pending", trade.Status))
}

func (r *PostgresRepository) ListTradesByTrainer(ctx context.Context, trainerID int64) ([]domain.Trade, error) {
	const q = `
		SELECT ` + tradeColumns + `
		FROM trades
		WHERE initiator_id = $1 OR recipient_id = $1
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.pool.Query(ctx, q, trainerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trades []domain.Trade
	for rows.Next() {
		t, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		trades = append(trades, *t)
	}
	return trades, nil
}
