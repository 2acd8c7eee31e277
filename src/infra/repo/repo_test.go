package repo

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"monhaven/src/core/domain"
	"monhaven/src/infra/config"
	"monhaven/src/infra/db"
)

// setupRepo connects to the Postgres configured via APP_DB_* env vars and
// applies migrations. Tests are skipped when no database is reachable so
// the suite stays runnable without infrastructure.
func setupRepo(t *testing.T) *PostgresRepository {
	t.Helper()

	cfg, err := config.Load()
	require.NoError(t, err)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()

	pg, err := db.New(ctx, cfg.Database, log)
	if err != nil {
		t.Skipf("skipping integration test: could not connect to postgres: %v", err)
	}
	t.Cleanup(pg.Close)

	require.NoError(t, db.Migrate(ctx, cfg.Database.DSN(), log))

	return NewPostgresRepository(pg, log)
}

func uniqueName(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.NewString()[:8])
}

func TestTrainerLifecycle(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	playerID := uniqueName("player")
	created, err := r.CreateTrainer(ctx, domain.Trainer{
		PlayerID: playerID,
		Name:     uniqueName("Ash"),
		Level:    domain.DefaultTrainerLevel,
		Currency: domain.DefaultTrainerCurrency,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	got, err := r.GetTrainerByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Name, got.Name)

	// Duplicate name for the same player is rejected.
	_, err = r.CreateTrainer(ctx, domain.Trainer{
		PlayerID: playerID,
		Name:     created.Name,
		Level:    1,
	})
	require.Error(t, err)
	assert.True(t, domain.IsConflict(err))

	updated, err := r.AddCoins(ctx, created.ID, 250)
	require.NoError(t, err)
	assert.Equal(t, created.Currency+250, updated.Currency)
	assert.Equal(t, created.TotalEarned+250, updated.TotalEarned)

	// Spending does not reduce lifetime earnings.
	updated, err = r.AddCoins(ctx, created.ID, -100)
	require.NoError(t, err)
	assert.Equal(t, created.Currency+150, updated.Currency)
	assert.Equal(t, created.TotalEarned+250, updated.TotalEarned)
}

func TestPrincipalTrainerPicksHighestLevel(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	playerID := uniqueName("player")

	none, err := r.PrincipalTrainer(ctx, playerID)
	require.NoError(t, err)
	assert.Nil(t, none)

	low, err := r.CreateTrainer(ctx, domain.Trainer{PlayerID: playerID, Name: uniqueName("Low"), Level: 3})
	require.NoError(t, err)
	high, err := r.CreateTrainer(ctx, domain.Trainer{PlayerID: playerID, Name: uniqueName("High"), Level: 9})
	require.NoError(t, err)
	_ = low

	principal, err := r.PrincipalTrainer(ctx, playerID)
	require.NoError(t, err)
	require.NotNil(t, principal)
	assert.Equal(t, high.ID, principal.ID)
}

func TestInventoryAdjustments(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	trainer, err := r.CreateTrainer(ctx, domain.Trainer{
		PlayerID: uniqueName("player"),
		Name:     uniqueName("Misty"),
		Level:    1,
	})
	require.NoError(t, err)

	inv, err := r.UpdateInventoryItem(ctx, trainer.ID, domain.CategoryBerries, "Oran Berry", 5)
	require.NoError(t, err)
	assert.Equal(t, 5, inv.Items[domain.CategoryBerries]["Oran Berry"])

	inv, err = r.UpdateInventoryItem(ctx, trainer.ID, domain.CategoryBerries, "Oran Berry", -2)
	require.NoError(t, err)
	assert.Equal(t, 3, inv.Items[domain.CategoryBerries]["Oran Berry"])

	// Debiting more than held fails without changing anything.
	_, err = r.UpdateInventoryItem(ctx, trainer.ID, domain.CategoryBerries, "Oran Berry", -10)
	require.Error(t, err)
	assert.True(t, domain.IsConflict(err))

	// Draining to zero removes the entry.
	inv, err = r.UpdateInventoryItem(ctx, trainer.ID, domain.CategoryBerries, "Oran Berry", -3)
	require.NoError(t, err)
	_, ok := inv.Items[domain.CategoryBerries]["Oran Berry"]
	assert.False(t, ok)
}

func TestMonsterCreateAndList(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	trainer, err := r.CreateTrainer(ctx, domain.Trainer{
		PlayerID: uniqueName("player"),
		Name:     uniqueName("Brock"),
		Level:    1,
	})
	require.NoError(t, err)

	mon, err := r.CreateMonster(ctx, domain.Monster{
		TrainerID: trainer.ID,
		Name:      "Rocky",
		Level:     domain.DefaultRewardMonsterLevel,
		BoxNumber: domain.DefaultBoxNumber,
		Species1:  "Geodude",
		Type1:     "Rock",
		Attribute: domain.DefaultMonsterAttribute,
	})
	require.NoError(t, err)
	assert.NotZero(t, mon.ID)

	mons, err := r.ListMonstersByTrainer(ctx, trainer.ID)
	require.NoError(t, err)
	require.Len(t, mons, 1)
	assert.Equal(t, "Rocky", mons[0].Name)

	// Unknown trainer is reported as not found via the FK.
	_, err = r.CreateMonster(ctx, domain.Monster{
		TrainerID: -1,
		Name:      "Ghost",
		Level:     1,
		BoxNumber: 1,
		Species1:  "Gastly",
		Type1:     "Ghost",
		Attribute: domain.DefaultMonsterAttribute,
	})
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}
