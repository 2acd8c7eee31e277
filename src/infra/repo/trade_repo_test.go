package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"monhaven/src/core/domain"
)

func createTestMonster(t *testing.T, r *PostgresRepository, trainerID int64, name string) *domain.Monster {
	t.Helper()
	mon, err := r.CreateMonster(context.Background(), domain.Monster{
		TrainerID: trainerID,
		Name:      name,
		Level:     1,
		BoxNumber: 1,
		Species1:  "Geodude",
		Type1:     "Rock",
		Attribute: domain.DefaultMonsterAttribute,
	})
	require.NoError(t, err)
	return mon
}

func TestProcessTradeSwapsOwnershipAndItems(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	trainerA := createTestTrainer(t, r, uniqueName("player"), 1)
	trainerB := createTestTrainer(t, r, uniqueName("player"), 1)
	monA := createTestMonster(t, r, trainerA.ID, "Rocky")
	monB := createTestMonster(t, r, trainerB.ID, "Pebble")

	_, err := r.UpdateInventoryItem(ctx, trainerA.ID, domain.CategoryBerries, "Oran Berry", 5)
	require.NoError(t, err)

	trade, err := r.CreateTrade(ctx, domain.Trade{
		InitiatorID:   trainerA.ID,
		RecipientID:   trainerB.ID,
		OfferedMons:   []int64{monA.ID},
		RequestedMons: []int64{monB.ID},
		OfferedItems: domain.ItemBundle{
			domain.CategoryBerries: {"Oran Berry": 3},
		},
		RequestedItems: domain.ItemBundle{},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TradePending, trade.Status)

	settled, err := r.ProcessTrade(ctx, trade.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TradeCompleted, settled.Status)

	gotA, err := r.GetMonsterByID(ctx, monA.ID)
	require.NoError(t, err)
	assert.Equal(t, trainerB.ID, gotA.TrainerID)

	gotB, err := r.GetMonsterByID(ctx, monB.ID)
	require.NoError(t, err)
	assert.Equal(t, trainerA.ID, gotB.TrainerID)

	invA, err := r.GetInventory(ctx, trainerA.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, invA.Items[domain.CategoryBerries]["Oran Berry"])

	invB, err := r.GetInventory(ctx, trainerB.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, invB.Items[domain.CategoryBerries]["Oran Berry"])

	// Settlement happens at most once.
	_, err = r.ProcessTrade(ctx, trade.ID)
	require.Error(t, err)
	assert.True(t, domain.IsConflict(err))
}

func TestProcessTradeInsufficientItemsRollsBack(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	trainerA := createTestTrainer(t, r, uniqueName("player"), 1)
	trainerB := createTestTrainer(t, r, uniqueName("player"), 1)
	monA := createTestMonster(t, r, trainerA.ID, "Rocky")

	_, err := r.UpdateInventoryItem(ctx, trainerA.ID, domain.CategoryBerries, "Oran Berry", 1)
	require.NoError(t, err)

	trade, err := r.CreateTrade(ctx, domain.Trade{
		InitiatorID: trainerA.ID,
		RecipientID: trainerB.ID,
		OfferedMons: []int64{monA.ID},
		OfferedItems: domain.ItemBundle{
			domain.CategoryBerries: {"Oran Berry": 5},
		},
		RequestedMons:  []int64{},
		RequestedItems: domain.ItemBundle{},
	})
	require.NoError(t, err)

	_, err = r.ProcessTrade(ctx, trade.ID)
	require.Error(t, err)
	assert.True(t, domain.IsConflict(err))

	// Nothing moved: the monster transfer earlier in the transaction was
	// rolled back along with everything else.
	gotA, err := r.GetMonsterByID(ctx, monA.ID)
	require.NoError(t, err)
	assert.Equal(t, trainerA.ID, gotA.TrainerID)

	invA, err := r.GetInventory(ctx, trainerA.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, invA.Items[domain.CategoryBerries]["Oran Berry"])

	after, err := r.GetTradeByID(ctx, trade.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TradePending, after.Status)
}

func TestProcessTradeStaleOwnership(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	trainerA := createTestTrainer(t, r, uniqueName("player"), 1)
	trainerB := createTestTrainer(t, r, uniqueName("player"), 1)
	monB := createTestMonster(t, r, trainerB.ID, "Pebble")

	// The trade offers a monster the initiator never owned.
	trade, err := r.CreateTrade(ctx, domain.Trade{
		InitiatorID:    trainerA.ID,
		RecipientID:    trainerB.ID,
		OfferedMons:    []int64{monB.ID},
		RequestedMons:  []int64{},
		OfferedItems:   domain.ItemBundle{},
		RequestedItems: domain.ItemBundle{},
	})
	require.NoError(t, err)

	_, err = r.ProcessTrade(ctx, trade.ID)
	require.Error(t, err)
	assert.True(t, domain.IsOwnership(err))

	got, err := r.GetMonsterByID(ctx, monB.ID)
	require.NoError(t, err)
	assert.Equal(t, trainerB.ID, got.TrainerID)

	after, err := r.GetTradeByID(ctx, trade.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TradePending, after.Status)
}

func TestCancelTradeOnlyWhenPending(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	trainerA := createTestTrainer(t, r, uniqueName("player"), 1)
	trainerB := createTestTrainer(t, r, uniqueName("player"), 1)
	monA := createTestMonster(t, r, trainerA.ID, "Rocky")

	trade, err := r.CreateTrade(ctx, domain.Trade{
		InitiatorID:    trainerA.ID,
		RecipientID:    trainerB.ID,
		OfferedMons:    []int64{monA.ID},
		RequestedMons:  []int64{},
		OfferedItems:   domain.ItemBundle{},
		RequestedItems: domain.ItemBundle{},
	})
	require.NoError(t, err)

	cancelled, err := r.CancelTrade(ctx, trade.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TradeCancelled, cancelled.Status)

	_, err = r.CancelTrade(ctx, trade.ID)
	require.Error(t, err)
	assert.True(t, domain.IsConflict(err))

	_, err = r.ProcessTrade(ctx, trade.ID)
	require.Error(t, err)
	assert.True(t, domain.IsConflict(err))
}
