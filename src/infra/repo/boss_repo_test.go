package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"monhaven/src/core/domain"
)

func createTestTrainer(t *testing.T, r *PostgresRepository, playerID string, level int) *domain.Trainer {
	t.Helper()
	trainer, err := r.CreateTrainer(context.Background(), domain.Trainer{
		PlayerID: playerID,
		Name:     uniqueName("Trainer"),
		Level:    level,
	})
	require.NoError(t, err)
	return trainer
}

func TestBossDamageLifecycle(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	playerA := uniqueName("player")
	playerB := uniqueName("player")
	trainerA := createTestTrainer(t, r, playerA, 5)
	trainerB := createTestTrainer(t, r, playerB, 3)

	boss, err := r.CreateBoss(ctx, domain.Boss{Name: "Gloomdrake", MaxHealth: 100})
	require.NoError(t, err)
	assert.True(t, boss.IsActive)
	assert.Equal(t, int64(100), boss.CurrentHealth)

	after, err := r.DamageBoss(ctx, boss.ID, playerA, 70, "discord", &trainerA.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(30), after.CurrentHealth)
	assert.False(t, after.IsDefeated)

	// Overkill: the killing blow clamps health at zero but the full hit
	// still counts toward the player's total.
	after, err = r.DamageBoss(ctx, boss.ID, playerB, 60, "discord", &trainerB.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), after.CurrentHealth)
	assert.True(t, after.IsDefeated)
	require.NotNil(t, after.DefeatedAt)

	summary, err := r.GetPlayerDamage(ctx, boss.ID, playerB)
	require.NoError(t, err)
	assert.Equal(t, int64(60), summary.TotalDamage)

	top, err := r.GetTopDamagers(ctx, boss.ID, 10)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, playerA, top[0].PlayerID)
	assert.Equal(t, int64(70), top[0].TotalDamage)
	assert.Equal(t, playerB, top[1].PlayerID)
	assert.Equal(t, int64(60), top[1].TotalDamage)

	// A defeated boss takes no further damage.
	_, err = r.DamageBoss(ctx, boss.ID, playerA, 10, "discord", &trainerA.ID)
	require.Error(t, err)
	assert.True(t, domain.IsConflict(err))
}

func TestBossDefeatGeneratesRewardShares(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	playerA := uniqueName("player")
	playerB := uniqueName("player")
	trainerA := createTestTrainer(t, r, playerA, 5)
	trainerB := createTestTrainer(t, r, playerB, 3)

	boss, err := r.CreateBoss(ctx, domain.Boss{Name: "Gloomdrake", MaxHealth: 100})
	require.NoError(t, err)

	_, err = r.DamageBoss(ctx, boss.ID, playerA, 70, "discord", &trainerA.ID)
	require.NoError(t, err)
	_, err = r.DamageBoss(ctx, boss.ID, playerB, 60, "discord", &trainerB.ID)
	require.NoError(t, err)

	// Shares are computed over the raw totals: 70/130 and 60/130.
	rewardA, err := r.GetTrainerReward(ctx, boss.ID, trainerA.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(538), rewardA.Coins)
	assert.False(t, rewardA.IsClaimed)

	rewardB, err := r.GetTrainerReward(ctx, boss.ID, trainerB.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(462), rewardB.Coins)
}

func TestClaimTrainerRewardsIsOneShot(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	playerID := uniqueName("player")
	trainer := createTestTrainer(t, r, playerID, 5)

	boss, err := r.CreateBoss(ctx, domain.Boss{Name: "Gloomdrake", MaxHealth: 50})
	require.NoError(t, err)
	_, err = r.DamageBoss(ctx, boss.ID, playerID, 50, "discord", &trainer.ID)
	require.NoError(t, err)

	grant, err := r.ClaimTrainerRewards(ctx, boss.ID, trainer.ID)
	require.NoError(t, err)
	assert.True(t, grant.Reward.IsClaimed)
	// Sole participant: the full default pool, credited to the trainer.
	assert.Equal(t, int64(1000), grant.Reward.Coins)
	assert.Equal(t, trainer.Currency+1000, grant.Trainer.Currency)
	// Trophy landed in the inventory and the fallback monster was created.
	require.Len(t, grant.Monsters, 1)

	inv, err := r.GetInventory(ctx, trainer.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, inv.Items[domain.CategoryItems]["Boss Trophy"])

	_, err = r.ClaimTrainerRewards(ctx, boss.ID, trainer.ID)
	require.Error(t, err)
	assert.True(t, domain.IsConflict(err))

	// The credit happened exactly once.
	got, err := r.GetTrainerByID(ctx, trainer.ID)
	require.NoError(t, err)
	assert.Equal(t, trainer.Currency+1000, got.Currency)
}
