package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"monhaven/src/core/domain"
)

func TestTradeCreateRejectsInvalidBundle(t *testing.T) {
	s := NewTradeService(&stubRepo{}, testLogger())

	_, err := s.Create(context.Background(), domain.Trade{
		InitiatorID: 1,
		RecipientID: 2,
		OfferedItems: domain.ItemBundle{
			"weapons": {"Sword": 1},
		},
	})
	require.Error(t, err)
	assert.True(t, domain.IsValidationError(err))

	_, err = s.Create(context.Background(), domain.Trade{
		InitiatorID: 1,
		RecipientID: 2,
		RequestedItems: domain.ItemBundle{
			domain.CategoryBerries: {"Oran Berry": 0},
		},
	})
	require.Error(t, err)
	assert.True(t, domain.IsValidationError(err))
}

func TestTradeCreateChecksBothTrainers(t *testing.T) {
	repo := &stubRepo{
		getTrainerByID: func(_ context.Context, trainerID int64) (*domain.Trainer, error) {
			if trainerID == 2 {
				return nil, domain.NewNotFoundError("trainer")
			}
			return &domain.Trainer{ID: trainerID}, nil
		},
	}
	s := NewTradeService(repo, testLogger())

	_, err := s.Create(context.Background(), domain.Trade{
		InitiatorID: 1,
		RecipientID: 2,
		OfferedMons: []int64{10},
	})
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}

func TestTradeCreateNormalizesCollections(t *testing.T) {
	var stored domain.Trade
	repo := &stubRepo{
		getTrainerByID: func(_ context.Context, trainerID int64) (*domain.Trainer, error) {
			return &domain.Trainer{ID: trainerID}, nil
		},
		createTrade: func(_ context.Context, trade domain.Trade) (*domain.Trade, error) {
			stored = trade
			trade.ID = 99
			return &trade, nil
		},
	}
	s := NewTradeService(repo, testLogger())

	created, err := s.Create(context.Background(), domain.Trade{
		InitiatorID: 1,
		RecipientID: 2,
		OfferedMons: []int64{10},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(99), created.ID)

	assert.NotNil(t, stored.RequestedMons)
	assert.NotNil(t, stored.OfferedItems)
	assert.NotNil(t, stored.RequestedItems)
}

func TestTradeProcessBusinessFailureIsNotAnError(t *testing.T) {
	repo := &stubRepo{
		processTrade: func(_ context.Context, _ int64) (*domain.Trade, error) {
			return nil, domain.NewOwnershipError("monster 10 does not belong to trainer 1")
		},
	}
	s := NewTradeService(repo, testLogger())

	result, err := s.Process(context.Background(), 5)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "monster 10")

	repo.processTrade = func(_ context.Context, _ int64) (*domain.Trade, error) {
		return nil, domain.NewConflictError("trade is COMPLETED, not pending")
	}
	result, err = s.Process(context.Background(), 5)
	require.NoError(t, err)
	assert.False(t, result.Success)
}

func TestTradeProcessPropagatesOtherErrors(t *testing.T) {
	repo := &stubRepo{
		processTrade: func(_ context.Context, _ int64) (*domain.Trade, error) {
			return nil, domain.NewNotFoundError("trade")
		},
	}
	s := NewTradeService(repo, testLogger())

	_, err := s.Process(context.Background(), 5)
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))

	boom := errors.New("connection reset")
	repo.processTrade = func(_ context.Context, _ int64) (*domain.Trade, error) {
		return nil, boom
	}
	_, err = s.Process(context.Background(), 5)
	assert.ErrorIs(t, err, boom)
}

func TestTradeProcessSuccess(t *testing.T) {
	repo := &stubRepo{
		processTrade: func(_ context.Context, tradeID int64) (*domain.Trade, error) {
			return &domain.Trade{ID: tradeID, Status: domain.TradeCompleted}, nil
		},
	}
	s := NewTradeService(repo, testLogger())

	result, err := s.Process(context.Background(), 5)
	require.NoError(t, err)
	assert.True(t, result.Success)
	require.NotNil(t, result.Trade)
	assert.Equal(t, domain.TradeCompleted, result.Trade.Status)
}
