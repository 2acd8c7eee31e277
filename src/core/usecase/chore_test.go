package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"monhaven/src/core/domain"
	"monhaven/src/core/ports"
)

func TestTaskCreateChecksMonsterOwnership(t *testing.T) {
	monID := int64(10)
	repo := &stubRepo{
		getMonsterByID: func(_ context.Context, id int64) (*domain.Monster, error) {
			return &domain.Monster{ID: id, TrainerID: 99}, nil
		},
	}
	s := NewTaskService(repo, testLogger())

	_, err := s.Create(context.Background(), domain.Task{
		TrainerID: 1,
		Name:      "Clean the gym",
		MonsterID: &monID,
	})
	require.Error(t, err)
	assert.True(t, domain.IsOwnership(err))
}

func TestTaskCreateValidation(t *testing.T) {
	s := NewTaskService(&stubRepo{}, testLogger())

	_, err := s.Create(context.Background(), domain.Task{Name: "no trainer"})
	assert.True(t, domain.IsValidationError(err))

	_, err = s.Create(context.Background(), domain.Task{TrainerID: 1, Name: " "})
	assert.True(t, domain.IsValidationError(err))

	_, err = s.Create(context.Background(), domain.Task{TrainerID: 1, Name: "ok", CoinReward: -5})
	assert.True(t, domain.IsValidationError(err))
}

func TestHabitCreateValidatesFrequency(t *testing.T) {
	s := NewHabitService(&stubRepo{}, testLogger())

	_, err := s.Create(context.Background(), domain.Habit{
		TrainerID: 1,
		Name:      "Morning run",
		Frequency: "MONTHLY",
	})
	require.Error(t, err)
	assert.True(t, domain.IsValidationError(err))
}

func TestHabitCompleteUsesClock(t *testing.T) {
	fixed := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	var gotNow time.Time
	repo := &stubRepo{
		completeHabit: func(_ context.Context, habitID int64, now time.Time) (*ports.HabitResult, error) {
			gotNow = now
			return &ports.HabitResult{
				Habit:        domain.Habit{ID: habitID, Streak: 3},
				CoinsAwarded: 50,
			}, nil
		},
	}
	s := NewHabitService(repo, testLogger())
	s.now = func() time.Time { return fixed }

	result, err := s.Complete(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, fixed, gotNow)
	assert.Equal(t, 3, result.Habit.Streak)
	assert.Equal(t, int64(50), result.CoinsAwarded)
}

func TestHabitCompleteAlreadyToday(t *testing.T) {
	repo := &stubRepo{
		completeHabit: func(_ context.Context, habitID int64, _ time.Time) (*ports.HabitResult, error) {
			return &ports.HabitResult{
				Habit:                 domain.Habit{ID: habitID, Streak: 3},
				AlreadyCompletedToday: true,
			}, nil
		},
	}
	s := NewHabitService(repo, testLogger())

	result, err := s.Complete(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, result.AlreadyCompletedToday)
	assert.Zero(t, result.CoinsAwarded)
}
