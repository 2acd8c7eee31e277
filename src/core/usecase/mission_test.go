package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"monhaven/src/core/domain"
)

func TestMissionStartRejectsInactiveMission(t *testing.T) {
	repo := &stubRepo{
		getTrainerByID: func(_ context.Context, trainerID int64) (*domain.Trainer, error) {
			return &domain.Trainer{ID: trainerID}, nil
		},
		getMissionByID: func(_ context.Context, missionID int64) (*domain.Mission, error) {
			return &domain.Mission{ID: missionID, Active: false}, nil
		},
	}
	s := NewMissionService(repo, testLogger())

	_, err := s.Start(context.Background(), 1, 7, nil)
	require.Error(t, err)
	assert.True(t, domain.IsConflict(err))
}

func TestMissionStartDrawsTargetOnce(t *testing.T) {
	max := 10
	var gotTarget int
	repo := &stubRepo{
		getTrainerByID: func(_ context.Context, trainerID int64) (*domain.Trainer, error) {
			return &domain.Trainer{ID: trainerID}, nil
		},
		getMissionByID: func(_ context.Context, missionID int64) (*domain.Mission, error) {
			return &domain.Mission{ID: missionID, Active: true, TargetMin: 5, TargetMax: &max}, nil
		},
		startMission: func(_ context.Context, trainerID, missionID int64, target int, monIDs []int64) (*domain.ActiveMission, error) {
			gotTarget = target
			return &domain.ActiveMission{TrainerID: trainerID, MissionID: missionID, Target: target, MonIDs: monIDs}, nil
		},
	}
	s := NewMissionService(repo, testLogger())
	s.intn = func(n int) int { return n - 1 }

	active, err := s.Start(context.Background(), 1, 7, []int64{3})
	require.NoError(t, err)
	assert.Equal(t, 10, gotTarget)
	assert.Equal(t, 10, active.Target)
	assert.Equal(t, []int64{3}, active.MonIDs)
}

func TestMissionStartFixedTarget(t *testing.T) {
	var gotTarget int
	repo := &stubRepo{
		getTrainerByID: func(_ context.Context, trainerID int64) (*domain.Trainer, error) {
			return &domain.Trainer{ID: trainerID}, nil
		},
		getMissionByID: func(_ context.Context, missionID int64) (*domain.Mission, error) {
			return &domain.Mission{ID: missionID, Active: true, TargetMin: 3}, nil
		},
		startMission: func(_ context.Context, trainerID, missionID int64, target int, monIDs []int64) (*domain.ActiveMission, error) {
			gotTarget = target
			return &domain.ActiveMission{Target: target}, nil
		},
	}
	s := NewMissionService(repo, testLogger())
	s.intn = func(int) int { t.Fatal("fixed target must not roll"); return 0 }

	_, err := s.Start(context.Background(), 1, 7, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, gotTarget)
}

func TestMissionProgressValidatesAmount(t *testing.T) {
	s := NewMissionService(&stubRepo{}, testLogger())

	_, err := s.Progress(context.Background(), 1, 0)
	require.Error(t, err)
	assert.True(t, domain.IsValidationError(err))

	_, err = s.Progress(context.Background(), 1, -3)
	require.Error(t, err)
	assert.True(t, domain.IsValidationError(err))
}
