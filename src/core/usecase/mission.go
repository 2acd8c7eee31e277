package usecase

import (
	"context"
	"log/slog"
	"math/rand/v2"

	"monhaven/src/core/domain"
	"monhaven/src/core/ports"
)

// MissionService handles mission selection, progress, and completion.
type MissionService struct {
	repo ports.GameRepository
	log  *slog.Logger
	intn func(n int) int
}

func NewMissionService(repo ports.GameRepository, log *slog.Logger) *MissionService {
	return &MissionService{repo: repo, log: log, intn: rand.IntN}
}

func (s *MissionService) Available(ctx context.Context, trainerID int64) ([]domain.Mission, error) {
	if _, err := s.repo.GetTrainerByID(ctx, trainerID); err != nil {
		return nil, err
	}
	return s.repo.ListAvailableMissions(ctx, trainerID)
}

func (s *MissionService) Active(ctx context.Context, trainerID int64) (*domain.ActiveMission, error) {
	return s.repo.GetActiveMission(ctx, trainerID)
}

// Start begins a mission for a trainer. The progress target is drawn
// exactly once here; ranged missions roll uniformly between min and max.
func (s *MissionService) Start(ctx context.Context, trainerID, missionID int64, monIDs []int64) (*domain.ActiveMission, error) {
	if _, err := s.repo.GetTrainerByID(ctx, trainerID); err != nil {
		return nil, err
	}
	mission, err := s.repo.GetMissionByID(ctx, missionID)
	if err != nil {
		return nil, err
	}
	if !mission.Active {
		return nil, domain.NewConflictError("mission is not active")
	}

	target := domain.MissionTarget(mission.TargetMin, mission.TargetMax, s.intn)
	started, err := s.repo.StartMission(ctx, trainerID, missionID, target, monIDs)
	if err != nil {
		return nil, err
	}
	s.log.Info("mission started", "trainer_id", trainerID, "mission_id", missionID, "target", target)
	return started, nil
}

func (s *MissionService) Progress(ctx context.Context, trainerID int64, amount int) (*ports.MissionUpdate, error) {
	if amount <= 0 {
		return nil, domain.NewValidationError("amount", "progress amount must be positive")
	}
	return s.repo.AddMissionProgress(ctx, trainerID, amount)
}
