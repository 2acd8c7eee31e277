package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"monhaven/src/core/domain"
	"monhaven/src/core/ports"
)

// TradeService handles trade proposal and settlement.
type TradeService struct {
	repo ports.GameRepository
	log  *slog.Logger
}

func NewTradeService(repo ports.GameRepository, log *slog.Logger) *TradeService {
	return &TradeService{repo: repo, log: log}
}

// Create proposes a pending trade between two trainers.
func (s *TradeService) Create(ctx context.Context, trade domain.Trade) (*domain.Trade, error) {
	trade.Normalize()
	if err := trade.Validate(); err != nil {
		return nil, err
	}
	if err := validateBundle("offered_items", trade.OfferedItems); err != nil {
		return nil, err
	}
	if err := validateBundle("requested_items", trade.RequestedItems); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetTrainerByID(ctx, trade.InitiatorID); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetTrainerByID(ctx, trade.RecipientID); err != nil {
		return nil, err
	}

	created, err := s.repo.CreateTrade(ctx, trade)
	if err != nil {
		return nil, err
	}
	s.log.Info("trade created", "trade_id", created.ID, "initiator_id", created.InitiatorID, "recipient_id", created.RecipientID)
	return created, nil
}

func validateBundle(field string, bundle domain.ItemBundle) error {
	for category, items := range bundle {
		if !domain.ValidCategory(category) {
			return domain.NewValidationError(field, fmt.Sprintf("unknown inventory category %q", category))
		}
		for name, qty := range items {
			if name == "" {
				return domain.NewValidationError(field, "item name is required")
			}
			if qty <= 0 {
				return domain.NewValidationError(field, fmt.Sprintf("quantity for %q must be positive", name))
			}
		}
	}
	return nil
}

func (s *TradeService) Get(ctx context.Context, tradeID int64) (*domain.Trade, error) {
	return s.repo.GetTradeByID(ctx, tradeID)
}

func (s *TradeService) ListByTrainer(ctx context.Context, trainerID int64) ([]domain.Trade, error) {
	if _, err := s.repo.GetTrainerByID(ctx, trainerID); err != nil {
		return nil, err
	}
	return s.repo.ListTradesByTrainer(ctx, trainerID)
}

// Process settles a pending trade. Business failures (stale ownership,
// insufficient items, wrong state) come back as an unsuccessful result
// rather than an error; the trade stays pending for those.
func (s *TradeService) Process(ctx context.Context, tradeID int64) (*ports.TradeResult, error) {
	settled, err := s.repo.ProcessTrade(ctx, tradeID)
	if err != nil {
		if domain.IsConflict(err) || domain.IsOwnership(err) {
			s.log.Warn("trade settlement rejected", "trade_id", tradeID, "reason", err.Error())
			return &ports.TradeResult{Success: false, Message: err.Error()}, nil
		}
		return nil, err
	}
	return &ports.TradeResult{Success: true, Message: "trade completed", Trade: settled}, nil
}

func (s *TradeService) Cancel(ctx context.Context, tradeID int64) (*domain.Trade, error) {
	return s.repo.CancelTrade(ctx, tradeID)
}
