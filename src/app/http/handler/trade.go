package handler

import (
	"github.com/gin-gonic/gin"

	"monhaven/src/app/http/dto"
	"monhaven/src/app/http/response"
	"monhaven/src/app/middleware"
	"monhaven/src/core/domain"
	"monhaven/src/core/usecase"
)

// TradeHandler handles trade endpoints.
type TradeHandler struct {
	tradeService *usecase.TradeService
}

func NewTradeHandler(tradeService *usecase.TradeService) *TradeHandler {
	return &TradeHandler{tradeService: tradeService}
}

// Create proposes a new pending trade.
// POST /v1/trades
func (h *TradeHandler) Create(c *gin.Context) {
	var req dto.CreateTradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid payload", middleware.GetRequestID(c))
		return
	}

	trade, err := h.tradeService.Create(c.Request.Context(), domain.Trade{
		InitiatorID:    req.InitiatorID,
		RecipientID:    req.RecipientID,
		OfferedMons:    req.OfferedMons,
		RequestedMons:  req.RequestedMons,
		OfferedItems:   req.OfferedItems,
		RequestedItems: req.RequestedItems,
	})
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.Created(c, gin.H{"trade": trade})
}

// Get returns one trade.
// GET /v1/trades/:trade_id
func (h *TradeHandler) Get(c *gin.Context) {
	tradeID, ok := paramID(c, "trade_id")
	if !ok {
		return
	}
	trade, err := h.tradeService.Get(c.Request.Context(), tradeID)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, gin.H{"trade": trade})
}

// Process settles a pending trade. Business rejections come back as a
// 200 with success=false; the trade stays pending.
// POST /v1/trades/:trade_id/process
func (h *TradeHandler) Process(c *gin.Context) {
	tradeID, ok := paramID(c, "trade_id")
	if !ok {
		return
	}
	result, err := h.tradeService.Process(c.Request.Context(), tradeID)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, result)
}

// Cancel voids a pending trade.
// POST /v1/trades/:trade_id/cancel
func (h *TradeHandler) Cancel(c *gin.Context) {
	tradeID, ok := paramID(c, "trade_id")
	if !ok {
		return
	}
	trade, err := h.tradeService.Cancel(c.Request.Context(), tradeID)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, gin.H{"trade": trade})
}

// ListByTrainer returns all trades a trainer is party to.
// GET /v1/trainers/:trainer_id/trades
func (h *TradeHandler) ListByTrainer(c *gin.Context) {
	trainerID, ok := paramID(c, "trainer_id")
	if !ok {
		return
	}
	trades, err := h.tradeService.ListByTrainer(c.Request.Context(), trainerID)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, gin.H{"trades": trades})
}
