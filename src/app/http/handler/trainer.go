package handler

import (
	"github.com/gin-gonic/gin"

	"monhaven/src/app/http/dto"
	"monhaven/src/app/http/response"
	"monhaven/src/app/middleware"
	"monhaven/src/core/domain"
	"monhaven/src/core/usecase"
)

// TrainerHandler handles trainer profile, currency, and inventory endpoints.
type TrainerHandler struct {
	trainerService *usecase.TrainerService
}

func NewTrainerHandler(trainerService *usecase.TrainerService) *TrainerHandler {
	return &TrainerHandler{trainerService: trainerService}
}

// Create registers a new trainer.
// POST /v1/trainers
func (h *TrainerHandler) Create(c *gin.Context) {
	var req dto.CreateTrainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid payload", middleware.GetRequestID(c))
		return
	}

	trainer, err := h.trainerService.Create(c.Request.Context(), req.PlayerID, req.Name)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.Created(c, gin.H{"trainer": trainer})
}

// Get returns one trainer.
// GET /v1/trainers/:trainer_id
func (h *TrainerHandler) Get(c *gin.Context) {
	trainerID, ok := paramID(c, "trainer_id")
	if !ok {
		return
	}
	trainer, err := h.trainerService.Get(c.Request.Context(), trainerID)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, gin.H{"trainer": trainer})
}

// ListByPlayer returns all trainers a player owns.
// GET /v1/players/:player_id/trainers
func (h *TrainerHandler) ListByPlayer(c *gin.Context) {
	trainers, err := h.trainerService.ListByPlayer(c.Request.Context(), c.Param("player_id"))
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, gin.H{"trainers": trainers})
}

// Principal returns the player's highest-level trainer.
// GET /v1/players/:player_id/trainers/principal
func (h *TrainerHandler) Principal(c *gin.Context) {
	trainer, err := h.trainerService.Principal(c.Request.Context(), c.Param("player_id"))
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, gin.H{"trainer": trainer})
}

// AddCoins credits or debits trainer currency.
// POST /v1/trainers/:trainer_id/coins
func (h *TrainerHandler) AddCoins(c *gin.Context) {
	trainerID, ok := paramID(c, "trainer_id")
	if !ok {
		return
	}
	var req dto.AddCoinsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid payload", middleware.GetRequestID(c))
		return
	}

	trainer, err := h.trainerService.AddCoins(c.Request.Context(), trainerID, req.Coins)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, gin.H{"trainer": trainer})
}

// AddLevels grants trainer levels.
// POST /v1/trainers/:trainer_id/levels
func (h *TrainerHandler) AddLevels(c *gin.Context) {
	trainerID, ok := paramID(c, "trainer_id")
	if !ok {
		return
	}
	var req dto.AddLevelsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid payload", middleware.GetRequestID(c))
		return
	}

	trainer, err := h.trainerService.AddLevels(c.Request.Context(), trainerID, req.Levels)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, gin.H{"trainer": trainer})
}

// Inventory returns a trainer's full inventory.
// GET /v1/trainers/:trainer_id/inventory
func (h *TrainerHandler) Inventory(c *gin.Context) {
	trainerID, ok := paramID(c, "trainer_id")
	if !ok {
		return
	}
	inv, err := h.trainerService.Inventory(c.Request.Context(), trainerID)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, gin.H{"inventory": inv})
}

// UpdateInventory adjusts one inventory entry by a signed delta.
// PATCH /v1/trainers/:trainer_id/inventory
func (h *TrainerHandler) UpdateInventory(c *gin.Context) {
	trainerID, ok := paramID(c, "trainer_id")
	if !ok {
		return
	}
	var req dto.UpdateInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid payload", middleware.GetRequestID(c))
		return
	}

	inv, err := h.trainerService.UpdateInventory(
		c.Request.Context(), trainerID, domain.InventoryCategory(req.Category), req.ItemName, req.Delta,
	)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, gin.H{"inventory": inv})
}

// Items returns catalog items for a category.
// GET /v1/items?category=balls
func (h *TrainerHandler) Items(c *gin.Context) {
	items, err := h.trainerService.ItemsByCategory(
		c.Request.Context(), domain.InventoryCategory(c.Query("category")),
	)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, gin.H{"items": items})
}
