package handler

import (
	"github.com/gin-gonic/gin"

	"monhaven/src/app/http/dto"
	"monhaven/src/app/http/response"
	"monhaven/src/app/middleware"
	"monhaven/src/core/domain"
	"monhaven/src/core/usecase"
)

// MonsterHandler handles monster endpoints.
type MonsterHandler struct {
	monsterService *usecase.MonsterService
}

func NewMonsterHandler(monsterService *usecase.MonsterService) *MonsterHandler {
	return &MonsterHandler{monsterService: monsterService}
}

// Create registers a monster for a trainer.
// POST /v1/monsters
func (h *MonsterHandler) Create(c *gin.Context) {
	var req dto.CreateMonsterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid payload", middleware.GetRequestID(c))
		return
	}

	mon, err := h.monsterService.Create(c.Request.Context(), domain.Monster{
		TrainerID:   req.TrainerID,
		Name:        req.Name,
		Description: req.Description,
		Level:       req.Level,
		BoxNumber:   req.BoxNumber,
		IsSpecial:   req.IsSpecial,
		Species1:    req.Species1,
		Species2:    req.Species2,
		Species3:    req.Species3,
		Type1:       req.Type1,
		Type2:       req.Type2,
		Type3:       req.Type3,
		Type4:       req.Type4,
		Type5:       req.Type5,
		Attribute:   req.Attribute,
	})
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.Created(c, gin.H{"monster": mon})
}

// Get returns one monster.
// GET /v1/monsters/:mon_id
func (h *MonsterHandler) Get(c *gin.Context) {
	monID, ok := paramID(c, "mon_id")
	if !ok {
		return
	}
	mon, err := h.monsterService.Get(c.Request.Context(), monID)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, gin.H{"monster": mon})
}

// ListByTrainer returns all monsters a trainer owns.
// GET /v1/trainers/:trainer_id/monsters
func (h *MonsterHandler) ListByTrainer(c *gin.Context) {
	trainerID, ok := paramID(c, "trainer_id")
	if !ok {
		return
	}
	mons, err := h.monsterService.ListByTrainer(c.Request.Context(), trainerID)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, gin.H{"monsters": mons})
}
