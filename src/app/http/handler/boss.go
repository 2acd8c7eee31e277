package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"monhaven/src/app/http/dto"
	"monhaven/src/app/http/response"
	"monhaven/src/app/middleware"
	"monhaven/src/core/usecase"
)

// BossHandler handles boss encounter endpoints.
type BossHandler struct {
	bossService *usecase.BossService
}

func NewBossHandler(bossService *usecase.BossService) *BossHandler {
	return &BossHandler{bossService: bossService}
}

// Current returns the active boss.
// GET /v1/bosses/current
func (h *BossHandler) Current(c *gin.Context) {
	boss, err := h.bossService.Current(c.Request.Context())
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, gin.H{"boss": boss})
}

// Get returns one boss by ID.
// GET /v1/bosses/:boss_id
func (h *BossHandler) Get(c *gin.Context) {
	bossID, ok := paramID(c, "boss_id")
	if !ok {
		return
	}
	boss, err := h.bossService.Get(c.Request.Context(), bossID)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, gin.H{"boss": boss})
}

// Damage applies a player's hit.
// POST /v1/bosses/:boss_id/damage
func (h *BossHandler) Damage(c *gin.Context) {
	bossID, ok := paramID(c, "boss_id")
	if !ok {
		return
	}
	var req dto.DamageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid payload", middleware.GetRequestID(c))
		return
	}

	boss, err := h.bossService.Damage(c.Request.Context(), bossID, req.PlayerID, req.Amount, req.Source)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, gin.H{
		"boss":     boss,
		"defeated": boss.IsDefeated,
	})
}

// PlayerDamage returns one player's damage summary against a boss.
// GET /v1/bosses/:boss_id/damage/:player_id
func (h *BossHandler) PlayerDamage(c *gin.Context) {
	bossID, ok := paramID(c, "boss_id")
	if !ok {
		return
	}
	summary, err := h.bossService.PlayerDamage(c.Request.Context(), bossID, c.Param("player_id"))
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, gin.H{"damage": summary})
}

// Leaderboard returns the top damagers for a boss.
// GET /v1/bosses/:boss_id/leaderboard?limit=10
func (h *BossHandler) Leaderboard(c *gin.Context) {
	bossID, ok := paramID(c, "boss_id")
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	top, err := h.bossService.TopDamagers(c.Request.Context(), bossID, limit)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, gin.H{"leaderboard": top})
}

// RewardStatus reports a trainer's reward for a boss.
// GET /v1/bosses/:boss_id/rewards/:trainer_id
func (h *BossHandler) RewardStatus(c *gin.Context) {
	bossID, ok := paramID(c, "boss_id")
	if !ok {
		return
	}
	trainerID, ok := paramID(c, "trainer_id")
	if !ok {
		return
	}

	status, err := h.bossService.RewardStatus(c.Request.Context(), bossID, trainerID)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, status)
}

// Claim credits a trainer's unclaimed reward.
// POST /v1/bosses/:boss_id/rewards/:trainer_id/claim
func (h *BossHandler) Claim(c *gin.Context) {
	bossID, ok := paramID(c, "boss_id")
	if !ok {
		return
	}
	trainerID, ok := paramID(c, "trainer_id")
	if !ok {
		return
	}

	grant, err := h.bossService.Claim(c.Request.Context(), bossID, trainerID)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, gin.H{
		"reward":   grant.Reward,
		"trainer":  grant.Trainer,
		"monsters": grant.Monsters,
	})
}

// PlayerRewardStatus reports the reward for a player's principal trainer.
// GET /v1/bosses/:boss_id/players/:player_id/rewards
func (h *BossHandler) PlayerRewardStatus(c *gin.Context) {
	bossID, ok := paramID(c, "boss_id")
	if !ok {
		return
	}

	status, err := h.bossService.PlayerRewardStatus(c.Request.Context(), bossID, c.Param("player_id"))
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, status)
}

// PlayerClaim claims the reward on behalf of a player's principal trainer.
// POST /v1/bosses/:boss_id/players/:player_id/rewards/claim
func (h *BossHandler) PlayerClaim(c *gin.Context) {
	bossID, ok := paramID(c, "boss_id")
	if !ok {
		return
	}

	grant, err := h.bossService.ClaimPlayerRewards(c.Request.Context(), bossID, c.Param("player_id"))
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, gin.H{
		"reward":   grant.Reward,
		"trainer":  grant.Trainer,
		"monsters": grant.Monsters,
	})
}
