package handler

import (
	"github.com/gin-gonic/gin"

	"monhaven/src/app/http/dto"
	"monhaven/src/app/http/response"
	"monhaven/src/app/middleware"
	"monhaven/src/core/usecase"
)

// MissionHandler handles mission endpoints.
type MissionHandler struct {
	missionService *usecase.MissionService
}

func NewMissionHandler(missionService *usecase.MissionService) *MissionHandler {
	return &MissionHandler{missionService: missionService}
}

// Available lists missions the trainer can start.
// GET /v1/trainers/:trainer_id/missions/available
func (h *MissionHandler) Available(c *gin.Context) {
	trainerID, ok := paramID(c, "trainer_id")
	if !ok {
		return
	}
	missions, err := h.missionService.Available(c.Request.Context(), trainerID)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, gin.H{"missions": missions})
}

// Active returns the trainer's in-progress mission.
// GET /v1/trainers/:trainer_id/missions/active
func (h *MissionHandler) Active(c *gin.Context) {
	trainerID, ok := paramID(c, "trainer_id")
	if !ok {
		return
	}
	active, err := h.missionService.Active(c.Request.Context(), trainerID)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, gin.H{"active_mission": active})
}

// Start begins a mission for a trainer.
// POST /v1/trainers/:trainer_id/missions/start
func (h *MissionHandler) Start(c *gin.Context) {
	trainerID, ok := paramID(c, "trainer_id")
	if !ok {
		return
	}
	var req dto.StartMissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid payload", middleware.GetRequestID(c))
		return
	}

	active, err := h.missionService.Start(c.Request.Context(), trainerID, req.MissionID, req.MonIDs)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.Created(c, gin.H{"active_mission": active})
}

// Progress bumps the active mission's counter, completing it when the
// target is reached.
// POST /v1/trainers/:trainer_id/missions/progress
func (h *MissionHandler) Progress(c *gin.Context) {
	trainerID, ok := paramID(c, "trainer_id")
	if !ok {
		return
	}
	var req dto.MissionProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid payload", middleware.GetRequestID(c))
		return
	}

	update, err := h.missionService.Progress(c.Request.Context(), trainerID, req.Amount)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, update)
}
