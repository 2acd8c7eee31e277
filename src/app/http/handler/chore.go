package handler

import (
	"github.com/gin-gonic/gin"

	"monhaven/src/app/http/dto"
	"monhaven/src/app/http/response"
	"monhaven/src/app/middleware"
	"monhaven/src/core/domain"
	"monhaven/src/core/usecase"
)

// ChoreHandler handles task and habit endpoints.
type ChoreHandler struct {
	taskService  *usecase.TaskService
	habitService *usecase.HabitService
}

func NewChoreHandler(taskService *usecase.TaskService, habitService *usecase.HabitService) *ChoreHandler {
	return &ChoreHandler{taskService: taskService, habitService: habitService}
}

// CreateTask registers a one-shot task.
// POST /v1/tasks
func (h *ChoreHandler) CreateTask(c *gin.Context) {
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid payload", middleware.GetRequestID(c))
		return
	}

	task, err := h.taskService.Create(c.Request.Context(), domain.Task{
		TrainerID:   req.TrainerID,
		Name:        req.Name,
		CoinReward:  req.CoinReward,
		LevelReward: req.LevelReward,
		MonsterID:   req.MonsterID,
	})
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.Created(c, gin.H{"task": task})
}

// CompleteTask marks a task done and pays out its rewards.
// POST /v1/tasks/:task_id/complete
func (h *ChoreHandler) CompleteTask(c *gin.Context) {
	taskID, ok := paramID(c, "task_id")
	if !ok {
		return
	}
	result, err := h.taskService.Complete(c.Request.Context(), taskID)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, result)
}

// CreateHabit registers a repeating habit.
// POST /v1/habits
func (h *ChoreHandler) CreateHabit(c *gin.Context) {
	var req dto.CreateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid payload", middleware.GetRequestID(c))
		return
	}

	habit, err := h.habitService.Create(c.Request.Context(), domain.Habit{
		TrainerID:   req.TrainerID,
		Name:        req.Name,
		Frequency:   domain.HabitFrequency(req.Frequency),
		CoinReward:  req.CoinReward,
		LevelReward: req.LevelReward,
		MonsterID:   req.MonsterID,
	})
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.Created(c, gin.H{"habit": habit})
}

// CompleteHabit records a habit completion and advances the streak.
// POST /v1/habits/:habit_id/complete
func (h *ChoreHandler) CompleteHabit(c *gin.Context) {
	habitID, ok := paramID(c, "habit_id")
	if !ok {
		return
	}
	result, err := h.habitService.Complete(c.Request.Context(), habitID)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, result)
}
