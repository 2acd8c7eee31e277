package handler

import (
	"github.com/gin-gonic/gin"

	"monhaven/src/app/http/dto"
	"monhaven/src/app/http/response"
	"monhaven/src/app/middleware"
	"monhaven/src/core/domain"
	"monhaven/src/core/usecase"
)

// AdminHandler handles privileged boss lifecycle and reward template
// endpoints. Routes using it sit behind the admin token middleware.
type AdminHandler struct {
	bossService *usecase.BossService
}

func NewAdminHandler(bossService *usecase.BossService) *AdminHandler {
	return &AdminHandler{bossService: bossService}
}

// CreateBoss spawns a new boss, retiring the current one.
// POST /v1/admin/bosses
func (h *AdminHandler) CreateBoss(c *gin.Context) {
	var req dto.CreateBossRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid payload", middleware.GetRequestID(c))
		return
	}

	boss, err := h.bossService.Create(c.Request.Context(), domain.Boss{
		Name:       req.Name,
		FlavorText: req.FlavorText,
		ImageURL:   req.ImageURL,
		MaxHealth:  req.MaxHealth,
	})
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.Created(c, gin.H{"boss": boss})
}

// CreateTemplate defines a reusable reward bundle.
// POST /v1/admin/templates
func (h *AdminHandler) CreateTemplate(c *gin.Context) {
	var req dto.CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid payload", middleware.GetRequestID(c))
		return
	}

	tpl, err := h.bossService.CreateTemplate(c.Request.Context(), domain.RewardTemplate{
		Name:           req.Name,
		Description:    req.Description,
		Coins:          req.Coins,
		Levels:         req.Levels,
		Items:          req.Items,
		Monsters:       req.Monsters,
		TopDamagerOnly: req.TopDamagerOnly,
	})
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.Created(c, gin.H{"template": tpl})
}

// ListTemplates returns all reward templates.
// GET /v1/admin/templates
func (h *AdminHandler) ListTemplates(c *gin.Context) {
	templates, err := h.bossService.ListTemplates(c.Request.Context())
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, gin.H{"templates": templates})
}

// AssignTemplate binds a template to a boss.
// POST /v1/admin/bosses/:boss_id/templates
func (h *AdminHandler) AssignTemplate(c *gin.Context) {
	bossID, ok := paramID(c, "boss_id")
	if !ok {
		return
	}
	var req dto.AssignTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid payload", middleware.GetRequestID(c))
		return
	}

	if err := h.bossService.AssignTemplate(c.Request.Context(), bossID, req.TemplateID); err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.NoContent(c)
}

// UnassignTemplate removes a template binding from a boss.
// DELETE /v1/admin/bosses/:boss_id/templates/:template_id
func (h *AdminHandler) UnassignTemplate(c *gin.Context) {
	bossID, ok := paramID(c, "boss_id")
	if !ok {
		return
	}
	templateID, ok := paramID(c, "template_id")
	if !ok {
		return
	}

	if err := h.bossService.UnassignTemplate(c.Request.Context(), bossID, templateID); err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.NoContent(c)
}

// AssignedTemplates lists a boss's bound templates.
// GET /v1/admin/bosses/:boss_id/templates
func (h *AdminHandler) AssignedTemplates(c *gin.Context) {
	bossID, ok := paramID(c, "boss_id")
	if !ok {
		return
	}
	templates, err := h.bossService.AssignedTemplates(c.Request.Context(), bossID)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, gin.H{"templates": templates})
}
