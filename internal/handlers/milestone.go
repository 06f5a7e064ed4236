package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/velora-hq/velora-api/internal/authz"
	"github.com/velora-hq/velora-api/internal/dto"
	apierrors "github.com/velora-hq/velora-api/internal/errors"
	"github.com/velora-hq/velora-api/internal/middleware"
	"github.com/velora-hq/velora-api/internal/models"
	"github.com/velora-hq/velora-api/internal/services"
)

// MilestoneHandler coordinates milestone-related HTTP handlers.
type MilestoneHandler struct {
	milestoneService *services.MilestoneService
}

// NewMilestoneHandler creates a new MilestoneHandler.
func NewMilestoneHandler(milestoneService *services.MilestoneService) *MilestoneHandler {
	return &MilestoneHandler{
		milestoneService: milestoneService,
	}
}

// CreateMilestone creates a milestone in the workspace.
func (h *MilestoneHandler) CreateMilestone(c *gin.Context) {
	workspace, _ := middleware.GetWorkspace(c)
	member, _ := middleware.GetMembership(c)

	if err := authz.Authorize(&member, authz.ActionWriteRecord); err != nil {
		apierrors.Forbidden(c, "Investors cannot create milestones")
		return
	}

	type CreateMilestoneRequest struct {
		Title       string     `json:"title" binding:"required"`
		Description string     `json:"description"`
		TargetDate  *time.Time `json:"target_date"`
	}

	var req CreateMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	milestone, err := h.milestoneService.CreateMilestone(services.CreateMilestoneInput{
		WorkspaceID: workspace.ID,
		Title:       req.Title,
		Description: req.Description,
		TargetDate:  req.TargetDate,
	})
	if err != nil {
		respondMilestoneError(c, err)
		return
	}

	c.JSON(http.StatusCreated, milestone)
}

// ListMilestones returns the workspace's milestones with derived progress.
func (h *MilestoneHandler) ListMilestones(c *gin.Context) {
	workspace, _ := middleware.GetWorkspace(c)

	milestones, err := h.milestoneService.ListMilestones(workspace.ID)
	if err != nil {
		respondMilestoneError(c, err)
		return
	}

	milestoneDTOs := make([]dto.MilestoneDTO, len(milestones))
	for i, m := range milestones {
		milestoneDTOs[i] = dto.ToMilestoneDTO(m.Milestone, m.MilestoneProgress)
	}

	c.JSON(http.StatusOK, gin.H{
		"milestones": milestoneDTOs,
	})
}

// UpdateMilestone applies a partial update to a milestone.
func (h *MilestoneHandler) UpdateMilestone(c *gin.Context) {
	milestone, _ := middleware.GetMilestone(c)
	member, _ := middleware.GetMembership(c)

	if err := authz.Authorize(&member, authz.ActionWriteRecord); err != nil {
		apierrors.Forbidden(c, "Investors cannot update milestones")
		return
	}

	type UpdateMilestoneRequest struct {
		Title       *string                 `json:"title"`
		Description *string                 `json:"description"`
		Status      *models.MilestoneStatus `json:"status"`
		TargetDate  *time.Time              `json:"target_date"`
		ClearTarget bool                    `json:"clear_target_date"`
	}

	var req UpdateMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.milestoneService.UpdateMilestone(&milestone, services.UpdateMilestoneInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		TargetDate:  req.TargetDate,
		ClearTarget: req.ClearTarget,
	})
	if err != nil {
		respondMilestoneError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteMilestone removes a milestone. Tasks that referenced it survive
// with the reference cleared.
func (h *MilestoneHandler) DeleteMilestone(c *gin.Context) {
	milestone, _ := middleware.GetMilestone(c)
	member, _ := middleware.GetMembership(c)

	if err := authz.Authorize(&member, authz.ActionWriteRecord); err != nil {
		apierrors.Forbidden(c, "Investors cannot delete milestones")
		return
	}

	if err := h.milestoneService.DeleteMilestone(milestone.ID); err != nil {
		respondMilestoneError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Milestone deleted successfully",
	})
}

func respondMilestoneError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrTitleEmpty),
		errors.Is(err, services.ErrInvalidMilestoneStatus):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrMilestoneNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
