package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/velora-hq/velora-api/internal/authz"
	"github.com/velora-hq/velora-api/internal/dto"
	apierrors "github.com/velora-hq/velora-api/internal/errors"
	"github.com/velora-hq/velora-api/internal/middleware"
	"github.com/velora-hq/velora-api/internal/models"
	"github.com/velora-hq/velora-api/internal/services"
)

// WorkspaceHandler coordinates workspace, membership and subscription
// HTTP handlers.
type WorkspaceHandler struct {
	workspaceService *services.WorkspaceService
}

// NewWorkspaceHandler creates a new WorkspaceHandler.
func NewWorkspaceHandler(workspaceService *services.WorkspaceService) *WorkspaceHandler {
	return &WorkspaceHandler{
		workspaceService: workspaceService,
	}
}

// CreateWorkspace creates a new workspace with the caller as founder.
func (h *WorkspaceHandler) CreateWorkspace(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateWorkspaceRequest struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
		Industry    string `json:"industry"`
		Stage       string `json:"stage"`
		Website     string `json:"website"`
	}

	var req CreateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	workspace, err := h.workspaceService.CreateWorkspace(services.CreateWorkspaceInput{
		Name:        req.Name,
		Description: req.Description,
		Industry:    req.Industry,
		Stage:       req.Stage,
		Website:     req.Website,
		FounderID:   userID,
	})
	if err != nil {
		respondWorkspaceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToWorkspaceDTO(*workspace, true))
}

// ListWorkspaces returns all workspaces the user is a member of.
func (h *WorkspaceHandler) ListWorkspaces(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	memberships, err := h.workspaceService.ListWorkspacesForUser(userID)
	if err != nil {
		respondWorkspaceError(c, err)
		return
	}

	workspaces := make([]dto.WorkspaceWithRoleDTO, len(memberships))
	for i, m := range memberships {
		workspaces[i] = dto.ToWorkspaceWithRoleDTO(m)
	}

	c.JSON(http.StatusOK, gin.H{
		"workspaces": workspaces,
	})
}

// GetWorkspace returns workspace details with its member roster.
func (h *WorkspaceHandler) GetWorkspace(c *gin.Context) {
	workspace, _ := middleware.GetWorkspace(c)
	member, _ := middleware.GetMembership(c)

	members, err := h.workspaceService.ListMembers(workspace.ID)
	if err != nil {
		respondWorkspaceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkspaceDetailDTO(workspace, members, member.Role))
}

// UpdateWorkspace applies a partial update to the workspace profile.
// Founder only.
func (h *WorkspaceHandler) UpdateWorkspace(c *gin.Context) {
	workspace, _ := middleware.GetWorkspace(c)
	member, _ := middleware.GetMembership(c)

	if err := authz.Authorize(&member, authz.ActionManageWorkspace); err != nil {
		apierrors.Forbidden(c, "Only the founder can update the workspace")
		return
	}

	type UpdateWorkspaceRequest struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		Industry    *string `json:"industry"`
		Stage       *string `json:"stage"`
		Website     *string `json:"website"`
	}

	var req UpdateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.workspaceService.UpdateWorkspace(workspace.ID, services.UpdateWorkspaceInput{
		Name:        req.Name,
		Description: req.Description,
		Industry:    req.Industry,
		Stage:       req.Stage,
		Website:     req.Website,
	})
	if err != nil {
		respondWorkspaceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkspaceDTO(*updated, true))
}

// DeleteWorkspace deletes a workspace and all of its records. Founder only.
func (h *WorkspaceHandler) DeleteWorkspace(c *gin.Context) {
	workspace, _ := middleware.GetWorkspace(c)

	if err := h.workspaceService.DeleteWorkspace(workspace.ID); err != nil {
		respondWorkspaceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Workspace deleted successfully",
	})
}

// JoinWorkspace adds the caller to a workspace via invite code.
func (h *WorkspaceHandler) JoinWorkspace(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type JoinRequest struct {
		InviteCode string `json:"invite_code" binding:"required"`
	}

	var req JoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	workspace, err := h.workspaceService.JoinByInviteCode(userID, req.InviteCode)
	if err != nil {
		respondWorkspaceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Successfully joined workspace",
		"workspace": dto.ToWorkspaceDTO(*workspace, false),
	})
}

// RegenerateInviteCode rotates the workspace's join code. Founder only.
func (h *WorkspaceHandler) RegenerateInviteCode(c *gin.Context) {
	workspace, _ := middleware.GetWorkspace(c)

	updated, err := h.workspaceService.RegenerateInviteCode(workspace.ID)
	if err != nil {
		respondWorkspaceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkspaceDTO(*updated, true))
}

// ListMembers returns the workspace's member roster.
func (h *WorkspaceHandler) ListMembers(c *gin.Context) {
	workspace, _ := middleware.GetWorkspace(c)

	members, err := h.workspaceService.ListMembers(workspace.ID)
	if err != nil {
		respondWorkspaceError(c, err)
		return
	}

	memberDTOs := make([]dto.MemberDTO, len(members))
	for i, m := range members {
		memberDTOs[i] = dto.ToMemberDTO(m)
	}

	c.JSON(http.StatusOK, gin.H{
		"members": memberDTOs,
	})
}

// ChangeMemberRole assigns a new role to a member. Founder only.
func (h *WorkspaceHandler) ChangeMemberRole(c *gin.Context) {
	workspace, _ := middleware.GetWorkspace(c)

	targetUserID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}

	type ChangeRoleRequest struct {
		Role models.MembershipRole `json:"role" binding:"required"`
	}

	var req ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.workspaceService.ChangeMemberRole(workspace.ID, targetUserID, req.Role); err != nil {
		respondWorkspaceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Member role updated successfully",
	})
}

// RemoveMember removes a member from the workspace. Founder only.
func (h *WorkspaceHandler) RemoveMember(c *gin.Context) {
	workspace, _ := middleware.GetWorkspace(c)
	userID, _ := middleware.GetUserID(c)

	targetUserID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}

	if err := h.workspaceService.RemoveMember(workspace.ID, userID, targetUserID); err != nil {
		respondWorkspaceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Member removed successfully",
	})
}

// GetSubscription returns the workspace's subscription.
func (h *WorkspaceHandler) GetSubscription(c *gin.Context) {
	workspace, _ := middleware.GetWorkspace(c)

	sub, err := h.workspaceService.GetSubscription(workspace.ID)
	if err != nil {
		respondWorkspaceError(c, err)
		return
	}

	c.JSON(http.StatusOK, sub)
}

// UpdateSubscription changes the workspace's plan. Founder only.
func (h *WorkspaceHandler) UpdateSubscription(c *gin.Context) {
	workspace, _ := middleware.GetWorkspace(c)

	type UpdateSubscriptionRequest struct {
		Plan models.SubscriptionPlan `json:"plan" binding:"required"`
	}

	var req UpdateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	sub, err := h.workspaceService.UpdateSubscription(workspace.ID, req.Plan)
	if err != nil {
		respondWorkspaceError(c, err)
		return
	}

	c.JSON(http.StatusOK, sub)
}

func respondWorkspaceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidWorkspaceName),
		errors.Is(err, services.ErrInvalidRole),
		errors.Is(err, services.ErrInvalidPlan),
		errors.Is(err, services.ErrCannotRemoveSelf):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrWorkspaceNotFound),
		errors.Is(err, services.ErrMemberNotFound),
		errors.Is(err, services.ErrInvalidInviteCode):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrAlreadyMember):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrTeamLimitReached):
		apierrors.CapacityExceeded(c, err.Error())
	case errors.Is(err, services.ErrFounderImmutable):
		apierrors.Forbidden(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
