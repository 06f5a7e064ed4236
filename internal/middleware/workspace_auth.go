package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/velora-hq/velora-api/internal/constants"
	"github.com/velora-hq/velora-api/internal/database"
	apierrors "github.com/velora-hq/velora-api/internal/errors"
	"github.com/velora-hq/velora-api/internal/models"
)

// RequireWorkspaceAccess checks if the user is a member of the workspace.
// Membership is resolved fresh on every request; a removed member loses
// access on their next call even with a live session.
func RequireWorkspaceAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		workspaceIDStr := c.Param("id")
		workspaceID, err := strconv.ParseUint(workspaceIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid workspace ID")
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var workspace models.Workspace
		if err := database.GetDB().First(&workspace, workspaceID).Error; err != nil {
			apierrors.NotFound(c, "Workspace not found")
			c.Abort()
			return
		}

		var member models.Membership
		err = database.GetDB().
			Where("workspace_id = ? AND user_id = ?", workspaceID, userID).
			First(&member).Error
		if err != nil {
			// Return 404 instead of 403 to avoid leaking workspace existence
			apierrors.NotFound(c, "Workspace not found")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyWorkspace, workspace)
		c.Set(constants.ContextKeyMembership, member)
		c.Next()
	}
}

// RequireFounder checks if the user is the workspace's founder
func RequireFounder() gin.HandlerFunc {
	return func(c *gin.Context) {
		member, ok := GetMembership(c)
		if !ok {
			apierrors.Forbidden(c, "Workspace access required")
			c.Abort()
			return
		}

		if member.Role != models.RoleFounder {
			apierrors.Forbidden(c, "Only the founder can perform this action")
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetWorkspace retrieves the workspace from context (set by RequireWorkspaceAccess)
func GetWorkspace(c *gin.Context) (models.Workspace, bool) {
	value, exists := c.Get(constants.ContextKeyWorkspace)
	if !exists {
		return models.Workspace{}, false
	}
	workspace, ok := value.(models.Workspace)
	return workspace, ok
}

// GetMembership retrieves the caller's membership from context
func GetMembership(c *gin.Context) (models.Membership, bool) {
	value, exists := c.Get(constants.ContextKeyMembership)
	if !exists {
		return models.Membership{}, false
	}
	member, ok := value.(models.Membership)
	return member, ok
}
