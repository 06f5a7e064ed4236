package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/velora-hq/velora-api/internal/constants"
	"github.com/velora-hq/velora-api/internal/database"
	apierrors "github.com/velora-hq/velora-api/internal/errors"
	"github.com/velora-hq/velora-api/internal/models"
)

// RequireMilestoneAccess checks if the user has access to a milestone.
// User must be a member of the milestone's workspace.
func RequireMilestoneAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		milestoneIDStr := c.Param("id")
		milestoneID, err := strconv.ParseUint(milestoneIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid milestone ID")
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var milestone models.Milestone
		if err := database.GetDB().First(&milestone, milestoneID).Error; err != nil {
			apierrors.NotFound(c, "Milestone not found")
			c.Abort()
			return
		}

		var member models.Membership
		err = database.GetDB().
			Where("workspace_id = ? AND user_id = ?", milestone.WorkspaceID, userID).
			First(&member).Error
		if err != nil {
			// Return 404 instead of 403 to avoid leaking milestone existence
			apierrors.NotFound(c, "Milestone not found")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyMilestone, milestone)
		c.Set(constants.ContextKeyMembership, member)
		c.Next()
	}
}

// GetMilestone retrieves the milestone from context (set by RequireMilestoneAccess)
func GetMilestone(c *gin.Context) (models.Milestone, bool) {
	value, exists := c.Get(constants.ContextKeyMilestone)
	if !exists {
		return models.Milestone{}, false
	}
	milestone, ok := value.(models.Milestone)
	return milestone, ok
}
