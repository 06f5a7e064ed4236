package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/velora-hq/velora-api/internal/dto"
	apierrors "github.com/velora-hq/velora-api/internal/errors"
	"github.com/velora-hq/velora-api/internal/middleware"
	"github.com/velora-hq/velora-api/internal/services"
)

// InvestorHandler coordinates investor invite and investor view HTTP
// handlers.
type InvestorHandler struct {
	investorService *services.InvestorService
}

// NewInvestorHandler creates a new InvestorHandler.
func NewInvestorHandler(investorService *services.InvestorService) *InvestorHandler {
	return &InvestorHandler{
		investorService: investorService,
	}
}

// InviteInvestor creates a single-use investor invite. Founder only.
func (h *InvestorHandler) InviteInvestor(c *gin.Context) {
	workspace, _ := middleware.GetWorkspace(c)
	userID, _ := middleware.GetUserID(c)

	type InviteRequest struct {
		Email string `json:"email" binding:"required,email"`
		Name  string `json:"name"`
	}

	var req InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	invite, err := h.investorService.InviteInvestor(services.InviteInvestorInput{
		WorkspaceID: workspace.ID,
		Email:       req.Email,
		Name:        req.Name,
		CreatedBy:   userID,
	})
	if err != nil {
		respondInvestorError(c, err)
		return
	}

	c.JSON(http.StatusCreated, invite)
}

// ListInvestors returns the investor roster: accepted investors and
// pending invites.
func (h *InvestorHandler) ListInvestors(c *gin.Context) {
	workspace, _ := middleware.GetWorkspace(c)

	investors, err := h.investorService.ListInvestors(workspace.ID)
	if err != nil {
		respondInvestorError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"investors": investors,
	})
}

// AcceptInvite consumes an investor invite code and joins the caller to
// the workspace with the investor role.
func (h *InvestorHandler) AcceptInvite(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type AcceptRequest struct {
		InviteCode string `json:"invite_code" binding:"required"`
	}

	var req AcceptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	workspace, err := h.investorService.AcceptInvite(userID, req.InviteCode)
	if err != nil {
		respondInvestorError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Successfully joined workspace as investor",
		"workspace": dto.ToWorkspaceDTO(*workspace, false),
	})
}

// RemoveInvestor removes an investor-role member. Founder only.
func (h *InvestorHandler) RemoveInvestor(c *gin.Context) {
	workspace, _ := middleware.GetWorkspace(c)

	targetUserID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}

	if err := h.investorService.RemoveInvestor(workspace.ID, targetUserID); err != nil {
		respondInvestorError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Investor removed successfully",
	})
}

// InvestorView returns the aggregate-only view served to investor
// members.
func (h *InvestorHandler) InvestorView(c *gin.Context) {
	workspace, _ := middleware.GetWorkspace(c)

	view, err := h.investorService.InvestorView(workspace.ID)
	if err != nil {
		respondInvestorError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func respondInvestorError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEmailRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrInviteNotFound),
		errors.Is(err, services.ErrWorkspaceNotFound),
		errors.Is(err, services.ErrMemberNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrAlreadyMember):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrNotAnInvestor):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
