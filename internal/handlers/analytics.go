package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	apierrors "github.com/velora-hq/velora-api/internal/errors"
	"github.com/velora-hq/velora-api/internal/middleware"
	"github.com/velora-hq/velora-api/internal/services"
)

// AnalyticsHandler serves the derived workspace summary and the AI
// endpoints that build on it.
type AnalyticsHandler struct {
	analyticsService *services.AnalyticsService
	financeService   *services.FinanceService
	aiService        *services.AIService
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(
	analyticsService *services.AnalyticsService,
	financeService *services.FinanceService,
	aiService *services.AIService,
) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
		financeService:   financeService,
		aiService:        aiService,
	}
}

// WorkspaceSummary returns the cross-record analytics summary.
func (h *AnalyticsHandler) WorkspaceSummary(c *gin.Context) {
	workspace, _ := middleware.GetWorkspace(c)

	summary, err := h.analyticsService.WorkspaceSummary(workspace.ID)
	if err != nil {
		apierrors.InternalError(c, "Failed to compute summary")
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GenerateInsight asks the AI collaborator for advice grounded in the
// workspace's current numbers.
func (h *AnalyticsHandler) GenerateInsight(c *gin.Context) {
	workspace, _ := middleware.GetWorkspace(c)

	type InsightRequest struct {
		Type services.InsightType `json:"type"`
	}

	// An empty or absent body defaults to the general insight.
	var req InsightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req.Type = services.InsightTypeGeneral
	}

	summary, err := h.analyticsService.WorkspaceSummary(workspace.ID)
	if err != nil {
		apierrors.InternalError(c, "Failed to compute summary")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 60*time.Second)
	defer cancel()

	insight, err := h.aiService.GenerateInsight(ctx, &workspace, summary, req.Type)
	if err != nil {
		respondAIError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"insight": insight,
		"type":    req.Type,
	})
}

// GeneratePitch drafts an investor pitch from the workspace's profile
// and traction.
func (h *AnalyticsHandler) GeneratePitch(c *gin.Context) {
	workspace, _ := middleware.GetWorkspace(c)

	summary, err := h.analyticsService.WorkspaceSummary(workspace.ID)
	if err != nil {
		apierrors.InternalError(c, "Failed to compute summary")
		return
	}

	finance, err := h.financeService.FinanceSummary(workspace.ID)
	if err != nil {
		apierrors.InternalError(c, "Failed to compute finance summary")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 60*time.Second)
	defer cancel()

	pitch, err := h.aiService.GeneratePitch(ctx, &workspace, summary, finance)
	if err != nil {
		respondAIError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"pitch": pitch,
	})
}

func respondAIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrAIUnavailable):
		apierrors.ServiceUnavailable(c, err.Error())
	case errors.Is(err, services.ErrInvalidInsightType):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "AI request failed")
	}
}
