package handlers

import (
	"errors"
	"net/http"

	"procedurecheck-backend/models"
	"procedurecheck-backend/service"

	"github.com/gin-gonic/gin"
)

// InsightHandler handles HTTP requests for the intelligence layer
type InsightHandler struct {
	insightService *service.InsightService
	briefService   *service.BriefService
	engine         *service.PatternEngine
}

// NewInsightHandler creates a new insight handler
func NewInsightHandler(insightService *service.InsightService, briefService *service.BriefService, engine *service.PatternEngine) *InsightHandler {
	return &InsightHandler{
		insightService: insightService,
		briefService:   briefService,
		engine:         engine,
	}
}

// GetInsights handles GET /api/insights
func (h *InsightHandler) GetInsights(c *gin.Context) {
	report, err := h.insightService.BuildInsights(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "STORAGE_ERROR",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    report,
	})
}

// GetSuccessRates handles GET /api/insights/success-rates
func (h *InsightHandler) GetSuccessRates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    h.engine.SuccessRates(),
	})
}

// GetPatterns handles GET /api/insights/patterns
func (h *InsightHandler) GetPatterns(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    h.engine.PatternCounts(),
	})
}

// PrioritizeRequest represents the request body for defect prioritization
type PrioritizeRequest struct {
	Defects []models.Defect `json:"defects" binding:"required"`
}

// PrioritizeDefects handles POST /api/insights/prioritize
func (h *InsightHandler) PrioritizeDefects(c *gin.Context) {
	var req PrioritizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    h.engine.PrioritizeDefects(req.Defects),
	})
}

// GenerateBrief handles POST /api/insights/brief
func (h *InsightHandler) GenerateBrief(c *gin.Context) {
	result, err := h.briefService.GenerateBrief(c.Request.Context())
	if err != nil {
		status := http.StatusInternalServerError
		code := "BRIEF_GENERATION_FAILED"
		if errors.Is(err, service.ErrGeminiNotConfigured) {
			status = http.StatusServiceUnavailable
			code = "GEMINI_NOT_CONFIGURED"
		}
		c.JSON(status, gin.H{
			"success": false,
			"error": gin.H{
				"code":    code,
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}

// ClearRecords handles DELETE /api/admin/records
func (h *InsightHandler) ClearRecords(c *gin.Context) {
	if err := h.insightService.ClearAll(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "STORAGE_ERROR",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
	})
}
