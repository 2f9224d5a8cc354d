package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"procedurecheck-backend/models"
	"procedurecheck-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AnalysisHandler handles HTTP requests for analyses and court outcomes
type AnalysisHandler struct {
	analysisService *service.AnalysisService
	outcomeService  *service.OutcomeService
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(analysisService *service.AnalysisService, outcomeService *service.OutcomeService) *AnalysisHandler {
	return &AnalysisHandler{
		analysisService: analysisService,
		outcomeService:  outcomeService,
	}
}

// SaveAnalysisRequest represents the request body for persisting an analysis
type SaveAnalysisRequest struct {
	UserID       string          `json:"user_id" binding:"required"`
	DocumentName string          `json:"document_name"`
	DocumentType string          `json:"document_type"`
	Result       json.RawMessage `json:"result" binding:"required"`
}

// SaveAnalysis handles POST /api/analyses
func (h *AnalysisHandler) SaveAnalysis(c *gin.Context) {
	var req SaveAnalysisRequest
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

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_USER_ID",
				"message": "Invalid user_id format",
			},
		})
		return
	}

	result, err := h.analysisService.SaveAnalysis(c.Request.Context(), service.SaveAnalysisRequest{
		UserID:       userID,
		DocumentName: req.DocumentName,
		DocumentType: models.DocumentType(req.DocumentType),
		Result:       models.ResultPayload(req.Result),
	})
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

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    result.Analysis,
	})
}

// GetAnalysis handles GET /api/analyses/:id
func (h *AnalysisHandler) GetAnalysis(c *gin.Context) {
	id, ok := parseAnalysisID(c)
	if !ok {
		return
	}

	result, err := h.analysisService.GetAnalysis(c.Request.Context(), service.GetAnalysisRequest{ID: id})
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ANALYSIS_NOT_FOUND",
				"message": "Analysis not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result.Analysis,
	})
}

// ListAnalyses handles GET /api/analyses
func (h *AnalysisHandler) ListAnalyses(c *gin.Context) {
	result, err := h.analysisService.ListAnalyses(c.Request.Context())
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
		"data":    result.Analyses,
	})
}

// RecordOutcomeRequest represents the request body for recording an outcome
type RecordOutcomeRequest struct {
	Outcome            string   `json:"outcome" binding:"required"`
	DefectsRaised      []string `json:"defects_raised"`
	CourtResponse      string   `json:"court_response"`
	EffectiveArguments []string `json:"effective_arguments"`
	OutcomeDate        string   `json:"outcome_date" binding:"required"`
}

// RecordOutcome handles POST /api/analyses/:id/outcomes
func (h *AnalysisHandler) RecordOutcome(c *gin.Context) {
	id, ok := parseAnalysisID(c)
	if !ok {
		return
	}

	var req RecordOutcomeRequest
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

	outcomeDate, err := time.Parse("2006-01-02", req.OutcomeDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_DATE",
				"message": "outcome_date must be formatted YYYY-MM-DD",
			},
		})
		return
	}

	result, err := h.outcomeService.RecordOutcome(c.Request.Context(), service.RecordOutcomeRequest{
		AnalysisID:         id,
		Outcome:            models.Outcome(req.Outcome),
		DefectsRaised:      req.DefectsRaised,
		CourtResponse:      req.CourtResponse,
		EffectiveArguments: req.EffectiveArguments,
		OutcomeDate:        outcomeDate,
	})
	if err != nil {
		status := http.StatusInternalServerError
		code := "STORAGE_ERROR"
		switch {
		case errors.Is(err, service.ErrInvalidOutcome),
			errors.Is(err, service.ErrMissingDate),
			errors.Is(err, service.ErrNoDefectsRaised):
			status = http.StatusBadRequest
			code = "VALIDATION_ERROR"
		case errors.Is(err, service.ErrAnalysisNotFound):
			status = http.StatusNotFound
			code = "ANALYSIS_NOT_FOUND"
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

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    result.Outcome,
	})
}

// ListAnalysisOutcomes handles GET /api/analyses/:id/outcomes
func (h *AnalysisHandler) ListAnalysisOutcomes(c *gin.Context) {
	id, ok := parseAnalysisID(c)
	if !ok {
		return
	}

	result, err := h.outcomeService.ListOutcomesForAnalysis(c.Request.Context(), id)
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
		"data":    result.Outcomes,
	})
}

// ListOutcomes handles GET /api/outcomes
func (h *AnalysisHandler) ListOutcomes(c *gin.Context) {
	result, err := h.outcomeService.ListOutcomes(c.Request.Context())
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
		"data":    result.Outcomes,
	})
}

// parseAnalysisID extracts the numeric analysis id from the route, writing
// the error response itself when the id is malformed.
func parseAnalysisID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ANALYSIS_ID",
				"message": "Invalid analysis id format",
			},
		})
		return 0, false
	}
	return id, true
}
