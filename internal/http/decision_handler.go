package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"paths-api/internal/service"
)

const defaultSimilarLimit = 5

// DecisionHandler mantiene dependencias para endpoints de decisiones.
type DecisionHandler struct {
	logger       *zap.Logger
	decisionServ *service.DecisionService
}

func NewDecisionHandler(logger *zap.Logger, decisionServ *service.DecisionService) *DecisionHandler {
	return &DecisionHandler{
		logger:       logger,
		decisionServ: decisionServ,
	}
}

// CreateDecision maneja POST /decisions.
func (h *DecisionHandler) CreateDecision(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	var req struct {
		Title           string `json:"title" binding:"required,min=5,max=100"`
		Description     string `json:"description" binding:"max=500"`
		Category        string `json:"category" binding:"required"`
		ChosenPath      string `json:"chosen_path" binding:"required,min=10,max=1000"`
		AlternativePath string `json:"alternative_path" binding:"required,min=10,max=1000"`
		Timeframe       string `json:"timeframe" binding:"required,min=3,max=50"`
		Importance      int    `json:"importance" binding:"required,min=1,max=5"`
		Context         string `json:"context" binding:"max=1000"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create decision request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	decision, err := h.decisionServ.Create(c.Request.Context(), claims.UserID, service.DecisionInput{
		Title:           req.Title,
		Description:     req.Description,
		Category:        req.Category,
		ChosenPath:      req.ChosenPath,
		AlternativePath: req.AlternativePath,
		Timeframe:       req.Timeframe,
		Importance:      req.Importance,
		Context:         req.Context,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidCategory) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category"})
			return
		}
		h.logger.Error("create decision failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create decision"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"decision": decision})
}

// ListDecisions maneja GET /decisions.
func (h *DecisionHandler) ListDecisions(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	decisions, err := h.decisionServ.List(c.Request.Context(), claims.UserID)
	if err != nil {
		h.logger.Error("list decisions failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list decisions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"decisions": decisions})
}

// GetDecision maneja GET /decisions/:id.
func (h *DecisionHandler) GetDecision(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	decision, err := h.decisionServ.Get(c.Request.Context(), claims.UserID, c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrDecisionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "decision not found"})
			return
		}
		h.logger.Error("get decision failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not get decision"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"decision": decision})
}

// SimilarDecisions maneja GET /decisions/:id/similar.
func (h *DecisionHandler) SimilarDecisions(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	decisions, err := h.decisionServ.FindSimilar(c.Request.Context(), claims.UserID, c.Param("id"), defaultSimilarLimit)
	if err != nil {
		if errors.Is(err, service.ErrDecisionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "decision not found"})
			return
		}
		h.logger.Error("find similar decisions failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not find similar decisions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"decisions": decisions})
}
