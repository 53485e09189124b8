package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"paths-api/internal/domain"
	"paths-api/internal/service"
)

// MediaHandler mantiene dependencias para endpoints de media generada.
type MediaHandler struct {
	logger    *zap.Logger
	mediaServ *service.MediaService
}

func NewMediaHandler(logger *zap.Logger, mediaServ *service.MediaService) *MediaHandler {
	return &MediaHandler{
		logger:    logger,
		mediaServ: mediaServ,
	}
}

// GenerateMedia maneja POST /media.
func (h *MediaHandler) GenerateMedia(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	var req struct {
		SimulationID string `json:"simulation_id" binding:"required"`
		EventID      string `json:"event_id"`
		Prompt       string `json:"prompt" binding:"required,min=10,max=500"`
		Type         string `json:"type" binding:"required,oneof=image video"`
		Style        string `json:"style"`
		Duration     int    `json:"duration" binding:"omitempty,min=3,max=10"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid generate media request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	media, err := h.mediaServ.Generate(c.Request.Context(), claims.UserID, service.MediaInput{
		SimulationID: req.SimulationID,
		EventID:      req.EventID,
		Prompt:       req.Prompt,
		Type:         domain.MediaType(req.Type),
		Style:        req.Style,
		Duration:     req.Duration,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMediaNotAllowed):
			c.JSON(http.StatusPaymentRequired, gin.H{"error": "media generation requires a premium subscription"})
			return
		case errors.Is(err, service.ErrSimulationNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "simulation not found"})
			return
		default:
			h.logger.Error("generate media failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate media"})
			return
		}
	}

	c.JSON(http.StatusCreated, gin.H{"media": media})
}

// ListMedia maneja GET /simulations/:id/media.
func (h *MediaHandler) ListMedia(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	items, err := h.mediaServ.ListBySimulation(c.Request.Context(), claims.UserID, c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrSimulationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "simulation not found"})
			return
		}
		h.logger.Error("list media failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list media"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"media": items})
}
