package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"paths-api/internal/repository"
	"paths-api/internal/service"
)

// SimulationHandler mantiene dependencias para endpoints de simulaciones,
// estadisticas y perfil de rasgos.
type SimulationHandler struct {
	logger   *zap.Logger
	simServ  *service.SimulationService
	sims     repository.SimulationRepository
	profiles repository.ProfileRepository
}

func NewSimulationHandler(
	logger *zap.Logger,
	simServ *service.SimulationService,
	sims repository.SimulationRepository,
	profiles repository.ProfileRepository,
) *SimulationHandler {
	return &SimulationHandler{
		logger:   logger,
		simServ:  simServ,
		sims:     sims,
		profiles: profiles,
	}
}

// CreateSimulation maneja POST /simulations.
func (h *SimulationHandler) CreateSimulation(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	var req struct {
		DecisionID string `json:"decision_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create simulation request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	result, err := h.simServ.Process(c.Request.Context(), claims.UserID, req.DecisionID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDecisionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "decision not found"})
			return
		case errors.Is(err, service.ErrQuotaExceeded):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "monthly simulation limit reached"})
			return
		default:
			h.logger.Error("simulation failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not run simulation"})
			return
		}
	}

	c.JSON(http.StatusCreated, gin.H{"result": result})
}

// GetSimulation maneja GET /simulations/:id.
func (h *SimulationHandler) GetSimulation(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	sim, err := h.simServ.GetSimulation(c.Request.Context(), claims.UserID, c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrSimulationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "simulation not found"})
			return
		}
		h.logger.Error("get simulation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not get simulation"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"simulation": sim})
}

// ListSimulations maneja GET /simulations.
func (h *SimulationHandler) ListSimulations(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	sims, err := h.simServ.ListSimulations(c.Request.Context(), claims.UserID)
	if err != nil {
		h.logger.Error("list simulations failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list simulations"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"simulations": sims})
}

// GetStats maneja GET /stats.
func (h *SimulationHandler) GetStats(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	stats, err := h.sims.StatsByUser(c.Request.Context(), claims.UserID)
	if err != nil {
		h.logger.Error("get stats failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not get stats"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// GetProfile maneja GET /profile.
func (h *SimulationHandler) GetProfile(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	patterns, err := h.profiles.LoadPatterns(c.Request.Context(), claims.UserID)
	if err != nil {
		h.logger.Error("load patterns failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load profile"})
		return
	}
	tier, err := h.profiles.GetTier(c.Request.Context(), claims.UserID)
	if err != nil {
		h.logger.Error("load tier failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"decision_patterns": patterns,
		"subscription_tier": tier,
	})
}
