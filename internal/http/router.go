package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"paths-api/internal/service"
)

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	jwtServ *service.JWTService,
	userH *UserHandler,
	decisionH *DecisionHandler,
	simH *SimulationHandler,
	mediaH *MediaHandler,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging, recovery y JSON content-type.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	users := r.Group("/users")
	users.POST("", userH.Register)

	auth := r.Group("/auth")
	auth.POST("/login", userH.Login)
	auth.POST("/otp/request", userH.RequestOTP)
	auth.POST("/otp/verify", userH.VerifyOTP)
	auth.POST("/oauth", userH.OAuthLogin)
	auth.POST("/refresh", userH.RefreshToken)
	auth.POST("/logout", userH.Logout)

	authed := r.Group("/")
	authed.Use(JWTAuthMiddleware(jwtServ))

	decisions := authed.Group("/decisions")
	decisions.POST("", decisionH.CreateDecision)
	decisions.GET("", decisionH.ListDecisions)
	decisions.GET("/:id", decisionH.GetDecision)
	decisions.GET("/:id/similar", decisionH.SimilarDecisions)

	sims := authed.Group("/simulations")
	sims.POST("", simH.CreateSimulation)
	sims.GET("", simH.ListSimulations)
	sims.GET("/:id", simH.GetSimulation)
	sims.GET("/:id/media", mediaH.ListMedia)

	authed.POST("/media", mediaH.GenerateMedia)
	authed.GET("/stats", simH.GetStats)
	authed.GET("/profile", simH.GetProfile)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
