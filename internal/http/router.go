package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-ID"

// NewRouter configura el router de Gin con middlewares y rutas de la API.
func NewRouter(
	logger *zap.Logger,
	aiH *AIHandler,
	pokemonH *PokemonHandler,
	teamH *TeamHandler,
) *gin.Engine {
	if err := registerValidators(); err != nil {
		logger.Fatal("register validators", zap.Error(err))
	}

	r := gin.New()

	// Middlewares basicos: request id, logging, recovery y JSON content-type.
	r.Use(requestIDMiddleware(), zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")

	ai := v1.Group("/ai")
	ai.GET("/status", aiH.Status)
	ai.POST("/recommend", aiH.Recommend)
	ai.POST("/analyze", aiH.Analyze)

	pokemon := v1.Group("/pokemon")
	pokemon.GET("/search", pokemonH.Search)
	pokemon.GET("/:id", pokemonH.GetDetail)
	pokemon.GET("/:id/abilities", pokemonH.ListAbilities)
	pokemon.GET("/:id/moves", pokemonH.ListMoves)

	v1.GET("/items/search", pokemonH.SearchItems)

	teams := v1.Group("/teams")
	teams.POST("", teamH.SaveTeam)
	teams.GET("/vulnerability", aiH.Vulnerability)
	teams.GET("/user/:user_id", teamH.ListUserTeams)
	teams.DELETE("/:team_id", teamH.DeleteTeam)

	return r
}

// requestIDMiddleware propaga X-Request-ID o genera uno nuevo.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
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
			zap.String("request_id", c.GetString("request_id")),
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
