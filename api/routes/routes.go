package routes

import (
	"gametrack/api/handlers"

	"github.com/gin-gonic/gin"
)

type Router struct {
	Engine *gin.Engine
	api    *gin.RouterGroup
}

func NewRouter(engine *gin.Engine) *Router {
	return &Router{
		api:    engine.Group("/api"),
		Engine: engine,
	}
}

func (r *Router) SetupRoutes(handlerList ...any) {
	for _, h := range handlerList {
		switch handler := h.(type) {
		case *handlers.PlayerHandler:
			r.registerPlayerHandler(handler)
		}
	}
}

// Register the player handler.
func (r *Router) registerPlayerHandler(handler *handlers.PlayerHandler) {
	players := r.api.Group("/players")
	{
		players.POST("/search", handler.LookupPlayer)
		players.POST("/fetch-stats", handler.FetchPlayerStats)
		players.GET("/:puuid/matches", handler.GetPlayerMatches)
		players.DELETE("/:puuid", handler.DeletePlayer)
	}
}
