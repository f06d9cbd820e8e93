package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"blogapi/internal/container"
	handlers "blogapi/internal/interface/http"
	"blogapi/internal/interface/middleware"
	"blogapi/pkg/helpers"
)

// CategoryModule wires category routes. Reads are public, mutations require auth.

type CategoryModule struct {
	Handler *handlers.CategoryHandler
	JWT     *helpers.JWTManager
}

func NewCategoryModule(h *handlers.CategoryHandler, jwt *helpers.JWTManager) *CategoryModule {
	return &CategoryModule{Handler: h, JWT: jwt}
}

func (m *CategoryModule) Register(rg *gin.RouterGroup) {
	rg.GET("/categories", m.Handler.List)
	rg.GET("/categories/:id", m.Handler.Get)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/categories", m.Handler.Create)
		auth.PUT("/categories/:id", m.Handler.Update)
		auth.DELETE("/categories/:id", m.Handler.Delete)
	}
}
