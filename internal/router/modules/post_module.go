package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"blogapi/internal/container"
	handlers "blogapi/internal/interface/http"
	"blogapi/internal/interface/middleware"
	"blogapi/pkg/helpers"
)

// PostModule wires post routes.
// Public: GET /api/posts, GET /api/posts/search, GET /api/posts/:id
// Protected (mutations require a verified identity): POST, PUT, DELETE

type PostModule struct {
	Handler *handlers.PostHandler
	JWT     *helpers.JWTManager
}

func NewPostModule(h *handlers.PostHandler, jwt *helpers.JWTManager) *PostModule {
	return &PostModule{Handler: h, JWT: jwt}
}

func (m *PostModule) Register(rg *gin.RouterGroup) {
	rg.GET("/posts", m.Handler.List)
	rg.GET("/posts/search", m.Handler.Search)
	rg.GET("/posts/:id", m.Handler.Get)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/posts", m.Handler.Create)
		auth.PUT("/posts/:id", m.Handler.Update)
		auth.DELETE("/posts/:id", m.Handler.Delete)
	}
}
