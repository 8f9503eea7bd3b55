package http

import (
	"github.com/gin-gonic/gin"
	"github.com/kerem-kaynak/formstore/internal/appcontext"
	"github.com/kerem-kaynak/formstore/internal/http/middleware"
)

type APIService struct {
	engine  *gin.Engine
	context *appcontext.Context
}

func NewHTTPService(ctx *appcontext.Context) *APIService {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(ctx.Logger))

	service := &APIService{
		engine:  engine,
		context: ctx,
	}
	service.setupRoutes()
	return service
}

func (h *APIService) Engine() *gin.Engine {
	return h.engine
}

func (h *APIService) setupRoutes() {
	v1 := h.engine.Group("/api/v1")
	h.setupIngestRoutes(v1)
	h.setupServiceRoutes(v1)
	h.setupAdminRoutes(v1)
}

func (h *APIService) setupIngestRoutes(group *gin.RouterGroup) {
	runs := group.Group("/ingest")

	runs.POST("/:source", RunIngestion(h.context))
}

func (h *APIService) setupServiceRoutes(group *gin.RouterGroup) {
	services := group.Group("/services")

	services.GET("/", GetServices(h.context))
}

func (h *APIService) setupAdminRoutes(group *gin.RouterGroup) {
	admin := group.Group("/admin")

	admin.POST("/reset", ResetStorage(h.context))
}
