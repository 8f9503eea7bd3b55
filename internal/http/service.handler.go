package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kerem-kaynak/formstore/internal/appcontext"
	"github.com/kerem-kaynak/formstore/internal/entity"
	"go.uber.org/zap"
)

// GetServices lists the ingested services.
func GetServices(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		var services []entity.Service
		if err := ctx.DB.Find(&services).Error; err != nil {
			ctx.Logger.Error("Failed to get services from database", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get services from database"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"services": services})
	}
}
