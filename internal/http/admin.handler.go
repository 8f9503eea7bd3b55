package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kerem-kaynak/formstore/internal/appcontext"
	"github.com/kerem-kaynak/formstore/internal/storage"
	"go.uber.org/zap"
)

// ResetStorage deletes every service and everything owned by them. Meant
// for clearing the environment between test or demo runs.
func ResetStorage(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := storage.DeleteAll(ctx.DB); err != nil {
			ctx.Logger.Error("Failed to reset storage", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset storage"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "All ingested data deleted"})
	}
}
