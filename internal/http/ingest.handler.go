package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kerem-kaynak/formstore/internal/appcontext"
	"github.com/kerem-kaynak/formstore/internal/ingest"
	"github.com/kerem-kaynak/formstore/internal/storage"
	"go.uber.org/zap"
)

// RunIngestion triggers a full ingestion run for the named source. The
// source's configured recovery policy applies unless overridden with the
// ?policy= query parameter.
func RunIngestion(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Param("source")
		src, ok := ctx.Sources[name]
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Unknown source"})
			return
		}

		policy := ctx.Policies[name]
		if override := c.Query("policy"); override != "" {
			policy = ingest.Policy(override)
			if !policy.Valid() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown recovery policy"})
				return
			}
		}

		pipeline := ingest.NewPipeline(ctx.DB, ctx.Logger)
		if err := pipeline.Run(c.Request.Context(), src, policy); err != nil {
			ctx.Logger.Error("Ingestion run failed", zap.String("source", name), zap.Error(err))
			if errors.Is(err, storage.ErrDuplicateServiceName) {
				c.JSON(http.StatusConflict, gin.H{"error": "Service for this source already exists"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ingestion run failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Ingestion completed successfully",
			"service": src.ServiceName(),
			"policy":  policy,
		})
	}
}
