package appcontext

import (
	"github.com/kerem-kaynak/formstore/internal/ingest"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Context struct {
	DB     *gorm.DB
	Logger *zap.Logger

	// Sources maps source name to its configured provider; Policies holds
	// the recovery policy each source runs under by default.
	Sources  map[string]ingest.Source
	Policies map[string]ingest.Policy
}
