// Package ingest runs ingestion pipelines: fetch all records from an
// external source, create a service for the run, and write one object plus
// its typed field values per record. A selectable recovery policy
// guarantees a failed run leaves no partial state behind.
package ingest

import (
	"context"

	"github.com/kerem-kaynak/formstore/internal/storage"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Source is an external data provider. Fetch must return the complete
// record list in one call; a paginating provider is expected to loop
// internally. The pipeline never retries a failed fetch.
type Source interface {
	Name() string
	ServiceName() string
	ServiceDescription() string
	Mappings() []FieldMapping
	Fetch(ctx context.Context) ([]Record, error)
}

type Pipeline struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewPipeline(db *gorm.DB, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		db:     db,
		logger: logger,
	}
}

// run executes one full ingestion pass on the given handle, which is either
// the base DB (manual policy) or a transaction (automatic policy). The
// returned flag reports whether the run's service row was created, so the
// manual policy knows whether there is anything to compensate: a run that
// failed on fetch or on a duplicate name must not delete a service it never
// created.
func (p *Pipeline) run(ctx context.Context, db *gorm.DB, src Source) (bool, error) {
	records, err := src.Fetch(ctx)
	if err != nil {
		return false, &FetchError{Source: src.Name(), Err: err}
	}
	p.logger.Info("Fetched records from source",
		zap.String("source", src.Name()),
		zap.Int("records", len(records)),
	)

	service, err := storage.CreateService(db, src.ServiceName(), src.ServiceDescription())
	if err != nil {
		return false, err
	}

	mappings := src.Mappings()
	for _, record := range records {
		object, err := storage.CreateObject(db, service)
		if err != nil {
			return true, err
		}

		for _, mapping := range mappings {
			value, err := mapping.Extract(record)
			if err != nil {
				return true, &ExtractionError{Field: mapping.Name, Err: err}
			}

			field, _, err := storage.ResolveOrCreateField(db, service, mapping.Name, mapping.Description, mapping.FormType)
			if err != nil {
				return true, err
			}

			if _, err := storage.WriteValue(db, object, field, value); err != nil {
				return true, err
			}
		}
	}

	p.logger.Info("Ingestion run completed",
		zap.String("source", src.Name()),
		zap.String("service", service.Name),
		zap.Int("objects", len(records)),
	)
	return true, nil
}
