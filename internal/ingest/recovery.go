package ingest

import (
	"context"
	"errors"
	"fmt"

	"github.com/kerem-kaynak/formstore/internal/storage"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Policy selects how a failed run is brought back to a clean state.
type Policy string

const (
	// PolicyAutomatic executes the whole run inside a single transaction;
	// any failure rolls back every effect, including the service row.
	PolicyAutomatic Policy = "automatic"

	// PolicyManual executes the run without a wrapping transaction and
	// compensates on failure with explicit ordered deletes. It is the
	// portable fallback for backends without multi-statement transactions.
	PolicyManual Policy = "manual"
)

func (p Policy) Valid() bool {
	return p == PolicyAutomatic || p == PolicyManual
}

// Run executes one ingestion run for the source under the given recovery
// policy. On failure the original error is returned, but storage is left
// exactly as it was before the run started; services from other runs are
// never touched. On success neither policy performs any cleanup.
func (p *Pipeline) Run(ctx context.Context, src Source, policy Policy) error {
	switch policy {
	case PolicyAutomatic:
		return p.db.Transaction(func(tx *gorm.DB) error {
			_, err := p.run(ctx, tx, src)
			return err
		})

	case PolicyManual:
		serviceCreated, err := p.run(ctx, p.db, src)
		if err == nil {
			return nil
		}
		if serviceCreated {
			p.logger.Error("Ingestion run failed, compensating",
				zap.String("source", src.Name()),
				zap.String("service", src.ServiceName()),
				zap.Error(err),
			)
			if rerr := p.compensate(src.ServiceName()); rerr != nil {
				p.logger.Error("Failed to compensate ingestion run", zap.Error(rerr))
				return errors.Join(err, rerr)
			}
		}
		return err

	default:
		return fmt.Errorf("unknown recovery policy %q", policy)
	}
}

// compensate restores the pre-run state by hand: locate the run's service
// by name, then delete its value rows, objects, fields and finally the
// service itself, in that order. The end state matches what a transactional
// rollback would have produced.
func (p *Pipeline) compensate(serviceName string) error {
	service, err := storage.GetServiceByName(p.db, serviceName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("failed to locate service %q for compensation: %w", serviceName, err)
	}
	return storage.DeleteService(p.db, service)
}
