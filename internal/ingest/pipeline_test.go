package ingest_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/kerem-kaynak/formstore/internal/config"
	"github.com/kerem-kaynak/formstore/internal/entity"
	"github.com/kerem-kaynak/formstore/internal/ingest"
	"github.com/kerem-kaynak/formstore/internal/storage"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.Migrate(db))
	return db
}

// stubSource feeds canned records into the pipeline.
type stubSource struct {
	name        string
	serviceName string
	records     []ingest.Record
	mappings    []ingest.FieldMapping
	fetchErr    error
}

func (s *stubSource) Name() string               { return s.name }
func (s *stubSource) ServiceName() string        { return s.serviceName }
func (s *stubSource) ServiceDescription() string { return "stub service for " + s.name }
func (s *stubSource) Mappings() []ingest.FieldMapping {
	return s.mappings
}
func (s *stubSource) Fetch(ctx context.Context) ([]ingest.Record, error) {
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	return s.records, nil
}

func cardSetMappings() []ingest.FieldMapping {
	return []ingest.FieldMapping{
		{
			Name:        "SetName",
			Description: "Name of the pokemon set",
			FormType:    entity.FormTypeText,
			Extract:     ingest.StringKey("name"),
		},
		{
			Name:        "TotalCards",
			Description: "Total number of cards in the set",
			FormType:    entity.FormTypeInteger,
			Extract:     ingest.IntKey("printedTotal"),
		},
	}
}

func countAll(t *testing.T, db *gorm.DB) map[string]int64 {
	t.Helper()
	counts := map[string]int64{}
	for name, model := range map[string]interface{}{
		"services": &entity.Service{},
		"fields":   &entity.Field{},
		"objects":  &entity.Object{},
	} {
		var count int64
		require.NoError(t, db.Model(model).Count(&count).Error)
		counts[name] = count
	}
	var values int64
	for _, model := range entity.ValueModels() {
		var count int64
		require.NoError(t, db.Model(model).Count(&count).Error)
		values += count
	}
	counts["values"] = values
	return counts
}

func TestRunEndToEnd(t *testing.T) {
	db := newTestDB(t)
	pipeline := ingest.NewPipeline(db, zap.NewNop())

	src := &stubSource{
		name:        "cards",
		serviceName: "cardSetCollection",
		records:     []ingest.Record{{"name": "Base Set", "printedTotal": 102.0}},
		mappings:    cardSetMappings(),
	}

	require.NoError(t, pipeline.Run(context.Background(), src, ingest.PolicyAutomatic))

	counts := countAll(t, db)
	assert.Equal(t, int64(1), counts["services"])
	assert.Equal(t, int64(1), counts["objects"])
	assert.Equal(t, int64(2), counts["fields"])
	assert.Equal(t, int64(2), counts["values"])

	var text entity.TextForm
	require.NoError(t, db.First(&text).Error)
	assert.Equal(t, "Base Set", text.Value)

	var integer entity.IntegerForm
	require.NoError(t, db.First(&integer).Error)
	assert.Equal(t, int64(102), integer.Value)
}

func TestRunFieldCatalogSharedAcrossObjects(t *testing.T) {
	db := newTestDB(t)
	pipeline := ingest.NewPipeline(db, zap.NewNop())

	src := &stubSource{
		name:        "cards",
		serviceName: "cardSetCollection",
		records: []ingest.Record{
			{"name": "Base Set", "printedTotal": 102.0},
			{"name": "Jungle", "printedTotal": 64.0},
			{"name": "Fossil", "printedTotal": 62.0},
		},
		mappings: cardSetMappings(),
	}

	require.NoError(t, pipeline.Run(context.Background(), src, ingest.PolicyAutomatic))

	counts := countAll(t, db)
	assert.Equal(t, int64(3), counts["objects"])
	// Three records still resolve to the same two field definitions.
	assert.Equal(t, int64(2), counts["fields"])
	assert.Equal(t, int64(6), counts["values"])
}

func failingSource() *stubSource {
	return &stubSource{
		name:        "comics",
		serviceName: "comicCollection",
		records: []ingest.Record{
			{
				"title": "Issue #1",
				"prices": []interface{}{
					map[string]interface{}{"type": "printPrice", "price": 3.99},
				},
			},
			// Second record is missing the nested price entry.
			{"title": "Issue #2", "prices": []interface{}{}},
		},
		mappings: []ingest.FieldMapping{
			{
				Name:        "title",
				Description: "comic title",
				FormType:    entity.FormTypeText,
				Extract:     ingest.StringKey("title"),
			},
			{
				Name:        "price",
				Description: "print price",
				FormType:    entity.FormTypeFloat,
				Extract:     ingest.PriceOfType("prices", "printPrice"),
			},
		},
	}
}

func TestRunAutomaticPolicyRollsBackEverything(t *testing.T) {
	db := newTestDB(t)
	pipeline := ingest.NewPipeline(db, zap.NewNop())

	err := pipeline.Run(context.Background(), failingSource(), ingest.PolicyAutomatic)
	require.Error(t, err)

	var extractionErr *ingest.ExtractionError
	require.ErrorAs(t, err, &extractionErr)
	assert.Equal(t, "price", extractionErr.Field)

	for name, count := range countAll(t, db) {
		assert.Zero(t, count, name)
	}
}

func TestRunManualPolicyCompensates(t *testing.T) {
	db := newTestDB(t)
	pipeline := ingest.NewPipeline(db, zap.NewNop())

	// An unrelated service from an earlier run must survive recovery.
	unrelated := &stubSource{
		name:        "cards",
		serviceName: "cardSetCollection",
		records:     []ingest.Record{{"name": "Base Set", "printedTotal": 102.0}},
		mappings:    cardSetMappings(),
	}
	require.NoError(t, pipeline.Run(context.Background(), unrelated, ingest.PolicyManual))
	before := countAll(t, db)

	err := pipeline.Run(context.Background(), failingSource(), ingest.PolicyManual)
	require.Error(t, err)

	var extractionErr *ingest.ExtractionError
	require.ErrorAs(t, err, &extractionErr)

	assert.Equal(t, before, countAll(t, db))

	var service entity.Service
	require.NoError(t, db.First(&service, "name = ?", "cardSetCollection").Error)
	assert.ErrorIs(t, db.First(&entity.Service{}, "name = ?", "comicCollection").Error, gorm.ErrRecordNotFound)
}

func TestRunFetchErrorLeavesNoState(t *testing.T) {
	db := newTestDB(t)
	pipeline := ingest.NewPipeline(db, zap.NewNop())

	src := &stubSource{
		name:        "cards",
		serviceName: "cardSetCollection",
		fetchErr:    errors.New("connection refused"),
	}

	for _, policy := range []ingest.Policy{ingest.PolicyAutomatic, ingest.PolicyManual} {
		err := pipeline.Run(context.Background(), src, policy)
		require.Error(t, err)

		var fetchErr *ingest.FetchError
		require.ErrorAs(t, err, &fetchErr)
		assert.Equal(t, "cards", fetchErr.Source)

		counts := countAll(t, db)
		assert.Zero(t, counts["services"])
	}
}

func TestRunManualPolicyDoesNotDeletePreexistingService(t *testing.T) {
	db := newTestDB(t)
	pipeline := ingest.NewPipeline(db, zap.NewNop())

	existing, err := storage.CreateService(db, "comicCollection", "created by an earlier run")
	require.NoError(t, err)

	// The run fails on the duplicate name before writing anything; the
	// compensation step must not touch the service it did not create.
	err = pipeline.Run(context.Background(), failingSource(), ingest.PolicyManual)
	require.Error(t, err)
	assert.ErrorIs(t, err, storage.ErrDuplicateServiceName)

	var service entity.Service
	require.NoError(t, db.First(&service, "id = ?", existing.ID).Error)
}

func TestRunUnknownPolicy(t *testing.T) {
	db := newTestDB(t)
	pipeline := ingest.NewPipeline(db, zap.NewNop())

	err := pipeline.Run(context.Background(), failingSource(), ingest.Policy("yolo"))
	require.Error(t, err)
}
