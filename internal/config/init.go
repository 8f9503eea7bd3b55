package config

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kerem-kaynak/formstore/internal/appcontext"
	"github.com/kerem-kaynak/formstore/internal/entity"
	"github.com/kerem-kaynak/formstore/internal/ingest"
	"github.com/kerem-kaynak/formstore/internal/sources"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func InitContext() (*appcontext.Context, error) {
	if err := godotenv.Load(); err != nil {
		zap.L().Warn("No .env file found, using environment variables")
	}

	logger, err := InitLogger()
	if err != nil {
		return nil, err
	}
	defer logger.Sync()

	db, err := InitDB()
	if err != nil {
		return nil, err
	}

	sourcesPath := os.Getenv("SOURCES_CONFIG")
	if sourcesPath == "" {
		sourcesPath = "sources.yaml"
	}
	sourcesCfg, err := LoadSources(sourcesPath)
	if err != nil {
		return nil, err
	}

	// Absent credentials resolve to empty strings. The resulting auth
	// failure, if any, surfaces when the provider rejects the fetch.
	httpClient := &http.Client{Timeout: 30 * time.Second}
	pokemon := sources.NewPokemonTCG(
		sourcesCfg.Pokemon.BaseURL,
		os.Getenv("POKEMON_API_KEY"),
		httpClient,
	)
	marvel := sources.NewMarvel(
		sourcesCfg.Marvel.BaseURL,
		os.Getenv("MARVEL_PUBLIC_KEY"),
		os.Getenv("MARVEL_PRIVATE_KEY"),
		sourcesCfg.Marvel.PageSize,
		httpClient,
	)

	ctx := &appcontext.Context{
		DB:     db,
		Logger: logger,

		Sources: map[string]ingest.Source{
			pokemon.Name(): pokemon,
			marvel.Name():  marvel,
		},
		Policies: map[string]ingest.Policy{
			pokemon.Name(): ingest.Policy(sourcesCfg.Pokemon.Recovery),
			marvel.Name():  ingest.Policy(sourcesCfg.Marvel.Recovery),
		},
	}

	return ctx, nil
}

func InitDB() (*gorm.DB, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates the service, field, object and seven value tables.
func Migrate(db *gorm.DB) error {
	models := []interface{}{&entity.Service{}, &entity.Field{}, &entity.Object{}}
	models = append(models, entity.ValueModels()...)
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

func InitLogger() (*zap.Logger, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
