package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/chin-tech/furangel-invoices/internal/config"
	"github.com/chin-tech/furangel-invoices/internal/invoice"
	"github.com/chin-tech/furangel-invoices/internal/llm"
	"github.com/chin-tech/furangel-invoices/internal/model"
	"github.com/chin-tech/furangel-invoices/internal/shelter"
	"github.com/chin-tech/furangel-invoices/internal/storage"
	"github.com/chin-tech/furangel-invoices/internal/taxonomy"
)

// initStorage opens the database and brings its schema up to date.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath, err := databasePath()
	if err != nil {
		return nil, err
	}

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return store, nil
}

func databasePath() (string, error) {
	if dbPath := viper.GetString("database.path"); dbPath != "" {
		return config.ExpandPath(dbPath), nil
	}
	dbPath, err := config.DefaultDatabasePath()
	if err != nil {
		return "", fmt.Errorf("failed to resolve database path: %w", err)
	}
	return dbPath, nil
}

// initDispatcher wires the charge classifier and the extraction fallback.
// Without an API key, known clinics still parse; unknown layouts fail.
func initDispatcher() (*invoice.Dispatcher, error) {
	classifier, err := taxonomy.NewClassifier(taxonomy.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to build classifier: %w", err)
	}

	ai := llm.Disabled()
	if apiKey := viper.GetString("llm.api_key"); apiKey != "" {
		ai, err = llm.NewClient(llm.Config{
			Provider: viper.GetString("llm.provider"),
			APIKey:   apiKey,
			Model:    viper.GetString("llm.model"),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to build llm client: %w", err)
		}
	}

	return invoice.NewDispatcher(classifier, ai)
}

// loadShelterRecords reads the shelter management export snapshot.
func loadShelterRecords(path string) ([]model.ShelterAnimalRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open shelter export: %w", err)
	}
	defer func() { _ = f.Close() }()

	records, err := shelter.LoadRecords(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load shelter export %s: %w", path, err)
	}
	return records, nil
}
