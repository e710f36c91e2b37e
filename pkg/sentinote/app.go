package sentinote

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/sentinote/sentinote/pkg/classify"
	"github.com/sentinote/sentinote/pkg/logger"
	"github.com/sentinote/sentinote/pkg/notes"
	"github.com/sentinote/sentinote/pkg/storage"
	"github.com/sentinote/sentinote/pkg/storage/dynamodb"
	"github.com/sentinote/sentinote/pkg/storage/memory"
	"github.com/sentinote/sentinote/pkg/storage/surreal"
)

// Backend names accepted by Config.Backend.
const (
	BackendDynamoDB = "dynamodb"
	BackendSurreal  = "surreal"
	BackendMemory   = "memory"
)

// Classifier names accepted by Config.Classifier.
const (
	ClassifierComprehend = "comprehend"
	ClassifierStatic     = "static"
)

// DefaultPageLimit is applied when a list or search request carries no limit.
const DefaultPageLimit = 25

// Config holds application configuration shared across all commands.
type Config struct {
	// Storage configuration. Backend selects the table implementation;
	// the remaining fields apply to whichever backend is active.
	Backend          string
	TableName        string
	AWSRegion        string
	DynamoDBEndpoint string // non-empty for local stacks

	SurrealURL  string
	SurrealNS   string
	SurrealDB   string
	SurrealUser string
	SurrealPass string

	// Classifier selects the sentiment backend.
	Classifier string

	// Server configuration.
	ServerPort string
	LogLevel   string
	LogConsole bool
}

// App wires the table, store, classifier and workflow behind the HTTP
// surface. Everything is injected through New so tests can assemble an App
// over the in-memory backend without touching AWS or SurrealDB.
type App struct {
	table    storage.Table
	store    *notes.Store
	workflow *notes.Workflow
	config   *Config
	log      zerolog.Logger
}

// New creates an application instance: it connects the configured storage
// backend and classifier and wires the note workflow over them.
func New(ctx context.Context, config *Config) (*App, error) {
	log, err := buildLogger(config)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	table, err := connectTable(ctx, config)
	if err != nil {
		return nil, err
	}
	log.Info().Str("backend", config.Backend).Str("table", config.TableName).
		Msg("storage connected")

	classifier, err := connectClassifier(ctx, config)
	if err != nil {
		table.Close()
		return nil, err
	}
	log.Info().Str("classifier", config.Classifier).Msg("classifier ready")

	store := notes.NewStore(table)
	return &App{
		table:    table,
		store:    store,
		workflow: notes.NewWorkflow(store, classifier),
		config:   config,
		log:      log,
	}, nil
}

// NewWithStore assembles an App over an already-connected table and
// classifier. Used by tests and by embedders that manage connections
// themselves.
func NewWithStore(config *Config, table storage.Table, classifier classify.Classifier, log zerolog.Logger) *App {
	store := notes.NewStore(table)
	return &App{
		table:    table,
		store:    store,
		workflow: notes.NewWorkflow(store, classifier),
		config:   config,
		log:      log,
	}
}

func buildLogger(config *Config) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(config.LogLevel)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("parse log level %q: %w", config.LogLevel, err)
	}
	build := logger.New().Level(level)
	if config.LogConsole {
		build = build.Console()
	}
	log, err := build.Make()
	if err != nil {
		return zerolog.Nop(), err
	}
	return log.Logger, nil
}

func connectTable(ctx context.Context, config *Config) (storage.Table, error) {
	switch config.Backend {
	case BackendDynamoDB:
		table, err := dynamodb.Connect(ctx, config.TableName, config.AWSRegion, config.DynamoDBEndpoint)
		if err != nil {
			return nil, fmt.Errorf("connect to DynamoDB: %w", err)
		}
		return table, nil
	case BackendSurreal:
		table, err := surreal.Connect(ctx,
			config.SurrealURL, config.SurrealNS, config.SurrealDB,
			config.SurrealUser, config.SurrealPass, config.TableName)
		if err != nil {
			return nil, fmt.Errorf("connect to SurrealDB: %w", err)
		}
		return table, nil
	case BackendMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %q", config.Backend)
	}
}

func connectClassifier(ctx context.Context, config *Config) (classify.Classifier, error) {
	switch config.Classifier {
	case ClassifierComprehend:
		classifier, err := classify.ConnectComprehend(ctx, config.AWSRegion)
		if err != nil {
			return nil, fmt.Errorf("connect to Comprehend: %w", err)
		}
		return classifier, nil
	case ClassifierStatic:
		return classify.Static{}, nil
	default:
		return nil, fmt.Errorf("unknown classifier: %q", config.Classifier)
	}
}

// Close closes the application and its storage connection.
func (a *App) Close() error {
	if a.table != nil {
		return a.table.Close()
	}
	return nil
}

// Store returns the underlying note store (useful for testing).
func (a *App) Store() *notes.Store {
	return a.store
}

// getEnv retrieves an environment variable value, falling back to
// defaultValue when the variable is unset or empty.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
