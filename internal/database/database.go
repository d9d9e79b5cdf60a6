// Package database contains the logic for establishing
// the connection to MongoDB.
//
// It handles:
//   - building client options from config (URI, pool size, timeouts)
//   - creating the shared *mongo.Client
//   - optional New Relic instrumentation (nrmongo command monitor)
//   - ensuring the collections and indexes the API relies on
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/newrelic/go-agent/v3/integrations/nrmongo"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/arthurazevedods/maker-challenge-server/internal/config"
	loggerConfig "github.com/arthurazevedods/maker-challenge-server/internal/logger"
)

// Database wraps the Mongo client, the selected database and a logger.
// It is created once at startup and passed around the app.
type Database struct {
	Client *mongo.Client
	DB     *mongo.Database
	log    *zerolog.Logger
}

// DatabasePingTimeout defines the number of seconds to wait for a ping
// before considering the database "unreachable".
const DatabasePingTimeout = 10

// New connects to MongoDB with instrumentation.
//
// Behavior:
//   - Apply the connection string, pool size and connect timeout
//   - Attach the New Relic command monitor if available
//   - Connect, ping the primary, and return Database
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (*Database, error) {
	clientOptions := options.Client().
		ApplyURI(cfg.Database.URI).
		SetMaxPoolSize(cfg.Database.MaxPoolSize).
		SetConnectTimeout(time.Duration(cfg.Database.ConnectTimeout) * time.Second).
		SetAppName(config.ServiceName)

	// Every command becomes a datastore segment on the active transaction.
	if loggerService.GetApplication() != nil {
		clientOptions.SetMonitor(nrmongo.NewCommandMonitor(nil))
	}

	client, err := mongo.Connect(context.Background(), clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}

	database := &Database{
		Client: client,
		DB:     client.Database(cfg.Database.Name),
		log:    logger,
	}

	// Ping with a timeout, so startup fails fast if the server is down.
	ctx, cancel := context.WithTimeout(context.Background(), DatabasePingTimeout*time.Second)
	defer cancel()
	if err = database.Ping(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info().Str("database", cfg.Database.Name).Msg("connected to the database")

	return database, nil
}

// Collection returns a handle to the named collection.
func (db *Database) Collection(name string) *mongo.Collection {
	return db.DB.Collection(name)
}

// Ping checks that the primary is reachable.
func (db *Database) Ping(ctx context.Context) error {
	return db.Client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client, waiting for in-use connections until ctx ends.
func (db *Database) Close(ctx context.Context) error {
	db.log.Info().Msg("closing database connection")
	return db.Client.Disconnect(ctx)
}
