// Package app wires the configured store and Redis into repositories.
package app

import (
	"context"
	"fmt"
	"time"
	"transparency/internal/config"
	"transparency/internal/logging"
	"transparency/internal/repository"
	"transparency/internal/repository/postgres"
	"transparency/internal/repository/sqlite"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const connectTimeout = 5 * time.Second

// App holds the repositories of the configured store
type App struct {
	Store    string
	Products repository.ProductRepo
	Reports  repository.ReportRepo
	Users    repository.UserRepo

	close func(ctx context.Context) error
}

// Open connects to the store cfg.Driver names and applies its schema
func Open(ctx context.Context, cfg config.StoreConfig) (*App, error) {
	switch cfg.Driver {
	case config.StoreMongo:
		return openMongo(ctx, cfg)
	case config.StorePostgres:
		db, err := postgres.Connect(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
		}
		logging.Log.Info("Connected to Postgres")
		return &App{
			Store:    config.StorePostgres,
			Products: postgres.NewProductRepo(db),
			Reports:  postgres.NewReportRepo(db),
			Users:    postgres.NewUserRepo(db),
			close:    func(context.Context) error { return db.Close() },
		}, nil
	case config.StoreSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite: %w", err)
		}
		logging.Log.WithField("path", cfg.SQLitePath).Info("Opened SQLite store")
		return &App{
			Store:    config.StoreSQLite,
			Products: sqlite.NewProductRepo(db),
			Reports:  sqlite.NewReportRepo(db),
			Users:    sqlite.NewUserRepo(db),
			close:    func(context.Context) error { return db.Close() },
		}, nil
	}
	return nil, fmt.Errorf("%w: %q", config.ErrUnknownStore, cfg.Driver)
}

func openMongo(ctx context.Context, cfg config.StoreConfig) (*App, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	logging.Log.Info("Connected to MongoDB")

	db := client.Database(cfg.MongoDatabase)
	if err := repository.EnsureIndexes(ctx, db); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to create MongoDB indexes: %w", err)
	}

	return &App{
		Store:    config.StoreMongo,
		Products: repository.NewProductRepo(db),
		Reports:  repository.NewReportRepo(db),
		Users:    repository.NewUserRepo(db),
		close:    client.Disconnect,
	}, nil
}

// Close releases the store connection
func (a *App) Close(ctx context.Context) error {
	if a.close == nil {
		return nil
	}
	return a.close(ctx)
}

// ConnectRedis opens and pings the session cache connection
func ConnectRedis(ctx context.Context, addr string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if _, err := rdb.Ping(pingCtx).Result(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}
	logging.Log.Info("Connected to Redis")
	return rdb, nil
}
