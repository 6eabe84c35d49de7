// Package db selects and opens the durable session backend named in the
// configuration.
package db

import (
	"context"
	"fmt"

	"github.com/shreebalaji/traders-console/internal/core/ports"
	"github.com/shreebalaji/traders-console/internal/infrastructure/db/file"
	"github.com/shreebalaji/traders-console/internal/infrastructure/db/memory"
	"github.com/shreebalaji/traders-console/internal/infrastructure/db/mongo"
	"github.com/shreebalaji/traders-console/internal/infrastructure/db/mysql"
	"github.com/shreebalaji/traders-console/internal/infrastructure/db/redis"
	"github.com/shreebalaji/traders-console/internal/pkg/config"
)

// CloseFunc releases whatever OpenSessions connected to.
type CloseFunc func(ctx context.Context) error

func noClose(context.Context) error { return nil }

// OpenSessions connects to cfg.SessionBackend and returns its repository.
func OpenSessions(ctx context.Context, cfg *config.Config) (ports.SessionRepository, CloseFunc, error) {
	switch cfg.SessionBackend {
	case config.BackendRedis:
		client, err := redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, err
		}
		return redis.NewSessionRepository(client), func(context.Context) error { return client.Close() }, nil

	case config.BackendMongo:
		client, database, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, nil, err
		}
		return mongo.NewSessionRepository(database), client.Disconnect, nil

	case config.BackendMySQL:
		conn, err := mysql.Connect(ctx, mysql.Config{DSN: cfg.MySQL.DSN})
		if err != nil {
			return nil, nil, err
		}
		return mysql.NewSessionRepository(conn), func(context.Context) error { return conn.Close() }, nil

	case config.BackendFile:
		path := cfg.File.Path
		if path == "" {
			path = file.DefaultPath()
		}
		return file.NewSessionRepository(path), noClose, nil

	case config.BackendMemory:
		return memory.NewSessionRepository(), noClose, nil

	default:
		return nil, nil, fmt.Errorf("unknown session backend %q", cfg.SessionBackend)
	}
}
