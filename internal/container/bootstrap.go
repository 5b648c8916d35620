package container

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/newsboard/config"
	pginfra "github.com/oksasatya/newsboard/internal/infrastructure/postgres"
	"github.com/oksasatya/newsboard/internal/infrastructure/redisstore"
	"github.com/oksasatya/newsboard/internal/infrastructure/sqlite"
	"github.com/oksasatya/newsboard/pkg/helpers"
)

// OpenDatabase connects the configured backend, applies migrations and
// selects its repositories. The returned func releases the connection.
func OpenDatabase(ctx context.Context, c *config.Config, logger *logrus.Logger) (func(), error) {
	switch c.DBDriver {
	case config.DriverPostgres:
		dsn := c.PostgresDSN()
		pool, err := pginfra.NewPool(ctx, dsn, c.DBMaxConns, c.DBMinConns, c.DBMaxConnLife)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := pginfra.RunMigrations(dsn, logger); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrate postgres: %w", err)
		}
		UsePostgres(pool)
		return pool.Close, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, c.DBPath, logger)
		if err != nil {
			return nil, err
		}
		if err := sqlite.RunMigrations(c.DBPath, logger); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrate sqlite: %w", err)
		}
		UseSQLite(db)
		return func() { _ = db.Close() }, nil
	}
	return nil, fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
}

// OpenSessions selects Redis when REDIS_ADDR is set, in-process stores otherwise.
func OpenSessions(ctx context.Context, c *config.Config, logger *logrus.Logger) (func(), error) {
	if c.RedisAddr == "" {
		UseMemory()
		return func() {}, nil
	}
	rdb := helpers.NewRedisClient(c.RedisAddr, c.RedisPassword, c.RedisDB)
	if err := redisstore.Ping(ctx, rdb); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	logger.WithField("addr", c.RedisAddr).Info("connected to redis")
	UseRedis(rdb)
	return func() { _ = rdb.Close() }, nil
}
