package container

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/newsboard/config"
	"github.com/oksasatya/newsboard/internal/application"
	repo "github.com/oksasatya/newsboard/internal/domain/repository"
	"github.com/oksasatya/newsboard/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/newsboard/internal/infrastructure/postgres"
	"github.com/oksasatya/newsboard/internal/infrastructure/redisstore"
	"github.com/oksasatya/newsboard/internal/infrastructure/sqlite"
	"github.com/oksasatya/newsboard/internal/interface/middleware"
	"github.com/oksasatya/newsboard/pkg/helpers"
)

// app-level container to share constructed components across packages
// Router auto-wires modules from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	pgPool      *pgxpool.Pool
	sqliteDB    *sqlite.DB
	redisClient *redis.Client

	userRepo    repo.UserRepository
	articleRepo repo.ArticleRepository
	sessionRepo repo.SessionRepository
	rateCounter middleware.Counter

	signer         *helpers.SessionSigner
	userService    *application.UserService
	articleService *application.ArticleService
	metrics        *middleware.Metrics
)

func SetConfig(c *config.Config) { cfg = c }
func GetConfig() *config.Config  { return cfg }
func SetLogger(l *logrus.Logger) { logger = l }
func GetLogger() *logrus.Logger  { return logger }
func GetPGPool() *pgxpool.Pool   { return pgPool }
func GetSQLite() *sqlite.DB      { return sqliteDB }
func GetRedis() *redis.Client    { return redisClient }

func GetRateCounter() middleware.Counter { return rateCounter }
func GetSigner() *helpers.SessionSigner  { return signer }
func GetMetrics() *middleware.Metrics    { return metrics }

func GetUserService() *application.UserService       { return userService }
func GetArticleService() *application.ArticleService { return articleService }

// UsePostgres selects the pgx repositories.
func UsePostgres(p *pgxpool.Pool) {
	pgPool, sqliteDB = p, nil
	userRepo = pginfra.NewUserRepository(p)
	articleRepo = pginfra.NewArticleRepository(p)
}

// UseSQLite selects the legacy sqlite repositories.
func UseSQLite(db *sqlite.DB) {
	sqliteDB, pgPool = db, nil
	userRepo = sqlite.NewUserRepository(db)
	articleRepo = sqlite.NewArticleRepository(db)
}

// UseRedis keeps sessions and rate-limit counters in Redis.
func UseRedis(rdb *redis.Client) {
	redisClient = rdb
	sessionRepo = redisstore.NewSessionRepository(rdb)
	rateCounter = redisstore.NewRateCounter(rdb)
}

// UseMemory keeps sessions and counters in process. Single instance only.
func UseMemory() {
	redisClient = nil
	sessionRepo = memory.NewSessionRepository()
	rateCounter = memory.NewRateCounter()
}

// Build constructs the services once config, storage and session backends
// have been selected.
func Build() error {
	if cfg == nil {
		return errors.New("container: config not set")
	}
	if userRepo == nil || articleRepo == nil {
		return errors.New("container: database not selected")
	}
	if sessionRepo == nil || rateCounter == nil {
		return errors.New("container: session store not selected")
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	signer = helpers.NewSessionSigner(cfg.SessionSecret, cfg.SessionTTL)
	userService = application.NewUserService(userRepo, sessionRepo, signer, cfg.BcryptCost, logger)
	articleService = application.NewArticleService(articleRepo, logger)
	metrics = middleware.NewMetrics("newsboard")
	return nil
}

// DatabasePing pings whichever database backend is selected.
func DatabasePing() func(ctx context.Context) error {
	return func(ctx context.Context) error {
		switch {
		case pgPool != nil:
			return pgPool.Ping(ctx)
		case sqliteDB != nil:
			return sqliteDB.PingContext(ctx)
		}
		return errors.New("no database configured")
	}
}

// SessionStorePing returns nil when sessions live in process memory.
func SessionStorePing() func(ctx context.Context) error {
	if redisClient == nil {
		return nil
	}
	rdb := redisClient
	return func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) }
}
