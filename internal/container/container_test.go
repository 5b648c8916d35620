package container

import (
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/newsboard/config"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestBuildRequiresConfig(t *testing.T) {
	SetConfig(nil)
	assert.Error(t, Build())
}

func TestOpenDatabaseRejectsUnknownDriver(t *testing.T) {
	_, err := OpenDatabase(context.Background(), &config.Config{DBDriver: "mysql"}, quietLogger())
	assert.Error(t, err)
}

func TestBootstrapSQLiteWithRedis(t *testing.T) {
	ctx := context.Background()
	logger := quietLogger()
	mr := miniredis.RunT(t)

	cfg := &config.Config{
		DBDriver:      config.DriverSQLite,
		DBPath:        filepath.Join(t.TempDir(), "data", "newsboard.db"),
		RedisAddr:     mr.Addr(),
		SessionSecret: "secret",
		SessionTTL:    time.Hour,
		BcryptCost:    bcrypt.MinCost,
	}

	closeDB, err := OpenDatabase(ctx, cfg, logger)
	require.NoError(t, err)
	t.Cleanup(closeDB)
	closeSessions, err := OpenSessions(ctx, cfg, logger)
	require.NoError(t, err)
	t.Cleanup(closeSessions)

	SetConfig(cfg)
	SetLogger(logger)
	require.NoError(t, Build())

	assert.NotNil(t, GetSQLite())
	assert.Nil(t, GetPGPool())
	assert.NotNil(t, GetRedis())
	assert.NoError(t, DatabasePing()(ctx))
	require.NotNil(t, SessionStorePing())
	assert.NoError(t, SessionStorePing()(ctx))

	created, err := GetUserService().EnsureAdmin(ctx, "adminpassword")
	require.NoError(t, err)
	assert.True(t, created)

	_, sess, err := GetUserService().Login(ctx, "admin", "adminpassword")
	require.NoError(t, err)
	assert.Len(t, mr.Keys(), 1)

	u, err := GetUserService().Resolve(ctx, sess.Token)
	require.NoError(t, err)
	assert.True(t, u.IsAdmin())
}

func TestOpenSessionsWithoutRedis(t *testing.T) {
	closeSessions, err := OpenSessions(context.Background(), &config.Config{}, quietLogger())
	require.NoError(t, err)
	closeSessions()

	assert.Nil(t, GetRedis())
	assert.NotNil(t, GetRateCounter())
	assert.Nil(t, SessionStorePing())
}

func TestOpenSessionsUnreachableRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := OpenSessions(context.Background(), &config.Config{RedisAddr: addr}, quietLogger())
	assert.Error(t, err)
}
