package application

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/newsboard/internal/domain/entity"
	"github.com/oksasatya/newsboard/internal/infrastructure/memory"
	"github.com/oksasatya/newsboard/internal/infrastructure/sqlite"
	"github.com/oksasatya/newsboard/pkg/helpers"
)

type fixture struct {
	users    *UserService
	articles *ArticleService
	sessions *memory.SessionRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	path := filepath.Join(t.TempDir(), "app.db")
	require.NoError(t, sqlite.RunMigrations(path, logger))
	db, err := sqlite.Open(context.Background(), path, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	sessions := memory.NewSessionRepository()
	signer := helpers.NewSessionSigner("test-secret", time.Hour)
	return &fixture{
		users:    NewUserService(sqlite.NewUserRepository(db), sessions, signer, bcrypt.MinCost, logger),
		articles: NewArticleService(sqlite.NewArticleRepository(db), logger),
		sessions: sessions,
	}
}

func TestRegisterCreatesRegularUserWithSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u, sess, err := f.users.Register(ctx, "alice", "password1")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, u.Role)
	assert.NotZero(t, u.ID)
	assert.NotEqual(t, "password1", u.PasswordHash)
	assert.NotEmpty(t, sess.Token)

	got, err := f.users.Resolve(ctx, sess.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, _, err := f.users.Register(ctx, "alice", "password1")
	require.NoError(t, err)
	_, _, err = f.users.Register(ctx, "alice", "password2")
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestRegisterStripsMarkupAndRechecksLength(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u, _, err := f.users.Register(ctx, "<b>carol</b>", "password1")
	require.NoError(t, err)
	assert.Equal(t, "carol", u.Username)

	_, _, err = f.users.Register(ctx, "<i>ab</i>", "password1")
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Message, "username")
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, _, err := f.users.Register(ctx, "alice", "password1")
	require.NoError(t, err)

	_, _, err = f.users.Login(ctx, "alice", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = f.users.Login(ctx, "nobody", "password1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	u, sess, err := f.users.Login(ctx, "alice", "password1")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	assert.NotEmpty(t, sess.Token)
}

func TestLogoutDestroysSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, sess, err := f.users.Register(ctx, "alice", "password1")
	require.NoError(t, err)
	require.NoError(t, f.users.Logout(ctx, sess.Token))

	_, err = f.users.Resolve(ctx, sess.Token)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	assert.NoError(t, f.users.Logout(ctx, "garbage"))
}

func TestResolveRejectsBadTokens(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.users.Resolve(ctx, "")
	assert.ErrorIs(t, err, ErrUnauthenticated)
	_, err = f.users.Resolve(ctx, "not-a-token")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	other := helpers.NewSessionSigner("other-secret", time.Hour)
	forged, _, err := other.Sign("some-sid")
	require.NoError(t, err)
	_, err = f.users.Resolve(ctx, forged)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestResolveAfterUserDeleted(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, sess, err := f.users.Register(ctx, "alice", "password1")
	require.NoError(t, err)
	require.NoError(t, f.users.DeleteUser(ctx, "alice"))

	_, err = f.users.Resolve(ctx, sess.Token)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestEnsureAdminIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.users.EnsureAdmin(ctx, "adminpassword")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = f.users.EnsureAdmin(ctx, "another")
	require.NoError(t, err)
	assert.False(t, created)

	admin, _, err := f.users.Login(ctx, AdminUsername, "adminpassword")
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin())
}

func TestCreateArticleValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u, _, err := f.users.Register(ctx, "alice", "password1")
	require.NoError(t, err)

	a, err := f.articles.Create(ctx, u, "  <b>Hello</b> world ", " https://example.com/x ")
	require.NoError(t, err)
	assert.Equal(t, "Hello world", a.Title)
	assert.Equal(t, "https://example.com/x", a.URL)
	assert.Equal(t, u.ID, a.UserID)

	_, err = f.articles.Create(ctx, u, "<script>x</script>abc", "https://example.com")
	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))

	_, err = f.articles.Create(ctx, u, "Valid title", "javascript:alert(1)")
	assert.True(t, errors.As(err, &verr))

	_, err = f.articles.Create(ctx, nil, "Valid title", "https://example.com")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestListNewestFirstWithAuthor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u, _, err := f.users.Register(ctx, "alice", "password1")
	require.NoError(t, err)

	_, err = f.articles.Create(ctx, u, "First article", "https://example.com/1")
	require.NoError(t, err)
	_, err = f.articles.Create(ctx, u, "Second article", "https://example.com/2")
	require.NoError(t, err)

	list, err := f.articles.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Second article", list[0].Title)
	assert.Equal(t, "alice", list[0].Username)
}

func TestDeleteAuthorization(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	alice, _, err := f.users.Register(ctx, "alice", "password1")
	require.NoError(t, err)
	bob, _, err := f.users.Register(ctx, "bob", "password1")
	require.NoError(t, err)
	_, err = f.users.EnsureAdmin(ctx, "adminpassword")
	require.NoError(t, err)
	admin, _, err := f.users.Login(ctx, AdminUsername, "adminpassword")
	require.NoError(t, err)

	a, err := f.articles.Create(ctx, alice, "Alice article", "https://example.com/a")
	require.NoError(t, err)
	b, err := f.articles.Create(ctx, alice, "Another article", "https://example.com/b")
	require.NoError(t, err)

	assert.ErrorIs(t, f.articles.Delete(ctx, bob, a.ID), ErrForbidden)
	assert.NoError(t, f.articles.Delete(ctx, alice, a.ID))
	assert.ErrorIs(t, f.articles.Delete(ctx, alice, a.ID), ErrArticleNotFound)
	assert.NoError(t, f.articles.Delete(ctx, admin, b.ID))
	assert.ErrorIs(t, f.articles.Delete(ctx, admin, 9999), ErrArticleNotFound)

	list, err := f.articles.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestRegisterPasswordBounds(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var verr *ValidationError
	_, _, err := f.users.Register(ctx, "alice", "short")
	require.True(t, errors.As(err, &verr))
	_, _, err = f.users.Register(ctx, "alice", strings.Repeat("x", 73))
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Message, "72")
	assert.Contains(t, verr.Message, "bcrypt")
}
