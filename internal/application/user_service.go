package application

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/newsboard/internal/domain/entity"
	repo "github.com/oksasatya/newsboard/internal/domain/repository"
	"github.com/oksasatya/newsboard/pkg/helpers"
)

// AdminUsername is the account created at bootstrap.
const AdminUsername = "admin"

// UserService owns registration, login and session resolution.
type UserService struct {
	Users      repo.UserRepository
	Sessions   repo.SessionRepository
	Signer     *helpers.SessionSigner
	BcryptCost int
	Logger     *logrus.Logger

	// compared against when the username is unknown so both failures cost one bcrypt run
	dummyHash string
}

// Session is what the HTTP layer stores in the cookie.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

func NewUserService(users repo.UserRepository, sessions repo.SessionRepository, signer *helpers.SessionSigner, bcryptCost int, logger *logrus.Logger) *UserService {
	s := &UserService{
		Users:      users,
		Sessions:   sessions,
		Signer:     signer,
		BcryptCost: bcryptCost,
		Logger:     logger,
	}
	if h, err := helpers.HashPassword("newsboard-timing-guard", bcryptCost); err == nil {
		s.dummyHash = h
	}
	return s
}

func normalizeUsername(raw string) (string, error) {
	name := helpers.StripMarkup(raw)
	if n := utf8.RuneCountInString(name); n < 3 || n > 255 {
		return "", invalid("username must be between 3 and 255 characters long")
	}
	return name, nil
}

// Register creates a regular user and logs them in.
func (s *UserService) Register(ctx context.Context, username, password string) (*entity.User, Session, error) {
	name, err := normalizeUsername(username)
	if err != nil {
		return nil, Session{}, err
	}
	if utf8.RuneCountInString(password) < 8 {
		return nil, Session{}, invalid("password must be at least 8 characters long")
	}
	// bcrypt ignores everything past 72 bytes
	if len(password) > 72 {
		return nil, Session{}, invalid("password must be at most 72 bytes long (bcrypt ignores anything longer)")
	}

	if _, err := s.Users.GetByUsername(ctx, name); err == nil {
		return nil, Session{}, ErrUsernameTaken
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, Session{}, err
	}

	hash, err := helpers.HashPassword(password, s.BcryptCost)
	if err != nil {
		return nil, Session{}, fmt.Errorf("hash password: %w", err)
	}
	u := entity.NewUser(name, hash)
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrUsernameTaken) {
			return nil, Session{}, ErrUsernameTaken
		}
		return nil, Session{}, err
	}

	sess, err := s.startSession(ctx, u)
	if err != nil {
		return nil, Session{}, err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "username": u.Username}).Info("user registered")
	}
	return u, sess, nil
}

// Authenticate checks credentials without creating a session. Unknown
// usernames and wrong passwords produce the same error.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*entity.User, error) {
	u, err := s.Users.GetByUsername(ctx, helpers.StripMarkup(username))
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			return nil, err
		}
		helpers.CompareHashAndPassword(s.dummyHash, password)
		return nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *UserService) Login(ctx context.Context, username, password string) (*entity.User, Session, error) {
	u, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return nil, Session{}, err
	}
	sess, err := s.startSession(ctx, u)
	if err != nil {
		return nil, Session{}, err
	}
	if s.Logger != nil {
		s.Logger.WithField("user_id", u.ID).Info("user logged in")
	}
	return u, sess, nil
}

func (s *UserService) startSession(ctx context.Context, u *entity.User) (Session, error) {
	sid := uuid.NewString()
	if err := s.Sessions.Create(ctx, sid, u.ID, s.Signer.TTL); err != nil {
		return Session{}, err
	}
	token, exp, err := s.Signer.Sign(sid)
	if err != nil {
		_ = s.Sessions.Delete(ctx, sid)
		return Session{}, fmt.Errorf("sign session: %w", err)
	}
	return Session{Token: token, ExpiresAt: exp}, nil
}

// Resolve maps a cookie token to the current user row. The user is
// re-read on every call so role changes apply without a new login.
func (s *UserService) Resolve(ctx context.Context, token string) (*entity.User, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}
	sid, err := s.Signer.Parse(token)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	uid, err := s.Sessions.Get(ctx, sid)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}
	u, err := s.Users.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			_ = s.Sessions.Delete(ctx, sid)
			return nil, ErrUnauthenticated
		}
		return nil, err
	}
	return u, nil
}

// Logout destroys the session behind token. Unparseable tokens are ignored.
func (s *UserService) Logout(ctx context.Context, token string) error {
	sid, err := s.Signer.Parse(token)
	if err != nil {
		return nil
	}
	return s.Sessions.Delete(ctx, sid)
}

// EnsureAdmin creates the bootstrap admin account when it does not exist.
func (s *UserService) EnsureAdmin(ctx context.Context, password string) (bool, error) {
	_, err := s.Users.GetByUsername(ctx, AdminUsername)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return false, err
	}

	hash, err := helpers.HashPassword(password, s.BcryptCost)
	if err != nil {
		return false, fmt.Errorf("hash admin password: %w", err)
	}
	admin := &entity.User{Username: AdminUsername, PasswordHash: hash, Role: entity.RoleAdmin}
	if err := s.Users.Create(ctx, admin); err != nil {
		if errors.Is(err, repo.ErrUsernameTaken) {
			return false, nil
		}
		return false, err
	}
	if s.Logger != nil {
		s.Logger.WithField("user_id", admin.ID).Info("admin account created")
	}
	return true, nil
}

// DeleteUser removes a user and their articles. Not exposed over HTTP.
func (s *UserService) DeleteUser(ctx context.Context, username string) error {
	u, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	return s.Users.Delete(ctx, u.ID)
}
