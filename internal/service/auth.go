package service

import (
	"context"
	"errors"

	"github.com/itemvault/backend/internal/db"
	"github.com/itemvault/backend/internal/model"
)

var (
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrUnauthenticated    = errors.New("invalid authentication credentials")
	ErrInactiveAccount    = errors.New("inactive user")
	ErrForbidden          = errors.New("not enough permissions")
	ErrMisconfigured      = errors.New("auth config invalid")
)

// UserRepo is the persistence surface the auth core depends on.
// *db.Postgres satisfies it; tests supply fakes.
type UserRepo interface {
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
}

type AuthService struct {
	repo  UserRepo
	codec *TokenCodec
}

func NewAuthService(repo UserRepo, codec *TokenCodec) *AuthService {
	return &AuthService{repo: repo, codec: codec}
}

// Register creates a new active, non-superuser account. The username
// pre-check gives a clean error in the common case; the unique
// constraint on users.username backstops concurrent registrations, and
// a violation from the insert maps to the same error.
func (s *AuthService) Register(ctx context.Context, req model.UserCreate) (*model.User, error) {
	_, err := s.repo.GetUserByUsername(ctx, req.Username)
	if err == nil {
		return nil, ErrDuplicateUsername
	}
	if !db.IsNoRows(err) {
		return nil, err
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.CreateUser(ctx, &model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		IsActive:     true,
		IsSuperuser:  false,
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, ErrDuplicateUsername
		}
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and issues an access token with the
// default TTL. Unknown usernames and wrong passwords are deliberately
// indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (*model.LoginResponse, error) {
	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !CheckPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.codec.Issue(user.Username, 0)
	if err != nil {
		return nil, err
	}

	return &model.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        user.Summary(),
	}, nil
}

// ResolveIdentity turns a presented bearer token into the active user
// it names. Forged, malformed and expired tokens all fail the same way.
func (s *AuthService) ResolveIdentity(ctx context.Context, tokenStr string) (*model.User, error) {
	claims, ok := s.codec.Verify(tokenStr)
	if !ok {
		return nil, ErrUnauthenticated
	}

	username, _ := claims["sub"].(string)
	if username == "" {
		return nil, ErrUnauthenticated
	}

	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, ErrInactiveAccount
	}

	return user, nil
}

// RequireSuperuser gates an already-resolved identity. No side effects.
func (s *AuthService) RequireSuperuser(user *model.User) error {
	if !user.IsSuperuser {
		return ErrForbidden
	}
	return nil
}
