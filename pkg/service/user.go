// Package service implements the domain operations behind the HTTP
// handlers: registration, credential authentication, and per-user task
// CRUD. All failures cross the boundary as kind-tagged errors.
package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/taskvault/taskvault/pkg/auth"
	"github.com/taskvault/taskvault/pkg/errkind"
	"github.com/taskvault/taskvault/pkg/model"
	"github.com/taskvault/taskvault/pkg/store"
)

// LoginResult is the outcome of a successful authentication.
type LoginResult struct {
	AccessToken string `json:"access_token"`
	Name        string `json:"name"`
	Email       string `json:"email"`
}

// UserService registers principals, authenticates credentials, and manages
// profile data.
type UserService struct {
	users  store.UserStore
	hasher auth.PasswordHasher
	tokens *auth.TokenService
	log    *logrus.Logger
}

// NewUserService creates a user service. A nil logger falls back to the
// logrus default.
func NewUserService(users store.UserStore, hasher auth.PasswordHasher, tokens *auth.TokenService, log *logrus.Logger) *UserService {
	if log == nil {
		log = logrus.New()
	}
	return &UserService{users: users, hasher: hasher, tokens: tokens, log: log}
}

// Register hashes the password and persists a new user. Fails with a
// Conflict error if the email is already registered. The plaintext and the
// hash never appear in the return value or the logs.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*model.UserPublic, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	u := &model.User{Name: name, Email: email, PasswordHash: hash}
	if err := s.users.CreateUser(ctx, u); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"operation": "register", "user_id": u.ID}).Info("user registered")
	return u.Public(), nil
}

// Login authenticates credentials and issues a token whose subject is the
// stored user's id. Fails with NotFound for an unknown email and
// Unauthorized for a wrong password.
func (s *UserService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	u, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return nil, errkind.New(errkind.Unauthorized, "Invalid credentials")
	}

	token, err := s.tokens.Issue(auth.Principal{SubjectID: u.ID, Name: u.Name, Email: u.Email})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"operation": "login", "user_id": u.ID}).Info("user authenticated")
	return &LoginResult{AccessToken: token, Name: u.Name, Email: u.Email}, nil
}

// GetProfile returns a user's public profile.
func (s *UserService) GetProfile(ctx context.Context, id int64) (*model.UserPublic, error) {
	u, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return u.Public(), nil
}

// UpdateProfile renames a user and returns the updated public profile.
func (s *UserService) UpdateProfile(ctx context.Context, id int64, name string) (*model.UserPublic, error) {
	u, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	u.Name = name
	if err := s.users.UpdateUser(ctx, u); err != nil {
		return nil, err
	}
	return u.Public(), nil
}
