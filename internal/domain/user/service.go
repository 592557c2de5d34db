package user

import (
	"context"
	"errors"

	"github.com/clinicdesk/clinicdesk/internal/platform/apperr"
	"github.com/clinicdesk/clinicdesk/internal/platform/auth"
	"github.com/clinicdesk/clinicdesk/internal/platform/validate"
)

var loginRules = validate.Rules{
	{Name: "username", Required: true},
	{Name: "password", Required: true},
}

var createRules = validate.Rules{
	{Name: "firstName", Required: true},
	{Name: "username", Required: true, MinLen: 3, MaxLen: 255},
	{Name: "password", Required: true, MinLen: 8},
}

type Service struct {
	repo   Repository
	tokens *auth.TokenManager
}

func NewService(repo Repository, tokens *auth.TokenManager) *Service {
	return &Service{repo: repo, tokens: tokens}
}

// Login checks the credentials against the stored hash and, on success,
// issues a signed token embedding the user's id. A missing user is a
// not-found outcome; a live user with the wrong password is unauthorized.
func (s *Service) Login(ctx context.Context, p LoginPayload) (*LoginResult, error) {
	err := loginRules.Apply(map[string]interface{}{
		"username": p.Username,
		"password": p.Password,
	})
	if err != nil {
		return nil, err
	}

	u, err := s.repo.GetByUsername(ctx, p.Username)
	if errors.Is(err, ErrNotFound) {
		return nil, apperr.NotFoundf("User with username: %s not found", p.Username)
	}
	if err != nil {
		return nil, err
	}

	if !auth.CheckPassword(p.Password, u.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid password")
	}

	token, err := s.tokens.Issue(u.ID)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, User: u}, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, apperr.NotFoundf("User with id: %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Create hashes the password and inserts a new user. Used by the user
// provisioning CLI; there is no HTTP signup endpoint.
func (s *Service) Create(ctx context.Context, firstName string, lastName *string, username, password string) (*User, error) {
	err := createRules.Apply(map[string]interface{}{
		"firstName": firstName,
		"username":  username,
		"password":  password,
	})
	if err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &User{FirstName: firstName, LastName: lastName, Username: username, PasswordHash: hash}
	err = s.repo.Create(ctx, u)
	if errors.Is(err, ErrUsernameTaken) {
		return nil, apperr.Conflictf(err, "Username %s is already taken", username)
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}
