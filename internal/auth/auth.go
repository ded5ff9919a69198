package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/StaffDesk-io/staffdesk/internal/models"
	"github.com/StaffDesk-io/staffdesk/internal/store"
	"golang.org/x/crypto/bcrypt"
)

// tokenNameSuffix is appended to the owner's email to label issued tokens.
const tokenNameSuffix = "auth_token"

// ErrInvalidCredentials is returned for any failed login, whether the email
// is unknown or the password is wrong. The two cases are deliberately
// indistinguishable.
var ErrInvalidCredentials = errors.New("the provided credentials are incorrect")

// ErrInvalidToken is returned when a bearer token cannot be resolved to an
// active token record.
var ErrInvalidToken = errors.New("invalid token")

// Service validates credentials and issues and revokes API tokens.
type Service struct {
	store *store.Store
}

// NewService creates an auth service backed by the given store.
func NewService(s *store.Store) *Service {
	return &Service{store: s}
}

// Register creates a new user with a hashed password and issues their first
// token. The plaintext token is returned exactly once.
func (s *Service) Register(name, email, password string) (*models.User, string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user, err := s.store.CreateUser(name, email, string(hashed))
	if err != nil {
		return nil, "", err
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// Authenticate validates user credentials
func (s *Service) Authenticate(email, password string) (*models.User, error) {
	user, err := s.store.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.ValidatePassword(password) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// IssueToken creates a new API token for a user and returns its plaintext value
func (s *Service) IssueToken(user *models.User) (string, error) {
	secret, err := generateToken()
	if err != nil {
		return "", err
	}

	_, err = s.store.CreateToken(user.ID, user.Email+tokenNameSuffix, secret)
	if err != nil {
		return "", err
	}

	return secret, nil
}

// ValidateToken resolves a bearer token to its active token record
func (s *Service) ValidateToken(token string) (*models.Token, error) {
	t, err := s.store.GetTokenByValue(token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return t, nil
}

// RevokeToken revokes the token record so it no longer authenticates
func (s *Service) RevokeToken(t *models.Token) error {
	return s.store.RevokeToken(t.ID)
}

// GetUser retrieves a user by ID
func (s *Service) GetUser(id int64) (*models.User, error) {
	return s.store.GetUserByID(id)
}

// generateToken generates a secure random token string
func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
