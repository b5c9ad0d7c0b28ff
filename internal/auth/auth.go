package auth

import (
	"errors"
	"time"

	"github.com/dukani/credit-ledger/pkg/redis"
	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired session token")
)

// SessionStore is the slice of the redis adapter the auth gate needs.
type SessionStore interface {
	Set(key string, value []byte, ttl time.Duration) error
	Get(key string) ([]byte, error)
	Del(key string) error
	Expire(key string, ttl time.Duration) error
}

// Service is a static-credential login gate. One operator account from
// config, sessions as uuid tokens in redis. Not a security boundary.
type Service struct {
	username string
	password string
	ttl      time.Duration
	store    SessionStore
}

func NewService(username, password string, ttl time.Duration, store SessionStore) *Service {
	return &Service{
		username: username,
		password: password,
		ttl:      ttl,
		store:    store,
	}
}

func sessionKey(token string) string {
	return "session:" + token
}

// Login verifies the static credentials and issues a session token.
func (s *Service) Login(username, password string) (string, error) {
	if username != s.username || password != s.password {
		return "", ErrInvalidCredentials
	}

	token := uuid.NewString()
	if err := s.store.Set(sessionKey(token), []byte(username), s.ttl); err != nil {
		return "", err
	}
	return token, nil
}

// Validate checks a token and slides its expiry window.
func (s *Service) Validate(token string) error {
	if token == "" {
		return ErrInvalidToken
	}

	_, err := s.store.Get(sessionKey(token))
	if err != nil {
		if errors.Is(err, redis.NilError) {
			return ErrInvalidToken
		}
		return err
	}

	return s.store.Expire(sessionKey(token), s.ttl)
}

// Logout drops the session. Unknown tokens are not an error.
func (s *Service) Logout(token string) error {
	if token == "" {
		return nil
	}
	return s.store.Del(sessionKey(token))
}
