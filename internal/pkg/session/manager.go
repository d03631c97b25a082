// internal/pkg/session/manager.go
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	xerrors "crmdash-service/internal/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
)

// Store locates the provider-persisted auth session. The provider writes
// it under a key shaped like "<prefix><project-ref><suffix>" (for example
// "sb-abcdefgh-auth-token"), so lookup is a scan for that pattern rather
// than a fixed key.
type Store struct {
	client *redis.Client
	prefix string
	suffix string
}

func NewStore(client *redis.Client, prefix, suffix string) *Store {
	return &Store{
		client: client,
		prefix: prefix,
		suffix: suffix,
	}
}

// Credential returns the bearer token for the current session. It fails
// with AuthError before any network call is attempted: ErrNoCredential
// when no session key exists, ErrCredentialExpired when the token's exp
// claim is in the past.
func (s *Store) Credential(ctx context.Context) (string, error) {
	sess, err := s.Current(ctx)
	if err != nil {
		return "", err
	}

	if expired(sess) {
		return "", &xerrors.AuthError{Reason: xerrors.ErrCredentialExpired}
	}

	return sess.AccessToken, nil
}

// Current returns the stored session without checking expiry.
func (s *Store) Current(ctx context.Context) (*Session, error) {
	key, err := s.findSessionKey(ctx)
	if err != nil {
		return nil, err
	}
	if key == "" {
		return nil, &xerrors.AuthError{Reason: xerrors.ErrNoCredential}
	}

	data, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, &xerrors.AuthError{Reason: xerrors.ErrNoCredential}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	if sess.AccessToken == "" {
		return nil, &xerrors.AuthError{Reason: xerrors.ErrNoCredential}
	}

	return &sess, nil
}

// Save persists a session under the provider key for projectRef.
func (s *Store) Save(ctx context.Context, projectRef string, sess *Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	key := s.prefix + projectRef + s.suffix
	if err := s.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}

	return nil
}

// Clear removes every stored session key.
func (s *Store) Clear(ctx context.Context) error {
	iter := s.client.Scan(ctx, 0, s.pattern(), 0).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to delete session %s: %w", iter.Val(), err)
		}
	}
	return iter.Err()
}

// Helper functions

func (s *Store) pattern() string {
	return s.prefix + "*" + s.suffix
}

func (s *Store) findSessionKey(ctx context.Context) (string, error) {
	iter := s.client.Scan(ctx, 0, s.pattern(), 0).Iterator()
	if iter.Next(ctx) {
		return iter.Val(), nil
	}
	return "", iter.Err()
}

// expired reports whether the session's token is past its expiry. The
// provider's own ExpiresAt wins when present; otherwise the JWT exp
// claim is read without verifying the signature, which is the hosted
// backend's job.
func expired(sess *Session) bool {
	if sess.ExpiresAt > 0 {
		return time.Now().Unix() >= sess.ExpiresAt
	}
	return TokenExpired(sess.AccessToken, time.Now())
}

// TokenExpired reports whether the bearer token carries an exp claim in
// the past. Malformed tokens are not treated as expired; the backend
// rejects them with its own error.
func TokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return now.After(exp.Time)
}
