package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/upcheck/internal/hashx"
	"github.com/dmitrijs2005/upcheck/internal/randx"
	"github.com/dmitrijs2005/upcheck/internal/server/models"
	"github.com/dmitrijs2005/upcheck/internal/server/store"
)

const tokenIDLength = 20

// TokenService issues and manages the opaque session tokens clients present
// in the token header. Tokens are server-stored records; expiry is checked
// at use, nothing reaps expired rows.
type TokenService struct {
	store    store.Store
	secret   string
	validity time.Duration
}

func NewTokenService(s store.Store, secret string, validity time.Duration) *TokenService {
	return &TokenService{store: s, secret: secret, validity: validity}
}

// Issue verifies the phone/password pair and creates a fresh token valid for
// the configured duration.
func (s *TokenService) Issue(ctx context.Context, phone, password string) (*models.Token, error) {
	phone = strings.TrimSpace(phone)
	password = strings.TrimSpace(password)
	if len(phone) != 10 || password == "" {
		return nil, fmt.Errorf("%w: missing required fields", ErrValidation)
	}

	var user models.User
	if err := s.store.Read(ctx, store.CollectionUsers, phone, &user); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: user %s", ErrNotFound, phone)
		}
		return nil, fmt.Errorf("reading user: %w", err)
	}

	digest, err := hashx.Digest(password, s.secret)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}
	if !hashx.Equal(digest, user.HashedPassword) {
		return nil, ErrInvalidCredentials
	}

	id, err := randx.String(tokenIDLength)
	if err != nil {
		return nil, fmt.Errorf("generating token id: %w", err)
	}
	token := &models.Token{
		ID:      id,
		Phone:   phone,
		Expires: time.Now().Add(s.validity),
	}
	if err := s.store.Create(ctx, store.CollectionTokens, token.ID, token); err != nil {
		return nil, fmt.Errorf("saving token: %w", err)
	}
	return token, nil
}

// Get returns a token record by id, expired or not.
func (s *TokenService) Get(ctx context.Context, id string) (*models.Token, error) {
	id = strings.TrimSpace(id)
	if len(id) != tokenIDLength {
		return nil, fmt.Errorf("%w: missing required fields", ErrValidation)
	}
	var token models.Token
	if err := s.store.Read(ctx, store.CollectionTokens, id, &token); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: token %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("reading token: %w", err)
	}
	return &token, nil
}

// Extend pushes a live token's expiry out by the configured validity from
// now. Expired tokens cannot be extended.
func (s *TokenService) Extend(ctx context.Context, id string) (*models.Token, error) {
	token, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if token.ExpiredAt(time.Now()) {
		return nil, ErrTokenExpired
	}
	token.Expires = time.Now().Add(s.validity)
	if err := s.store.Update(ctx, store.CollectionTokens, token.ID, token); err != nil {
		return nil, fmt.Errorf("updating token: %w", err)
	}
	return token, nil
}

// Revoke deletes a token record.
func (s *TokenService) Revoke(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if len(id) != tokenIDLength {
		return fmt.Errorf("%w: missing required fields", ErrValidation)
	}
	if err := s.store.Delete(ctx, store.CollectionTokens, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("%w: token %s", ErrNotFound, id)
		}
		return fmt.Errorf("deleting token: %w", err)
	}
	return nil
}

// Verify reports whether id names a live token belonging to phone. It never
// returns an error; any failure to resolve the token counts as invalid.
func (s *TokenService) Verify(ctx context.Context, id, phone string) bool {
	if id == "" {
		return false
	}
	var token models.Token
	if err := s.store.Read(ctx, store.CollectionTokens, id, &token); err != nil {
		return false
	}
	return token.Phone == phone && !token.ExpiredAt(time.Now())
}
