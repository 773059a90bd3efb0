package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/upcheck/internal/hashx"
	"github.com/dmitrijs2005/upcheck/internal/keylock"
	"github.com/dmitrijs2005/upcheck/internal/server/models"
	"github.com/dmitrijs2005/upcheck/internal/server/store"
)

// UserService manages user accounts keyed by phone number. All operations
// except Create require a token belonging to the addressed user.
type UserService struct {
	store  store.Store
	tokens *TokenService
	locks  *keylock.KeyLock
	secret string
}

func NewUserService(s store.Store, tokens *TokenService, locks *keylock.KeyLock, secret string) *UserService {
	return &UserService{store: s, tokens: tokens, locks: locks, secret: secret}
}

// Create registers a new user. The phone number is the identity; a second
// registration under the same phone fails.
func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*models.UserView, error) {
	in.normalize()
	if err := validate.Struct(in); err != nil {
		return nil, validationError(err)
	}

	digest, err := hashx.Digest(in.Password, s.secret)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}
	user := &models.User{
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Phone:          in.Phone,
		HashedPassword: digest,
		TOSAgreement:   true,
		Checks:         []string{},
	}
	if err := s.store.Create(ctx, store.CollectionUsers, user.Phone, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, fmt.Errorf("%w: user %s", ErrAlreadyExists, user.Phone)
		}
		return nil, fmt.Errorf("saving user: %w", err)
	}
	return user.View(), nil
}

// Get returns the user record without the password digest.
func (s *UserService) Get(ctx context.Context, phone, tokenID string) (*models.UserView, error) {
	phone = strings.TrimSpace(phone)
	if len(phone) != 10 {
		return nil, fmt.Errorf("%w: missing required fields", ErrValidation)
	}
	if !s.tokens.Verify(ctx, tokenID, phone) {
		return nil, ErrForbidden
	}
	var user models.User
	if err := s.store.Read(ctx, store.CollectionUsers, phone, &user); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: user %s", ErrNotFound, phone)
		}
		return nil, fmt.Errorf("reading user: %w", err)
	}
	return user.View(), nil
}

// Update applies the non-empty fields of in to the user record.
func (s *UserService) Update(ctx context.Context, in UpdateUserInput, tokenID string) (*models.UserView, error) {
	in.normalize()
	if err := validate.Struct(in); err != nil {
		return nil, validationError(err)
	}
	if !in.hasUpdates() {
		return nil, fmt.Errorf("%w: at least one field to update is required", ErrValidation)
	}
	if !s.tokens.Verify(ctx, tokenID, in.Phone) {
		return nil, ErrForbidden
	}

	var user models.User
	if err := s.store.Read(ctx, store.CollectionUsers, in.Phone, &user); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: user %s", ErrNotFound, in.Phone)
		}
		return nil, fmt.Errorf("reading user: %w", err)
	}

	if in.FirstName != "" {
		user.FirstName = in.FirstName
	}
	if in.LastName != "" {
		user.LastName = in.LastName
	}
	if in.Password != "" {
		digest, err := hashx.Digest(in.Password, s.secret)
		if err != nil {
			return nil, fmt.Errorf("hashing password: %w", err)
		}
		user.HashedPassword = digest
	}
	if err := s.store.Update(ctx, store.CollectionUsers, user.Phone, &user); err != nil {
		return nil, fmt.Errorf("updating user: %w", err)
	}
	return user.View(), nil
}

// Delete removes the user and best-effort deletes the checks it owns. The
// user record is removed first and is not restored if a check deletion
// fails; a partial cascade is reported via ErrPartialCascade.
func (s *UserService) Delete(ctx context.Context, phone, tokenID string) error {
	phone = strings.TrimSpace(phone)
	if len(phone) != 10 {
		return fmt.Errorf("%w: missing required fields", ErrValidation)
	}
	if !s.tokens.Verify(ctx, tokenID, phone) {
		return ErrForbidden
	}

	unlock := s.locks.Lock(phone)
	defer unlock()

	var user models.User
	if err := s.store.Read(ctx, store.CollectionUsers, phone, &user); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("%w: user %s", ErrNotFound, phone)
		}
		return fmt.Errorf("reading user: %w", err)
	}
	if err := s.store.Delete(ctx, store.CollectionUsers, phone); err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}

	failed := 0
	for _, checkID := range user.Checks {
		if err := s.store.Delete(ctx, store.CollectionChecks, checkID); err != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d checks could not be deleted", ErrPartialCascade, failed, len(user.Checks))
	}
	return nil
}
