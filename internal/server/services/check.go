package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/upcheck/internal/keylock"
	"github.com/dmitrijs2005/upcheck/internal/randx"
	"github.com/dmitrijs2005/upcheck/internal/server/models"
	"github.com/dmitrijs2005/upcheck/internal/server/store"
)

const checkIDLength = 20

// CheckService manages uptime check definitions. Every check belongs to one
// user; the owning user record carries the list of its check ids, and that
// list is maintained best-effort alongside the check records themselves.
type CheckService struct {
	store     store.Store
	tokens    *TokenService
	locks     *keylock.KeyLock
	maxChecks int
}

func NewCheckService(s store.Store, tokens *TokenService, locks *keylock.KeyLock, maxChecks int) *CheckService {
	return &CheckService{store: s, tokens: tokens, locks: locks, maxChecks: maxChecks}
}

// Create registers a new check for the user the token resolves to. The
// check record is written first; if appending its id to the owner's list
// fails afterwards, the check is kept and the failure is reported via
// ErrOwnerUpdateFailed.
func (s *CheckService) Create(ctx context.Context, in CreateCheckInput, tokenID string) (*models.Check, error) {
	in.normalize()
	if err := validate.Struct(in); err != nil {
		return nil, validationError(err)
	}

	tokenID = strings.TrimSpace(tokenID)
	var token models.Token
	if err := s.store.Read(ctx, store.CollectionTokens, tokenID, &token); err != nil {
		return nil, ErrForbidden
	}

	unlock := s.locks.Lock(token.Phone)
	defer unlock()

	var user models.User
	if err := s.store.Read(ctx, store.CollectionUsers, token.Phone, &user); err != nil {
		return nil, ErrForbidden
	}
	if len(user.Checks) >= s.maxChecks {
		return nil, fmt.Errorf("%w: the user already has the maximum number of checks (%d)", ErrQuotaExceeded, s.maxChecks)
	}

	id, err := randx.String(checkIDLength)
	if err != nil {
		return nil, fmt.Errorf("generating check id: %w", err)
	}
	check := &models.Check{
		ID:             id,
		UserPhone:      user.Phone,
		Protocol:       in.Protocol,
		URL:            in.URL,
		Method:         in.Method,
		SuccessCodes:   in.SuccessCodes,
		TimeoutSeconds: in.TimeoutSeconds,
	}
	if err := s.store.Create(ctx, store.CollectionChecks, check.ID, check); err != nil {
		return nil, fmt.Errorf("saving check: %w", err)
	}

	user.Checks = append(user.Checks, check.ID)
	if err := s.store.Update(ctx, store.CollectionUsers, user.Phone, &user); err != nil {
		return check, fmt.Errorf("%w: %v", ErrOwnerUpdateFailed, err)
	}
	return check, nil
}

// Get returns a check record. The token must belong to the check's owner.
func (s *CheckService) Get(ctx context.Context, id, tokenID string) (*models.Check, error) {
	id = strings.TrimSpace(id)
	if len(id) != checkIDLength {
		return nil, fmt.Errorf("%w: missing required fields", ErrValidation)
	}
	var check models.Check
	if err := s.store.Read(ctx, store.CollectionChecks, id, &check); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: check %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("reading check: %w", err)
	}
	if !s.tokens.Verify(ctx, tokenID, check.UserPhone) {
		return nil, ErrForbidden
	}
	return &check, nil
}

// Update applies the set fields of in to the check record.
func (s *CheckService) Update(ctx context.Context, in UpdateCheckInput, tokenID string) (*models.Check, error) {
	in.normalize()
	if err := validate.Struct(in); err != nil {
		return nil, validationError(err)
	}
	if !in.hasUpdates() {
		return nil, fmt.Errorf("%w: at least one field to update is required", ErrValidation)
	}

	var check models.Check
	if err := s.store.Read(ctx, store.CollectionChecks, in.ID, &check); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: check %s", ErrNotFound, in.ID)
		}
		return nil, fmt.Errorf("reading check: %w", err)
	}
	if !s.tokens.Verify(ctx, tokenID, check.UserPhone) {
		return nil, ErrForbidden
	}

	if in.Protocol != "" {
		check.Protocol = in.Protocol
	}
	if in.URL != "" {
		check.URL = in.URL
	}
	if in.Method != "" {
		check.Method = in.Method
	}
	if len(in.SuccessCodes) > 0 {
		check.SuccessCodes = in.SuccessCodes
	}
	if in.TimeoutSeconds != 0 {
		check.TimeoutSeconds = in.TimeoutSeconds
	}
	if err := s.store.Update(ctx, store.CollectionChecks, check.ID, &check); err != nil {
		return nil, fmt.Errorf("updating check: %w", err)
	}
	return &check, nil
}

// Delete removes a check and de-links its id from the owner's check list.
// The check record is removed first; if the owner record or the
// back-reference is already gone, ErrInconsistentState is reported.
func (s *CheckService) Delete(ctx context.Context, id, tokenID string) error {
	id = strings.TrimSpace(id)
	if len(id) != checkIDLength {
		return fmt.Errorf("%w: missing required fields", ErrValidation)
	}
	var check models.Check
	if err := s.store.Read(ctx, store.CollectionChecks, id, &check); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("%w: check %s", ErrNotFound, id)
		}
		return fmt.Errorf("reading check: %w", err)
	}
	if !s.tokens.Verify(ctx, tokenID, check.UserPhone) {
		return ErrForbidden
	}

	unlock := s.locks.Lock(check.UserPhone)
	defer unlock()

	if err := s.store.Delete(ctx, store.CollectionChecks, id); err != nil {
		return fmt.Errorf("deleting check: %w", err)
	}

	var user models.User
	if err := s.store.Read(ctx, store.CollectionUsers, check.UserPhone, &user); err != nil {
		return fmt.Errorf("%w: owner %s could not be read", ErrInconsistentState, check.UserPhone)
	}
	idx := -1
	for i, checkID := range user.Checks {
		if checkID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: check %s is not on the owner's list", ErrInconsistentState, id)
	}
	user.Checks = append(user.Checks[:idx], user.Checks[idx+1:]...)
	if err := s.store.Update(ctx, store.CollectionUsers, user.Phone, &user); err != nil {
		return fmt.Errorf("updating user: %w", err)
	}
	return nil
}
