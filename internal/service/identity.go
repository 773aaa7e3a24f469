package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/packhouse/backend/internal/logger"
	"github.com/packhouse/backend/internal/model"
)

// AuthStateListener receives the current session on every auth-state change.
// A nil session means signed out.
type AuthStateListener func(session *model.Session)

// Identity wraps sign-in, registration, sign-out, account deletion, and
// profile-field updates. Auth-state changes are pushed to subscribers.
type Identity struct {
	accounts          model.AccountStore
	profiles          model.ProfileStore
	tokens            model.TokenManager
	validate          *validator.Validate
	logger            *logger.Logger
	recentLoginWindow time.Duration

	mu        sync.Mutex
	nextSubID int
	subs      map[int]AuthStateListener
}

func NewIdentity(
	accounts model.AccountStore,
	profiles model.ProfileStore,
	tokens model.TokenManager,
	recentLoginWindow time.Duration,
	logger *logger.Logger,
) *Identity {
	return &Identity{
		accounts:          accounts,
		profiles:          profiles,
		tokens:            tokens,
		validate:          validator.New(),
		logger:            logger,
		recentLoginWindow: recentLoginWindow,
		subs:              make(map[int]AuthStateListener),
	}
}

// RegisterParams contains registration input. PhotoName is the original name
// of the selected photo file; empty means none was supplied.
type RegisterParams struct {
	Email           string `validate:"required,email"`
	Password        string `validate:"required,min=6"`
	ConfirmPassword string
	DisplayName     string `validate:"required"`
	PhotoName       string
}

// SignIn verifies credentials and creates a session.
func (s *Identity) SignIn(ctx context.Context, email, password string) (*model.Session, error) {
	s.logger.Debug("Identity service: signing in", "email", email)

	if err := s.validate.Var(email, "required,email"); err != nil {
		return nil, model.ErrInvalidCredentials
	}
	if password == "" {
		return nil, model.ErrInvalidCredentials
	}

	account, err := s.accounts.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return nil, model.ErrInvalidCredentials
	}
	if err != nil {
		s.logger.Error("Identity service: failed to get account by email",
			"email", email,
			"error", err.Error())
		return nil, model.NewProviderError("sign in", err)
	}

	if err := bcrypt.CompareHashAndPassword(account.PasswordHash, []byte(password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	session, err := s.newSession(account)
	if err != nil {
		return nil, model.NewProviderError("sign in", err)
	}

	s.logger.Info("Identity service: signed in", "user_id", account.ID)
	s.notify(session)

	return session, nil
}

// Register creates a new identity and signs it in. The confirm-password check
// runs before anything touches the backend.
func (s *Identity) Register(ctx context.Context, params RegisterParams) (*model.Session, error) {
	s.logger.Debug("Identity service: registering", "email", params.Email)

	if params.ConfirmPassword != params.Password {
		return nil, model.ErrPasswordMismatch
	}

	if err := s.validate.Struct(params); err != nil {
		return nil, model.NewProviderError("register", err)
	}

	existing, err := s.accounts.GetByEmail(ctx, params.Email)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		s.logger.Error("Identity service: failed to get account by email",
			"email", params.Email,
			"error", err.Error())
		return nil, model.NewProviderError("register", err)
	}
	if existing.ID != uuid.Nil {
		s.logger.Info("Identity service: email already in use", "email", params.Email)
		return nil, model.ErrEmailAlreadyInUse
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, model.NewProviderError("register", err)
	}

	photoName := params.PhotoName
	if photoName == "" {
		photoName = model.DefaultPhotoName
	}

	account, err := s.accounts.Create(ctx, model.Account{
		ID:           uuid.New(),
		Email:        params.Email,
		PasswordHash: hash,
		DisplayName:  params.DisplayName,
		PhotoName:    photoName,
	})
	if err != nil {
		s.logger.Error("Identity service: failed to create account",
			"email", params.Email,
			"error", err.Error())
		return nil, model.NewProviderError("register", err)
	}

	session, err := s.newSession(account)
	if err != nil {
		return nil, model.NewProviderError("register", err)
	}

	s.logger.Info("Identity service: registered", "user_id", account.ID)
	s.notify(session)

	return session, nil
}

// UpdateProfile writes the display name and photo reference to the identity's
// profile fields and to the profile record. An empty photoName keeps the
// previous reference. Whichever side succeeded first stays updated when the
// other fails; there is no rollback.
func (s *Identity) UpdateProfile(ctx context.Context, userID uuid.UUID, displayName, photoName string) error {
	account, err := s.accounts.GetByID(ctx, userID)
	if err != nil {
		return model.NewProviderError("update profile", err)
	}

	if photoName == "" {
		photoName = account.PhotoName
	}

	if err := s.accounts.UpdateProfileFields(ctx, userID, displayName, photoName); err != nil {
		s.logger.Error("Identity service: failed to update account profile fields",
			"user_id", userID,
			"error", err.Error())
		return model.NewProviderError("update profile", err)
	}

	err = s.profiles.Update(ctx, model.Profile{
		UserID:      userID,
		DisplayName: displayName,
		Email:       account.Email,
		PhotoName:   photoName,
	})
	if err != nil {
		s.logger.Error("Identity service: failed to update profile record",
			"user_id", userID,
			"error", err.Error())
		return model.NewProviderError("update profile", err)
	}

	return nil
}

// DeleteAccount removes the profile record, then the identity. A session
// token older than the recent-login window is rejected before anything is
// deleted. If the identity deletion fails after the profile was removed, the
// identity survives without a profile.
func (s *Identity) DeleteAccount(ctx context.Context, session *model.Session) error {
	info, err := s.tokens.Parse(session.Token)
	if err != nil {
		return model.ErrRecentLoginRequired
	}
	if time.Since(info.IssuedAt) > s.recentLoginWindow {
		return model.ErrRecentLoginRequired
	}

	err = s.profiles.Delete(ctx, session.UserID)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		s.logger.Error("Identity service: failed to delete profile record",
			"user_id", session.UserID,
			"error", err.Error())
		return model.NewProviderError("delete account", err)
	}

	if err := s.accounts.Delete(ctx, session.UserID); err != nil {
		s.logger.Error("Identity service: failed to delete account, profile already removed",
			"user_id", session.UserID,
			"error", err.Error())
		return model.NewProviderError("delete account", err)
	}

	s.logger.Info("Identity service: account deleted", "user_id", session.UserID)
	s.notify(nil)

	return nil
}

// SignOut terminates the session. It always succeeds.
func (s *Identity) SignOut() {
	s.logger.Info("Identity service: signed out")
	s.notify(nil)
}

// Subscribe registers a listener for auth-state changes and returns its
// unsubscribe function. Callers must unsubscribe on teardown.
func (s *Identity) Subscribe(listener AuthStateListener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	s.subs[id] = listener

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Identity) newSession(account model.Account) (*model.Session, error) {
	token, err := s.tokens.Generate(account.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate session token: %w", err)
	}
	return &model.Session{
		UserID: account.ID,
		Email:  account.Email,
		Token:  token,
	}, nil
}

func (s *Identity) notify(session *model.Session) {
	s.mu.Lock()
	listeners := make([]AuthStateListener, 0, len(s.subs))
	for _, l := range s.subs {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(session)
	}
}
