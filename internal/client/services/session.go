// Package services contains application services for the finctl client.
// This file defines the session service: it owns the authenticated-session
// state machine, its durable persistence, and the auth calls that drive it.
package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"fintrack/internal/client/api"
	sessionrepo "fintrack/internal/client/repositories/session"
	"fintrack/internal/common"
	"fintrack/internal/dbx"
	"fintrack/internal/logging"
	"fintrack/internal/models"
)

// SessionService manages the client-side authentication session.
//
// Contract:
//   - Restore: hydrate the in-memory session from local storage on startup.
//   - Login / Register: authenticate remotely, then persist tokens and user.
//   - Logout: best-effort server invalidation with guaranteed local teardown.
//   - UpdateProfile: replace the user snapshot remotely and locally.
//   - ChangePassword: pure delegation, session state untouched.
//   - Refresh: rotate tokens using the stored refresh token.
//   - Profile: fetch the current account without mutating session state.
//
// Persistence happens only after the remote call fully succeeded, so a
// failed call never leaves partial local state behind. A corrupt storage
// record is repaired (wiped) silently and never surfaced to callers.
//
// The service is meant to be driven from a single goroutine (the REPL);
// concurrent calls are not mutually excluded and the last one to complete
// wins.
type SessionService interface {
	Restore(ctx context.Context)
	Login(ctx context.Context, email, password string) (*models.User, error)
	Register(ctx context.Context, name, email, password string, monthlyIncome float64) (*models.User, error)
	Logout(ctx context.Context) error
	UpdateProfile(ctx context.Context, name, email string) (*models.User, error)
	ChangePassword(ctx context.Context, currentPassword, newPassword string) error
	Refresh(ctx context.Context) error
	Profile(ctx context.Context) (*models.User, error)
	CurrentUser() *models.User
	IsAuthenticated() bool
}

// sessionService is the concrete SessionService backed by a remote api.Client
// and a local SQL database holding the session record.
type sessionService struct {
	client   api.Client
	db       *sql.DB
	log      logging.Logger
	user     *models.User
	restored bool
}

// NewSessionService constructs a SessionService bound to the given API
// client and session database. The session starts empty; call Restore to
// hydrate it.
func NewSessionService(client api.Client, db *sql.DB, log logging.Logger) SessionService {
	return &sessionService{client: client, db: db, log: log}
}

func (s *sessionService) getRepo(db dbx.DBTX) sessionrepo.Repository {
	return sessionrepo.NewSQLiteRepository(db)
}

// Restore seeds the in-memory session from the persisted record.
//
// The record is accepted only when all three entries are present and the
// user snapshot decodes; the literal string "undefined" counts as absent.
// Anything else is treated as corruption: the record is cleared, the
// session stays anonymous, and no error reaches the caller.
func (s *sessionService) Restore(ctx context.Context) {
	defer func() { s.restored = true }()

	repo := s.getRepo(s.db)

	rawUser, errU := repo.Get(ctx, common.StorageKeyUser)
	access, errA := repo.Get(ctx, common.StorageKeyAccessToken)
	refresh, errR := repo.Get(ctx, common.StorageKeyRefreshToken)
	if errU != nil || errA != nil || errR != nil {
		s.log.Warn(ctx, "failed to read session record, starting anonymous", "error", firstErr(errU, errA, errR))
		s.wipe(ctx)
		return
	}

	if rawUser == "undefined" {
		rawUser = ""
	}
	if rawUser == "" && access == "" && refresh == "" {
		s.wipe(ctx)
		return
	}
	if rawUser == "" || access == "" || refresh == "" {
		s.log.Warn(ctx, "partial session record, clearing")
		s.wipe(ctx)
		return
	}

	var u models.User
	if err := json.Unmarshal([]byte(rawUser), &u); err != nil {
		s.log.Warn(ctx, "failed to decode stored user, clearing session", "error", err)
		s.wipe(ctx)
		return
	}

	s.user = &u
	s.client.SetTokens(access, refresh)
	s.log.Info(ctx, "session restored", "user_id", u.ID)
}

// Login authenticates and, on success, persists the session record before
// exposing the user. Remote errors propagate unchanged.
func (s *sessionService) Login(ctx context.Context, email, password string) (*models.User, error) {
	tokens, user, err := s.client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	if err := s.persist(ctx, tokens, user); err != nil {
		return nil, fmt.Errorf("session persist error: %w", err)
	}
	s.user = user
	return user, nil
}

// Register creates an account and establishes a session exactly like Login.
func (s *sessionService) Register(ctx context.Context, name, email, password string, monthlyIncome float64) (*models.User, error) {
	tokens, user, err := s.client.Register(ctx, name, email, password, monthlyIncome)
	if err != nil {
		return nil, err
	}

	if err := s.persist(ctx, tokens, user); err != nil {
		return nil, fmt.Errorf("session persist error: %w", err)
	}
	s.user = user
	return user, nil
}

// Logout tears the session down. The server call is best-effort: its
// failure is logged and swallowed, local cleanup happens regardless.
func (s *sessionService) Logout(ctx context.Context) error {
	defer s.wipe(ctx)

	if err := s.client.Logout(ctx); err != nil {
		s.log.Warn(ctx, "server-side logout failed, clearing local session anyway", "error", err)
	}
	return nil
}

// UpdateProfile replaces the user snapshot. Tokens are not touched.
func (s *sessionService) UpdateProfile(ctx context.Context, name, email string) (*models.User, error) {
	user, err := s.client.UpdateProfile(ctx, name, email)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(user)
	if err != nil {
		return nil, fmt.Errorf("session persist error: %w", err)
	}
	if err := s.getRepo(s.db).Set(ctx, common.StorageKeyUser, string(raw)); err != nil {
		return nil, fmt.Errorf("session persist error: %w", err)
	}
	s.user = user
	return user, nil
}

// ChangePassword delegates to the server. Tokens stay valid, so neither the
// in-memory session nor the stored record changes.
func (s *sessionService) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	return s.client.ChangePassword(ctx, currentPassword, newPassword)
}

// Refresh exchanges the stored refresh token for a fresh pair and persists
// the rotated session record.
func (s *sessionService) Refresh(ctx context.Context) error {
	refresh, err := s.getRepo(s.db).Get(ctx, common.StorageKeyRefreshToken)
	if err != nil {
		return err
	}
	if refresh == "" {
		return fmt.Errorf("%w: no refresh token", common.ErrorUnauthorized)
	}

	tokens, user, err := s.client.RefreshToken(ctx, refresh)
	if err != nil {
		return err
	}

	if err := s.persist(ctx, tokens, user); err != nil {
		return fmt.Errorf("session persist error: %w", err)
	}
	s.user = user
	return nil
}

// Profile fetches the current account from the server. It does not mutate
// session state; callers decide what to do with the snapshot.
func (s *sessionService) Profile(ctx context.Context) (*models.User, error) {
	return s.client.Profile(ctx)
}

func (s *sessionService) CurrentUser() *models.User {
	return s.user
}

// IsAuthenticated derives the authentication flag: an in-memory user means
// authenticated. Until Restore has run, a stored access token is trusted as
// a fallback so callers do not observe a logged-out flash while the session
// is still hydrating. The token is not validated against the server.
func (s *sessionService) IsAuthenticated() bool {
	if s.user != nil {
		return true
	}
	if s.restored {
		return false
	}
	token, err := s.getRepo(s.db).Get(context.Background(), common.StorageKeyAccessToken)
	return err == nil && token != ""
}

// persist writes the three session entries as one transaction.
func (s *sessionService) persist(ctx context.Context, tokens *models.AuthTokens, user *models.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.getRepo(tx)
		if err := repo.Set(ctx, common.StorageKeyUser, string(raw)); err != nil {
			return err
		}
		if err := repo.Set(ctx, common.StorageKeyAccessToken, tokens.AccessToken); err != nil {
			return err
		}
		return repo.Set(ctx, common.StorageKeyRefreshToken, tokens.RefreshToken)
	})
}

// wipe clears the stored record and the in-memory state. Failures are
// logged, never returned: the session is anonymous afterwards either way.
func (s *sessionService) wipe(ctx context.Context) {
	if err := s.getRepo(s.db).Clear(ctx); err != nil {
		s.log.Warn(ctx, "failed to clear session record", "error", err)
	}
	s.user = nil
	s.client.SetTokens("", "")
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
