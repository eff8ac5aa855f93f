package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"fintrack/internal/common"
	"fintrack/internal/logging"
	"fintrack/internal/models"
	"fintrack/internal/server/auth"
	"fintrack/internal/server/refreshtokens"
)

// Credentials is what the credential-bearing endpoints hand back:
// a freshly minted token pair plus the account snapshot.
type Credentials struct {
	Tokens models.AuthTokens
	User   models.User
}

// Service implements account registration, authentication and token
// rotation on top of the user and refresh token repositories.
type Service struct {
	users      Repository
	tokens     refreshtokens.Repository
	secretKey  []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	log        logging.Logger
}

func NewService(users Repository, tokens refreshtokens.Repository, secretKey []byte,
	accessTTL, refreshTTL time.Duration, log logging.Logger) *Service {
	return &Service{
		users:      users,
		tokens:     tokens,
		secretKey:  secretKey,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		log:        log,
	}
}

type RegisterParams struct {
	Name          string
	Email         string
	Password      string
	MonthlyIncome float64
}

func (s *Service) Register(ctx context.Context, p RegisterParams) (*Credentials, error) {
	if p.Email == "" || p.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", common.ErrorValidation)
	}

	_, err := s.users.GetByEmail(ctx, p.Email)
	if err == nil {
		return nil, common.ErrorAlreadyExists
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &User{
		ID:            uuid.NewString(),
		Email:         p.Email,
		Name:          p.Name,
		MonthlyIncome: p.MonthlyIncome,
		IsActive:      true,
		PasswordHash:  hash,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info(ctx, "user registered", "user_id", user.ID)
	return s.issueCredentials(ctx, user)
}

func (s *Service) Login(ctx context.Context, email, password string) (*Credentials, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, common.ErrorInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return nil, common.ErrorInvalidCredentials
	}

	user.LastLogin = time.Now().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info(ctx, "user logged in", "user_id", user.ID)
	return s.issueCredentials(ctx, user)
}

// Refresh rotates a refresh token: the presented token is revoked and a
// new pair is minted. An expired token is revoked without minting.
func (s *Service) Refresh(ctx context.Context, token string) (*Credentials, error) {
	rt, err := s.tokens.Find(ctx, token)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, common.ErrorInvalidToken
	}
	if err != nil {
		return nil, err
	}

	if err := s.tokens.Delete(ctx, rt.Token); err != nil {
		return nil, err
	}
	if time.Now().After(rt.ExpiresAt) {
		return nil, common.ErrorRefreshTokenExpired
	}

	user, err := s.users.GetByID(ctx, rt.UserID)
	if err != nil {
		return nil, err
	}
	return s.issueCredentials(ctx, user)
}

func (s *Service) Profile(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	snap := user.Snapshot()
	return &snap, nil
}

type UpdateProfileParams struct {
	Name  string
	Email string
}

func (s *Service) UpdateProfile(ctx context.Context, userID string, p UpdateProfileParams) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if p.Email != "" && p.Email != user.Email {
		if _, err := s.users.GetByEmail(ctx, p.Email); err == nil {
			return nil, common.ErrorAlreadyExists
		} else if !errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		user.Email = p.Email
	}
	if p.Name != "" {
		user.Name = p.Name
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	snap := user.Snapshot()
	return &snap, nil
}

func (s *Service) ChangePassword(ctx context.Context, userID, current, next string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(current)); err != nil {
		return common.ErrorInvalidCredentials
	}
	if next == "" {
		return fmt.Errorf("%w: new password is required", common.ErrorValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = hash
	return s.users.Update(ctx, user)
}

// Logout revokes every refresh token issued to the user.
func (s *Service) Logout(ctx context.Context, userID string) error {
	return s.tokens.DeleteByUser(ctx, userID)
}

// Authenticate validates an access token and returns the subject.
func (s *Service) Authenticate(tokenString string) (string, error) {
	return auth.GetUserIDFromToken(tokenString, s.secretKey)
}

func (s *Service) issueCredentials(ctx context.Context, user *User) (*Credentials, error) {
	access, err := auth.GenerateToken(user.ID, s.secretKey, s.accessTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refresh, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	rt := &refreshtokens.RefreshToken{
		Token:     refresh,
		UserID:    user.ID,
		ExpiresAt: time.Now().UTC().Add(s.refreshTTL),
	}
	if err := s.tokens.Create(ctx, rt); err != nil {
		return nil, err
	}

	return &Credentials{
		Tokens: models.AuthTokens{
			AccessToken:  access,
			RefreshToken: refresh,
			ExpiresIn:    s.accessTTL.String(),
		},
		User: user.Snapshot(),
	}, nil
}
