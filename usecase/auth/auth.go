// Package auth implements the identity flows: signup with emailed
// verification, login with a "not yet confirmed" distinction, password
// recovery, and Redis-backed sessions carried in a signed JWT.
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/rentfolio/backend/domain"
	"github.com/rentfolio/backend/repository"
)

// Mailer sends the verification and recovery emails.
type Mailer interface {
	SendVerification(email, token string) error
	SendPasswordReset(email, token string) error
}

// Config bundles the token settings the flows need.
type Config struct {
	JWTSecret  string
	JWTIssuer  string
	SessionTTL time.Duration
	TokenTTL   time.Duration
}

type UseCase struct {
	profiles repository.ProfileRepository
	sessions repository.SessionRepository
	tokens   repository.TokenCache
	mailer   Mailer
	cfg      Config
	logger   *zap.Logger
}

func New(
	profiles repository.ProfileRepository,
	sessions repository.SessionRepository,
	tokens repository.TokenCache,
	mailer Mailer,
	cfg Config,
	logger *zap.Logger,
) *UseCase {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 24 * time.Hour
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		profiles: profiles,
		sessions: sessions,
		tokens:   tokens,
		mailer:   mailer,
		cfg:      cfg,
		logger:   logger,
	}
}

// SignUp creates an unverified profile and emails a verification token.
func (uc *UseCase) SignUp(ctx context.Context, name, email, password string) (*domain.Profile, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	profile := &domain.Profile{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}
	created, err := uc.profiles.Create(ctx, profile)
	if err != nil {
		return nil, err
	}

	if err := uc.issueToken(ctx, repository.TokenKindVerify, email, uc.mailer.SendVerification); err != nil {
		return nil, err
	}
	return created, nil
}

// ConfirmEmail checks the emailed token and marks the profile verified.
func (uc *UseCase) ConfirmEmail(ctx context.Context, email, token string) error {
	cached, err := uc.tokens.Get(ctx, repository.TokenKindVerify, email)
	if err != nil {
		if errors.Is(err, domain.ErrTokenNotFound) {
			return domain.ErrInvalidToken
		}
		return err
	}
	if cached != token {
		return domain.ErrInvalidToken
	}

	if err := uc.profiles.SetVerified(ctx, email); err != nil {
		return err
	}
	if err := uc.tokens.Delete(ctx, repository.TokenKindVerify, email); err != nil {
		uc.logger.Warn("failed to drop verification token", zap.Error(err))
	}
	return nil
}

// SignIn checks the credentials and opens a session. An unverified account
// fails with ErrEmailUnconfirmed, distinguishable from bad credentials.
func (uc *UseCase) SignIn(ctx context.Context, email, password string) (*domain.Profile, string, error) {
	profile, err := uc.profiles.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return nil, "", domain.ErrBadCredentials
		}
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(password)); err != nil {
		return nil, "", domain.ErrBadCredentials
	}
	if !profile.Verified {
		return nil, "", domain.ErrEmailUnconfirmed
	}

	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    profile.ID,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(uc.cfg.SessionTTL),
	}
	if err := uc.sessions.Save(ctx, session); err != nil {
		return nil, "", err
	}

	token, err := uc.signJWT(session)
	if err != nil {
		return nil, "", err
	}
	return profile, token, nil
}

// SignOut revokes the session.
func (uc *UseCase) SignOut(ctx context.Context, sessionID string) error {
	return uc.sessions.Delete(ctx, sessionID)
}

// ResendVerification re-issues the signup token for an unverified account.
func (uc *UseCase) ResendVerification(ctx context.Context, email string) error {
	profile, err := uc.profiles.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if profile.Verified {
		return domain.NewError(domain.ErrCodeConflict, "email already confirmed")
	}
	return uc.issueToken(ctx, repository.TokenKindVerify, email, uc.mailer.SendVerification)
}

// SendPasswordReset emails a recovery token for an existing account.
func (uc *UseCase) SendPasswordReset(ctx context.Context, email string) error {
	if _, err := uc.profiles.GetByEmail(ctx, email); err != nil {
		return err
	}
	return uc.issueToken(ctx, repository.TokenKindRecover, email, uc.mailer.SendPasswordReset)
}

// ResetPassword swaps the password after checking the recovery token.
func (uc *UseCase) ResetPassword(ctx context.Context, email, token, newPassword string) error {
	cached, err := uc.tokens.Get(ctx, repository.TokenKindRecover, email)
	if err != nil {
		if errors.Is(err, domain.ErrTokenNotFound) {
			return domain.ErrInvalidToken
		}
		return err
	}
	if cached != token {
		return domain.ErrInvalidToken
	}

	profile, err := uc.profiles.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := uc.profiles.UpdatePassword(ctx, profile.ID, string(hash)); err != nil {
		return err
	}
	if err := uc.tokens.Delete(ctx, repository.TokenKindRecover, email); err != nil {
		uc.logger.Warn("failed to drop recovery token", zap.Error(err))
	}
	return nil
}

// UpdatePassword changes the password of an already-authenticated user.
func (uc *UseCase) UpdatePassword(ctx context.Context, userID, newPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return uc.profiles.UpdatePassword(ctx, userID, string(hash))
}

// Profile loads the account record for the authenticated user.
func (uc *UseCase) Profile(ctx context.Context, userID string) (*domain.Profile, error) {
	return uc.profiles.GetByID(ctx, userID)
}

func (uc *UseCase) issueToken(ctx context.Context, kind, email string, send func(email, token string) error) error {
	token := uuid.NewString()
	if err := uc.tokens.Put(ctx, kind, email, token, uc.cfg.TokenTTL); err != nil {
		return err
	}
	if err := send(email, token); err != nil {
		uc.logger.Error("failed to send token email", zap.String("kind", kind), zap.Error(err))
		return err
	}
	return nil
}

func (uc *UseCase) signJWT(session *domain.Session) (string, error) {
	claims := jwt.MapClaims{
		"user_id":    session.UserID,
		"session_id": session.ID,
		"iss":        uc.cfg.JWTIssuer,
		"exp":        session.ExpiresAt.Unix(),
		"iat":        session.CreatedAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(uc.cfg.JWTSecret))
}
