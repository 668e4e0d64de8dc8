package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/rentfolio/backend/domain"
	"github.com/rentfolio/backend/repository"
	"github.com/rentfolio/backend/usecase/auth"
)

type fakeProfileRepo struct {
	byEmail map[string]*domain.Profile
	seq     int
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{byEmail: make(map[string]*domain.Profile)}
}

func (r *fakeProfileRepo) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	for _, p := range r.byEmail {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, domain.ErrProfileNotFound
}

func (r *fakeProfileRepo) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	p, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProfileRepo) Create(ctx context.Context, profile *domain.Profile) (*domain.Profile, error) {
	if _, ok := r.byEmail[profile.Email]; ok {
		return nil, domain.ErrEmailTaken
	}
	r.seq++
	profile.ID = profile.Email + "-id"
	cp := *profile
	r.byEmail[profile.Email] = &cp
	return profile, nil
}

func (r *fakeProfileRepo) SetVerified(ctx context.Context, email string) error {
	p, ok := r.byEmail[email]
	if !ok {
		return domain.ErrProfileNotFound
	}
	p.Verified = true
	return nil
}

func (r *fakeProfileRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	for _, p := range r.byEmail {
		if p.ID == id {
			p.PasswordHash = passwordHash
			return nil
		}
	}
	return domain.ErrProfileNotFound
}

type fakeSessionRepo struct {
	sessions map[string]*domain.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*domain.Session)}
}

func (r *fakeSessionRepo) Get(ctx context.Context, id string) (*domain.Session, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return s, nil
}

func (r *fakeSessionRepo) Save(ctx context.Context, session *domain.Session) error {
	r.sessions[session.ID] = session
	return nil
}

func (r *fakeSessionRepo) Delete(ctx context.Context, id string) error {
	delete(r.sessions, id)
	return nil
}

type fakeTokenCache struct {
	tokens map[string]string
}

func newFakeTokenCache() *fakeTokenCache {
	return &fakeTokenCache{tokens: make(map[string]string)}
}

func (c *fakeTokenCache) key(kind, email string) string { return kind + ":" + email }

func (c *fakeTokenCache) Put(ctx context.Context, kind, email, token string, ttl time.Duration) error {
	c.tokens[c.key(kind, email)] = token
	return nil
}

func (c *fakeTokenCache) Get(ctx context.Context, kind, email string) (string, error) {
	token, ok := c.tokens[c.key(kind, email)]
	if !ok {
		return "", domain.ErrTokenNotFound
	}
	return token, nil
}

func (c *fakeTokenCache) Delete(ctx context.Context, kind, email string) error {
	delete(c.tokens, c.key(kind, email))
	return nil
}

type fakeMailer struct {
	verifications map[string]string
	recoveries    map[string]string
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{verifications: make(map[string]string), recoveries: make(map[string]string)}
}

func (m *fakeMailer) SendVerification(email, token string) error {
	m.verifications[email] = token
	return nil
}

func (m *fakeMailer) SendPasswordReset(email, token string) error {
	m.recoveries[email] = token
	return nil
}

type authFixture struct {
	uc       *auth.UseCase
	profiles *fakeProfileRepo
	sessions *fakeSessionRepo
	tokens   *fakeTokenCache
	mailer   *fakeMailer
}

const jwtSecret = "test-secret"

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	f := &authFixture{
		profiles: newFakeProfileRepo(),
		sessions: newFakeSessionRepo(),
		tokens:   newFakeTokenCache(),
		mailer:   newFakeMailer(),
	}
	f.uc = auth.New(f.profiles, f.sessions, f.tokens, f.mailer, auth.Config{
		JWTSecret:  jwtSecret,
		JWTIssuer:  "rentfolio-test",
		SessionTTL: time.Hour,
		TokenTTL:   time.Hour,
	}, nil)
	return f
}

const (
	email    = "asha@example.com"
	password = "hunter2-but-longer"
)

func signUpAndConfirm(t *testing.T, f *authFixture) *domain.Profile {
	t.Helper()
	profile, err := f.uc.SignUp(context.Background(), "Asha Rao", email, password)
	require.NoError(t, err)
	require.NoError(t, f.uc.ConfirmEmail(context.Background(), email, f.mailer.verifications[email]))
	return profile
}

func TestSignUpStoresHashedPasswordAndEmailsToken(t *testing.T) {
	f := newAuthFixture(t)

	profile, err := f.uc.SignUp(context.Background(), "Asha Rao", email, password)
	require.NoError(t, err)
	require.NotEmpty(t, profile.ID)
	require.False(t, profile.Verified)

	stored := f.profiles.byEmail[email]
	require.NotEqual(t, password, stored.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte(password)))

	sent := f.mailer.verifications[email]
	require.NotEmpty(t, sent)
	cached, err := f.tokens.Get(context.Background(), repository.TokenKindVerify, email)
	require.NoError(t, err)
	require.Equal(t, sent, cached)
}

func TestSignInBeforeConfirmationIsRejected(t *testing.T) {
	f := newAuthFixture(t)
	_, err := f.uc.SignUp(context.Background(), "Asha Rao", email, password)
	require.NoError(t, err)

	_, _, err = f.uc.SignIn(context.Background(), email, password)
	require.ErrorIs(t, err, domain.ErrEmailUnconfirmed)
}

func TestConfirmEmailWithWrongToken(t *testing.T) {
	f := newAuthFixture(t)
	_, err := f.uc.SignUp(context.Background(), "Asha Rao", email, password)
	require.NoError(t, err)

	err = f.uc.ConfirmEmail(context.Background(), email, "not-the-token")
	require.ErrorIs(t, err, domain.ErrInvalidToken)

	err = f.uc.ConfirmEmail(context.Background(), "nobody@example.com", "whatever")
	require.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestSignInIssuesValidJWTBoundToSession(t *testing.T) {
	f := newAuthFixture(t)
	profile := signUpAndConfirm(t, f)

	signed, tokenStr, err := f.uc.SignIn(context.Background(), email, password)
	require.NoError(t, err)
	require.Equal(t, profile.ID, signed.ID)

	parsed, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		return []byte(jwtSecret), nil
	})
	require.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	require.Equal(t, profile.ID, claims["user_id"])

	sessionID, _ := claims["session_id"].(string)
	session, err := f.sessions.Get(context.Background(), sessionID)
	require.NoError(t, err)
	require.Equal(t, profile.ID, session.UserID)
}

func TestSignInBadCredentials(t *testing.T) {
	f := newAuthFixture(t)
	signUpAndConfirm(t, f)

	_, _, err := f.uc.SignIn(context.Background(), email, "wrong-password")
	require.ErrorIs(t, err, domain.ErrBadCredentials)

	_, _, err = f.uc.SignIn(context.Background(), "nobody@example.com", password)
	require.ErrorIs(t, err, domain.ErrBadCredentials)
}

func TestSignOutRevokesSession(t *testing.T) {
	f := newAuthFixture(t)
	signUpAndConfirm(t, f)

	_, tokenStr, err := f.uc.SignIn(context.Background(), email, password)
	require.NoError(t, err)

	parsed, _, err := jwt.NewParser().ParseUnverified(tokenStr, jwt.MapClaims{})
	require.NoError(t, err)
	sessionID := parsed.Claims.(jwt.MapClaims)["session_id"].(string)

	require.NoError(t, f.uc.SignOut(context.Background(), sessionID))
	_, err = f.sessions.Get(context.Background(), sessionID)
	require.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestResendVerificationOnlyForUnconfirmed(t *testing.T) {
	f := newAuthFixture(t)
	_, err := f.uc.SignUp(context.Background(), "Asha Rao", email, password)
	require.NoError(t, err)

	first := f.mailer.verifications[email]
	require.NoError(t, f.uc.ResendVerification(context.Background(), email))
	require.NotEqual(t, first, f.mailer.verifications[email])

	require.NoError(t, f.uc.ConfirmEmail(context.Background(), email, f.mailer.verifications[email]))
	err = f.uc.ResendVerification(context.Background(), email)
	require.Error(t, err)
	require.True(t, domain.IsDomainError(err, domain.ErrCodeConflict))
}

func TestPasswordResetFlow(t *testing.T) {
	f := newAuthFixture(t)
	signUpAndConfirm(t, f)

	require.NoError(t, f.uc.SendPasswordReset(context.Background(), email))
	token := f.mailer.recoveries[email]
	require.NotEmpty(t, token)

	const newPassword = "correct-horse-battery"
	require.NoError(t, f.uc.ResetPassword(context.Background(), email, token, newPassword))

	_, _, err := f.uc.SignIn(context.Background(), email, password)
	require.ErrorIs(t, err, domain.ErrBadCredentials)
	_, _, err = f.uc.SignIn(context.Background(), email, newPassword)
	require.NoError(t, err)

	// Token is single-use.
	err = f.uc.ResetPassword(context.Background(), email, token, "again")
	require.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestUpdatePasswordForAuthenticatedUser(t *testing.T) {
	f := newAuthFixture(t)
	profile := signUpAndConfirm(t, f)

	const newPassword = "rotated-password-1"
	require.NoError(t, f.uc.UpdatePassword(context.Background(), profile.ID, newPassword))

	_, _, err := f.uc.SignIn(context.Background(), email, newPassword)
	require.NoError(t, err)
}
