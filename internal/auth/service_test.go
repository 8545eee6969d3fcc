package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jfscargo/backoffice/internal/platform/httpx"
	"github.com/jfscargo/backoffice/internal/shared"
)

type fakeRepo struct {
	users     map[string]User
	tokens    map[string]ResetToken
	passwords map[int64]string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: map[string]User{}, tokens: map[string]ResetToken{}, passwords: map[int64]string{}}
}

func (f *fakeRepo) addUser(t *testing.T, id int64, name, email, password, role string) {
	t.Helper()
	hash, err := HashPassword(password)
	require.NoError(t, err)
	f.users[email] = User{ID: id, Name: name, Email: email, PasswordHash: hash, Role: role}
}

func (f *fakeRepo) FindActiveByEmail(_ context.Context, email string) (User, error) {
	u, ok := f.users[email]
	if !ok {
		return User{}, httpx.ErrNotFound
	}
	return u, nil
}

func (f *fakeRepo) CreateResetToken(_ context.Context, t ResetToken) error {
	f.tokens[t.Token] = t
	return nil
}

func (f *fakeRepo) FindResetToken(_ context.Context, token string) (ResetToken, error) {
	t, ok := f.tokens[token]
	if !ok {
		return ResetToken{}, httpx.ErrNotFound
	}
	return t, nil
}

func (f *fakeRepo) DeleteResetToken(_ context.Context, token string) error {
	delete(f.tokens, token)
	return nil
}

func (f *fakeRepo) UpdatePassword(_ context.Context, userID int64, hash string) error {
	f.passwords[userID] = hash
	return nil
}

type fakeMail struct {
	to, subject, body string
	sent              int
}

func (m *fakeMail) SendEmail(_ context.Context, to, subject, body string) error {
	m.to, m.subject, m.body = to, subject, body
	m.sent++
	return nil
}

func newTestService(repo Repository, mail EmailSender) *Service {
	return NewService(repo, mail, "test-secret", time.Hour, "https://office.example.com/reset")
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	repo := newFakeRepo()
	repo.addUser(t, 7, "Ririn", "ririn@example.com", "sekret123", shared.RoleAdmin)
	svc := newTestService(repo, &fakeMail{})

	result, err := svc.Login(context.Background(), "ririn@example.com", "sekret123")
	require.NoError(t, err)
	assert.Equal(t, int64(7), result.ID)
	assert.Equal(t, shared.RoleAdmin, result.Role)

	claims, err := ParseToken("test-secret", result.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, []string{shared.RoleAdmin}, claims.Roles)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	repo := newFakeRepo()
	repo.addUser(t, 7, "Ririn", "ririn@example.com", "sekret123", shared.RoleAdmin)
	svc := newTestService(repo, &fakeMail{})

	_, err := svc.Login(context.Background(), "ririn@example.com", "wrongpass")
	assert.ErrorIs(t, err, httpx.ErrUnauthorized)

	_, err = svc.Login(context.Background(), "nobody@example.com", "sekret123")
	assert.ErrorIs(t, err, httpx.ErrUnauthorized)
}

func TestPasswordResetFlow(t *testing.T) {
	repo := newFakeRepo()
	repo.addUser(t, 7, "Ririn", "ririn@example.com", "sekret123", shared.RoleAdmin)
	mail := &fakeMail{}
	svc := newTestService(repo, mail)

	require.NoError(t, svc.RequestPasswordReset(context.Background(), "ririn@example.com"))
	require.Equal(t, 1, mail.sent)
	assert.Equal(t, "ririn@example.com", mail.to)
	require.Len(t, repo.tokens, 1)

	var token string
	for tok := range repo.tokens {
		token = tok
	}
	assert.Contains(t, mail.body, token)

	require.NoError(t, svc.CheckResetToken(context.Background(), token))

	err := svc.ResetPassword(context.Background(), token, "short1")
	assert.ErrorIs(t, err, httpx.ErrInvalidInput, "weak password must be rejected")

	require.NoError(t, svc.ResetPassword(context.Background(), token, "newpass99"))
	require.NoError(t, CheckPassword(repo.passwords[7], "newpass99"))
	assert.Empty(t, repo.tokens, "the token must be consumed")
}

func TestPasswordResetUnknownAddressIsSilent(t *testing.T) {
	mail := &fakeMail{}
	svc := newTestService(newFakeRepo(), mail)

	require.NoError(t, svc.RequestPasswordReset(context.Background(), "ghost@example.com"))
	assert.Zero(t, mail.sent)
}

func TestExpiredResetTokenRejected(t *testing.T) {
	repo := newFakeRepo()
	repo.addUser(t, 7, "Ririn", "ririn@example.com", "sekret123", shared.RoleAdmin)
	svc := newTestService(repo, &fakeMail{})

	require.NoError(t, svc.RequestPasswordReset(context.Background(), "ririn@example.com"))
	var token string
	for tok := range repo.tokens {
		token = tok
	}

	svc.WithNow(func() time.Time { return time.Now().Add(16 * time.Minute) })
	assert.ErrorIs(t, svc.CheckResetToken(context.Background(), token), httpx.ErrInvalidInput)
	assert.ErrorIs(t, svc.ResetPassword(context.Background(), token, "newpass99"), httpx.ErrInvalidInput)
}

func TestGateAttachesIdentity(t *testing.T) {
	token, err := GenerateToken("test-secret", Claims{UserID: 5, Role: shared.RoleSuperAdmin, Roles: []string{shared.RoleSuperAdmin}}, time.Hour)
	require.NoError(t, err)

	gate := NewGate("test-secret")
	var got shared.Identity
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = shared.IdentityFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	gate.RequireAuth(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(5), got.UserID)
	assert.True(t, got.IsSuperAdmin())
}

func TestGateRejectsMissingAndBadTokens(t *testing.T) {
	gate := NewGate("test-secret")
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	gate.RequireAuth(next).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	other, err := GenerateToken("other-secret", Claims{UserID: 5}, time.Hour)
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+other)
	rec = httptest.NewRecorder()
	gate.RequireAuth(next).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
