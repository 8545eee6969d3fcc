package auth

import (
	"context"
	"fmt"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/jfscargo/backoffice/internal/platform/httpx"
)

const resetTokenTTL = 15 * time.Minute

// EmailSender queues an email for delivery.
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	Token string `json:"token"`
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type Service struct {
	repo     Repository
	mail     EmailSender
	secret   string
	tokenTTL time.Duration
	resetURL string
	now      func() time.Time
}

func NewService(repo Repository, mail EmailSender, secret string, tokenTTL time.Duration, resetURL string) *Service {
	return &Service{
		repo:     repo,
		mail:     mail,
		secret:   secret,
		tokenTTL: tokenTTL,
		resetURL: resetURL,
		now:      time.Now,
	}
}

// WithNow overrides the clock, for tests.
func (s *Service) WithNow(now func() time.Time) *Service {
	s.now = now
	return s
}

// Login validates credentials and issues an access token. Lookups and
// password mismatches return the same error so the response does not reveal
// which accounts exist.
func (s *Service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	user, err := s.repo.FindActiveByEmail(ctx, email)
	if err != nil {
		return LoginResult{}, fmt.Errorf("%w: invalid email or password", httpx.ErrUnauthorized)
	}
	if err := CheckPassword(user.PasswordHash, password); err != nil {
		return LoginResult{}, fmt.Errorf("%w: invalid email or password", httpx.ErrUnauthorized)
	}

	token, err := GenerateToken(s.secret, Claims{
		UserID: user.ID,
		Role:   user.Role,
		Roles:  []string{user.Role},
	}, s.tokenTTL)
	if err != nil {
		return LoginResult{}, err
	}

	return LoginResult{Token: token, ID: user.ID, Name: user.Name, Email: user.Email, Role: user.Role}, nil
}

// RequestPasswordReset stores a short-lived token and emails the reset link.
// Unknown addresses succeed silently.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.repo.FindActiveByEmail(ctx, email)
	if err != nil {
		return nil
	}

	token := ResetToken{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: s.now().Add(resetTokenTTL),
	}
	if err := s.repo.CreateResetToken(ctx, token); err != nil {
		return err
	}

	link := s.resetURL + "?token=" + token.Token
	body := fmt.Sprintf(
		"<p>Hello %s,</p><p>A password reset was requested for your account. The link below is valid for 15 minutes.</p><p><a href=%q>Reset your password</a></p><p>If you did not ask for this, ignore this email.</p>",
		user.Name, link)
	return s.mail.SendEmail(ctx, user.Email, "Reset your password", body)
}

// CheckResetToken reports whether a reset token is still usable.
func (s *Service) CheckResetToken(ctx context.Context, token string) error {
	t, err := s.repo.FindResetToken(ctx, token)
	if err != nil {
		return fmt.Errorf("%w: reset token is invalid", httpx.ErrInvalidInput)
	}
	if s.now().After(t.ExpiresAt) {
		return fmt.Errorf("%w: reset token has expired", httpx.ErrInvalidInput)
	}
	return nil
}

// ResetPassword consumes a reset token and stores the new password hash.
func (s *Service) ResetPassword(ctx context.Context, token, password string) error {
	if err := ValidatePasswordStrength(password); err != nil {
		return err
	}
	t, err := s.repo.FindResetToken(ctx, token)
	if err != nil {
		return fmt.Errorf("%w: reset token is invalid", httpx.ErrInvalidInput)
	}
	if s.now().After(t.ExpiresAt) {
		return fmt.Errorf("%w: reset token has expired", httpx.ErrInvalidInput)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(ctx, t.UserID, hash); err != nil {
		return err
	}
	return s.repo.DeleteResetToken(ctx, token)
}

// ValidatePasswordStrength requires at least 8 characters including a letter
// and a digit.
func ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", httpx.ErrInvalidInput)
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return fmt.Errorf("%w: password must contain both letters and digits", httpx.ErrInvalidInput)
	}
	return nil
}
